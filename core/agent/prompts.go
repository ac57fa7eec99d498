package agent

import "fmt"

// singleShotPrompt asks for an answer within half the output token budget,
// counted in words, to keep completions inside the configured limit.
func singleShotPrompt(query string, maxTokens int) string {
	return fmt.Sprintf(
		"Answer this concisely in %d words or less. "+
			"Be direct and factual. No preamble or conclusion.\n\n"+
			"Question: %s", maxTokens/2, query)
}

func planPrompt(s *PipelineState) string {
	return fmt.Sprintf(`You are a senior product manager creating a research plan.

Question: %s

Break this down into a structured research plan covering:
1. Market & Opportunity
2. User Needs & Pain Points
3. Competitive Landscape
4. Risks & Challenges
5. Critical Analysis (Devil's Advocate)
6. Strategic Recommendations

Provide a concise plan (2-3 sentences per area). Be thorough and detailed.`, s.Query)
}

func marketPrompt(s *PipelineState) string {
	return fmt.Sprintf(`You are a market analyst for product management.

Original Question: %s
Research Plan: %s

Provide a COMPREHENSIVE MARKET & OPPORTUNITY ANALYSIS with specific details:
- Market size estimate with numbers (TAM/SAM/SOM if applicable)
- Growth rate and trajectory (percentages, trends)
- Current market trends and dynamics
- Target customer segments and their characteristics
- Market maturity stage
- Entry barriers and opportunities

Be detailed, specific, and data-driven. Provide 6-8 substantive points.`, s.Query, s.Plan)
}

func userInsightsPrompt(s *PipelineState) string {
	return fmt.Sprintf(`You are a user research expert conducting deep analysis.

Question: %s
Market Context: %s

Provide COMPREHENSIVE USER NEEDS & PAIN POINTS ANALYSIS:
- Define 2-3 primary user personas with demographics and behaviors
- Identify specific pain points with severity levels
- Articulate user expectations, desires, and motivations
- Map the user journey and friction points
- Identify adoption barriers (cost, complexity, switching costs, etc.)
- Analyze willingness to pay and value perception

Be specific and thorough. Provide 6-8 detailed insights.`, s.Query, s.MarketAnalysis)
}

func competitivePrompt(s *PipelineState) string {
	return fmt.Sprintf(`You are a competitive intelligence analyst conducting thorough research.

Question: %s
Market Context: %s
User Context: %s

Provide COMPREHENSIVE COMPETITIVE LANDSCAPE ANALYSIS:
- Identify specific competitors by name (direct and indirect)
- Analyze each competitor's positioning, strengths, and weaknesses
- Evaluate competitive advantages and moats
- Identify gaps in current market solutions
- Assess differentiation opportunities
- Analyze pricing strategies and business models
- Evaluate market share distribution

Be specific with company names and detailed analysis. Provide 6-8 strategic insights.`,
		s.Query, s.MarketAnalysis, s.UserInsights)
}

func riskPrompt(s *PipelineState) string {
	return fmt.Sprintf(`You are a risk assessment specialist conducting detailed analysis.

Question: %s
Market: %s
Competition: %s

Provide COMPREHENSIVE RISKS & CHALLENGES ASSESSMENT:
- Technical risks (scalability, architecture, integration, security)
- Market risks (timing, adoption, competition, saturation)
- Financial risks (burn rate, unit economics, profitability)
- Operational risks (team, resources, partnerships)
- Regulatory and compliance risks
- Execution challenges
- Mitigation strategies for each major risk

Be realistic, specific, and thorough. Identify 6-8 significant risks with mitigation strategies.`,
		s.Query, s.MarketAnalysis, s.CompetitiveLandscape)
}

func devilsAdvocatePrompt(s *PipelineState) string {
	return fmt.Sprintf(`You are a DEVIL'S ADVOCATE - a critical analyst whose job is to challenge assumptions and point out why this product might FAIL.

Question: %s

All Research:
- Market: %s
- Users: %s
- Competition: %s
- Risks: %s

Your task: Be brutally honest and critical. Identify:
- Why this product is likely to FAIL
- Over-optimistic assumptions in the research
- Hidden costs and challenges not yet considered
- Why competitors might crush this product
- Why users might NOT adopt it despite claimed pain points
- Timing issues (too early/too late to market)
- Resource constraints and execution impossibilities
- Financial reasons this won't be profitable
- Why the team/company might not be the right one to build this

Be pessimistic, realistic, and blunt. This analysis should make someone think twice. Provide 8-10 critical points that challenge the viability of this product.`,
		s.Query, s.MarketAnalysis, s.UserInsights, s.CompetitiveLandscape, s.Risks)
}

func synthesisPrompt(s *PipelineState) string {
	return fmt.Sprintf(`You are a Chief Product Officer synthesizing research into a balanced decision framework.

Original Question: %s

Research Completed:
- Market Analysis: %s
- User Insights: %s
- Competitive Landscape: %s
- Risks & Challenges: %s
- Critical Analysis: %s

Provide COMPREHENSIVE STRATEGIC RECOMMENDATIONS that balance optimism with realism:

1. **Clear Decision** (Go/No-Go/Pivot, with detailed rationale considering both opportunities AND critical challenges)
2. **Key Success Metrics** (specific, measurable KPIs to track)
3. **Recommended Approach** (phased rollout, MVP strategy, or full launch)
4. **Timeline and Milestones** (realistic with key decision points)
5. **Resource Requirements** (team, budget, time estimates)
6. **Go/No-Go Criteria** (what would make you stop or pivot)
7. **Decision Rationale** (balanced view acknowledging both opportunity and devil's advocate points)

Be realistic, balanced, and actionable. This should be a complete decision framework.`,
		s.Query, s.MarketAnalysis, s.UserInsights, s.CompetitiveLandscape, s.Risks, s.DevilsAdvocate)
}
