package agent

import (
	"context"
	"fmt"

	"github.com/deepscout-ai/deepscout/core/types"
	"github.com/deepscout-ai/deepscout/pkg/llm"
	"github.com/deepscout-ai/deepscout/pkg/xlog"
	"github.com/sashabaranov/go-openai"
)

const (
	// ModeDeepResearch tags deep pipeline responses.
	ModeDeepResearch = "deep_research"

	// deepMaxTokens is the per-stage output budget. Stage outputs feed every
	// later prompt, so the pipeline runs with its own large budget instead of
	// the request's max_tokens.
	deepMaxTokens       = 8192
	deepTemperature     = 0.7
	deepResearchQuotaAt = "https://aistudio.google.com/"
)

// PipelineState accumulates the outputs of the deep research stages. Each
// stage reads prior fields and writes exactly one new one, plus its usage
// delta. A fresh state is created per run and discarded with the response.
type PipelineState struct {
	Query                string
	Plan                 string
	MarketAnalysis       string
	UserInsights         string
	CompetitiveLandscape string
	Risks                string
	DevilsAdvocate       string
	Recommendations      string
	FinalReport          string
	Usage                types.TokenUsage
}

type stage struct {
	name string
	run  func(ctx context.Context, s *PipelineState) error
}

// DeepResearchAgent runs a fixed, unconditional chain of seven research
// stages, each issuing one completion call. There is no branching and no
// per-stage retry; any failure aborts the whole run.
type DeepResearchAgent struct {
	client   llm.ChatCompleter
	model    string
	temp     float32
	pipeline []stage
}

// DeepInfo describes the deep research agent for the introspection endpoint.
type DeepInfo struct {
	Mode          string   `json:"mode"`
	Model         string   `json:"model"`
	WorkflowSteps int      `json:"workflow_steps"`
	OptimizedFor  string   `json:"optimized_for"`
	Features      []string `json:"features"`
}

func NewDeep(apiKey string, opts ...Option) (*DeepResearchAgent, error) {
	c, err := newConfig(apiKey, Config{
		Model:       DefaultModel,
		MaxTokens:   deepMaxTokens,
		Temperature: deepTemperature,
	}, opts...)
	if err != nil {
		return nil, err
	}

	a := &DeepResearchAgent{
		client: c.Client,
		model:  c.Model,
		temp:   c.Temperature,
	}
	a.pipeline = []stage{
		{"plan", a.plan},
		{"market_analysis", a.analyzeMarket},
		{"user_insights", a.gatherUserInsights},
		{"competitive_analysis", a.analyzeCompetition},
		{"risk_assessment", a.assessRisks},
		{"devils_advocate", a.challengeFindings},
		{"synthesize", a.synthesize},
	}
	return a, nil
}

func (a *DeepResearchAgent) Model() string {
	return a.model
}

func (a *DeepResearchAgent) Info() DeepInfo {
	return DeepInfo{
		Mode:          ModeDeepResearch,
		Model:         a.model,
		WorkflowSteps: len(a.pipeline),
		OptimizedFor:  "Product Management",
		Features: []string{
			"Multi-step reasoning",
			"Market analysis",
			"User research",
			"Competitive intelligence",
			"Risk assessment",
			"Devil's Advocate (critical analysis)",
			"Strategic recommendations",
		},
	}
}

// DeepResearch runs the whole pipeline for query. On any stage failure the
// partial state is discarded and a single error report is returned with
// zeroed usage and Metadata.Err set.
func (a *DeepResearchAgent) DeepResearch(ctx context.Context, query string) (string, types.DeepResearchMetadata) {
	s := &PipelineState{Query: query}

	for i, st := range a.pipeline {
		xlog.Debug("Deep research stage starting", "stage", st.name, "step", i+1)
		if err := st.run(ctx, s); err != nil {
			xlog.Error("Deep research aborted", "stage", st.name, "error", err)
			return deepResearchErrorReport(err), types.DeepResearchMetadata{
				Model: a.model,
				Mode:  ModeDeepResearch,
				Err:   err.Error(),
			}
		}
	}

	xlog.Info("Deep research complete", "model", a.model, "total_tokens", s.Usage.TotalTokens)
	return s.FinalReport, types.DeepResearchMetadata{
		StepsCompleted: len(a.pipeline),
		Model:          a.model,
		Mode:           ModeDeepResearch,
		Usage:          s.Usage,
	}
}

// complete issues one completion call and folds its usage into the state.
func (a *DeepResearchAgent) complete(ctx context.Context, s *PipelineState, prompt string) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   deepMaxTokens,
		Temperature: a.temp,
	})
	if err != nil {
		return "", err
	}
	text := ""
	if len(resp.Choices) > 0 {
		text = resp.Choices[0].Message.Content
	}
	s.Usage.Add(types.UsageFromResponse(prompt, text, resp.Usage))
	return text, nil
}

func (a *DeepResearchAgent) plan(ctx context.Context, s *PipelineState) error {
	text, err := a.complete(ctx, s, planPrompt(s))
	if err != nil {
		return fmt.Errorf("plan: %w", err)
	}
	s.Plan = text
	return nil
}

func (a *DeepResearchAgent) analyzeMarket(ctx context.Context, s *PipelineState) error {
	text, err := a.complete(ctx, s, marketPrompt(s))
	if err != nil {
		return fmt.Errorf("market analysis: %w", err)
	}
	s.MarketAnalysis = text
	return nil
}

func (a *DeepResearchAgent) gatherUserInsights(ctx context.Context, s *PipelineState) error {
	text, err := a.complete(ctx, s, userInsightsPrompt(s))
	if err != nil {
		return fmt.Errorf("user insights: %w", err)
	}
	s.UserInsights = text
	return nil
}

func (a *DeepResearchAgent) analyzeCompetition(ctx context.Context, s *PipelineState) error {
	text, err := a.complete(ctx, s, competitivePrompt(s))
	if err != nil {
		return fmt.Errorf("competitive analysis: %w", err)
	}
	s.CompetitiveLandscape = text
	return nil
}

func (a *DeepResearchAgent) assessRisks(ctx context.Context, s *PipelineState) error {
	text, err := a.complete(ctx, s, riskPrompt(s))
	if err != nil {
		return fmt.Errorf("risk assessment: %w", err)
	}
	s.Risks = text
	return nil
}

func (a *DeepResearchAgent) challengeFindings(ctx context.Context, s *PipelineState) error {
	text, err := a.complete(ctx, s, devilsAdvocatePrompt(s))
	if err != nil {
		return fmt.Errorf("devils advocate: %w", err)
	}
	s.DevilsAdvocate = text
	return nil
}

func (a *DeepResearchAgent) synthesize(ctx context.Context, s *PipelineState) error {
	text, err := a.complete(ctx, s, synthesisPrompt(s))
	if err != nil {
		return fmt.Errorf("synthesis: %w", err)
	}
	s.Recommendations = text
	s.FinalReport = buildReport(s)
	return nil
}

func buildReport(s *PipelineState) string {
	return fmt.Sprintf(`# Deep Research Report: Product Management Analysis

## 📋 Research Question
%s

## 📊 Market Analysis
%s

## 👥 User Insights
%s

## ⚔️ Competitive Landscape
%s

## ⚠️ Risks & Challenges
%s

## 😈 Devil's Advocate: Why This Might Fail
%s

## 🎯 Strategic Recommendations
%s

---
*Generated in deep research mode*
*Total Tokens Used: %d (Prompt: %d, Completion: %d)*
`,
		s.Query,
		s.MarketAnalysis,
		s.UserInsights,
		s.CompetitiveLandscape,
		s.Risks,
		s.DevilsAdvocate,
		s.Recommendations,
		s.Usage.TotalTokens, s.Usage.PromptTokens, s.Usage.CompletionTokens)
}

func deepResearchErrorReport(err error) string {
	return fmt.Sprintf(`❌ **Deep Research Error**

An error occurred during the research process:
%s

This might be due to:
- API rate limits (deep research makes multiple calls)
- Quota exhaustion
- Network issues

💡 Try:
- Waiting a few minutes
- Using standard research mode
- Checking your API quota at %s
`, err, deepResearchQuotaAt)
}
