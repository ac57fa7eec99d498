package types

import "github.com/sashabaranov/go-openai"

// TokenUsage mirrors the provider's usage counters for one or more
// completion calls. TotalTokens is always PromptTokens+CompletionTokens when
// computed locally.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Add accumulates delta into u and recomputes the total.
func (u *TokenUsage) Add(delta TokenUsage) {
	u.PromptTokens += delta.PromptTokens
	u.CompletionTokens += delta.CompletionTokens
	u.TotalTokens = u.PromptTokens + u.CompletionTokens
}

// EstimateTokens approximates a token count as one token per four characters.
func EstimateTokens(text string) int {
	return len(text) / 4
}

// UsageFromResponse extracts usage for a single completion call. Reported
// counters win; a missing total is recomputed from prompt+completion; only
// when the provider reported nothing at all are both sides estimated from
// character counts.
func UsageFromResponse(prompt, completion string, reported openai.Usage) TokenUsage {
	u := TokenUsage{
		PromptTokens:     reported.PromptTokens,
		CompletionTokens: reported.CompletionTokens,
		TotalTokens:      reported.TotalTokens,
	}
	if u.TotalTokens == 0 {
		u.TotalTokens = u.PromptTokens + u.CompletionTokens
	}
	if u.TotalTokens == 0 {
		u.PromptTokens = EstimateTokens(prompt)
		u.CompletionTokens = EstimateTokens(completion)
		u.TotalTokens = u.PromptTokens + u.CompletionTokens
	}
	return u
}
