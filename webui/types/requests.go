// Package types holds the gateway's JSON request and response bodies.
package types

import coretypes "github.com/deepscout-ai/deepscout/core/types"

// ResearchRequest is the body of both research endpoints. MaxTokens is
// honored by the single-shot path only; the deep pipeline runs with its own
// output budget.
type ResearchRequest struct {
	Query     string `json:"query"`
	Model     string `json:"model"`
	MaxTokens int    `json:"max_tokens"`
}

type ResearchResponse struct {
	Query      string               `json:"query"`
	Result     string               `json:"result"`
	Model      string               `json:"model"`
	TokenUsage coretypes.TokenUsage `json:"token_usage"`
}

type DeepResearchResponse struct {
	Query          string               `json:"query"`
	Result         string               `json:"result"`
	Model          string               `json:"model"`
	Mode           string               `json:"mode"`
	StepsCompleted int                  `json:"steps_completed"`
	TokenUsage     coretypes.TokenUsage `json:"token_usage"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version"`
}

type ModelsResponse struct {
	Models []coretypes.ModelDescriptor `json:"models"`
}
