package types

// ResearchResult is the outcome of one single-shot research call. Provider
// failures are folded into Text with zeroed usage, so a result is produced
// for every request.
type ResearchResult struct {
	Text  string
	Usage TokenUsage
}

// ModelDescriptor describes one catalog entry. PriceTier is a heuristic
// ranking inferred from the model name, 0 being cheapest.
type ModelDescriptor struct {
	Name           string `json:"name"`
	DisplayName    string `json:"display_name"`
	Description    string `json:"description"`
	PriceTier      int    `json:"price_tier"`
	PriceIndicator string `json:"price_indicator"`
}

// DeepResearchMetadata summarizes a deep research run. Err is set, and usage
// zeroed, when any stage of the pipeline failed.
type DeepResearchMetadata struct {
	StepsCompleted int
	Model          string
	Mode           string
	Usage          TokenUsage
	Err            string
}
