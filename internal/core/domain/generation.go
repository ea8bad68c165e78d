package domain

// Tier is a cost/quality class of text-generation backend.
type Tier string

const (
	TierFast     Tier = "fast"
	TierBalanced Tier = "balanced"
	TierQuality  Tier = "quality"

	// TierFallback marks a last-resort generation after the selected
	// tier exhausted its chain; it is never requested directly.
	TierFallback Tier = "fallback"
)

// GenerationRequest asks for one completion. An empty Tier lets the
// router pick one from the prompt.
type GenerationRequest struct {
	Prompt    string
	System    string
	Tier      Tier
	MaxTokens int
}

type GenerationResult struct {
	Text      string `json:"response"`
	ModelUsed string `json:"model_used"`
	Tier      Tier   `json:"tier"`
}
