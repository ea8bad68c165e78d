package domain

// ContextType selects which slice of the knowledge base grounds a response.
type ContextType string

const (
	ContextParts   ContextType = "parts"
	ContextFAQ     ContextType = "faq"
	ContextPolicy  ContextType = "policy"
	ContextGeneral ContextType = "general"
)

// SearchFilter narrows retrieval to matching payload fields.
// Empty fields are not applied.
type SearchFilter struct {
	Type       string
	LocationID string
	Department string
	SKU        string
}

// RetrievedPassage is one scored grounding passage. Ephemeral: produced
// fresh per request and never persisted.
type RetrievedPassage struct {
	Content  string            `json:"content"`
	Score    float64           `json:"score"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// CatalogDocument is a knowledge-base entry to be indexed for retrieval.
type CatalogDocument struct {
	ID       string            `json:"id"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
}
