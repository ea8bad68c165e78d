package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/seanebones-lang/Parts-Dept/internal/core/domain"
	"github.com/seanebones-lang/Parts-Dept/internal/core/ports"
)

// Per-type result caps. Parts lookups cast a wider net than FAQ hits.
const (
	partsResultLimit   = 10
	faqResultLimit     = 3
	policyResultLimit  = 5
	generalResultLimit = 5
)

// NoContextFound signals that retrieval produced nothing. It is a
// control value for the prompt builder, not retrieved fact, and must
// not be fed to the model as grounding.
const NoContextFound = "No relevant information found."

// ContextBuilder assembles grounding text from the typed retrieval store.
type ContextBuilder struct {
	store ports.RetrievalStore
}

func NewContextBuilder(store ports.RetrievalStore) *ContextBuilder {
	return &ContextBuilder{store: store}
}

type ContextRequest struct {
	Query      string
	Type       domain.ContextType
	LocationID string
	Department string
}

func (b *ContextBuilder) Build(ctx context.Context, req ContextRequest) (string, error) {
	var (
		passages []domain.RetrievedPassage
		err      error
	)

	switch req.Type {
	case domain.ContextParts:
		passages, err = b.store.Search(ctx, req.Query, partsResultLimit, domain.SearchFilter{
			Type:       "parts_catalog",
			LocationID: req.LocationID,
		})
	case domain.ContextFAQ:
		passages, err = b.store.Search(ctx, req.Query, faqResultLimit, domain.SearchFilter{
			Type:       "faq",
			Department: req.Department,
		})
	case domain.ContextPolicy:
		passages, err = b.store.Search(ctx, req.Query, policyResultLimit, domain.SearchFilter{
			Type: "policy",
		})
	default:
		passages, err = b.store.Search(ctx, req.Query, generalResultLimit, domain.SearchFilter{
			LocationID: req.LocationID,
			Department: req.Department,
		})
	}
	if err != nil {
		return "", fmt.Errorf("retrieve %s context: %w", contextTypeLabel(req.Type), err)
	}
	return FormatPassages(passages), nil
}

// FormatPassages renders an ordered result set as a labeled text block.
func FormatPassages(passages []domain.RetrievedPassage) string {
	if len(passages) == 0 {
		return NoContextFound
	}

	var sb strings.Builder
	for i, passage := range passages {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "[Source %d] (Relevance: %.2f)\n%s\n", i+1, passage.Score, passage.Content)
	}
	return sb.String()
}

func contextTypeLabel(t domain.ContextType) string {
	if t == "" {
		return string(domain.ContextGeneral)
	}
	return string(t)
}
