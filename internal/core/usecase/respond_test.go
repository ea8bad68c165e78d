package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/seanebones-lang/Parts-Dept/internal/core/domain"
)

func newComposer(gen *fakeGenerator, store *fakeRetrievalStore, inv *fakeInventoryStore) *ResponseComposer {
	return NewResponseComposer(gen, NewContextBuilder(store), inv, 0.75)
}

func TestDecideLowConfidenceDefers(t *testing.T) {
	gen := &fakeGenerator{generate: textResult("should not be called")}
	composer := newComposer(gen, &fakeRetrievalStore{}, &fakeInventoryStore{})

	decision := composer.Decide(context.Background(), domain.InboundEmail{ID: "e1"}, domain.Classification{
		Intent:     domain.IntentPartsOrder,
		Confidence: 0.74,
	}, domain.EmptyEntities())

	if decision.Outcome != domain.OutcomeDeferred {
		t.Fatalf("expected deferred decision, got %s", decision.Outcome)
	}
	if decision.Deferred.Reason != "low confidence classification" {
		t.Fatalf("unexpected reason: %q", decision.Deferred.Reason)
	}
	if decision.Deferred.SuggestedDepartment != domain.DepartmentSales {
		t.Fatalf("expected sales, got %s", decision.Deferred.SuggestedDepartment)
	}
	if len(gen.calls) != 0 {
		t.Fatal("expected no generation call below the threshold")
	}
}

func TestDecideThresholdIsExclusive(t *testing.T) {
	gen := &fakeGenerator{generate: textResult("Dear customer, thanks for reaching out.")}
	composer := newComposer(gen, &fakeRetrievalStore{}, &fakeInventoryStore{})

	decision := composer.Decide(context.Background(), domain.InboundEmail{ID: "e1"}, domain.Classification{
		Intent:     domain.IntentGeneralInquiry,
		Confidence: 0.75,
	}, domain.EmptyEntities())

	if decision.Outcome != domain.OutcomeGenerated {
		t.Fatalf("expected generated decision at the threshold, got %s", decision.Outcome)
	}
}

func TestDecidePartsOrderEnrichesWithInventory(t *testing.T) {
	gen := &fakeGenerator{generate: textResult("We have those in stock.")}
	store := &fakeRetrievalStore{passages: []domain.RetrievedPassage{{Content: "catalog hit", Score: 0.8}}}
	inv := &fakeInventoryStore{levels: map[string][]domain.StockLevel{
		"BRK-2847": {{Location: "Dallas", SKU: "BRK-2847", PartName: "Brake Pad Set", Quantity: 12, Price: 89.99}},
	}}
	composer := newComposer(gen, store, inv)

	entities := domain.EmptyEntities()
	entities.PartSKUs = []string{"BRK-2847"}
	decision := composer.Decide(context.Background(), domain.InboundEmail{ID: "e1", From: "pat@example.com"},
		domain.Classification{Intent: domain.IntentPartsOrder, Confidence: 0.9}, entities)

	if decision.Outcome != domain.OutcomeGenerated {
		t.Fatalf("expected generated decision, got %s", decision.Outcome)
	}
	if len(decision.Generated.Inventory) != 1 {
		t.Fatalf("expected stock levels attached, got %+v", decision.Generated.Inventory)
	}
	prompt := gen.calls[0].Prompt
	if !strings.Contains(prompt, "- Brake Pad Set (SKU: BRK-2847) at Dallas: 12 in stock ($89.99)") {
		t.Fatalf("missing inventory block:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Relevant Information:\ncatalog hit") &&
		!strings.Contains(prompt, "catalog hit") {
		t.Fatalf("missing retrieval context:\n%s", prompt)
	}
}

func TestDecideCapsInventoryLookups(t *testing.T) {
	gen := &fakeGenerator{generate: textResult("reply")}
	inv := &fakeInventoryStore{}
	composer := newComposer(gen, &fakeRetrievalStore{}, inv)

	entities := domain.EmptyEntities()
	for i := 0; i < 8; i++ {
		entities.PartSKUs = append(entities.PartSKUs, fmt.Sprintf("SKU-%03d", i))
	}
	composer.Decide(context.Background(), domain.InboundEmail{ID: "e1"},
		domain.Classification{Intent: domain.IntentInventoryCheck, Confidence: 0.9}, entities)

	if len(inv.checked) != 5 {
		t.Fatalf("expected 5 inventory lookups, got %d", len(inv.checked))
	}
}

func TestDecideComplaintUsesQualityTier(t *testing.T) {
	gen := &fakeGenerator{generate: textResult("We are very sorry.")}
	composer := newComposer(gen, &fakeRetrievalStore{}, &fakeInventoryStore{})

	composer.Decide(context.Background(), domain.InboundEmail{ID: "e1"},
		domain.Classification{Intent: domain.IntentComplaint, Confidence: 0.9}, domain.EmptyEntities())

	if len(gen.calls) != 1 || gen.calls[0].Tier != domain.TierQuality {
		t.Fatalf("expected QUALITY-tier call, got %+v", gen.calls)
	}
}

func TestDecideServiceInquiryQueriesFAQ(t *testing.T) {
	gen := &fakeGenerator{generate: textResult("reply")}
	store := &fakeRetrievalStore{}
	composer := newComposer(gen, store, &fakeInventoryStore{})

	body := strings.Repeat("b", 400)
	composer.Decide(context.Background(), domain.InboundEmail{ID: "e1", Body: body},
		domain.Classification{Intent: domain.IntentServiceInquiry, Confidence: 0.9}, domain.EmptyEntities())

	if len(store.calls) != 1 {
		t.Fatalf("expected one FAQ search, got %d", len(store.calls))
	}
	call := store.calls[0]
	if call.filter.Type != "faq" {
		t.Fatalf("expected faq filter, got %+v", call.filter)
	}
	if len(call.query) != 200 {
		t.Fatalf("expected 200-character query prefix, got %d", len(call.query))
	}
	if gen.calls[0].Tier != domain.TierBalanced {
		t.Fatalf("expected BALANCED tier, got %s", gen.calls[0].Tier)
	}
}

func TestDecideGenerationFailureDefersWithCause(t *testing.T) {
	gen := &fakeGenerator{generate: func(domain.GenerationRequest) (*domain.GenerationResult, error) {
		return nil, errors.New("all providers exhausted")
	}}
	composer := newComposer(gen, &fakeRetrievalStore{}, &fakeInventoryStore{})

	decision := composer.Decide(context.Background(), domain.InboundEmail{ID: "e1"},
		domain.Classification{Intent: domain.IntentComplaint, Confidence: 0.95}, domain.EmptyEntities())

	if decision.Outcome != domain.OutcomeDeferred {
		t.Fatalf("expected deferred decision, got %s", decision.Outcome)
	}
	if !strings.HasPrefix(decision.Deferred.Reason, "generation error: ") {
		t.Fatalf("unexpected reason: %q", decision.Deferred.Reason)
	}
	if decision.Deferred.SuggestedDepartment != domain.DepartmentCustomerService {
		t.Fatalf("expected customer_service, got %s", decision.Deferred.SuggestedDepartment)
	}
}

func TestDecideInventoryFailureDefers(t *testing.T) {
	gen := &fakeGenerator{generate: textResult("should not be reached")}
	inv := &fakeInventoryStore{err: errors.New("neo4j down")}
	composer := newComposer(gen, &fakeRetrievalStore{}, inv)

	entities := domain.EmptyEntities()
	entities.PartSKUs = []string{"BRK-2847"}
	decision := composer.Decide(context.Background(), domain.InboundEmail{ID: "e1"},
		domain.Classification{Intent: domain.IntentPartsOrder, Confidence: 0.9}, entities)

	if decision.Outcome != domain.OutcomeDeferred {
		t.Fatalf("expected deferred decision, got %s", decision.Outcome)
	}
	if !strings.Contains(decision.Deferred.Reason, "generation error: ") {
		t.Fatalf("unexpected reason: %q", decision.Deferred.Reason)
	}
	if len(gen.calls) != 0 {
		t.Fatal("expected no generation call after enrichment failure")
	}
}

func TestBuildResponsePromptSkipsSentinelContext(t *testing.T) {
	prompt := buildResponsePrompt(domain.InboundEmail{From: "a@b.c"}, domain.Classification{Intent: domain.IntentServiceInquiry},
		domain.EmptyEntities(), nil, NoContextFound)

	if strings.Contains(prompt, NoContextFound) {
		t.Fatal("sentinel must not leak into the prompt")
	}
	if strings.Contains(prompt, "Relevant Information:") {
		t.Fatal("expected no context section for sentinel grounding")
	}
}
