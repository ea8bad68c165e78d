package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/seanebones-lang/Parts-Dept/internal/core/domain"
	"github.com/seanebones-lang/Parts-Dept/internal/core/ports"
)

const (
	// Cap on per-email inventory fan-out.
	maxInventoryLookups = 5
	// FAQ retrieval keys on a bounded prefix of the body.
	faqQueryLimit = 200

	responseMaxTokens = 1500

	lowConfidenceReason = "low confidence classification"
)

const responderSystemPrompt = `You are a helpful customer service representative for an auto parts dealer.
Be professional, friendly, and provide accurate information based on the context provided.
If you cannot fully answer, politely suggest contacting the appropriate department.`

// ResponseComposer applies the confidence gate and, when it passes,
// composes a grounded reply through the provider router. Decide always
// returns a usable decision; failures during enrichment or generation
// collapse into a Deferred outcome carrying the cause.
type ResponseComposer struct {
	generator ports.TextGenerator
	contexts  *ContextBuilder
	inventory ports.InventoryStore
	threshold float64
}

func NewResponseComposer(
	generator ports.TextGenerator,
	contexts *ContextBuilder,
	inventory ports.InventoryStore,
	confidenceThreshold float64,
) *ResponseComposer {
	return &ResponseComposer{
		generator: generator,
		contexts:  contexts,
		inventory: inventory,
		threshold: confidenceThreshold,
	}
}

func (c *ResponseComposer) Decide(
	ctx context.Context,
	email domain.InboundEmail,
	cls domain.Classification,
	entities domain.ExtractedEntities,
) domain.ResponseDecision {
	department := domain.DepartmentFor(cls.Intent)

	// Hard cutoff: low confidence is a property of the classification
	// call, not something more generation spend can repair.
	if cls.Confidence < c.threshold {
		slog.Info("email_deferred", "email_id", email.ID, "reason", lowConfidenceReason, "department", department)
		return domain.Defer(lowConfidenceReason, department)
	}

	grounding, stock, err := c.enrich(ctx, email, cls, entities)
	if err != nil {
		slog.Warn("response_enrichment_failed", "email_id", email.ID, "error", err)
		return domain.Defer(fmt.Sprintf("generation error: %v", err), department)
	}

	tier := domain.TierBalanced
	if cls.Intent == domain.IntentComplaint {
		tier = domain.TierQuality
	}

	result, err := c.generator.Generate(ctx, domain.GenerationRequest{
		Prompt:    buildResponsePrompt(email, cls, entities, stock, grounding),
		System:    responderSystemPrompt,
		Tier:      tier,
		MaxTokens: responseMaxTokens,
	})
	if err != nil {
		slog.Warn("response_generation_failed", "email_id", email.ID, "error", err)
		return domain.Defer(fmt.Sprintf("generation error: %v", err), department)
	}

	return domain.Generate(domain.GeneratedResponse{
		ResponseText: result.Text,
		Department:   department,
		Inventory:    stock,
		Confidence:   cls.Confidence,
		ModelUsed:    result.ModelUsed,
	})
}

// enrich gathers inventory facts and retrieval context for intents that
// benefit from grounding. Other intents proceed bare.
func (c *ResponseComposer) enrich(
	ctx context.Context,
	email domain.InboundEmail,
	cls domain.Classification,
	entities domain.ExtractedEntities,
) (grounding string, stock []domain.StockLevel, err error) {
	switch cls.Intent {
	case domain.IntentPartsOrder, domain.IntentInventoryCheck:
		skus := entities.PartSKUs
		if len(skus) == 0 {
			return "", nil, nil
		}
		if len(skus) > maxInventoryLookups {
			skus = skus[:maxInventoryLookups]
		}
		for _, sku := range skus {
			levels, err := c.inventory.Check(ctx, sku, "")
			if err != nil {
				return "", nil, fmt.Errorf("check inventory for %s: %w", sku, err)
			}
			stock = append(stock, levels...)
		}
		grounding, err = c.contexts.Build(ctx, ContextRequest{
			Query: "parts " + strings.Join(skus, " "),
			Type:  domain.ContextParts,
		})
		if err != nil {
			return "", nil, err
		}
		return grounding, stock, nil

	case domain.IntentServiceInquiry:
		grounding, err = c.contexts.Build(ctx, ContextRequest{
			Query: prefix(email.Body, faqQueryLimit),
			Type:  domain.ContextFAQ,
		})
		if err != nil {
			return "", nil, err
		}
		return grounding, nil, nil
	}

	return "", nil, nil
}

func buildResponsePrompt(
	email domain.InboundEmail,
	cls domain.Classification,
	entities domain.ExtractedEntities,
	stock []domain.StockLevel,
	grounding string,
) string {
	entitiesJSON, err := json.MarshalIndent(entities, "", "  ")
	if err != nil {
		entitiesJSON = []byte("{}")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `Customer Email:
From: %s
Subject: %s
Body: %s

Intent: %s
Extracted Information: %s
`, email.From, email.Subject, email.Body, cls.Intent, entitiesJSON)

	if len(stock) > 0 {
		sb.WriteString("\nInventory Information:\n")
		for _, item := range stock {
			fmt.Fprintf(&sb, "- %s (SKU: %s) at %s: %d in stock ($%.2f)\n",
				item.PartName, item.SKU, item.Location, item.Quantity, item.Price)
		}
	}

	if grounding != "" && grounding != NoContextFound {
		fmt.Fprintf(&sb, "\nRelevant Information:\n%s\n", grounding)
	}

	sb.WriteString("\nGenerate a professional email response to the customer.")
	return sb.String()
}
