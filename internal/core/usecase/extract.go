package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/seanebones-lang/Parts-Dept/internal/core/domain"
	"github.com/seanebones-lang/Parts-Dept/internal/core/ports"
)

const extractMaxTokens = 300

// EntityExtractor pulls structured facts (SKUs, location, contact info,
// quantities) from an email body. Same resilience contract as the
// classifier: any failure yields an empty entity set, never an error.
type EntityExtractor struct {
	generator ports.TextGenerator
}

func NewEntityExtractor(generator ports.TextGenerator) *EntityExtractor {
	return &EntityExtractor{generator: generator}
}

func (e *EntityExtractor) Extract(ctx context.Context, body string) domain.ExtractedEntities {
	result, err := e.generator.Generate(ctx, domain.GenerationRequest{
		Prompt:    buildExtractionPrompt(body),
		Tier:      domain.TierFast,
		MaxTokens: extractMaxTokens,
	})
	if err != nil {
		slog.Warn("entity_extraction_call_failed", "error", err)
		return domain.EmptyEntities()
	}

	entities, ok := decodeEntities(result.Text)
	if !ok {
		slog.Warn("entity_extraction_unparseable", "response_prefix", prefix(result.Text, 120))
		return domain.EmptyEntities()
	}
	return entities
}

func buildExtractionPrompt(body string) string {
	return fmt.Sprintf(`Extract key information from this email:

%s

Extract:
- part_skus: List of part numbers/SKUs mentioned
- location: Any location/branch mentioned
- customer_name: Customer name if mentioned
- contact_info: Phone or email if mentioned
- quantities: Quantities requested

Respond in JSON format:
{
    "part_skus": [],
    "location": null,
    "customer_name": null,
    "contact_info": null,
    "quantities": {}
}`, body)
}

// decodeEntities is best effort per field: absent or mistyped fields
// stay at their zero value rather than failing the whole object.
func decodeEntities(raw string) (domain.ExtractedEntities, bool) {
	object, ok := ExtractJSONObject(raw)
	if !ok {
		return domain.ExtractedEntities{}, false
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(object), &fields); err != nil {
		return domain.ExtractedEntities{}, false
	}

	entities := domain.EmptyEntities()
	entities.PartSKUs = stringSliceField(fields, "part_skus")
	entities.Location = stringField(fields, "location")
	entities.CustomerName = stringField(fields, "customer_name")
	entities.ContactInfo = stringField(fields, "contact_info")

	if quantities, ok := fields["quantities"].(map[string]any); ok {
		for key, value := range quantities {
			if count, ok := intValue(value); ok {
				entities.Quantities[key] = count
			}
		}
	}
	return entities, true
}

func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case string:
		var parsed int
		if _, err := fmt.Sscanf(n, "%d", &parsed); err == nil {
			return parsed, true
		}
	}
	return 0, false
}
