package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/seanebones-lang/Parts-Dept/internal/core/domain"
	"github.com/seanebones-lang/Parts-Dept/internal/core/ports"
)

const (
	classifyBodyLimit = 500
	classifyMaxTokens = 300

	// Documented degradation defaults: a parse failure keeps more trust
	// in the call than a failed call does.
	parseFailureConfidence = 0.5
	callFailureConfidence  = 0.3
)

// IntentClassifier turns raw email text into a Classification with a
// single FAST-tier call. It never propagates an error: any failure
// degrades to a default classification that routes toward a human.
type IntentClassifier struct {
	generator ports.TextGenerator
}

func NewIntentClassifier(generator ports.TextGenerator) *IntentClassifier {
	return &IntentClassifier{generator: generator}
}

func (c *IntentClassifier) Classify(ctx context.Context, subject, body string) domain.Classification {
	result, err := c.generator.Generate(ctx, domain.GenerationRequest{
		Prompt:    buildClassificationPrompt(subject, body),
		Tier:      domain.TierFast,
		MaxTokens: classifyMaxTokens,
	})
	if err != nil {
		slog.Warn("intent_classification_call_failed", "error", err)
		return defaultClassification(callFailureConfidence)
	}

	cls, ok := decodeClassification(result.Text)
	if !ok {
		slog.Warn("intent_classification_unparseable", "response_prefix", prefix(result.Text, 120))
		return defaultClassification(parseFailureConfidence)
	}

	slog.Info("email_classified", "intent", cls.Intent, "confidence", cls.Confidence, "urgency", cls.Urgency)
	return cls
}

func buildClassificationPrompt(subject, body string) string {
	return fmt.Sprintf(`Classify the intent of this customer email. Choose the most appropriate category.

Subject: %s
Body: %s

Categories:
- parts_order: Customer wants to order parts
- service_inquiry: Question about service or installation
- invoice_request: Requesting invoice or payment information
- inventory_check: Checking if parts are in stock
- general_inquiry: General questions
- complaint: Issue or complaint
- transfer_request: Requesting part transfer between locations

Respond in JSON format:
{
    "intent": "category_name",
    "confidence": 0.0-1.0,
    "key_entities": ["extracted", "entities"],
    "urgency": "low/medium/high"
}`, subject, prefix(body, classifyBodyLimit))
}

// decodeClassification converts untrusted model output into the closed
// Classification type. Field policy: unknown intent falls back to
// general_inquiry, confidence is clamped to [0,1], urgency defaults to
// medium, non-string entity values are dropped.
func decodeClassification(raw string) (domain.Classification, bool) {
	object, ok := ExtractJSONObject(raw)
	if !ok {
		return domain.Classification{}, false
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(object), &fields); err != nil {
		return domain.Classification{}, false
	}

	cls := domain.Classification{
		Intent:      domain.IntentGeneralInquiry,
		Confidence:  parseFailureConfidence,
		KeyEntities: []string{},
		Urgency:     domain.UrgencyMedium,
	}
	if intent := domain.Intent(stringField(fields, "intent")); intent.Valid() {
		cls.Intent = intent
	}
	if confidence, ok := floatField(fields, "confidence"); ok {
		cls.Confidence = clamp01(confidence)
	}
	if urgency := domain.Urgency(stringField(fields, "urgency")); urgency.Valid() {
		cls.Urgency = urgency
	}
	cls.KeyEntities = stringSliceField(fields, "key_entities")
	return cls, true
}

func defaultClassification(confidence float64) domain.Classification {
	return domain.Classification{
		Intent:      domain.IntentGeneralInquiry,
		Confidence:  confidence,
		KeyEntities: []string{},
		Urgency:     domain.UrgencyMedium,
	}
}

func stringField(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return s
}

func floatField(fields map[string]any, key string) (float64, bool) {
	switch v := fields[key].(type) {
	case float64:
		return v, true
	case string:
		var parsed float64
		if _, err := fmt.Sscanf(v, "%g", &parsed); err == nil {
			return parsed, true
		}
	}
	return 0, false
}

func stringSliceField(fields map[string]any, key string) []string {
	out := []string{}
	items, _ := fields[key].([]any)
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func prefix(s string, limit int) string {
	if len(s) > limit {
		return s[:limit]
	}
	return s
}
