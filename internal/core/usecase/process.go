package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/seanebones-lang/Parts-Dept/internal/core/domain"
	"github.com/seanebones-lang/Parts-Dept/internal/core/ports"
)

// ProcessEmailUseCase orchestrates one pipeline run: classify, extract,
// then gate-and-compose. Each run is a pure transformation of its
// inputs plus calls to stateless collaborators, so concurrent runs for
// different emails need no coordination.
type ProcessEmailUseCase struct {
	classifier *IntentClassifier
	extractor  *EntityExtractor
	composer   *ResponseComposer
	repo       ports.EmailRepository
}

func NewProcessEmailUseCase(
	classifier *IntentClassifier,
	extractor *EntityExtractor,
	composer *ResponseComposer,
	repo ports.EmailRepository,
) *ProcessEmailUseCase {
	return &ProcessEmailUseCase{
		classifier: classifier,
		extractor:  extractor,
		composer:   composer,
		repo:       repo,
	}
}

// Process runs the decision pipeline over one email. Classification and
// extraction degrade to documented defaults instead of failing; any
// generation-stage failure is folded into a Deferred decision, so the
// returned result is always usable.
func (uc *ProcessEmailUseCase) Process(ctx context.Context, email domain.InboundEmail) (*domain.PipelineResult, error) {
	slog.Info("processing_email", "email_id", email.ID, "subject", prefix(email.Subject, 50))

	classification := uc.classifier.Classify(ctx, email.Subject, email.Body)
	entities := uc.extractor.Extract(ctx, email.Body)
	decision := uc.composer.Decide(ctx, email, classification, entities)

	return &domain.PipelineResult{
		EmailID:        email.ID,
		Classification: classification,
		Entities:       entities,
		Decision:       decision,
		ProcessedAt:    time.Now().UTC(),
	}, nil
}

// ProcessByEmailID loads a stored inbound email, runs the pipeline and
// persists the outcome. This is the worker's entry point.
func (uc *ProcessEmailUseCase) ProcessByEmailID(ctx context.Context, emailID string) (*domain.PipelineResult, error) {
	record, err := uc.repo.GetByEmailID(ctx, emailID)
	if err != nil {
		return nil, fmt.Errorf("fetch email record: %w", err)
	}

	result, err := uc.Process(ctx, domain.InboundEmail{
		ID:      record.EmailID,
		From:    record.Sender,
		Subject: record.Subject,
		Body:    record.Body,
	})
	if err != nil {
		return nil, err
	}

	if err := uc.repo.SaveOutcome(ctx, emailID, result); err != nil {
		return nil, fmt.Errorf("save pipeline outcome: %w", err)
	}
	return result, nil
}
