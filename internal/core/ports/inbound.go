package ports

import (
	"context"

	"github.com/seanebones-lang/Parts-Dept/internal/core/domain"
)

// EmailProcessor is the inbound contract for the decision pipeline.
type EmailProcessor interface {
	Process(ctx context.Context, email domain.InboundEmail) (*domain.PipelineResult, error)
}

// StoredEmailProcessor runs the pipeline over a previously persisted email.
type StoredEmailProcessor interface {
	ProcessByEmailID(ctx context.Context, emailID string) (*domain.PipelineResult, error)
}

// EmailReader is the inbound read model for processed-email records.
type EmailReader interface {
	GetByEmailID(ctx context.Context, emailID string) (*domain.EmailRecord, error)
}
