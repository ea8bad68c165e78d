package httpadapter

import (
	"time"

	"github.com/google/uuid"

	"github.com/seanebones-lang/Parts-Dept/internal/core/domain"
)

func newReceivedRecord(email domain.InboundEmail) *domain.EmailRecord {
	now := time.Now().UTC()
	return &domain.EmailRecord{
		ID:        uuid.NewString(),
		EmailID:   email.ID,
		Sender:    email.From,
		Subject:   email.Subject,
		Body:      email.Body,
		Status:    domain.EmailStatusReceived,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
