package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"github.com/seanebones-lang/Parts-Dept/internal/core/domain"
)

func newMockRepo(t *testing.T) (*EmailRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewEmailRepository(db), mock
}

func emailColumns() []string {
	return []string{
		"id", "email_id", "sender", "subject", "body", "intent", "confidence",
		"department", "requires_human", "reason", "response_text", "model_used",
		"status", "created_at", "updated_at",
	}
}

func TestCreateInsertsRecord(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectExec(`INSERT INTO processed_emails`).
		WithArgs("rec-1", "em-1", "pat@example.com", "Need pads", "body",
			"", 0.0, "", false, "", "", "", domain.EmailStatusReceived, now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &domain.EmailRecord{
		ID:        "rec-1",
		EmailID:   "em-1",
		Sender:    "pat@example.com",
		Subject:   "Need pads",
		Body:      "body",
		Status:    domain.EmailStatusReceived,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestGetByEmailIDMapsRecord(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows(emailColumns()).AddRow(
		"rec-1", "em-1", "pat@example.com", "Need pads", "body",
		"parts_order", 0.92, "sales", false, nil, "We have those.", "mistral",
		"processed", now, now,
	)
	mock.ExpectQuery(`SELECT .+ FROM processed_emails WHERE email_id = \$1`).
		WithArgs("em-1").
		WillReturnRows(rows)

	record, err := repo.GetByEmailID(context.Background(), "em-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Intent != domain.IntentPartsOrder || record.Department != domain.DepartmentSales {
		t.Fatalf("unexpected record: %+v", record)
	}
	if record.Reason != "" || record.ResponseText != "We have those." {
		t.Fatalf("nullable columns mishandled: %+v", record)
	}
}

func TestGetByEmailIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM processed_emails WHERE email_id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(emailColumns()))

	_, err := repo.GetByEmailID(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveOutcomeDeferred(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE processed_emails`).
		WithArgs("em-1", "parts_order", 0.4, "sales", true,
			"low confidence classification", "", "", domain.EmailStatusProcessed, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	result := &domain.PipelineResult{
		EmailID:        "em-1",
		Classification: domain.Classification{Intent: domain.IntentPartsOrder, Confidence: 0.4},
		Decision:       domain.Defer("low confidence classification", domain.DepartmentSales),
	}
	if err := repo.SaveOutcome(context.Background(), "em-1", result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSaveOutcomeGenerated(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE processed_emails`).
		WithArgs("em-2", "complaint", 0.9, "customer_service", false,
			"", "We apologize.", "claude", domain.EmailStatusProcessed, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	result := &domain.PipelineResult{
		EmailID:        "em-2",
		Classification: domain.Classification{Intent: domain.IntentComplaint, Confidence: 0.9},
		Decision: domain.Generate(domain.GeneratedResponse{
			ResponseText: "We apologize.",
			Department:   domain.DepartmentCustomerService,
			ModelUsed:    "claude",
		}),
	}
	if err := repo.SaveOutcome(context.Background(), "em-2", result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSaveOutcomeMissingEmail(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE processed_emails`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	result := &domain.PipelineResult{
		EmailID:        "ghost",
		Classification: domain.Classification{Intent: domain.IntentGeneralInquiry, Confidence: 0.3},
		Decision:       domain.Defer("low confidence classification", domain.DepartmentCustomerService),
	}
	err := repo.SaveOutcome(context.Background(), "ghost", result)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListRecentScansRows(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows(emailColumns()).
		AddRow("rec-2", "em-2", "a@b.c", "s2", "b2", "complaint", 0.9, "customer_service",
			false, nil, "text", "claude", "processed", now, now).
		AddRow("rec-1", "em-1", "a@b.c", "s1", "b1", nil, 0.0, nil,
			false, nil, nil, nil, "received", now.Add(-time.Hour), now.Add(-time.Hour))
	mock.ExpectQuery(`SELECT .+ FROM processed_emails ORDER BY created_at DESC LIMIT \$1`).
		WithArgs(2).
		WillReturnRows(rows)

	records, err := repo.ListRecent(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[1].Intent != "" || records[1].Status != domain.EmailStatusReceived {
		t.Fatalf("unexpected unprocessed record: %+v", records[1])
	}
}
