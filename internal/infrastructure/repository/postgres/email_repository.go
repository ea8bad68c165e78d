package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/seanebones-lang/Parts-Dept/internal/core/domain"
)

// EmailRepository persists inbound emails and their pipeline outcomes.
type EmailRepository struct {
	db *sql.DB
}

func NewEmailRepository(db *sql.DB) *EmailRepository {
	return &EmailRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *EmailRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026083001)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS processed_emails (
	id TEXT PRIMARY KEY,
	email_id TEXT NOT NULL UNIQUE,
	sender TEXT NOT NULL,
	subject TEXT NOT NULL,
	body TEXT NOT NULL,
	intent TEXT,
	confidence DOUBLE PRECISION NOT NULL DEFAULT 0,
	department TEXT,
	requires_human BOOLEAN NOT NULL DEFAULT FALSE,
	reason TEXT,
	response_text TEXT,
	model_used TEXT,
	status TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_processed_emails_status ON processed_emails(status);
CREATE INDEX IF NOT EXISTS idx_processed_emails_created_at ON processed_emails(created_at DESC);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *EmailRepository) Create(ctx context.Context, record *domain.EmailRecord) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO processed_emails (
	id, email_id, sender, subject, body, intent, confidence, department,
	requires_human, reason, response_text, model_used, status, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
`,
		record.ID, record.EmailID, record.Sender, record.Subject, record.Body,
		string(record.Intent), record.Confidence, string(record.Department),
		record.RequiresHuman, record.Reason, record.ResponseText, record.ModelUsed,
		record.Status, record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert email record: %w", err)
	}
	return nil
}

func (r *EmailRepository) GetByEmailID(ctx context.Context, emailID string) (*domain.EmailRecord, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, email_id, sender, subject, body, intent, confidence, department,
       requires_human, reason, response_text, model_used, status, created_at, updated_at
FROM processed_emails WHERE email_id = $1
`, emailID)

	record, err := scanEmailRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "get email record", err)
		}
		return nil, fmt.Errorf("select email record: %w", err)
	}
	return record, nil
}

// SaveOutcome stores what the pipeline decided for an email.
func (r *EmailRepository) SaveOutcome(ctx context.Context, emailID string, result *domain.PipelineResult) error {
	var (
		department   domain.Department
		reason       string
		responseText string
		modelUsed    string
	)
	switch result.Decision.Outcome {
	case domain.OutcomeDeferred:
		department = result.Decision.Deferred.SuggestedDepartment
		reason = result.Decision.Deferred.Reason
	case domain.OutcomeGenerated:
		department = result.Decision.Generated.Department
		responseText = result.Decision.Generated.ResponseText
		modelUsed = result.Decision.Generated.ModelUsed
	}

	res, err := r.db.ExecContext(ctx, `
UPDATE processed_emails
SET intent = $2, confidence = $3, department = $4, requires_human = $5,
    reason = $6, response_text = $7, model_used = $8, status = $9, updated_at = $10
WHERE email_id = $1
`,
		emailID, string(result.Classification.Intent), result.Classification.Confidence,
		string(department), result.Decision.RequiresHuman(), reason, responseText, modelUsed,
		domain.EmailStatusProcessed, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("update email outcome: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("email outcome rows affected: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrNotFound, "save email outcome", sql.ErrNoRows)
	}
	return nil
}

func (r *EmailRepository) ListRecent(ctx context.Context, limit int) ([]domain.EmailRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, email_id, sender, subject, body, intent, confidence, department,
       requires_human, reason, response_text, model_used, status, created_at, updated_at
FROM processed_emails ORDER BY created_at DESC LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("select recent emails: %w", err)
	}
	defer rows.Close()

	var records []domain.EmailRecord
	for rows.Next() {
		record, err := scanEmailRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan email record: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate email records: %w", err)
	}
	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmailRecord(row rowScanner) (*domain.EmailRecord, error) {
	var (
		record       domain.EmailRecord
		intent       sql.NullString
		department   sql.NullString
		reason       sql.NullString
		responseText sql.NullString
		modelUsed    sql.NullString
	)
	err := row.Scan(
		&record.ID, &record.EmailID, &record.Sender, &record.Subject, &record.Body,
		&intent, &record.Confidence, &department, &record.RequiresHuman,
		&reason, &responseText, &modelUsed, &record.Status,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	record.Intent = domain.Intent(intent.String)
	record.Department = domain.Department(department.String)
	record.Reason = reason.String
	record.ResponseText = responseText.String
	record.ModelUsed = modelUsed.String
	return &record, nil
}
