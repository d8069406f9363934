package audit

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"vouch/internal/verification/models"
)

// PostgresStore persists audit events in a single append-only table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the audit table if it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS verification_audit (
			id          TEXT PRIMARY KEY,
			session_id  TEXT NOT NULL,
			decision    TEXT NOT NULL,
			final_score DOUBLE PRECISION NOT NULL,
			reasons     JSONB NOT NULL,
			recorded_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS verification_audit_session_idx
			ON verification_audit (session_id);
	`)
	if err != nil {
		return fmt.Errorf("ensure audit schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO verification_audit (id, session_id, decision, final_score, reasons, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, event.ID, event.SessionID, string(event.Decision), event.FinalScore, event.Reasons, event.RecordedAt)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListBySession(ctx context.Context, sessionID string) ([]Event, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, session_id, decision, final_score, reasons, recorded_at
		FROM verification_audit
		WHERE session_id = $1
		ORDER BY recorded_at
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		var decision string
		if err := rows.Scan(&e.ID, &e.SessionID, &decision, &e.FinalScore, &e.Reasons, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		e.Decision = models.Decision(decision)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	return out, nil
}
