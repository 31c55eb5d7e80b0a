package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"lexdiff/internal/diff"
)

// PostgresStore archives statute diffs as JSON payloads. The payload uses the
// same JSON convention as forensic audit records so a compliance reader can
// consume both with one decoder.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Schema returns the DDL for the statute_diffs table. Applied by migrations
// in deployment; tests apply it directly.
func Schema() string {
	return `
		CREATE TABLE IF NOT EXISTS statute_diffs (
			id UUID PRIMARY KEY,
			statute_id TEXT NOT NULL,
			old_version TEXT NOT NULL DEFAULT '',
			new_version TEXT NOT NULL DEFAULT '',
			severity TEXT NOT NULL,
			payload JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS statute_diffs_statute_idx
			ON statute_diffs (statute_id, created_at);
	`
}

// Save inserts one archived diff row.
func (s *PostgresStore) Save(ctx context.Context, d *diff.StatuteDiff) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal statute diff: %w", err)
	}

	var oldVersion, newVersion string
	if d.Versions != nil {
		oldVersion, newVersion = d.Versions.Old, d.Versions.New
	}

	query := `
		INSERT INTO statute_diffs (id, statute_id, old_version, new_version, severity, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = s.db.ExecContext(ctx, query,
		uuid.New(),
		d.StatuteID,
		oldVersion,
		newVersion,
		d.Impact.Severity.String(),
		payload,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("insert statute diff: %w", err)
	}
	return nil
}

// GetLatest returns the most recently archived diff for one statute, or
// ErrNotFound when none exists.
func (s *PostgresStore) GetLatest(ctx context.Context, statuteID string) (*diff.StatuteDiff, error) {
	query := `
		SELECT payload FROM statute_diffs
		WHERE statute_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	var payload []byte
	if err := s.db.QueryRowContext(ctx, query, statuteID).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query latest statute diff: %w", err)
	}
	var d diff.StatuteDiff
	if err := json.Unmarshal(payload, &d); err != nil {
		return nil, fmt.Errorf("unmarshal statute diff: %w", err)
	}
	return &d, nil
}

// ListByStatute returns archived diffs for one statute, oldest first.
func (s *PostgresStore) ListByStatute(ctx context.Context, statuteID string) ([]*diff.StatuteDiff, error) {
	query := `
		SELECT payload FROM statute_diffs
		WHERE statute_id = $1
		ORDER BY created_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, statuteID)
	if err != nil {
		return nil, fmt.Errorf("query statute diffs: %w", err)
	}
	defer rows.Close()

	var out []*diff.StatuteDiff
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan statute diff: %w", err)
		}
		var d diff.StatuteDiff
		if err := json.Unmarshal(payload, &d); err != nil {
			return nil, fmt.Errorf("unmarshal statute diff: %w", err)
		}
		out = append(out, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate statute diffs: %w", err)
	}
	return out, nil
}
