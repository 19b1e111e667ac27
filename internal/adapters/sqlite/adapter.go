// Package sqlite provides a SQLite-backed implementation of the audit repository port.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously

	"github.com/ewilliams-labs/soundify/internal/core/domain"
	"github.com/ewilliams-labs/soundify/internal/core/ports"
)

const defaultListLimit = 50

// Adapter implements the audit repository port for SQLite
type Adapter struct {
	db *sql.DB
}

var _ ports.AuditRepository = (*Adapter)(nil)

// NewAdapter creates a connection and runs the schema migration
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	// SQLite allows one writer; this also keeps ":memory:" on a single database.
	db.SetMaxOpenConns(1)

	// Verify connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	adapter := &Adapter{db: db}

	if err := adapter.migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return adapter, nil
}

// Close ensures the DB connection is closed gracefully
func (a *Adapter) Close() error {
	return a.db.Close()
}

func (a *Adapter) SaveRecord(ctx context.Context, rec domain.AuditRecord) error {
	query := `
		INSERT INTO request_audit (
			id, request_id, variant, outcome, items, error, duration_ms, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`
	if _, err := a.db.ExecContext(
		ctx,
		query,
		rec.ID,
		rec.RequestID,
		rec.Variant,
		rec.Outcome,
		rec.Items,
		rec.Error,
		rec.Duration.Milliseconds(),
		rec.CreatedAt.UnixNano(),
	); err != nil {
		return fmt.Errorf("failed to save audit record %s: %w", rec.ID, err)
	}
	return nil
}

// ListRecent returns the newest records first. A non-positive limit falls
// back to defaultListLimit.
func (a *Adapter) ListRecent(ctx context.Context, limit int) ([]domain.AuditRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := a.db.QueryContext(ctx, `
		SELECT id, request_id, variant, outcome, items, error, duration_ms, created_at
		FROM request_audit
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit records: %w", err)
	}
	defer rows.Close()

	records := []domain.AuditRecord{}
	for rows.Next() {
		var rec domain.AuditRecord
		var requestID sql.NullString
		var errText sql.NullString
		var durationMs int64
		var createdAt int64
		if err := rows.Scan(
			&rec.ID,
			&requestID,
			&rec.Variant,
			&rec.Outcome,
			&rec.Items,
			&errText,
			&durationMs,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit record: %w", err)
		}
		if requestID.Valid {
			rec.RequestID = requestID.String
		}
		if errText.Valid {
			rec.Error = errText.String
		}
		rec.Duration = time.Duration(durationMs) * time.Millisecond
		rec.CreatedAt = time.Unix(0, createdAt).UTC()
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit records: %w", err)
	}

	return records, nil
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS request_audit (
		id TEXT PRIMARY KEY,
		request_id TEXT,
		variant TEXT NOT NULL,
		outcome TEXT NOT NULL,
		items INTEGER NOT NULL DEFAULT 0,
		error TEXT,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_request_audit_created_at ON request_audit(created_at);
	`
	if _, err := a.db.Exec(query); err != nil {
		return err
	}

	return nil
}
