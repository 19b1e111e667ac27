package ports

import (
	"context"

	"github.com/ewilliams-labs/soundify/internal/core/domain"
)

// AuditRepository stores request audit records.
type AuditRepository interface {
	SaveRecord(ctx context.Context, rec domain.AuditRecord) error
	ListRecent(ctx context.Context, limit int) ([]domain.AuditRecord, error)
}

// AuditSink accepts audit records without blocking the caller.
type AuditSink interface {
	Submit(rec domain.AuditRecord)
}
