package domain

import (
	"time"

	"github.com/google/uuid"
)

// Outcome values stored on an AuditRecord.
const (
	OutcomeOK         = "ok"
	OutcomeBadRequest = "bad_request"
	OutcomeUpstream   = "upstream_error"
)

// AuditRecord describes one handled recommendation request. It never
// carries listening history or query text.
type AuditRecord struct {
	ID        string        `json:"id"`
	RequestID string        `json:"request_id,omitempty"`
	Variant   string        `json:"variant"`
	Outcome   string        `json:"outcome"`
	Items     int           `json:"items"`
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"created_at"`
}

// NewAuditRecord stamps a record with a fresh id and the current time.
func NewAuditRecord(requestID, variant string) AuditRecord {
	return AuditRecord{
		ID:        uuid.New().String(),
		RequestID: requestID,
		Variant:   variant,
		CreatedAt: time.Now().UTC(),
	}
}

// OutcomeFor maps a request error to its stored outcome.
func OutcomeFor(err error) string {
	if err == nil {
		return OutcomeOK
	}
	if KindOf(err) == KindBadRequest {
		return OutcomeBadRequest
	}
	return OutcomeUpstream
}
