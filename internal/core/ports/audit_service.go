package ports

import (
	"context"

	"github.com/fieldtrace/maintenance-api/internal/core/domain"
)

// AuditEntry is the input to the audit recorder: one mutation on one tracked
// entity. Changes holds new values (create) or old+new pairs (update);
// Previous holds the pre-mutation snapshot when applicable.
type AuditEntry struct {
	EntityType domain.EntityType
	EntityID   string
	Action     domain.AuditAction
	Changes    map[string]any
	Previous   map[string]any
	Meta       domain.RequestMeta
	Notes      string
}

// HistoryResult is one page of an entity's change history, newest first.
type HistoryResult struct {
	Records    []*domain.AuditRecord
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// AuditRecorder appends and queries the immutable change history.
type AuditRecorder interface {
	// Record appends one audit record. It never fails the caller: append
	// errors are logged and counted, not propagated, because the domain
	// mutation has already succeeded.
	Record(ctx context.Context, entry AuditEntry)
	History(ctx context.Context, entityType domain.EntityType, entityID string, page, limit int) (*HistoryResult, error)
}
