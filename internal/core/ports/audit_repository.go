package ports

import (
	"context"

	"github.com/fieldtrace/maintenance-api/internal/core/domain"
)

// AuditRepository persists the append-only change history. The interface
// deliberately offers no update or delete: records are immutable once written.
type AuditRepository interface {
	Insert(ctx context.Context, record *domain.AuditRecord) error
	// FindByEntity returns one page of records for the entity, newest first,
	// together with the total count across all pages.
	FindByEntity(ctx context.Context, entityType domain.EntityType, entityID string, page, limit int) ([]*domain.AuditRecord, int64, error)
}

// SecurityEventRepository persists access-decision events. Append-only for
// the same reason as the audit trail.
type SecurityEventRepository interface {
	Insert(ctx context.Context, event *domain.SecurityEvent) error
}
