package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/fieldtrace/maintenance-api/internal/api/metrics"
	"github.com/fieldtrace/maintenance-api/internal/core/domain"
	"github.com/fieldtrace/maintenance-api/internal/core/ports"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// AuditService implements ports.AuditRecorder on top of an append-only store.
type AuditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService writing through repo.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) *AuditService {
	return &AuditService{repo: repo, log: log}
}

// Record appends one audit record for a completed domain mutation. The
// timestamp is assigned here, never client-supplied. A failed append is
// logged and counted but never propagated: the domain write already
// succeeded and must not be reported as failed.
func (s *AuditService) Record(ctx context.Context, entry ports.AuditEntry) {
	record := &domain.AuditRecord{
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Action:     entry.Action,
		Changes:    entry.Changes,
		Previous:   entry.Previous,
		ActorID:    entry.Meta.ActorID,
		IPAddress:  entry.Meta.IPAddress,
		UserAgent:  entry.Meta.UserAgent,
		Notes:      entry.Notes,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, record); err != nil {
		metrics.AuditWriteFailuresTotal.Inc()
		s.log.Error().Err(err).
			Str("entity_type", string(entry.EntityType)).
			Str("entity_id", entry.EntityID).
			Str("action", string(entry.Action)).
			Str("actor_id", entry.Meta.ActorID).
			Msg("audit append failed")
		return
	}

	metrics.AuditWritesTotal.WithLabelValues(string(entry.EntityType), string(entry.Action)).Inc()
}

// History returns one page of an entity's change history, newest first, with
// pagination metadata.
func (s *AuditService) History(ctx context.Context, entityType domain.EntityType, entityID string, page, limit int) (*ports.HistoryResult, error) {
	if !domain.ValidEntityType(entityType) {
		return nil, domain.ErrInvalidEntityType
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	records, total, err := s.repo.FindByEntity(ctx, entityType, entityID, page, limit)
	if err != nil {
		return nil, err
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.HistoryResult{
		Records:    records,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: pages,
	}, nil
}
