package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fieldtrace/maintenance-api/internal/core/domain"
	"github.com/fieldtrace/maintenance-api/internal/core/ports"
)

// WorkOrderService implements maintenance-task management through the audit
// pipeline. Status changes validate the work-order state machine.
type WorkOrderService struct {
	repo  ports.WorkOrderRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewWorkOrderService(repo ports.WorkOrderRepository, audit ports.AuditRecorder, log zerolog.Logger) *WorkOrderService {
	return &WorkOrderService{repo: repo, audit: audit, log: log}
}

func (s *WorkOrderService) Create(ctx context.Context, in ports.WorkOrderInput, meta domain.RequestMeta) (*domain.WorkOrder, error) {
	if in.Title == "" || in.ProjectID == "" {
		return nil, domain.ErrValidation
	}

	now := time.Now().UTC()
	order := &domain.WorkOrder{
		ProjectID:   in.ProjectID,
		PointID:     in.PointID,
		Title:       in.Title,
		Description: in.Description,
		Status:      domain.WorkOrderPending,
		AssigneeID:  in.AssigneeID,
		MaterialIDs: in.MaterialIDs,
		ScheduledAt: in.ScheduledAt,
		CreatedBy:   meta.ActorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	cs := newChangeSet()
	cs.set("project_id", created.ProjectID)
	cs.set("point_id", created.PointID)
	cs.set("title", created.Title)
	cs.set("description", created.Description)
	cs.set("status", string(created.Status))
	cs.set("assignee_id", created.AssigneeID)
	s.audit.Record(ctx, ports.AuditEntry{
		EntityType: domain.EntityWorkOrder,
		EntityID:   created.ID,
		Action:     domain.ActionCreate,
		Changes:    cs.changes,
		Meta:       meta,
	})
	return created, nil
}

func (s *WorkOrderService) Get(ctx context.Context, id string) (*domain.WorkOrder, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *WorkOrderService) Update(ctx context.Context, id string, in ports.WorkOrderInput, meta domain.RequestMeta) (*domain.WorkOrder, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cs := newChangeSet()
	if in.Title != "" {
		cs.diff("title", order.Title, in.Title)
		order.Title = in.Title
	}
	if in.Description != "" {
		cs.diff("description", order.Description, in.Description)
		order.Description = in.Description
	}
	if in.AssigneeID != "" {
		cs.diff("assignee_id", order.AssigneeID, in.AssigneeID)
		order.AssigneeID = in.AssigneeID
	}
	if in.PointID != "" {
		cs.diff("point_id", order.PointID, in.PointID)
		order.PointID = in.PointID
	}
	if !in.ScheduledAt.IsZero() && !in.ScheduledAt.Equal(order.ScheduledAt) {
		cs.diff("scheduled_at", order.ScheduledAt.Format(time.RFC3339), in.ScheduledAt.UTC().Format(time.RFC3339))
		order.ScheduledAt = in.ScheduledAt.UTC()
	}
	if in.MaterialIDs != nil {
		cs.diff("material_ids", strings.Join(order.MaterialIDs, ","), strings.Join(in.MaterialIDs, ","))
		order.MaterialIDs = in.MaterialIDs
	}

	if !cs.empty() {
		order.UpdatedAt = time.Now().UTC()
		if err := s.repo.Update(ctx, order); err != nil {
			return nil, err
		}
		s.audit.Record(ctx, ports.AuditEntry{
			EntityType: domain.EntityWorkOrder,
			EntityID:   order.ID,
			Action:     domain.ActionUpdate,
			Changes:    cs.changes,
			Previous:   cs.previous,
			Meta:       meta,
		})
	}
	return order, nil
}

// ChangeStatus applies a state-machine transition and records it.
func (s *WorkOrderService) ChangeStatus(ctx context.Context, id string, status domain.WorkOrderStatus, notes string, meta domain.RequestMeta) error {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !order.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidStatus, order.Status, status)
	}

	previous := order.Status
	order.Status = status
	order.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, order); err != nil {
		return err
	}

	s.audit.Record(ctx, ports.AuditEntry{
		EntityType: domain.EntityWorkOrder,
		EntityID:   order.ID,
		Action:     domain.ActionStatusChange,
		Changes:    map[string]any{"status": string(status)},
		Previous:   map[string]any{"status": string(previous)},
		Notes:      notes,
		Meta:       meta,
	})
	return nil
}

func (s *WorkOrderService) Delete(ctx context.Context, id string, meta domain.RequestMeta) error {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, ports.AuditEntry{
		EntityType: domain.EntityWorkOrder,
		EntityID:   id,
		Action:     domain.ActionDelete,
		Changes:    map[string]any{"deleted": true},
		Previous:   map[string]any{"title": order.Title, "status": string(order.Status)},
		Meta:       meta,
	})
	return nil
}
