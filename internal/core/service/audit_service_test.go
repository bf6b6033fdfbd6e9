package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fieldtrace/maintenance-api/internal/core/domain"
	"github.com/fieldtrace/maintenance-api/internal/core/ports"
)

func TestAuditService_RecordAssignsTimestamp(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	svc.Record(context.Background(), ports.AuditEntry{
		EntityType: domain.EntityClient,
		EntityID:   "client_1",
		Action:     domain.ActionCreate,
		Changes:    map[string]any{"name": "Acme"},
	})

	if len(repo.records) != 1 {
		t.Fatalf("expected one record, got %d", len(repo.records))
	}
	if repo.records[0].CreatedAt.IsZero() {
		t.Fatalf("timestamp must be assigned by the recorder")
	}
	if repo.records[0].CreatedAt.Location() != time.UTC {
		t.Fatalf("timestamp must be UTC")
	}
}

// A failed append is swallowed: the caller's mutation already succeeded.
func TestAuditService_RecordNeverPropagatesFailure(t *testing.T) {
	repo := &stubAuditRepo{insertErr: errors.New("store down")}
	svc := NewAuditService(repo, zerolog.Nop())

	// Must not panic or propagate anything.
	svc.Record(context.Background(), ports.AuditEntry{
		EntityType: domain.EntityUser,
		EntityID:   "user_1",
		Action:     domain.ActionUpdate,
	})
	if len(repo.records) != 0 {
		t.Fatalf("expected no records")
	}
}

func TestAuditService_History_Pagination(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	for i := 0; i < 45; i++ {
		svc.Record(context.Background(), ports.AuditEntry{
			EntityType: domain.EntityWorkOrder,
			EntityID:   "wo_1",
			Action:     domain.ActionUpdate,
			Changes:    map[string]any{"seq": i},
		})
	}

	result, err := svc.History(context.Background(), domain.EntityWorkOrder, "wo_1", 2, 20)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if result.Total != 45 {
		t.Fatalf("expected total 45, got %d", result.Total)
	}
	if result.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", result.TotalPages)
	}
	if len(result.Records) != 20 {
		t.Fatalf("expected 20 records on page 2, got %d", len(result.Records))
	}
	// Newest first: page 2 starts at the 21st newest, which carries seq 24.
	if result.Records[0].Changes["seq"] != 24 {
		t.Fatalf("unexpected first record on page 2: %v", result.Records[0].Changes)
	}

	last, err := svc.History(context.Background(), domain.EntityWorkOrder, "wo_1", 3, 20)
	if err != nil {
		t.Fatalf("History page 3: %v", err)
	}
	if len(last.Records) != 5 {
		t.Fatalf("expected 5 records on the last page, got %d", len(last.Records))
	}
}

func TestAuditService_History_Defaults(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	result, err := svc.History(context.Background(), domain.EntityClient, "client_1", 0, 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if result.Page != 1 || result.Limit != defaultHistoryLimit {
		t.Fatalf("defaults not applied: page=%d limit=%d", result.Page, result.Limit)
	}

	capped, err := svc.History(context.Background(), domain.EntityClient, "client_1", 1, 5000)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if capped.Limit != maxHistoryLimit {
		t.Fatalf("limit not capped: %d", capped.Limit)
	}
}

func TestAuditService_History_UnknownEntityType(t *testing.T) {
	svc := NewAuditService(&stubAuditRepo{}, zerolog.Nop())
	if _, err := svc.History(context.Background(), "invoice", "x", 1, 20); !errors.Is(err, domain.ErrInvalidEntityType) {
		t.Fatalf("expected ErrInvalidEntityType, got %v", err)
	}
}

// Every mutation through a service yields exactly one audit record.
func TestAuditService_OneRecordPerMutation(t *testing.T) {
	auditRepo := &stubAuditRepo{}
	auditSvc := NewAuditService(auditRepo, zerolog.Nop())
	orders := newStubWorkOrderRepo()
	svc := NewWorkOrderService(orders, auditSvc, zerolog.Nop())

	meta := domain.RequestMeta{ActorID: "admin_1"}
	order, err := svc.Create(context.Background(), ports.WorkOrderInput{ProjectID: "p1", Title: "fix pump"}, meta)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Update(context.Background(), order.ID, ports.WorkOrderInput{Title: "fix pump #2"}, meta); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := svc.ChangeStatus(context.Background(), order.ID, domain.WorkOrderAssigned, "", meta); err != nil {
		t.Fatalf("change status: %v", err)
	}

	result, err := auditSvc.History(context.Background(), domain.EntityWorkOrder, order.ID, 1, 20)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if result.Total != 3 {
		t.Fatalf("expected 3 records for 3 mutations, got %d", result.Total)
	}
	// Newest first.
	wantActions := []domain.AuditAction{domain.ActionStatusChange, domain.ActionUpdate, domain.ActionCreate}
	for i, want := range wantActions {
		if result.Records[i].Action != want {
			t.Fatalf("record %d: expected %s, got %s", i, want, result.Records[i].Action)
		}
	}
}
