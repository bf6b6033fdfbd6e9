package ports

import (
	"context"
	"time"

	"github.com/fieldtrace/maintenance-api/internal/core/domain"
)

// ClientInput carries create/update data for a client. On update, empty
// fields are left unchanged.
type ClientInput struct {
	Name    string
	TaxID   string
	Email   string
	Phone   string
	Address string
}

// ClientService defines client management, audited end to end.
type ClientService interface {
	Create(ctx context.Context, in ClientInput, meta domain.RequestMeta) (*domain.Client, error)
	Get(ctx context.Context, id string) (*domain.Client, error)
	Update(ctx context.Context, id string, in ClientInput, meta domain.RequestMeta) (*domain.Client, error)
	Delete(ctx context.Context, id string, meta domain.RequestMeta) error
}

// ProjectInput carries create/update data for a project.
type ProjectInput struct {
	ClientID string
	Name     string
	Location string
}

// ProjectService defines project management, audited end to end.
type ProjectService interface {
	Create(ctx context.Context, in ProjectInput, meta domain.RequestMeta) (*domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	Update(ctx context.Context, id string, in ProjectInput, meta domain.RequestMeta) (*domain.Project, error)
	Delete(ctx context.Context, id string, meta domain.RequestMeta) error
}

// WorkOrderInput carries create/update data for a work order.
type WorkOrderInput struct {
	ProjectID   string
	PointID     string
	Title       string
	Description string
	AssigneeID  string
	MaterialIDs []string
	ScheduledAt time.Time
}

// WorkOrderService defines work-order management, audited end to end.
// Status changes validate the work-order state machine.
type WorkOrderService interface {
	Create(ctx context.Context, in WorkOrderInput, meta domain.RequestMeta) (*domain.WorkOrder, error)
	Get(ctx context.Context, id string) (*domain.WorkOrder, error)
	Update(ctx context.Context, id string, in WorkOrderInput, meta domain.RequestMeta) (*domain.WorkOrder, error)
	ChangeStatus(ctx context.Context, id string, status domain.WorkOrderStatus, notes string, meta domain.RequestMeta) error
	Delete(ctx context.Context, id string, meta domain.RequestMeta) error
}
