package ports

import (
	"context"

	"github.com/fieldtrace/maintenance-api/internal/core/domain"
)

// ClientRepository defines persistence for clients.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id string) error
}

// ProjectRepository defines persistence for projects.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id string) error
}

// WorkOrderRepository defines persistence for maintenance work orders.
type WorkOrderRepository interface {
	Create(ctx context.Context, order *domain.WorkOrder) (*domain.WorkOrder, error)
	FindByID(ctx context.Context, id string) (*domain.WorkOrder, error)
	Update(ctx context.Context, order *domain.WorkOrder) error
	Delete(ctx context.Context, id string) error
}
