package ports

import (
	"context"

	"github.com/fieldtrace/maintenance-api/internal/core/domain"
)

// CreateUserInput carries the data for a new principal.
type CreateUserInput struct {
	Username    string
	Password    string
	DisplayName string
	Role        domain.Role
}

// UpdateUserInput carries profile/role updates. Empty fields are left
// unchanged.
type UpdateUserInput struct {
	DisplayName string
	Role        domain.Role
}

// UserService defines principal management. Every mutation flows through the
// audit pipeline.
type UserService interface {
	Create(ctx context.Context, in CreateUserInput, meta domain.RequestMeta) (*domain.Profile, error)
	Get(ctx context.Context, id string) (*domain.Profile, error)
	Update(ctx context.Context, id string, in UpdateUserInput, meta domain.RequestMeta) (*domain.Profile, error)
	ChangeStatus(ctx context.Context, id string, status domain.UserStatus, meta domain.RequestMeta) error
	ChangePassword(ctx context.Context, id, newPassword string, meta domain.RequestMeta) error
}
