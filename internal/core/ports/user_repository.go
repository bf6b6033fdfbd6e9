package ports

import (
	"context"

	"github.com/fieldtrace/maintenance-api/internal/core/domain"
)

// UserRepository defines persistence for principals. Usernames are stored
// lowercased; lookups are exact-match on the lowercased form.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}
