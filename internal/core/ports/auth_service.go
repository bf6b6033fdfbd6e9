package ports

import (
	"context"

	"github.com/fieldtrace/maintenance-api/internal/core/domain"
)

// LoginResult is returned on successful authentication. Decoy is the
// response-shaping value serialized under the "user" key; it carries no
// authorization meaning.
type LoginResult struct {
	AccessToken  string
	ExpiresAt    int64
	RefreshToken string
	Decoy        string
	Profile      domain.Profile
}

// AuthService implements the login flow.
type AuthService interface {
	Login(ctx context.Context, username, password string, meta domain.RequestMeta) (*LoginResult, error)
}
