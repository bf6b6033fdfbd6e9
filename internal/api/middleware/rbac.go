package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fieldtrace/maintenance-api/internal/api/metrics"
	"github.com/fieldtrace/maintenance-api/internal/core/domain"
)

// RBAC is the authorization gate. It must run after Auth: a request with no
// resolved principal is rejected as unauthenticated (401), never as a role
// mismatch. An empty allowed set admits any authenticated principal.
func RBAC(notifier SecurityNotifier, log zerolog.Logger, allowed ...domain.Role) echo.MiddlewareFunc {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, r := range allowed {
		allowedSet[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := c.Get(PrincipalKey).(*domain.User)
			if !ok || principal == nil {
				return domain.ErrNotAuthenticated
			}

			if len(allowedSet) > 0 {
				if _, permitted := allowedSet[principal.Role]; !permitted {
					metrics.RoleDenialsTotal.WithLabelValues(string(principal.Role)).Inc()
					log.Warn().
						Str("user_id", principal.ID).
						Str("role", string(principal.Role)).
						Interface("required", allowed).
						Str("path", c.Request().URL.Path).
						Msg("role denied")
					if notifier != nil {
						notifier.Notify(domain.SecurityEvent{
							Kind:        domain.SecurityRoleCheck,
							Allowed:     false,
							PrincipalID: principal.ID,
							Username:    principal.Username,
							IPAddress:   c.RealIP(),
							UserAgent:   c.Request().UserAgent(),
							Path:        c.Request().URL.Path,
							Detail:      "role " + string(principal.Role) + " not permitted",
							CreatedAt:   time.Now().UTC(),
						})
					}
					return domain.ErrForbidden
				}
			}

			log.Debug().
				Str("user_id", principal.ID).
				Str("role", string(principal.Role)).
				Str("path", c.Request().URL.Path).
				Msg("role permitted")
			return next(c)
		}
	}
}
