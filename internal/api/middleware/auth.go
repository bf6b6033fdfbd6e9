package middleware

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fieldtrace/maintenance-api/internal/api/metrics"
	"github.com/fieldtrace/maintenance-api/internal/core/auth"
	"github.com/fieldtrace/maintenance-api/internal/core/domain"
	"github.com/fieldtrace/maintenance-api/internal/core/ports"
)

// PrincipalKey is the context key under which Auth stores the resolved user.
const PrincipalKey = "principal"

// SecurityNotifier receives access-decision events for asynchronous recording.
type SecurityNotifier interface {
	Notify(event domain.SecurityEvent)
}

// Auth is the authentication gate: it validates the bearer token and
// re-resolves the principal from the store on every request. Claims embedded
// in the token are never trusted for role or status — a principal disabled
// after issuance loses access immediately, not at token expiry.
func Auth(issuer *auth.Issuer, users ports.UserRepository, notifier SecurityNotifier, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return rejectToken(c, notifier, log, "missing", domain.ErrTokenMissing)
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return rejectToken(c, notifier, log, "malformed", domain.ErrTokenMalformed)
			}

			claims, err := issuer.ValidateAccess(parts[1])
			if err != nil {
				return rejectToken(c, notifier, log, tokenCause(err), err)
			}

			user, err := users.FindByID(c.Request().Context(), claims.Subject)
			if err != nil {
				if err == domain.ErrUserNotFound {
					return rejectToken(c, notifier, log, "unknown_subject", domain.ErrUnknownSubject)
				}
				return err
			}
			if user.Status != domain.StatusActive {
				return rejectToken(c, notifier, log, "inactive", domain.ErrUnknownSubject)
			}

			c.Set(PrincipalKey, user)
			log.Debug().
				Str("user_id", user.ID).
				Str("path", c.Path()).
				Msg("token accepted")
			return next(c)
		}
	}
}

// tokenCause labels a token-validation failure for metrics and logs.
func tokenCause(err error) string {
	switch err {
	case domain.ErrTokenExpired:
		return "expired"
	case domain.ErrTokenSignature:
		return "bad_signature"
	default:
		return "malformed"
	}
}

func rejectToken(c echo.Context, notifier SecurityNotifier, log zerolog.Logger, cause string, err error) error {
	metrics.TokenRejectionsTotal.WithLabelValues(cause).Inc()
	log.Warn().
		Str("cause", cause).
		Str("ip", c.RealIP()).
		Str("path", c.Request().URL.Path).
		Msg("token rejected")
	if notifier != nil {
		notifier.Notify(domain.SecurityEvent{
			Kind:      domain.SecurityTokenCheck,
			Allowed:   false,
			IPAddress: c.RealIP(),
			UserAgent: c.Request().UserAgent(),
			Path:      c.Request().URL.Path,
			Detail:    cause,
			CreatedAt: time.Now().UTC(),
		})
	}
	return err
}
