package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fieldtrace/maintenance-api/internal/api/response"
	"github.com/fieldtrace/maintenance-api/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps every known domain error to its HTTP status and fixed user-facing
//     message. The token-failure table is total over the closed cause set.
//   - Logs unexpected errors; their detail reaches the client only outside
//     production.
//   - Renders the consistent envelope {"ok":false,"error":{...}}.
func NewHTTPErrorHandler(log zerolog.Logger, production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c, production)
		_ = c.JSON(code, response.ErrorEnvelope{OK: false, Error: body})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context, production bool) (int, response.ErrorBody) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, response.ErrorBody{Detail: fmt.Sprintf("%v", he.Message)}
	}

	switch {
	// Credential rejection: one uniform message regardless of which check
	// failed, so account existence and state never leak.
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusForbidden, response.ErrorBody{Source: "login", Detail: "incorrect username and/or password"}
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, response.ErrorBody{Source: "login", Detail: "too many attempts, try again later"}

	// Token failures: internally distinct, externally a small fixed set.
	case errors.Is(err, domain.ErrTokenMissing):
		return http.StatusUnauthorized, response.ErrorBody{Detail: "authentication required"}
	case errors.Is(err, domain.ErrTokenMalformed):
		return http.StatusUnauthorized, response.ErrorBody{Detail: "invalid authorization header"}
	case errors.Is(err, domain.ErrTokenSignature),
		errors.Is(err, domain.ErrUnknownSubject):
		return http.StatusUnauthorized, response.ErrorBody{Detail: "invalid token"}
	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, response.ErrorBody{Detail: "token expired"}
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized, response.ErrorBody{Detail: "not authenticated"}

	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, response.ErrorBody{Detail: "access forbidden"}

	// Validation failures surface actionable detail.
	case errors.Is(err, domain.ErrWeakPassword),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidEntityType):
		return http.StatusBadRequest, response.ErrorBody{Source: "validation", Detail: err.Error()}

	case errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrEntityExists):
		return http.StatusConflict, response.ErrorBody{Detail: err.Error()}

	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrEntityNotFound):
		return http.StatusNotFound, response.ErrorBody{Detail: err.Error()}
	}

	// Unexpected error: log the real cause; withhold detail in production.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	detail := "internal server error"
	if !production {
		detail = err.Error()
	}
	return http.StatusInternalServerError, response.ErrorBody{Detail: detail}
}
