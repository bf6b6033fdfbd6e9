package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/fieldtrace/maintenance-api/internal/api/middleware"
	"github.com/fieldtrace/maintenance-api/internal/core/domain"
)

// principalFrom extracts the user resolved by the Auth middleware. A missing
// principal means the handler was registered without the gate; reject rather
// than proceed anonymously.
func principalFrom(c echo.Context) (*domain.User, error) {
	principal, ok := c.Get(middleware.PrincipalKey).(*domain.User)
	if !ok || principal == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return principal, nil
}

// requestMeta assembles the client metadata recorded on every audit entry.
func requestMeta(c echo.Context) domain.RequestMeta {
	meta := domain.RequestMeta{
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}
	if principal, ok := c.Get(middleware.PrincipalKey).(*domain.User); ok && principal != nil {
		meta.ActorID = principal.ID
	}
	return meta
}
