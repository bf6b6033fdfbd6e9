package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fieldtrace/maintenance-api/internal/api/response"
	"github.com/fieldtrace/maintenance-api/internal/core/domain"
	"github.com/fieldtrace/maintenance-api/internal/core/ports"
)

// AuthHandler exposes the login endpoint.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates a user and returns the token bundle.
//
// @Summary      Login
// @Tags         authn
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  response.Envelope
// @Failure      403   {object}  response.ErrorEnvelope
// @Failure      429   {object}  response.ErrorEnvelope
// @Router       /v1/authn/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		// A missing field is indistinguishable from bad credentials on the
		// wire: the rejection stays uniform.
		return domain.ErrInvalidCredentials
	}

	result, err := h.authService.Login(c.Request().Context(), req.Username, req.Password, requestMeta(c))
	if err != nil {
		return err
	}

	return response.OK(c, http.StatusOK, loginResponse{
		AccessToken:  result.AccessToken,
		Exp:          result.ExpiresAt,
		RefreshToken: result.RefreshToken,
		User:         result.Decoy,
		DataUser:     toProfileModel(result.Profile),
	})
}

func toProfileModel(p domain.Profile) profileModel {
	return profileModel{
		ID:          p.ID,
		Username:    p.Username,
		DisplayName: p.DisplayName,
		Role:        string(p.Role),
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
	}
}
