package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fieldtrace/maintenance-api/internal/api/response"
	"github.com/fieldtrace/maintenance-api/internal/core/domain"
	"github.com/fieldtrace/maintenance-api/internal/core/ports"
)

// UserHandler exposes principal management.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create registers a new user.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  response.Envelope
// @Failure      400   {object}  response.ErrorEnvelope
// @Failure      409   {object}  response.ErrorEnvelope
// @Router       /v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profile, err := h.userService.Create(c.Request().Context(), ports.CreateUserInput{
		Username:    req.Username,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Role:        domain.Role(req.Role),
	}, requestMeta(c))
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusCreated, toProfileModel(*profile))
}

// Get returns one user's public profile.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.ErrorEnvelope
// @Router       /v1/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	profile, err := h.userService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, toProfileModel(*profile))
}

// Update changes profile fields and/or role.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  response.Envelope
// @Failure      404   {object}  response.ErrorEnvelope
// @Router       /v1/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profile, err := h.userService.Update(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		DisplayName: req.DisplayName,
		Role:        domain.Role(req.Role),
	}, requestMeta(c))
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, toProfileModel(*profile))
}

// ChangeStatus moves the account through its lifecycle (soft delete included).
//
// @Summary      Change a user's status
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "User id"
// @Param        body  body      changeStatusRequest  true  "New status"
// @Success      200   {object}  response.Envelope
// @Failure      404   {object}  response.ErrorEnvelope
// @Router       /v1/users/{id}/status [put]
func (h *UserHandler) ChangeStatus(c echo.Context) error {
	var req changeStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.userService.ChangeStatus(c.Request().Context(), c.Param("id"), domain.UserStatus(req.Status), requestMeta(c)); err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, nil)
}

// ChangePassword replaces a user's password. Admins may change anyone's;
// other principals only their own. No password material is echoed back.
//
// @Summary      Change a user's password
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "User id"
// @Param        body  body      changePasswordRequest  true  "New password"
// @Success      200   {object}  response.Envelope
// @Failure      400   {object}  response.ErrorEnvelope
// @Failure      403   {object}  response.ErrorEnvelope
// @Router       /v1/users/{id}/password [put]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	if principal.Role != domain.RoleAdmin && principal.ID != id {
		return domain.ErrForbidden
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.userService.ChangePassword(c.Request().Context(), id, req.Password, requestMeta(c)); err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, nil)
}
