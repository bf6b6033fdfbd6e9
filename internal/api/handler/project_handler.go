package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fieldtrace/maintenance-api/internal/api/response"
	"github.com/fieldtrace/maintenance-api/internal/core/ports"
)

// ProjectHandler exposes project management.
type ProjectHandler struct {
	projectService ports.ProjectService
}

func NewProjectHandler(projectService ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// Create registers a new project under a client.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProjectRequest  true  "Project details"
// @Success      201   {object}  response.Envelope
// @Router       /v1/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	project, err := h.projectService.Create(c.Request().Context(), ports.ProjectInput{
		ClientID: req.ClientID,
		Name:     req.Name,
		Location: req.Location,
	}, requestMeta(c))
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusCreated, project)
}

// Get returns one project.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.ErrorEnvelope
// @Router       /v1/projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	project, err := h.projectService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, project)
}

// Update changes project fields.
//
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Project id"
// @Param        body  body      updateProjectRequest  true  "Fields to update"
// @Success      200   {object}  response.Envelope
// @Failure      404   {object}  response.ErrorEnvelope
// @Router       /v1/projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	var req updateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	project, err := h.projectService.Update(c.Request().Context(), c.Param("id"), ports.ProjectInput{
		Name:     req.Name,
		Location: req.Location,
	}, requestMeta(c))
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, project)
}

// Delete removes a project.
//
// @Summary      Delete a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.ErrorEnvelope
// @Router       /v1/projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	if err := h.projectService.Delete(c.Request().Context(), c.Param("id"), requestMeta(c)); err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, nil)
}
