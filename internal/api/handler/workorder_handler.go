package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fieldtrace/maintenance-api/internal/api/response"
	"github.com/fieldtrace/maintenance-api/internal/core/domain"
	"github.com/fieldtrace/maintenance-api/internal/core/ports"
)

// WorkOrderHandler exposes maintenance work-order management.
type WorkOrderHandler struct {
	workOrderService ports.WorkOrderService
}

func NewWorkOrderHandler(workOrderService ports.WorkOrderService) *WorkOrderHandler {
	return &WorkOrderHandler{workOrderService: workOrderService}
}

// Create registers a new work order.
//
// @Summary      Create a work order
// @Tags         work-orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createWorkOrderRequest  true  "Work order details"
// @Success      201   {object}  response.Envelope
// @Router       /v1/work-orders [post]
func (h *WorkOrderHandler) Create(c echo.Context) error {
	var req createWorkOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.workOrderService.Create(c.Request().Context(), ports.WorkOrderInput{
		ProjectID:   req.ProjectID,
		PointID:     req.PointID,
		Title:       req.Title,
		Description: req.Description,
		AssigneeID:  req.AssigneeID,
		MaterialIDs: req.MaterialIDs,
		ScheduledAt: req.ScheduledAt,
	}, requestMeta(c))
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusCreated, order)
}

// Get returns one work order.
//
// @Summary      Get a work order
// @Tags         work-orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Work order id"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.ErrorEnvelope
// @Router       /v1/work-orders/{id} [get]
func (h *WorkOrderHandler) Get(c echo.Context) error {
	order, err := h.workOrderService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, order)
}

// Update changes work-order fields.
//
// @Summary      Update a work order
// @Tags         work-orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Work order id"
// @Param        body  body      updateWorkOrderRequest  true  "Fields to update"
// @Success      200   {object}  response.Envelope
// @Failure      404   {object}  response.ErrorEnvelope
// @Router       /v1/work-orders/{id} [put]
func (h *WorkOrderHandler) Update(c echo.Context) error {
	var req updateWorkOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.workOrderService.Update(c.Request().Context(), c.Param("id"), ports.WorkOrderInput{
		PointID:     req.PointID,
		Title:       req.Title,
		Description: req.Description,
		AssigneeID:  req.AssigneeID,
		MaterialIDs: req.MaterialIDs,
		ScheduledAt: req.ScheduledAt,
	}, requestMeta(c))
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, order)
}

// ChangeStatus applies a state-machine transition.
//
// @Summary      Change a work order's status
// @Tags         work-orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                        true  "Work order id"
// @Param        body  body      changeWorkOrderStatusRequest  true  "New status"
// @Success      200   {object}  response.Envelope
// @Failure      400   {object}  response.ErrorEnvelope
// @Failure      404   {object}  response.ErrorEnvelope
// @Router       /v1/work-orders/{id}/status [put]
func (h *WorkOrderHandler) ChangeStatus(c echo.Context) error {
	var req changeWorkOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err := h.workOrderService.ChangeStatus(c.Request().Context(), c.Param("id"), domain.WorkOrderStatus(req.Status), req.Notes, requestMeta(c))
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, nil)
}

// Delete removes a work order.
//
// @Summary      Delete a work order
// @Tags         work-orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Work order id"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.ErrorEnvelope
// @Router       /v1/work-orders/{id} [delete]
func (h *WorkOrderHandler) Delete(c echo.Context) error {
	if err := h.workOrderService.Delete(c.Request().Context(), c.Param("id"), requestMeta(c)); err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, nil)
}
