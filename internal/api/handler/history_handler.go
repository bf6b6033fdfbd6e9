package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/fieldtrace/maintenance-api/internal/api/response"
	"github.com/fieldtrace/maintenance-api/internal/core/domain"
	"github.com/fieldtrace/maintenance-api/internal/core/ports"
)

// HistoryHandler serves the per-entity change history read from the audit
// trail. One handler covers every tracked entity; the entity type is bound
// at route registration.
type HistoryHandler struct {
	audit ports.AuditRecorder
}

func NewHistoryHandler(audit ports.AuditRecorder) *HistoryHandler {
	return &HistoryHandler{audit: audit}
}

// For returns the history handler bound to one tracked entity type.
//
// @Summary      Get an entity's change history
// @Tags         history
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true   "Entity id"
// @Param        page   query     int     false  "Page (1-based)"
// @Param        limit  query     int     false  "Records per page (max 100)"
// @Success      200    {object}  response.Envelope
// @Router       /v1/{entity}/{id}/history [get]
func (h *HistoryHandler) For(entityType domain.EntityType) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, _ := strconv.Atoi(c.QueryParam("page"))
		limit, _ := strconv.Atoi(c.QueryParam("limit"))

		result, err := h.audit.History(c.Request().Context(), entityType, c.Param("id"), page, limit)
		if err != nil {
			return err
		}

		records := make([]auditRecordModel, len(result.Records))
		for i, r := range result.Records {
			records[i] = auditRecordModel{
				ID:         r.ID,
				EntityType: string(r.EntityType),
				EntityID:   r.EntityID,
				Action:     string(r.Action),
				Changes:    r.Changes,
				Previous:   r.Previous,
				ActorID:    r.ActorID,
				IPAddress:  r.IPAddress,
				UserAgent:  r.UserAgent,
				Notes:      r.Notes,
				CreatedAt:  r.CreatedAt,
			}
		}

		return response.OK(c, http.StatusOK, historyResponse{
			History: records,
			Pagination: paginationModel{
				Total: result.Total,
				Page:  result.Page,
				Limit: result.Limit,
				Pages: result.TotalPages,
			},
		})
	}
}
