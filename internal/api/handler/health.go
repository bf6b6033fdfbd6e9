package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fieldtrace/maintenance-api/internal/api/response"
)

const probeTimeout = 2 * time.Second

// HealthHandler serves the liveness probe.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Liveness reports that the process is alive. It touches no dependency.
//
// @Summary  Liveness probe
// @Tags     health
// @Produce  json
// @Success  200  {object}  response.Envelope
// @Router   /health [get]
func (h *HealthHandler) Liveness(c echo.Context) error {
	return response.OK(c, http.StatusOK, map[string]string{"status": "alive"})
}

// HealthDependenciesHandler serves the readiness probe, which pings the
// backing stores.
type HealthDependenciesHandler struct {
	db  *mongo.Database
	rdb *redis.Client
}

func NewHealthDependenciesHandler(db *mongo.Database, rdb *redis.Client) *HealthDependenciesHandler {
	return &HealthDependenciesHandler{db: db, rdb: rdb}
}

// Readiness pings MongoDB and Redis. Any failed ping yields 503 with the
// per-dependency verdicts so operators can see which store is down.
//
// @Summary  Readiness probe
// @Tags     health
// @Produce  json
// @Success  200  {object}  response.Envelope
// @Failure  503  {object}  response.Envelope
// @Router   /health/ready [get]
func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	deps := map[string]string{}
	healthy := true

	if h.db != nil {
		if err := h.ping(c.Request().Context(), func(ctx context.Context) error {
			return h.db.Client().Ping(ctx, nil)
		}); err != nil {
			deps["mongo"] = "down"
			healthy = false
		} else {
			deps["mongo"] = "up"
		}
	}

	if h.rdb != nil {
		if err := h.ping(c.Request().Context(), func(ctx context.Context) error {
			return h.rdb.Ping(ctx).Err()
		}); err != nil {
			deps["redis"] = "down"
			healthy = false
		} else {
			deps["redis"] = "up"
		}
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	return response.OK(c, status, deps)
}

func (h *HealthDependenciesHandler) ping(parent context.Context, probe func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, probeTimeout)
	defer cancel()
	return probe(ctx)
}
