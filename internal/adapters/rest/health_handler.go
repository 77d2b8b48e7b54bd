package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/philly/learnhub/backend/internal/adapters/api"
)

// DatabasePinger is satisfied by *pgxpool.Pool
type DatabasePinger interface {
	Ping(ctx context.Context) error
}

// SchemaChecker reports whether every embedded migration has been applied.
type SchemaChecker interface {
	SchemaUpToDate(ctx context.Context) (bool, error)
}

// Version is the build version reported by the health endpoints
type Version string

type healthChecks = struct {
	Database *api.HealthStatusChecksDatabase `json:"database,omitempty"`
	Schema   *api.HealthStatusChecksDatabase `json:"schema,omitempty"`
}

type HealthHandler struct {
	*BaseHandler
	version string
	db      DatabasePinger
	schema  SchemaChecker
}

func NewHealthHandler(base *BaseHandler, version Version, db DatabasePinger, schema SchemaChecker) *HealthHandler {
	return &HealthHandler{
		BaseHandler: base,
		version:     string(version),
		db:          db,
		schema:      schema,
	}
}

// GetLiveness has no external dependencies.
func (h *HealthHandler) GetLiveness(w http.ResponseWriter, r *http.Request) {
	h.WriteJSONResponse(w, r, api.HealthStatus{
		Status:    api.Healthy,
		Timestamp: time.Now(),
		Version:   &h.version,
	}, http.StatusOK)
}

// GetReadiness pings the database, then checks the schema version. A missing
// pinger reports degraded; a failed check reports unhealthy with 503.
func (h *HealthHandler) GetReadiness(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		h.WriteJSONResponse(w, r, api.HealthStatus{
			Status:    api.Degraded,
			Timestamp: time.Now(),
			Version:   &h.version,
		}, http.StatusOK)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := &healthChecks{}
	healthy := true

	dbStatus := api.Up
	if err := h.db.Ping(ctx); err != nil {
		h.logger.Warn(r.Context(), "readiness database ping failed", "error", err)
		dbStatus = api.Down
		healthy = false
	}
	checks.Database = &dbStatus

	if h.schema != nil && dbStatus == api.Up {
		schemaStatus := api.Up
		current, err := h.schema.SchemaUpToDate(ctx)
		if err != nil {
			h.logger.Warn(r.Context(), "readiness schema check failed", "error", err)
		}
		if err != nil || !current {
			schemaStatus = api.Down
			healthy = false
		}
		checks.Schema = &schemaStatus
	}

	status, httpStatus := api.Healthy, http.StatusOK
	if !healthy {
		status, httpStatus = api.Unhealthy, http.StatusServiceUnavailable
	}

	h.WriteJSONResponse(w, r, api.HealthStatus{
		Status:    status,
		Timestamp: time.Now(),
		Version:   &h.version,
		Checks:    checks,
	}, httpStatus)
}
