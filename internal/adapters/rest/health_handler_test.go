package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philly/learnhub/backend/internal/adapters/api"
	"github.com/philly/learnhub/backend/internal/adapters/rest"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type stubSchema struct {
	current bool
	err     error
}

func (s stubSchema) SchemaUpToDate(context.Context) (bool, error) { return s.current, s.err }

func TestHealthHandler_GetReadiness(t *testing.T) {
	up, down := api.Up, api.Down

	tests := []struct {
		name       string
		db         rest.DatabasePinger
		schema     rest.SchemaChecker
		wantStatus int
		wantHealth api.HealthStatusStatus
		wantDB     *api.HealthStatusChecksDatabase
		wantSchema *api.HealthStatusChecksDatabase
	}{
		{
			name:       "ready",
			db:         stubPinger{},
			schema:     stubSchema{current: true},
			wantStatus: http.StatusOK,
			wantHealth: api.Healthy,
			wantDB:     &up,
			wantSchema: &up,
		},
		{
			name:       "pending migrations",
			db:         stubPinger{},
			schema:     stubSchema{current: false},
			wantStatus: http.StatusServiceUnavailable,
			wantHealth: api.Unhealthy,
			wantDB:     &up,
			wantSchema: &down,
		},
		{
			name:       "schema check error",
			db:         stubPinger{},
			schema:     stubSchema{err: errors.New("permission denied")},
			wantStatus: http.StatusServiceUnavailable,
			wantHealth: api.Unhealthy,
			wantDB:     &up,
			wantSchema: &down,
		},
		{
			name:       "database down skips schema",
			db:         stubPinger{err: errors.New("dial tcp: refused")},
			schema:     stubSchema{current: true},
			wantStatus: http.StatusServiceUnavailable,
			wantHealth: api.Unhealthy,
			wantDB:     &down,
		},
		{
			name:       "no database",
			wantStatus: http.StatusOK,
			wantHealth: api.Degraded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := rest.NewHealthHandler(newBaseHandler(), rest.Version("1.2.3"), tt.db, tt.schema)

			rec := httptest.NewRecorder()
			h.GetReadiness(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health/ready", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body api.HealthStatus
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantHealth, body.Status)
			require.NotNil(t, body.Version)
			assert.Equal(t, "1.2.3", *body.Version)

			if tt.wantDB == nil {
				assert.Nil(t, body.Checks)
				return
			}
			require.NotNil(t, body.Checks)
			assert.Equal(t, tt.wantDB, body.Checks.Database)
			assert.Equal(t, tt.wantSchema, body.Checks.Schema)
		})
	}
}

func TestHealthHandler_GetLiveness(t *testing.T) {
	h := rest.NewHealthHandler(newBaseHandler(), rest.Version("1.2.3"), stubPinger{err: errors.New("down")}, nil)

	rec := httptest.NewRecorder()
	h.GetLiveness(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}
