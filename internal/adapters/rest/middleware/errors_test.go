package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestWriteJSONError(t *testing.T) {
	tests := []struct {
		code    string
		message string
		status  int
	}{
		{ErrorCodeUnauthorized, "missing bearer token", http.StatusUnauthorized},
		{ErrorCodeTokenExpired, "token expired", http.StatusUnauthorized},
		{ErrorCodeForbidden, "role USER or ADMIN required", http.StatusForbidden},
		{ErrorCodeInvalidRequest, "invalid format for parameter learning_id", http.StatusBadRequest},
		{ErrorCodeNotFound, "Route not found", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteJSONError(rec, tt.code, tt.message, tt.status)

			assert.Equal(t, tt.status, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, map[string]any{"error": tt.code, "message": tt.message}, body)
		})
	}
}

func TestWriteJSONErrorWithDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSONErrorWithDetails(rec, ErrorCodeForbidden, "role ADMIN required", http.StatusForbidden, map[string]any{
		"required_roles": []string{"ADMIN"},
		"error":          "overridden",
	})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, ErrorCodeForbidden, body["error"])
	assert.Equal(t, "role ADMIN required", body["message"])
	assert.Equal(t, []any{"ADMIN"}, body["required_roles"])
}
