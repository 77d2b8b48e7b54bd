package rest

import (
	"encoding/json"
	"net/http"

	"github.com/philly/learnhub/backend/internal/adapters/api"
	"github.com/philly/learnhub/backend/internal/adapters/rest/middleware"
	authz "github.com/philly/learnhub/backend/internal/authz/domain"
	"github.com/philly/learnhub/backend/internal/platform/apperror"
	"github.com/philly/learnhub/backend/internal/platform/logger"
	"github.com/philly/learnhub/backend/internal/platform/validator"
)

// BaseHandler contains common dependencies and helper methods for all handlers
type BaseHandler struct {
	logger    logger.Logger
	validator *validator.Validator
}

// NewBaseHandler creates a new base handler with common dependencies
func NewBaseHandler(logger logger.Logger, validator *validator.Validator) *BaseHandler {
	return &BaseHandler{
		logger:    logger,
		validator: validator,
	}
}

// WriteJSONError writes a JSON error response in the API error shape
func (h *BaseHandler) WriteJSONError(w http.ResponseWriter, r *http.Request, code string, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	body := api.Error{
		Error:   code,
		Message: message,
	}

	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error(r.Context(), "failed to encode error response",
			"error", err,
			"error_code", code,
			"status_code", statusCode,
		)
	}
}

// WriteJSONResponse writes a successful JSON response
func (h *BaseHandler) WriteJSONResponse(w http.ResponseWriter, r *http.Request, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error(r.Context(), "failed to encode response",
			"error", err,
			"status_code", statusCode,
		)
	}
}

// HandleError renders a service error. AppErrors keep their code, business
// code and details; anything else becomes a generic 500.
func (h *BaseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.As(err)
	if !ok {
		h.logger.Error(r.Context(), "unhandled error",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
		)
		h.WriteJSONError(w, r, string(apperror.CodeInternalError), "An unexpected error occurred", http.StatusInternalServerError)
		return
	}

	body := api.Error{
		Error:   string(appErr.Code),
		Message: appErr.Message,
		Context: appErr.Details,
	}
	if appErr.BusinessCode != "" {
		bizCode := string(appErr.BusinessCode)
		body.BusinessCode = &bizCode
	}

	status := appErr.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}
	h.WriteJSONResponse(w, r, body, status)
}

// DecodeAndValidate reads a JSON body into dst and runs its validate tags.
// It writes the error response itself and reports whether to continue.
func (h *BaseHandler) DecodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.WriteJSONError(w, r, middleware.ErrorCodeValidationError, "Invalid request body", http.StatusBadRequest)
		return false
	}
	if err := h.validator.Validate(dst); err != nil {
		h.HandleError(w, r, err)
		return false
	}
	return true
}

// Actor returns the caller resolved by the authentication middleware.
// Requests without a token yield the anonymous actor.
func (h *BaseHandler) Actor(r *http.Request) authz.Actor {
	return middleware.ActorFromContext(r.Context())
}
