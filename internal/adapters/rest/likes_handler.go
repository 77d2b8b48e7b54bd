package rest

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/philly/learnhub/backend/internal/adapters/api"
	"github.com/philly/learnhub/backend/internal/likes/application"
)

// LikesHandler handles liking and unliking resources
type LikesHandler struct {
	*BaseHandler
	service *application.LikesService
}

// NewLikesHandler creates a new likes handler
func NewLikesHandler(base *BaseHandler, service *application.LikesService) *LikesHandler {
	return &LikesHandler{
		BaseHandler: base,
		service:     service,
	}
}

// GetResourceLikes returns the like count and, for identified callers, whether they like it
func (h *LikesHandler) GetResourceLikes(w http.ResponseWriter, r *http.Request, id openapi_types.UUID) {
	summary, err := h.service.Summary(r.Context(), h.Actor(r), id)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSONResponse(w, r, likeSummaryToAPI(summary), http.StatusOK)
}

// LikeResource records a like; a second like by the same caller is a conflict
func (h *LikesHandler) LikeResource(w http.ResponseWriter, r *http.Request, id openapi_types.UUID) {
	actor := h.Actor(r)
	if _, err := h.service.Like(r.Context(), actor, id); err != nil {
		h.HandleError(w, r, err)
		return
	}

	summary, err := h.service.Summary(r.Context(), actor, id)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSONResponse(w, r, likeSummaryToAPI(summary), http.StatusCreated)
}

// UnlikeResource removes the caller's like. Removing a like that does not
// exist succeeds with removed=false.
func (h *LikesHandler) UnlikeResource(w http.ResponseWriter, r *http.Request, id openapi_types.UUID) {
	removed, err := h.service.Unlike(r.Context(), h.Actor(r), id)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSONResponse(w, r, api.UnlikeResponse{Removed: removed}, http.StatusOK)
}
