package rest

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/philly/learnhub/backend/internal/adapters/api"
	"github.com/philly/learnhub/backend/internal/resources/application"
)

// ResourcesHandler handles HTTP requests for catalog resources
type ResourcesHandler struct {
	*BaseHandler
	service *application.ResourcesService
}

// NewResourcesHandler creates a new resources handler
func NewResourcesHandler(base *BaseHandler, service *application.ResourcesService) *ResourcesHandler {
	return &ResourcesHandler{
		BaseHandler: base,
		service:     service,
	}
}

// ListResources lists every resource, or one page when both page and limit are given
func (h *ResourcesHandler) ListResources(w http.ResponseWriter, r *http.Request, params api.ListResourcesParams) {
	if params.Page != nil && params.Limit != nil {
		page, err := h.service.ListPage(r.Context(), *params.Page, *params.Limit)
		if err != nil {
			h.HandleError(w, r, err)
			return
		}
		h.WriteJSONResponse(w, r, resourcePageToAPI(page), http.StatusOK)
		return
	}

	views, err := h.service.ListAll(r.Context())
	h.writeList(w, r, views, err)
}

// CreateResource submits a resource owned by the caller's contributor profile
func (h *ResourcesHandler) CreateResource(w http.ResponseWriter, r *http.Request) {
	var req api.CreateResourceRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	view, err := h.service.Create(r.Context(), h.Actor(r), application.CreateParams{
		LearningID:     req.LearningId,
		Link:           req.Link,
		Title:          req.Title,
		FormatCategory: req.FormatCategory,
		SubCategory:    req.SubCategory,
		Description:    req.Description,
	})
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, resourceToAPI(view), http.StatusCreated)
}

func (h *ResourcesHandler) ListNewestResources(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.ListNewest(r.Context())
	h.writeList(w, r, views, err)
}

func (h *ResourcesHandler) ListRecentlyUpdatedResources(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.ListRecentlyUpdated(r.Context())
	h.writeList(w, r, views, err)
}

// GetResourceByID returns one resource with its like data
func (h *ResourcesHandler) GetResourceByID(w http.ResponseWriter, r *http.Request, id openapi_types.UUID) {
	view, err := h.service.GetByID(r.Context(), h.Actor(r), id)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSONResponse(w, r, resourceToAPI(view), http.StatusOK)
}

func (h *ResourcesHandler) GetResourceByLearningID(w http.ResponseWriter, r *http.Request, learningId int64) {
	view, err := h.service.GetByLearningID(r.Context(), learningId)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSONResponse(w, r, resourceToAPI(view), http.StatusOK)
}

func (h *ResourcesHandler) ListResourcesByTitle(w http.ResponseWriter, r *http.Request, title string) {
	views, err := h.service.ListByTitle(r.Context(), title)
	h.writeList(w, r, views, err)
}

func (h *ResourcesHandler) ListResourcesByContributor(w http.ResponseWriter, r *http.Request, name string) {
	views, err := h.service.ListByContributor(r.Context(), name)
	h.writeList(w, r, views, err)
}

func (h *ResourcesHandler) SearchResources(w http.ResponseWriter, r *http.Request, keyword string) {
	views, err := h.service.Search(r.Context(), keyword)
	h.writeList(w, r, views, err)
}

func (h *ResourcesHandler) ListResourcesByFormat(w http.ResponseWriter, r *http.Request, formatCategory string) {
	views, err := h.service.ListByFormat(r.Context(), h.Actor(r), formatCategory)
	h.writeList(w, r, views, err)
}

func (h *ResourcesHandler) ListResourcesBySubCategory(w http.ResponseWriter, r *http.Request, subCategory string) {
	views, err := h.service.ListBySubCategory(r.Context(), h.Actor(r), subCategory)
	h.writeList(w, r, views, err)
}

// UpdateResource applies a partial edit
// NOTE: Ownership is checked by the service, not by route middleware
func (h *ResourcesHandler) UpdateResource(w http.ResponseWriter, r *http.Request, learningId int64) {
	var req api.UpdateResourceRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	view, err := h.service.Update(r.Context(), h.Actor(r), learningId, application.UpdateParams{
		LearningID:     req.LearningId,
		Link:           req.Link,
		Title:          req.Title,
		FormatCategory: req.FormatCategory,
		SubCategory:    req.SubCategory,
		Description:    req.Description,
	})
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, resourceToAPI(view), http.StatusOK)
}

// DeleteResource removes a resource and decrements its owner's counter
func (h *ResourcesHandler) DeleteResource(w http.ResponseWriter, r *http.Request, learningId int64) {
	if err := h.service.Delete(r.Context(), h.Actor(r), learningId); err != nil {
		h.HandleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ResourcesHandler) writeList(w http.ResponseWriter, r *http.Request, views []*application.View, err error) {
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSONResponse(w, r, resourcesToAPI(views), http.StatusOK)
}
