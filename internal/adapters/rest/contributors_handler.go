package rest

import (
	"net/http"

	"github.com/philly/learnhub/backend/internal/adapters/api"
	"github.com/philly/learnhub/backend/internal/contributors/application"
	"github.com/philly/learnhub/backend/internal/contributors/domain"
)

// ContributorsHandler handles HTTP requests for contributor profiles
type ContributorsHandler struct {
	*BaseHandler
	service *application.ContributorsService
}

// NewContributorsHandler creates a new contributors handler
func NewContributorsHandler(base *BaseHandler, service *application.ContributorsService) *ContributorsHandler {
	return &ContributorsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// ListContributors returns the directory, or a single profile when name or id is given.
// Lookup by id is for administrators; the service enforces it.
func (h *ContributorsHandler) ListContributors(w http.ResponseWriter, r *http.Request, params api.ListContributorsParams) {
	switch {
	case params.Id != nil:
		profile, err := h.service.GetByID(r.Context(), h.Actor(r), *params.Id)
		h.writeProfile(w, r, profile, err)
	case params.Name != nil:
		profile, err := h.service.GetByDisplayName(r.Context(), *params.Name)
		h.writeProfile(w, r, profile, err)
	default:
		directory, err := h.service.ListAll(r.Context())
		h.writeDirectory(w, r, directory, err)
	}
}

// ListContributorsByContributions returns the directory ranked by contribution count
func (h *ContributorsHandler) ListContributorsByContributions(w http.ResponseWriter, r *http.Request) {
	directory, err := h.service.ListByContributions(r.Context())
	h.writeDirectory(w, r, directory, err)
}

// UpdateContributor edits display names; absent fields are kept
func (h *ContributorsHandler) UpdateContributor(w http.ResponseWriter, r *http.Request, name string) {
	var req api.UpdateContributorRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	contributor, err := h.service.Update(r.Context(), h.Actor(r), name, domain.ProfilePatch{
		GithubProfile: req.GithubProfile,
		ScreenName:    req.ScreenName,
	})
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSONResponse(w, r, contributorToAPI(contributor), http.StatusOK)
}

// DeleteContributor removes a contributor that owns no resources
func (h *ContributorsHandler) DeleteContributor(w http.ResponseWriter, r *http.Request, name string) {
	if err := h.service.Delete(r.Context(), h.Actor(r), name); err != nil {
		h.HandleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ContributorsHandler) writeProfile(w http.ResponseWriter, r *http.Request, profile *application.Profile, err error) {
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSONResponse(w, r, profileToAPI(profile), http.StatusOK)
}

func (h *ContributorsHandler) writeDirectory(w http.ResponseWriter, r *http.Request, directory *application.Directory, err error) {
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSONResponse(w, r, directoryToAPI(directory), http.StatusOK)
}
