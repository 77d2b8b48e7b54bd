package rest

import (
	"net/http"

	"github.com/philly/learnhub/backend/internal/adapters/api"
	"github.com/philly/learnhub/backend/internal/identity/application"
)

// AuthHandler handles registration, login and role grants
type AuthHandler struct {
	*BaseHandler
	service *application.IdentityService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(base *BaseHandler, service *application.IdentityService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Register creates an identity together with its contributor profile
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	identity, err := h.service.Register(r.Context(), application.RegisterParams{
		Username:      req.Username,
		Password:      req.Password,
		GithubProfile: req.GithubProfile,
		ScreenName:    req.ScreenName,
	})
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, identityToAPI(identity), http.StatusCreated)
}

// Login exchanges credentials for a bearer token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	token, identity, err := h.service.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, api.TokenResponse{
		AccessToken: token.Value,
		TokenType:   "Bearer",
		ExpiresAt:   token.ExpiresAt,
		Username:    identity.Username,
		Roles:       identity.Roles.Strings(),
	}, http.StatusOK)
}

// GrantRole adds a role label to an identity
// NOTE: Route middleware admits administrators only; the service checks again
func (h *AuthHandler) GrantRole(w http.ResponseWriter, r *http.Request, username string) {
	var req api.GrantRoleRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	identity, err := h.service.AddRole(r.Context(), h.Actor(r), username, req.Role)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, identityToAPI(identity), http.StatusOK)
}
