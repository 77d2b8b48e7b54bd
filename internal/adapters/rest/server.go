package rest

import (
	"github.com/philly/learnhub/backend/internal/adapters/api"
)

// Server combines all handlers to implement api.ServerInterface
type Server struct {
	*HealthHandler
	*AuthHandler
	*ResourcesHandler
	*LikesHandler
	*ContributorsHandler
}

// NewServer creates a new server that implements api.ServerInterface
func NewServer(
	healthHandler *HealthHandler,
	authHandler *AuthHandler,
	resourcesHandler *ResourcesHandler,
	likesHandler *LikesHandler,
	contributorsHandler *ContributorsHandler,
) api.ServerInterface {
	return &Server{
		HealthHandler:       healthHandler,
		AuthHandler:         authHandler,
		ResourcesHandler:    resourcesHandler,
		LikesHandler:        likesHandler,
		ContributorsHandler: contributorsHandler,
	}
}

// Ensure Server implements api.ServerInterface
var _ api.ServerInterface = (*Server)(nil)
