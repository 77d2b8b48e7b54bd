package authz_adapter

import (
	"context"

	"github.com/google/uuid"

	authzApp "github.com/philly/learnhub/backend/internal/authz/application"
	authz "github.com/philly/learnhub/backend/internal/authz/domain"
	contributorPorts "github.com/philly/learnhub/backend/internal/contributors/ports"
	identityPorts "github.com/philly/learnhub/backend/internal/identity/ports"
	likePorts "github.com/philly/learnhub/backend/internal/likes/ports"
	resourcePorts "github.com/philly/learnhub/backend/internal/resources/ports"
)

// AuthzAdapter is the unified adapter that bridges the authz service
// with all bounded contexts that need authorization.
// It implements multiple Authorizer interfaces from different modules.
type AuthzAdapter struct {
	authzService *authzApp.AuthzService
}

// NewAuthzAdapter creates a new authorization adapter
func NewAuthzAdapter(authzService *authzApp.AuthzService) *AuthzAdapter {
	return &AuthzAdapter{
		authzService: authzService,
	}
}

// Can checks whether actor may perform action on an entity type, or on one
// entity when entityID is set.
func (a *AuthzAdapter) Can(ctx context.Context, actor authz.Actor, entityType string, action string, entityID *uuid.UUID) (bool, error) {
	return a.authzService.Can(ctx, actor, entityType, action, entityID)
}

// Compile-time checks to ensure we implement the interfaces
var (
	_ resourcePorts.Authorizer    = (*AuthzAdapter)(nil)
	_ contributorPorts.Authorizer = (*AuthzAdapter)(nil)
	_ likePorts.Authorizer        = (*AuthzAdapter)(nil)
	_ identityPorts.Authorizer    = (*AuthzAdapter)(nil)
)
