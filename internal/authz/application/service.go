package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/philly/learnhub/backend/internal/authz/domain"
	"github.com/philly/learnhub/backend/internal/authz/permission"
	"github.com/philly/learnhub/backend/internal/platform/apperror"
	"github.com/philly/learnhub/backend/internal/platform/logger"
	"github.com/philly/learnhub/backend/internal/platform/ownership"
)

// ErrInvalidPermission is returned when a caller asks about a permission
// that is not registered.
var ErrInvalidPermission = apperror.New(
	apperror.CodeBadRequest,
	apperror.BusinessCodeInvalidFormat,
	"invalid permission",
	http.StatusBadRequest,
)

// AuthzService decides whether an actor may perform an action.
// Role grants are static; ownership is resolved through the registry.
type AuthzService struct {
	ownershipRegistry ownership.Registry
	logger            logger.Logger
}

// NewAuthzService creates a new authorization service
func NewAuthzService(
	ownershipRegistry ownership.Registry,
	logger logger.Logger,
) *AuthzService {
	return &AuthzService{
		ownershipRegistry: ownershipRegistry,
		logger:            logger,
	}
}

// HasPermission checks a permission that is not tied to a specific entity.
func (s *AuthzService) HasPermission(ctx context.Context, actor domain.Actor, permissionID string) (bool, error) {
	if _, exists := permission.FromID(permissionID); !exists {
		s.logger.Warn(ctx, "invalid permission requested",
			"actor", actor.Username,
			"permission", permissionID,
		)
		return false, fmt.Errorf("%w: %s", ErrInvalidPermission, permissionID)
	}
	if !actor.IsAuthenticated() {
		return false, nil
	}
	return permission.Granted(actor.Roles, permissionID), nil
}

// HasPermissionForEntity checks an ownership-scoped permission such as
// "resources:update:own" against a concrete entity.
func (s *AuthzService) HasPermissionForEntity(
	ctx context.Context,
	actor domain.Actor,
	permissionID string,
	entityType string,
	entityID uuid.UUID,
) (bool, error) {
	perm, exists := permission.FromID(permissionID)
	if !exists {
		return false, fmt.Errorf("%w: %s", ErrInvalidPermission, permissionID)
	}
	if !actor.IsAuthenticated() {
		return false, nil
	}

	if perm.Scope == "own" {
		// The "any" variant skips the ownership lookup entirely
		if permission.Granted(actor.Roles, permission.AnyVariant(permissionID)) {
			return true, nil
		}
		if !permission.Granted(actor.Roles, permissionID) {
			return false, nil
		}
		// No profile means nothing can be owned; skip the lookup.
		if !actor.HasContributor() {
			return false, nil
		}

		owner, err := s.ownershipRegistry.OwnerOf(ctx, entityType, entityID)
		if err != nil {
			if errors.Is(err, ownership.ErrNotFound) {
				return false, err
			}
			return false, fmt.Errorf("AuthzService.HasPermissionForEntity (ownership check): %w", err)
		}
		return domain.MayMutate(actor, owner), nil
	}

	return permission.Granted(actor.Roles, permissionID), nil
}

// Can builds the permission ID from entity type and action.
//
// With an entityID it checks "type:action:own" (which also accepts
// "type:action:any"). Without one it checks "type:action".
// An entity that vanished before its owner was read yields ownership.ErrNotFound.
func (s *AuthzService) Can(ctx context.Context, actor domain.Actor, entityType string, action string, entityID *uuid.UUID) (bool, error) {
	permissionID := fmt.Sprintf("%s:%s", entityType, action)

	if entityID == nil {
		return s.HasPermission(ctx, actor, permissionID)
	}

	return s.HasPermissionForEntity(ctx, actor, permissionID+":own", entityType, *entityID)
}
