package application

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/philly/learnhub/backend/internal/authz/permission"
	"github.com/philly/learnhub/backend/internal/platform/ownership"
	"github.com/philly/learnhub/backend/internal/resources/ports"
)

// ResourcesOwnershipChecker implements ownership checking for resources.
// It depends directly on the repository, not the service.
type ResourcesOwnershipChecker struct {
	repo ports.ResourceRepository
}

// NewResourcesOwnershipChecker creates a new resources ownership checker
func NewResourcesOwnershipChecker(repo ports.ResourceRepository) *ResourcesOwnershipChecker {
	return &ResourcesOwnershipChecker{repo: repo}
}

// OwnerOf implements ownership.Checker
func (c *ResourcesOwnershipChecker) OwnerOf(ctx context.Context, entityID uuid.UUID) (uuid.UUID, error) {
	owner, err := c.repo.GetOwner(ctx, entityID)
	if err != nil {
		if errors.Is(err, ports.ErrResourceNotFound) {
			return uuid.Nil, ownership.ErrNotFound
		}
		return uuid.Nil, err
	}
	return owner, nil
}

// RegisterResourcesOwnership registers the resources checker with the registry
func RegisterResourcesOwnership(registry ownership.Registry, checker *ResourcesOwnershipChecker) {
	registry.RegisterChecker(permission.EntityResources, checker)
}

var _ ownership.Checker = (*ResourcesOwnershipChecker)(nil)
