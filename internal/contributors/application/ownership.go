package application

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/philly/learnhub/backend/internal/authz/permission"
	"github.com/philly/learnhub/backend/internal/contributors/ports"
	"github.com/philly/learnhub/backend/internal/platform/ownership"
)

// ContributorsOwnershipChecker reports the owner of a contributor profile,
// which is the profile itself.
// It depends directly on the repository, not the service.
type ContributorsOwnershipChecker struct {
	repo ports.ContributorRepository
}

// NewContributorsOwnershipChecker creates a new contributors ownership checker
func NewContributorsOwnershipChecker(repo ports.ContributorRepository) *ContributorsOwnershipChecker {
	return &ContributorsOwnershipChecker{repo: repo}
}

// OwnerOf implements ownership.Checker
func (c *ContributorsOwnershipChecker) OwnerOf(ctx context.Context, entityID uuid.UUID) (uuid.UUID, error) {
	contributor, err := c.repo.FindByID(ctx, entityID)
	if err != nil {
		if errors.Is(err, ports.ErrContributorNotFound) {
			return uuid.Nil, ownership.ErrNotFound
		}
		return uuid.Nil, err
	}
	return contributor.ID, nil
}

// ContributorIDByUsername implements ownership.ContributorDirectory
func (c *ContributorsOwnershipChecker) ContributorIDByUsername(ctx context.Context, username string) (uuid.UUID, error) {
	contributor, err := c.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ports.ErrContributorNotFound) {
			return uuid.Nil, ownership.ErrNotFound
		}
		return uuid.Nil, err
	}
	return contributor.ID, nil
}

// RegisterContributorsOwnership registers the contributors checker with the registry
func RegisterContributorsOwnership(registry ownership.Registry, checker *ContributorsOwnershipChecker) {
	registry.RegisterChecker(permission.EntityContributors, checker)
}

var (
	_ ownership.Checker              = (*ContributorsOwnershipChecker)(nil)
	_ ownership.ContributorDirectory = (*ContributorsOwnershipChecker)(nil)
)
