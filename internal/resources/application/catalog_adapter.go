package application

import (
	"context"
	"errors"

	"github.com/google/uuid"

	contributorPorts "github.com/philly/learnhub/backend/internal/contributors/ports"
	likePorts "github.com/philly/learnhub/backend/internal/likes/ports"
	"github.com/philly/learnhub/backend/internal/resources/ports"
)

// CatalogAdapter exposes catalog reads to the contributors and likes modules.
type CatalogAdapter struct {
	repo ports.ResourceRepository
}

// NewCatalogAdapter creates a new catalog adapter
func NewCatalogAdapter(repo ports.ResourceRepository) *CatalogAdapter {
	return &CatalogAdapter{repo: repo}
}

// ListByContributor implements contributorPorts.ResourceLister
func (a *CatalogAdapter) ListByContributor(ctx context.Context, contributorID uuid.UUID) ([]contributorPorts.OwnedResource, error) {
	resources, err := a.repo.List(ctx, ports.ListFilter{
		ContributorID: &contributorID,
		OrderBy:       ports.OrderByLearningID,
	})
	if err != nil {
		return nil, err
	}

	owned := make([]contributorPorts.OwnedResource, len(resources))
	for i, r := range resources {
		owned[i] = contributorPorts.OwnedResource{
			ID:             r.ID,
			LearningID:     r.LearningID,
			Title:          r.Title,
			Link:           r.Link,
			FormatCategory: string(r.FormatCategory),
			SubCategory:    string(r.SubCategory),
			CreatedAt:      r.CreatedAt,
		}
	}
	return owned, nil
}

// ResourceExists implements likePorts.ResourceChecker
func (a *CatalogAdapter) ResourceExists(ctx context.Context, resourceID uuid.UUID) (bool, error) {
	_, err := a.repo.GetOwner(ctx, resourceID)
	if err != nil {
		if errors.Is(err, ports.ErrResourceNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

var (
	_ contributorPorts.ResourceLister = (*CatalogAdapter)(nil)
	_ likePorts.ResourceChecker       = (*CatalogAdapter)(nil)
)
