package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OwnedResource is the slice of a resource shown on a contributor profile.
type OwnedResource struct {
	ID             uuid.UUID
	LearningID     int64
	Title          string
	Link           string
	FormatCategory string
	SubCategory    string
	CreatedAt      time.Time
}

// ResourceLister provides the resources owned by a contributor.
type ResourceLister interface {
	ListByContributor(ctx context.Context, contributorID uuid.UUID) ([]OwnedResource, error)
}
