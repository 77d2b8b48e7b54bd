package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	authz "github.com/philly/learnhub/backend/internal/authz/domain"
)

var (
	// ErrCounterUnderflow means the owner's counter is already zero.
	ErrCounterUnderflow = errors.New("contribution counter would become negative")

	ErrContributorNotFound = errors.New("contributor not found")
)

// Authorizer is an interface for checking permissions
// This is a driven port - the resources module depends on this capability
// but doesn't know how it's implemented
type Authorizer interface {
	Can(ctx context.Context, actor authz.Actor, entityType string, action string, entityID *uuid.UUID) (bool, error)
}

// ContributionCounter keeps a contributor's counter in step with the
// resources it owns. It must run in the same transaction as the resource write.
type ContributionCounter interface {
	Increment(ctx context.Context, contributorID uuid.UUID) error

	// Decrement fails with ErrCounterUnderflow instead of going below zero.
	Decrement(ctx context.Context, contributorID uuid.UUID) error

	WithTx(tx pgx.Tx) ContributionCounter
}

// ContributorLookup resolves a display name to a contributor id.
type ContributorLookup interface {
	// ContributorIDByName returns ErrContributorNotFound for an unknown name.
	ContributorIDByName(ctx context.Context, name string) (uuid.UUID, error)
}

// LikeCounter provides the like data attached to resource views.
type LikeCounter interface {
	CountByResource(ctx context.Context, resourceID uuid.UUID) (int64, error)

	// CountByResources omits resources without likes from the result.
	CountByResources(ctx context.Context, resourceIDs []uuid.UUID) (map[uuid.UUID]int64, error)

	HasLiked(ctx context.Context, username string, resourceID uuid.UUID) (bool, error)
}
