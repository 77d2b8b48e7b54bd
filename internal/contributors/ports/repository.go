package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/philly/learnhub/backend/internal/contributors/domain"
)

// Repository errors - these are the canonical errors that repository
// implementations should return.
var (
	ErrContributorNotFound = errors.New("contributor not found")

	// ErrDisplayNameTaken is returned when either name collides, case-insensitively,
	// with a name of another contributor.
	ErrDisplayNameTaken = errors.New("display name already in use")

	// ErrContributorHasResources is returned when deleting a contributor that still owns resources.
	ErrContributorHasResources = errors.New("contributor still owns resources")

	// ErrCounterUnderflow is returned when a decrement would take contributions below zero.
	ErrCounterUnderflow = errors.New("contribution counter would become negative")
)

// ContributorRepository defines the interface for contributor persistence
type ContributorRepository interface {
	Create(ctx context.Context, contributor *domain.Contributor) error

	FindByID(ctx context.Context, id uuid.UUID) (*domain.Contributor, error)

	// FindByDisplayName matches the trimmed name case-insensitively against
	// both the github profile and the screen name.
	FindByDisplayName(ctx context.Context, name string) (*domain.Contributor, error)

	// FindByUsername finds the profile linked to an identity, case-insensitively.
	FindByUsername(ctx context.Context, username string) (*domain.Contributor, error)

	// ListAll orders by display name (github profile, falling back to screen name) descending.
	ListAll(ctx context.Context) ([]*domain.Contributor, error)

	// ListByContributions orders by contribution count descending.
	ListByContributions(ctx context.Context) ([]*domain.Contributor, error)

	// Update replaces both display names. Contributions are never written here.
	Update(ctx context.Context, contributor *domain.Contributor) error

	Delete(ctx context.Context, id uuid.UUID) error

	// IncrementContributions adds one to the counter under the row lock.
	IncrementContributions(ctx context.Context, id uuid.UUID) error

	// DecrementContributions subtracts one, or fails with ErrCounterUnderflow
	// when the counter is already zero.
	DecrementContributions(ctx context.Context, id uuid.UUID) error

	WithTx(tx pgx.Tx) ContributorRepository
}
