package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	authz "github.com/philly/learnhub/backend/internal/authz/domain"
	"github.com/philly/learnhub/backend/internal/likes/domain"
)

// Repository errors - these are the canonical errors that repository
// implementations should return.
var (
	// ErrDuplicateLike is returned when the unique (user, resource) constraint rejects an insert.
	ErrDuplicateLike = errors.New("resource already liked by this user")

	// ErrResourceNotFound is returned when the liked resource does not exist.
	ErrResourceNotFound = errors.New("resource not found")
)

// LikeRepository defines the interface for like persistence.
// Uniqueness is enforced by the store, never by a prior existence check.
type LikeRepository interface {
	Create(ctx context.Context, like *domain.Like) error

	// Delete reports whether a row was removed.
	Delete(ctx context.Context, username string, resourceID uuid.UUID) (bool, error)

	CountByResource(ctx context.Context, resourceID uuid.UUID) (int64, error)

	// CountByResources counts likes for many resources in one query.
	// Resources without likes are absent from the map.
	CountByResources(ctx context.Context, resourceIDs []uuid.UUID) (map[uuid.UUID]int64, error)

	Exists(ctx context.Context, username string, resourceID uuid.UUID) (bool, error)

	WithTx(tx pgx.Tx) LikeRepository
}

// ResourceChecker reports whether a likeable resource exists.
type ResourceChecker interface {
	ResourceExists(ctx context.Context, resourceID uuid.UUID) (bool, error)
}

// Authorizer is an interface for checking permissions
type Authorizer interface {
	Can(ctx context.Context, actor authz.Actor, entityType string, action string, entityID *uuid.UUID) (bool, error)
}
