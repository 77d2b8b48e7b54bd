package ownership

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned by checkers and lookups when the target does not exist.
var ErrNotFound = errors.New("ownership: target not found")

// Checker reports which contributor owns an entity.
// It is implemented by each bounded context that has ownership-gated entities.
type Checker interface {
	// OwnerOf returns the owning contributor id of the entity, or ErrNotFound.
	OwnerOf(ctx context.Context, entityID uuid.UUID) (uuid.UUID, error)
}

// Registry holds ownership checkers for different entity types.
// It is used by the authorization service to resolve owners of mutation targets.
type Registry interface {
	RegisterChecker(entityType string, checker Checker)
	GetChecker(entityType string) (Checker, bool)
	OwnerOf(ctx context.Context, entityType string, entityID uuid.UUID) (uuid.UUID, error)
}

// ContributorDirectory maps an identity username to its contributor profile id.
type ContributorDirectory interface {
	// ContributorIDByUsername returns ErrNotFound when the identity has no profile.
	ContributorIDByUsername(ctx context.Context, username string) (uuid.UUID, error)
}
