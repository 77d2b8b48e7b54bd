package ownership

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/philly/learnhub/backend/internal/platform/logger"
)

// Resolver attaches a contributor id to an authenticated identity.
// It never fails: a missing profile, an anonymous caller and a store error
// all resolve to nil, and only the store error is logged.
type Resolver struct {
	directory ContributorDirectory
	logger    logger.Logger
}

// NewResolver creates a resolver backed by the contributor directory.
func NewResolver(directory ContributorDirectory, logger logger.Logger) *Resolver {
	return &Resolver{directory: directory, logger: logger}
}

// Resolve returns the contributor id owned by username, or nil.
func (r *Resolver) Resolve(ctx context.Context, username string) *uuid.UUID {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil
	}

	id, err := r.directory.ContributorIDByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			r.logger.Error(ctx, "failed to resolve contributor", "username", username, "error", err)
		}
		return nil
	}
	return &id
}
