package ports

import (
	"context"

	"github.com/google/uuid"

	authz "github.com/philly/learnhub/backend/internal/authz/domain"
)

// Authorizer is an interface for checking permissions
// This is a driven port - the contributors module depends on this capability
// but doesn't know how it's implemented
type Authorizer interface {
	Can(ctx context.Context, actor authz.Actor, entityType string, action string, entityID *uuid.UUID) (bool, error)
}
