package ownership

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// DefaultRegistry is the default implementation of Registry
type DefaultRegistry struct {
	checkers map[string]Checker
	mu       sync.RWMutex
}

// NewRegistry creates a new ownership registry
func NewRegistry() *DefaultRegistry {
	return &DefaultRegistry{
		checkers: make(map[string]Checker),
	}
}

// RegisterChecker registers an ownership checker for an entity type
func (r *DefaultRegistry) RegisterChecker(entityType string, checker Checker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers[entityType] = checker
}

// GetChecker retrieves the ownership checker for an entity type
func (r *DefaultRegistry) GetChecker(entityType string) (Checker, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	checker, exists := r.checkers[entityType]
	return checker, exists
}

// OwnerOf resolves the owner through the checker registered for entityType.
func (r *DefaultRegistry) OwnerOf(ctx context.Context, entityType string, entityID uuid.UUID) (uuid.UUID, error) {
	checker, exists := r.GetChecker(entityType)
	if !exists {
		return uuid.Nil, fmt.Errorf("no ownership checker registered for entity type: %s", entityType)
	}

	return checker.OwnerOf(ctx, entityID)
}
