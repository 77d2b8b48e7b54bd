package application

import (
	"context"

	"github.com/google/uuid"

	likePorts "github.com/philly/learnhub/backend/internal/likes/ports"
	"github.com/philly/learnhub/backend/internal/resources/ports"
)

// LikesAdapter reads like data for resource views from the likes repository.
type LikesAdapter struct {
	repo likePorts.LikeRepository
}

// NewLikesAdapter creates a new likes adapter
func NewLikesAdapter(repo likePorts.LikeRepository) *LikesAdapter {
	return &LikesAdapter{repo: repo}
}

func (a *LikesAdapter) CountByResource(ctx context.Context, resourceID uuid.UUID) (int64, error) {
	return a.repo.CountByResource(ctx, resourceID)
}

func (a *LikesAdapter) CountByResources(ctx context.Context, resourceIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	return a.repo.CountByResources(ctx, resourceIDs)
}

func (a *LikesAdapter) HasLiked(ctx context.Context, username string, resourceID uuid.UUID) (bool, error) {
	return a.repo.Exists(ctx, username, resourceID)
}

var _ ports.LikeCounter = (*LikesAdapter)(nil)
