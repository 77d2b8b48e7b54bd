package application

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	authz "github.com/philly/learnhub/backend/internal/authz/domain"
	"github.com/philly/learnhub/backend/internal/authz/permission"
	"github.com/philly/learnhub/backend/internal/likes/domain"
	"github.com/philly/learnhub/backend/internal/likes/ports"
	"github.com/philly/learnhub/backend/internal/platform/apperror"
	"github.com/philly/learnhub/backend/internal/platform/eventbus"
	"github.com/philly/learnhub/backend/internal/platform/events"
	"github.com/philly/learnhub/backend/internal/platform/logger"
	"github.com/philly/learnhub/backend/internal/platform/postgres"
)

// Error definitions for service operations
var (
	ErrDuplicateLike = apperror.New(
		apperror.CodeConflict,
		apperror.BusinessCodeDuplicateLike,
		"you have already liked this resource",
		http.StatusConflict,
	)

	ErrResourceNotFound = apperror.New(
		apperror.CodeNotFound,
		apperror.BusinessCodeResourceNotFound,
		"resource not found",
		http.StatusNotFound,
	)
)

// Summary is the like data of one resource as seen by one caller.
type Summary struct {
	ResourceID uuid.UUID
	Count      int64
	// LikedByMe is nil for anonymous callers.
	LikedByMe *bool
}

// LikesService handles liking and unliking resources
type LikesService struct {
	repo       ports.LikeRepository
	resources  ports.ResourceChecker
	authorizer ports.Authorizer
	txManager  postgres.TransactionManager
	eventBus   eventbus.Publisher
	logger     logger.Logger
}

// NewLikesService creates a new likes service
func NewLikesService(
	repo ports.LikeRepository,
	resources ports.ResourceChecker,
	authorizer ports.Authorizer,
	txManager postgres.TransactionManager,
	eventBus eventbus.Publisher,
	logger logger.Logger,
) *LikesService {
	return &LikesService{
		repo:       repo,
		resources:  resources,
		authorizer: authorizer,
		txManager:  txManager,
		eventBus:   eventBus,
		logger:     logger,
	}
}

// Like records that the actor likes the resource. A second like for the
// same pair is rejected by the unique constraint, including under races.
func (s *LikesService) Like(ctx context.Context, actor authz.Actor, resourceID uuid.UUID) (*domain.Like, error) {
	if err := s.authorize(ctx, actor, "create"); err != nil {
		return nil, err
	}

	like, err := domain.NewLike(actor.Username, resourceID)
	if err != nil {
		return nil, apperror.Validation(apperror.BusinessCodeInvalidFormat, err.Error())
	}

	err = postgres.RunInTx(ctx, s.txManager, func(tx postgres.Transaction) error {
		return s.repo.WithTx(tx.Tx()).Create(ctx, like)
	})
	if err != nil {
		switch {
		case errors.Is(err, ports.ErrDuplicateLike):
			return nil, ErrDuplicateLike
		case errors.Is(err, ports.ErrResourceNotFound):
			return nil, ErrResourceNotFound
		}
		s.logger.Error(ctx, "failed to create like",
			"error", err,
			"actor", actor.Username,
			"resource_id", resourceID,
		)
		return nil, apperror.Internal("failed to like resource", err)
	}

	s.eventBus.Publish(ctx, eventbus.Event{
		Topic: events.LikeAddedTopic,
		Payload: events.LikeAddedEvent{
			ResourceID: resourceID,
			Username:   actor.Username,
			OccurredAt: like.CreatedAt,
		},
	})

	return like, nil
}

// Unlike removes the actor's like and reports whether one existed.
// Unliking a resource that was not liked is not an error.
func (s *LikesService) Unlike(ctx context.Context, actor authz.Actor, resourceID uuid.UUID) (bool, error) {
	if err := s.authorize(ctx, actor, "delete"); err != nil {
		return false, err
	}

	var removed bool
	err := postgres.RunInTx(ctx, s.txManager, func(tx postgres.Transaction) error {
		var err error
		removed, err = s.repo.WithTx(tx.Tx()).Delete(ctx, actor.Username, resourceID)
		return err
	})
	if err != nil {
		s.logger.Error(ctx, "failed to delete like",
			"error", err,
			"actor", actor.Username,
			"resource_id", resourceID,
		)
		return false, apperror.Internal("failed to unlike resource", err)
	}

	if removed {
		s.eventBus.Publish(ctx, eventbus.Event{
			Topic: events.LikeRemovedTopic,
			Payload: events.LikeRemovedEvent{
				ResourceID: resourceID,
				Username:   actor.Username,
				OccurredAt: time.Now(),
			},
		})
	}

	return removed, nil
}

// Count returns the number of likes of a resource.
func (s *LikesService) Count(ctx context.Context, resourceID uuid.UUID) (int64, error) {
	n, err := s.repo.CountByResource(ctx, resourceID)
	if err != nil {
		s.logger.Error(ctx, "failed to count likes", "error", err, "resource_id", resourceID)
		return 0, apperror.Internal("failed to count likes", err)
	}
	return n, nil
}

// HasLiked reports whether the actor likes the resource. Anonymous actors never do.
func (s *LikesService) HasLiked(ctx context.Context, actor authz.Actor, resourceID uuid.UUID) (bool, error) {
	if !actor.IsAuthenticated() {
		return false, nil
	}
	liked, err := s.repo.Exists(ctx, actor.Username, resourceID)
	if err != nil {
		s.logger.Error(ctx, "failed to check like",
			"error", err,
			"actor", actor.Username,
			"resource_id", resourceID,
		)
		return false, apperror.Internal("failed to check like", err)
	}
	return liked, nil
}

// Summary returns the count and, for identified callers, the liked-by-me flag
// of an existing resource.
func (s *LikesService) Summary(ctx context.Context, actor authz.Actor, resourceID uuid.UUID) (*Summary, error) {
	exists, err := s.resources.ResourceExists(ctx, resourceID)
	if err != nil {
		s.logger.Error(ctx, "failed to check resource", "error", err, "resource_id", resourceID)
		return nil, apperror.Internal("failed to load likes", err)
	}
	if !exists {
		return nil, ErrResourceNotFound
	}

	count, err := s.Count(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	summary := &Summary{ResourceID: resourceID, Count: count}

	if actor.IsAuthenticated() {
		liked, err := s.HasLiked(ctx, actor, resourceID)
		if err != nil {
			return nil, err
		}
		summary.LikedByMe = &liked
	}
	return summary, nil
}

func (s *LikesService) authorize(ctx context.Context, actor authz.Actor, action string) error {
	allowed, err := s.authorizer.Can(ctx, actor, permission.EntityLikes, action, nil)
	if err != nil {
		s.logger.Error(ctx, "failed to check authorization", "error", err, "actor", actor.Username)
		return apperror.Internal("authorization check failed", err)
	}
	if !allowed {
		return apperror.Forbidden("sign in to like resources")
	}
	return nil
}
