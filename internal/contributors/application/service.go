package application

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	authz "github.com/philly/learnhub/backend/internal/authz/domain"
	"github.com/philly/learnhub/backend/internal/authz/permission"
	"github.com/philly/learnhub/backend/internal/contributors/domain"
	"github.com/philly/learnhub/backend/internal/contributors/ports"
	"github.com/philly/learnhub/backend/internal/platform/apperror"
	"github.com/philly/learnhub/backend/internal/platform/eventbus"
	"github.com/philly/learnhub/backend/internal/platform/events"
	"github.com/philly/learnhub/backend/internal/platform/logger"
	"github.com/philly/learnhub/backend/internal/platform/ownership"
	"github.com/philly/learnhub/backend/internal/platform/postgres"
)

// Error definitions for service operations
var (
	ErrContributorNotFound = apperror.New(
		apperror.CodeNotFound,
		apperror.BusinessCodeContributorNotFound,
		"contributor not found",
		http.StatusNotFound,
	)

	ErrDisplayNameRequired = apperror.New(
		apperror.CodeValidationFailed,
		apperror.BusinessCodeDisplayNameRequired,
		"at least one of github profile or screen name is required",
		http.StatusBadRequest,
	)

	ErrDisplayNameTaken = apperror.New(
		apperror.CodeConflict,
		apperror.BusinessCodeDisplayNameTaken,
		"display name already in use",
		http.StatusConflict,
	)

	ErrContributorHasResources = apperror.New(
		apperror.CodeConflict,
		apperror.BusinessCodeContributorHasResources,
		"contributor still owns resources; delete or reassign them first",
		http.StatusConflict,
	)

	ErrNameRequired = apperror.New(
		apperror.CodeValidationFailed,
		apperror.BusinessCodeInvalidFormat,
		"contributor name is required",
		http.StatusBadRequest,
	)
)

// Profile is a contributor together with the resources it owns.
type Profile struct {
	*domain.Contributor
	Resources []ports.OwnedResource
}

// Directory is a contributor listing split for display: every contributor
// with a github profile is in Github, the rest are in Screen.
type Directory struct {
	Github []*domain.Contributor
	Screen []*domain.Contributor
}

// ContributorsService handles contributor profile business logic
type ContributorsService struct {
	repo       ports.ContributorRepository
	resources  ports.ResourceLister
	authorizer ports.Authorizer
	txManager  postgres.TransactionManager
	eventBus   eventbus.Publisher
	logger     logger.Logger
}

// NewContributorsService creates a new contributors service
func NewContributorsService(
	repo ports.ContributorRepository,
	resources ports.ResourceLister,
	authorizer ports.Authorizer,
	txManager postgres.TransactionManager,
	eventBus eventbus.Publisher,
	logger logger.Logger,
) *ContributorsService {
	return &ContributorsService{
		repo:       repo,
		resources:  resources,
		authorizer: authorizer,
		txManager:  txManager,
		eventBus:   eventBus,
		logger:     logger,
	}
}

// GetByID is the privileged lookup by surrogate id.
func (s *ContributorsService) GetByID(ctx context.Context, actor authz.Actor, id uuid.UUID) (*Profile, error) {
	allowed, err := s.authorizer.Can(ctx, actor, permission.EntityContributors, "read_by_id", nil)
	if err != nil {
		s.logger.Error(ctx, "failed to check authorization", "error", err, "actor", actor.Username)
		return nil, apperror.Internal("authorization check failed", err)
	}
	if !allowed {
		return nil, apperror.Forbidden("only administrators may look up contributors by id")
	}

	contributor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(ctx, err, "id", id.String())
	}
	return s.withResources(ctx, contributor)
}

// GetByDisplayName is the open lookup by github profile or screen name.
func (s *ContributorsService) GetByDisplayName(ctx context.Context, name string) (*Profile, error) {
	contributor, err := s.findByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.withResources(ctx, contributor)
}

// ListAll returns every contributor, ordered by display name descending.
func (s *ContributorsService) ListAll(ctx context.Context) (*Directory, error) {
	contributors, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to list contributors", "error", err)
		return nil, apperror.Internal("failed to list contributors", err)
	}
	return split(contributors), nil
}

// ListByContributions returns every contributor, most contributions first.
func (s *ContributorsService) ListByContributions(ctx context.Context) (*Directory, error) {
	contributors, err := s.repo.ListByContributions(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to list contributors by contributions", "error", err)
		return nil, apperror.Internal("failed to list contributors", err)
	}
	return split(contributors), nil
}

// Update edits the display names of the contributor found by name.
// Absent fields are kept, blank fields are cleared, and at least one
// display name has to remain.
func (s *ContributorsService) Update(ctx context.Context, actor authz.Actor, name string, patch domain.ProfilePatch) (*domain.Contributor, error) {
	contributor, err := s.findByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(ctx, actor, "update", contributor.ID); err != nil {
		return nil, err
	}

	if err := contributor.Apply(patch); err != nil {
		if errors.Is(err, domain.ErrDisplayNameRequired) {
			return nil, ErrDisplayNameRequired
		}
		return nil, apperror.Validation(apperror.BusinessCodeInvalidFormat, err.Error())
	}

	err = postgres.RunInTx(ctx, s.txManager, func(tx postgres.Transaction) error {
		return s.repo.WithTx(tx.Tx()).Update(ctx, contributor)
	})
	if err != nil {
		switch {
		case errors.Is(err, ports.ErrDisplayNameTaken):
			return nil, ErrDisplayNameTaken
		case errors.Is(err, ports.ErrContributorNotFound):
			return nil, ErrContributorNotFound
		}
		s.logger.Error(ctx, "failed to update contributor",
			"error", err,
			"actor", actor.Username,
			"contributor_id", contributor.ID,
		)
		return nil, apperror.Internal("failed to update contributor", err)
	}

	s.eventBus.Publish(ctx, eventbus.Event{
		Topic: events.ContributorUpdatedTopic,
		Payload: events.ContributorUpdatedEvent{
			ContributorID: contributor.ID,
			DisplayName:   contributor.DisplayName(),
			Actor:         actor.Username,
			OccurredAt:    time.Now(),
		},
	})

	return contributor, nil
}

// Delete removes the contributor found by name. A contributor that still
// owns resources cannot be deleted.
func (s *ContributorsService) Delete(ctx context.Context, actor authz.Actor, name string) error {
	contributor, err := s.findByName(ctx, name)
	if err != nil {
		return err
	}

	if err := s.authorize(ctx, actor, "delete", contributor.ID); err != nil {
		return err
	}

	if contributor.Contributions > 0 {
		return ErrContributorHasResources
	}

	err = postgres.RunInTx(ctx, s.txManager, func(tx postgres.Transaction) error {
		return s.repo.WithTx(tx.Tx()).Delete(ctx, contributor.ID)
	})
	if err != nil {
		switch {
		case errors.Is(err, ports.ErrContributorHasResources):
			return ErrContributorHasResources
		case errors.Is(err, ports.ErrContributorNotFound):
			return ErrContributorNotFound
		}
		s.logger.Error(ctx, "failed to delete contributor",
			"error", err,
			"actor", actor.Username,
			"contributor_id", contributor.ID,
		)
		return apperror.Internal("failed to delete contributor", err)
	}

	s.eventBus.Publish(ctx, eventbus.Event{
		Topic: events.ContributorDeletedTopic,
		Payload: events.ContributorDeletedEvent{
			ContributorID: contributor.ID,
			DisplayName:   contributor.DisplayName(),
			Actor:         actor.Username,
			OccurredAt:    time.Now(),
		},
	})

	return nil
}

func (s *ContributorsService) findByName(ctx context.Context, name string) (*domain.Contributor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	contributor, err := s.repo.FindByDisplayName(ctx, name)
	if err != nil {
		return nil, s.mapLookupError(ctx, err, "name", name)
	}
	return contributor, nil
}

func (s *ContributorsService) authorize(ctx context.Context, actor authz.Actor, action string, id uuid.UUID) error {
	allowed, err := s.authorizer.Can(ctx, actor, permission.EntityContributors, action, &id)
	if err != nil {
		if errors.Is(err, ownership.ErrNotFound) {
			return ErrContributorNotFound
		}
		s.logger.Error(ctx, "failed to check authorization",
			"error", err,
			"actor", actor.Username,
			"contributor_id", id,
		)
		return apperror.Internal("authorization check failed", err)
	}
	if !allowed {
		return apperror.Forbidden("not authorized to " + action + " this contributor")
	}
	return nil
}

func (s *ContributorsService) withResources(ctx context.Context, contributor *domain.Contributor) (*Profile, error) {
	owned, err := s.resources.ListByContributor(ctx, contributor.ID)
	if err != nil {
		s.logger.Error(ctx, "failed to list contributor resources", "error", err, "contributor_id", contributor.ID)
		return nil, apperror.Internal("failed to load contributor profile", err)
	}
	return &Profile{Contributor: contributor, Resources: owned}, nil
}

func (s *ContributorsService) mapLookupError(ctx context.Context, err error, key, value string) error {
	if errors.Is(err, ports.ErrContributorNotFound) {
		return ErrContributorNotFound
	}
	s.logger.Error(ctx, "failed to find contributor", "error", err, key, value)
	return apperror.Internal("failed to find contributor", err)
}

func split(contributors []*domain.Contributor) *Directory {
	dir := &Directory{
		Github: make([]*domain.Contributor, 0),
		Screen: make([]*domain.Contributor, 0),
	}
	for _, c := range contributors {
		if c.HasGithubProfile() {
			dir.Github = append(dir.Github, c)
		} else {
			dir.Screen = append(dir.Screen, c)
		}
	}
	return dir
}
