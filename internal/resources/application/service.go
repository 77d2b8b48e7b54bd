package application

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	authz "github.com/philly/learnhub/backend/internal/authz/domain"
	"github.com/philly/learnhub/backend/internal/authz/permission"
	"github.com/philly/learnhub/backend/internal/platform/apperror"
	"github.com/philly/learnhub/backend/internal/platform/eventbus"
	"github.com/philly/learnhub/backend/internal/platform/events"
	"github.com/philly/learnhub/backend/internal/platform/logger"
	"github.com/philly/learnhub/backend/internal/platform/ownership"
	"github.com/philly/learnhub/backend/internal/platform/postgres"
	"github.com/philly/learnhub/backend/internal/resources/domain"
	"github.com/philly/learnhub/backend/internal/resources/ports"
)

// Listing caps for the newest and recently-updated views.
const feedLimit = 100

// Error definitions for service operations
var (
	ErrResourceNotFound = apperror.New(
		apperror.CodeNotFound,
		apperror.BusinessCodeResourceNotFound,
		"resource not found",
		http.StatusNotFound,
	)

	ErrContributorNotFound = apperror.New(
		apperror.CodeNotFound,
		apperror.BusinessCodeContributorNotFound,
		"contributor not found",
		http.StatusNotFound,
	)

	ErrNoContributorProfile = apperror.New(
		apperror.CodeForbidden,
		apperror.BusinessCodeNoContributorProfile,
		"a contributor profile is required to submit resources",
		http.StatusForbidden,
	)

	ErrLearningIDMismatch = apperror.New(
		apperror.CodeValidationFailed,
		apperror.BusinessCodeLearningIDMismatch,
		"learning id in the path and in the body differ",
		http.StatusBadRequest,
	)

	ErrDuplicateLearningID = apperror.New(
		apperror.CodeConflict,
		apperror.BusinessCodeDuplicateLearningID,
		"learning id already in use",
		http.StatusConflict,
	)

	ErrCounterUnderflow = apperror.New(
		apperror.CodeConflict,
		apperror.BusinessCodeCounterUnderflow,
		"contribution counter would become negative",
		http.StatusConflict,
	)

	ErrInvalidPagination = apperror.New(
		apperror.CodeValidationFailed,
		apperror.BusinessCodeInvalidPagination,
		"page must be >= 0 and limit must be > 0",
		http.StatusBadRequest,
	)

	ErrBlankKeyword = apperror.New(
		apperror.CodeValidationFailed,
		apperror.BusinessCodeBlankKeyword,
		"search keyword must not be blank",
		http.StatusBadRequest,
	)
)

// View is a resource as returned to callers, with its like data.
type View struct {
	*domain.Resource
	Likes int64
	// LikedByMe is only set on the by-id view for identified callers.
	LikedByMe *bool
}

// CreateParams contains parameters for submitting a resource
type CreateParams struct {
	// LearningID is honored for administrators only
	LearningID     *int64
	Link           string
	Title          string
	FormatCategory string
	SubCategory    string
	Description    string
}

// UpdateParams contains the fields to change; nil fields are kept.
type UpdateParams struct {
	// LearningID, when present, must equal the learning id being updated
	LearningID     *int64
	Link           *string
	Title          *string
	FormatCategory *string
	SubCategory    *string
	Description    *string
}

// ResourcesService handles catalog business logic
type ResourcesService struct {
	repo         ports.ResourceRepository
	counter      ports.ContributionCounter
	contributors ports.ContributorLookup
	likes        ports.LikeCounter
	authorizer   ports.Authorizer
	txManager    postgres.TransactionManager
	eventBus     eventbus.Publisher
	logger       logger.Logger
	sanitizer    *bluemonday.Policy
}

// NewResourcesService creates a new resources service
func NewResourcesService(
	repo ports.ResourceRepository,
	counter ports.ContributionCounter,
	contributors ports.ContributorLookup,
	likes ports.LikeCounter,
	authorizer ports.Authorizer,
	txManager postgres.TransactionManager,
	eventBus eventbus.Publisher,
	logger logger.Logger,
) *ResourcesService {
	return &ResourcesService{
		repo:         repo,
		counter:      counter,
		contributors: contributors,
		likes:        likes,
		authorizer:   authorizer,
		txManager:    txManager,
		eventBus:     eventBus,
		logger:       logger,
		sanitizer:    bluemonday.UGCPolicy(),
	}
}

// Create submits a resource owned by the actor's contributor profile and
// increments that profile's counter in the same transaction.
func (s *ResourcesService) Create(ctx context.Context, actor authz.Actor, params CreateParams) (*View, error) {
	if err := s.require(ctx, actor, "create", "not authorized to create resources"); err != nil {
		return nil, err
	}
	if !actor.HasContributor() {
		return nil, ErrNoContributorProfile
	}

	format, err := domain.ParseFormatCategory(params.FormatCategory)
	if err != nil {
		return nil, validationError(err)
	}
	sub, err := domain.ParseSubCategory(params.SubCategory)
	if err != nil {
		return nil, validationError(err)
	}

	resource, err := domain.NewResource(
		params.Link,
		params.Title,
		format,
		sub,
		s.sanitizer.Sanitize(params.Description),
		*actor.ContributorID,
	)
	if err != nil {
		return nil, validationError(err)
	}

	if params.LearningID != nil {
		assign, err := s.can(ctx, actor, "assign_learning_id", nil)
		if err != nil {
			return nil, err
		}
		if assign {
			if *params.LearningID <= 0 {
				return nil, apperror.Validation(apperror.BusinessCodeInvalidFormat, "learning id must be positive")
			}
			resource.LearningID = *params.LearningID
		}
	}

	err = postgres.RunInTx(ctx, s.txManager, func(tx postgres.Transaction) error {
		if err := s.repo.WithTx(tx.Tx()).Create(ctx, resource); err != nil {
			return err
		}
		return s.counter.WithTx(tx.Tx()).Increment(ctx, resource.ContributorID)
	})
	if err != nil {
		switch {
		case errors.Is(err, ports.ErrDuplicateLearningID):
			return nil, ErrDuplicateLearningID
		case errors.Is(err, ports.ErrOwnerNotFound), errors.Is(err, ports.ErrContributorNotFound):
			return nil, ErrContributorNotFound
		}
		s.logger.Error(ctx, "failed to create resource",
			"error", err,
			"actor", actor.Username,
			"contributor_id", resource.ContributorID,
		)
		return nil, apperror.Internal("failed to create resource", err)
	}

	s.eventBus.Publish(ctx, eventbus.Event{
		Topic: events.ResourceCreatedTopic,
		Payload: events.ResourceCreatedEvent{
			ResourceID:    resource.ID,
			LearningID:    resource.LearningID,
			ContributorID: resource.ContributorID,
			Actor:         actor.Username,
			OccurredAt:    resource.CreatedAt,
		},
	})

	return &View{Resource: resource}, nil
}

// GetByID returns a resource with its like count and, for an identified
// actor, whether the actor likes it.
func (s *ResourcesService) GetByID(ctx context.Context, actor authz.Actor, id uuid.UUID) (*View, error) {
	resource, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(ctx, err, "resource_id", id.String())
	}

	view, err := s.single(ctx, resource)
	if err != nil {
		return nil, err
	}

	if actor.IsAuthenticated() {
		liked, err := s.likes.HasLiked(ctx, actor.Username, id)
		if err != nil {
			s.logger.Error(ctx, "failed to check like", "error", err, "actor", actor.Username, "resource_id", id)
			return nil, apperror.Internal("failed to load resource", err)
		}
		view.LikedByMe = &liked
	}
	return view, nil
}

// GetByLearningID returns a resource with its like count.
func (s *ResourcesService) GetByLearningID(ctx context.Context, learningID int64) (*View, error) {
	resource, err := s.repo.FindByLearningID(ctx, learningID)
	if err != nil {
		return nil, s.mapLookupError(ctx, err, "learning_id", learningID)
	}
	return s.single(ctx, resource)
}

// ListAll returns every resource ordered by format category descending.
func (s *ResourcesService) ListAll(ctx context.Context) ([]*View, error) {
	return s.list(ctx, ports.ListFilter{OrderBy: ports.OrderByFormatCategory, OrderDesc: true})
}

// ListNewest returns the most recently created resources.
func (s *ResourcesService) ListNewest(ctx context.Context) ([]*View, error) {
	return s.list(ctx, ports.ListFilter{OrderBy: ports.OrderByCreatedAt, OrderDesc: true, Limit: feedLimit})
}

// ListRecentlyUpdated returns the most recently modified resources.
func (s *ResourcesService) ListRecentlyUpdated(ctx context.Context) ([]*View, error) {
	return s.list(ctx, ports.ListFilter{OrderBy: ports.OrderByModifiedAt, OrderDesc: true, Limit: feedLimit})
}

// ListPage returns one page of resources, newest first. The limit is capped
// at domain.MaxPageSize.
func (s *ResourcesService) ListPage(ctx context.Context, page, limit int) (*domain.Page[*View], error) {
	req, err := domain.NewPageRequest(page, limit)
	if err != nil {
		return nil, ErrInvalidPagination
	}

	filter := ports.ListFilter{
		OrderBy:   ports.OrderByCreatedAt,
		OrderDesc: true,
		Limit:     req.Limit,
		Offset:    req.Offset(),
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		s.logger.Error(ctx, "failed to count resources", "error", err)
		return nil, apperror.Internal("failed to list resources", err)
	}
	views, err := s.list(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := domain.NewPage(views, req, total)
	return &result, nil
}

// ListByFormat lists resources of one format, ordered by sub category.
// Identified callers only.
func (s *ResourcesService) ListByFormat(ctx context.Context, actor authz.Actor, category string) ([]*View, error) {
	if err := s.require(ctx, actor, "read_categorized", "sign in to browse by category"); err != nil {
		return nil, err
	}
	format, err := domain.ParseFormatCategory(category)
	if err != nil {
		return nil, validationError(err)
	}
	return s.list(ctx, ports.ListFilter{FormatCategory: &format, OrderBy: ports.OrderBySubCategory})
}

// ListBySubCategory lists resources of one subject, ordered by contributor
// display name. Identified callers only.
func (s *ResourcesService) ListBySubCategory(ctx context.Context, actor authz.Actor, category string) ([]*View, error) {
	if err := s.require(ctx, actor, "read_categorized", "sign in to browse by category"); err != nil {
		return nil, err
	}
	sub, err := domain.ParseSubCategory(category)
	if err != nil {
		return nil, validationError(err)
	}
	return s.list(ctx, ports.ListFilter{SubCategory: &sub, OrderBy: ports.OrderByContributorName})
}

// ListByTitle matches the title exactly, ignoring case and surrounding
// whitespace. No match is a not-found.
func (s *ResourcesService) ListByTitle(ctx context.Context, title string) ([]*View, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperror.Validation(apperror.BusinessCodeInvalidFormat, "title is required")
	}
	views, err := s.list(ctx, ports.ListFilter{Title: title, OrderBy: ports.OrderByLearningID})
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, ErrResourceNotFound
	}
	return views, nil
}

// ListByContributor lists the resources owned by the contributor with the given display name.
func (s *ResourcesService) ListByContributor(ctx context.Context, name string) ([]*View, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.Validation(apperror.BusinessCodeInvalidFormat, "contributor name is required")
	}

	contributorID, err := s.contributors.ContributorIDByName(ctx, name)
	if err != nil {
		if errors.Is(err, ports.ErrContributorNotFound) {
			return nil, ErrContributorNotFound
		}
		s.logger.Error(ctx, "failed to find contributor", "error", err, "name", name)
		return nil, apperror.Internal("failed to list resources", err)
	}
	return s.list(ctx, ports.ListFilter{ContributorID: &contributorID, OrderBy: ports.OrderByLearningID})
}

// Search lists resources whose description contains keyword, ignoring case.
func (s *ResourcesService) Search(ctx context.Context, keyword string) ([]*View, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, ErrBlankKeyword
	}
	return s.list(ctx, ports.ListFilter{Keyword: keyword, OrderBy: ports.OrderByLearningID})
}

// Update merges the present fields into the stored resource and replaces the row.
// The merge runs against the row as locked inside the transaction, so
// concurrent partial updates of different fields both survive. An empty
// patch writes nothing and returns the current view.
func (s *ResourcesService) Update(ctx context.Context, actor authz.Actor, learningID int64, params UpdateParams) (*View, error) {
	if params.LearningID != nil && *params.LearningID != learningID {
		return nil, ErrLearningIDMismatch
	}

	resource, err := s.repo.FindByLearningID(ctx, learningID)
	if err != nil {
		return nil, s.mapLookupError(ctx, err, "learning_id", learningID)
	}

	if err := s.authorize(ctx, actor, "update", resource.ID); err != nil {
		return nil, err
	}

	patch, err := s.toPatch(params)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return s.single(ctx, resource)
	}

	var merged *domain.Resource
	err = postgres.RunInTx(ctx, s.txManager, func(tx postgres.Transaction) error {
		repo := s.repo.WithTx(tx.Tx())
		current, err := repo.FindByLearningIDForUpdate(ctx, learningID)
		if err != nil {
			return err
		}
		if err := current.Apply(patch); err != nil {
			return validationError(err)
		}
		if err := repo.Update(ctx, current); err != nil {
			return err
		}
		merged = current
		return nil
	})
	if err != nil {
		if _, ok := apperror.As(err); ok {
			return nil, err
		}
		if errors.Is(err, ports.ErrResourceNotFound) {
			return nil, ErrResourceNotFound
		}
		s.logger.Error(ctx, "failed to update resource",
			"error", err,
			"actor", actor.Username,
			"learning_id", learningID,
		)
		return nil, apperror.Internal("failed to update resource", err)
	}
	resource = merged

	s.eventBus.Publish(ctx, eventbus.Event{
		Topic: events.ResourceUpdatedTopic,
		Payload: events.ResourceUpdatedEvent{
			ResourceID: resource.ID,
			LearningID: resource.LearningID,
			Actor:      actor.Username,
			OccurredAt: resource.ModifiedAt,
		},
	})

	return s.single(ctx, resource)
}

// Delete removes a resource and decrements its owner's counter in the same
// transaction. A counter that would go negative aborts the delete.
func (s *ResourcesService) Delete(ctx context.Context, actor authz.Actor, learningID int64) error {
	resource, err := s.repo.FindByLearningID(ctx, learningID)
	if err != nil {
		return s.mapLookupError(ctx, err, "learning_id", learningID)
	}

	if err := s.authorize(ctx, actor, "delete", resource.ID); err != nil {
		return err
	}

	var owner uuid.UUID
	err = postgres.RunInTx(ctx, s.txManager, func(tx postgres.Transaction) error {
		var err error
		owner, err = s.repo.WithTx(tx.Tx()).Delete(ctx, resource.ID)
		if err != nil {
			return err
		}
		return s.counter.WithTx(tx.Tx()).Decrement(ctx, owner)
	})
	if err != nil {
		switch {
		case errors.Is(err, ports.ErrResourceNotFound):
			return ErrResourceNotFound
		case errors.Is(err, ports.ErrCounterUnderflow):
			s.logger.Error(ctx, "contribution counter out of step with owned resources",
				"actor", actor.Username,
				"learning_id", learningID,
				"contributor_id", resource.ContributorID,
			)
			return ErrCounterUnderflow
		}
		s.logger.Error(ctx, "failed to delete resource",
			"error", err,
			"actor", actor.Username,
			"learning_id", learningID,
		)
		return apperror.Internal("failed to delete resource", err)
	}

	s.eventBus.Publish(ctx, eventbus.Event{
		Topic: events.ResourceDeletedTopic,
		Payload: events.ResourceDeletedEvent{
			LearningID:    learningID,
			ContributorID: owner,
			Actor:         actor.Username,
			OccurredAt:    time.Now(),
		},
	})

	return nil
}

func (s *ResourcesService) toPatch(params UpdateParams) (domain.Patch, error) {
	patch := domain.Patch{
		Link:  params.Link,
		Title: params.Title,
	}
	if params.FormatCategory != nil {
		format, err := domain.ParseFormatCategory(*params.FormatCategory)
		if err != nil {
			return domain.Patch{}, validationError(err)
		}
		patch.FormatCategory = &format
	}
	if params.SubCategory != nil {
		sub, err := domain.ParseSubCategory(*params.SubCategory)
		if err != nil {
			return domain.Patch{}, validationError(err)
		}
		patch.SubCategory = &sub
	}
	if params.Description != nil {
		sanitized := s.sanitizer.Sanitize(*params.Description)
		patch.Description = &sanitized
	}
	return patch, nil
}

func (s *ResourcesService) can(ctx context.Context, actor authz.Actor, action string, id *uuid.UUID) (bool, error) {
	allowed, err := s.authorizer.Can(ctx, actor, permission.EntityResources, action, id)
	if err != nil {
		if errors.Is(err, ownership.ErrNotFound) {
			return false, ErrResourceNotFound
		}
		s.logger.Error(ctx, "failed to check authorization",
			"error", err,
			"actor", actor.Username,
			"action", action,
		)
		return false, apperror.Internal("authorization check failed", err)
	}
	return allowed, nil
}

func (s *ResourcesService) require(ctx context.Context, actor authz.Actor, action, message string) error {
	allowed, err := s.can(ctx, actor, action, nil)
	if err != nil {
		return err
	}
	if !allowed {
		return apperror.Forbidden(message)
	}
	return nil
}

func (s *ResourcesService) authorize(ctx context.Context, actor authz.Actor, action string, id uuid.UUID) error {
	allowed, err := s.can(ctx, actor, action, &id)
	if err != nil {
		return err
	}
	if !allowed {
		return apperror.Forbidden("not authorized to " + action + " this resource")
	}
	return nil
}

func (s *ResourcesService) single(ctx context.Context, resource *domain.Resource) (*View, error) {
	count, err := s.likes.CountByResource(ctx, resource.ID)
	if err != nil {
		s.logger.Error(ctx, "failed to count likes", "error", err, "resource_id", resource.ID)
		return nil, apperror.Internal("failed to load resource", err)
	}
	return &View{Resource: resource, Likes: count}, nil
}

func (s *ResourcesService) list(ctx context.Context, filter ports.ListFilter) ([]*View, error) {
	resources, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error(ctx, "failed to list resources", "error", err, "order_by", filter.OrderBy)
		return nil, apperror.Internal("failed to list resources", err)
	}
	if len(resources) == 0 {
		return []*View{}, nil
	}

	ids := make([]uuid.UUID, len(resources))
	for i, r := range resources {
		ids[i] = r.ID
	}
	counts, err := s.likes.CountByResources(ctx, ids)
	if err != nil {
		s.logger.Error(ctx, "failed to count likes", "error", err, "resources", len(ids))
		return nil, apperror.Internal("failed to list resources", err)
	}

	views := make([]*View, len(resources))
	for i, r := range resources {
		views[i] = &View{Resource: r, Likes: counts[r.ID]}
	}
	return views, nil
}

func (s *ResourcesService) mapLookupError(ctx context.Context, err error, key string, value any) error {
	if errors.Is(err, ports.ErrResourceNotFound) {
		return ErrResourceNotFound
	}
	s.logger.Error(ctx, "failed to find resource", "error", err, key, value)
	return apperror.Internal("failed to find resource", err)
}

func validationError(err error) error {
	if errors.Is(err, domain.ErrInvalidFormatCategory) || errors.Is(err, domain.ErrInvalidSubCategory) {
		return apperror.Validation(apperror.BusinessCodeInvalidCategory, err.Error())
	}
	return apperror.Validation(apperror.BusinessCodeInvalidFormat, err.Error())
}
