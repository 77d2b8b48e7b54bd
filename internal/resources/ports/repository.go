package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/philly/learnhub/backend/internal/resources/domain"
)

// Repository errors - these are the canonical errors that repository
// implementations should return.
var (
	ErrResourceNotFound = errors.New("resource not found")

	// ErrDuplicateLearningID is returned when an explicitly supplied learning id is already taken.
	ErrDuplicateLearningID = errors.New("learning id already in use")

	// ErrOwnerNotFound is returned when the owning contributor does not exist.
	ErrOwnerNotFound = errors.New("owning contributor not found")
)

// OrderField represents the ordering of a listing
type OrderField string

const (
	OrderByFormatCategory  OrderField = "format_category"
	OrderByCreatedAt       OrderField = "created_at"
	OrderByModifiedAt      OrderField = "modified_at"
	OrderBySubCategory     OrderField = "sub_category"
	OrderByContributorName OrderField = "contributor_name"
	OrderByLearningID      OrderField = "learning_id"
)

// ListFilter narrows and orders a resource listing. Zero values mean "no filter".
type ListFilter struct {
	FormatCategory *domain.FormatCategory
	SubCategory    *domain.SubCategory
	ContributorID  *uuid.UUID

	// Title matches exactly, case-insensitively.
	Title string

	// Keyword is a case-insensitive substring of the description.
	Keyword string

	// Limit of 0 means unbounded
	Limit  int
	Offset int

	OrderBy   OrderField
	OrderDesc bool
}

// ResourceRepository defines the interface for resource persistence
type ResourceRepository interface {
	// Create inserts the resource. A zero LearningID is drawn from the
	// global sequence inside the INSERT; the assigned value and timestamps
	// are written back into resource.
	Create(ctx context.Context, resource *domain.Resource) error

	FindByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error)

	FindByLearningID(ctx context.Context, learningID int64) (*domain.Resource, error)

	// FindByLearningIDForUpdate also locks the row until the surrounding
	// transaction ends. It only makes sense on a repository bound with WithTx.
	FindByLearningIDForUpdate(ctx context.Context, learningID int64) (*domain.Resource, error)

	List(ctx context.Context, filter ListFilter) ([]*domain.Resource, error)

	// Count ignores the window and ordering of filter.
	Count(ctx context.Context, filter ListFilter) (int64, error)

	// Update replaces every mutable column of the row.
	Update(ctx context.Context, resource *domain.Resource) error

	// Delete removes the row and returns the contributor that owned it.
	Delete(ctx context.Context, id uuid.UUID) (uuid.UUID, error)

	// GetOwner retrieves just the owning contributor (for ownership checks)
	GetOwner(ctx context.Context, id uuid.UUID) (uuid.UUID, error)

	WithTx(tx pgx.Tx) ResourceRepository
}
