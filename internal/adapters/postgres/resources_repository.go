package postgres

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/philly/learnhub/backend/internal/platform/postgres"
	"github.com/philly/learnhub/backend/internal/resources/domain"
	"github.com/philly/learnhub/backend/internal/resources/ports"
)

const (
	resourcesLearningIDKey = "resources_learning_id_key"
)

var resourceColumns = []string{
	"r.id", "r.learning_id", "r.link", "r.title", "r.format_category",
	"r.sub_category", "r.description", "r.contributor_id",
	"r.created_at", "r.modified_at", displayNameExpr,
}

// orderColumns maps listing orders onto SQL expressions
var orderColumns = map[ports.OrderField]string{
	ports.OrderByFormatCategory:  "r.format_category",
	ports.OrderByCreatedAt:       "r.created_at",
	ports.OrderByModifiedAt:      "r.modified_at",
	ports.OrderBySubCategory:     "r.sub_category",
	ports.OrderByContributorName: displayNameExpr,
	ports.OrderByLearningID:      "r.learning_id",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ResourceRepository implements ports.ResourceRepository using PostgreSQL
type ResourceRepository struct {
	postgres.BaseRepository
}

// NewResourceRepository creates a new PostgreSQL resources repository
func NewResourceRepository(db *pgxpool.Pool) *ResourceRepository {
	return &ResourceRepository{
		BaseRepository: postgres.NewBaseRepository(db),
	}
}

// WithTx creates a new repository instance that uses the provided transaction
func (r *ResourceRepository) WithTx(tx pgx.Tx) ports.ResourceRepository {
	return &ResourceRepository{
		BaseRepository: r.BaseRepository.WithTx(tx),
	}
}

// Create inserts the resource. When LearningID is zero the column is left
// to its sequence default, so the value is drawn atomically by the store.
// A caller-chosen LearningID moves the sequence past it.
func (r *ResourceRepository) Create(ctx context.Context, resource *domain.Resource) error {
	columns := []string{
		"id", "link", "title", "format_category", "sub_category",
		"description", "contributor_id", "created_at", "modified_at",
	}
	values := []any{
		pgtype.UUID{Bytes: resource.ID, Valid: true},
		resource.Link,
		resource.Title,
		string(resource.FormatCategory),
		string(resource.SubCategory),
		resource.Description,
		pgtype.UUID{Bytes: resource.ContributorID, Valid: true},
		pgtype.Timestamptz{Time: resource.CreatedAt, Valid: true},
		pgtype.Timestamptz{Time: resource.ModifiedAt, Valid: true},
	}
	pinned := resource.LearningID != 0
	if pinned {
		columns = append(columns, "learning_id")
		values = append(values, resource.LearningID)
	}

	query, args, err := r.SB.
		Insert("resources").
		Columns(columns...).
		Values(values...).
		Suffix("RETURNING learning_id, created_at, modified_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("ResourceRepository.Create: build query: %w", err)
	}

	err = r.DB.QueryRow(ctx, query, args...).Scan(&resource.LearningID, &resource.CreatedAt, &resource.ModifiedAt)
	if err != nil {
		switch {
		case postgres.IsUniqueViolation(err, resourcesLearningIDKey):
			return ports.ErrDuplicateLearningID
		case postgres.IsForeignKeyViolation(err, resourcesContributorFK):
			return ports.ErrOwnerNotFound
		}
		return fmt.Errorf("ResourceRepository.Create: %w", err)
	}

	if pinned {
		// keep nextval ahead of ids chosen by the caller
		_, err = r.DB.Exec(ctx,
			"SELECT setval('resource_learning_id_seq', GREATEST((SELECT last_value FROM resource_learning_id_seq), $1))",
			resource.LearningID,
		)
		if err != nil {
			return fmt.Errorf("ResourceRepository.Create: advance sequence: %w", err)
		}
	}
	return nil
}

// FindByID retrieves a resource by its surrogate id
func (r *ResourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error) {
	return r.findOne(ctx, "FindByID", sq.Eq{"r.id": pgtype.UUID{Bytes: id, Valid: true}})
}

// FindByLearningID retrieves a resource by its public learning id
func (r *ResourceRepository) FindByLearningID(ctx context.Context, learningID int64) (*domain.Resource, error) {
	return r.findOne(ctx, "FindByLearningID", sq.Eq{"r.learning_id": learningID})
}

// FindByLearningIDForUpdate locks the resource row, not the joined contributor.
func (r *ResourceRepository) FindByLearningIDForUpdate(ctx context.Context, learningID int64) (*domain.Resource, error) {
	q := r.selectResources().
		Where(sq.Eq{"r.learning_id": learningID}).
		Suffix("FOR UPDATE OF r")
	return r.queryOne(ctx, "FindByLearningIDForUpdate", q)
}

// List returns the resources matching filter in the requested order
func (r *ResourceRepository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Resource, error) {
	q := applyFilter(r.selectResources(), filter)

	if column, ok := orderColumns[filter.OrderBy]; ok {
		direction := " ASC"
		if filter.OrderDesc {
			direction = " DESC"
		}
		q = q.OrderBy(column + direction)
	}
	if filter.OrderBy != ports.OrderByLearningID {
		q = q.OrderBy("r.learning_id ASC")
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ResourceRepository.List: build query: %w", err)
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ResourceRepository.List: %w", err)
	}
	defer rows.Close()

	resources := make([]*domain.Resource, 0)
	for rows.Next() {
		resource, err := scanResource(rows)
		if err != nil {
			return nil, fmt.Errorf("ResourceRepository.List: %w", err)
		}
		resources = append(resources, resource)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ResourceRepository.List: iterate rows: %w", err)
	}
	return resources, nil
}

// Count returns the number of resources matching filter
func (r *ResourceRepository) Count(ctx context.Context, filter ports.ListFilter) (int64, error) {
	q := applyFilter(
		r.SB.Select("COUNT(*)").
			From("resources r").
			Join("contributors c ON c.id = r.contributor_id"),
		filter,
	)
	n, err := r.BaseRepository.Count(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("ResourceRepository.Count: %w", err)
	}
	return n, nil
}

// Update replaces every mutable column of the row
func (r *ResourceRepository) Update(ctx context.Context, resource *domain.Resource) error {
	query, args, err := r.SB.
		Update("resources").
		Set("link", resource.Link).
		Set("title", resource.Title).
		Set("format_category", string(resource.FormatCategory)).
		Set("sub_category", string(resource.SubCategory)).
		Set("description", resource.Description).
		Set("modified_at", pgtype.Timestamptz{Time: resource.ModifiedAt, Valid: true}).
		Where(sq.Eq{"id": pgtype.UUID{Bytes: resource.ID, Valid: true}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ResourceRepository.Update: build query: %w", err)
	}

	result, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ResourceRepository.Update: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ports.ErrResourceNotFound
	}
	return nil
}

// Delete removes the row and returns its owner. Likes cascade.
func (r *ResourceRepository) Delete(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	query, args, err := r.SB.
		Delete("resources").
		Where(sq.Eq{"id": pgtype.UUID{Bytes: id, Valid: true}}).
		Suffix("RETURNING contributor_id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("ResourceRepository.Delete: build query: %w", err)
	}

	var owner pgtype.UUID
	if err := r.DB.QueryRow(ctx, query, args...).Scan(&owner); err != nil {
		if postgres.IsNoRows(err) {
			return uuid.Nil, ports.ErrResourceNotFound
		}
		return uuid.Nil, fmt.Errorf("ResourceRepository.Delete: %w", err)
	}
	return uuid.UUID(owner.Bytes), nil
}

// GetOwner retrieves just the owning contributor (for ownership checks)
func (r *ResourceRepository) GetOwner(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	query, args, err := r.SB.
		Select("contributor_id").
		From("resources").
		Where(sq.Eq{"id": pgtype.UUID{Bytes: id, Valid: true}}).
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("ResourceRepository.GetOwner: build query: %w", err)
	}

	var owner pgtype.UUID
	if err := r.DB.QueryRow(ctx, query, args...).Scan(&owner); err != nil {
		if postgres.IsNoRows(err) {
			return uuid.Nil, ports.ErrResourceNotFound
		}
		return uuid.Nil, fmt.Errorf("ResourceRepository.GetOwner: %w", err)
	}
	return uuid.UUID(owner.Bytes), nil
}

func (r *ResourceRepository) selectResources() sq.SelectBuilder {
	return r.SB.
		Select(resourceColumns...).
		From("resources r").
		Join("contributors c ON c.id = r.contributor_id")
}

func (r *ResourceRepository) findOne(ctx context.Context, op string, where sq.Sqlizer) (*domain.Resource, error) {
	return r.queryOne(ctx, op, r.selectResources().Where(where))
}

func (r *ResourceRepository) queryOne(ctx context.Context, op string, q sq.SelectBuilder) (*domain.Resource, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ResourceRepository.%s: build query: %w", op, err)
	}

	resource, err := scanResource(r.DB.QueryRow(ctx, query, args...))
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, ports.ErrResourceNotFound
		}
		return nil, fmt.Errorf("ResourceRepository.%s: %w", op, err)
	}
	return resource, nil
}

func applyFilter(q sq.SelectBuilder, filter ports.ListFilter) sq.SelectBuilder {
	if filter.FormatCategory != nil {
		q = q.Where(sq.Eq{"r.format_category": string(*filter.FormatCategory)})
	}
	if filter.SubCategory != nil {
		q = q.Where(sq.Eq{"r.sub_category": string(*filter.SubCategory)})
	}
	if filter.ContributorID != nil {
		q = q.Where(sq.Eq{"r.contributor_id": pgtype.UUID{Bytes: *filter.ContributorID, Valid: true}})
	}
	if title := strings.TrimSpace(filter.Title); title != "" {
		q = q.Where(sq.Expr("LOWER(r.title) = LOWER(?)", title))
	}
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		q = q.Where(sq.ILike{"r.description": "%" + likeEscaper.Replace(keyword) + "%"})
	}
	return q
}

func scanResource(row pgx.Row) (*domain.Resource, error) {
	var resource domain.Resource
	var id, contributorID pgtype.UUID
	var format, sub string
	var contributorName pgtype.Text

	err := row.Scan(
		&id,
		&resource.LearningID,
		&resource.Link,
		&resource.Title,
		&format,
		&sub,
		&resource.Description,
		&contributorID,
		&resource.CreatedAt,
		&resource.ModifiedAt,
		&contributorName,
	)
	if err != nil {
		return nil, err
	}

	resource.ID = uuid.UUID(id.Bytes)
	resource.ContributorID = uuid.UUID(contributorID.Bytes)
	resource.FormatCategory = domain.FormatCategory(format)
	resource.SubCategory = domain.SubCategory(sub)
	if contributorName.Valid {
		resource.ContributorName = contributorName.String
	}
	return &resource, nil
}
