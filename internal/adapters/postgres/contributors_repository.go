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

	"github.com/philly/learnhub/backend/internal/contributors/domain"
	"github.com/philly/learnhub/backend/internal/contributors/ports"
	"github.com/philly/learnhub/backend/internal/platform/postgres"
)

const (
	contributorsGithubIndex     = "contributors_github_profile_lower_idx"
	contributorsScreenNameIndex = "contributors_screen_name_lower_idx"
	contributorsCounterCheck    = "contributors_contributions_check"
	resourcesContributorFK      = "resources_contributor_id_fkey"

	// displayNameExpr is the name a contributor is listed and sorted under.
	displayNameExpr = "COALESCE(c.github_profile, c.screen_name)"
)

var contributorColumns = []string{
	"c.id", "c.github_profile", "c.screen_name", "c.contributions",
	"c.user_username", "c.created_at", "c.updated_at",
}

// ContributorRepository implements ports.ContributorRepository using PostgreSQL
type ContributorRepository struct {
	postgres.BaseRepository
}

// NewContributorRepository creates a new PostgreSQL contributors repository
func NewContributorRepository(db *pgxpool.Pool) *ContributorRepository {
	return &ContributorRepository{
		BaseRepository: postgres.NewBaseRepository(db),
	}
}

// WithTx creates a new repository instance that uses the provided transaction
func (r *ContributorRepository) WithTx(tx pgx.Tx) ports.ContributorRepository {
	return &ContributorRepository{
		BaseRepository: r.BaseRepository.WithTx(tx),
	}
}

// Create inserts a new contributor. Names are checked across both columns
// before the insert; the per-column unique indexes close the race.
func (r *ContributorRepository) Create(ctx context.Context, c *domain.Contributor) error {
	if err := r.ensureNamesFree(ctx, c); err != nil {
		return fmt.Errorf("ContributorRepository.Create: %w", err)
	}

	query, args, err := r.SB.
		Insert("contributors").
		Columns(
			"id", "github_profile", "screen_name", "contributions",
			"user_username", "created_at", "updated_at",
		).
		Values(
			pgtype.UUID{Bytes: c.ID, Valid: true},
			c.GithubProfile,
			c.ScreenName,
			c.Contributions,
			c.Username,
			pgtype.Timestamptz{Time: c.CreatedAt, Valid: true},
			pgtype.Timestamptz{Time: c.UpdatedAt, Valid: true},
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("ContributorRepository.Create: build query: %w", err)
	}

	if _, err := r.DB.Exec(ctx, query, args...); err != nil {
		if isDisplayNameViolation(err) {
			return ports.ErrDisplayNameTaken
		}
		return fmt.Errorf("ContributorRepository.Create: %w", err)
	}
	return nil
}

// FindByID retrieves a contributor by its surrogate id
func (r *ContributorRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Contributor, error) {
	return r.findOne(ctx, "FindByID", sq.Eq{"c.id": pgtype.UUID{Bytes: id, Valid: true}})
}

// FindByDisplayName matches either name column, case-insensitively
func (r *ContributorRepository) FindByDisplayName(ctx context.Context, name string) (*domain.Contributor, error) {
	lowered := strings.ToLower(strings.TrimSpace(name))
	return r.findOne(ctx, "FindByDisplayName", sq.Or{
		sq.Expr("LOWER(c.github_profile) = ?", lowered),
		sq.Expr("LOWER(c.screen_name) = ?", lowered),
	})
}

// FindByUsername finds the profile linked to an identity
func (r *ContributorRepository) FindByUsername(ctx context.Context, username string) (*domain.Contributor, error) {
	lowered := strings.ToLower(strings.TrimSpace(username))
	return r.findOne(ctx, "FindByUsername", sq.Expr("LOWER(c.user_username) = ?", lowered))
}

// ListAll returns every contributor by display name, descending
func (r *ContributorRepository) ListAll(ctx context.Context) ([]*domain.Contributor, error) {
	return r.list(ctx, "ListAll", displayNameExpr+" DESC", "c.id ASC")
}

// ListByContributions returns every contributor, most contributions first
func (r *ContributorRepository) ListByContributions(ctx context.Context) ([]*domain.Contributor, error) {
	return r.list(ctx, "ListByContributions", "c.contributions DESC", displayNameExpr+" ASC")
}

// Update replaces both display names
func (r *ContributorRepository) Update(ctx context.Context, c *domain.Contributor) error {
	if err := r.ensureNamesFree(ctx, c); err != nil {
		return fmt.Errorf("ContributorRepository.Update: %w", err)
	}

	query, args, err := r.SB.
		Update("contributors").
		Set("github_profile", c.GithubProfile).
		Set("screen_name", c.ScreenName).
		Set("updated_at", pgtype.Timestamptz{Time: c.UpdatedAt, Valid: true}).
		Where(sq.Eq{"id": pgtype.UUID{Bytes: c.ID, Valid: true}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ContributorRepository.Update: build query: %w", err)
	}

	result, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		if isDisplayNameViolation(err) {
			return ports.ErrDisplayNameTaken
		}
		return fmt.Errorf("ContributorRepository.Update: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ports.ErrContributorNotFound
	}
	return nil
}

// Delete removes a contributor. Owned resources block the delete through
// the RESTRICT foreign key.
func (r *ContributorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := r.SB.
		Delete("contributors").
		Where(sq.Eq{"id": pgtype.UUID{Bytes: id, Valid: true}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ContributorRepository.Delete: build query: %w", err)
	}

	result, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		if postgres.IsForeignKeyViolation(err, resourcesContributorFK) {
			return ports.ErrContributorHasResources
		}
		return fmt.Errorf("ContributorRepository.Delete: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ports.ErrContributorNotFound
	}
	return nil
}

// IncrementContributions adds one to the counter. The UPDATE takes the row
// lock, so concurrent increments serialize.
func (r *ContributorRepository) IncrementContributions(ctx context.Context, id uuid.UUID) error {
	query, args, err := r.SB.
		Update("contributors").
		Set("contributions", sq.Expr("contributions + 1")).
		Where(sq.Eq{"id": pgtype.UUID{Bytes: id, Valid: true}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ContributorRepository.IncrementContributions: build query: %w", err)
	}

	result, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ContributorRepository.IncrementContributions: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ports.ErrContributorNotFound
	}
	return nil
}

// DecrementContributions subtracts one unless the counter is already zero.
func (r *ContributorRepository) DecrementContributions(ctx context.Context, id uuid.UUID) error {
	query, args, err := r.SB.
		Update("contributors").
		Set("contributions", sq.Expr("contributions - 1")).
		Where(sq.Eq{"id": pgtype.UUID{Bytes: id, Valid: true}}).
		Where(sq.Gt{"contributions": 0}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ContributorRepository.DecrementContributions: build query: %w", err)
	}

	result, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		if postgres.IsCheckViolation(err, contributorsCounterCheck) {
			return ports.ErrCounterUnderflow
		}
		return fmt.Errorf("ContributorRepository.DecrementContributions: %w", err)
	}
	if result.RowsAffected() > 0 {
		return nil
	}

	// Nothing matched: either the row is gone or the counter is at zero.
	exists, err := r.exists(ctx, id)
	if err != nil {
		return fmt.Errorf("ContributorRepository.DecrementContributions: %w", err)
	}
	if !exists {
		return ports.ErrContributorNotFound
	}
	return ports.ErrCounterUnderflow
}

func (r *ContributorRepository) findOne(ctx context.Context, op string, where sq.Sqlizer) (*domain.Contributor, error) {
	query, args, err := r.SB.
		Select(contributorColumns...).
		From("contributors c").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ContributorRepository.%s: build query: %w", op, err)
	}

	c, err := scanContributor(r.DB.QueryRow(ctx, query, args...))
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, ports.ErrContributorNotFound
		}
		return nil, fmt.Errorf("ContributorRepository.%s: %w", op, err)
	}
	return c, nil
}

func (r *ContributorRepository) list(ctx context.Context, op string, orderBy ...string) ([]*domain.Contributor, error) {
	query, args, err := r.SB.
		Select(contributorColumns...).
		From("contributors c").
		OrderBy(orderBy...).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ContributorRepository.%s: build query: %w", op, err)
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ContributorRepository.%s: %w", op, err)
	}
	defer rows.Close()

	contributors := make([]*domain.Contributor, 0)
	for rows.Next() {
		c, err := scanContributor(rows)
		if err != nil {
			return nil, fmt.Errorf("ContributorRepository.%s: %w", op, err)
		}
		contributors = append(contributors, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ContributorRepository.%s: iterate rows: %w", op, err)
	}
	return contributors, nil
}

// ensureNamesFree rejects a name that another contributor already uses in
// either column.
func (r *ContributorRepository) ensureNamesFree(ctx context.Context, c *domain.Contributor) error {
	var names []string
	for _, name := range []*string{c.GithubProfile, c.ScreenName} {
		if name != nil {
			names = append(names, strings.ToLower(*name))
		}
	}
	if len(names) == 0 {
		return nil
	}

	taken, err := r.Count(ctx, r.SB.
		Select("COUNT(*)").
		From("contributors").
		Where(sq.NotEq{"id": pgtype.UUID{Bytes: c.ID, Valid: true}}).
		Where(sq.Or{
			sq.Eq{"LOWER(github_profile)": names},
			sq.Eq{"LOWER(screen_name)": names},
		}))
	if err != nil {
		return fmt.Errorf("check display names: %w", err)
	}
	if taken > 0 {
		return ports.ErrDisplayNameTaken
	}
	return nil
}

func (r *ContributorRepository) exists(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := r.Count(ctx, r.SB.
		Select("COUNT(*)").
		From("contributors").
		Where(sq.Eq{"id": pgtype.UUID{Bytes: id, Valid: true}}))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func isDisplayNameViolation(err error) bool {
	return postgres.IsUniqueViolation(err, contributorsGithubIndex) ||
		postgres.IsUniqueViolation(err, contributorsScreenNameIndex)
}

func scanContributor(row pgx.Row) (*domain.Contributor, error) {
	var c domain.Contributor
	var id pgtype.UUID
	var github, screen, username pgtype.Text
	var contributions int32

	err := row.Scan(
		&id,
		&github,
		&screen,
		&contributions,
		&username,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.ID = uuid.UUID(id.Bytes)
	c.GithubProfile = textPtr(github)
	c.ScreenName = textPtr(screen)
	c.Username = textPtr(username)
	c.Contributions = int(contributions)
	return &c, nil
}

func textPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}
