package postgres

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	authz "github.com/philly/learnhub/backend/internal/authz/domain"
	"github.com/philly/learnhub/backend/internal/identity/domain"
	"github.com/philly/learnhub/backend/internal/identity/ports"
	"github.com/philly/learnhub/backend/internal/platform/postgres"
)

// IdentityRepository implements ports.IdentityRepository using PostgreSQL
type IdentityRepository struct {
	postgres.BaseRepository
}

// NewIdentityRepository creates a new PostgreSQL identity repository
func NewIdentityRepository(db *pgxpool.Pool) *IdentityRepository {
	return &IdentityRepository{
		BaseRepository: postgres.NewBaseRepository(db),
	}
}

// WithTx creates a new repository instance that uses the provided transaction
func (r *IdentityRepository) WithTx(tx pgx.Tx) ports.IdentityRepository {
	return &IdentityRepository{
		BaseRepository: r.BaseRepository.WithTx(tx),
	}
}

// Create inserts a new identity. Both the primary key and the lower-case
// index reject a taken username.
func (r *IdentityRepository) Create(ctx context.Context, identity *domain.Identity) error {
	query, args, err := r.SB.
		Insert("users").
		Columns("username", "password_hash", "roles", "created_at").
		Values(
			identity.Username,
			identity.PasswordHash,
			identity.Roles.Strings(),
			pgtype.Timestamptz{Time: identity.CreatedAt, Valid: true},
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("IdentityRepository.Create: build query: %w", err)
	}

	if _, err := r.DB.Exec(ctx, query, args...); err != nil {
		if postgres.IsUniqueViolation(err, "") {
			return ports.ErrUsernameTaken
		}
		return fmt.Errorf("IdentityRepository.Create: %w", err)
	}
	return nil
}

// FindByUsername retrieves an identity, matching the username case-insensitively
func (r *IdentityRepository) FindByUsername(ctx context.Context, username string) (*domain.Identity, error) {
	query, args, err := r.SB.
		Select("username", "password_hash", "roles", "created_at").
		From("users").
		Where(sq.Expr("LOWER(username) = ?", strings.ToLower(strings.TrimSpace(username)))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("IdentityRepository.FindByUsername: build query: %w", err)
	}

	var identity domain.Identity
	var roles []string
	err = r.DB.QueryRow(ctx, query, args...).Scan(
		&identity.Username,
		&identity.PasswordHash,
		&roles,
		&identity.CreatedAt,
	)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, ports.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("IdentityRepository.FindByUsername: %w", err)
	}

	identity.Roles = authz.ParseRoleSet(strings.Join(roles, " "))
	return &identity, nil
}

// UpdateRoles replaces the stored role labels
func (r *IdentityRepository) UpdateRoles(ctx context.Context, username string, roles authz.RoleSet) error {
	query, args, err := r.SB.
		Update("users").
		Set("roles", roles.Strings()).
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return fmt.Errorf("IdentityRepository.UpdateRoles: build query: %w", err)
	}

	result, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("IdentityRepository.UpdateRoles: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ports.ErrIdentityNotFound
	}
	return nil
}
