package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/philly/learnhub/backend/internal/likes/domain"
	"github.com/philly/learnhub/backend/internal/likes/ports"
	"github.com/philly/learnhub/backend/internal/platform/postgres"
)

const (
	userLikesUniqueKey  = "user_likes_user_resource_key"
	userLikesResourceFK = "user_likes_resource_id_fkey"
)

// LikeRepository implements ports.LikeRepository using PostgreSQL
type LikeRepository struct {
	postgres.BaseRepository
}

// NewLikeRepository creates a new PostgreSQL likes repository
func NewLikeRepository(db *pgxpool.Pool) *LikeRepository {
	return &LikeRepository{
		BaseRepository: postgres.NewBaseRepository(db),
	}
}

// WithTx creates a new repository instance that uses the provided transaction
func (r *LikeRepository) WithTx(tx pgx.Tx) ports.LikeRepository {
	return &LikeRepository{
		BaseRepository: r.BaseRepository.WithTx(tx),
	}
}

// Create inserts the like. A second like for the same pair is rejected by
// the unique constraint, never by a prior lookup.
func (r *LikeRepository) Create(ctx context.Context, like *domain.Like) error {
	query, args, err := r.SB.
		Insert("user_likes").
		Columns("id", "user_username", "resource_id", "created_at").
		Values(
			pgtype.UUID{Bytes: like.ID, Valid: true},
			like.Username,
			pgtype.UUID{Bytes: like.ResourceID, Valid: true},
			pgtype.Timestamptz{Time: like.CreatedAt, Valid: true},
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("LikeRepository.Create: build query: %w", err)
	}

	if _, err := r.DB.Exec(ctx, query, args...); err != nil {
		switch {
		case postgres.IsUniqueViolation(err, userLikesUniqueKey):
			return ports.ErrDuplicateLike
		case postgres.IsForeignKeyViolation(err, userLikesResourceFK):
			return ports.ErrResourceNotFound
		}
		return fmt.Errorf("LikeRepository.Create: %w", err)
	}
	return nil
}

// Delete removes the like of username for resourceID, if any
func (r *LikeRepository) Delete(ctx context.Context, username string, resourceID uuid.UUID) (bool, error) {
	query, args, err := r.SB.
		Delete("user_likes").
		Where(sq.Eq{
			"user_username": username,
			"resource_id":   pgtype.UUID{Bytes: resourceID, Valid: true},
		}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("LikeRepository.Delete: build query: %w", err)
	}

	result, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("LikeRepository.Delete: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// CountByResource counts the likes of one resource
func (r *LikeRepository) CountByResource(ctx context.Context, resourceID uuid.UUID) (int64, error) {
	n, err := r.Count(ctx, r.SB.
		Select("COUNT(*)").
		From("user_likes").
		Where(sq.Eq{"resource_id": pgtype.UUID{Bytes: resourceID, Valid: true}}))
	if err != nil {
		return 0, fmt.Errorf("LikeRepository.CountByResource: %w", err)
	}
	return n, nil
}

// CountByResources counts likes for many resources in one grouped query
func (r *LikeRepository) CountByResources(ctx context.Context, resourceIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(resourceIDs))
	if len(resourceIDs) == 0 {
		return counts, nil
	}

	ids := make([]pgtype.UUID, len(resourceIDs))
	for i, id := range resourceIDs {
		ids[i] = pgtype.UUID{Bytes: id, Valid: true}
	}

	query, args, err := r.SB.
		Select("resource_id", "COUNT(*)").
		From("user_likes").
		Where("resource_id = ANY(?)", ids).
		GroupBy("resource_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("LikeRepository.CountByResources: build query: %w", err)
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("LikeRepository.CountByResources: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id pgtype.UUID
		var n int64
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("LikeRepository.CountByResources: scan: %w", err)
		}
		counts[uuid.UUID(id.Bytes)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("LikeRepository.CountByResources: iterate rows: %w", err)
	}
	return counts, nil
}

// Exists reports whether username has liked resourceID
func (r *LikeRepository) Exists(ctx context.Context, username string, resourceID uuid.UUID) (bool, error) {
	n, err := r.Count(ctx, r.SB.
		Select("COUNT(*)").
		From("user_likes").
		Where(sq.Eq{
			"user_username": username,
			"resource_id":   pgtype.UUID{Bytes: resourceID, Valid: true},
		}))
	if err != nil {
		return false, fmt.Errorf("LikeRepository.Exists: %w", err)
	}
	return n > 0, nil
}
