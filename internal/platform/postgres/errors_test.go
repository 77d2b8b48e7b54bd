package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassification(t *testing.T) {
	unique := &pgconn.PgError{Code: CodeUniqueViolation, ConstraintName: "user_likes_user_resource_key"}
	wrapped := fmt.Errorf("LikeRepository.Create: %w", unique)

	assert.True(t, IsUniqueViolation(wrapped, ""))
	assert.True(t, IsUniqueViolation(wrapped, "user_likes_user_resource_key"))
	assert.False(t, IsUniqueViolation(wrapped, "resources_learning_id_key"))
	assert.False(t, IsForeignKeyViolation(wrapped, ""))
	assert.False(t, IsCheckViolation(wrapped, ""))

	fk := &pgconn.PgError{Code: CodeForeignKeyViolation}
	assert.True(t, IsForeignKeyViolation(fk, ""))

	check := &pgconn.PgError{Code: CodeCheckViolation, ConstraintName: "contributors_contributions_check"}
	assert.True(t, IsCheckViolation(check, "contributors_contributions_check"))

	assert.False(t, IsUniqueViolation(errors.New("boom"), ""))
	assert.True(t, IsNoRows(fmt.Errorf("scan: %w", pgx.ErrNoRows)))
	assert.False(t, IsNoRows(nil))
}
