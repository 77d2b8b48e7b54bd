package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const codeUndefinedTable = "42P01"

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, arguments ...any) pgx.Row
}

// SchemaCheck compares the version recorded by golang-migrate with the
// newest migration embedded in the binary. It reads through the pool, so a
// readiness check does not open a second connection per call.
type SchemaCheck struct {
	db     rowQuerier
	latest uint
}

func NewSchemaCheck(pool *pgxpool.Pool) (*SchemaCheck, error) {
	latest, err := LatestVersion()
	if err != nil {
		return nil, err
	}
	return &SchemaCheck{db: pool, latest: latest}, nil
}

// SchemaUpToDate is false for a dirty, behind or never-migrated schema.
func (p *SchemaCheck) SchemaUpToDate(ctx context.Context) (bool, error) {
	var (
		version int64
		dirty   bool
	)
	err := p.db.QueryRow(ctx, "SELECT version, dirty FROM schema_migrations LIMIT 1").Scan(&version, &dirty)
	if err != nil {
		if IsNoRows(err) || hasCode(err, codeUndefinedTable, "") {
			return false, nil
		}
		return false, fmt.Errorf("SchemaCheck.SchemaUpToDate: %w", err)
	}
	return !dirty && uint(version) == p.latest, nil
}
