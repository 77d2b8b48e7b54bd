package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TransactionManager provides transaction management capabilities
// This interface is defined here alongside its implementation for cohesion
type TransactionManager interface {
	BeginTx(ctx context.Context) (Transaction, error)
}

// Transaction represents a database transaction
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	Tx() pgx.Tx // Returns the underlying pgx.Tx for use with repository.WithTx
}

// PoolTransactionManager implements TransactionManager using a pgxpool.Pool
type PoolTransactionManager struct {
	pool *pgxpool.Pool
}

// NewTransactionManager creates a new transaction manager
func NewTransactionManager(pool *pgxpool.Pool) TransactionManager {
	return &PoolTransactionManager{pool: pool}
}

// BeginTx starts a new read-committed transaction.
// Counter updates rely on the row lock taken by UPDATE, so no stronger
// isolation level is needed.
func (m *PoolTransactionManager) BeginTx(ctx context.Context) (Transaction, error) {
	tx, err := m.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, err
	}
	return &PgxTransaction{tx: tx}, nil
}

// PgxTransaction wraps a pgx.Tx to implement the Transaction interface
type PgxTransaction struct {
	tx pgx.Tx
}

func (t *PgxTransaction) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback is safe to call after Commit; pgx returns ErrTxClosed which is ignored.
func (t *PgxTransaction) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func (t *PgxTransaction) Tx() pgx.Tx {
	return t.tx
}

// RunInTx begins a transaction, runs fn and commits. Any error from fn, or
// from the commit itself, rolls the whole unit back.
func RunInTx(ctx context.Context, tm TransactionManager, fn func(tx Transaction) error) error {
	tx, err := tm.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
