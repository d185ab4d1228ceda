package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
)

// UnitOfWork runs a group of statements as one transaction. Repositories
// built from the tx argument take part in it; anything built from the
// pool does not.
type UnitOfWork interface {
	// WithinTx commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
	// WithinReadTx gives fn one consistent snapshot for several reads.
	// It always rolls back.
	WithinReadTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// SQLUnitOfWork is the UnitOfWork for both supported drivers.
type SQLUnitOfWork struct {
	db       *sql.DB
	readOpts *sql.TxOptions
}

// NewUnitOfWork picks snapshot options from the pool's driver. Postgres
// needs REPEATABLE READ for a multi-statement snapshot. SQLite
// transactions are serializable already, so the defaults do there.
func NewUnitOfWork(db *sql.DB) *SQLUnitOfWork {
	u := &SQLUnitOfWork{db: db}
	if _, ok := db.Driver().(*stdlib.Driver); ok {
		u.readOpts = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	}
	return u
}

func (u *SQLUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	return u.run(ctx, nil, true, fn)
}

func (u *SQLUnitOfWork) WithinReadTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	return u.run(ctx, u.readOpts, false, fn)
}

func (u *SQLUnitOfWork) run(ctx context.Context, opts *sql.TxOptions, commit bool, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := u.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	done := false
	defer func() {
		if done {
			return
		}
		//fn panicked, release the connection before the panic moves on
		_ = tx.Rollback()
	}()

	fnErr := fn(ctx, tx)
	done = true
	if fnErr != nil || !commit {
		if rbErr := tx.Rollback(); rbErr != nil && fnErr != nil {
			return fmt.Errorf("%w (rollback: %v)", fnErr, rbErr)
		}
		return fnErr
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
