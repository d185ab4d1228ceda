package testutil

import (
	"context"
	"database/sql"
	"strings"

	"github.com/chetan-code/missioncontrol/internal/db"
)

// FailingUoW runs real transactions on the test database, but any write
// whose SQL contains match fails with err. It lets a test break a chosen
// step of a multi-statement operation and check the rollback.
type FailingUoW struct {
	inner db.UnitOfWork
	match string
	err   error
}

func NewFailingUoW(database *sql.DB, match string, err error) *FailingUoW {
	return &FailingUoW{inner: db.NewUnitOfWork(database), match: match, err: err}
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return u.inner.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingExec{DBTX: tx, match: u.match, err: u.err})
	})
}

func (u *FailingUoW) WithinReadTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return u.inner.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingExec{DBTX: tx, match: u.match, err: u.err})
	})
}

type failingExec struct {
	db.DBTX
	match string
	err   error
}

func (f *failingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if strings.Contains(query, f.match) {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
