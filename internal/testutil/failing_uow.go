package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/officeflow/internal/db"
)

// FailingExecUoW is a UnitOfWork whose transactions reject selected writes.
// ShouldFail sees every ExecContext call; when it returns true the call
// fails with Err and the surrounding transaction rolls back. Reads are never
// intercepted. Failures counts the rejected calls.
type FailingExecUoW struct {
	DB         *sql.DB
	ShouldFail func(query string, args []any) bool
	Err        error
	Failures   atomic.Int32
}

func (u *FailingExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(ctx, &failingExec{DBTX: tx, uow: u}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// FailOnArg returns a predicate matching any write that binds value.
func FailOnArg(value any) func(string, []any) bool {
	return func(_ string, args []any) bool {
		for _, a := range args {
			if a == value {
				return true
			}
		}
		return false
	}
}

// FailOnNth returns a predicate matching only the nth write (1-based)
// across all transactions of the unit of work.
func FailOnNth(n int32) func(string, []any) bool {
	var count atomic.Int32
	return func(string, []any) bool {
		return count.Add(1) == n
	}
}

type failingExec struct {
	db.DBTX
	uow *FailingExecUoW
}

func (f *failingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.uow.ShouldFail != nil && f.uow.ShouldFail(query, args) {
		f.uow.Failures.Add(1)
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
