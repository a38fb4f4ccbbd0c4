package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/lookahead/internal/db"
)

// FailingWriteUoW is a UnitOfWork that fails the Nth write to one table, so
// rollback tests can break an import or save at a precise step.
//
// Writes are INSERT, UPDATE and DELETE statements executed through
// ExecContext; N counts from 1. An empty Table counts writes to every table.
// Reads pass through.
type FailingWriteUoW struct {
	DB    *sql.DB
	Table string
	N     int32
	Err   error
}

func (u *FailingWriteUoW) WithinTx(ctx context.Context, fn db.TxFunc) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failingWrites{DBTX: tx, table: u.Table, n: u.N, err: u.Err}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failingWrites struct {
	db.DBTX
	table string
	seen  atomic.Int32
	n     int32
	err   error
}

func (f *failingWrites) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if target, ok := writeTarget(query); ok && (f.table == "" || target == f.table) {
		if f.seen.Add(1) == f.n {
			return nil, f.err
		}
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

// writeTarget returns the table an INSERT, UPDATE or DELETE statement writes.
func writeTarget(query string) (string, bool) {
	fields := strings.Fields(query)
	if len(fields) < 2 {
		return "", false
	}
	switch strings.ToUpper(fields[0]) {
	case "UPDATE":
		return fields[1], true
	case "INSERT", "DELETE":
		for i := 1; i < len(fields)-1; i++ {
			if kw := strings.ToUpper(fields[i]); kw == "INTO" || kw == "FROM" {
				table, _, _ := strings.Cut(fields[i+1], "(")
				return table, true
			}
		}
	}
	return "", false
}
