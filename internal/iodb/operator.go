// Package iodb implements warehouse storage for PostgreSQL (pgxpool) and
// SQLite (modernc.org/sqlite). This is an impure I/O package that
// implements the db.Operator contract defined in pkg/db.
package iodb

import (
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/trialwh/pkg/db"
)

// defaultBatchSize is used when configuration gives no batch size.
const defaultBatchSize = 1_000

// New creates a warehouse operator for the driver (without connecting).
func New(driver string) (db.Operator, error) {
	switch strings.ToLower(driver) {
	case db.Postgres, "postgresql", "pgx":
		return NewPgxOperator(), nil
	case db.SQLite, "sqlite3":
		return NewSQLiteOperator(), nil
	default:
		return nil, UnknownDriverError(driver)
	}
}

// chunks splits rows into slices of at most size rows.
func chunks(rows [][]any, size int) [][][]any {
	if size <= 0 {
		size = defaultBatchSize
	}
	var res [][][]any
	for i := 0; i < len(rows); i += size {
		end := min(i+size, len(rows))
		res = append(res, rows[i:end])
	}
	return res
}

// newBar starts a progress bar for large tables only. It returns nil
// for tables that fit into one chunk.
func newBar(table string, total, size int) *pb.ProgressBar {
	if total <= size {
		return nil
	}
	bar := pb.Full.Start(total)
	bar.Set("prefix", "Loading "+table+": ")
	bar.Set(pb.CleanOnFinish, true)
	return bar
}
