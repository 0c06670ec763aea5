package db

import (
	"context"

	"github.com/gnames/trialwh/pkg/config"
)

// Supported warehouse drivers.
const (
	Postgres = "postgres"
	SQLite   = "sqlite"
)

// Batch is the full content of one table. Columns and row values follow
// the order of schema.Columns of the table model.
type Batch struct {
	Table   string
	Columns []string
	Rows    [][]any
}

// ScanFunc copies the current row into dest, like sql.Rows.Scan.
type ScanFunc func(dest ...any) error

// Operator defines the interface of warehouse storage. It hides the
// difference between PostgreSQL and SQLite from refresh, schema and
// optimize components.
//
// Writes are transactional: Refresh replaces the content of all given
// tables in one transaction, so readers either see the previous complete
// state or the new one. A failed Refresh leaves tables untouched.
type Operator interface {
	// Connect opens the warehouse described by the configuration.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close releases all database connections.
	Close() error

	// Driver returns the name of the backend, Postgres or SQLite.
	Driver() string

	// TableExists checks if a table exists in the warehouse.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the warehouse has any tables.
	HasTables(ctx context.Context) (bool, error)

	// DropTables drops given tables if they exist.
	DropTables(ctx context.Context, tables ...string) error

	// Exec runs a statement that does not return rows.
	Exec(ctx context.Context, query string) error

	// Refresh deletes all rows of every batch table and inserts batch
	// rows, all within one transaction.
	Refresh(ctx context.Context, batches ...Batch) error

	// Append inserts batch rows in one transaction keeping existing rows.
	Append(ctx context.Context, batch Batch) error

	// Select reads columns of a table and calls fn for every row. Rows
	// are ordered by the first column.
	Select(
		ctx context.Context,
		table string,
		columns []string,
		fn func(scan ScanFunc) error,
	) error
}
