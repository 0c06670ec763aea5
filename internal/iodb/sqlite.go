package iodb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/trialwh/pkg/config"
	"github.com/gnames/trialwh/pkg/db"
	_ "modernc.org/sqlite"
)

// sqliteMaxVars is the SQLite limit of bound parameters per statement.
const sqliteMaxVars = 32_766

// sqliteOperator implements db.Operator for a local SQLite warehouse.
type sqliteOperator struct {
	db        *sql.DB
	path      string
	batchSize int
}

// NewSQLiteOperator creates a new SQLite operator (without connecting).
func NewSQLiteOperator() db.Operator {
	return &sqliteOperator{}
}

// Connect opens the SQLite file, creating it if needed.
func (s *sqliteOperator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	dsn := cfg.SQLitePath + "?_pragma=busy_timeout(5000)"
	d, err := sql.Open("sqlite", dsn)
	if err != nil {
		return SQLiteConnectionError(cfg.SQLitePath, err)
	}
	// single writer, and in-memory databases live per connection
	d.SetMaxOpenConns(1)

	if err = d.PingContext(ctx); err != nil {
		d.Close()
		return SQLiteConnectionError(cfg.SQLitePath, err)
	}

	s.db = d
	s.path = cfg.SQLitePath
	s.batchSize = cfg.BatchSize
	return nil
}

func (s *sqliteOperator) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *sqliteOperator) Driver() string {
	return db.SQLite
}

func (s *sqliteOperator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if s.db == nil {
		return false, NotConnectedError()
	}

	query := `SELECT count(*) FROM sqlite_master
		WHERE type = 'table' AND name = ?`

	var n int
	if err := s.db.QueryRowContext(ctx, query, tableName).Scan(&n); err != nil {
		return false, TableExistsCheckError(tableName, err)
	}
	return n > 0, nil
}

func (s *sqliteOperator) HasTables(ctx context.Context) (bool, error) {
	if s.db == nil {
		return false, NotConnectedError()
	}

	query := `SELECT count(*) FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`

	var n int
	if err := s.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return false, TableCheckError(err)
	}
	return n > 0, nil
}

func (s *sqliteOperator) DropTables(
	ctx context.Context,
	tables ...string,
) error {
	if s.db == nil {
		return NotConnectedError()
	}

	for _, table := range tables {
		dropSQL := "DROP TABLE IF EXISTS " + quote(table)
		if _, err := s.db.ExecContext(ctx, dropSQL); err != nil {
			return DropTableError(table, err)
		}
	}
	return nil
}

func (s *sqliteOperator) Exec(ctx context.Context, query string) error {
	if s.db == nil {
		return NotConnectedError()
	}
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return ExecError(query, err)
	}
	return nil
}

// Refresh replaces content of all batch tables in one transaction.
func (s *sqliteOperator) Refresh(
	ctx context.Context,
	batches ...db.Batch,
) error {
	if s.db == nil {
		return NotConnectedError()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TransactionError(err)
	}
	defer tx.Rollback()

	for _, b := range batches {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+quote(b.Table)); err != nil {
			return WriteError(b.Table, err)
		}
		if err = s.insert(ctx, tx, b); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return TransactionError(err)
	}
	return nil
}

func (s *sqliteOperator) Append(ctx context.Context, b db.Batch) error {
	if s.db == nil {
		return NotConnectedError()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TransactionError(err)
	}
	defer tx.Rollback()

	if err = s.insert(ctx, tx, b); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return TransactionError(err)
	}
	return nil
}

// insert writes rows with multi-row INSERT statements. A statement never
// has more bound parameters than SQLite allows.
func (s *sqliteOperator) insert(ctx context.Context, tx *sql.Tx, b db.Batch) error {
	if len(b.Rows) == 0 || len(b.Columns) == 0 {
		return nil
	}

	size := s.batchSize
	if size <= 0 {
		size = defaultBatchSize
	}
	size = min(size, sqliteMaxVars/len(b.Columns))

	bar := newBar(b.Table, len(b.Rows), size)
	if bar != nil {
		defer bar.Finish()
	}

	cols := make([]string, len(b.Columns))
	for i := range b.Columns {
		cols[i] = quote(b.Columns[i])
	}
	prefix := fmt.Sprintf("INSERT INTO %s (%s) VALUES ",
		quote(b.Table), strings.Join(cols, ", "))
	tuple := "(" + strings.TrimSuffix(
		strings.Repeat("?, ", len(b.Columns)), ", ") + ")"

	for _, chunk := range chunks(b.Rows, size) {
		var sb strings.Builder
		sb.WriteString(prefix)
		args := make([]any, 0, len(chunk)*len(b.Columns))
		for i, row := range chunk {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(tuple)
			args = append(args, row...)
		}
		if _, err := tx.ExecContext(ctx, sb.String(), args...); err != nil {
			return WriteError(b.Table, err)
		}
		if bar != nil {
			bar.Add(len(chunk))
		}
	}

	slog.Debug("Table loaded", "table", b.Table,
		"rows", humanize.Comma(int64(len(b.Rows))))
	return nil
}

// Select reads columns of a table ordered by the first column.
func (s *sqliteOperator) Select(
	ctx context.Context,
	table string,
	columns []string,
	fn func(scan db.ScanFunc) error,
) error {
	if s.db == nil {
		return NotConnectedError()
	}

	cols := make([]string, len(columns))
	for i := range columns {
		cols[i] = quote(columns[i])
	}
	q := fmt.Sprintf("SELECT %s FROM %s ORDER BY 1",
		strings.Join(cols, ", "), quote(table))

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return SelectError(table, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err = fn(rows.Scan); err != nil {
			return SelectError(table, err)
		}
	}

	if err = rows.Err(); err != nil {
		return SelectError(table, err)
	}
	return nil
}

func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}
