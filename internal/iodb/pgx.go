package iodb

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/trialwh/pkg/config"
	"github.com/gnames/trialwh/pkg/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxOperator implements db.Operator interface using
// pgxpool for connection pooling.
type pgxOperator struct {
	pool      *pgxpool.Pool
	batchSize int
}

// NewPgxOperator creates a new PostgreSQL operator
// (without connecting).
func NewPgxOperator() db.Operator {
	return &pgxOperator{}
}

// PoolOf returns the pgxpool.Pool behind a PostgreSQL operator. The
// second value is false for other backends or before Connect.
func PoolOf(op db.Operator) (*pgxpool.Pool, bool) {
	p, ok := op.(*pgxOperator)
	if !ok || p.pool == nil {
		return nil, false
	}
	return p.pool, true
}

// Connect establishes a connection pool to PostgreSQL.
func (p *pgxOperator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = 0
	poolConfig.MaxConnIdleTime = 0

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	p.pool = pool
	p.batchSize = cfg.BatchSize
	return nil
}

// Close releases all database connections.
func (p *pgxOperator) Close() error {
	if p.pool != nil {
		p.pool.Close()
		p.pool = nil
	}
	return nil
}

func (p *pgxOperator) Driver() string {
	return db.Postgres
}

// TableExists checks if a table exists in the public schema.
func (p *pgxOperator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if p.pool == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
			AND table_name = $1
		)
	`

	var exists bool
	err := p.pool.QueryRow(ctx, query, tableName).Scan(&exists)
	if err != nil {
		return false, TableExistsCheckError(tableName, err)
	}

	return exists, nil
}

// HasTables checks if the database has any tables in the
// public schema.
func (p *pgxOperator) HasTables(
	ctx context.Context,
) (bool, error) {
	if p.pool == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
			AND table_type = 'BASE TABLE'
		)
	`

	var hasTables bool
	err := p.pool.QueryRow(ctx, query).Scan(&hasTables)
	if err != nil {
		return false, TableCheckError(err)
	}

	return hasTables, nil
}

// DropTables drops tables with CASCADE, so dependent views go too.
func (p *pgxOperator) DropTables(
	ctx context.Context,
	tables ...string,
) error {
	if p.pool == nil {
		return NotConnectedError()
	}

	for _, table := range tables {
		dropSQL := fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE",
			pgx.Identifier{table}.Sanitize())
		if _, err := p.pool.Exec(ctx, dropSQL); err != nil {
			return DropTableError(table, err)
		}
	}

	return nil
}

func (p *pgxOperator) Exec(ctx context.Context, query string) error {
	if p.pool == nil {
		return NotConnectedError()
	}
	if _, err := p.pool.Exec(ctx, query); err != nil {
		return ExecError(query, err)
	}
	return nil
}

// Refresh replaces content of all batch tables in one transaction.
// Rows are loaded with COPY.
func (p *pgxOperator) Refresh(
	ctx context.Context,
	batches ...db.Batch,
) error {
	if p.pool == nil {
		return NotConnectedError()
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return TransactionError(err)
	}
	// no-op after a successful commit
	defer tx.Rollback(ctx)

	for _, b := range batches {
		del := "DELETE FROM " + pgx.Identifier{b.Table}.Sanitize()
		if _, err = tx.Exec(ctx, del); err != nil {
			return WriteError(b.Table, err)
		}
		if err = p.copy(ctx, tx, b); err != nil {
			return err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return TransactionError(err)
	}
	return nil
}

// Append inserts batch rows without removing existing ones.
func (p *pgxOperator) Append(ctx context.Context, b db.Batch) error {
	if p.pool == nil {
		return NotConnectedError()
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return TransactionError(err)
	}
	defer tx.Rollback(ctx)

	if err = p.copy(ctx, tx, b); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return TransactionError(err)
	}
	return nil
}

func (p *pgxOperator) copy(ctx context.Context, tx pgx.Tx, b db.Batch) error {
	size := p.batchSize
	if size <= 0 {
		size = defaultBatchSize
	}
	bar := newBar(b.Table, len(b.Rows), size)
	if bar != nil {
		defer bar.Finish()
	}

	var total int64
	for _, chunk := range chunks(b.Rows, size) {
		n, err := tx.CopyFrom(
			ctx,
			pgx.Identifier{b.Table},
			b.Columns,
			pgx.CopyFromRows(chunk),
		)
		if err != nil {
			return WriteError(b.Table, err)
		}
		total += n
		if bar != nil {
			bar.Add(len(chunk))
		}
	}

	slog.Debug("Table loaded", "table", b.Table,
		"rows", humanize.Comma(total))
	return nil
}

// Select reads columns of a table ordered by the first column.
func (p *pgxOperator) Select(
	ctx context.Context,
	table string,
	columns []string,
	fn func(scan db.ScanFunc) error,
) error {
	if p.pool == nil {
		return NotConnectedError()
	}

	cols := make([]string, len(columns))
	for i := range columns {
		cols[i] = pgx.Identifier{columns[i]}.Sanitize()
	}
	q := fmt.Sprintf("SELECT %s FROM %s ORDER BY 1",
		strings.Join(cols, ", "), pgx.Identifier{table}.Sanitize())

	rows, err := p.pool.Query(ctx, q)
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
