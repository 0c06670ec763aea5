package iodb

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/trialwh/pkg/errcode"
)

// ConnectionError is returned when PostgreSQL connection fails.
func ConnectionError(
	host string,
	port int,
	database, user string,
	err error,
) error {
	msg := `Cannot connect to PostgreSQL at <em>%s:%d/%s</em>

<em>Possible causes:</em>
  - PostgreSQL is not running
  - Database configuration is incorrect
  - Database <em>%s</em> does not exist

<em>How to fix:</em>
  1. Check if PostgreSQL is running: pg_isready -h %s -p %d
  2. Verify database exists: psql -h %s -U %s -l
  3. Check ~/.config/trialwh/config.yaml or TRIALWH_DATABASE_* variables`

	vars := []any{host, port, database, database, host, port, host, user}

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("failed to connect to %s:%d/%s: %w",
			host, port, database, err),
	}
}

// SQLiteConnectionError is returned when a SQLite file cannot be opened.
func SQLiteConnectionError(path string, err error) error {
	msg := `Cannot open SQLite warehouse <em>%s</em>

<em>How to fix:</em>
  1. Check that the directory exists and is writable
  2. Check database.sqlite_path in the config file`

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("failed to open sqlite %s: %w", path, err),
	}
}

// UnknownDriverError is returned for unsupported database drivers.
func UnknownDriverError(driver string) error {
	msg := `Unknown database driver <em>%s</em>

Supported drivers are <em>postgres</em> and <em>sqlite</em>.`

	return &gn.Error{
		Code: errcode.DBUnknownDriverError,
		Msg:  msg,
		Vars: []any{driver},
		Err:  fmt.Errorf("unknown database driver %q", driver),
	}
}

// NotConnectedError is returned when an operation runs before Connect.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Database operation attempted without connection",
		Err:  fmt.Errorf("not connected to database"),
	}
}

// TableCheckError is returned when checking for tables fails.
func TableCheckError(err error) error {
	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  "Could not verify database state",
		Err:  fmt.Errorf("failed to check database tables: %w", err),
	}
}

// TableExistsCheckError is returned when a table lookup fails.
func TableExistsCheckError(table string, err error) error {
	return &gn.Error{
		Code: errcode.DBTableExistsCheckError,
		Msg:  "Cannot check if table <em>%s</em> exists",
		Vars: []any{table},
		Err:  fmt.Errorf("failed to check table %s: %w", table, err),
	}
}

// DropTableError is returned when a table cannot be dropped.
func DropTableError(table string, err error) error {
	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  "Cannot drop table <em>%s</em>",
		Vars: []any{table},
		Err:  fmt.Errorf("failed to drop table %s: %w", table, err),
	}
}

// ExecError is returned when a statement fails.
func ExecError(query string, err error) error {
	msg := `Database statement failed

<em>Statement:</em> %s`

	return &gn.Error{
		Code: errcode.DBExecError,
		Msg:  msg,
		Vars: []any{query},
		Err:  fmt.Errorf("failed to execute %q: %w", query, err),
	}
}

// TransactionError is returned when a transaction cannot begin or commit.
// Nothing of the transaction is written in this case.
func TransactionError(err error) error {
	msg := `Database transaction failed

Previous warehouse content is kept unchanged.`

	return &gn.Error{
		Code: errcode.DBTransactionError,
		Msg:  msg,
		Err:  fmt.Errorf("transaction failed: %w", err),
	}
}

// WriteError is returned when rows of a table cannot be written.
func WriteError(table string, err error) error {
	msg := `Cannot write rows to <em>%s</em>

The transaction is rolled back, previous content is kept.`

	return &gn.Error{
		Code: errcode.DBWriteError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("failed to write %s: %w", table, err),
	}
}

// SelectError is returned when rows of a table cannot be read.
func SelectError(table string, err error) error {
	return &gn.Error{
		Code: errcode.DBSelectError,
		Msg:  "Cannot read rows from <em>%s</em>",
		Vars: []any{table},
		Err:  fmt.Errorf("failed to read %s: %w", table, err),
	}
}
