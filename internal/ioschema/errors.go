package ioschema

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/trialwh/pkg/errcode"
)

// GORMConnectionError creates an error for GORM
// connection failures.
func GORMConnectionError(err error) error {
	msg := `Cannot connect to database with GORM

<em>How to fix:</em>
  1. Ensure database operator is connected
  2. Check database configuration`

	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to connect with GORM: %w", err),
	}
}

// CreateSchemaError creates an error for schema
// creation failures.
func CreateSchemaError(err error) error {
	msg := `Cannot create warehouse schema

<em>Possible causes:</em>
  - Insufficient database permissions
  - Invalid schema definitions

<em>How to fix:</em>
  1. Check database user has CREATE permissions
  2. Check database logs for details`

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to create schema: %w", err),
	}
}

// MigrateSchemaError creates an error for schema
// migration failures.
func MigrateSchemaError(err error) error {
	msg := `Cannot migrate warehouse schema

<em>Possible causes:</em>
  - Incompatible schema changes
  - Insufficient database permissions

<em>How to fix:</em>
  1. Review the changes of table models
  2. Recreate the schema with <em>trialwh create --force</em>`

	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to migrate schema: %w", err),
	}
}

// TablesExistError is returned by Create when warehouse tables are
// already present and dropping them was not requested.
func TablesExistError(tables []string) error {
	msg := `Warehouse already has tables: <em>%s</em>

<em>How to fix:</em>
  Use <em>trialwh migrate</em> to keep the data,
  or <em>trialwh create --force</em> to start from scratch.`

	list := strings.Join(tables, ", ")
	return &gn.Error{
		Code: errcode.SchemaTablesExistError,
		Msg:  msg,
		Vars: []any{list},
		Err:  fmt.Errorf("tables exist: %s", list),
	}
}
