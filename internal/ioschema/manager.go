// Package ioschema implements lifecycle.SchemaManager. PostgreSQL
// schema is handled by GORM AutoMigrate, SQLite schema by the portable
// DDL of the models.
package ioschema

import (
	"context"
	"log/slog"
	"slices"

	"github.com/gnames/trialwh/internal/iodb"
	"github.com/gnames/trialwh/pkg/db"
	"github.com/gnames/trialwh/pkg/lifecycle"
	"github.com/gnames/trialwh/pkg/schema"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// manager implements the lifecycle.SchemaManager interface.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager for a connected operator.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// Create creates all trialwh tables and their indexes. Existing trialwh
// tables are an error unless force is true, then they are dropped
// together with reporting views.
func (m *manager) Create(ctx context.Context, force bool) error {
	existing, err := m.existingTables(ctx)
	if err != nil {
		return err
	}

	if len(existing) > 0 {
		if !force {
			return TablesExistError(existing)
		}
		if err = m.dropAll(ctx); err != nil {
			return err
		}
		slog.Info("Dropped existing tables", "tables", len(existing))
	}

	if err = m.migrate(ctx); err != nil {
		return CreateSchemaError(err)
	}
	slog.Info("Schema created", "driver", m.operator.Driver())
	return nil
}

// Migrate brings the schema to the current model definitions. Data is
// kept and the operation is idempotent.
func (m *manager) Migrate(ctx context.Context) error {
	if err := m.migrate(ctx); err != nil {
		return MigrateSchemaError(err)
	}
	slog.Info("Schema migrated", "driver", m.operator.Driver())
	return nil
}

func (m *manager) migrate(ctx context.Context) error {
	var err error
	switch m.operator.Driver() {
	case db.Postgres:
		err = m.gormMigrate()
	default:
		err = m.ddlMigrate(ctx)
	}
	if err != nil {
		return err
	}

	for _, model := range schema.AllModels() {
		for _, q := range model.IndexDDL() {
			if err = m.operator.Exec(ctx, q); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *manager) gormMigrate() error {
	pool, ok := iodb.PoolOf(m.operator)
	if !ok {
		return iodb.NotConnectedError()
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return GORMConnectionError(err)
	}

	return schema.Migrate(gormDB)
}

func (m *manager) ddlMigrate(ctx context.Context) error {
	for _, model := range schema.AllModels() {
		if err := m.operator.Exec(ctx, model.TableDDL()); err != nil {
			return err
		}
	}
	return nil
}

func (m *manager) existingTables(ctx context.Context) ([]string, error) {
	var res []string
	for _, table := range schema.TableNames() {
		ok, err := m.operator.TableExists(ctx, table)
		if err != nil {
			return nil, err
		}
		if ok {
			res = append(res, table)
		}
	}
	return res, nil
}

func (m *manager) dropAll(ctx context.Context) error {
	for _, view := range schema.ViewNames() {
		if err := m.operator.Exec(ctx, "DROP VIEW IF EXISTS "+view); err != nil {
			return err
		}
	}

	tables := schema.TableNames()
	slices.Reverse(tables)
	return m.operator.DropTables(ctx, tables...)
}
