// Package ioquality implements lifecycle.QualityChecker. Tables are read
// concurrently and scored with the quality package.
package ioquality

import (
	"context"
	"log/slog"

	"github.com/gnames/trialwh/pkg/config"
	"github.com/gnames/trialwh/pkg/db"
	"github.com/gnames/trialwh/pkg/lifecycle"
	"github.com/gnames/trialwh/pkg/quality"
	"github.com/gnames/trialwh/pkg/schema"
	"golang.org/x/sync/errgroup"
)

type checker struct {
	cfg    *config.Config
	op     db.Operator
	tables []string
}

// New creates a QualityChecker for all trialwh tables except the audit
// table.
func New(cfg *config.Config, op db.Operator) lifecycle.QualityChecker {
	var tables []string
	for _, m := range schema.AllModels() {
		if _, ok := m.(*schema.ETLRun); ok {
			continue
		}
		tables = append(tables, m.TableName())
	}
	return &checker{cfg: cfg, op: op, tables: tables}
}

// Check scores every existing table. Reports keep the order of tables,
// missing tables are skipped. At most JobsNumber tables are read at the
// same time.
func (c *checker) Check(ctx context.Context) ([]quality.Report, error) {
	reports := make([]*quality.Report, len(c.tables))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(c.cfg.JobsNumber, 1))

	for i, table := range c.tables {
		g.Go(func() error {
			ok, err := c.op.TableExists(ctx, table)
			if err != nil {
				return TableError(table, err)
			}
			if !ok {
				slog.Warn("Table does not exist, skipping", "table", table)
				return nil
			}

			t, err := c.read(ctx, table)
			if err != nil {
				return TableError(table, err)
			}
			rep := quality.Score(t, c.cfg.Refresh.RequiredColumns)
			reports[i] = &rep
			slog.Info("Table checked",
				"table", table,
				"rows", rep.TotalRows,
				"score", rep.Score,
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var res []quality.Report
	for _, r := range reports {
		if r != nil {
			res = append(res, *r)
		}
	}
	return res, nil
}

func (c *checker) read(ctx context.Context, table string) (quality.Table, error) {
	cols := columnsOf(table)
	res := quality.Table{Name: table, Columns: cols}

	err := c.op.Select(ctx, table, cols, func(scan db.ScanFunc) error {
		row := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range row {
			ptrs[i] = &row[i]
		}
		if err := scan(ptrs...); err != nil {
			return err
		}
		res.Rows = append(res.Rows, row)
		return nil
	})
	return res, err
}

func columnsOf(table string) []string {
	for _, m := range schema.AllModels() {
		if m.TableName() == table {
			return schema.Columns(m)
		}
	}
	return nil
}
