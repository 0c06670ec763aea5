package iooptimize

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/trialwh/pkg/db"
	"github.com/gnames/trialwh/pkg/schema"
)

// createViews drops and creates every roll-up view, so changed view
// definitions always replace old ones.
func (o *optimizer) createViews(ctx context.Context) error {
	views := schema.Views()
	for _, v := range views {
		if err := o.operator.Exec(ctx, "DROP VIEW IF EXISTS "+v.Name); err != nil {
			return ViewCreationError(v.Name, err)
		}
		q := fmt.Sprintf("CREATE VIEW %s AS\n%s", v.Name, v.Query)
		if err := o.operator.Exec(ctx, q); err != nil {
			return ViewCreationError(v.Name, err)
		}

		n, err := o.countRows(ctx, v)
		if err != nil {
			return ViewCreationError(v.Name, err)
		}
		slog.Info("View created", "view", v.Name, "rows", n)
	}

	gn.Info("Created <em>%d</em> roll-up views", len(views))
	return nil
}

func (o *optimizer) countRows(ctx context.Context, v schema.View) (string, error) {
	var n int64
	err := o.operator.Select(ctx, v.Name, []string{v.Key},
		func(scan db.ScanFunc) error {
			n++
			return nil
		})
	return humanize.Comma(n), err
}
