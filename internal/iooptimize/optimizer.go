// Package iooptimize implements lifecycle.Optimizer. It prepares a
// loaded warehouse for reporting: fact foreign key indexes, roll-up
// views and fresh planner statistics.
package iooptimize

import (
	"context"
	"log/slog"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/trialwh/pkg/db"
	"github.com/gnames/trialwh/pkg/lifecycle"
)

// optimizer implements the Optimizer interface.
type optimizer struct {
	operator db.Operator
}

// New creates a new Optimizer for a connected operator.
func New(op db.Operator) lifecycle.Optimizer {
	return &optimizer{operator: op}
}

// Optimize runs three sequential steps:
//  1. Create indexes on fact foreign keys
//  2. Recreate roll-up views
//  3. Update planner statistics
func (o *optimizer) Optimize(ctx context.Context) error {
	start := time.Now()
	slog.Info("Starting warehouse optimization", "driver", o.operator.Driver())
	gn.Info("Optimization in progress...")

	slog.Info("Step 1/3: Creating fact indexes")
	if err := o.createIndexes(ctx); err != nil {
		return err
	}

	slog.Info("Step 2/3: Creating roll-up views")
	if err := o.createViews(ctx); err != nil {
		return err
	}

	slog.Info("Step 3/3: Updating statistics")
	if err := o.analyze(ctx); err != nil {
		return err
	}

	slog.Info("Warehouse optimization completed",
		"duration", gnfmt.TimeString(time.Since(start).Seconds()))
	return nil
}
