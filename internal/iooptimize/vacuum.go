package iooptimize

import (
	"context"
	"log/slog"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/gnames/trialwh/pkg/db"
)

// analyze updates query planner statistics. On PostgreSQL it also
// reclaims space left by replaced rows. VACUUM cannot run inside a
// transaction block, so it goes through plain Exec.
func (o *optimizer) analyze(ctx context.Context) error {
	q := "ANALYZE"
	if o.operator.Driver() == db.Postgres {
		q = "VACUUM ANALYZE"
	}

	start := time.Now()
	if err := o.operator.Exec(ctx, q); err != nil {
		return VacuumError(q, err)
	}

	slog.Info("Statistics updated",
		"statement", q,
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return nil
}
