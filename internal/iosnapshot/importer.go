package iosnapshot

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/gnames/trialwh/pkg/config"
	"github.com/gnames/trialwh/pkg/db"
	"github.com/gnames/trialwh/pkg/lifecycle"
	"github.com/gnames/trialwh/pkg/schema"
)

type importer struct {
	cfg *config.Config
	op  db.Operator
}

// NewImporter creates an Importer that writes to a connected operator.
func NewImporter(cfg *config.Config, op db.Operator) lifecycle.Importer {
	return &importer{cfg: cfg, op: op}
}

// Import replaces raw_trials with the snapshot at source. An empty source
// means the snapshot from the refresh configuration.
func (i *importer) Import(ctx context.Context, source string) (int, error) {
	if source == "" {
		source = i.cfg.Refresh.Snapshot
	}
	if source == "" {
		return 0, SnapshotReadError(source, errors.New("no snapshot given"))
	}

	start := time.Now()
	raw, err := Read(ctx, i.cfg, source)
	if err != nil {
		return 0, err
	}

	batch := db.Batch{
		Table:   schema.RawTrial{}.TableName(),
		Columns: schema.Columns(schema.RawTrial{}),
		Rows:    schema.Rows(raw),
	}
	if err = i.op.Refresh(ctx, batch); err != nil {
		return 0, err
	}

	slog.Info("Snapshot imported",
		"records", humanize.Comma(int64(len(raw))),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return len(raw), nil
}
