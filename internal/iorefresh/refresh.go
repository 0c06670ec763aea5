// Package iorefresh implements lifecycle.Refresher. It reads the raw
// snapshot, builds staging sets, loads the star schema and records the
// run in etl_runs.
package iorefresh

import (
	"context"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/gnames/trialwh/internal/iometrics"
	"github.com/gnames/trialwh/internal/iosnapshot"
	"github.com/gnames/trialwh/pkg/config"
	"github.com/gnames/trialwh/pkg/db"
	"github.com/gnames/trialwh/pkg/lifecycle"
	"github.com/gnames/trialwh/pkg/quality"
	"github.com/gnames/trialwh/pkg/schema"
	"github.com/gnames/trialwh/pkg/staging"
	"github.com/gnames/trialwh/pkg/warehouse"
	"github.com/google/uuid"
)

// Run statuses stored in etl_runs.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

type refresher struct {
	cfg     *config.Config
	op      db.Operator
	metrics *iometrics.Metrics
}

// New creates a Refresher for a connected operator. Metrics can be nil.
func New(
	cfg *config.Config,
	op db.Operator,
	m *iometrics.Metrics,
) lifecycle.Refresher {
	return &refresher{cfg: cfg, op: op, metrics: m}
}

// Refresh runs one full refresh. Stages run strictly one after another.
// On failure a failed run is recorded and the error of the stage is
// returned.
func (r *refresher) Refresh(ctx context.Context) (*lifecycle.Summary, error) {
	res := &lifecycle.Summary{
		Run: schema.ETLRun{
			RunID:     uuid.NewString(),
			StartedAt: time.Now().UTC(),
		},
		DryRun: r.cfg.Refresh.DryRun,
	}
	slog.Info("Refresh started", "run_id", res.Run.RunID, "dry_run", res.DryRun)

	err := r.run(ctx, res)
	res.Run.FinishedAt = time.Now().UTC()
	if err != nil {
		res.Run.Status = StatusFailed
		r.audit(ctx, res)
		r.push()
		slog.Error("Refresh failed", "run_id", res.Run.RunID, "error", err)
		return nil, err
	}

	res.Run.Status = StatusSuccess
	if err = r.audit(ctx, res); err != nil {
		return nil, err
	}
	r.metrics.MarkSuccess(res.Run.FinishedAt)
	r.push()

	slog.Info("Refresh finished",
		"run_id", res.Run.RunID,
		"trials", humanize.Comma(int64(res.Run.TrialCount)),
		"facts", humanize.Comma(int64(res.Run.FactCount)),
		"quality_score", res.Run.QualityScore,
		"duration", gnfmt.TimeString(
			res.Run.FinishedAt.Sub(res.Run.StartedAt).Seconds(),
		),
	)
	return res, nil
}

func (r *refresher) run(ctx context.Context, sum *lifecycle.Summary) error {
	var raw []schema.RawTrial
	err := r.stage("extract", func() error {
		var err error
		raw, err = r.readRaw(ctx)
		return err
	})
	if err != nil {
		return ReadRawError(err)
	}

	var stg *staging.Result
	r.compute("transform", func() {
		stg = staging.Build(raw)
		sum.Quality = quality.Score(
			quality.FromModels(schema.StagingTrial{}.TableName(), stg.Trials),
			r.cfg.Refresh.RequiredColumns,
		)
	})
	r.recordStaging(sum, stg)

	if !sum.DryRun {
		err = r.stage("load_staging", func() error {
			return r.op.Refresh(ctx, stagingBatches(stg)...)
		})
		if err != nil {
			return StagingLoadError(err)
		}
	}

	var dims *warehouse.Dimensions
	var facts []schema.FactTrial
	r.compute("assemble", func() {
		dims = warehouse.LoadDimensions(stg)
		facts = warehouse.AssembleFacts(stg.Trials, dims)
	})
	r.recordWarehouse(sum, dims, facts)

	if sum.DryRun {
		return nil
	}

	err = r.stage("load_warehouse", func() error {
		return r.op.Refresh(ctx, warehouseBatches(dims, facts)...)
	})
	if err != nil {
		return WarehouseLoadError(err)
	}
	return nil
}

// stage runs fn, logs its duration and records stage metrics.
func (r *refresher) stage(name string, fn func() error) error {
	start := time.Now()
	slog.Debug("Stage started", "stage", name)
	err := fn()
	r.observe(name, start, err)
	return err
}

// compute runs an in-memory stage that cannot fail.
func (r *refresher) compute(name string, fn func()) {
	start := time.Now()
	slog.Debug("Stage started", "stage", name)
	fn()
	r.observe(name, start, nil)
}

func (r *refresher) observe(name string, start time.Time, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusFailed
	}
	dur := time.Since(start)
	r.metrics.ObserveStage(name, status, dur)
	slog.Info("Stage finished",
		"stage", name,
		"status", status,
		"duration", gnfmt.TimeString(dur.Seconds()),
	)
}

// readRaw reads raw trials from the configured snapshot, or from the
// raw_trials table when no snapshot is set.
func (r *refresher) readRaw(ctx context.Context) ([]schema.RawTrial, error) {
	if src := r.cfg.Refresh.Snapshot; src != "" {
		return iosnapshot.Read(ctx, r.cfg, src)
	}

	var res []schema.RawTrial
	table := schema.RawTrial{}.TableName()
	cols := schema.Columns(schema.RawTrial{})
	err := r.op.Select(ctx, table, cols, func(scan db.ScanFunc) error {
		var rec schema.RawTrial
		if err := scan(schema.ScanTargets(&rec)...); err != nil {
			return err
		}
		res = append(res, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	slog.Info("Raw trials read", "records", humanize.Comma(int64(len(res))))
	return res, nil
}

func (r *refresher) recordStaging(sum *lifecycle.Summary, stg *staging.Result) {
	run := &sum.Run
	run.RawCount = stg.RawCount
	run.InvalidCount = stg.InvalidCount
	run.DuplicateCount = stg.DuplicateCount
	run.TrialCount = len(stg.Trials)
	run.QualityScore = sum.Quality.Score

	if stg.InvalidCount > 0 {
		slog.Warn("Records without trial identifier skipped",
			"count", stg.InvalidCount)
	}
	if stg.DuplicateCount > 0 {
		slog.Warn("Duplicate trial identifiers skipped",
			"count", stg.DuplicateCount)
	}
	logQuality(sum.Quality)

	r.metrics.AddRecords("raw", stg.RawCount)
	r.metrics.AddRecords("invalid", stg.InvalidCount)
	r.metrics.AddRecords("duplicate", stg.DuplicateCount)
	r.metrics.AddRecords("trial", len(stg.Trials))
	r.metrics.SetQuality(sum.Quality.Score)
}

func (r *refresher) recordWarehouse(
	sum *lifecycle.Summary,
	dims *warehouse.Dimensions,
	facts []schema.FactTrial,
) {
	run := &sum.Run
	run.SponsorCount = len(dims.Sponsors)
	run.LocationCount = len(dims.Locations)
	run.ConditionCount = len(dims.Conditions)
	run.InterventionCount = len(dims.Interventions)
	run.DateCount = len(dims.Dates)
	run.FactCount = len(facts)

	r.metrics.AddRecords("sponsor", run.SponsorCount)
	r.metrics.AddRecords("location", run.LocationCount)
	r.metrics.AddRecords("condition", run.ConditionCount)
	r.metrics.AddRecords("intervention", run.InterventionCount)
	r.metrics.AddRecords("date", run.DateCount)
	r.metrics.AddRecords("fact", run.FactCount)
}

// audit appends the run to etl_runs. Failed runs are recorded on a best
// effort basis, their audit error is only logged.
func (r *refresher) audit(ctx context.Context, sum *lifecycle.Summary) error {
	if sum.DryRun {
		return nil
	}
	err := r.op.Append(ctx, batchOf([]schema.ETLRun{sum.Run}))
	if err == nil {
		return nil
	}
	if sum.Run.Status == StatusFailed {
		slog.Warn("Cannot record failed run", "error", err)
		return nil
	}
	return AuditError(err)
}

func (r *refresher) push() {
	if err := r.metrics.Push(); err != nil {
		slog.Warn("Cannot push metrics", "error", err)
	}
}

func logQuality(rep quality.Report) {
	for _, m := range rep.Missing {
		if m.Count > 0 {
			slog.Debug("Missing values",
				"table", rep.Table,
				"column", m.Column,
				"count", m.Count,
				"percent", m.Percent,
			)
		}
	}
	slog.Info("Data quality",
		"table", rep.Table,
		"rows", humanize.Comma(int64(rep.TotalRows)),
		"duplicates", rep.DuplicateRows,
		"completeness", rep.Completeness,
		"score", rep.Score,
	)
}
