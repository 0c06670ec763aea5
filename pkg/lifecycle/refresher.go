package lifecycle

import (
	"context"

	"github.com/gnames/trialwh/pkg/quality"
	"github.com/gnames/trialwh/pkg/schema"
)

// Refresher rebuilds staging and warehouse tables from the raw snapshot.
//
// A refresh is a strictly sequential batch. Staging tables are replaced in
// one transaction, dimension and fact tables in another one. A failure
// leaves the tables of the failed step in their previous complete state.
// Overlapping refreshes of the same warehouse are not coordinated.
type Refresher interface {
	Refresh(ctx context.Context) (*Summary, error)
}

// Summary describes a finished refresh.
type Summary struct {
	// Run is the audit record, also stored in etl_runs unless DryRun.
	Run schema.ETLRun

	// Quality is the report for the staging trial set.
	Quality quality.Report

	// DryRun is true when nothing was written.
	DryRun bool
}

// QualityChecker computes quality reports for warehouse tables.
type QualityChecker interface {
	Check(ctx context.Context) ([]quality.Report, error)
}
