/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/trialwh/internal/iometrics"
	"github.com/gnames/trialwh/internal/iorefresh"
	"github.com/gnames/trialwh/pkg/lifecycle"
	"github.com/spf13/cobra"
)

// getRefreshCmd returns the refresh command.
func getRefreshCmd() *cobra.Command {
	refreshCmd := &cobra.Command{
		Use:   "refresh",
		Short: "Rebuild staging and warehouse tables",
		Long: `Refresh runs the nightly pipeline:

  1. extract: reads raw trials (raw_trials table or --snapshot)
  2. transform: normalizes, validates and deduplicates trials
  3. load_staging: replaces the five staging tables (stg_sponsors,
     stg_locations, stg_conditions, stg_interventions, stg_trials)
     in one transaction
  4. assemble: builds dimensions and the fact table
  5. load_warehouse: replaces dim_sponsor, dim_location, dim_condition,
     dim_intervention, dim_dates and fact_trials in one transaction

Every run is recorded in etl_runs. With --dry-run nothing is written,
the computed counts are only reported.

Overlapping runs are not supported. Refresh takes no lock, so the
scheduler or an external lock must make sure only one refresh writes
to the warehouse at a time.

Examples:
  trialwh refresh
  trialwh refresh --dry-run
  trialwh refresh -s data/raw/trials_extraction_20240501.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRefresh(cmd, args)
		},
	}

	refreshCmd.Flags().StringP("snapshot", "s", "",
		"read raw trials from a JSON snapshot instead of raw_trials")
	refreshCmd.Flags().BoolP("dry-run", "n", false,
		"compute the refresh without writing to the warehouse")

	return refreshCmd
}

func runRefresh(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	applyFlags(cmd, snapshotFlag, dryRunFlag)

	op, err := connect(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	m, err := iometrics.New(cfg.Metrics)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	sum, err := iorefresh.New(cfg, op, m).Refresh(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	printSummary(sum)
	return nil
}

func printSummary(sum *lifecycle.Summary) {
	run := sum.Run
	dur := run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond)

	if sum.DryRun {
		gn.Info("\nDry run, warehouse was not changed.")
	} else {
		gn.Info("\nRefresh <em>%s</em> finished in %s", run.RunID,
			gnfmt.TimeString(dur.Seconds()))
	}

	rows := []struct {
		name string
		n    int
	}{
		{"raw trials", run.RawCount},
		{"invalid", run.InvalidCount},
		{"duplicates", run.DuplicateCount},
		{"trials", run.TrialCount},
		{"sponsors", run.SponsorCount},
		{"locations", run.LocationCount},
		{"conditions", run.ConditionCount},
		{"interventions", run.InterventionCount},
		{"dates", run.DateCount},
		{"facts", run.FactCount},
	}
	for _, r := range rows {
		fmt.Printf("  %-14s %10s\n", r.name, humanize.Comma(int64(r.n)))
	}
	fmt.Printf("  %-14s %10.2f\n", "quality score", run.QualityScore)
}
