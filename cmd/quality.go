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
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/trialwh/internal/ioquality"
	"github.com/gnames/trialwh/pkg/quality"
	"github.com/spf13/cobra"
)

// getQualityCmd returns the quality command.
func getQualityCmd() *cobra.Command {
	qualityCmd := &cobra.Command{
		Use:   "quality",
		Short: "Report data quality of warehouse tables",
		Long: `Quality reads every raw, staging and warehouse table and
reports row counts, missing values, duplicate rows and a quality score.

Completeness is computed over refresh.required_columns of config.yaml.
Tables are read concurrently, --jobs sets how many at once.

Examples:
  trialwh quality
  trialwh quality --format json
  trialwh quality -j 4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuality(cmd, args)
		},
	}

	qualityCmd.Flags().IntP("jobs", "j", 0,
		"number of tables checked concurrently")
	qualityCmd.Flags().StringP("format", "f", "text",
		"output format: text or json")

	return qualityCmd
}

func runQuality(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	applyFlags(cmd, jobsFlag)

	format, _ := cmd.Flags().GetString("format")
	if format != "text" && format != "json" {
		err := fmt.Errorf("unknown format %q, use text or json", format)
		gn.PrintErrorMessage(err)
		return err
	}

	op, err := connect(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	reports, err := ioquality.New(cfg, op).Check(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if format == "json" {
		res, err := gnfmt.GNjson{Pretty: true}.Encode(reports)
		if err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(res))
		return nil
	}

	printReports(cmd.OutOrStdout(), reports)
	return nil
}

func printReports(out io.Writer, reports []quality.Report) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "table\trows\tduplicates\tcompleteness\tscore\t")
	for _, r := range reports {
		fmt.Fprintf(w, "%s\t%s\t%.2f%%\t%.2f%%\t%.2f\t\n",
			r.Table,
			humanize.Comma(int64(r.TotalRows)),
			r.DuplicatePercent,
			r.Completeness,
			r.Score,
		)
	}
	w.Flush()
}
