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

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/trialwh/internal/iosnapshot"
	"github.com/spf13/cobra"
)

// getImportCmd returns the import command.
func getImportCmd() *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import [snapshot]",
		Short: "Import an extraction snapshot into raw_trials",
		Long: `Import reads a JSON snapshot of the trial extraction job and
replaces the content of the raw_trials table with it.

The snapshot is a local file or an S3 object (s3://bucket/key). S3
access uses the standard AWS credential chain and the s3 section of
config.yaml (region, endpoint, use_path_style).

Without an argument the snapshot from refresh.snapshot is used.

Examples:
  trialwh import data/raw/trials_extraction_20240501.json
  trialwh import s3://trials/extracts/latest.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args)
		},
	}

	return importCmd
}

func runImport(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	var source string
	if len(args) > 0 {
		source = args[0]
	}

	op, err := connect(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	n, err := iosnapshot.NewImporter(cfg, op).Import(ctx, source)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Imported <em>%s</em> raw trials", humanize.Comma(int64(n)))
	return nil
}
