package cmd

import (
	"github.com/gnames/trialwh/pkg/config"
	"github.com/spf13/cobra"
)

// flagOption converts flags of a command to config options.
// Flags that were not given keep values from config.yaml and environment.
type flagOption func(cmd *cobra.Command) []config.Option

func snapshotFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("snapshot") {
		return nil
	}
	s, _ := cmd.Flags().GetString("snapshot")
	return []config.Option{config.OptRefreshSnapshot(s)}
}

func dryRunFlag(cmd *cobra.Command) []config.Option {
	b, _ := cmd.Flags().GetBool("dry-run")
	return []config.Option{config.OptRefreshDryRun(b)}
}

func jobsFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("jobs") {
		return nil
	}
	i, _ := cmd.Flags().GetInt("jobs")
	return []config.Option{config.OptJobsNumber(i)}
}

// applyFlags updates the global configuration from command flags.
func applyFlags(cmd *cobra.Command, flags ...flagOption) {
	var opts []config.Option
	for _, f := range flags {
		opts = append(opts, f(cmd)...)
	}
	cfg.Update(opts)
}
