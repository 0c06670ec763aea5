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
	"log/slog"
	"os"

	"github.com/gnames/gn"
	"github.com/gnames/trialwh/internal/ioconfig"
	"github.com/gnames/trialwh/internal/iodb"
	"github.com/gnames/trialwh/internal/iofs"
	"github.com/gnames/trialwh/internal/iologger"
	app "github.com/gnames/trialwh/pkg"
	"github.com/gnames/trialwh/pkg/config"
	"github.com/gnames/trialwh/pkg/db"
	"github.com/spf13/cobra"
)

var (
	homeDir string
	cfgFile string
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "trialwh",
		Short:   "trialwh loads clinical trials into a star-schema warehouse",
		Long: `trialwh turns raw clinical trial extracts into a staging layer and a
star-schema warehouse (sponsors, locations, conditions, interventions,
dates and trial facts) for reporting dashboards.

Typical workflow:
  trialwh create              create warehouse tables
  trialwh import trials.json  load an extraction snapshot into raw_trials
  trialwh refresh             rebuild staging and warehouse tables
  trialwh quality             show data quality of every table
  trialwh optimize            create fact indexes and roll-up views

The warehouse is PostgreSQL or a SQLite file (database.driver).

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (TRIALWH_*)
  3. Config file (~/.config/trialwh/config.yaml)
  4. Built-in defaults

Environment variables use underscores for nesting, for example
TRIALWH_DATABASE_DRIVER, TRIALWH_DATABASE_HOST, TRIALWH_LOG_LEVEL.`,
		PersistentPreRunE: bootstrap,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "trialwh version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for trialwh")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ~/.config/trialwh/config.yaml)")

	rootCmd.AddCommand(
		getCreateCmd(),
		getMigrateCmd(),
		getImportCmd(),
		getRefreshCmd(),
		getQualityCmd(),
		getOptimizeCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Log with defaults until the configuration is known.
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if cfg, err = ioconfig.Load(homeDir, cfgFile); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iologger.Init(config.LogDir(homeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	path := cfgFile
	if path == "" {
		path = config.ConfigFilePath(homeDir)
	}
	slog.Info("Configuration loaded",
		"config_file", path,
		"env_overrides", ioconfig.HasEnvVars(),
		"command", cmd.Name(),
	)
	return nil
}

// connect opens the configured warehouse.
func connect(ctx context.Context) (db.Operator, error) {
	op, err := iodb.New(cfg.Database.Driver)
	if err != nil {
		return nil, err
	}

	if err = op.Connect(ctx, &cfg.Database); err != nil {
		return nil, err
	}

	if op.Driver() == db.SQLite {
		gn.Info("Opened SQLite warehouse: <em>%s</em>", cfg.Database.SQLitePath)
		return op, nil
	}
	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)
	return op, nil
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
