// Package config provides configuration management for trialwh.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: driver, host, port, user, password, database, ssl_mode,
//     sqlite_path, batch_size
//   - Refresh: snapshot, required_columns
//   - Metrics: push_url, job_name
//   - S3: region, endpoint, use_path_style
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Refresh.DryRun, Create.Force (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use TRIALWH_ prefix with underscores for nesting:
//
//	TRIALWH_DATABASE_DRIVER=sqlite
//	TRIALWH_DATABASE_HOST=localhost
//	TRIALWH_LOG_LEVEL=info
//	TRIALWH_METRICS_PUSH_URL=http://localhost:9091
package config

import (
	"runtime"
)

// Config represents the complete trialwh configuration.
type Config struct {
	// Database contains warehouse connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Refresh contains settings of the staging and warehouse refresh.
	Refresh RefreshConfig `mapstructure:"refresh" yaml:"refresh"`

	// Metrics configures the optional Prometheus Pushgateway export.
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`

	// S3 configures access to snapshots kept in S3 compatible storage.
	S3 S3Config `mapstructure:"s3" yaml:"s3"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for read-only
	// operations such as quality reports. The refresh itself is always
	// sequential.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains warehouse connection parameters.
type DatabaseConfig struct {
	// Driver selects the warehouse backend.
	// Valid values: "postgres", "sqlite".
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// SQLitePath is the path to the SQLite warehouse file. Relative paths
	// are resolved against the current directory. Used only when Driver is
	// "sqlite".
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`

	// BatchSize is the number of rows sent to the database per insert
	// statement (SQLite) or per COPY chunk (PostgreSQL).
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// RefreshConfig contains settings of the refresh command.
type RefreshConfig struct {
	// Snapshot is an optional location of a JSON extraction snapshot
	// (local path or s3://bucket/key). When empty, raw records are read
	// from the raw_trials table.
	Snapshot string `mapstructure:"snapshot" yaml:"snapshot"`

	// RequiredColumns are the staging trial columns used for the
	// required-column completeness of the quality report.
	RequiredColumns []string `mapstructure:"required_columns" yaml:"required_columns"`

	// DryRun builds staging and warehouse sets without writing them.
	DryRun bool `mapstructure:"dry_run" yaml:"-"`
}

// MetricsConfig contains Prometheus Pushgateway settings.
type MetricsConfig struct {
	// PushURL is the Pushgateway base URL. Empty disables pushing.
	PushURL string `mapstructure:"push_url" yaml:"push_url"`

	// JobName is the Pushgateway job grouping key.
	JobName string `mapstructure:"job_name" yaml:"job_name"`
}

// S3Config contains settings for reading snapshots from S3 or MinIO.
type S3Config struct {
	// Region is the AWS region. Empty means the SDK default chain.
	Region string `mapstructure:"region" yaml:"region"`

	// Endpoint overrides the S3 endpoint (MinIO, localstack).
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`

	// UsePathStyle forces path-style bucket addressing.
	UsePathStyle bool `mapstructure:"use_path_style" yaml:"use_path_style"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Driver:     "postgres",
			Host:       "localhost",
			Port:       5432,
			User:       "postgres",
			Password:   "postgres",
			Database:   "clinical_trials",
			SSLMode:    "disable",
			SQLitePath: "clinical_trials.db",
			BatchSize:  1_000,
		},
		Refresh: RefreshConfig{
			RequiredColumns: []string{"nct_id", "brief_title", "sponsor_id"},
		},
		Metrics: MetricsConfig{
			JobName: "trialwh",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
