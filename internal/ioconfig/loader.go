// Package ioconfig loads trialwh configuration from config.yaml and
// TRIALWH_* environment variables. This is an impure package that reads
// the file system and the environment.
package ioconfig

import (
	"os"
	"strings"

	"github.com/gnames/trialwh/internal/iofs"
	"github.com/gnames/trialwh/pkg/config"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables that override
// config.yaml values.
const EnvPrefix = "TRIALWH"

// Load reads the config file at path and applies environment overrides.
// An empty path means the default ~/.config/trialwh/config.yaml. A missing
// default file is not an error, defaults and environment are used then.
//
// Values go through config Option functions, so invalid values are
// reported with a warning and replaced by defaults.
func Load(homeDir, path string) (*config.Config, error) {
	explicit := path != ""
	if !explicit {
		path = config.ConfigFilePath(homeDir)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	initEnvVars(v)

	if _, err := os.Stat(path); err == nil || explicit {
		v.SetConfigFile(path)
		if err = v.ReadInConfig(); err != nil {
			return nil, iofs.ReadFileError(path, err)
		}
	}

	var cfgViper config.Config
	if err := v.Unmarshal(&cfgViper); err != nil {
		return nil, iofs.ReadFileError(path, err)
	}

	res := config.New()
	res.Update(cfgViper.ToOptions())
	res.Update([]config.Option{config.OptHomeDir(homeDir)})
	return res, nil
}

// HasEnvVars checks if any TRIALWH_* environment variable is set.
func HasEnvVars() bool {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, EnvPrefix+"_") {
			return true
		}
	}
	return false
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	v.BindEnv("database.driver", "TRIALWH_DATABASE_DRIVER")
	v.BindEnv("database.host", "TRIALWH_DATABASE_HOST")
	v.BindEnv("database.port", "TRIALWH_DATABASE_PORT")
	v.BindEnv("database.user", "TRIALWH_DATABASE_USER")
	v.BindEnv("database.password", "TRIALWH_DATABASE_PASSWORD")
	v.BindEnv("database.database", "TRIALWH_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "TRIALWH_DATABASE_SSL_MODE")
	v.BindEnv("database.sqlite_path", "TRIALWH_DATABASE_SQLITE_PATH")
	v.BindEnv("database.batch_size", "TRIALWH_DATABASE_BATCH_SIZE")

	// Refresh configuration
	v.BindEnv("refresh.snapshot", "TRIALWH_REFRESH_SNAPSHOT")
	v.BindEnv("refresh.required_columns", "TRIALWH_REFRESH_REQUIRED_COLUMNS")

	// Metrics configuration
	v.BindEnv("metrics.push_url", "TRIALWH_METRICS_PUSH_URL")
	v.BindEnv("metrics.job_name", "TRIALWH_METRICS_JOB_NAME")

	// S3 configuration
	v.BindEnv("s3.region", "TRIALWH_S3_REGION")
	v.BindEnv("s3.endpoint", "TRIALWH_S3_ENDPOINT")
	v.BindEnv("s3.use_path_style", "TRIALWH_S3_USE_PATH_STYLE")

	// Log configuration
	v.BindEnv("log.level", "TRIALWH_LOG_LEVEL")
	v.BindEnv("log.format", "TRIALWH_LOG_FORMAT")
	v.BindEnv("log.destination", "TRIALWH_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "TRIALWH_JOBS_NUMBER")

	v.AutomaticEnv()
}
