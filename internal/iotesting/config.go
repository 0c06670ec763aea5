// Package iotesting provides shared test utilities for trialwh packages.
// It is used only by tests.
package iotesting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/trialwh/internal/ioconfig"
	"github.com/gnames/trialwh/pkg/config"
)

const (
	// TestDatabaseName is the PostgreSQL database used by integration tests.
	// Tests never run against the configured production database.
	TestDatabaseName = "trialwh_test"
)

// GetTestConfig returns configuration for integration tests. It loads
// config.yaml of the user (or defaults) with TRIALWH_* overrides and
// replaces the database name with TestDatabaseName.
//
//	func TestSomething(t *testing.T) {
//	    if testing.Short() {
//	        t.Skip("Skipping integration test")
//	    }
//	    cfg := iotesting.GetTestConfig(t)
//	    // ...
//	}
func GetTestConfig(t *testing.T) *config.Config {
	t.Helper()

	home, err := os.UserHomeDir()
	if err != nil {
		home = t.TempDir()
	}

	cfg, err := ioconfig.Load(home, "")
	if err != nil {
		t.Logf("Cannot load config, using defaults: %v", err)
		cfg = config.New()
		cfg.Update([]config.Option{config.OptHomeDir(home)})
	}

	cfg.Database.Database = TestDatabaseName
	return cfg
}

// GetTestDatabaseConfig returns PostgreSQL settings of GetTestConfig.
func GetTestDatabaseConfig(t *testing.T) *config.DatabaseConfig {
	t.Helper()
	cfg := GetTestConfig(t)
	cfg.Database.Driver = "postgres"
	return &cfg.Database
}

// SQLiteConfig returns a default configuration that points to a fresh
// SQLite warehouse in a temporary directory. The temporary directory is
// also used as HomeDir.
func SQLiteConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(dir),
		config.OptDatabaseDriver("sqlite"),
		config.OptDatabaseSQLitePath(filepath.Join(dir, "trialwh_test.db")),
	})
	return cfg
}

// WriteFile writes content to name inside dir and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}
