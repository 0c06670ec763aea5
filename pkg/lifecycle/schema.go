// Package lifecycle defines the stages of the warehouse life: schema
// management, snapshot import, refresh, quality check and optimization.
// Implementations live in internal/io* packages.
package lifecycle

import (
	"context"
)

// SchemaManager creates and migrates warehouse tables.
// Both operations are safe to run multiple times.
type SchemaManager interface {
	// Create creates all tables and indexes. If warehouse tables exist
	// already, Create fails unless force is true, in which case existing
	// tables are dropped first.
	Create(ctx context.Context, force bool) error

	// Migrate updates tables to the current models keeping their data.
	Migrate(ctx context.Context) error
}

// Importer loads an extraction snapshot into the raw_trials table,
// replacing its previous content.
type Importer interface {
	// Import reads the snapshot at source (local path or s3://bucket/key)
	// and returns the number of stored raw records.
	Import(ctx context.Context, source string) (int, error)
}
