package lifecycle

import (
	"context"
)

// Optimizer prepares a loaded warehouse for reporting.
//
// Optimization is idempotent: it creates fact foreign key indexes and
// roll-up views if they are missing, replaces views whose definition
// changed, and refreshes planner statistics.
type Optimizer interface {
	Optimize(ctx context.Context) error
}
