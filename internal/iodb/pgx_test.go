package iodb_test

import (
	"context"
	"testing"

	"github.com/gnames/trialwh/internal/iodb"
	"github.com/gnames/trialwh/internal/iotesting"
	"github.com/gnames/trialwh/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// PostgreSQL tests need a trialwh_test database. Connection settings come
// from TRIALWH_DATABASE_* variables or config.yaml. They are skipped in
// short mode or when the database is unreachable.

func pgOp(t *testing.T) db.Operator {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	op := iodb.NewPgxOperator()
	err := op.Connect(context.Background(), iotesting.GetTestDatabaseConfig(t))
	if err != nil {
		t.Skipf("PostgreSQL is not available: %v", err)
	}
	t.Cleanup(func() { op.Close() })
	return op
}

func TestPgxConnectInvalidHost(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	op := iodb.NewPgxOperator()
	cfg := iotesting.GetTestDatabaseConfig(t)
	cfg.Host = "invalid-host-that-does-not-exist"

	err := op.Connect(context.Background(), cfg)
	assert.Error(t, err)
}

func TestPgxRefresh(t *testing.T) {
	op := pgOp(t)
	ctx := context.Background()

	require.NoError(t, op.DropTables(ctx, "iodb_items"))
	require.NoError(t, op.Exec(ctx,
		"CREATE TABLE iodb_items (id INTEGER PRIMARY KEY, name TEXT)"))
	t.Cleanup(func() { op.DropTables(ctx, "iodb_items") })

	exists, err := op.TableExists(ctx, "iodb_items")
	require.NoError(t, err)
	assert.True(t, exists)

	b := db.Batch{
		Table:   "iodb_items",
		Columns: []string{"id", "name"},
		Rows:    [][]any{{1, "one"}, {2, nil}},
	}
	require.NoError(t, op.Refresh(ctx, b))
	require.NoError(t, op.Refresh(ctx, b))

	var n int
	err = op.Select(ctx, "iodb_items", []string{"id"},
		func(scan db.ScanFunc) error {
			var id int
			n++
			return scan(&id)
		})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	pool, ok := iodb.PoolOf(op)
	assert.True(t, ok)
	assert.NotNil(t, pool)
}
