package ioquality_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/gnames/trialwh/internal/iodb"
	"github.com/gnames/trialwh/internal/ioquality"
	"github.com/gnames/trialwh/internal/iorefresh"
	"github.com/gnames/trialwh/internal/ioschema"
	"github.com/gnames/trialwh/internal/iotesting"
	"github.com/gnames/trialwh/pkg/config"
	"github.com/gnames/trialwh/pkg/db"
	"github.com/gnames/trialwh/pkg/quality"
	"github.com/gnames/trialwh/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func loaded(t *testing.T) (*config.Config, db.Operator) {
	t.Helper()
	ctx := context.Background()
	cfg := iotesting.SQLiteConfig(t)
	cfg.Update([]config.Option{config.OptJobsNumber(2)})
	op := iodb.NewSQLiteOperator()
	require.NoError(t, op.Connect(ctx, &cfg.Database))
	t.Cleanup(func() { op.Close() })
	require.NoError(t, ioschema.NewManager(op).Create(ctx, false))

	raw := []schema.RawTrial{
		{RowNum: 1, NctID: str("NCT1"), BriefTitle: str("one"),
			LeadSponsorName: str("Acme Inc")},
		{RowNum: 2, NctID: str("NCT2")},
	}
	require.NoError(t, op.Refresh(ctx, db.Batch{
		Table:   "raw_trials",
		Columns: schema.Columns(schema.RawTrial{}),
		Rows:    schema.Rows(raw),
	}))
	_, err := iorefresh.New(cfg, op, nil).Refresh(ctx)
	require.NoError(t, err)
	return cfg, op
}

func byTable(reps []quality.Report) map[string]quality.Report {
	res := make(map[string]quality.Report)
	for _, r := range reps {
		res[r.Table] = r
	}
	return res
}

func TestCheck(t *testing.T) {
	cfg, op := loaded(t)

	reps, err := ioquality.New(cfg, op).Check(context.Background())
	require.NoError(t, err)
	require.Len(t, reps, len(schema.TableNames())-1)
	assert.Equal(t, "raw_trials", reps[0].Table)

	m := byTable(reps)
	raw := m["raw_trials"]
	assert.Equal(t, 2, raw.TotalRows)
	// brief_title is missing in one of two rows
	assert.Equal(t, 75.0, raw.Completeness)

	stg := m["stg_trials"]
	assert.Equal(t, 2, stg.TotalRows)
	// staging keys are never empty
	assert.Equal(t, 83.33, stg.Completeness)

	_, ok := m["etl_runs"]
	assert.False(t, ok)
}

func TestCheckMissingTable(t *testing.T) {
	cfg, op := loaded(t)
	require.NoError(t, op.DropTables(context.Background(), "dim_dates"))

	reps, err := ioquality.New(cfg, op).Check(context.Background())
	require.NoError(t, err)
	_, ok := byTable(reps)["dim_dates"]
	assert.False(t, ok)
	assert.Len(t, reps, len(schema.TableNames())-2)
}
