package schema_test

import (
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/gnames/trialwh/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gschema "gorm.io/gorm/schema"
)

// TestRawTrialTableDDL tests DDL generation for RawTrial model
func TestRawTrialTableDDL(t *testing.T) {
	r := schema.RawTrial{}
	ddl := r.TableDDL()

	assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS raw_trials")
	assert.Contains(t, ddl, "row_num INTEGER PRIMARY KEY")
	assert.Contains(t, ddl, "nct_id TEXT")
	assert.Contains(t, ddl, "enrollment_count BIGINT")
	assert.Contains(t, ddl, "study_start_date TEXT")
}

// TestFactTrialTableDDL tests DDL generation for FactTrial model
func TestFactTrialTableDDL(t *testing.T) {
	f := schema.FactTrial{}
	ddl := f.TableDDL()

	assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS fact_trials")
	assert.Contains(t, ddl, "trial_key INTEGER PRIMARY KEY")
	assert.Contains(t, ddl, "sponsor_key INTEGER,")
	assert.Contains(t, ddl, "start_date_key INTEGER")
	assert.Contains(t, ddl, "enrollment_target_met BOOLEAN NOT NULL")
	assert.Empty(t, f.IndexDDL())
}

// TestTableNames checks table names that reporting queries rely on.
func TestTableNames(t *testing.T) {
	assert.Equal(t, []string{
		"raw_trials",
		"stg_sponsors",
		"stg_locations",
		"stg_conditions",
		"stg_interventions",
		"stg_trials",
		"dim_sponsor",
		"dim_location",
		"dim_condition",
		"dim_intervention",
		"dim_dates",
		"fact_trials",
		"etl_runs",
	}, schema.TableNames())
}

// TestAllModelsDDL makes sure every model produces a table and valid
// index statements.
func TestAllModelsDDL(t *testing.T) {
	for _, m := range schema.AllModels() {
		ddl := m.TableDDL()
		assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS "+m.TableName(),
			m.TableName())
		for _, idx := range m.IndexDDL() {
			assert.Contains(t, idx, "ON "+m.TableName()+"(")
		}
	}
}

// TestGORMColumnNames checks that GORM naming gives the same columns as
// db tags, so AutoMigrate and bulk inserts agree.
func TestGORMColumnNames(t *testing.T) {
	cache := &sync.Map{}
	for _, m := range schema.AllModels() {
		s, err := gschema.Parse(m, cache, gschema.NamingStrategy{})
		require.NoError(t, err, m.TableName())
		assert.Equal(t, m.TableName(), s.Table)

		var cols []string
		for _, f := range s.Fields {
			if f.DBName != "" {
				cols = append(cols, f.DBName)
			}
		}
		assert.Equal(t, schema.Columns(m), cols, m.TableName())
	}
}

func TestColumnsValues(t *testing.T) {
	d := schema.DimDate{
		DateKey:     20230115,
		FullDate:    time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
		Year:        2023,
		Quarter:     1,
		MonthNumber: 1,
		MonthName:   "January",
		Day:         15,
	}
	cols := schema.Columns(d)
	assert.Equal(t, []string{"date_key", "full_date", "year", "quarter",
		"month_number", "month_name", "day"}, cols)

	vals := schema.Values(&d)
	require.Len(t, vals, len(cols))
	assert.Equal(t, 20230115, vals[0])
	assert.Equal(t, "January", vals[5])
}

func TestValuesUnwrapNulls(t *testing.T) {
	s := schema.StgSponsor{
		SponsorID:   "SPONSOR_acme",
		SponsorName: sql.NullString{String: "Acme", Valid: true},
		SponsorType: "Industry",
		Country:     "Unknown",
	}
	vals := schema.Values(s)
	assert.Equal(t, []any{"SPONSOR_acme", "Acme", nil, "Industry", "Unknown"},
		vals)

	rows := schema.Rows([]schema.StgSponsor{s, s})
	assert.Len(t, rows, 2)
	assert.Equal(t, vals, rows[1])
}

func TestScanTargets(t *testing.T) {
	var r schema.RawTrial
	targets := schema.ScanTargets(&r)
	assert.Len(t, targets, len(schema.Columns(r)))

	rowNum, ok := targets[0].(*int)
	require.True(t, ok)
	*rowNum = 7
	nct, ok := targets[1].(*sql.NullString)
	require.True(t, ok)
	require.NoError(t, nct.Scan("NCT001"))

	assert.Equal(t, 7, r.RowNum)
	assert.Equal(t, "NCT001", r.NctID.String)
}

func TestViews(t *testing.T) {
	assert.Equal(t, []string{
		"v_sponsor_rollup",
		"v_condition_rollup",
		"v_location_rollup",
		"v_monthly_activity",
	}, schema.ViewNames())

	for _, v := range schema.Views() {
		assert.Contains(t, v.Query, "fact_trials", v.Name)
	}
	for _, q := range schema.FactIndexDDL() {
		assert.Contains(t, q, "ON fact_trials(")
	}
}
