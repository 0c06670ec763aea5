package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// generateDDL creates a CREATE TABLE statement from struct tags.
// Column types are kept to the subset that PostgreSQL and SQLite share.
func generateDDL(model any, tableName string) string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var columns []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")

		if dbTag != "" && ddlTag != "" {
			columns = append(columns, fmt.Sprintf("    %s %s", dbTag, ddlTag))
		}
	}

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n);",
		tableName,
		strings.Join(columns, ",\n"))

	return ddl
}

// RawTrial DDL methods
func (r RawTrial) TableDDL() string {
	return generateDDL(r, r.TableName())
}

func (r RawTrial) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_raw_trials_nct_id ON raw_trials(nct_id);",
	}
}

func (r RawTrial) TableName() string {
	return "raw_trials"
}

// StgSponsor DDL methods
func (s StgSponsor) TableDDL() string {
	return generateDDL(s, s.TableName())
}

func (s StgSponsor) IndexDDL() []string {
	return []string{}
}

func (s StgSponsor) TableName() string {
	return "stg_sponsors"
}

// StgLocation DDL methods
func (s StgLocation) TableDDL() string {
	return generateDDL(s, s.TableName())
}

func (s StgLocation) IndexDDL() []string {
	return []string{}
}

func (s StgLocation) TableName() string {
	return "stg_locations"
}

// StgCondition DDL methods
func (s StgCondition) TableDDL() string {
	return generateDDL(s, s.TableName())
}

func (s StgCondition) IndexDDL() []string {
	return []string{}
}

func (s StgCondition) TableName() string {
	return "stg_conditions"
}

// StgIntervention DDL methods
func (s StgIntervention) TableDDL() string {
	return generateDDL(s, s.TableName())
}

func (s StgIntervention) IndexDDL() []string {
	return []string{}
}

func (s StgIntervention) TableName() string {
	return "stg_interventions"
}

// StagingTrial DDL methods
func (s StagingTrial) TableDDL() string {
	return generateDDL(s, s.TableName())
}

func (s StagingTrial) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_stg_trials_sponsor ON stg_trials(sponsor_id);",
		"CREATE INDEX IF NOT EXISTS idx_stg_trials_condition ON stg_trials(condition_id);",
	}
}

func (s StagingTrial) TableName() string {
	return "stg_trials"
}

// DimSponsor DDL methods
func (d DimSponsor) TableDDL() string {
	return generateDDL(d, d.TableName())
}

func (d DimSponsor) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_dim_sponsor_type ON dim_sponsor(sponsor_type);",
	}
}

func (d DimSponsor) TableName() string {
	return "dim_sponsor"
}

// DimLocation DDL methods
func (d DimLocation) TableDDL() string {
	return generateDDL(d, d.TableName())
}

func (d DimLocation) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_dim_location_country ON dim_location(country, state);",
	}
}

func (d DimLocation) TableName() string {
	return "dim_location"
}

// DimCondition DDL methods
func (d DimCondition) TableDDL() string {
	return generateDDL(d, d.TableName())
}

func (d DimCondition) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_dim_condition_category ON dim_condition(condition_category);",
	}
}

func (d DimCondition) TableName() string {
	return "dim_condition"
}

// DimIntervention DDL methods
func (d DimIntervention) TableDDL() string {
	return generateDDL(d, d.TableName())
}

func (d DimIntervention) IndexDDL() []string {
	return []string{}
}

func (d DimIntervention) TableName() string {
	return "dim_intervention"
}

// DimDate DDL methods
func (d DimDate) TableDDL() string {
	return generateDDL(d, d.TableName())
}

func (d DimDate) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_dim_dates_year ON dim_dates(year, month_number);",
	}
}

func (d DimDate) TableName() string {
	return "dim_dates"
}

// FactTrial DDL methods
func (f FactTrial) TableDDL() string {
	return generateDDL(f, f.TableName())
}

// IndexDDL of fact_trials is left to the optimize step, bulk loads are
// faster without them.
func (f FactTrial) IndexDDL() []string {
	return []string{}
}

func (f FactTrial) TableName() string {
	return "fact_trials"
}

// ETLRun DDL methods
func (e ETLRun) TableDDL() string {
	return generateDDL(e, e.TableName())
}

func (e ETLRun) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_etl_runs_started ON etl_runs(started_at);",
	}
}

func (e ETLRun) TableName() string {
	return "etl_runs"
}
