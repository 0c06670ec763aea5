// Package schema provides database models of the trialwh warehouse.
// Column names are the contract with downstream reporting queries.
package schema

import (
	"database/sql"
	"time"
)

// DDLGenerator defines how Go models generate DDL.
type DDLGenerator interface {
	// TableDDL returns the CREATE TABLE statement for this model.
	TableDDL() string

	// IndexDDL returns CREATE INDEX statements for this model.
	// Returns empty slice if no indexes needed.
	IndexDDL() []string

	// TableName returns the table name for this model.
	TableName() string
}

// RawTrial is one trial as delivered by the extraction job. Values are
// loosely typed text, dates are kept as they came.
type RawTrial struct {
	// RowNum keeps the order of the snapshot. Duplicates are resolved by it.
	RowNum int `db:"row_num" ddl:"INTEGER PRIMARY KEY" gorm:"primaryKey;autoIncrement:false"`

	// NctID is the registry identifier of the trial (NCT number).
	NctID sql.NullString `db:"nct_id" ddl:"TEXT"`

	BriefTitle    sql.NullString `db:"brief_title" ddl:"TEXT"`
	OfficialTitle sql.NullString `db:"official_title" ddl:"TEXT"`

	LeadSponsorName  sql.NullString `db:"lead_sponsor_name" ddl:"TEXT"`
	LeadSponsorClass sql.NullString `db:"lead_sponsor_class" ddl:"TEXT"`

	// Condition, InterventionName and InterventionType can be "; " joined
	// lists.
	Condition        sql.NullString `db:"condition" ddl:"TEXT"`
	InterventionName sql.NullString `db:"intervention_name" ddl:"TEXT"`
	InterventionType sql.NullString `db:"intervention_type" ddl:"TEXT"`

	Phase           sql.NullString `db:"phase" ddl:"TEXT"`
	EnrollmentCount sql.NullInt64  `db:"enrollment_count" ddl:"BIGINT"`

	StudyStartDate        sql.NullString `db:"study_start_date" ddl:"TEXT"`
	PrimaryCompletionDate sql.NullString `db:"primary_completion_date" ddl:"TEXT"`
	StudyCompletionDate   sql.NullString `db:"study_completion_date" ddl:"TEXT"`

	Status sql.NullString `db:"status" ddl:"TEXT"`

	LocationCountry  sql.NullString `db:"location_country" ddl:"TEXT"`
	LocationState    sql.NullString `db:"location_state" ddl:"TEXT"`
	LocationCity     sql.NullString `db:"location_city" ddl:"TEXT"`
	LocationFacility sql.NullString `db:"location_facility" ddl:"TEXT"`

	// Location is a free-text "City, State, Country" value used by older
	// extracts instead of the separate location columns.
	Location sql.NullString `db:"location" ddl:"TEXT"`

	StudyType                 sql.NullString `db:"study_type" ddl:"TEXT"`
	Allocation                sql.NullString `db:"allocation" ddl:"TEXT"`
	InterventionModel         sql.NullString `db:"intervention_model" ddl:"TEXT"`
	PrimaryPurpose            sql.NullString `db:"primary_purpose" ddl:"TEXT"`
	MaskingInfo               sql.NullString `db:"masking_info" ddl:"TEXT"`
	OutcomeMeasureDescription sql.NullString `db:"outcome_measure_description" ddl:"TEXT"`
}

// StgSponsor is a deduplicated sponsor keyed by its natural key.
type StgSponsor struct {
	SponsorID    string         `db:"sponsor_id" ddl:"TEXT PRIMARY KEY" gorm:"primaryKey"`
	SponsorName  sql.NullString `db:"sponsor_name" ddl:"TEXT"`
	SponsorClass sql.NullString `db:"sponsor_class" ddl:"TEXT"`
	SponsorType  string         `db:"sponsor_type" ddl:"TEXT NOT NULL"`
	Country      string         `db:"country" ddl:"TEXT NOT NULL"`
}

// StgLocation is a location keyed by its natural key.
type StgLocation struct {
	LocationID string         `db:"location_id" ddl:"TEXT PRIMARY KEY" gorm:"primaryKey"`
	City       sql.NullString `db:"city" ddl:"TEXT"`
	State      sql.NullString `db:"state" ddl:"TEXT"`
	Country    sql.NullString `db:"country" ddl:"TEXT"`
	Facility   sql.NullString `db:"facility" ddl:"TEXT"`
}

// StgCondition is a deduplicated condition.
type StgCondition struct {
	ConditionID       string         `db:"condition_id" ddl:"TEXT PRIMARY KEY" gorm:"primaryKey"`
	ConditionName     sql.NullString `db:"condition_name" ddl:"TEXT"`
	ConditionCategory string         `db:"condition_category" ddl:"TEXT NOT NULL"`
}

// StgIntervention is a deduplicated intervention.
type StgIntervention struct {
	InterventionID   string         `db:"intervention_id" ddl:"TEXT PRIMARY KEY" gorm:"primaryKey"`
	InterventionName sql.NullString `db:"intervention_name" ddl:"TEXT"`
	InterventionType string         `db:"intervention_type" ddl:"TEXT NOT NULL"`
}

// StagingTrial is a cleaned trial that refers to staging dimensions by
// natural keys. The keys are never empty.
type StagingTrial struct {
	NctID         string         `db:"nct_id" ddl:"TEXT PRIMARY KEY" gorm:"primaryKey"`
	BriefTitle    sql.NullString `db:"brief_title" ddl:"TEXT"`
	OfficialTitle sql.NullString `db:"official_title" ddl:"TEXT"`

	SponsorID      string `db:"sponsor_id" ddl:"TEXT NOT NULL"`
	LocationID     string `db:"location_id" ddl:"TEXT NOT NULL"`
	ConditionID    string `db:"condition_id" ddl:"TEXT NOT NULL"`
	InterventionID string `db:"intervention_id" ddl:"TEXT NOT NULL"`

	Phase             string        `db:"phase" ddl:"TEXT NOT NULL"`
	PhaseNumber       sql.NullInt32 `db:"phase_number" ddl:"INTEGER"`
	Status            string        `db:"status" ddl:"TEXT NOT NULL"`
	StudyType         string        `db:"study_type" ddl:"TEXT NOT NULL"`
	Allocation        string        `db:"allocation" ddl:"TEXT NOT NULL"`
	InterventionModel string        `db:"intervention_model" ddl:"TEXT NOT NULL"`
	PrimaryPurpose    string        `db:"primary_purpose" ddl:"TEXT NOT NULL"`
	MaskingInfo       string        `db:"masking_info" ddl:"TEXT NOT NULL"`

	EnrollmentCount    sql.NullInt64 `db:"enrollment_count" ddl:"BIGINT"`
	EnrollmentCategory string        `db:"enrollment_category" ddl:"TEXT NOT NULL"`

	StudyStartDate        sql.NullTime  `db:"study_start_date" ddl:"DATE" gorm:"type:date"`
	PrimaryCompletionDate sql.NullTime  `db:"primary_completion_date" ddl:"DATE" gorm:"type:date"`
	StudyCompletionDate   sql.NullTime  `db:"study_completion_date" ddl:"DATE" gorm:"type:date"`
	DurationDays          sql.NullInt32 `db:"duration_days" ddl:"INTEGER"`

	// DataCompletenessScore is 100, 50 or 0 depending on how many of title,
	// sponsor and condition are known.
	DataCompletenessScore float64 `db:"data_completeness_score" ddl:"DOUBLE PRECISION NOT NULL"`

	// DataQualityScore mixes completeness with date, enrollment and phase
	// plausibility, 0 to 100.
	DataQualityScore float64 `db:"data_quality_score" ddl:"DOUBLE PRECISION NOT NULL"`
}

// DimSponsor is a warehouse sponsor.
type DimSponsor struct {
	SponsorKey   int            `db:"sponsor_key" ddl:"INTEGER PRIMARY KEY" gorm:"primaryKey;autoIncrement:false"`
	SponsorID    string         `db:"sponsor_id" ddl:"TEXT NOT NULL UNIQUE" gorm:"uniqueIndex"`
	SponsorName  sql.NullString `db:"sponsor_name" ddl:"TEXT"`
	SponsorType  string         `db:"sponsor_type" ddl:"TEXT NOT NULL"`
	Country      string         `db:"country" ddl:"TEXT NOT NULL"`
	IsIndustry   bool           `db:"is_industry" ddl:"BOOLEAN NOT NULL"`
	IsAcademic   bool           `db:"is_academic" ddl:"BOOLEAN NOT NULL"`
	IsGovernment bool           `db:"is_government" ddl:"BOOLEAN NOT NULL"`
}

// DimLocation is a warehouse location. Latitude and Longitude stay empty
// until a geocoder fills them.
type DimLocation struct {
	LocationKey int             `db:"location_key" ddl:"INTEGER PRIMARY KEY" gorm:"primaryKey;autoIncrement:false"`
	LocationID  string          `db:"location_id" ddl:"TEXT NOT NULL UNIQUE" gorm:"uniqueIndex"`
	City        sql.NullString  `db:"city" ddl:"TEXT"`
	State       sql.NullString  `db:"state" ddl:"TEXT"`
	Country     sql.NullString  `db:"country" ddl:"TEXT"`
	Region      string          `db:"region" ddl:"TEXT NOT NULL"`
	Continent   string          `db:"continent" ddl:"TEXT NOT NULL"`
	Timezone    string          `db:"timezone" ddl:"TEXT NOT NULL"`
	Latitude    sql.NullFloat64 `db:"latitude" ddl:"DOUBLE PRECISION"`
	Longitude   sql.NullFloat64 `db:"longitude" ddl:"DOUBLE PRECISION"`
}

// DimCondition is a warehouse condition.
type DimCondition struct {
	ConditionKey       int            `db:"condition_key" ddl:"INTEGER PRIMARY KEY" gorm:"primaryKey;autoIncrement:false"`
	ConditionID        string         `db:"condition_id" ddl:"TEXT NOT NULL UNIQUE" gorm:"uniqueIndex"`
	ConditionName      sql.NullString `db:"condition_name" ddl:"TEXT"`
	ConditionCategory  string         `db:"condition_category" ddl:"TEXT NOT NULL"`
	ConditionType      string         `db:"condition_type" ddl:"TEXT NOT NULL"`
	IsRare             bool           `db:"is_rare" ddl:"BOOLEAN NOT NULL"`
	PrevalenceCategory string         `db:"prevalence_category" ddl:"TEXT NOT NULL"`
}

// DimIntervention is a warehouse intervention.
type DimIntervention struct {
	InterventionKey      int            `db:"intervention_key" ddl:"INTEGER PRIMARY KEY" gorm:"primaryKey;autoIncrement:false"`
	InterventionID       string         `db:"intervention_id" ddl:"TEXT NOT NULL UNIQUE" gorm:"uniqueIndex"`
	InterventionName     sql.NullString `db:"intervention_name" ddl:"TEXT"`
	InterventionType     string         `db:"intervention_type" ddl:"TEXT NOT NULL"`
	InterventionCategory string         `db:"intervention_category" ddl:"TEXT NOT NULL"`
	DrugName             sql.NullString `db:"drug_name" ddl:"TEXT"`
	DeviceName           sql.NullString `db:"device_name" ddl:"TEXT"`
	ProcedureName        sql.NullString `db:"procedure_name" ddl:"TEXT"`
	IsDrug               bool           `db:"is_drug" ddl:"BOOLEAN NOT NULL"`
	IsDevice             bool           `db:"is_device" ddl:"BOOLEAN NOT NULL"`
	IsProcedure          bool           `db:"is_procedure" ddl:"BOOLEAN NOT NULL"`
	IsBehavioral         bool           `db:"is_behavioral" ddl:"BOOLEAN NOT NULL"`
}

// DimDate is a calendar day referenced by trial start and completion.
type DimDate struct {
	// DateKey is the yyyymmdd integer of the day.
	DateKey     int       `db:"date_key" ddl:"INTEGER PRIMARY KEY" gorm:"primaryKey;autoIncrement:false"`
	FullDate    time.Time `db:"full_date" ddl:"DATE NOT NULL" gorm:"type:date"`
	Year        int       `db:"year" ddl:"INTEGER NOT NULL"`
	Quarter     int       `db:"quarter" ddl:"INTEGER NOT NULL"`
	MonthNumber int       `db:"month_number" ddl:"INTEGER NOT NULL"`
	MonthName   string    `db:"month_name" ddl:"TEXT NOT NULL"`
	Day         int       `db:"day" ddl:"INTEGER NOT NULL"`
}

// FactTrial is one trial of the warehouse. Dimension keys are null when
// the natural key has no loaded dimension row.
type FactTrial struct {
	TrialKey int    `db:"trial_key" ddl:"INTEGER PRIMARY KEY" gorm:"primaryKey;autoIncrement:false"`
	NctID    string `db:"nct_id" ddl:"TEXT NOT NULL UNIQUE" gorm:"uniqueIndex"`

	SponsorKey        sql.NullInt64 `db:"sponsor_key" ddl:"INTEGER"`
	LocationKey       sql.NullInt64 `db:"location_key" ddl:"INTEGER"`
	ConditionKey      sql.NullInt64 `db:"condition_key" ddl:"INTEGER"`
	InterventionKey   sql.NullInt64 `db:"intervention_key" ddl:"INTEGER"`
	StartDateKey      sql.NullInt64 `db:"start_date_key" ddl:"INTEGER"`
	CompletionDateKey sql.NullInt64 `db:"completion_date_key" ddl:"INTEGER"`

	BriefTitle          sql.NullString `db:"brief_title" ddl:"TEXT"`
	Phase               string         `db:"phase" ddl:"TEXT NOT NULL"`
	PhaseNumber         sql.NullInt32  `db:"phase_number" ddl:"INTEGER"`
	Status              string         `db:"status" ddl:"TEXT NOT NULL"`
	StudyType           string         `db:"study_type" ddl:"TEXT NOT NULL"`
	EnrollmentCount     sql.NullInt64  `db:"enrollment_count" ddl:"BIGINT"`
	EnrollmentCategory  string         `db:"enrollment_category" ddl:"TEXT NOT NULL"`
	StudyStartDate      sql.NullTime   `db:"study_start_date" ddl:"DATE" gorm:"type:date"`
	StudyCompletionDate sql.NullTime   `db:"study_completion_date" ddl:"DATE" gorm:"type:date"`
	DurationDays        sql.NullInt32  `db:"duration_days" ddl:"INTEGER"`

	EnrollmentTargetMet bool `db:"enrollment_target_met" ddl:"BOOLEAN NOT NULL"`
	IsCompleted         bool `db:"is_completed" ddl:"BOOLEAN NOT NULL"`
	IsTerminated        bool `db:"is_terminated" ddl:"BOOLEAN NOT NULL"`
	IsRecruiting        bool `db:"is_recruiting" ddl:"BOOLEAN NOT NULL"`

	DataCompletenessScore float64 `db:"data_completeness_score" ddl:"DOUBLE PRECISION NOT NULL"`
	DataQualityScore      float64 `db:"data_quality_score" ddl:"DOUBLE PRECISION NOT NULL"`
}

// ETLRun is the audit record of one refresh.
type ETLRun struct {
	RunID      string    `db:"run_id" ddl:"TEXT PRIMARY KEY" gorm:"primaryKey"`
	StartedAt  time.Time `db:"started_at" ddl:"TIMESTAMP NOT NULL"`
	FinishedAt time.Time `db:"finished_at" ddl:"TIMESTAMP NOT NULL"`
	Status     string    `db:"status" ddl:"TEXT NOT NULL"`

	RawCount          int `db:"raw_count" ddl:"INTEGER NOT NULL"`
	InvalidCount      int `db:"invalid_count" ddl:"INTEGER NOT NULL"`
	DuplicateCount    int `db:"duplicate_count" ddl:"INTEGER NOT NULL"`
	TrialCount        int `db:"trial_count" ddl:"INTEGER NOT NULL"`
	SponsorCount      int `db:"sponsor_count" ddl:"INTEGER NOT NULL"`
	LocationCount     int `db:"location_count" ddl:"INTEGER NOT NULL"`
	ConditionCount    int `db:"condition_count" ddl:"INTEGER NOT NULL"`
	InterventionCount int `db:"intervention_count" ddl:"INTEGER NOT NULL"`
	DateCount         int `db:"date_count" ddl:"INTEGER NOT NULL"`
	FactCount         int `db:"fact_count" ddl:"INTEGER NOT NULL"`

	QualityScore float64 `db:"quality_score" ddl:"DOUBLE PRECISION NOT NULL"`
}
