// Package warehouse loads staging sets into star-schema dimensions and
// assembles fact rows that refer to them by surrogate keys.
//
// Surrogate keys are assigned from 1 in staging order on every load. They
// are valid only within one refresh, natural keys are the stable identity.
package warehouse

import (
	"database/sql"
	"strings"

	"github.com/gnames/trialwh/pkg/lookup"
	"github.com/gnames/trialwh/pkg/normalize"
	"github.com/gnames/trialwh/pkg/schema"
	"github.com/gnames/trialwh/pkg/staging"
)

// Intervention types that populate typed name columns and flags.
const (
	TypeDrug       = "Drug"
	TypeDevice     = "Device"
	TypeProcedure  = "Procedure"
	TypeBehavioral = "Behavioral"
)

// Dimensions contains loaded dimension rows together with natural key to
// surrogate key indexes.
type Dimensions struct {
	Sponsors      []schema.DimSponsor
	Locations     []schema.DimLocation
	Conditions    []schema.DimCondition
	Interventions []schema.DimIntervention
	Dates         []schema.DimDate

	sponsorKeys      map[string]int
	locationKeys     map[string]int
	conditionKeys    map[string]int
	interventionKeys map[string]int
	dateKeys         map[int]struct{}
}

// LoadDimensions enriches staging sets and assigns surrogate keys. The
// date dimension is built from start and completion dates of staging
// trials.
func LoadDimensions(res *staging.Result) *Dimensions {
	d := &Dimensions{
		sponsorKeys:      make(map[string]int),
		locationKeys:     make(map[string]int),
		conditionKeys:    make(map[string]int),
		interventionKeys: make(map[string]int),
		dateKeys:         make(map[int]struct{}),
	}
	if res == nil {
		return d
	}

	for _, s := range res.Sponsors {
		d.addSponsor(s)
	}
	for _, l := range res.Locations {
		d.addLocation(l)
	}
	for _, c := range res.Conditions {
		d.addCondition(c)
	}
	for _, in := range res.Interventions {
		d.addIntervention(in)
	}
	for _, t := range res.Trials {
		d.addDate(t.StudyStartDate)
		d.addDate(t.StudyCompletionDate)
	}
	return d
}

func (d *Dimensions) addSponsor(s schema.StgSponsor) {
	if _, ok := d.sponsorKeys[s.SponsorID]; ok {
		return
	}
	key := len(d.Sponsors) + 1
	d.sponsorKeys[s.SponsorID] = key
	d.Sponsors = append(d.Sponsors, schema.DimSponsor{
		SponsorKey:   key,
		SponsorID:    s.SponsorID,
		SponsorName:  s.SponsorName,
		SponsorType:  s.SponsorType,
		Country:      s.Country,
		IsIndustry:   s.SponsorType == normalize.SponsorIndustry,
		IsAcademic:   s.SponsorType == normalize.SponsorAcademic,
		IsGovernment: s.SponsorType == normalize.SponsorGovernment,
	})
}

func (d *Dimensions) addLocation(l schema.StgLocation) {
	if _, ok := d.locationKeys[l.LocationID]; ok {
		return
	}
	country := lookup.UnknownCountry
	if l.Country.Valid {
		country = lookup.CountryOf(l.Country.String)
	}
	key := len(d.Locations) + 1
	d.locationKeys[l.LocationID] = key
	d.Locations = append(d.Locations, schema.DimLocation{
		LocationKey: key,
		LocationID:  l.LocationID,
		City:        l.City,
		State:       l.State,
		Country:     l.Country,
		Region:      country.Region,
		Continent:   country.Continent,
		Timezone:    country.Timezone,
	})
}

func (d *Dimensions) addCondition(c schema.StgCondition) {
	if _, ok := d.conditionKeys[c.ConditionID]; ok {
		return
	}
	attr := lookup.ConditionOf(c.ConditionCategory)
	key := len(d.Conditions) + 1
	d.conditionKeys[c.ConditionID] = key
	d.Conditions = append(d.Conditions, schema.DimCondition{
		ConditionKey:       key,
		ConditionID:        c.ConditionID,
		ConditionName:      c.ConditionName,
		ConditionCategory:  c.ConditionCategory,
		ConditionType:      attr.Type,
		IsRare:             attr.IsRare,
		PrevalenceCategory: attr.Prevalence,
	})
}

func (d *Dimensions) addIntervention(in schema.StgIntervention) {
	if _, ok := d.interventionKeys[in.InterventionID]; ok {
		return
	}
	typ := in.InterventionType
	isDrug := strings.EqualFold(typ, TypeDrug)
	isDevice := strings.EqualFold(typ, TypeDevice)
	isProcedure := strings.EqualFold(typ, TypeProcedure)

	key := len(d.Interventions) + 1
	d.interventionKeys[in.InterventionID] = key
	d.Interventions = append(d.Interventions, schema.DimIntervention{
		InterventionKey:      key,
		InterventionID:       in.InterventionID,
		InterventionName:     in.InterventionName,
		InterventionType:     typ,
		InterventionCategory: typ,
		DrugName:             nameIf(isDrug, in.InterventionName),
		DeviceName:           nameIf(isDevice, in.InterventionName),
		ProcedureName:        nameIf(isProcedure, in.InterventionName),
		IsDrug:               isDrug,
		IsDevice:             isDevice,
		IsProcedure:          isProcedure,
		IsBehavioral:         strings.EqualFold(typ, TypeBehavioral),
	})
}

func (d *Dimensions) addDate(t sql.NullTime) {
	dk := normalize.DateKey(t)
	if !dk.Valid {
		return
	}
	key := int(dk.Int32)
	if _, ok := d.dateKeys[key]; ok {
		return
	}
	d.dateKeys[key] = struct{}{}

	y, m, day := t.Time.Date()
	d.Dates = append(d.Dates, schema.DimDate{
		DateKey:     key,
		FullDate:    t.Time,
		Year:        y,
		Quarter:     (int(m)-1)/3 + 1,
		MonthNumber: int(m),
		MonthName:   m.String(),
		Day:         day,
	})
}

func nameIf(ok bool, name sql.NullString) sql.NullString {
	if !ok {
		return sql.NullString{}
	}
	return name
}

// SponsorKey returns the surrogate key of a sponsor natural key.
func (d *Dimensions) SponsorKey(id string) sql.NullInt64 {
	return resolve(d.sponsorKeys, id)
}

// LocationKey returns the surrogate key of a location natural key.
func (d *Dimensions) LocationKey(id string) sql.NullInt64 {
	return resolve(d.locationKeys, id)
}

// ConditionKey returns the surrogate key of a condition natural key.
func (d *Dimensions) ConditionKey(id string) sql.NullInt64 {
	return resolve(d.conditionKeys, id)
}

// InterventionKey returns the surrogate key of an intervention natural key.
func (d *Dimensions) InterventionKey(id string) sql.NullInt64 {
	return resolve(d.interventionKeys, id)
}

// DateKey returns the date dimension key of a date, or null if the date
// is not loaded.
func (d *Dimensions) DateKey(t sql.NullTime) sql.NullInt64 {
	dk := normalize.DateKey(t)
	if !dk.Valid {
		return sql.NullInt64{}
	}
	if _, ok := d.dateKeys[int(dk.Int32)]; !ok {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(dk.Int32), Valid: true}
}

func resolve(keys map[string]int, id string) sql.NullInt64 {
	if k, ok := keys[id]; ok {
		return sql.NullInt64{Int64: int64(k), Valid: true}
	}
	return sql.NullInt64{}
}
