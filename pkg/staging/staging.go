// Package staging turns a raw trial batch into deduplicated staging sets
// with deterministic natural keys.
//
// A raw record is valid when its trial identifier is present. Invalid
// records and repeated identifiers are counted and left out of every set.
// For every natural key the first record wins, later records with the same
// key do not change its attributes.
package staging

import (
	"database/sql"

	"github.com/gnames/trialwh/pkg/lookup"
	"github.com/gnames/trialwh/pkg/normalize"
	"github.com/gnames/trialwh/pkg/schema"
)

// Result contains staging sets in the order records were first seen.
type Result struct {
	Sponsors      []schema.StgSponsor
	Locations     []schema.StgLocation
	Conditions    []schema.StgCondition
	Interventions []schema.StgIntervention
	Trials        []schema.StagingTrial

	// RawCount is the size of the input batch.
	RawCount int
	// InvalidCount is the number of records without a trial identifier.
	InvalidCount int
	// DuplicateCount is the number of records with an identifier already
	// seen in the batch.
	DuplicateCount int
}

type builder struct {
	res           *Result
	trials        map[string]struct{}
	sponsors      map[string]struct{}
	locations     map[string]struct{}
	conditions    map[string]struct{}
	interventions map[string]struct{}
}

// Build normalizes raw records into staging sets. The output depends only
// on the input, so the same batch always produces the same keys and sets.
func Build(raw []schema.RawTrial) *Result {
	b := builder{
		res:           &Result{RawCount: len(raw)},
		trials:        make(map[string]struct{}),
		sponsors:      make(map[string]struct{}),
		locations:     make(map[string]struct{}),
		conditions:    make(map[string]struct{}),
		interventions: make(map[string]struct{}),
	}

	var seq int
	for i := range raw {
		nct := normalize.CleanNull(raw[i].NctID)
		if !nct.Valid {
			b.res.InvalidCount++
			continue
		}
		if _, ok := b.trials[nct.String]; ok {
			b.res.DuplicateCount++
			continue
		}
		b.trials[nct.String] = struct{}{}
		seq++
		b.add(nct.String, &raw[i], seq)
	}
	return b.res
}

func (b *builder) add(nct string, r *schema.RawTrial, seq int) {
	sponsorID := b.addSponsor(r)
	locationID := b.addLocation(r, seq)
	conditionID := b.addCondition(r)
	interventionID := b.addIntervention(r)

	title := normalize.CleanNull(r.BriefTitle)
	phase := orUnknown(r.Phase)
	start := normalize.ParseDate(r.StudyStartDate)
	primary := normalize.ParseDate(r.PrimaryCompletionDate)
	end := normalize.ParseDate(r.StudyCompletionDate)

	completeness := CompletenessScore(
		title,
		normalize.CleanNull(r.LeadSponsorName),
		normalize.FirstItem(r.Condition),
	)

	t := schema.StagingTrial{
		NctID:                 nct,
		BriefTitle:            title,
		OfficialTitle:         normalize.CleanNull(r.OfficialTitle),
		SponsorID:             sponsorID,
		LocationID:            locationID,
		ConditionID:           conditionID,
		InterventionID:        interventionID,
		Phase:                 phase,
		PhaseNumber:           normalize.ExtractPhaseNumber(r.Phase),
		Status:                orUnknown(r.Status),
		StudyType:             orUnknown(r.StudyType),
		Allocation:            orUnknown(r.Allocation),
		InterventionModel:     orUnknown(r.InterventionModel),
		PrimaryPurpose:        orUnknown(r.PrimaryPurpose),
		MaskingInfo:           orUnknown(r.MaskingInfo),
		EnrollmentCount:       r.EnrollmentCount,
		EnrollmentCategory:    normalize.EnrollmentCategory(r.EnrollmentCount),
		StudyStartDate:        start,
		PrimaryCompletionDate: primary,
		StudyCompletionDate:   end,
		DurationDays:          normalize.CalculateDurationDays(start, end),
		DataCompletenessScore: completeness,
		DataQualityScore: QualityScore(
			completeness, start, end, r.EnrollmentCount, phase,
		),
	}
	b.res.Trials = append(b.res.Trials, t)
}

func (b *builder) addSponsor(r *schema.RawTrial) string {
	name := normalize.CleanNull(r.LeadSponsorName)
	key := SponsorKey(name)
	if _, ok := b.sponsors[key]; ok {
		return key
	}
	b.sponsors[key] = struct{}{}

	normName := normalize.NormalizeSponsorName(name)
	country := lookup.Unknown
	if normName.Valid {
		if c, ok := lookup.FindCountry(normName.String); ok {
			country = c.Name
		}
	}
	class := normalize.CleanNull(r.LeadSponsorClass)
	b.res.Sponsors = append(b.res.Sponsors, schema.StgSponsor{
		SponsorID:    key,
		SponsorName:  normName,
		SponsorClass: class,
		SponsorType:  normalize.SponsorType(class, normName),
		Country:      country,
	})
	return key
}

// rawLocation picks the first location of the record. When the separate
// columns are empty the free-text location is parsed instead.
func rawLocation(r *schema.RawTrial) normalize.Location {
	loc := normalize.Location{
		City:    normalize.FirstItem(r.LocationCity),
		State:   normalize.FirstItem(r.LocationState),
		Country: normalize.FirstItem(r.LocationCountry),
	}
	if loc.IsEmpty() {
		loc = normalize.ExtractLocationInfo(normalize.FirstItem(r.Location))
	}
	return loc
}

func (b *builder) addLocation(r *schema.RawTrial, seq int) string {
	loc := rawLocation(r)
	key := LocationKey(loc, seq)
	if _, ok := b.locations[key]; ok {
		return key
	}
	b.locations[key] = struct{}{}

	b.res.Locations = append(b.res.Locations, schema.StgLocation{
		LocationID: key,
		City:       loc.City,
		State:      loc.State,
		Country:    loc.Country,
		Facility:   normalize.FirstItem(r.LocationFacility),
	})
	return key
}

func (b *builder) addCondition(r *schema.RawTrial) string {
	cond := normalize.FirstItem(r.Condition)
	key := ConditionKey(cond)
	if _, ok := b.conditions[key]; ok {
		return key
	}
	b.conditions[key] = struct{}{}

	b.res.Conditions = append(b.res.Conditions, schema.StgCondition{
		ConditionID:       key,
		ConditionName:     cond,
		ConditionCategory: normalize.CategorizeCondition(cond),
	})
	return key
}

func (b *builder) addIntervention(r *schema.RawTrial) string {
	name := normalize.FirstItem(r.InterventionName)
	key := InterventionKey(name)
	if _, ok := b.interventions[key]; ok {
		return key
	}
	b.interventions[key] = struct{}{}

	b.res.Interventions = append(b.res.Interventions, schema.StgIntervention{
		InterventionID:   key,
		InterventionName: name,
		InterventionType: orUnknown(normalize.FirstItem(r.InterventionType)),
	})
	return key
}

func orUnknown(s sql.NullString) string {
	s = normalize.CleanNull(s)
	if !s.Valid {
		return normalize.Unknown
	}
	return s.String
}
