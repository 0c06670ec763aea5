package staging_test

import (
	"database/sql"
	"testing"

	"github.com/gnames/trialwh/pkg/normalize"
	"github.com/gnames/trialwh/pkg/schema"
	"github.com/gnames/trialwh/pkg/staging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func num(i int64) sql.NullInt64 {
	return sql.NullInt64{Int64: i, Valid: true}
}

func acmeTrial() schema.RawTrial {
	return schema.RawTrial{
		RowNum:              1,
		NctID:               str("NCT001"),
		BriefTitle:          str("Acme lung study"),
		LeadSponsorName:     str("Acme Univ"),
		Condition:           str("Lung Cancer"),
		Status:              str("Recruiting"),
		EnrollmentCount:     num(50),
		Phase:               str("PHASE2"),
		InterventionName:    str("Acmeumab"),
		InterventionType:    str("DRUG"),
		LocationCity:        str("Boston"),
		LocationState:       str("Massachusetts"),
		LocationCountry:     str("United States"),
		StudyStartDate:      str("2023-01-15"),
		StudyCompletionDate: str("01/20/2024"),
	}
}

func TestBuildScenario(t *testing.T) {
	res := staging.Build([]schema.RawTrial{acmeTrial()})
	require.Len(t, res.Trials, 1)
	require.Len(t, res.Sponsors, 1)
	require.Len(t, res.Conditions, 1)

	sp := res.Sponsors[0]
	assert.Equal(t, "SPONSOR_acme_univ", sp.SponsorID)
	assert.Equal(t, "Academic", sp.SponsorType)
	assert.Equal(t, "Acme University", sp.SponsorName.String)
	assert.Equal(t, "Unknown", sp.Country)

	cond := res.Conditions[0]
	assert.Equal(t, "COND_lung_cancer", cond.ConditionID)
	assert.Equal(t, "Cancer", cond.ConditionCategory)

	loc := res.Locations[0]
	assert.Equal(t, "LOC_united_states_massachusetts_boston", loc.LocationID)

	in := res.Interventions[0]
	assert.Equal(t, "INT_acmeumab", in.InterventionID)
	assert.Equal(t, "DRUG", in.InterventionType)

	tr := res.Trials[0]
	assert.Equal(t, "NCT001", tr.NctID)
	assert.Equal(t, sp.SponsorID, tr.SponsorID)
	assert.Equal(t, loc.LocationID, tr.LocationID)
	assert.Equal(t, cond.ConditionID, tr.ConditionID)
	assert.Equal(t, in.InterventionID, tr.InterventionID)
	assert.Equal(t, "Recruiting", tr.Status)
	assert.Equal(t, "PHASE2", tr.Phase)
	assert.Equal(t, int32(2), tr.PhaseNumber.Int32)
	assert.Equal(t, "Small", tr.EnrollmentCategory)
	assert.Equal(t, 100.0, tr.DataCompletenessScore)
	assert.Equal(t, 100.0, tr.DataQualityScore)
	assert.Equal(t, int32(370), tr.DurationDays.Int32)
	assert.Equal(t, "Unknown", tr.StudyType)
	assert.Equal(t, "Unknown", tr.MaskingInfo)
}

func TestBuildUnknownEverything(t *testing.T) {
	raw := []schema.RawTrial{
		{RowNum: 1, NctID: str("NCT100")},
		{RowNum: 2, NctID: str("NCT101")},
	}
	res := staging.Build(raw)
	require.Len(t, res.Trials, 2)

	tr := res.Trials[0]
	assert.Equal(t, staging.SponsorUnknown, tr.SponsorID)
	assert.Equal(t, "LOC_UNKNOWN_1", tr.LocationID)
	assert.Equal(t, staging.ConditionUnknown, tr.ConditionID)
	assert.Equal(t, staging.InterventionUnknown, tr.InterventionID)
	assert.Equal(t, 0.0, tr.DataCompletenessScore)
	assert.Equal(t, "LOC_UNKNOWN_2", res.Trials[1].LocationID)

	// unknown sponsors, conditions and interventions collapse,
	// unknown locations do not
	assert.Len(t, res.Sponsors, 1)
	assert.Len(t, res.Conditions, 1)
	assert.Len(t, res.Interventions, 1)
	assert.Len(t, res.Locations, 2)

	assert.Equal(t, "Unknown", res.Sponsors[0].SponsorType)
	assert.Equal(t, "Unknown", res.Conditions[0].ConditionCategory)
	assert.Equal(t, "Unknown", res.Interventions[0].InterventionType)

	// all factors are low: no dates, no enrollment, unknown phase
	assert.Equal(t, 13.33, tr.DataQualityScore)
}

func TestBuildFirstWriteWins(t *testing.T) {
	raw := []schema.RawTrial{
		{RowNum: 1, NctID: str("NCT1"), LeadSponsorName: str("Acme Univ"),
			LeadSponsorClass: str("OTHER")},
		{RowNum: 2, NctID: str("NCT2"), LeadSponsorName: str("  ACME   univ "),
			LeadSponsorClass: str("INDUSTRY")},
	}
	res := staging.Build(raw)
	require.Len(t, res.Trials, 2)
	require.Len(t, res.Sponsors, 1)

	assert.Equal(t, "SPONSOR_acme_univ", res.Trials[0].SponsorID)
	assert.Equal(t, "SPONSOR_acme_univ", res.Trials[1].SponsorID)
	assert.Equal(t, "OTHER", res.Sponsors[0].SponsorClass.String)
	assert.Equal(t, "Academic", res.Sponsors[0].SponsorType)
}

func TestBuildInvalidAndDuplicates(t *testing.T) {
	raw := []schema.RawTrial{
		{RowNum: 1, NctID: sql.NullString{}, LeadSponsorName: str("Ghost Inc")},
		{RowNum: 2, NctID: str("   "), Condition: str("Asthma")},
		{RowNum: 3, NctID: str("NCT1"), BriefTitle: str("first")},
		{RowNum: 4, NctID: str(" NCT1 "), BriefTitle: str("second")},
	}
	res := staging.Build(raw)

	assert.Equal(t, 4, res.RawCount)
	assert.Equal(t, 2, res.InvalidCount)
	assert.Equal(t, 1, res.DuplicateCount)
	require.Len(t, res.Trials, 1)
	assert.Equal(t, "first", res.Trials[0].BriefTitle.String)

	for _, s := range res.Sponsors {
		assert.NotEqual(t, "SPONSOR_ghost_inc", s.SponsorID)
	}
	for _, c := range res.Conditions {
		assert.NotEqual(t, "COND_asthma", c.ConditionID)
	}
}

func TestBuildDeterministic(t *testing.T) {
	raw := []schema.RawTrial{
		acmeTrial(),
		{RowNum: 2, NctID: str("NCT2"), LeadSponsorName: str("Pfizer Inc"),
			Condition: str("Type 2 Diabetes; Obesity"),
			Location:  str("Paris, Ile-de-France, France")},
		{RowNum: 3, NctID: str("NCT3")},
	}
	a := staging.Build(raw)
	b := staging.Build(raw)
	assert.Equal(t, a, b)

	assert.Equal(t, "COND_type_2_diabetes", a.Trials[1].ConditionID)
	assert.Equal(t, "LOC_france_ile_de_france_paris", a.Trials[1].LocationID)
	assert.Equal(t, "LOC_UNKNOWN_3", a.Trials[2].LocationID)
}

func TestBuildEmpty(t *testing.T) {
	res := staging.Build(nil)
	assert.Equal(t, 0, res.RawCount)
	assert.Empty(t, res.Trials)
	assert.Empty(t, res.Sponsors)
}

func TestSponsorCountry(t *testing.T) {
	raw := []schema.RawTrial{
		{RowNum: 1, NctID: str("NCT1"),
			LeadSponsorName: str("Oxford Vaccine Group UK")},
	}
	res := staging.Build(raw)
	require.Len(t, res.Sponsors, 1)
	assert.Equal(t, "United Kingdom", res.Sponsors[0].Country)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "SPONSOR_UNKNOWN", staging.SponsorKey(str("  ")))
	assert.Equal(t, "SPONSOR_???", staging.SponsorKey(str("???")))
	assert.Equal(t, "INT_-_+", staging.InterventionKey(str(" - + ")))
	assert.Equal(t, "COND_covid_19", staging.ConditionKey(str("COVID-19")))
	assert.Equal(t, "INT_placebo", staging.InterventionKey(str("Placebo")))

	loc := normalize.Location{City: str("Boston")}
	assert.Equal(t, "LOC_boston", staging.LocationKey(loc, 5))
	assert.Equal(t, "LOC_UNKNOWN_5",
		staging.LocationKey(normalize.Location{}, 5))
	assert.Equal(t, "LOC_?",
		staging.LocationKey(normalize.Location{City: str("?")}, 5))
}

func TestBuildNonLatinNames(t *testing.T) {
	raw := []schema.RawTrial{
		{RowNum: 1, NctID: str("NCT1"), LeadSponsorName: str("北京大学"),
			InterventionName: str("IFN-α"), InterventionType: str("Drug")},
		{RowNum: 2, NctID: str("NCT2"),
			LeadSponsorName:  str("Московский институт"),
			InterventionName: str("IFN-β"), InterventionType: str("Biological")},
	}
	res := staging.Build(raw)
	require.Len(t, res.Trials, 2)

	assert.Equal(t, "SPONSOR_北京大学", res.Trials[0].SponsorID)
	assert.Equal(t, "SPONSOR_московский_институт", res.Trials[1].SponsorID)
	assert.Equal(t, "INT_ifn_α", res.Trials[0].InterventionID)
	assert.Equal(t, "INT_ifn_β", res.Trials[1].InterventionID)

	require.Len(t, res.Sponsors, 2)
	assert.Equal(t, "北京大学", res.Sponsors[0].SponsorName.String)

	require.Len(t, res.Interventions, 2)
	assert.Equal(t, "Drug", res.Interventions[0].InterventionType)
	assert.Equal(t, "Biological", res.Interventions[1].InterventionType)
}

func TestBuildUnparsedLocation(t *testing.T) {
	raw := []schema.RawTrial{
		{RowNum: 1, NctID: str("NCT1"), Location: str("Boston, MA, USA, 02115")},
	}
	res := staging.Build(raw)
	require.Len(t, res.Locations, 1)
	assert.Equal(t, "LOC_boston_ma_usa_02115", res.Trials[0].LocationID)
	assert.Equal(t, "Boston, MA, USA, 02115", res.Locations[0].City.String)
}

func TestCompletenessScore(t *testing.T) {
	none := sql.NullString{}
	assert.Equal(t, 100.0, staging.CompletenessScore(str("t"), str("s"), str("c")))
	assert.Equal(t, 50.0, staging.CompletenessScore(str("t"), str("s"), none))
	assert.Equal(t, 50.0, staging.CompletenessScore(none, none, str("c")))
	assert.Equal(t, 0.0, staging.CompletenessScore(none, none, none))
}

func TestQualityScore(t *testing.T) {
	d := func(s string) sql.NullTime {
		return normalize.ParseDate(str(s))
	}
	none := sql.NullTime{}

	assert.Equal(t, 100.0, staging.QualityScore(100, d("2020-01-01"),
		d("2021-01-01"), num(10), "Phase 1"))
	// reversed dates
	assert.Equal(t, 93.33, staging.QualityScore(100, d("2021-01-01"),
		d("2020-01-01"), num(10), "Phase 1"))
	// implausible enrollment
	assert.Equal(t, 93.33, staging.QualityScore(100, d("2020-01-01"),
		d("2021-01-01"), num(200_000), "Phase 1"))
	// missing dates, unknown phase
	assert.Equal(t, 50.0, staging.QualityScore(50, none, none, num(10),
		"Unknown"))
}
