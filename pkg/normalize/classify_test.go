package normalize_test

import (
	"database/sql"
	"testing"

	"github.com/gnames/trialwh/pkg/normalize"
	"github.com/stretchr/testify/assert"
)

func TestCategorizeCondition(t *testing.T) {
	tests := []struct {
		msg  string
		in   sql.NullString
		want string
	}{
		{"cancer", str("Lung Cancer"), "Cancer"},
		{"case", str("ACUTE MYELOID LEUKEMIA"), "Cancer"},
		{"stroke goes to first set", str("Stroke"), "Cardiovascular"},
		{"diabetes", str("Type 2 Diabetes"), "Diabetes"},
		{"respiratory", str("COPD"), "Respiratory"},
		{"neuro", str("Parkinson Disease"), "Neurological"},
		{"mental", str("Major Depression"), "Mental Health"},
		{"infectious", str("COVID-19"), "Infectious"},
		{"autoimmune", str("Rheumatoid Arthritis"), "Autoimmune"},
		{"pediatric", str("Neonatal Jaundice"), "Pediatric"},
		{"geriatric", str("Frailty in Elderly"), "Geriatric"},
		{"other", str("Healthy Volunteers"), "Other"},
		{"blank", str("   "), "Unknown"},
		{"absent", sql.NullString{}, "Unknown"},
	}

	for _, v := range tests {
		assert.Equal(t, v.want, normalize.CategorizeCondition(v.in), v.msg)
	}
}

func TestClassifierOrder(t *testing.T) {
	c := normalize.Classifier{
		{Category: "first", Match: normalize.Contains("a")},
		{Category: "second", Match: normalize.Contains("ab")},
	}
	assert.Equal(t, "first", c.Classify("AB", "none"))
	assert.Equal(t, "none", c.Classify("xyz", "none"))
}

func TestSponsorType(t *testing.T) {
	none := sql.NullString{}
	tests := []struct {
		msg         string
		class, name sql.NullString
		want        string
	}{
		{"industry class", str("INDUSTRY"), str("Acme"), "Industry"},
		{"nih class", str("NIH"), str("Anything"), "Government"},
		{"fed class", str("FED"), none, "Government"},
		{"other gov class", str("OTHER_GOV"), none, "Government"},
		{"hospital class", str("Hospital"), none, "Medical Center"},
		{"class wins", str("INDUSTRY"), str("Acme University"), "Industry"},
		{"name fallback", none, str("Acme Univ"), "Academic"},
		{"other class with name", str("OTHER"), str("Mayo Clinic"),
			"Medical Center"},
		{"name industry", none, str("Pfizer Inc."), "Industry"},
		{"name pharma", none, str("Acme Pharmaceuticals"), "Industry"},
		{"name government", none, str("National Cancer Institute"),
			"Academic"},
		{"name unmatched", none, str("John Smith"), "Other"},
		{"class unmatched no name", str("INDIV"), none, "Other"},
		{"nothing", none, none, "Unknown"},
	}

	for _, v := range tests {
		assert.Equal(t, v.want, normalize.SponsorType(v.class, v.name), v.msg)
	}
}

func TestEnrollmentCategory(t *testing.T) {
	n := func(i int64) sql.NullInt64 {
		return sql.NullInt64{Int64: i, Valid: true}
	}
	assert.Equal(t, "Unknown", normalize.EnrollmentCategory(sql.NullInt64{}))
	assert.Equal(t, "Unknown", normalize.EnrollmentCategory(n(0)))
	assert.Equal(t, "Small", normalize.EnrollmentCategory(n(1)))
	assert.Equal(t, "Small", normalize.EnrollmentCategory(n(50)))
	assert.Equal(t, "Medium", normalize.EnrollmentCategory(n(51)))
	assert.Equal(t, "Medium", normalize.EnrollmentCategory(n(200)))
	assert.Equal(t, "Large", normalize.EnrollmentCategory(n(1000)))
	assert.Equal(t, "Very Large", normalize.EnrollmentCategory(n(1001)))
}

func TestSlug(t *testing.T) {
	tests := []struct {
		msg, in, want string
	}{
		{"simple", "Acme Univ", "acme_univ"},
		{"spaces", "  ACME   univ  ", "acme_univ"},
		{"punctuation", "Pfizer, Inc.", "pfizer_inc"},
		{"diacritics", "Hôpital Bichât", "hopital_bichat"},
		{"cyrillic", "Московский  институт", "московский_институт"},
		{"han", "北京大学", "北京大学"},
		{"greek letters differ", "IFN-α", "ifn_α"},
		{"greek beta", "IFN-β", "ifn_β"},
		{"digits", "COVID-19", "covid_19"},
		{"empty", "!!!", ""},
	}

	for _, v := range tests {
		assert.Equal(t, v.want, normalize.Slug(v.in), v.msg)
	}
}

func TestGenerateHashKey(t *testing.T) {
	a := normalize.GenerateHashKey("NCT001", "Acme", 50)
	b := normalize.GenerateHashKey("NCT001", "Acme", 50)
	assert.Equal(t, a, b)
	assert.Len(t, a, 36)

	c := normalize.GenerateHashKey("Acme", "NCT001", 50)
	assert.NotEqual(t, a, c, "order matters")

	d := normalize.GenerateHashKey("NCT001", nil, sql.NullString{}, "Acme", 50)
	assert.Equal(t, a, d, "absent values are skipped")

	e := normalize.GenerateHashKey(str("NCT001"), "Acme", 50)
	assert.Equal(t, a, e)
}
