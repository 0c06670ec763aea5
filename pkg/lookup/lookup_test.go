package lookup_test

import (
	"testing"

	"github.com/gnames/trialwh/pkg/lookup"
	"github.com/stretchr/testify/assert"
)

func TestCountryOf(t *testing.T) {
	tests := []struct {
		msg, in                 string
		name, region, continent string
		tz                      string
	}{
		{"name", "United States", "United States", "North America",
			"North America", "America/New_York"},
		{"alias", "USA", "United States", "North America",
			"North America", "America/New_York"},
		{"alias dot", "U.S.A.", "United States", "North America",
			"North America", "America/New_York"},
		{"lower", "germany", "Germany", "Europe", "Europe", "Europe/Berlin"},
		{"korea", "Korea, Republic of", "South Korea", "Asia", "Asia",
			"Asia/Seoul"},
		{"south america", "Brazil", "Brazil", "South America",
			"South America", "America/Sao_Paulo"},
		{"oceania", "New Zealand", "New Zealand", "Oceania", "Oceania",
			"Pacific/Auckland"},
		{"africa", "South Africa", "South Africa", "Africa", "Africa",
			"Africa/Johannesburg"},
		{"missing", "Iceland", "Iceland", "Other", "Other", "UTC"},
		{"absent", "  ", "Unknown", "Unknown", "Unknown", "UTC"},
	}

	for _, v := range tests {
		res := lookup.CountryOf(v.in)
		assert.Equal(t, v.name, res.Name, v.msg)
		assert.Equal(t, v.region, res.Region, v.msg)
		assert.Equal(t, v.continent, res.Continent, v.msg)
		assert.Equal(t, v.tz, res.Timezone, v.msg)
	}
}

func TestFindCountry(t *testing.T) {
	tests := []struct {
		msg, in string
		ok      bool
		name    string
	}{
		{"uk", "Oxford Vaccine Group UK", true, "United Kingdom"},
		{"full name", "National Cancer Institute, United States", true,
			"United States"},
		{"longest alias", "University of Cape Town, South Africa", true,
			"South Africa"},
		{"word boundary", "Ukrainian Research Co.", false, ""},
		{"no country", "Acme University", false, ""},
		{"empty", "", false, ""},
	}

	for _, v := range tests {
		res, ok := lookup.FindCountry(v.in)
		assert.Equal(t, v.ok, ok, v.msg)
		assert.Equal(t, v.name, res.Name, v.msg)
	}
}

func TestConditionOf(t *testing.T) {
	tests := []struct {
		category, typ, prevalence string
	}{
		{"Cancer", "Oncological", "Medium"},
		{"Cardiovascular", "Cardiovascular", "High"},
		{"Diabetes", "Metabolic", "High"},
		{"Respiratory", "Respiratory", "High"},
		{"Neurological", "Neurological", "Medium"},
		{"Mental Health", "Psychiatric", "High"},
		{"Infectious", "Infectious", "Medium"},
		{"Autoimmune", "Immunological", "Medium"},
		{"Pediatric", "Pediatric", "Low"},
		{"Geriatric", "Geriatric", "Low"},
		{"Other", "Other", "Low"},
		{"Unknown", "Other", "Low"},
	}

	for _, v := range tests {
		res := lookup.ConditionOf(v.category)
		assert.Equal(t, v.typ, res.Type, v.category)
		assert.Equal(t, v.prevalence, res.Prevalence, v.category)
		assert.False(t, res.IsRare, v.category)
	}

	assert.True(t, lookup.ConditionOf("Orphan Disease").IsRare)
}
