// Package lookup keeps the fixed classification tables of the warehouse:
// country geography and condition category attributes. Tables are built
// once and never modified.
package lookup

import (
	"regexp"
	"slices"
	"strings"
)

const (
	// Unknown marks absent input.
	Unknown = "Unknown"
	// Other marks input that is not in a table.
	Other = "Other"
	// UTC is the timezone of countries that are not in the table.
	UTC = "UTC"
)

// Country describes geography of a country.
type Country struct {
	Name      string
	Region    string
	Continent string
	Timezone  string
}

// UnknownCountry is returned for absent country text.
var UnknownCountry = Country{
	Name: Unknown, Region: Unknown, Continent: Unknown, Timezone: UTC,
}

// OtherCountry is returned for countries missing from the table.
var OtherCountry = Country{
	Name: Other, Region: Other, Continent: Other, Timezone: UTC,
}

type countryEntry struct {
	Country
	aliases []string
}

var countryTable = []countryEntry{
	{Country{"United States", "North America", "North America",
		"America/New_York"},
		[]string{"united states", "united states of america", "usa", "u.s.a",
			"u.s"}},
	{Country{"Canada", "North America", "North America", "America/Toronto"},
		[]string{"canada"}},
	{Country{"Mexico", "North America", "North America",
		"America/Mexico_City"},
		[]string{"mexico"}},
	{Country{"United Kingdom", "Europe", "Europe", "Europe/London"},
		[]string{"united kingdom", "uk", "u.k", "great britain", "britain",
			"england", "scotland", "wales"}},
	{Country{"Germany", "Europe", "Europe", "Europe/Berlin"},
		[]string{"germany", "deutschland"}},
	{Country{"France", "Europe", "Europe", "Europe/Paris"},
		[]string{"france"}},
	{Country{"Italy", "Europe", "Europe", "Europe/Rome"},
		[]string{"italy", "italia"}},
	{Country{"Spain", "Europe", "Europe", "Europe/Madrid"},
		[]string{"spain", "espana"}},
	{Country{"Netherlands", "Europe", "Europe", "Europe/Amsterdam"},
		[]string{"netherlands", "the netherlands", "holland"}},
	{Country{"Switzerland", "Europe", "Europe", "Europe/Zurich"},
		[]string{"switzerland"}},
	{Country{"Belgium", "Europe", "Europe", "Europe/Brussels"},
		[]string{"belgium"}},
	{Country{"Sweden", "Europe", "Europe", "Europe/Stockholm"},
		[]string{"sweden"}},
	{Country{"Denmark", "Europe", "Europe", "Europe/Copenhagen"},
		[]string{"denmark"}},
	{Country{"Poland", "Europe", "Europe", "Europe/Warsaw"},
		[]string{"poland"}},
	{Country{"China", "Asia", "Asia", "Asia/Shanghai"},
		[]string{"china", "people's republic of china", "prc"}},
	{Country{"Japan", "Asia", "Asia", "Asia/Tokyo"},
		[]string{"japan"}},
	{Country{"India", "Asia", "Asia", "Asia/Kolkata"},
		[]string{"india"}},
	{Country{"South Korea", "Asia", "Asia", "Asia/Seoul"},
		[]string{"south korea", "korea", "republic of korea"}},
	{Country{"Singapore", "Asia", "Asia", "Asia/Singapore"},
		[]string{"singapore"}},
	{Country{"Taiwan", "Asia", "Asia", "Asia/Taipei"},
		[]string{"taiwan"}},
	{Country{"Israel", "Asia", "Asia", "Asia/Jerusalem"},
		[]string{"israel"}},
	{Country{"Brazil", "South America", "South America",
		"America/Sao_Paulo"},
		[]string{"brazil", "brasil"}},
	{Country{"Argentina", "South America", "South America",
		"America/Argentina/Buenos_Aires"},
		[]string{"argentina"}},
	{Country{"Chile", "South America", "South America", "America/Santiago"},
		[]string{"chile"}},
	{Country{"Colombia", "South America", "South America", "America/Bogota"},
		[]string{"colombia"}},
	{Country{"South Africa", "Africa", "Africa", "Africa/Johannesburg"},
		[]string{"south africa"}},
	{Country{"Nigeria", "Africa", "Africa", "Africa/Lagos"},
		[]string{"nigeria"}},
	{Country{"Kenya", "Africa", "Africa", "Africa/Nairobi"},
		[]string{"kenya"}},
	{Country{"Egypt", "Africa", "Africa", "Africa/Cairo"},
		[]string{"egypt"}},
	{Country{"Australia", "Oceania", "Oceania", "Australia/Sydney"},
		[]string{"australia"}},
	{Country{"New Zealand", "Oceania", "Oceania", "Pacific/Auckland"},
		[]string{"new zealand"}},
}

type aliasMatcher struct {
	re      *regexp.Regexp
	country Country
}

var (
	countryByAlias = map[string]Country{}
	// longer aliases go first, so "south africa" is not read as a generic
	// match inside a longer phrase.
	countryMatchers []aliasMatcher
)

func init() {
	for _, e := range countryTable {
		countryByAlias[strings.ToLower(e.Name)] = e.Country
		for _, a := range e.aliases {
			countryByAlias[a] = e.Country
			re := regexp.MustCompile(`(?i)(^|[^\pL\pN])` +
				regexp.QuoteMeta(a) + `\.?($|[^\pL\pN])`)
			countryMatchers = append(countryMatchers, aliasMatcher{re, e.Country})
		}
	}
	slices.SortStableFunc(countryMatchers, func(a, b aliasMatcher) int {
		return len(b.re.String()) - len(a.re.String())
	})
}

// CountryOf returns geography of a country name or alias. Absent input
// gives UnknownCountry, names missing from the table give OtherCountry
// with the original name kept.
func CountryOf(name string) Country {
	name = strings.TrimSpace(name)
	if name == "" {
		return UnknownCountry
	}
	key := strings.TrimSuffix(strings.ToLower(name), ".")
	if c, ok := countryByAlias[key]; ok {
		return c
	}
	if c, ok := FindCountry(name); ok {
		return c
	}
	res := OtherCountry
	res.Name = name
	return res
}

// FindCountry searches free text (for example a sponsor name) for a whole
// word country name or alias.
func FindCountry(text string) (Country, bool) {
	if strings.TrimSpace(text) == "" {
		return Country{}, false
	}
	for _, m := range countryMatchers {
		if m.re.MatchString(text) {
			return m.country, true
		}
	}
	return Country{}, false
}
