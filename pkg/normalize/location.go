package normalize

import (
	"database/sql"
	"regexp"
)

// Location is a parsed free-text location.
type Location struct {
	City    sql.NullString
	State   sql.NullString
	Country sql.NullString
}

var (
	cityStateCountryRe = regexp.MustCompile(`^([^,]+),\s*([^,]+),\s*([^,]+)$`)
	cityStateRe        = regexp.MustCompile(`^([^,]+),\s*([^,]+)$`)
	singleRe           = regexp.MustCompile(`^([^,]+)$`)
)

// ExtractLocationInfo parses "City, State, Country", "City, State" or a
// single token (taken as the city). A value matching none of them is kept
// whole as the city. Only absent input gives an empty Location.
func ExtractLocationInfo(s sql.NullString) Location {
	var res Location
	cs := CleanString(s.String)
	if !s.Valid || !cs.Valid {
		return res
	}
	v := cs.String

	if m := cityStateCountryRe.FindStringSubmatch(v); m != nil {
		res.City = CleanString(m[1])
		res.State = CleanString(m[2])
		res.Country = CleanString(m[3])
		return res
	}
	if m := cityStateRe.FindStringSubmatch(v); m != nil {
		res.City = CleanString(m[1])
		res.State = CleanString(m[2])
		return res
	}
	if m := singleRe.FindStringSubmatch(v); m != nil {
		res.City = CleanString(m[1])
		return res
	}
	res.City = cs
	return res
}

// IsEmpty is true when no part of the location is known.
func (l Location) IsEmpty() bool {
	return !l.City.Valid && !l.State.Valid && !l.Country.Valid
}
