// Package normalize provides pure functions that clean and classify
// single values of clinical trial records.
//
// Every function is total: bad or absent input never panics and never
// returns an error. Absence is reported with sql.Null* values, so a cleaned
// string is either a non-empty value or an explicit absent marker.
package normalize

import (
	"database/sql"
	"regexp"
	"strings"

	"github.com/gnames/gnlib"
)

var (
	spacesRe = regexp.MustCompile(`[\s\p{Zs}]+`)
	phaseRe  = regexp.MustCompile(`(?i)phase\s*(\d+)`)
	emailRe  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// CleanString trims the value, collapses internal whitespace runs to single
// spaces and repairs broken UTF-8. Returns absent if nothing is left.
func CleanString(s string) sql.NullString {
	s = gnlib.FixUtf8(s)
	s = spacesRe.ReplaceAllString(strings.TrimSpace(s), " ")
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// CleanNull is CleanString for values that might be absent already.
func CleanNull(ns sql.NullString) sql.NullString {
	if !ns.Valid {
		return ns
	}
	return CleanString(ns.String)
}

// ExtractPhaseNumber returns the number from "Phase 2" style values.
func ExtractPhaseNumber(s sql.NullString) sql.NullInt32 {
	if !s.Valid {
		return sql.NullInt32{}
	}
	m := phaseRe.FindStringSubmatch(s.String)
	if len(m) < 2 {
		return sql.NullInt32{}
	}
	var n int32
	for _, r := range m[1] {
		// keeps absurd digit runs from overflowing
		if n > 1_000_000 {
			return sql.NullInt32{}
		}
		n = n*10 + int32(r-'0')
	}
	return sql.NullInt32{Int32: n, Valid: true}
}

// ValidateEmail reports if the value has the usual email shape.
func ValidateEmail(s sql.NullString) bool {
	if !s.Valid {
		return false
	}
	return emailRe.MatchString(strings.TrimSpace(s.String))
}

// FirstItem returns the first non-empty element of a "; " joined list.
// Registry extracts join multi-valued fields (locations, interventions)
// this way.
func FirstItem(s sql.NullString) sql.NullString {
	if !s.Valid {
		return s
	}
	for _, v := range strings.Split(s.String, ";") {
		if res := CleanString(v); res.Valid {
			return res
		}
	}
	return sql.NullString{}
}
