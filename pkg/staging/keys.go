package staging

import (
	"database/sql"
	"strconv"
	"strings"

	"github.com/gnames/trialwh/pkg/normalize"
)

// Sentinel natural keys of records without identifying values.
const (
	SponsorUnknown      = "SPONSOR_UNKNOWN"
	LocationUnknown     = "LOC_UNKNOWN"
	ConditionUnknown    = "COND_UNKNOWN"
	InterventionUnknown = "INT_UNKNOWN"
)

func naturalKey(prefix string, s sql.NullString, sentinel string) string {
	s = normalize.CleanNull(s)
	if !s.Valid {
		return sentinel
	}
	return prefix + keyPart(s.String)
}

// keyPart is the slug of a present value. A value without letters or
// digits keeps its punctuation, lower-cased, so it never turns into a
// sentinel.
func keyPart(s string) string {
	if slug := normalize.Slug(s); slug != "" {
		return slug
	}
	return strings.ToLower(strings.ReplaceAll(s, " ", "_"))
}

// SponsorKey returns SPONSOR_<slug> of the cleaned sponsor name. All
// sponsor-less records share SPONSOR_UNKNOWN.
func SponsorKey(name sql.NullString) string {
	return naturalKey("SPONSOR_", name, SponsorUnknown)
}

// ConditionKey returns COND_<slug> of the condition text.
func ConditionKey(condition sql.NullString) string {
	return naturalKey("COND_", condition, ConditionUnknown)
}

// InterventionKey returns INT_<slug> of the intervention name.
func InterventionKey(name sql.NullString) string {
	return naturalKey("INT_", name, InterventionUnknown)
}

// LocationKey returns LOC_<slug(country_state_city)> built from the known
// parts of the location. Unlike other dimensions a location without any
// known part is not shared: it gets LOC_UNKNOWN_<seq>, where seq is the
// position of the record in the batch.
func LocationKey(loc normalize.Location, seq int) string {
	var parts []string
	for _, v := range []sql.NullString{loc.Country, loc.State, loc.City} {
		if v.Valid {
			parts = append(parts, v.String)
		}
	}
	if len(parts) > 0 {
		return "LOC_" + keyPart(strings.Join(parts, "_"))
	}
	return LocationUnknown + "_" + strconv.Itoa(seq)
}
