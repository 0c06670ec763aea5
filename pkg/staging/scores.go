package staging

import (
	"database/sql"
	"math"
	"strings"

	"github.com/gnames/trialwh/pkg/normalize"
)

// CompletenessScore is 100 when title, sponsor and condition are all known,
// 50 when one or two of them are and 0 otherwise.
func CompletenessScore(title, sponsor, condition sql.NullString) float64 {
	var n int
	for _, v := range []sql.NullString{title, sponsor, condition} {
		if v.Valid {
			n++
		}
	}
	switch n {
	case 3:
		return 100
	case 0:
		return 0
	default:
		return 50
	}
}

// QualityScore combines completeness (weight 0.6) with the average of three
// plausibility factors (weight 0.4): ordered start and completion dates,
// enrollment between 1 and 100,000 and a known phase. The result is on a
// 0-100 scale with two decimals.
func QualityScore(
	completeness float64,
	start, end sql.NullTime,
	enrollment sql.NullInt64,
	phase string,
) float64 {
	var dates float64
	if start.Valid && end.Valid {
		dates = 0.5
		if start.Time.Before(end.Time) {
			dates = 1
		}
	}

	enroll := 0.5
	if enrollment.Valid && enrollment.Int64 > 0 && enrollment.Int64 <= 100_000 {
		enroll = 1
	}

	ph := 0.5
	if phase != "" && !strings.EqualFold(phase, normalize.Unknown) {
		ph = 1
	}

	avg := (dates + enroll + ph) / 3
	res := completeness*0.6 + avg*100*0.4
	return math.Round(res*100) / 100
}
