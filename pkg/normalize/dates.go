package normalize

import (
	"database/sql"
	"strings"
	"time"
)

// DateLayouts are tried in order by ParseDate. The order is the tie-break
// for strings that more than one layout accepts ("01/02/2023" is read as
// month/day).
var DateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"2/1/2006",
	"2006-01",
	"2006-01-02 15:04:05",
	"1/2/2006 15:04:05",
}

// ParseDate returns the calendar date of the first layout that parses the
// value. When no layouts are given DateLayouts are used.
func ParseDate(s sql.NullString, layouts ...string) sql.NullTime {
	if !s.Valid {
		return sql.NullTime{}
	}
	v := strings.TrimSpace(s.String)
	if v == "" {
		return sql.NullTime{}
	}
	if len(layouts) == 0 {
		layouts = DateLayouts
	}
	for _, l := range layouts {
		t, err := time.Parse(l, v)
		if err != nil {
			continue
		}
		y, m, d := t.Date()
		return sql.NullTime{
			Time:  time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
			Valid: true,
		}
	}
	return sql.NullTime{}
}

// CalculateDurationDays returns the number of days from start to end.
// The result is negative when end precedes start.
func CalculateDurationDays(start, end sql.NullTime) sql.NullInt32 {
	if !start.Valid || !end.Valid {
		return sql.NullInt32{}
	}
	days := (end.Time.Unix() - start.Time.Unix()) / 86400
	return sql.NullInt32{Int32: int32(days), Valid: true}
}

// DateKey returns the yyyymmdd integer key of a date.
func DateKey(t sql.NullTime) sql.NullInt32 {
	if !t.Valid {
		return sql.NullInt32{}
	}
	y, m, d := t.Time.Date()
	return sql.NullInt32{Int32: int32(y*10000 + int(m)*100 + d), Valid: true}
}
