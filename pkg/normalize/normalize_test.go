package normalize_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/gnames/trialwh/pkg/normalize"
	"github.com/stretchr/testify/assert"
)

func str(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func TestCleanString(t *testing.T) {
	tests := []struct {
		msg, in string
		want    sql.NullString
	}{
		{"plain", "Lung Cancer", str("Lung Cancer")},
		{"trim", "  Lung Cancer \t", str("Lung Cancer")},
		{"collapse", "Lung   \n Cancer", str("Lung Cancer")},
		{"nbsp", "Acme\u00a0\u00a0Inc", str("Acme Inc")},
		{"unicode spaces", "\u2003Acme\u2009\u3000Inc\u00a0", str("Acme Inc")},
		{"empty", "", sql.NullString{}},
		{"spaces", " \t\n ", sql.NullString{}},
	}

	for _, v := range tests {
		assert.Equal(t, v.want, normalize.CleanString(v.in), v.msg)
	}

	assert.False(t, normalize.CleanNull(sql.NullString{}).Valid)
	assert.Equal(t, str("a b"), normalize.CleanNull(str(" a  b ")))
}

func TestParseDate(t *testing.T) {
	date := func(y int, m time.Month, d int) sql.NullTime {
		return sql.NullTime{
			Time:  time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
			Valid: true,
		}
	}
	tests := []struct {
		msg  string
		in   sql.NullString
		want sql.NullTime
	}{
		{"iso", str("2023-01-15"), date(2023, 1, 15)},
		{"us", str("01/20/2023"), date(2023, 1, 20)},
		{"ambiguous us first", str("02/03/2023"), date(2023, 2, 3)},
		{"day first", str("20/01/2023"), date(2023, 1, 20)},
		{"month", str("2023-06"), date(2023, 6, 1)},
		{"datetime", str("2023-01-15 10:30:00"), date(2023, 1, 15)},
		{"us datetime", str("1/15/2023 10:30:00"), date(2023, 1, 15)},
		{"padded", str("  2023-01-15 "), date(2023, 1, 15)},
		{"garbage", str("not-a-date"), sql.NullTime{}},
		{"empty", str(""), sql.NullTime{}},
		{"absent", sql.NullString{}, sql.NullTime{}},
	}

	for _, v := range tests {
		assert.Equal(t, v.want, normalize.ParseDate(v.in), v.msg)
	}

	res := normalize.ParseDate(str("15.01.2023"), "02.01.2006")
	assert.Equal(t, date(2023, 1, 15), res)
}

func TestCalculateDurationDays(t *testing.T) {
	start := normalize.ParseDate(str("2023-01-01"))
	end := normalize.ParseDate(str("2023-12-31"))

	res := normalize.CalculateDurationDays(start, end)
	assert.True(t, res.Valid)
	assert.Equal(t, int32(364), res.Int32)

	res = normalize.CalculateDurationDays(end, start)
	assert.Equal(t, int32(-364), res.Int32)

	res = normalize.CalculateDurationDays(start, sql.NullTime{})
	assert.False(t, res.Valid)
	res = normalize.CalculateDurationDays(sql.NullTime{}, end)
	assert.False(t, res.Valid)
}

func TestDateKey(t *testing.T) {
	res := normalize.DateKey(normalize.ParseDate(str("2023-01-15")))
	assert.Equal(t, sql.NullInt32{Int32: 20230115, Valid: true}, res)
	assert.False(t, normalize.DateKey(sql.NullTime{}).Valid)
}

func TestExtractLocationInfo(t *testing.T) {
	tests := []struct {
		msg     string
		in      sql.NullString
		city    sql.NullString
		state   sql.NullString
		country sql.NullString
	}{
		{"three parts", str("Boston, MA, United States"),
			str("Boston"), str("MA"), str("United States")},
		{"two parts", str("Boston,MA"), str("Boston"), str("MA"), sql.NullString{}},
		{"one part", str(" Boston "), str("Boston"), sql.NullString{}, sql.NullString{}},
		{"four parts", str("a, b, c, d"),
			str("a, b, c, d"), sql.NullString{}, sql.NullString{}},
		{"with zip", str("Boston, MA, USA, 02115"),
			str("Boston, MA, USA, 02115"), sql.NullString{}, sql.NullString{}},
		{"absent", sql.NullString{},
			sql.NullString{}, sql.NullString{}, sql.NullString{}},
	}

	for _, v := range tests {
		res := normalize.ExtractLocationInfo(v.in)
		assert.Equal(t, v.city, res.City, v.msg)
		assert.Equal(t, v.state, res.State, v.msg)
		assert.Equal(t, v.country, res.Country, v.msg)
	}
	assert.True(t, normalize.ExtractLocationInfo(sql.NullString{}).IsEmpty())
}

func TestNormalizeSponsorName(t *testing.T) {
	tests := []struct {
		msg, in, want string
	}{
		{"univ", "Acme Univ", "Acme University"},
		{"university", "acme UNIVERSITY", "acme University"},
		{"inc", "pfizer inc", "pfizer Inc."},
		{"inc dot", "Pfizer Inc.", "Pfizer Inc."},
		{"corp", "Big corp.", "Big Corp."},
		{"llc", "Small llc.", "Small LLC"},
		{"ltd", "British ltd", "British Ltd."},
		{"co", "Acme co", "Acme Co."},
		{"med center", "City Med Center", "City Medical Center"},
		{"medical center", "city medical   center", "city Medical Center"},
		{"hosp", "General Hosp", "General Hospital"},
		{"no word match", "Incyte Corporation", "Incyte Corporation"},
		{"spaces", "  Acme   Univ ", "Acme University"},
	}

	for _, v := range tests {
		res := normalize.NormalizeSponsorName(str(v.in))
		assert.Equal(t, str(v.want), res, v.msg)
	}

	assert.False(t, normalize.NormalizeSponsorName(str("  ")).Valid)
	assert.False(t, normalize.NormalizeSponsorName(sql.NullString{}).Valid)
}

func TestNormalizeSponsorNameIdempotent(t *testing.T) {
	names := []string{
		"Acme Univ", "pfizer inc", "Pfizer Inc.", "Inc..", "co co co",
		"Univ. of Med Center Hosp", "LLC llc Ltd. ltd", "Mayo Clinic",
		"Medical   Center Co.", "Hôpital Univ de Paris", "corp.corp",
	}

	for _, v := range names {
		once := normalize.NormalizeSponsorName(str(v))
		twice := normalize.NormalizeSponsorName(once)
		assert.Equal(t, once, twice, v)
	}
}

func TestExtractPhaseNumber(t *testing.T) {
	tests := []struct {
		msg  string
		in   sql.NullString
		want sql.NullInt32
	}{
		{"phase 2", str("Phase 2"), sql.NullInt32{Int32: 2, Valid: true}},
		{"registry", str("PHASE3"), sql.NullInt32{Int32: 3, Valid: true}},
		{"joined", str("PHASE1; PHASE2"), sql.NullInt32{Int32: 1, Valid: true}},
		{"na", str("N/A"), sql.NullInt32{}},
		{"absent", sql.NullString{}, sql.NullInt32{}},
	}

	for _, v := range tests {
		assert.Equal(t, v.want, normalize.ExtractPhaseNumber(v.in), v.msg)
	}
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, normalize.ValidateEmail(str("info@example.org")))
	assert.True(t, normalize.ValidateEmail(str("a.b+c@sub.example.co")))
	assert.False(t, normalize.ValidateEmail(str("info@example")))
	assert.False(t, normalize.ValidateEmail(str("not an email")))
	assert.False(t, normalize.ValidateEmail(sql.NullString{}))
}

func TestFirstItem(t *testing.T) {
	assert.Equal(t, str("Boston"), normalize.FirstItem(str("Boston; Chicago")))
	assert.Equal(t, str("Chicago"), normalize.FirstItem(str(" ; Chicago")))
	assert.False(t, normalize.FirstItem(str(";;")).Valid)
	assert.False(t, normalize.FirstItem(sql.NullString{}).Valid)
}
