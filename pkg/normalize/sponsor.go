package normalize

import (
	"database/sql"
	"regexp"
)

type expansion struct {
	re   *regexp.Regexp
	repl string
}

// sponsorExpansions are applied in order to the same string. Each pattern
// swallows an existing trailing dot, so applying them twice changes nothing.
var sponsorExpansions = []expansion{
	{regexp.MustCompile(`(?i)\binc\b\.?`), "Inc."},
	{regexp.MustCompile(`(?i)\bcorp\b\.?`), "Corp."},
	{regexp.MustCompile(`(?i)\bllc\b\.?`), "LLC"},
	{regexp.MustCompile(`(?i)\bltd\b\.?`), "Ltd."},
	{regexp.MustCompile(`(?i)\bco\b\.?`), "Co."},
	{regexp.MustCompile(`(?i)\buniversity\b`), "University"},
	{regexp.MustCompile(`(?i)\buniv\b\.?`), "University"},
	{regexp.MustCompile(`(?i)\bmedical\s+center\b`), "Medical Center"},
	{regexp.MustCompile(`(?i)\bmed\.?\s+center\b`), "Medical Center"},
	{regexp.MustCompile(`(?i)\bhospital\b`), "Hospital"},
	{regexp.MustCompile(`(?i)\bhosp\b\.?`), "Hospital"},
}

// NormalizeSponsorName cleans a sponsor name and expands common
// abbreviations (univ, corp, med center...) to their canonical spelling.
func NormalizeSponsorName(s sql.NullString) sql.NullString {
	res := CleanNull(s)
	if !res.Valid {
		return res
	}
	v := res.String
	for _, e := range sponsorExpansions {
		v = e.re.ReplaceAllString(v, e.repl)
	}
	return CleanString(v)
}
