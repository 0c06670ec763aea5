package normalize

import (
	"database/sql/driver"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/gnames/gnuuid"
	"golang.org/x/text/unicode/norm"
)

var nonAlnumRe = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Slug folds diacritics of Latin letters, lower-cases the value and
// replaces every run of characters that are not letters or digits with a
// single underscore. Letters of other scripts are kept as they are.
func Slug(s string) string {
	res := strings.ToLower(foldLatin(s))
	res = nonAlnumRe.ReplaceAllString(res, "_")
	return strings.Trim(res, "_")
}

// foldLatin removes combining marks that follow a Latin letter.
func foldLatin(s string) string {
	var b strings.Builder
	var prev rune
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) && unicode.Is(unicode.Latin, prev) {
			continue
		}
		b.WriteRune(r)
		prev = r
	}
	return norm.NFC.String(b.String())
}

// GenerateHashKey returns a deterministic UUID v5 string for the ordered
// values. Nil and absent (sql.Null*) values are skipped, so
// GenerateHashKey("a", nil, "b") equals GenerateHashKey("a", "b").
func GenerateHashKey(values ...any) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v == nil {
			continue
		}
		if vl, ok := v.(driver.Valuer); ok {
			dv, err := vl.Value()
			if err != nil || dv == nil {
				continue
			}
			v = dv
		}
		parts = append(parts, fmt.Sprint(v))
	}
	return gnuuid.New(strings.Join(parts, "|")).String()
}
