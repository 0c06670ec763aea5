// Package quality computes data quality metrics of a tabular batch:
// missing values per column, exact duplicate rows and completeness of
// required columns. The score is diagnostic and never blocks a refresh.
package quality

import (
	"fmt"
	"math"
	"slices"

	"github.com/gnames/trialwh/pkg/schema"
)

// Table is a batch of rows with named columns. A nil value is missing.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]any
}

// FromModels makes a Table out of schema models.
func FromModels[T any](name string, models []T) Table {
	var zero T
	return Table{
		Name:    name,
		Columns: schema.Columns(zero),
		Rows:    schema.Rows(models),
	}
}

// Missing is the number and percentage of missing values in a column.
type Missing struct {
	Column  string
	Count   int
	Percent float64
}

// Report contains quality metrics of a Table.
type Report struct {
	Table     string
	TotalRows int

	// Missing follows the column order of the table. It is empty for an
	// empty table.
	Missing []Missing

	DuplicateRows    int
	DuplicatePercent float64

	// Completeness is the average percentage of present values in required
	// columns. It is 100 when no required column is in the table.
	Completeness float64

	// Score is max(0, 100 - (100 - Completeness) - DuplicatePercent).
	Score float64
}

// Score calculates the quality report of a table. Required columns that
// are not in the table are ignored.
func Score(t Table, required []string) Report {
	res := Report{Table: t.Name, TotalRows: len(t.Rows)}
	if len(t.Rows) == 0 {
		return res
	}
	total := float64(len(t.Rows))

	missing := make([]int, len(t.Columns))
	seen := make(map[string]struct{}, len(t.Rows))
	for _, row := range t.Rows {
		for i := range t.Columns {
			if i >= len(row) || row[i] == nil {
				missing[i]++
			}
		}
		key := fmt.Sprintf("%#v", row)
		if _, ok := seen[key]; ok {
			res.DuplicateRows++
			continue
		}
		seen[key] = struct{}{}
	}

	res.Missing = make([]Missing, len(t.Columns))
	for i, col := range t.Columns {
		res.Missing[i] = Missing{
			Column:  col,
			Count:   missing[i],
			Percent: round(float64(missing[i]) / total * 100),
		}
	}

	res.DuplicatePercent = float64(res.DuplicateRows) / total * 100

	res.Completeness = 100
	var sum float64
	var n int
	for i, col := range t.Columns {
		if !slices.Contains(required, col) {
			continue
		}
		sum += (total - float64(missing[i])) / total * 100
		n++
	}
	if n > 0 {
		res.Completeness = sum / float64(n)
	}

	score := 100 - (100 - res.Completeness) - res.DuplicatePercent
	res.Score = round(max(0, score))
	res.Completeness = round(res.Completeness)
	res.DuplicatePercent = round(res.DuplicatePercent)
	return res
}

func round(f float64) float64 {
	return math.Round(f*100) / 100
}
