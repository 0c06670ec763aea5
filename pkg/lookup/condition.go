package lookup

// Prevalence categories of conditions.
const (
	PrevalenceHigh   = "High"
	PrevalenceMedium = "Medium"
	PrevalenceLow    = "Low"
)

// Condition holds attributes derived from a condition category.
type Condition struct {
	Type       string
	IsRare     bool
	Prevalence string
}

var conditionTypes = map[string]string{
	"Cancer":         "Oncological",
	"Cardiovascular": "Cardiovascular",
	"Diabetes":       "Metabolic",
	"Respiratory":    "Respiratory",
	"Neurological":   "Neurological",
	"Mental Health":  "Psychiatric",
	"Infectious":     "Infectious",
	"Autoimmune":     "Immunological",
	"Pediatric":      "Pediatric",
	"Geriatric":      "Geriatric",
}

// rareCategories are categories tagged as rare or orphan diseases. None of
// the keyword categories is rare by itself.
var rareCategories = map[string]struct{}{
	"Rare Disease":     {},
	"Orphan Disease":   {},
	"Genetic Disorder": {},
}

// prevalenceOrder is checked top to bottom, categories not listed are Low.
var prevalenceOrder = []struct {
	level      string
	categories []string
}{
	{PrevalenceHigh, []string{"Cardiovascular", "Diabetes", "Respiratory",
		"Mental Health"}},
	{PrevalenceMedium, []string{"Cancer", "Infectious", "Neurological",
		"Autoimmune"}},
}

// ConditionOf returns derived attributes of a condition category.
func ConditionOf(category string) Condition {
	res := Condition{Type: Other, Prevalence: PrevalenceLow}
	if t, ok := conditionTypes[category]; ok {
		res.Type = t
	}
	if _, ok := rareCategories[category]; ok {
		res.IsRare = true
	}
	for _, p := range prevalenceOrder {
		for _, c := range p.categories {
			if c == category {
				res.Prevalence = p.level
				return res
			}
		}
	}
	return res
}
