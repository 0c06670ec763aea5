package normalize

import (
	"database/sql"
	"regexp"
	"strings"
)

// Rule assigns Category to values accepted by Match.
type Rule struct {
	Category string
	Match    func(lower string) bool
}

// Classifier is an ordered list of rules, the first matching rule wins.
type Classifier []Rule

// Classify returns the category of the first matching rule or dflt.
func (c Classifier) Classify(s string, dflt string) string {
	lower := strings.ToLower(s)
	for _, r := range c {
		if r.Match(lower) {
			return r.Category
		}
	}
	return dflt
}

// Contains builds a matcher that accepts values containing any of the
// keywords. Keywords must be lower-case.
func Contains(keywords ...string) func(string) bool {
	return func(lower string) bool {
		for _, k := range keywords {
			if strings.Contains(lower, k) {
				return true
			}
		}
		return false
	}
}

// Words builds a matcher from a case-insensitive regular expression that
// is expected to use word boundaries.
func Words(expr string) func(string) bool {
	re := regexp.MustCompile(`(?i)` + expr)
	return re.MatchString
}

// Category names of conditions.
const (
	CatCancer         = "Cancer"
	CatCardiovascular = "Cardiovascular"
	CatDiabetes       = "Diabetes"
	CatRespiratory    = "Respiratory"
	CatNeurological   = "Neurological"
	CatMentalHealth   = "Mental Health"
	CatInfectious     = "Infectious"
	CatAutoimmune     = "Autoimmune"
	CatPediatric      = "Pediatric"
	CatGeriatric      = "Geriatric"
	CatOther          = "Other"
	Unknown           = "Unknown"
)

// ConditionRules hold the keyword sets of condition categories.
var ConditionRules = Classifier{
	{CatCancer, Contains("cancer", "tumor", "neoplasm", "oncology",
		"leukemia", "lymphoma")},
	{CatCardiovascular, Contains("heart", "cardiac", "cardiovascular",
		"hypertension", "stroke")},
	{CatDiabetes, Contains("diabetes", "diabetic", "glucose", "insulin")},
	{CatRespiratory, Contains("asthma", "copd", "respiratory", "lung",
		"pulmonary")},
	{CatNeurological, Contains("alzheimer", "parkinson", "neurological",
		"brain", "stroke")},
	{CatMentalHealth, Contains("depression", "anxiety", "mental",
		"psychiatric", "bipolar")},
	{CatInfectious, Contains("infection", "viral", "bacterial", "hiv",
		"covid")},
	{CatAutoimmune, Contains("arthritis", "lupus", "autoimmune",
		"inflammatory")},
	{CatPediatric, Contains("pediatric", "child", "infant", "neonatal")},
	{CatGeriatric, Contains("elderly", "geriatric", "aging", "senior")},
}

// CategorizeCondition returns the category of condition text, "Other" if
// no keyword set matches and "Unknown" for absent text.
func CategorizeCondition(s sql.NullString) string {
	cs := CleanNull(s)
	if !cs.Valid {
		return Unknown
	}
	return ConditionRules.Classify(cs.String, CatOther)
}

// Sponsor types.
const (
	SponsorIndustry      = "Industry"
	SponsorAcademic      = "Academic"
	SponsorGovernment    = "Government"
	SponsorMedicalCenter = "Medical Center"
	SponsorOther         = "Other"
)

// SponsorClassRules classify the registry sponsor class (INDUSTRY, NIH,
// FED, OTHER_GOV...).
var SponsorClassRules = Classifier{
	{SponsorIndustry, Contains("industry")},
	{SponsorAcademic, Contains("university", "academic", "college")},
	{SponsorGovernment, Contains("government", "nih", "fed", "gov")},
	{SponsorMedicalCenter, Contains("hospital", "medical", "clinic")},
}

// SponsorNameRules classify a sponsor by its name when the class does not
// tell anything.
var SponsorNameRules = Classifier{
	{SponsorIndustry, Words(
		`\b(inc|corp|corporation|llc|ltd|gmbh|pharma\w*|biotech\w*|therapeutics)\b`)},
	{SponsorAcademic, Words(`\b(univ\w*|college|academ\w*|institute|school)\b`)},
	{SponsorGovernment, Words(`\b(national|federal|government|ministry|nih)\b`)},
	{SponsorMedicalCenter, Words(`\b(hospital|medical|clinic\w*)\b`)},
}

// SponsorType classifies a sponsor by its class, falling back to the name.
// Returns "Unknown" when both are absent.
func SponsorType(class, name sql.NullString) string {
	class = CleanNull(class)
	name = CleanNull(name)
	if !class.Valid && !name.Valid {
		return Unknown
	}
	if class.Valid {
		if res := SponsorClassRules.Classify(class.String, SponsorOther); res != SponsorOther {
			return res
		}
	}
	if name.Valid {
		return SponsorNameRules.Classify(name.String, SponsorOther)
	}
	return SponsorOther
}

// EnrollmentCategory buckets an enrollment count.
func EnrollmentCategory(n sql.NullInt64) string {
	switch {
	case !n.Valid || n.Int64 <= 0:
		return Unknown
	case n.Int64 <= 50:
		return "Small"
	case n.Int64 <= 200:
		return "Medium"
	case n.Int64 <= 1000:
		return "Large"
	default:
		return "Very Large"
	}
}
