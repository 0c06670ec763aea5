package warehouse

import (
	"strings"

	"github.com/gnames/trialwh/pkg/schema"
)

// AssembleFacts resolves surrogate keys of staging trials and computes
// derived measures. A natural key without a loaded dimension row gives a
// null foreign key. Each fact depends only on its own staging trial and
// the dimensions.
func AssembleFacts(
	trials []schema.StagingTrial,
	dims *Dimensions,
) []schema.FactTrial {
	if dims == nil {
		dims = LoadDimensions(nil)
	}
	res := make([]schema.FactTrial, 0, len(trials))
	for i := range trials {
		res = append(res, assemble(i+1, &trials[i], dims))
	}
	return res
}

func assemble(key int, t *schema.StagingTrial, dims *Dimensions) schema.FactTrial {
	status := strings.ToLower(t.Status)
	return schema.FactTrial{
		TrialKey:            key,
		NctID:               t.NctID,
		SponsorKey:          dims.SponsorKey(t.SponsorID),
		LocationKey:         dims.LocationKey(t.LocationID),
		ConditionKey:        dims.ConditionKey(t.ConditionID),
		InterventionKey:     dims.InterventionKey(t.InterventionID),
		StartDateKey:        dims.DateKey(t.StudyStartDate),
		CompletionDateKey:   dims.DateKey(t.StudyCompletionDate),
		BriefTitle:          t.BriefTitle,
		Phase:               t.Phase,
		PhaseNumber:         t.PhaseNumber,
		Status:              t.Status,
		StudyType:           t.StudyType,
		EnrollmentCount:     t.EnrollmentCount,
		EnrollmentCategory:  t.EnrollmentCategory,
		StudyStartDate:      t.StudyStartDate,
		StudyCompletionDate: t.StudyCompletionDate,
		DurationDays:        t.DurationDays,

		EnrollmentTargetMet: t.EnrollmentCount.Valid && t.EnrollmentCount.Int64 > 0,
		IsCompleted:         strings.Contains(status, "completed"),
		IsTerminated:        strings.Contains(status, "terminated"),
		IsRecruiting:        strings.Contains(status, "recruiting"),

		DataCompletenessScore: t.DataCompletenessScore,
		DataQualityScore:      t.DataQualityScore,
	}
}
