package schema

// View is a reporting view over the star schema. Its SQL works on both
// PostgreSQL and SQLite.
type View struct {
	Name string
	// Key is the first column of the view.
	Key   string
	Query string
}

// Views returns roll-up views used by dashboards. They are created by the
// optimize step and dropped before the schema is recreated.
func Views() []View {
	return []View{
		{
			Name: "v_sponsor_rollup",
			Key:  "sponsor_key",
			Query: `SELECT s.sponsor_key, s.sponsor_name, s.sponsor_type, s.country,
    COUNT(f.trial_key) AS trial_count,
    SUM(CASE WHEN f.is_completed THEN 1 ELSE 0 END) AS completed_count,
    SUM(CASE WHEN f.is_terminated THEN 1 ELSE 0 END) AS terminated_count,
    SUM(CASE WHEN f.is_recruiting THEN 1 ELSE 0 END) AS recruiting_count,
    SUM(f.enrollment_count) AS total_enrollment,
    AVG(f.data_quality_score) AS avg_quality_score
  FROM dim_sponsor s
  LEFT JOIN fact_trials f ON f.sponsor_key = s.sponsor_key
  GROUP BY s.sponsor_key, s.sponsor_name, s.sponsor_type, s.country`,
		},
		{
			Name: "v_condition_rollup",
			Key:  "condition_category",
			Query: `SELECT c.condition_category,
    COUNT(DISTINCT c.condition_key) AS condition_count,
    COUNT(f.trial_key) AS trial_count,
    SUM(CASE WHEN f.is_completed THEN 1 ELSE 0 END) AS completed_count,
    AVG(f.duration_days) AS avg_duration_days,
    AVG(f.data_quality_score) AS avg_quality_score
  FROM dim_condition c
  LEFT JOIN fact_trials f ON f.condition_key = c.condition_key
  GROUP BY c.condition_category`,
		},
		{
			Name: "v_location_rollup",
			Key:  "continent",
			Query: `SELECT l.continent, l.region, l.country,
    COUNT(f.trial_key) AS trial_count,
    SUM(CASE WHEN f.is_recruiting THEN 1 ELSE 0 END) AS recruiting_count,
    SUM(f.enrollment_count) AS total_enrollment
  FROM dim_location l
  LEFT JOIN fact_trials f ON f.location_key = l.location_key
  GROUP BY l.continent, l.region, l.country`,
		},
		{
			Name: "v_monthly_activity",
			Key:  "year",
			Query: `SELECT d.year, d.month_number, d.month_name,
    COUNT(f.trial_key) AS trials_started,
    SUM(f.enrollment_count) AS planned_enrollment
  FROM fact_trials f
  JOIN dim_dates d ON f.start_date_key = d.date_key
  GROUP BY d.year, d.month_number, d.month_name`,
		},
	}
}

// ViewNames returns names of all reporting views.
func ViewNames() []string {
	views := Views()
	res := make([]string, len(views))
	for i := range views {
		res[i] = views[i].Name
	}
	return res
}

// FactIndexDDL returns indexes on fact foreign keys. Loading is faster
// without them, so they are created by the optimize step.
func FactIndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_fact_trials_sponsor ON fact_trials(sponsor_key);",
		"CREATE INDEX IF NOT EXISTS idx_fact_trials_location ON fact_trials(location_key);",
		"CREATE INDEX IF NOT EXISTS idx_fact_trials_condition ON fact_trials(condition_key);",
		"CREATE INDEX IF NOT EXISTS idx_fact_trials_intervention ON fact_trials(intervention_key);",
		"CREATE INDEX IF NOT EXISTS idx_fact_trials_start_date ON fact_trials(start_date_key);",
		"CREATE INDEX IF NOT EXISTS idx_fact_trials_completion_date ON fact_trials(completion_date_key);",
		"CREATE INDEX IF NOT EXISTS idx_fact_trials_status ON fact_trials(status);",
	}
}
