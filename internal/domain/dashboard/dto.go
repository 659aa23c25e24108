package dashboard

// ========== CAPABILITY COVERAGE ==========

// CapabilityCoverage reports how well one capability meets its band
// requirements.
type CapabilityCoverage struct {
	Capability          string  `json:"capability"`
	Headcount           int64   `json:"headcount"`
	MeetingRequirements int64   `json:"meeting_requirements"`
	CoveragePercent     float64 `json:"coverage_percent"`
	AvgSkillRating      float64 `json:"avg_skill_rating"`
}

// ========== BAND DISTRIBUTION ==========

// BandCount is the headcount of one band.
type BandCount struct {
	Band  string `json:"band"`
	Count int64  `json:"count"`
}

// ========== ASSESSMENT TREND ==========

// MonthlyAssessmentCount is the number of assessments recorded in one
// month. Month format: "YYYY-MM".
type MonthlyAssessmentCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// ========== SKILL GAPS ==========

// SkillGapStat aggregates how far employees sit below a required level
// for one skill.
type SkillGapStat struct {
	SkillID    string  `json:"skill_id"`
	SkillName  string  `json:"skill_name"`
	BelowCount int64   `json:"below_count"`
	AvgGap     float64 `json:"avg_gap"`
}

// ========== RECENT ACTIVITY ==========

// RecentAssessment is one row of the activity feed. EmployeeName is
// stripped by the personal filter before the payload ships.
type RecentAssessment struct {
	EmployeeName string `json:"employee_name"`
	SkillName    string `json:"skill_name"`
	Level        string `json:"level"`
	RecordedAt   string `json:"recorded_at"`
}
