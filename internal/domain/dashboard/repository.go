package dashboard

import "context"

// DashboardRepository defines the interface for dashboard data access
type DashboardRepository interface {
	// GetCapabilityCoverage returns headcount, requirement coverage and
	// average rating per capability in a single query
	GetCapabilityCoverage(ctx context.Context) ([]CapabilityCoverage, error)

	// GetBandDistribution returns headcount per band
	GetBandDistribution(ctx context.Context) ([]BandCount, error)

	// GetAssessmentTrend returns assessments recorded per month for the
	// trailing window
	GetAssessmentTrend(ctx context.Context, months int) ([]MonthlyAssessmentCount, error)

	// GetTopSkillGaps returns the skills employees sit furthest below
	// their band requirements on
	GetTopSkillGaps(ctx context.Context, limit int) ([]SkillGapStat, error)

	// GetRecentAssessments returns the latest assessment activity rows
	GetRecentAssessments(ctx context.Context, limit int) ([]RecentAssessment, error)
}
