package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/skillsphere/skillsphere-backend-go/internal/domain/dashboard"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// GetCapabilityCoverage returns headcount, requirement coverage and average
// rating per capability in a single query. An employee counts as meeting
// requirements when no band requirement sits above their current level.
func (r *dashboardRepositoryImpl) GetCapabilityCoverage(ctx context.Context) ([]dashboard.CapabilityCoverage, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			e.capability,
			COUNT(*) AS headcount,
			COUNT(*) FILTER (WHERE NOT EXISTS (
				SELECT 1 FROM band_requirements br
				WHERE br.band = e.band
				AND NOT EXISTS (
					SELECT 1 FROM skill_assessments a
					WHERE a.employee_id = e.id
					AND a.skill_id = br.skill_id
					AND level_rank(a.current_level) >= level_rank(br.required_level)
				)
			)) AS meeting_requirements,
			COALESCE(AVG(sa.avg_skill_rating), 0)::float8 AS avg_skill_rating
		FROM employees e
		LEFT JOIN (
			SELECT employee_id, AVG(level_rank(current_level))::float8 AS avg_skill_rating
			FROM skill_assessments
			GROUP BY employee_id
		) sa ON sa.employee_id = e.id
		WHERE e.active = TRUE
		GROUP BY e.capability
		ORDER BY e.capability ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get capability coverage: %w", err)
	}
	defer rows.Close()

	var coverage []dashboard.CapabilityCoverage
	for rows.Next() {
		var c dashboard.CapabilityCoverage
		if err := rows.Scan(&c.Capability, &c.Headcount, &c.MeetingRequirements, &c.AvgSkillRating); err != nil {
			return nil, fmt.Errorf("failed to scan capability coverage: %w", err)
		}
		if c.Headcount > 0 {
			c.CoveragePercent = float64(c.MeetingRequirements) / float64(c.Headcount) * 100
		}
		coverage = append(coverage, c)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return coverage, nil
}

// GetBandDistribution returns headcount per band.
func (r *dashboardRepositoryImpl) GetBandDistribution(ctx context.Context) ([]dashboard.BandCount, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT band, COUNT(*)
		FROM employees
		WHERE active = TRUE
		GROUP BY band
		ORDER BY band ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get band distribution: %w", err)
	}
	defer rows.Close()

	var counts []dashboard.BandCount
	for rows.Next() {
		var b dashboard.BandCount
		if err := rows.Scan(&b.Band, &b.Count); err != nil {
			return nil, fmt.Errorf("failed to scan band count: %w", err)
		}
		counts = append(counts, b)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

// GetAssessmentTrend returns assessments recorded per month for the
// trailing window.
func (r *dashboardRepositoryImpl) GetAssessmentTrend(ctx context.Context, months int) ([]dashboard.MonthlyAssessmentCount, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT to_char(date_trunc('month', recorded_at), 'YYYY-MM') AS month, COUNT(*)
		FROM assessment_history
		WHERE recorded_at >= date_trunc('month', NOW()) - make_interval(months => $1 - 1)
		GROUP BY 1
		ORDER BY 1 ASC
	`

	rows, err := q.Query(ctx, query, months)
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment trend: %w", err)
	}
	defer rows.Close()

	var trend []dashboard.MonthlyAssessmentCount
	for rows.Next() {
		var m dashboard.MonthlyAssessmentCount
		if err := rows.Scan(&m.Month, &m.Count); err != nil {
			return nil, fmt.Errorf("failed to scan assessment trend: %w", err)
		}
		trend = append(trend, m)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return trend, nil
}

// GetTopSkillGaps returns the skills employees sit furthest below their
// band requirements on. Missing assessments count as the lowest level.
func (r *dashboardRepositoryImpl) GetTopSkillGaps(ctx context.Context, limit int) ([]dashboard.SkillGapStat, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.name,
			COUNT(*) AS below_count,
			AVG(level_rank(br.required_level) - COALESCE(level_rank(a.current_level), 1))::float8 AS avg_gap
		FROM employees e
		JOIN band_requirements br ON br.band = e.band
		JOIN skills s ON s.id = br.skill_id
		LEFT JOIN skill_assessments a ON a.employee_id = e.id AND a.skill_id = br.skill_id
		WHERE e.active = TRUE
			AND COALESCE(level_rank(a.current_level), 1) < level_rank(br.required_level)
		GROUP BY s.id, s.name
		ORDER BY below_count DESC, s.name ASC
		LIMIT $1
	`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top skill gaps: %w", err)
	}
	defer rows.Close()

	var gaps []dashboard.SkillGapStat
	for rows.Next() {
		var g dashboard.SkillGapStat
		if err := rows.Scan(&g.SkillID, &g.SkillName, &g.BelowCount, &g.AvgGap); err != nil {
			return nil, fmt.Errorf("failed to scan skill gap: %w", err)
		}
		gaps = append(gaps, g)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return gaps, nil
}

// GetRecentAssessments returns the latest assessment activity rows.
func (r *dashboardRepositoryImpl) GetRecentAssessments(ctx context.Context, limit int) ([]dashboard.RecentAssessment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.full_name, s.name, h.new_level, h.recorded_at
		FROM assessment_history h
		JOIN employees e ON e.id = h.employee_id
		JOIN skills s ON s.id = h.skill_id
		ORDER BY h.recorded_at DESC, h.id DESC
		LIMIT $1
	`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent assessments: %w", err)
	}
	defer rows.Close()

	var recent []dashboard.RecentAssessment
	for rows.Next() {
		var item dashboard.RecentAssessment
		var recordedAt time.Time
		if err := rows.Scan(&item.EmployeeName, &item.SkillName, &item.Level, &recordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recent assessment: %w", err)
		}
		item.RecordedAt = recordedAt.Format("2006-01-02T15:04:05Z07:00")
		recent = append(recent, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return recent, nil
}
