package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/dashboard"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/user"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/cache"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/redact"
	"golang.org/x/sync/errgroup"
)

const (
	trendMonths = 12
	topGapLimit = 10
	recentLimit = 20
)

type DashboardServiceImpl struct {
	dashboardRepo dashboard.DashboardRepository
	cache         *cache.Cache
}

func NewDashboardService(repo dashboard.DashboardRepository, cacheClient *cache.Cache) dashboard.DashboardService {
	return &DashboardServiceImpl{
		dashboardRepo: repo,
		cache:         cacheClient,
	}
}

func getClaimsFromContext(ctx context.Context) (userID string, role user.Role, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", fmt.Errorf("user_id claim is missing or invalid")
	}

	roleStr, _ := claims["role"].(string)
	return userID, user.Role(roleStr), nil
}

// GetOverview implements dashboard.DashboardService. The personal and
// financial filters run before the payload is cached, so identifying
// data never sits in redis.
func (s *DashboardServiceImpl) GetOverview(ctx context.Context) (map[string]any, error) {
	_, role, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !user.HasPermission(role, user.PermissionDashboardView) {
		return nil, user.ErrInsufficientPermissions
	}

	key, err := s.cache.BuildKey(ctx, "dashboard", "coverage")
	if err != nil {
		return nil, fmt.Errorf("failed to build cache key: %w", err)
	}

	var overview map[string]any
	err = s.cache.FetchJSON(ctx, key, &overview, func(loadCtx context.Context) (interface{}, error) {
		return s.buildOverview(loadCtx)
	})
	if err != nil {
		return nil, err
	}
	return overview, nil
}

func (s *DashboardServiceImpl) buildOverview(ctx context.Context) (map[string]any, error) {
	var (
		coverage []dashboard.CapabilityCoverage
		bands    []dashboard.BandCount
		trend    []dashboard.MonthlyAssessmentCount
		gaps     []dashboard.SkillGapStat
		recent   []dashboard.RecentAssessment
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Capability coverage (1 query: headcount, coverage, avg rating)
	g.Go(func() error {
		rows, err := s.dashboardRepo.GetCapabilityCoverage(gCtx)
		if err != nil {
			return err
		}
		coverage = rows
		return nil
	})

	// 2. Band distribution (1 query)
	g.Go(func() error {
		rows, err := s.dashboardRepo.GetBandDistribution(gCtx)
		if err != nil {
			return err
		}
		bands = rows
		return nil
	})

	// 3. Assessment trend (1 query over the trailing year)
	g.Go(func() error {
		rows, err := s.dashboardRepo.GetAssessmentTrend(gCtx, trendMonths)
		if err != nil {
			return err
		}
		trend = rows
		return nil
	})

	// 4. Top skill gaps (1 query)
	g.Go(func() error {
		rows, err := s.dashboardRepo.GetTopSkillGaps(gCtx, topGapLimit)
		if err != nil {
			return err
		}
		gaps = rows
		return nil
	})

	// 5. Recent assessment activity (1 query)
	g.Go(func() error {
		rows, err := s.dashboardRepo.GetRecentAssessments(gCtx, recentLimit)
		if err != nil {
			return err
		}
		recent = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load dashboard aggregates: %w", err)
	}

	overview := map[string]any{
		"capability_coverage": coverageRows(coverage),
		"band_distribution":   bandRows(bands),
		"assessment_trend":    trendRows(trend),
		"top_skill_gaps":      gapRows(gaps),
		"recent_activity":     activityRows(recent),
		"generated_at":        time.Now().Format("2006-01-02T15:04:05Z07:00"),
	}

	return redact.Personal(redact.Financial(overview)), nil
}

// The filters walk map[string]any values only, and the personal filter
// strips any key containing "name", so skill names ship under "skill".

func coverageRows(coverage []dashboard.CapabilityCoverage) []any {
	rows := make([]any, 0, len(coverage))
	for _, c := range coverage {
		rows = append(rows, map[string]any{
			"capability":           c.Capability,
			"headcount":            c.Headcount,
			"meeting_requirements": c.MeetingRequirements,
			"coverage_percent":     c.CoveragePercent,
			"avg_skill_rating":     c.AvgSkillRating,
		})
	}
	return rows
}

func bandRows(bands []dashboard.BandCount) []any {
	rows := make([]any, 0, len(bands))
	for _, b := range bands {
		rows = append(rows, map[string]any{
			"band":  b.Band,
			"count": b.Count,
		})
	}
	return rows
}

func trendRows(trend []dashboard.MonthlyAssessmentCount) []any {
	rows := make([]any, 0, len(trend))
	for _, t := range trend {
		rows = append(rows, map[string]any{
			"month": t.Month,
			"count": t.Count,
		})
	}
	return rows
}

func gapRows(gaps []dashboard.SkillGapStat) []any {
	rows := make([]any, 0, len(gaps))
	for _, gap := range gaps {
		rows = append(rows, map[string]any{
			"skill_id":    gap.SkillID,
			"skill":       gap.SkillName,
			"below_count": gap.BelowCount,
			"avg_gap":     gap.AvgGap,
		})
	}
	return rows
}

func activityRows(recent []dashboard.RecentAssessment) []any {
	rows := make([]any, 0, len(recent))
	for _, r := range recent {
		rows = append(rows, map[string]any{
			"employee_name": r.EmployeeName,
			"skill":         r.SkillName,
			"level":         r.Level,
			"recorded_at":   r.RecordedAt,
		})
	}
	return rows
}
