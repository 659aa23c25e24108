package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetOverview returns the combined coverage dashboard. The payload is
	// anonymized and financially filtered before it ships, and cached
	// with a short TTL.
	GetOverview(ctx context.Context) (map[string]any, error)
}
