package http

import (
	"net/http"

	"github.com/skillsphere/skillsphere-backend-go/internal/domain/dashboard"
	"github.com/skillsphere/skillsphere-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetCoverage returns the anonymized skill coverage overview
	GetCoverage(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetCoverage handles GET /dashboard/coverage
func (h *dashboardHandlerImpl) GetCoverage(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetOverview(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
