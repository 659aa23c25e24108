package http

import (
	"net/http"
	"strconv"

	"github.com/skillsphere/skillsphere-backend-go/internal/domain/audit"
	"github.com/skillsphere/skillsphere-backend-go/internal/handler/http/response"
)

type AuditHandler interface {
	QueryAuditLog(w http.ResponseWriter, r *http.Request)
}

type auditHandlerImpl struct {
	auditService audit.Service
}

func NewAuditHandler(auditService audit.Service) AuditHandler {
	return &auditHandlerImpl{auditService: auditService}
}

// QueryAuditLog implements AuditHandler
func (h *auditHandlerImpl) QueryAuditLog(w http.ResponseWriter, r *http.Request) {
	filter := audit.QueryFilter{
		UserID:     r.URL.Query().Get("user_id"),
		Action:     r.URL.Query().Get("action"),
		TargetType: r.URL.Query().Get("target_type"),
		TargetID:   r.URL.Query().Get("target_id"),
	}

	if d := r.URL.Query().Get("days"); d != "" {
		if days, err := strconv.Atoi(d); err == nil {
			filter.Days = days
		}
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			filter.Limit = limitNum
		}
	}

	results, err := h.auditService.Query(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}
