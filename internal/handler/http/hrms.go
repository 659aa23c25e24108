package http

import (
	"net/http"

	"github.com/skillsphere/skillsphere-backend-go/internal/handler/http/response"
	"github.com/skillsphere/skillsphere-backend-go/internal/service/hrmssync"
)

type HRMSHandler interface {
	TriggerSync(w http.ResponseWriter, r *http.Request)
}

type hrmsHandlerImpl struct {
	syncer hrmssync.Syncer
}

func NewHRMSHandler(syncer hrmssync.Syncer) HRMSHandler {
	return &hrmsHandlerImpl{syncer: syncer}
}

// TriggerSync implements HRMSHandler. The run is synchronous; the summary
// reports per-record failures without failing the request.
func (h *hrmsHandlerImpl) TriggerSync(w http.ResponseWriter, r *http.Request) {
	summary, err := h.syncer.Trigger(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "HRMS sync completed", summary)
}
