package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/project"
	"github.com/skillsphere/skillsphere-backend-go/internal/handler/http/response"
)

type AssignmentHandler interface {
	CreateAssignment(w http.ResponseWriter, r *http.Request)
	ListAssignments(w http.ResponseWriter, r *http.Request)
	EndAssignment(w http.ResponseWriter, r *http.Request)
}

type assignmentHandlerImpl struct {
	assignmentService project.AssignmentService
}

func NewAssignmentHandler(assignmentService project.AssignmentService) AssignmentHandler {
	return &assignmentHandlerImpl{assignmentService: assignmentService}
}

// CreateAssignment implements AssignmentHandler
func (h *assignmentHandlerImpl) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req project.CreateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.assignmentService.CreateAssignment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Assignment created successfully", result)
}

// ListAssignments implements AssignmentHandler
func (h *assignmentHandlerImpl) ListAssignments(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	supervisorID := r.URL.Query().Get("supervisor_id")

	results, err := h.assignmentService.ListAssignments(r.Context(), employeeID, supervisorID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// EndAssignment implements AssignmentHandler
func (h *assignmentHandlerImpl) EndAssignment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Assignment ID is required", nil)
		return
	}

	if err := h.assignmentService.EndAssignment(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Assignment ended successfully", nil)
}
