package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/skill"
	"github.com/skillsphere/skillsphere-backend-go/internal/handler/http/response"
)

type SkillHandler interface {
	CreateSkill(w http.ResponseWriter, r *http.Request)
	ListSkills(w http.ResponseWriter, r *http.Request)
	CreatePathway(w http.ResponseWriter, r *http.Request)
	ListPathways(w http.ResponseWriter, r *http.Request)
	TagSkill(w http.ResponseWriter, r *http.Request)
	SetRequirement(w http.ResponseWriter, r *http.Request)
	Assess(w http.ResponseWriter, r *http.Request)
	ListAssessments(w http.ResponseWriter, r *http.Request)
	ListHistory(w http.ResponseWriter, r *http.Request)
	AssignPathway(w http.ResponseWriter, r *http.Request)
	Readiness(w http.ResponseWriter, r *http.Request)
}

type skillHandlerImpl struct {
	skillService skill.SkillService
}

func NewSkillHandler(skillService skill.SkillService) SkillHandler {
	return &skillHandlerImpl{skillService: skillService}
}

// CreateSkill implements SkillHandler
func (h *skillHandlerImpl) CreateSkill(w http.ResponseWriter, r *http.Request) {
	var req skill.CreateSkillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.skillService.CreateSkill(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Skill created successfully", result)
}

// ListSkills implements SkillHandler
func (h *skillHandlerImpl) ListSkills(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	results, err := h.skillService.ListSkills(r.Context(), category)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// CreatePathway implements SkillHandler
func (h *skillHandlerImpl) CreatePathway(w http.ResponseWriter, r *http.Request) {
	var req skill.CreatePathwayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.skillService.CreatePathway(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Pathway created successfully", result)
}

// ListPathways implements SkillHandler
func (h *skillHandlerImpl) ListPathways(w http.ResponseWriter, r *http.Request) {
	results, err := h.skillService.ListPathways(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// TagSkill implements SkillHandler
func (h *skillHandlerImpl) TagSkill(w http.ResponseWriter, r *http.Request) {
	skillID := chi.URLParam(r, "id")
	pathwayID := chi.URLParam(r, "pathwayID")
	if skillID == "" || pathwayID == "" {
		response.BadRequest(w, "Skill ID and pathway ID are required", nil)
		return
	}

	if err := h.skillService.TagSkill(r.Context(), skillID, pathwayID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Skill tagged to pathway successfully", nil)
}

// SetRequirement implements SkillHandler
func (h *skillHandlerImpl) SetRequirement(w http.ResponseWriter, r *http.Request) {
	var req skill.SetRequirementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.skillService.SetRequirement(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Band requirement saved successfully", nil)
}

// Assess implements SkillHandler
func (h *skillHandlerImpl) Assess(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	skillID := chi.URLParam(r, "skillID")
	if employeeID == "" || skillID == "" {
		response.BadRequest(w, "Employee ID and skill ID are required", nil)
		return
	}

	var req skill.AssessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.skillService.Assess(r.Context(), employeeID, skillID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Assessment recorded successfully", result)
}

// ListAssessments implements SkillHandler
func (h *skillHandlerImpl) ListAssessments(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	results, err := h.skillService.ListAssessments(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// ListHistory implements SkillHandler
func (h *skillHandlerImpl) ListHistory(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	skillID := chi.URLParam(r, "skillID")
	if employeeID == "" || skillID == "" {
		response.BadRequest(w, "Employee ID and skill ID are required", nil)
		return
	}

	results, err := h.skillService.ListHistory(r.Context(), employeeID, skillID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// AssignPathway implements SkillHandler
func (h *skillHandlerImpl) AssignPathway(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	var req skill.AssignPathwayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.skillService.AssignPathway(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pathway assigned successfully", result)
}

// Readiness implements SkillHandler
func (h *skillHandlerImpl) Readiness(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}
	band := r.URL.Query().Get("band")

	result, err := h.skillService.Readiness(r.Context(), employeeID, band)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
