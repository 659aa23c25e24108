package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/levelmove"
	"github.com/skillsphere/skillsphere-backend-go/internal/handler/http/response"
)

type LevelMovementHandler interface {
	RequestMovement(w http.ResponseWriter, r *http.Request)
	ApproveMovement(w http.ResponseWriter, r *http.Request)
	RejectMovement(w http.ResponseWriter, r *http.Request)
	ApplyMovement(w http.ResponseWriter, r *http.Request)
	ListMovements(w http.ResponseWriter, r *http.Request)
}

type levelMovementHandlerImpl struct {
	movementService levelmove.LevelMovementService
}

func NewLevelMovementHandler(movementService levelmove.LevelMovementService) LevelMovementHandler {
	return &levelMovementHandlerImpl{movementService: movementService}
}

// RequestMovement implements LevelMovementHandler
func (h *levelMovementHandlerImpl) RequestMovement(w http.ResponseWriter, r *http.Request) {
	var req levelmove.RequestMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.movementService.Request(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Level movement requested successfully", result)
}

// ApproveMovement implements LevelMovementHandler
func (h *levelMovementHandlerImpl) ApproveMovement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Movement ID is required", nil)
		return
	}

	result, err := h.movementService.Approve(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Level movement approved successfully", result)
}

// RejectMovement implements LevelMovementHandler
func (h *levelMovementHandlerImpl) RejectMovement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Movement ID is required", nil)
		return
	}

	var req levelmove.RejectMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.movementService.Reject(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Level movement rejected", result)
}

// ApplyMovement implements LevelMovementHandler
func (h *levelMovementHandlerImpl) ApplyMovement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Movement ID is required", nil)
		return
	}

	result, err := h.movementService.Apply(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Level movement applied successfully", result)
}

// ListMovements implements LevelMovementHandler
func (h *levelMovementHandlerImpl) ListMovements(w http.ResponseWriter, r *http.Request) {
	filter := levelmove.MovementFilter{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Status:     r.URL.Query().Get("status"),
	}

	if l := r.URL.Query().Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			filter.Limit = limitNum
		}
	}

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.movementService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}
