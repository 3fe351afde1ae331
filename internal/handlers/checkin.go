package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"commons-backend/internal/middleware"
	"commons-backend/internal/models"
)

type checkInService interface {
	List(ctx context.Context, tenantID, viewerID uuid.UUID) ([]*models.CheckIn, error)
	Get(ctx context.Context, tenantID, viewerID, id uuid.UUID) (*models.CheckInDetail, error)
	Create(ctx context.Context, tenantID, creatorID uuid.UUID, req models.CreateCheckInRequest) (*models.CheckIn, error)
	Cancel(ctx context.Context, tenantID, viewerID, id uuid.UUID) (*models.CheckIn, error)
	Map(ctx context.Context, tenantID, viewerID uuid.UUID) (*models.CheckInMap, error)
}

type CheckInHandler struct {
	service checkInService
}

func NewCheckInHandler(service checkInService) *CheckInHandler {
	return &CheckInHandler{service: service}
}

// List returns the active check-ins the caller can see. Always a JSON array.
func (h *CheckInHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context(), middleware.GetTenantID(r.Context()), middleware.GetUserID(r.Context()))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (h *CheckInHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	created, err := h.service.Create(r.Context(), middleware.GetTenantID(r.Context()), middleware.GetUserID(r.Context()), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *CheckInHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := checkInID(w, r)
	if !ok {
		return
	}

	detail, err := h.service.Get(r.Context(), middleware.GetTenantID(r.Context()), middleware.GetUserID(r.Context()), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

func (h *CheckInHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := checkInID(w, r)
	if !ok {
		return
	}

	cancelled, err := h.service.Cancel(r.Context(), middleware.GetTenantID(r.Context()), middleware.GetUserID(r.Context()), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, cancelled)
}

func (h *CheckInHandler) Map(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Map(r.Context(), middleware.GetTenantID(r.Context()), middleware.GetUserID(r.Context()))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func checkInID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid check-in ID", r))
		return uuid.Nil, false
	}
	return id, true
}
