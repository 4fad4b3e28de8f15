package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/athlos-fc/academy-system/models"
	"github.com/athlos-fc/academy-system/services"
	"github.com/go-chi/chi/v5"
)

type RegistrationSubmitter interface {
	Submit(ctx context.Context, input services.SubmitRegistrationInput) (int, error)
	Get(ctx context.Context, id int) (*models.Registration, error)
	List(ctx context.Context, statusFilter *models.RegistrationStatus) ([]*models.RegistrationSummary, error)
}

type RegistrationApprover interface {
	Approve(ctx context.Context, registrationID int) (int, error)
	Reject(ctx context.Context, registrationID int) error
}

type RegistrationHandler struct {
	registrations RegistrationSubmitter
	approvals     RegistrationApprover
	logger        *slog.Logger
}

func NewRegistrationHandler(registrations RegistrationSubmitter, approvals RegistrationApprover, logger *slog.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		registrations: registrations,
		approvals:     approvals,
		logger:        logger,
	}
}

// Submit handles POST /registrations (public).
func (h *RegistrationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRegistrationRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, h.logger, err)
		return
	}

	id, err := h.registrations.Submit(r.Context(), req.toInput())
	if err != nil {
		mapServiceErrorToHTTP(w, h.logger, err)
		return
	}

	_ = writeJSON(w, http.StatusCreated, jsonResponse{"ok": true, "id": id})
}

// List handles GET /registrations?status=pending (coach only).
func (h *RegistrationHandler) List(w http.ResponseWriter, r *http.Request) {
	var statusFilter *models.RegistrationStatus
	switch models.RegistrationStatus(r.URL.Query().Get("status")) {
	case models.RegistrationStatusPending:
		s := models.RegistrationStatusPending
		statusFilter = &s
	case models.RegistrationStatusApproved:
		s := models.RegistrationStatusApproved
		statusFilter = &s
	}

	summaries, err := h.registrations.List(r.Context(), statusFilter)
	if err != nil {
		mapServiceErrorToHTTP(w, h.logger, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, jsonResponse{"ok": true, "registrations": summaries})
}

// Get handles GET /registrations/{id} (coach only).
func (h *RegistrationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	reg, err := h.registrations.Get(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, h.logger, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, jsonResponse{"ok": true, "registration": reg})
}

// Approve handles POST /registrations/{id}/approve (coach only).
func (h *RegistrationHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	playerID, err := h.approvals.Approve(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, h.logger, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, jsonResponse{"ok": true, "playerId": playerID})
}

// Reject handles DELETE /registrations/{id} (coach only).
func (h *RegistrationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	if err := h.approvals.Reject(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, h.logger, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, jsonResponse{"ok": true})
}

func (h *RegistrationHandler) idParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		notFoundResponse(w, h.logger)
		return 0, false
	}
	return id, true
}
