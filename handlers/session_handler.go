package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/athlos-fc/academy-system/models"
	"github.com/athlos-fc/academy-system/services"
	"github.com/go-chi/chi/v5"
)

type SessionManager interface {
	Create(ctx context.Context, date, name string) (*models.SessionView, error)
	SetAttendees(ctx context.Context, sessionID int, playerIDs []int) (*models.SessionView, error)
	Get(ctx context.Context, sessionID int) (*models.SessionView, error)
	List(ctx context.Context) ([]*models.SessionView, error)
}

type SessionHandler struct {
	sessions SessionManager
	logger   *slog.Logger
}

func NewSessionHandler(sessions SessionManager, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, logger: logger}
}

// Create handles POST /sessions (coach only).
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date string `json:"date"`
		Name string `json:"name"`
	}
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, h.logger, err)
		return
	}

	view, err := h.sessions.Create(r.Context(), req.Date, req.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, h.logger, err)
		return
	}
	_ = writeJSON(w, http.StatusCreated, jsonResponse{"ok": true, "session": view})
}

// List handles GET /sessions (coach only).
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.sessions.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, h.logger, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, jsonResponse{"ok": true, "sessions": views})
}

// Get handles GET /sessions/{id} (coach only).
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	view, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, h.logger, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, jsonResponse{"ok": true, "session": view})
}

// SetAttendees handles PUT /sessions/{id} (coach only). The attendee list is
// replaced wholesale; ids arrive as strings and are coerced to the canonical
// integer id. Unknown but well-formed ids are accepted silently.
func (h *SessionHandler) SetAttendees(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	var req struct {
		Attendees []string `json:"attendees"`
	}
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, h.logger, err)
		return
	}

	playerIDs := make([]int, 0, len(req.Attendees))
	for _, raw := range req.Attendees {
		playerID, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			badRequestResponse(w, h.logger, fmt.Errorf("invalid attendee id %q: %w", raw, services.ErrValidationFailed))
			return
		}
		playerIDs = append(playerIDs, playerID)
	}

	view, err := h.sessions.SetAttendees(r.Context(), id, playerIDs)
	if err != nil {
		mapServiceErrorToHTTP(w, h.logger, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, jsonResponse{"ok": true, "session": view})
}

func (h *SessionHandler) idParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		notFoundResponse(w, h.logger)
		return 0, false
	}
	return id, true
}
