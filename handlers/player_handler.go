package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/athlos-fc/academy-system/models"
)

type PlayerRoster interface {
	CreateDirect(ctx context.Context, name string, age, jersey int) (*models.Player, error)
	List(ctx context.Context) ([]*models.Player, error)
}

type PlayerHandler struct {
	players PlayerRoster
	logger  *slog.Logger
}

func NewPlayerHandler(players PlayerRoster, logger *slog.Logger) *PlayerHandler {
	return &PlayerHandler{players: players, logger: logger}
}

// Create handles POST /players (coach only): a direct roster entry that does
// not go through the registration workflow.
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string `json:"name"`
		Age    int    `json:"age"`
		Jersey int    `json:"jersey"`
	}
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, h.logger, err)
		return
	}

	player, err := h.players.CreateDirect(r.Context(), req.Name, req.Age, req.Jersey)
	if err != nil {
		mapServiceErrorToHTTP(w, h.logger, err)
		return
	}
	_ = writeJSON(w, http.StatusCreated, jsonResponse{"ok": true, "player": player})
}

// List handles GET /players (coach only).
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.players.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, h.logger, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, jsonResponse{"ok": true, "players": players})
}
