package handlers

import (
	"context"
	"log/slog"
	"net/http"
)

type CoachAuthenticator interface {
	SignIn(ctx context.Context, email, accessCode string) (string, error)
}

type AuthHandler struct {
	auth   CoachAuthenticator
	logger *slog.Logger
}

func NewAuthHandler(auth CoachAuthenticator, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// SignIn handles POST /auth/signin: exchanges an allow-listed coach e-mail
// plus the shared access code for a bearer token.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email      string `json:"email"`
		AccessCode string `json:"accessCode"`
	}
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, h.logger, err)
		return
	}

	token, err := h.auth.SignIn(r.Context(), req.Email, req.AccessCode)
	if err != nil {
		mapServiceErrorToHTTP(w, h.logger, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, jsonResponse{"ok": true, "token": token})
}
