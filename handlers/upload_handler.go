package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/athlos-fc/academy-system/storage"
	"golang.org/x/sync/errgroup"
)

// maxPresignBatch bounds one authorization request to the four document
// slots of the registration form plus headroom.
const maxPresignBatch = 10

type UploadHandler struct {
	presigner storage.Presigner
	logger    *slog.Logger
}

func NewUploadHandler(presigner storage.Presigner, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{presigner: presigner, logger: logger}
}

type presignFileRequest struct {
	Field       string `json:"field"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
}

type presignedUpload struct {
	Field       string `json:"field"`
	Key         string `json:"key"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType,omitempty"`
	UploadURL   string `json:"uploadUrl"`
}

// Presign handles POST /uploads/presigned (public: the registration form
// requests upload authorization before submitting). Each file gets a fresh
// object key and a short-lived PUT URL; the batch is presigned concurrently.
func (h *UploadHandler) Presign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Files []presignFileRequest `json:"files"`
	}
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, h.logger, err)
		return
	}
	if len(req.Files) == 0 {
		badRequestResponse(w, h.logger, errors.New("files[] required"))
		return
	}
	if len(req.Files) > maxPresignBatch {
		badRequestResponse(w, h.logger, errors.New("too many files in one request"))
		return
	}
	for _, f := range req.Files {
		if f.Filename == "" {
			badRequestResponse(w, h.logger, errors.New("each file needs a filename"))
			return
		}
	}

	uploads := make([]presignedUpload, len(req.Files))
	g, ctx := errgroup.WithContext(r.Context())
	for i, f := range req.Files {
		i, f := i, f
		g.Go(func() error {
			key := storage.ObjectKey(f.Filename)
			url, err := h.presigner.PresignUpload(ctx, key, f.ContentType)
			if err != nil {
				return err
			}
			uploads[i] = presignedUpload{
				Field:       f.Field,
				Key:         key,
				Filename:    f.Filename,
				ContentType: f.ContentType,
				UploadURL:   url,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		serverErrorResponse(w, h.logger, err)
		return
	}

	_ = writeJSON(w, http.StatusOK, jsonResponse{"ok": true, "uploads": uploads})
}

// Download handles GET /uploads/download?key=... (coach only: dashboard
// document viewing).
func (h *UploadHandler) Download(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		badRequestResponse(w, h.logger, errors.New("key required"))
		return
	}

	url, err := h.presigner.PresignDownload(r.Context(), key)
	if err != nil {
		serverErrorResponse(w, h.logger, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, jsonResponse{"ok": true, "downloadUrl": url})
}
