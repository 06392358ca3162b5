package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/adventuresync/server/internal/service"
)

// maxUploadSize caps uploads at 10 MiB, enforced before any state changes.
const maxUploadSize = 10 << 20

// FileHandler handles file metadata, uploads, and token downloads.
type FileHandler struct {
	files *service.FileService
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(files *service.FileService) *FileHandler {
	return &FileHandler{files: files}
}

// HandleList returns the caller's files, newest first.
// GET /api/v1/files
func (h *FileHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	files, err := h.files.ListByUser(r.Context(), user.ID)
	if err != nil {
		respondError(w, err, "list files")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"files": toFileDTOs(files)})
}

// HandleUpload accepts a multipart upload under the "file" field. Requests
// over the size ceiling are rejected before anything is stored.
// POST /api/v1/upload
func (h *FileHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "File exceeds the 10 MiB upload limit.")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid multipart request.")
		return
	}

	part, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing \"file\" field.")
		return
	}
	defer part.Close()

	file, err := h.files.Upload(r.Context(), user.ID, header.Filename, part)
	if err != nil {
		respondError(w, err, "upload file")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"file": toFileDTO(file)})
}

type generateTokenRequest struct {
	FileID string `json:"fileId" validate:"required"`
}

// HandleGenerateToken issues a 24h download token for a file the caller
// owns. Issuing a new token revokes the previous one.
// POST /api/v1/files/generate-token
func (h *FileHandler) HandleGenerateToken(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req generateTokenRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := checkRequest(req); err != nil {
		respondError(w, err, "validate token request")
		return
	}

	token, expiry, err := h.files.GenerateToken(r.Context(), user.ID, req.FileID)
	if err != nil {
		respondError(w, err, "generate download token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token":  token,
		"expiry": expiry.Format(time.RFC3339),
	})
}

// HandleDownload streams a file for a valid capability token. No session
// is required; the token is the whole credential.
// GET /api/v1/files/download?token=...
func (h *FileHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "Missing download token.")
		return
	}

	file, blob, err := h.files.ResolveToken(r.Context(), token)
	if err != nil {
		respondError(w, err, "resolve download token")
		return
	}
	defer blob.Close()

	w.Header().Set("Content-Type", file.MimeType)
	w.Header().Set("Content-Length", strconv.FormatInt(file.Size, 10))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.OriginalName))
	if _, err := io.Copy(w, blob); err != nil {
		// Headers are already out; all we can do is log.
		slog.Error("stream download", "file_id", file.ID, "error", err)
	}
}

// HandleTransform is a placeholder for server-side file transformation.
// POST /api/v1/transform
func (h *FileHandler) HandleTransform(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotImplemented, "File transformation is not implemented yet.")
}
