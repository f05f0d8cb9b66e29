package api

import (
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"

	"taskdesk/internal/api/shared"
	"taskdesk/internal/service/taskfile"
)

// maxUploadBytes caps report uploads at 32 MiB.
const maxUploadBytes = 32 << 20

// FileHandler handles report file uploads and downloads.
type FileHandler struct {
	files taskfile.Service
}

// NewFileHandler creates a new FileHandler with the given dependencies.
func NewFileHandler(files taskfile.Service) *FileHandler {
	return &FileHandler{files: files}
}

// Upload handles POST /api/tasks/{id}/file. Expects a multipart form with a
// "file" part.
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	caller, ok := getEmployeeFromContext(w, r)
	if !ok {
		return
	}

	taskID, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Multipart form with a \"file\" part required")
		return
	}
	defer file.Close()

	saved, err := h.files.Attach(r.Context(), caller, taskID, header.Filename, file)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, newTaskFileResponse(saved))
}

// Download handles GET /api/tasks/{id}/file, streaming the latest uploaded
// report.
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	if _, ok := getEmployeeFromContext(w, r); !ok {
		return
	}

	taskID, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	ref, err := h.files.Latest(r.Context(), taskID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	content, err := h.files.Open(r.Context(), ref)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	defer content.Close()

	contentType := mime.TypeByExtension(filepath.Ext(ref.FileName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": ref.FileName}))

	if _, err := io.Copy(w, content); err != nil {
		// Headers are already sent; the broken stream is all the client
		// gets.
		slog.Error("failed to stream file",
			slog.String("trace_id", shared.GetTraceID(r.Context())),
			slog.Int64("task_id", taskID),
			slog.String("error", err.Error()))
	}
}
