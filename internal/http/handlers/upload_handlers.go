package handlers

import (
	"net/http"
	"time"

	"github.com/SamSantos7/irland-casa-estudantes/internal/http/response"
	"github.com/SamSantos7/irland-casa-estudantes/internal/platform/storage"
	"github.com/SamSantos7/irland-casa-estudantes/pkg/logger"
)

const maxUploadBytes = 15 << 20 // 15 MiB

type uploadRes struct {
	FileName string `json:"file_name"`
	Path     string `json:"path"`
	URL      string `json:"url"`
}

// Upload stores one multipart file under a timestamped path and returns the
// handle the wizard carries into its draft. The file content is accepted
// as-is; review happens in the back office.
func (h *Handlers) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.BadRequest(w, "File too large or malformed multipart body")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Missing file field")
		return
	}
	defer file.Close()

	path := storage.ObjectPath(time.Now(), header.Filename)
	if _, err := h.store.Save(r.Context(), path, file); err != nil {
		logger.ErrorContext(r.Context(), "Failed to store upload", "error", err, "file", header.Filename)
		response.InternalError(w, "Failed to store file")
		return
	}

	writeJSON(w, http.StatusCreated, uploadRes{
		FileName: header.Filename,
		Path:     path,
		URL:      h.store.URL(path),
	})
}
