package handlers

import (
	"net/http"

	"fleetadmin/internal/models"
	"fleetadmin/internal/services"
)

const maxUploadMemory = 32 << 20

type UploadHandler struct {
	uploads *services.UploadService
	backend *Backend
}

func NewUploadHandler(uploads *services.UploadService, backend *Backend) *UploadHandler {
	return &UploadHandler{uploads: uploads, backend: backend}
}

// Upload takes repeatable "files" parts and an optional "folder" field and
// returns one outcome per file, in order.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Expected a multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "No files provided")
		return
	}

	files := make([]services.ImageFile, len(headers))
	for i, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			h.backend.Logger.Error().Err(err).Str("file", fh.Filename).Msg("Opening uploaded part")
			respondWithError(w, http.StatusBadRequest, "invalid_request", "Could not read "+fh.Filename)
			closeAll(files[:i])
			return
		}
		files[i] = services.ImageFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Content:     f,
		}
	}
	defer closeAll(files)

	folder := r.FormValue("folder")
	results := h.uploads.UploadMultiple(r.Context(), files, folder)

	uploaded := 0
	for _, res := range results {
		if res.Success {
			uploaded++
		}
	}
	if uploaded > 0 {
		h.backend.record(r, "asset", 0, "upload", map[string]any{"folder": folder, "count": uploaded})
	}

	respondWithJSON(w, http.StatusOK, struct {
		Results []models.UploadOutcome `json:"results"`
	}{results})
}

func closeAll(files []services.ImageFile) {
	for _, f := range files {
		f.Close()
	}
}
