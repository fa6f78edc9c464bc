package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SARVESHVARADKAR123/memberclub/internal/middleware"
)

type UploadHandler struct {
	P      UploadProgress
	Errors Errors
}

func NewUploadHandler(p UploadProgress, e Errors) *UploadHandler {
	return &UploadHandler{P: p, Errors: e}
}

// Progress handles GET /uploads/{uploadId}/progress. Callers only see their
// own uploads.
func (h *UploadHandler) Progress(w http.ResponseWriter, r *http.Request) {
	p, err := h.P.Get(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "uploadId"))
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", p)
}
