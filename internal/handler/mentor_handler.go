package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/SARVESHVARADKAR123/memberclub/internal/model"
	"github.com/SARVESHVARADKAR123/memberclub/internal/service"
	"github.com/SARVESHVARADKAR123/memberclub/internal/validation"
)

// MentorHandler serves the public mentor directory.
type MentorHandler struct {
	D      MentorDirectory
	Errors Errors
}

func NewMentorHandler(d MentorDirectory, e Errors) *MentorHandler {
	return &MentorHandler{D: d, Errors: e}
}

// List handles GET /mentors?search=&expertise=&availableOnly=&page=&limit=.
// expertise may be repeated or comma separated, and is matched against the
// stored keywords in their normalized form.
func (h *MentorHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var expertise []string
	for _, v := range q["expertise"] {
		expertise = append(expertise, service.SplitList(v)...)
	}
	if len(expertise) > 0 {
		expertise = validation.NormalizeKeywords(expertise)
	}

	f := model.MentorFilter{
		Search:        strings.TrimSpace(q.Get("search")),
		Expertise:     expertise,
		AvailableOnly: q.Get("availableOnly") == "true",
	}

	res, err := h.D.List(r.Context(), f, page(r, ""))
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", res)
}

func (h *MentorHandler) Get(w http.ResponseWriter, r *http.Request) {
	card, err := h.D.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", card)
}

func (h *MentorHandler) Expertise(w http.ResponseWriter, r *http.Request) {
	counts, err := h.D.Expertise(r.Context())
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", counts)
}
