package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/SARVESHVARADKAR123/memberclub/internal/model"
)

// AdminHandler holds the profile moderation endpoints.
type AdminHandler struct {
	S      AdminService
	D      MentorDirectory
	Errors Errors
}

func NewAdminHandler(s AdminService, d MentorDirectory, e Errors) *AdminHandler {
	return &AdminHandler{S: s, D: d, Errors: e}
}

func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := model.ProfileFilter{
		Search:              strings.TrimSpace(q.Get("search")),
		Occupation:          q.Get("occupation"),
		MembershipType:      q.Get("membershipType"),
		ProfileVerified:     queryBool(r, "profileVerified"),
		ShowInMentorSection: queryBool(r, "showInMentorSection"),
		Status:              q.Get("status"),
	}
	switch f.Status {
	case "active", "inactive", "all":
	default:
		f.Status = "active"
	}

	res, err := h.S.List(r.Context(), f, page(r, ""))
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", res)
}

func (h *AdminHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.S.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", p)
}

// Delete soft-deletes a profile.
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.S.Deactivate(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Profile deleted successfully", nil)
}

// ToggleMentor handles PATCH /admin/profiles/{id}/toggle-mentor with a body
// of {"showInMentorSection": bool}.
func (h *AdminHandler) ToggleMentor(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r)
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	show, err := f.boolPtr("showInMentorSection")
	if err != nil || show == nil {
		badRequest(w, "showInMentorSection must be true or false")
		return
	}

	p, err := h.D.ToggleVisibility(r.Context(), chi.URLParam(r, "id"), *show)
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}

	msg := "Profile removed from mentor section"
	if *show {
		msg = "Profile added to mentor section"
	}
	writeData(w, http.StatusOK, msg, p)
}

// Verify handles PATCH /admin/profiles/{id}/verify with {"profileVerified": bool}.
func (h *AdminHandler) Verify(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r)
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	verified, err := f.boolPtr("profileVerified")
	if err != nil || verified == nil {
		badRequest(w, "profileVerified must be true or false")
		return
	}

	p, err := h.S.Verify(r.Context(), chi.URLParam(r, "id"), *verified)
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Profile verification updated", p)
}
