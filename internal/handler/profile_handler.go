package handler

import (
	"net/http"

	"github.com/SARVESHVARADKAR123/memberclub/internal/middleware"
	"github.com/SARVESHVARADKAR123/memberclub/internal/model"
	"github.com/SARVESHVARADKAR123/memberclub/internal/service"
)

// ProfileHandler exposes the caller's own profile.
type ProfileHandler struct {
	S      ProfileService
	Errors Errors
}

func NewProfileHandler(s ProfileService, e Errors) *ProfileHandler {
	return &ProfileHandler{S: s, Errors: e}
}

// Get returns the authenticated user's profile.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.S.Get(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", p)
}

// Upsert creates or replaces the authenticated user's profile from a
// multipart body with an optional image file.
func (h *ProfileHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r)
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}

	fields, errs := f.profileFields()
	if len(errs) > 0 {
		h.Errors.Write(w, r, &model.ValidationError{Fields: errs})
		return
	}
	img, err := f.image()
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}

	res, err := h.S.Upsert(r.Context(), service.UpsertInput{
		UserID:      middleware.UserID(r.Context()),
		Fields:      fields,
		Image:       img,
		RemoveImage: f.flag("removeImage"),
	})
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}

	if res.Created {
		writeData(w, http.StatusCreated, "Profile created successfully", res.Profile)
		return
	}
	writeData(w, http.StatusOK, "Profile updated successfully", res.Profile)
}

// UpdateImage replaces only the profile image.
func (h *ProfileHandler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r)
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	img, err := f.image()
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	if img == nil {
		badRequest(w, "No image file provided")
		return
	}

	p, err := h.S.ReplaceImage(r.Context(), middleware.UserID(r.Context()), img)
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Profile image updated successfully", p)
}

func (h *ProfileHandler) RemoveImage(w http.ResponseWriter, r *http.Request) {
	p, err := h.S.RemoveImage(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Profile image removed successfully", p)
}

func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.S.Delete(r.Context(), middleware.UserID(r.Context())); err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Profile deleted successfully", nil)
}
