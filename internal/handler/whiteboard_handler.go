package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SARVESHVARADKAR123/memberclub/internal/middleware"
	"github.com/SARVESHVARADKAR123/memberclub/internal/model"
	"github.com/SARVESHVARADKAR123/memberclub/internal/service"
)

type WhiteboardHandler struct {
	S      WhiteboardService
	Errors Errors
}

func NewWhiteboardHandler(s WhiteboardService, e Errors) *WhiteboardHandler {
	return &WhiteboardHandler{S: s, Errors: e}
}

func actor(r *http.Request) service.Actor {
	return service.Actor{UserID: middleware.UserID(r.Context()), Admin: middleware.IsAdmin(r.Context())}
}

func postInput(f *form) service.PostInput {
	return service.PostInput{
		Category:    f.str("category"),
		Title:       f.str("title"),
		Description: f.str("description"),
		WebsiteURL:  f.str("websiteUrl"),
	}
}

// List pages each category on its own: ?startup_news_page=2&services_wanted_limit=5.
func (h *WhiteboardHandler) List(w http.ResponseWriter, r *http.Request) {
	pages := make(map[string]model.Page, len(model.Categories))
	for _, c := range model.Categories {
		pages[c] = page(r, c+"_")
	}

	res, err := h.S.List(r.Context(), pages)
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", res)
}

func (h *WhiteboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.S.View(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", p)
}

func (h *WhiteboardHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	p, err := h.S.Create(r.Context(), middleware.UserID(r.Context()), postInput(f), img)
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, "Post created successfully", p)
}

func (h *WhiteboardHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	p, err := h.S.Update(r.Context(), actor(r), chi.URLParam(r, "id"), postInput(f), img, f.flag("removeImage"))
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Post updated successfully", p)
}

func (h *WhiteboardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.S.Delete(r.Context(), actor(r), chi.URLParam(r, "id")); err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Post deleted successfully", nil)
}

// Moderate applies admin-only fields: status, isFeatured, featuredUntil, adminNotes.
func (h *WhiteboardHandler) Moderate(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r)
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}

	var in service.ModerationInput
	if f.has("status") {
		s := f.str("status")
		in.Status = &s
	}
	if in.IsFeatured, err = f.boolPtr("isFeatured"); err != nil {
		badRequest(w, "isFeatured must be true or false")
		return
	}
	if in.FeaturedUntil, err = f.date("featuredUntil"); err != nil {
		badRequest(w, "featuredUntil must be a date")
		return
	}
	if f.has("adminNotes") {
		n := f.str("adminNotes")
		in.AdminNotes = &n
	}

	p, err := h.S.Moderate(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"), in)
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Post updated successfully", p)
}
