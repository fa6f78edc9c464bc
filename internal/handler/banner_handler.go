package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/SARVESHVARADKAR123/memberclub/internal/model"
	"github.com/SARVESHVARADKAR123/memberclub/internal/service"
)

type BannerHandler struct {
	S      BannerService
	Errors Errors
}

func NewBannerHandler(s BannerService, e Errors) *BannerHandler {
	return &BannerHandler{S: s, Errors: e}
}

type bannerList struct {
	Banners    []*model.Banner  `json:"banners"`
	Pagination model.Pagination `json:"pagination"`
}

func (h *BannerHandler) List(w http.ResponseWriter, r *http.Request) {
	f := model.BannerFilter{
		ActiveOnly: r.URL.Query().Get("activeOnly") == "true",
		Search:     strings.TrimSpace(r.URL.Query().Get("search")),
	}
	rows, pg, err := h.S.List(r.Context(), f, page(r, ""))
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	if rows == nil {
		rows = []*model.Banner{}
	}
	writeData(w, http.StatusOK, "", bannerList{Banners: rows, Pagination: pg})
}

func (h *BannerHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.S.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", b)
}

func (h *BannerHandler) Click(w http.ResponseWriter, r *http.Request) {
	if err := h.S.Click(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Click recorded", nil)
}

func bannerInput(f *form) (service.BannerInput, error) {
	active, err := f.boolPtr("isActive")
	if err != nil {
		return service.BannerInput{}, &model.ValidationError{Fields: []model.FieldError{{Field: "isActive", Message: "must be true or false"}}}
	}
	priority := 0
	if s := strings.TrimSpace(f.str("priority")); s != "" {
		if priority, err = strconv.Atoi(s); err != nil {
			return service.BannerInput{}, &model.ValidationError{Fields: []model.FieldError{{Field: "priority", Message: "must be a number"}}}
		}
	}
	return service.BannerInput{
		Title:       f.str("title"),
		Description: f.str("description"),
		Links:       f.list("link"),
		Email:       f.str("email"),
		PhoneNumber: f.str("phoneNumber"),
		Tags:        f.list("tags"),
		Priority:    priority,
		IsActive:    active,
	}, nil
}

func (h *BannerHandler) Create(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r)
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	in, err := bannerInput(f)
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	img, err := f.image()
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}

	b, err := h.S.Create(r.Context(), in, img)
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, "Banner created successfully", b)
}

func (h *BannerHandler) Update(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r)
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	in, err := bannerInput(f)
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	img, err := f.image()
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}

	b, err := h.S.Update(r.Context(), chi.URLParam(r, "id"), in, img)
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Banner updated successfully", b)
}

func (h *BannerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.S.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Banner deleted successfully", nil)
}

func (h *BannerHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	active, err := h.S.Toggle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Banner status updated", map[string]bool{"isActive": active})
}
