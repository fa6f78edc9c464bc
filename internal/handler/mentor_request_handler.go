package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SARVESHVARADKAR123/memberclub/internal/middleware"
	"github.com/SARVESHVARADKAR123/memberclub/internal/model"
)

type MentorRequestHandler struct {
	S      MentorRequestService
	Errors Errors
}

func NewMentorRequestHandler(s MentorRequestService, e Errors) *MentorRequestHandler {
	return &MentorRequestHandler{S: s, Errors: e}
}

func nonNilRequests(rs []*model.MentorRequest) []*model.MentorRequest {
	if rs == nil {
		return []*model.MentorRequest{}
	}
	return rs
}

// Create handles POST /mentor-requests with {"mentorId": profile id, "message": text}.
func (h *MentorRequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r)
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	mentorID := f.str("mentorId")
	if mentorID == "" {
		h.Errors.Write(w, r, &model.ValidationError{Fields: []model.FieldError{{Field: "mentorId", Message: "is required"}}})
		return
	}

	req, err := h.S.Create(r.Context(), middleware.UserID(r.Context()), mentorID, f.str("message"))
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, "Mentor request sent successfully", req)
}

func (h *MentorRequestHandler) Sent(w http.ResponseWriter, r *http.Request) {
	rs, err := h.S.Sent(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", nonNilRequests(rs))
}

func (h *MentorRequestHandler) Received(w http.ResponseWriter, r *http.Request) {
	rs, err := h.S.Received(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", nonNilRequests(rs))
}

// Respond handles PATCH /mentor-requests/{id} with {"status": "accepted"|"rejected"}.
func (h *MentorRequestHandler) Respond(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r)
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}

	var accept bool
	switch f.str("status") {
	case model.RequestAccepted:
		accept = true
	case model.RequestRejected:
	default:
		h.Errors.Write(w, r, &model.ValidationError{Fields: []model.FieldError{{Field: "status", Message: "must be one of: accepted, rejected"}}})
		return
	}

	req, err := h.S.Respond(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"), accept)
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Mentor request updated", req)
}
