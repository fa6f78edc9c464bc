package handler

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/SARVESHVARADKAR123/memberclub/internal/middleware"
	"github.com/SARVESHVARADKAR123/memberclub/internal/model"
	"github.com/SARVESHVARADKAR123/memberclub/internal/observability"
	"github.com/SARVESHVARADKAR123/memberclub/internal/transport"
)

const (
	appliedNone    = "none"
	appliedPartial = "partial"
)

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	transport.WriteJSON(w, status, v)
}

func writeData(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, envelope{Success: true, Message: message, Data: data})
}

func badRequest(w http.ResponseWriter, message string) {
	transport.WriteJSON(w, http.StatusBadRequest, transport.ErrorBody{
		Error: "bad_request", Message: message, Applied: appliedNone,
	})
}

// Errors turns service errors into HTTP responses. In production the cause of
// upstream failures is logged but not returned.
type Errors struct {
	Production bool
}

type mapped struct {
	status  int
	code    string
	message string
	details any
}

func (e Errors) classify(err error) mapped {
	var (
		ve *model.ValidationError
		ie *model.ImageRejectedError
		me *model.IneligibleMentorError
		ue *model.UploadError
		pe *model.PersistenceError
	)

	switch {
	case errors.As(err, &ve):
		return mapped{http.StatusBadRequest, "validation_error", "Validation failed", ve.Fields}
	case errors.As(err, &ie):
		return mapped{http.StatusBadRequest, "image_rejected", ie.Reason, nil}
	case errors.As(err, &me):
		return mapped{http.StatusBadRequest, "not_eligible", me.Reason, nil}
	case errors.Is(err, model.ErrNotEligibleMentor):
		return mapped{http.StatusBadRequest, "not_eligible", err.Error(), nil}
	case errors.Is(err, model.ErrDuplicateRequest):
		return mapped{http.StatusBadRequest, "duplicate_request", err.Error(), nil}
	case errors.Is(err, model.ErrInvalidInput):
		return mapped{http.StatusBadRequest, "bad_request", err.Error(), nil}
	case errors.Is(err, model.ErrNoImage):
		return mapped{http.StatusBadRequest, "no_image", "No profile image to remove", nil}
	case errors.Is(err, model.ErrProfileNotFound),
		errors.Is(err, model.ErrMentorNotFound),
		errors.Is(err, model.ErrBannerNotFound),
		errors.Is(err, model.ErrPostNotFound),
		errors.Is(err, model.ErrRequestNotFound),
		errors.Is(err, model.ErrUploadNotFound):
		return mapped{http.StatusNotFound, "not_found", err.Error(), nil}
	case errors.Is(err, model.ErrForbidden):
		return mapped{http.StatusForbidden, "forbidden", err.Error(), nil}
	case errors.Is(err, model.ErrRequestAlreadyFinal):
		return mapped{http.StatusConflict, "conflict", err.Error(), nil}
	case errors.Is(err, model.ErrStorageConflict):
		return mapped{http.StatusConflict, "conflict", "Duplicate field value entered", nil}
	case errors.Is(err, context.DeadlineExceeded):
		return mapped{http.StatusGatewayTimeout, "timeout", "The request took too long to complete", nil}
	case errors.As(err, &ue):
		return mapped{http.StatusInternalServerError, "upload_failed", e.upstream("Failed to upload image", ue.Reason, ue.Err), nil}
	case errors.As(err, &pe):
		return mapped{http.StatusInternalServerError, "persistence_failed", e.upstream("Failed to save changes", pe.Reason, pe.Err), nil}
	default:
		return mapped{http.StatusInternalServerError, "internal_error", "internal server error", nil}
	}
}

func (e Errors) upstream(public, reason string, cause error) string {
	if e.Production {
		return public
	}
	if cause == nil {
		return reason
	}
	return reason + ": " + cause.Error()
}

// applied reports whether any side effect survived a failed request. A
// compensated upload still counts as partial.
func applied(err error) string {
	var pe *model.PersistenceError
	if errors.As(err, &pe) && pe.Partial {
		return appliedPartial
	}
	return appliedNone
}

// Write logs err and writes the mapped response.
func (e Errors) Write(w http.ResponseWriter, r *http.Request, err error) {
	m := e.classify(err)

	log := observability.GetLogger(r.Context()).With(
		zap.String("user_id", middleware.UserID(r.Context())),
		zap.Int("status", m.status),
		zap.Error(err),
	)
	if m.status >= http.StatusInternalServerError {
		log.Error("request failed")
	} else {
		log.Debug("request rejected")
	}

	transport.WriteJSON(w, m.status, transport.ErrorBody{
		Error:   m.code,
		Message: m.message,
		Applied: applied(err),
		Details: m.details,
	})
}
