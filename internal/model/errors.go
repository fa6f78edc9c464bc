package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrProfileNotFound     = errors.New("profile not found")
	ErrProfileExists       = errors.New("profile already exists for this user")
	ErrNoImage             = errors.New("profile has no image")
	ErrNotEligibleMentor   = errors.New("profile is not eligible for the mentor section")
	ErrMentorNotFound      = errors.New("mentor not found or not visible")
	ErrStorageConflict     = errors.New("duplicate value violates a uniqueness constraint")
	ErrBannerNotFound      = errors.New("banner not found")
	ErrPostNotFound        = errors.New("post not found")
	ErrForbidden           = errors.New("not allowed to modify this resource")
	ErrRequestNotFound     = errors.New("mentor request not found")
	ErrDuplicateRequest    = errors.New("you already have a pending request to this mentor")
	ErrRequestAlreadyFinal = errors.New("mentor request was already answered")
	ErrUploadNotFound      = errors.New("upload session not found")
	ErrInvalidInput        = errors.New("invalid input")
)

// FieldError is one violated validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violated rule of a rejected record.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// ImageRejectedError reports an image that failed size or dimension checks.
type ImageRejectedError struct {
	Reason string
}

func (e *ImageRejectedError) Error() string { return "image rejected: " + e.Reason }

// UploadError reports a failed transform or put against the image store.
type UploadError struct {
	Reason string
	Err    error
}

func (e *UploadError) Error() string { return fmt.Sprintf("image upload failed: %s", e.Reason) }
func (e *UploadError) Unwrap() error { return e.Err }

// PersistenceError reports a failed repository write. Partial is set when an
// earlier side effect (an upload) happened and was compensated.
type PersistenceError struct {
	Reason  string
	Partial bool
	Err     error
}

func (e *PersistenceError) Error() string { return "persistence failed: " + e.Reason }
func (e *PersistenceError) Unwrap() error { return e.Err }

// IneligibleMentorError explains why a profile cannot be listed as a mentor.
type IneligibleMentorError struct {
	Reason string
}

func (e *IneligibleMentorError) Error() string        { return e.Reason }
func (e *IneligibleMentorError) Is(target error) bool { return target == ErrNotEligibleMentor }
