package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/SARVESHVARADKAR123/memberclub/internal/model"
)

// Struct validates a tagged request DTO and converts failures to field errors.
func Struct(v any) []model.FieldError {
	err := tags.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []model.FieldError{{Field: "body", Message: err.Error()}}
	}

	out := make([]model.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, model.FieldError{Field: jsonName(fe.Field()), Message: message(fe)})
	}
	return out
}

func jsonName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "cannot exceed " + fe.Param() + " characters"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "http_url":
		return "must be a valid http(s) URL"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "gte", "lte":
		return "must be between 0 and 100"
	case "uuid4", "uuid":
		return "must be a valid id"
	default:
		return "is invalid"
	}
}
