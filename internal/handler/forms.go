package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/SARVESHVARADKAR123/memberclub/internal/middleware"
	"github.com/SARVESHVARADKAR123/memberclub/internal/model"
	"github.com/SARVESHVARADKAR123/memberclub/internal/service"
)

const (
	maxBodyBytes   = 55 << 20
	maxMemoryBytes = 16 << 20
	maxImageBytes  = 50 << 20
	imageFormField = "image"
	uploadIDField  = "uploadId"
	dateOnlyLayout = "2006-01-02"
)

// form is a parsed request body. Multipart, urlencoded and JSON bodies are
// all read into the same string-keyed view.
type form struct {
	values map[string][]string
	r      *http.Request
	json   map[string]json.RawMessage
}

func parseForm(w http.ResponseWriter, r *http.Request) (*form, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch ct {
	case "application/json":
		raw := map[string]json.RawMessage{}
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: invalid request body", model.ErrInvalidInput)
		}
		return &form{r: r, json: raw}, nil
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMemoryBytes); err != nil {
			return nil, fmt.Errorf("%w: invalid multipart body", model.ErrInvalidInput)
		}
		return &form{r: r, values: r.MultipartForm.Value}, nil
	default:
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: invalid form body", model.ErrInvalidInput)
		}
		return &form{r: r, values: r.PostForm}, nil
	}
}

func (f *form) has(key string) bool {
	if f.json != nil {
		_, ok := f.json[key]
		return ok
	}
	_, ok := f.values[key]
	return ok
}

func (f *form) str(key string) string {
	if f.json != nil {
		raw, ok := f.json[key]
		if !ok {
			return ""
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
		return strings.Trim(string(raw), `"`)
	}
	if v := f.values[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// list accepts a JSON array, repeated form values, or one comma separated value.
func (f *form) list(key string) []string {
	if f.json != nil {
		raw, ok := f.json[key]
		if !ok {
			return nil
		}
		var out []string
		if err := json.Unmarshal(raw, &out); err == nil {
			return out
		}
		return service.SplitList(f.str(key))
	}
	vals := f.values[key]
	if len(vals) == 1 {
		return service.SplitList(vals[0])
	}
	return vals
}

func (f *form) boolPtr(key string) (*bool, error) {
	if !f.has(key) {
		return nil, nil
	}
	s := strings.TrimSpace(f.str(key))
	if s == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (f *form) flag(key string) bool {
	b, err := f.boolPtr(key)
	return err == nil && b != nil && *b
}

func (f *form) date(key string) (*time.Time, error) {
	s := strings.TrimSpace(f.str(key))
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{dateOnlyLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid date %q", s)
}

// image reads the uploaded image file, if any.
func (f *form) image() (*model.ImageUpload, error) {
	if f.r.MultipartForm == nil {
		return nil, nil
	}
	file, hdr, err := f.r.FormFile(imageFormField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable image", model.ErrInvalidInput)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable image", model.ErrInvalidInput)
	}
	if len(data) == 0 {
		return nil, nil
	}
	return &model.ImageUpload{
		Data:     data,
		Filename: hdr.Filename,
		UploadID: f.str(uploadIDField),
		Owner:    middleware.UserID(f.r.Context()),
	}, nil
}

// profileFields maps the request body onto the full replacement field set.
// Absent keys become empty values; an upsert never patches.
func (f *form) profileFields() (model.ProfileFields, []model.FieldError) {
	var errs []model.FieldError

	dob, err := f.date("dob")
	if err != nil {
		errs = append(errs, model.FieldError{Field: "dob", Message: "Invalid date of birth"})
	}
	available, err := f.boolPtr("availableForMentorship")
	if err != nil {
		errs = append(errs, model.FieldError{Field: "availableForMentorship", Message: "availableForMentorship must be true or false"})
	}

	return model.ProfileFields{
		Name:                   f.str("name"),
		Dob:                    dob,
		NativeAddress:          f.str("nativeAddress"),
		CurrentAddress:         f.str("currentAddress"),
		PhoneCountryCode:       f.str("phoneCountryCode"),
		PhoneNumber:            f.str("phoneNumber"),
		WhatsappNumber:         f.str("whatsappNumber"),
		Email:                  f.str("email"),
		PAN:                    f.str("pan"),
		LinkedinURL:            f.str("linkedinUrl"),
		WebsiteURL:             f.str("websiteUrl"),
		Occupation:             f.str("occupation"),
		OccupationDescription:  f.str("occupationDescription"),
		SupportStageMessage:    f.str("supportStageMessage"),
		MembershipType:         f.str("membershipType"),
		MentorshipFields:       f.list("mentorshipFields"),
		PreviousExperience:     f.str("previousExperience"),
		AreaOfExpertise:        f.str("areaOfExpertise"),
		AvailableForMentorship: available,
	}, errs
}

// page reads page/limit query parameters with the given prefix.
func page(r *http.Request, prefix string) model.Page {
	q := r.URL.Query()
	p, _ := strconv.Atoi(q.Get(prefix + "page"))
	l, _ := strconv.Atoi(q.Get(prefix + "limit"))
	return model.NormalizePage(p, l)
}

func queryBool(r *http.Request, key string) *bool {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}
