// Package validation holds the conditional profile schema as a table of
// rules. Every applicable rule runs, so a rejected record reports all of its
// problems at once.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/SARVESHVARADKAR123/memberclub/internal/model"
)

const (
	MaxMentorshipFields     = 5
	MinSupportMessageWords  = 50
	MaxSupportMessageWords  = 1000
	MaxOccupationDescLength = 300
	MaxMentorTextLength     = 100
	MinimumAge              = 18
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
	panRe   = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)

	earliestDob = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

	tags = validator.New()
)

// Rule is one row of the schema.
type Rule struct {
	Field string
	When  func(f *model.ProfileFields) bool
	Check func(f *model.ProfileFields, now time.Time) string
}

func always(*model.ProfileFields) bool { return true }

func isStartupPromoter(f *model.ProfileFields) bool {
	return f.Occupation == model.OccupationStartupPromoter
}

func isMentor(f *model.ProfileFields) bool {
	return f.MembershipType == model.MembershipMentor
}

func present(get func(f *model.ProfileFields) string) func(f *model.ProfileFields) bool {
	return func(f *model.ProfileFields) bool { return get(f) != "" }
}

// ProfileRules is the full profile schema.
var ProfileRules = []Rule{
	{Field: "name", When: always, Check: func(f *model.ProfileFields, _ time.Time) string {
		n := utf8.RuneCountInString(strings.TrimSpace(f.Name))
		if n == 0 {
			return "Name is required"
		}
		if n < 2 || n > 100 {
			return "Name must be between 2 and 100 characters"
		}
		return ""
	}},
	{Field: "occupation", When: always, Check: oneOf(func(f *model.ProfileFields) string { return f.Occupation },
		model.OccupationServices, model.OccupationStartupPromoter, model.OccupationBusiness, model.OccupationOther)},
	{Field: "membershipType", When: always, Check: oneOf(func(f *model.ProfileFields) string { return f.MembershipType },
		model.MembershipIndividual, model.MembershipCorporate, model.MembershipMentor, model.MembershipConsultant)},
	{Field: "email", When: present(func(f *model.ProfileFields) string { return f.Email }), Check: func(f *model.ProfileFields, _ time.Time) string {
		if !emailRe.MatchString(f.Email) {
			return "Please provide a valid email address"
		}
		return ""
	}},
	{Field: "phoneNumber", When: present(func(f *model.ProfileFields) string { return f.PhoneNumber }), Check: func(f *model.ProfileFields, _ time.Time) string {
		if !phoneRe.MatchString(f.PhoneNumber) {
			return "Phone number must contain only digits (optional leading +), at most 16, not starting with 0"
		}
		return ""
	}},
	{Field: "pan", When: present(func(f *model.ProfileFields) string { return f.PAN }), Check: func(f *model.ProfileFields, _ time.Time) string {
		if !panRe.MatchString(strings.ToUpper(f.PAN)) {
			return "PAN must match the format ABCDE1234F"
		}
		return ""
	}},
	{Field: "linkedinUrl", When: present(func(f *model.ProfileFields) string { return f.LinkedinURL }), Check: absoluteURL(func(f *model.ProfileFields) string { return f.LinkedinURL })},
	{Field: "websiteUrl", When: present(func(f *model.ProfileFields) string { return f.WebsiteURL }), Check: absoluteURL(func(f *model.ProfileFields) string { return f.WebsiteURL })},
	{Field: "dob", When: func(f *model.ProfileFields) bool { return f.Dob != nil }, Check: checkDob},

	// Startup promoters describe their venture and the support they need.
	{Field: "occupationDescription", When: isStartupPromoter, Check: func(f *model.ProfileFields, _ time.Time) string {
		if f.OccupationDescription == "" {
			return "occupationDescription is required for startup_promoter"
		}
		if utf8.RuneCountInString(f.OccupationDescription) > MaxOccupationDescLength {
			return fmt.Sprintf("occupationDescription cannot exceed %d characters", MaxOccupationDescLength)
		}
		return ""
	}},
	{Field: "supportStageMessage", When: isStartupPromoter, Check: func(f *model.ProfileFields, _ time.Time) string {
		if f.SupportStageMessage == "" {
			return "supportStageMessage is required for startup_promoter"
		}
		words := len(strings.Fields(f.SupportStageMessage))
		if words < MinSupportMessageWords {
			return fmt.Sprintf("supportStageMessage must be at least %d words", MinSupportMessageWords)
		}
		if words > MaxSupportMessageWords {
			return fmt.Sprintf("supportStageMessage cannot exceed %d words", MaxSupportMessageWords)
		}
		return ""
	}},

	// Mentors must be listable.
	{Field: "mentorshipFields", When: isMentor, Check: func(f *model.ProfileFields, _ time.Time) string {
		if len(f.MentorshipFields) == 0 {
			return "mentorshipFields (1-5 keywords) are required for Mentor"
		}
		if len(f.MentorshipFields) > MaxMentorshipFields {
			return fmt.Sprintf("Maximum %d keywords allowed in mentorshipFields", MaxMentorshipFields)
		}
		return ""
	}},
	{Field: "previousExperience", When: isMentor, Check: mentorText(func(f *model.ProfileFields) string { return f.PreviousExperience }, "previousExperience")},
	{Field: "areaOfExpertise", When: isMentor, Check: mentorText(func(f *model.ProfileFields) string { return f.AreaOfExpertise }, "areaOfExpertise")},
	{Field: "availableForMentorship", When: isMentor, Check: func(f *model.ProfileFields, _ time.Time) string {
		if f.AvailableForMentorship == nil {
			return "availableForMentorship must be true or false"
		}
		return ""
	}},
}

func oneOf(get func(f *model.ProfileFields) string, allowed ...string) func(*model.ProfileFields, time.Time) string {
	return func(f *model.ProfileFields, _ time.Time) string {
		v := get(f)
		if v == "" {
			return "is required"
		}
		for _, a := range allowed {
			if v == a {
				return ""
			}
		}
		return "must be one of: " + strings.Join(allowed, ", ")
	}
}

func absoluteURL(get func(f *model.ProfileFields) string) func(*model.ProfileFields, time.Time) string {
	return func(f *model.ProfileFields, _ time.Time) string {
		if err := tags.Var(get(f), "url"); err != nil {
			return "Must be a well-formed absolute URL"
		}
		return ""
	}
}

func mentorText(get func(f *model.ProfileFields) string, name string) func(*model.ProfileFields, time.Time) string {
	return func(f *model.ProfileFields, _ time.Time) string {
		v := get(f)
		if v == "" {
			return name + " is required for Mentor"
		}
		if utf8.RuneCountInString(v) > MaxMentorTextLength {
			return fmt.Sprintf("%s cannot exceed %d characters", name, MaxMentorTextLength)
		}
		return ""
	}
}

// checkDob computes age as currentYear - birthYear without adjusting for the
// month or day. Someone turning 18 later this year already counts as 18.
func checkDob(f *model.ProfileFields, now time.Time) string {
	dob := *f.Dob
	if dob.After(now) {
		return "Date of birth cannot be in the future"
	}
	if dob.Before(earliestDob) {
		return "Date of birth cannot be before 1900-01-01"
	}
	if now.Year()-dob.Year() < MinimumAge {
		return fmt.Sprintf("You must be at least %d years old", MinimumAge)
	}
	return ""
}

// Validate runs every applicable rule against an already normalized record.
func Validate(f *model.ProfileFields, now time.Time) []model.FieldError {
	var errs []model.FieldError
	for _, r := range ProfileRules {
		if r.When != nil && !r.When(f) {
			continue
		}
		if msg := r.Check(f, now); msg != "" {
			errs = append(errs, model.FieldError{Field: r.Field, Message: msg})
		}
	}
	return errs
}

// Normalize trims every string, lower-cases the email, upper-cases the PAN,
// normalizes mentorship keywords and applies the default country code.
func Normalize(f model.ProfileFields) model.ProfileFields {
	f.Name = strings.TrimSpace(f.Name)
	f.NativeAddress = strings.TrimSpace(f.NativeAddress)
	f.CurrentAddress = strings.TrimSpace(f.CurrentAddress)
	f.PhoneCountryCode = strings.TrimSpace(f.PhoneCountryCode)
	if f.PhoneCountryCode == "" {
		f.PhoneCountryCode = model.DefaultPhoneCountryCode
	}
	f.PhoneNumber = strings.TrimSpace(f.PhoneNumber)
	f.WhatsappNumber = strings.TrimSpace(f.WhatsappNumber)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.PAN = strings.ToUpper(strings.TrimSpace(f.PAN))
	f.LinkedinURL = strings.TrimSpace(f.LinkedinURL)
	f.WebsiteURL = strings.TrimSpace(f.WebsiteURL)
	f.Occupation = strings.TrimSpace(f.Occupation)
	f.OccupationDescription = strings.TrimSpace(f.OccupationDescription)
	f.SupportStageMessage = strings.TrimSpace(f.SupportStageMessage)
	f.MembershipType = strings.TrimSpace(f.MembershipType)
	f.PreviousExperience = strings.TrimSpace(f.PreviousExperience)
	f.AreaOfExpertise = strings.TrimSpace(f.AreaOfExpertise)
	f.MentorshipFields = NormalizeKeywords(f.MentorshipFields)
	return f
}

// NormalizeKeywords trims and lower-cases keywords, dropping empty entries.
func NormalizeKeywords(in []string) []string {
	out := make([]string, 0, len(in))
	for _, k := range in {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			out = append(out, k)
		}
	}
	return out
}
