package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SARVESHVARADKAR123/memberclub/internal/model"
)

var now = time.Date(2026, time.October, 14, 12, 0, 0, 0, time.UTC)

func boolPtr(b bool) *bool { return &b }

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func validIndividual() model.ProfileFields {
	return model.ProfileFields{
		Name:           gofakeit.Name(),
		Email:          "member@example.com",
		PhoneNumber:    "9876543210",
		Occupation:     model.OccupationServices,
		MembershipType: model.MembershipIndividual,
	}
}

func validMentor() model.ProfileFields {
	f := validIndividual()
	f.MembershipType = model.MembershipMentor
	f.MentorshipFields = []string{"finance", "retail"}
	f.PreviousExperience = "10 years in retail banking"
	f.AreaOfExpertise = "Finance"
	f.AvailableForMentorship = boolPtr(true)
	return f
}

func fieldsOf(errs []model.FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func messageFor(errs []model.FieldError, field string) string {
	for _, e := range errs {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

func TestValidate_ValidRecords(t *testing.T) {
	ind := validIndividual()
	assert.Empty(t, Validate(&ind, now))

	m := validMentor()
	assert.Empty(t, Validate(&m, now))
}

func TestValidate_Name(t *testing.T) {
	tests := []struct {
		name  string
		value string
		ok    bool
	}{
		{"empty", "", false},
		{"whitespace", "   ", false},
		{"one rune", "A", false},
		{"two runes", "Al", true},
		{"hundred", strings.Repeat("a", 100), true},
		{"too long", strings.Repeat("a", 101), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validIndividual()
			f.Name = tt.value
			errs := Validate(&f, now)
			assert.Equal(t, !tt.ok, messageFor(errs, "name") != "")
		})
	}
}

func TestValidate_ContactFormats(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(f *model.ProfileFields)
		field string
	}{
		{"bad email", func(f *model.ProfileFields) { f.Email = "not-an-email" }, "email"},
		{"email without tld", func(f *model.ProfileFields) { f.Email = "a@b" }, "email"},
		{"phone leading zero", func(f *model.ProfileFields) { f.PhoneNumber = "0123456" }, "phoneNumber"},
		{"phone letters", func(f *model.ProfileFields) { f.PhoneNumber = "98a76" }, "phoneNumber"},
		{"phone too long", func(f *model.ProfileFields) { f.PhoneNumber = "+12345678901234567" }, "phoneNumber"},
		{"pan format", func(f *model.ProfileFields) { f.PAN = "ABCD1234F" }, "pan"},
		{"linkedin relative", func(f *model.ProfileFields) { f.LinkedinURL = "linkedin.com/in/x" }, "linkedinUrl"},
		{"website garbage", func(f *model.ProfileFields) { f.WebsiteURL = "::::" }, "websiteUrl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validIndividual()
			tt.edit(&f)
			assert.Equal(t, []string{tt.field}, fieldsOf(Validate(&f, now)))
		})
	}
}

func TestValidate_ContactFormatsAccepted(t *testing.T) {
	f := validIndividual()
	f.PhoneNumber = "+919876543210"
	f.PAN = "ABCDE1234F"
	f.LinkedinURL = "https://www.linkedin.com/in/someone"
	f.WebsiteURL = "http://example.org/about"
	assert.Empty(t, Validate(&f, now))
}

func TestValidate_Dob(t *testing.T) {
	date := func(y int, m time.Month, d int) *time.Time {
		v := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &v
	}

	tests := []struct {
		name string
		dob  *time.Time
		ok   bool
	}{
		{"future", date(2027, time.January, 1), false},
		{"before 1900", date(1899, time.December, 31), false},
		{"too young", date(2010, time.January, 1), false},
		{"adult", date(1990, time.May, 20), true},
		// Year subtraction: born December 2008 counts as 18 in October 2026.
		{"year subtraction rule", date(2008, time.December, 31), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validIndividual()
			f.Dob = tt.dob
			errs := Validate(&f, now)
			assert.Equal(t, !tt.ok, messageFor(errs, "dob") != "", "errors: %v", errs)
		})
	}
}

func TestValidate_StartupPromoter(t *testing.T) {
	f := validIndividual()
	f.Occupation = model.OccupationStartupPromoter

	errs := Validate(&f, now)
	assert.ElementsMatch(t, []string{"occupationDescription", "supportStageMessage"}, fieldsOf(errs))

	f.OccupationDescription = "We build irrigation sensors"
	f.SupportStageMessage = words(40)
	errs = Validate(&f, now)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "at least 50 words")

	f.SupportStageMessage = words(50)
	assert.Empty(t, Validate(&f, now))

	f.SupportStageMessage = words(1001)
	assert.Contains(t, messageFor(Validate(&f, now), "supportStageMessage"), "1000 words")

	f.SupportStageMessage = words(60)
	f.OccupationDescription = strings.Repeat("x", 301)
	assert.Equal(t, []string{"occupationDescription"}, fieldsOf(Validate(&f, now)))
}

func TestValidate_MentorRequiresKeywordsRegardlessOfOtherFields(t *testing.T) {
	edits := []func(f *model.ProfileFields){
		func(f *model.ProfileFields) {},
		func(f *model.ProfileFields) { f.Email = "broken" },
		func(f *model.ProfileFields) { f.Name = "" },
		func(f *model.ProfileFields) { f.AreaOfExpertise = "" },
	}
	for i, edit := range edits {
		f := validMentor()
		f.MentorshipFields = nil
		edit(&f)
		assert.Contains(t, fieldsOf(Validate(&f, now)), "mentorshipFields", "case %d", i)
	}
}

func TestValidate_MentorMaxKeywords(t *testing.T) {
	f := validMentor()
	f.MentorshipFields = []string{"finance", "retail", "legal", "ops", "sales", "tax"}

	errs := Validate(&f, now)
	require.Len(t, errs, 1)
	assert.Equal(t, "mentorshipFields", errs[0].Field)
	assert.Contains(t, errs[0].Message, "Maximum 5 keywords")
}

func TestValidate_MentorCollectsEverything(t *testing.T) {
	f := validIndividual()
	f.MembershipType = model.MembershipMentor

	errs := Validate(&f, now)
	assert.ElementsMatch(t,
		[]string{"mentorshipFields", "previousExperience", "areaOfExpertise", "availableForMentorship"},
		fieldsOf(errs))

	f.AvailableForMentorship = boolPtr(false)
	assert.NotContains(t, fieldsOf(Validate(&f, now)), "availableForMentorship")
}

func TestValidate_NonMentorIgnoresMentorFields(t *testing.T) {
	f := validIndividual()
	f.MentorshipFields = []string{"a", "b", "c", "d", "e", "f", "g"}
	assert.Empty(t, Validate(&f, now))
}

func TestValidate_Enums(t *testing.T) {
	f := validIndividual()
	f.Occupation = "astronaut"
	f.MembershipType = ""
	assert.ElementsMatch(t, []string{"occupation", "membershipType"}, fieldsOf(Validate(&f, now)))
}

func TestNormalize(t *testing.T) {
	in := model.ProfileFields{
		Name:             "  Asha Rao ",
		Email:            " Asha@Example.COM ",
		PAN:              "abcde1234f",
		MentorshipFields: []string{" Finance ", "", "RETAIL", "  "},
	}

	out := Normalize(in)

	assert.Equal(t, "Asha Rao", out.Name)
	assert.Equal(t, "asha@example.com", out.Email)
	assert.Equal(t, "ABCDE1234F", out.PAN)
	assert.Equal(t, model.DefaultPhoneCountryCode, out.PhoneCountryCode)
	assert.Equal(t, []string{"finance", "retail"}, out.MentorshipFields)
}
