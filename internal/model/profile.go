package model

import (
	"encoding/json"
	"time"
)

const (
	OccupationServices        = "services"
	OccupationStartupPromoter = "startup_promoter"
	OccupationBusiness        = "business"
	OccupationOther           = "other"
)

const (
	MembershipIndividual = "Individual"
	MembershipCorporate  = "Corporate"
	MembershipMentor     = "Mentor"
	MembershipConsultant = "Consultant"
)

const DefaultPhoneCountryCode = "+91"

// ProfileFields is the client-editable field set. Every upsert replaces all of
// it; empty strings and nil pointers are stored as NULL.
type ProfileFields struct {
	Name             string     `json:"name"`
	Dob              *time.Time `json:"dob,omitempty"`
	NativeAddress    string     `json:"nativeAddress,omitempty"`
	CurrentAddress   string     `json:"currentAddress,omitempty"`
	PhoneCountryCode string     `json:"phoneCountryCode"`
	PhoneNumber      string     `json:"phoneNumber,omitempty"`
	WhatsappNumber   string     `json:"whatsappNumber,omitempty"`
	Email            string     `json:"email,omitempty"`
	PAN              string     `json:"pan,omitempty"`
	LinkedinURL      string     `json:"linkedinUrl,omitempty"`
	WebsiteURL       string     `json:"websiteUrl,omitempty"`

	Occupation            string `json:"occupation"`
	OccupationDescription string `json:"occupationDescription,omitempty"`
	SupportStageMessage   string `json:"supportStageMessage,omitempty"`

	MembershipType         string   `json:"membershipType"`
	MentorshipFields       []string `json:"mentorshipFields"`
	PreviousExperience     string   `json:"previousExperience,omitempty"`
	AreaOfExpertise        string   `json:"areaOfExpertise,omitempty"`
	AvailableForMentorship *bool    `json:"availableForMentorship,omitempty"`
}

type Profile struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	ProfileFields

	Image *StoredImage `json:"-"`

	ProfileVerified     bool `json:"profileVerified"`
	ShowInMentorSection bool `json:"showInMentorSection"`
	IsActive            bool `json:"isActive"`

	CreatedAt   time.Time `json:"createdAt"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// InMentorDirectory reports whether the profile is publicly listable as a mentor.
func (p *Profile) InMentorDirectory() bool {
	return p.MembershipType == MembershipMentor &&
		p.ShowInMentorSection && p.ProfileVerified && p.IsActive
}

// ImageExternalID returns the external id of the current image, or "".
func (p *Profile) ImageExternalID() string {
	if p.Image == nil {
		return ""
	}
	return p.Image.ExternalID
}

// MarshalJSON flattens the image triple so "image" is always a URL string or null.
func (p Profile) MarshalJSON() ([]byte, error) {
	type plain Profile
	out := struct {
		plain
		Image         *string        `json:"image"`
		ImagePublicID *string        `json:"imagePublicId"`
		ImageMetadata *ImageMetadata `json:"imageMetadata"`
	}{plain: plain(p)}

	if p.Image != nil {
		out.Image = &p.Image.URL
		out.ImagePublicID = &p.Image.ExternalID
		out.ImageMetadata = &p.Image.Metadata
	}
	return json.Marshal(out)
}

// ProfileFilter narrows the admin profile listing.
type ProfileFilter struct {
	Search              string
	Occupation          string
	MembershipType      string
	ProfileVerified     *bool
	ShowInMentorSection *bool
	Status              string // active | inactive | all
}

// MentorFilter narrows the public mentor directory.
type MentorFilter struct {
	Search        string
	Expertise     []string
	AvailableOnly bool
}

type Page struct {
	Page  int
	Limit int
}

func (p Page) Offset() int { return (p.Page - 1) * p.Limit }

// NormalizePage clamps paging input to sane bounds.
func NormalizePage(page, limit int) Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return Page{Page: page, Limit: limit}
}

type Pagination struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

func NewPagination(p Page, total int) Pagination {
	pages := 0
	if p.Limit > 0 {
		pages = (total + p.Limit - 1) / p.Limit
	}
	return Pagination{
		Page:        p.Page,
		Limit:       p.Limit,
		Total:       total,
		TotalPages:  pages,
		HasNextPage: p.Page < pages,
		HasPrevPage: p.Page > 1,
	}
}

// MentorCard is the public projection of a directory entry.
type MentorCard struct {
	ID                     string   `json:"id"`
	Name                   string   `json:"name"`
	Image                  *string  `json:"image"`
	Occupation             string   `json:"occupation"`
	OccupationDescription  string   `json:"occupationDescription,omitempty"`
	AreaOfExpertise        string   `json:"areaOfExpertise"`
	MentorshipFields       []string `json:"mentorshipFields"`
	PreviousExperience     string   `json:"previousExperience"`
	LinkedinURL            string   `json:"linkedinUrl,omitempty"`
	WebsiteURL             string   `json:"websiteUrl,omitempty"`
	AvailableForMentorship bool     `json:"availableForMentorship"`
	ProfileVerified        bool     `json:"profileVerified"`
}

// NewMentorCard projects a profile into its public directory card.
func NewMentorCard(p *Profile) MentorCard {
	c := MentorCard{
		ID:                    p.ID,
		Name:                  p.Name,
		Occupation:            p.Occupation,
		OccupationDescription: p.OccupationDescription,
		AreaOfExpertise:       p.AreaOfExpertise,
		MentorshipFields:      p.MentorshipFields,
		PreviousExperience:    p.PreviousExperience,
		LinkedinURL:           p.LinkedinURL,
		WebsiteURL:            p.WebsiteURL,
		ProfileVerified:       p.ProfileVerified,
	}
	if p.Image != nil {
		url := p.Image.URL
		c.Image = &url
	}
	if p.AvailableForMentorship != nil {
		c.AvailableForMentorship = *p.AvailableForMentorship
	}
	if c.MentorshipFields == nil {
		c.MentorshipFields = []string{}
	}
	return c
}

type ExpertiseCount struct {
	Expertise string `json:"expertise"`
	Count     int    `json:"count"`
}
