package model

import (
	"encoding/json"
	"time"
)

type Banner struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Image       *StoredImage `json:"-"`
	Links       []string     `json:"link"`
	Email       string       `json:"email"`
	PhoneNumber string       `json:"phoneNumber"`
	Tags        []string     `json:"tags"`
	Priority    int          `json:"priority"`
	IsActive    bool         `json:"isActive"`
	Views       int64        `json:"views"`
	Clicks      int64        `json:"clicks"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// ImageExternalID returns the external id of the banner image, or "".
func (b *Banner) ImageExternalID() string {
	if b.Image == nil {
		return ""
	}
	return b.Image.ExternalID
}

type BannerFilter struct {
	ActiveOnly bool
	Search     string
}

// MarshalJSON exposes the image triple as imageUrl/imagePublicId/imageMetadata.
func (b Banner) MarshalJSON() ([]byte, error) {
	type plain Banner
	out := struct {
		plain
		ImageURL      *string        `json:"imageUrl"`
		ImagePublicID *string        `json:"imagePublicId"`
		ImageMetadata *ImageMetadata `json:"imageMetadata"`
	}{plain: plain(b)}

	if b.Image != nil {
		out.ImageURL = &b.Image.URL
		out.ImagePublicID = &b.Image.ExternalID
		out.ImageMetadata = &b.Image.Metadata
	}
	return json.Marshal(out)
}
