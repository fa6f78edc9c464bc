package model

import "time"

const (
	CategoryStartupNews      = "startup_news"
	CategoryServicesWanted   = "services_wanted"
	CategoryServicesOffering = "services_offering"
)

// Categories lists the whiteboard categories in display order.
var Categories = []string{CategoryStartupNews, CategoryServicesWanted, CategoryServicesOffering}

const (
	PostPending  = "pending"
	PostActive   = "active"
	PostRejected = "rejected"
	PostArchived = "archived"
)

type WhiteboardPost struct {
	ID             string       `json:"id"`
	Category       string       `json:"category"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	WebsiteURL     string       `json:"websiteUrl,omitempty"`
	CreatedBy      string       `json:"createdBy"`
	Image          *StoredImage `json:"image"`
	Status         string       `json:"status"`
	IsFeatured     bool         `json:"isFeatured"`
	FeaturedUntil  *time.Time   `json:"featuredUntil"`
	AdminNotes     string       `json:"adminNotes,omitempty"`
	Views          int64        `json:"views"`
	LastModifiedBy string       `json:"lastModifiedBy,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// ImageExternalID returns the external id of the post image, or "".
func (p *WhiteboardPost) ImageExternalID() string {
	if p.Image == nil {
		return ""
	}
	return p.Image.ExternalID
}

// CategoryPage is one category's slice of the whiteboard listing.
type CategoryPage struct {
	Data  []*WhiteboardPost `json:"data"`
	Total int               `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
