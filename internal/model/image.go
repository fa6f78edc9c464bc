package model

import "time"

// ImageMetadata describes an asset as reported by the image store.
type ImageMetadata struct {
	Format     string    `json:"format"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// StoredImage is the image triple. Records hold it behind a single pointer so
// URL, external id and metadata are always set or cleared together.
type StoredImage struct {
	URL        string        `json:"url"`
	ExternalID string        `json:"publicId"`
	Metadata   ImageMetadata `json:"metadata"`
}

// ImageUpload is a raw image payload received from a client.
type ImageUpload struct {
	Data     []byte
	Filename string
	UploadID string
	// Owner is the uploading user; progress records are only visible to them.
	Owner string
}

// ImageMode selects how an upsert treats the existing image.
type ImageMode int

const (
	ImageKeep ImageMode = iota
	ImageReplace
	ImageRemove
)

func (m ImageMode) String() string {
	switch m {
	case ImageReplace:
		return "replace"
	case ImageRemove:
		return "remove"
	default:
		return "keep"
	}
}
