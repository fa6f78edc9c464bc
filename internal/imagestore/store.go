// Package imagestore validates, transforms and hosts images on an external
// object store. Validate and Transform are pure; Put and Delete are the only
// network side effects.
package imagestore

import (
	"context"
	"fmt"
)

// Constraints bound what an uploaded image may look like.
type Constraints struct {
	MaxBytes  int64
	MinWidth  int
	MinHeight int
	MaxWidth  int
	MaxHeight int
	// AspectW:AspectH, zero means any ratio.
	AspectW int
	AspectH int
}

const aspectTolerance = 0.1

var (
	ProfileConstraints = Constraints{
		MaxBytes: 10 << 20,
		MinWidth: 100, MinHeight: 100,
		MaxWidth: 2000, MaxHeight: 2000,
	}

	BannerConstraints = Constraints{
		MaxBytes: 50 << 20,
		MinWidth: 300, MinHeight: 150,
		MaxWidth: 4000, MaxHeight: 2000,
	}

	PostConstraints = Constraints{
		MaxBytes: 10 << 20,
		MinWidth: 100, MinHeight: 100,
		MaxWidth: 5000, MaxHeight: 5000,
	}
)

// Metadata is what Validate learns from the image header.
type Metadata struct {
	Format   string
	Width    int
	Height   int
	Bytes    int64
	Animated bool
}

// Rejection is a human-readable reason an image was refused.
type Rejection struct {
	Reason string
}

func (r *Rejection) Error() string { return r.Reason }

// Transformation is a delivery hint forwarded to the store with the object.
type Transformation struct {
	Crop    string
	Width   int
	Height  int
	Gravity string
}

// ProfileCrop is the fixed hint applied to profile pictures.
var ProfileCrop = Transformation{Crop: "fill", Width: 500, Height: 500, Gravity: "center"}

func (t *Transformation) hints() map[string]string {
	if t == nil {
		return nil
	}
	h := map[string]string{}
	if t.Crop != "" {
		h["crop"] = t.Crop
	}
	if t.Width > 0 {
		h["width"] = fmt.Sprint(t.Width)
	}
	if t.Height > 0 {
		h["height"] = fmt.Sprint(t.Height)
	}
	if t.Gravity != "" {
		h["gravity"] = t.Gravity
	}
	return h
}

type PutOptions struct {
	// Name is the object name inside the folder, see UniqueName.
	Name           string
	Transformation *Transformation
}

// Uploaded describes an object that now exists in the store.
type Uploaded struct {
	URL        string
	ExternalID string
	Format     string
	Width      int
	Height     int
	Bytes      int64
}

// Store is the image store contract consumed by the services.
type Store interface {
	Validate(data []byte, c Constraints) (Metadata, *Rejection)
	Transform(data []byte) ([]byte, error)
	Put(ctx context.Context, data []byte, folder string, opts PutOptions) (Uploaded, error)
	Delete(ctx context.Context, externalID string) error
}
