package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/SARVESHVARADKAR123/memberclub/internal/imagestore"
	"github.com/SARVESHVARADKAR123/memberclub/internal/model"
	"github.com/SARVESHVARADKAR123/memberclub/internal/observability"
	"github.com/SARVESHVARADKAR123/memberclub/internal/validation"
)

const bannerFolder = "banners"

type BannerService struct {
	Repo   BannerStore
	Images *ImageLifecycle
}

// BannerInput is the admin-editable banner field set.
type BannerInput struct {
	Title       string   `validate:"required,max=200"`
	Description string   `validate:"max=2000"`
	Links       []string `validate:"max=10,dive,http_url"`
	Email       string   `validate:"omitempty,email"`
	PhoneNumber string   `validate:"omitempty,max=20"`
	Tags        []string `validate:"max=20,dive,max=50"`
	Priority    int      `validate:"gte=0,lte=100"`
	IsActive    *bool
}

// SplitList splits a comma separated form value, dropping blanks.
func SplitList(v string) []string {
	out := []string{}
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (in BannerInput) normalize() BannerInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	in.Tags = validation.NormalizeKeywords(in.Tags)
	return in
}

func (in BannerInput) apply(b *model.Banner) {
	b.Title = in.Title
	b.Description = in.Description
	b.Links = in.Links
	b.Email = in.Email
	b.PhoneNumber = in.PhoneNumber
	b.Tags = in.Tags
	b.Priority = in.Priority
	if in.IsActive != nil {
		b.IsActive = *in.IsActive
	}
}

func checkBanner(in BannerInput) error {
	if errs := validation.Struct(in); len(errs) > 0 {
		return &model.ValidationError{Fields: errs}
	}
	return nil
}

// Create requires an image; it is uploaded before the row is written and
// deleted again if the write fails.
func (s *BannerService) Create(ctx context.Context, in BannerInput, img *model.ImageUpload) (*model.Banner, error) {
	in = in.normalize()
	if err := checkBanner(in); err != nil {
		return nil, err
	}
	if img == nil {
		return nil, &model.ValidationError{Fields: []model.FieldError{{Field: "image", Message: "Banner image is required"}}}
	}

	pending, err := s.Images.Upload(ctx, img, bannerFolder, imagestore.BannerConstraints, nil)
	if err != nil {
		return nil, err
	}

	b := &model.Banner{IsActive: true, Image: pending}
	in.apply(b)
	if err := s.Repo.Create(ctx, b); err != nil {
		s.Images.Compensate(ctx, pending.ExternalID)
		return nil, &model.PersistenceError{Reason: "failed to save banner", Partial: true, Err: err}
	}

	observability.GetLogger(ctx).Info("banner created", zap.String("banner_id", b.ID))
	return b, nil
}

// Get returns a banner and counts the view.
func (s *BannerService) Get(ctx context.Context, id string) (*model.Banner, error) {
	if err := s.Repo.Increment(ctx, id, "views"); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, id)
}

func (s *BannerService) List(ctx context.Context, f model.BannerFilter, p model.Page) ([]*model.Banner, model.Pagination, error) {
	rows, total, err := s.Repo.List(ctx, f, p)
	if err != nil {
		return nil, model.Pagination{}, err
	}
	return rows, model.NewPagination(p, total), nil
}

// Update replaces the fields and, when img is given, the image.
func (s *BannerService) Update(ctx context.Context, id string, in BannerInput, img *model.ImageUpload) (*model.Banner, error) {
	in = in.normalize()
	if err := checkBanner(in); err != nil {
		return nil, err
	}

	b, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	oldID := b.ImageExternalID()

	var pending *model.StoredImage
	if img != nil {
		pending, err = s.Images.Upload(ctx, img, bannerFolder, imagestore.BannerConstraints, nil)
		if err != nil {
			return nil, err
		}
		b.Image = pending
	}

	in.apply(b)
	if err := s.Repo.Update(ctx, b); err != nil {
		if pending != nil {
			s.Images.Compensate(ctx, pending.ExternalID)
		}
		return nil, &model.PersistenceError{Reason: "failed to update banner", Partial: pending != nil, Err: err}
	}

	if pending != nil && oldID != pending.ExternalID {
		s.Images.Release(ctx, oldID)
	}
	return b, nil
}

func (s *BannerService) Delete(ctx context.Context, id string) error {
	imageID, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.Images.Release(ctx, imageID)
	return nil
}

func (s *BannerService) Toggle(ctx context.Context, id string) (bool, error) {
	return s.Repo.ToggleActive(ctx, id)
}

func (s *BannerService) Click(ctx context.Context, id string) error {
	return s.Repo.Increment(ctx, id, "clicks")
}
