package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/SARVESHVARADKAR123/memberclub/internal/imagestore"
	"github.com/SARVESHVARADKAR123/memberclub/internal/model"
	"github.com/SARVESHVARADKAR123/memberclub/internal/observability"
	"github.com/SARVESHVARADKAR123/memberclub/internal/validation"
)

const whiteboardFolder = "whiteboard"

// publicStatuses are the moderation states shown on the public board.
var publicStatuses = []string{model.PostPending, model.PostActive}

type WhiteboardService struct {
	Repo   WhiteboardStore
	Images *ImageLifecycle
	Now    func() time.Time
}

type PostInput struct {
	Category    string `validate:"required,oneof=startup_news services_wanted services_offering"`
	Title       string `validate:"required,min=3,max=150"`
	Description string `validate:"required,min=10,max=5000"`
	WebsiteURL  string `validate:"omitempty,url"`
}

type ModerationInput struct {
	Status        *string `validate:"omitempty,oneof=pending active rejected archived"`
	IsFeatured    *bool
	FeaturedUntil *time.Time
	AdminNotes    *string `validate:"omitempty,max=1000"`
}

// Actor is the authenticated caller of an ownership-checked operation.
type Actor struct {
	UserID string
	Admin  bool
}

func (s *WhiteboardService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (in PostInput) normalize() PostInput {
	in.Category = strings.TrimSpace(in.Category)
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.WebsiteURL = strings.TrimSpace(in.WebsiteURL)
	return in
}

func checkStruct(v any) error {
	if errs := validation.Struct(v); len(errs) > 0 {
		return &model.ValidationError{Fields: errs}
	}
	return nil
}

func (s *WhiteboardService) Create(ctx context.Context, userID string, in PostInput, img *model.ImageUpload) (*model.WhiteboardPost, error) {
	in = in.normalize()
	if err := checkStruct(in); err != nil {
		return nil, err
	}

	var pending *model.StoredImage
	if img != nil {
		var err error
		pending, err = s.Images.Upload(ctx, img, whiteboardFolder, imagestore.PostConstraints, nil)
		if err != nil {
			return nil, err
		}
	}

	p := &model.WhiteboardPost{
		Category:    in.Category,
		Title:       in.Title,
		Description: in.Description,
		WebsiteURL:  in.WebsiteURL,
		CreatedBy:   userID,
		Image:       pending,
		Status:      model.PostPending,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		if pending != nil {
			s.Images.Compensate(ctx, pending.ExternalID)
		}
		return nil, &model.PersistenceError{Reason: "failed to save post", Partial: pending != nil, Err: err}
	}
	return p, nil
}

// List pages every category independently in one call.
func (s *WhiteboardService) List(ctx context.Context, pages map[string]model.Page) (map[string]model.CategoryPage, error) {
	out := make(map[string]model.CategoryPage, len(model.Categories))
	for _, c := range model.Categories {
		p, ok := pages[c]
		if !ok {
			p = model.NormalizePage(1, 10)
		}
		rows, total, err := s.Repo.ListByCategory(ctx, c, publicStatuses, p)
		if err != nil {
			return nil, err
		}
		out[c] = model.CategoryPage{Data: rows, Total: total, Page: p.Page, Limit: p.Limit}
	}
	return out, nil
}

// View returns a post and counts the read.
func (s *WhiteboardService) View(ctx context.Context, id string) (*model.WhiteboardPost, error) {
	return s.Repo.View(ctx, id)
}

func (s *WhiteboardService) owned(ctx context.Context, actor Actor, id string) (*model.WhiteboardPost, error) {
	p, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.CreatedBy != actor.UserID && !actor.Admin {
		return nil, model.ErrForbidden
	}
	return p, nil
}

// Update lets the author edit the post. A new image replaces the old one
// after the row commits; removeImage clears it.
func (s *WhiteboardService) Update(ctx context.Context, actor Actor, id string, in PostInput, img *model.ImageUpload, removeImage bool) (*model.WhiteboardPost, error) {
	in = in.normalize()
	if err := checkStruct(in); err != nil {
		return nil, err
	}

	p, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	oldID := p.ImageExternalID()

	var pending *model.StoredImage
	switch {
	case img != nil:
		pending, err = s.Images.Upload(ctx, img, whiteboardFolder, imagestore.PostConstraints, nil)
		if err != nil {
			return nil, err
		}
		p.Image = pending
	case removeImage:
		p.Image = nil
	}

	p.Category = in.Category
	p.Title = in.Title
	p.Description = in.Description
	p.WebsiteURL = in.WebsiteURL
	p.LastModifiedBy = actor.UserID

	if err := s.Repo.Update(ctx, p); err != nil {
		if pending != nil {
			s.Images.Compensate(ctx, pending.ExternalID)
		}
		return nil, &model.PersistenceError{Reason: "failed to update post", Partial: pending != nil, Err: err}
	}

	if oldID != "" && oldID != p.ImageExternalID() {
		s.Images.Release(ctx, oldID)
	}
	return p, nil
}

func (s *WhiteboardService) Delete(ctx context.Context, actor Actor, id string) error {
	p, err := s.owned(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Images.Release(ctx, p.ImageExternalID())
	return nil
}

// Moderate applies the admin-controlled fields that are set in in.
func (s *WhiteboardService) Moderate(ctx context.Context, adminID, id string, in ModerationInput) (*model.WhiteboardPost, error) {
	if err := checkStruct(in); err != nil {
		return nil, err
	}

	p, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.IsFeatured != nil {
		p.IsFeatured = *in.IsFeatured
		if !p.IsFeatured {
			p.FeaturedUntil = nil
		}
	}
	if in.FeaturedUntil != nil && p.IsFeatured {
		if !in.FeaturedUntil.After(s.now()) {
			return nil, &model.ValidationError{Fields: []model.FieldError{{Field: "featuredUntil", Message: "must be in the future"}}}
		}
		t := *in.FeaturedUntil
		p.FeaturedUntil = &t
	}
	if in.AdminNotes != nil {
		p.AdminNotes = strings.TrimSpace(*in.AdminNotes)
	}
	p.LastModifiedBy = adminID

	if err := s.Repo.Moderate(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// SweepExpiredFeatures un-features posts whose featuredUntil has passed.
func (s *WhiteboardService) SweepExpiredFeatures(ctx context.Context) (int64, error) {
	n, err := s.Repo.UnfeatureExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		observability.GetLogger(ctx).Info("featured posts expired", zap.Int64("count", n))
	}
	return n, nil
}
