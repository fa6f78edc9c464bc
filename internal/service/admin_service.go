package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/SARVESHVARADKAR123/memberclub/internal/model"
	"github.com/SARVESHVARADKAR123/memberclub/internal/observability"
)

// AdminService holds the moderation operations on member profiles.
type AdminService struct {
	Profiles ProfileStore
	Cache    ProfileCacher // optional
}

type ProfilePage struct {
	Profiles   []*model.Profile `json:"profiles"`
	Pagination model.Pagination `json:"pagination"`
}

func (s *AdminService) List(ctx context.Context, f model.ProfileFilter, p model.Page) (*ProfilePage, error) {
	rows, total, err := s.Profiles.List(ctx, f, p)
	if err != nil {
		return nil, err
	}
	return &ProfilePage{Profiles: rows, Pagination: model.NewPagination(p, total)}, nil
}

func (s *AdminService) Get(ctx context.Context, id string) (*model.Profile, error) {
	return s.Profiles.GetActiveByID(ctx, id)
}

// Deactivate soft-deletes a profile. The image is kept so the profile can be
// restored.
func (s *AdminService) Deactivate(ctx context.Context, id string) error {
	p, err := s.Profiles.GetActiveByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Profiles.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, p.UserID)
	return nil
}

func (s *AdminService) Verify(ctx context.Context, id string, verified bool) (*model.Profile, error) {
	p, err := s.Profiles.GetActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Profiles.SetVerified(ctx, id, verified); err != nil {
		return nil, err
	}
	p.ProfileVerified = verified
	s.invalidate(ctx, p.UserID)
	return p, nil
}

func (s *AdminService) invalidate(ctx context.Context, userID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Delete(ctx, userID); err != nil {
		observability.GetLogger(ctx).Warn("profile cache invalidation failed",
			zap.String("user_id", userID), zap.Error(err))
	}
}
