package handler

import (
	"context"

	"github.com/SARVESHVARADKAR123/memberclub/internal/model"
	"github.com/SARVESHVARADKAR123/memberclub/internal/service"
)

// The handlers depend on these method sets; the types in package service
// implement them.

type ProfileService interface {
	Get(ctx context.Context, userID string) (*model.Profile, error)
	Upsert(ctx context.Context, in service.UpsertInput) (*service.UpsertResult, error)
	ReplaceImage(ctx context.Context, userID string, img *model.ImageUpload) (*model.Profile, error)
	RemoveImage(ctx context.Context, userID string) (*model.Profile, error)
	Delete(ctx context.Context, userID string) error
}

type MentorDirectory interface {
	List(ctx context.Context, f model.MentorFilter, p model.Page) (*service.MentorPage, error)
	Get(ctx context.Context, profileID string) (*model.MentorCard, error)
	Expertise(ctx context.Context) ([]model.ExpertiseCount, error)
	ToggleVisibility(ctx context.Context, profileID string, show bool) (*model.Profile, error)
}

type AdminService interface {
	List(ctx context.Context, f model.ProfileFilter, p model.Page) (*service.ProfilePage, error)
	Get(ctx context.Context, id string) (*model.Profile, error)
	Deactivate(ctx context.Context, id string) error
	Verify(ctx context.Context, id string, verified bool) (*model.Profile, error)
}

type BannerService interface {
	Create(ctx context.Context, in service.BannerInput, img *model.ImageUpload) (*model.Banner, error)
	Get(ctx context.Context, id string) (*model.Banner, error)
	List(ctx context.Context, f model.BannerFilter, p model.Page) ([]*model.Banner, model.Pagination, error)
	Update(ctx context.Context, id string, in service.BannerInput, img *model.ImageUpload) (*model.Banner, error)
	Delete(ctx context.Context, id string) error
	Toggle(ctx context.Context, id string) (bool, error)
	Click(ctx context.Context, id string) error
}

type WhiteboardService interface {
	Create(ctx context.Context, userID string, in service.PostInput, img *model.ImageUpload) (*model.WhiteboardPost, error)
	List(ctx context.Context, pages map[string]model.Page) (map[string]model.CategoryPage, error)
	View(ctx context.Context, id string) (*model.WhiteboardPost, error)
	Update(ctx context.Context, actor service.Actor, id string, in service.PostInput, img *model.ImageUpload, removeImage bool) (*model.WhiteboardPost, error)
	Delete(ctx context.Context, actor service.Actor, id string) error
	Moderate(ctx context.Context, adminID, id string, in service.ModerationInput) (*model.WhiteboardPost, error)
}

type MentorRequestService interface {
	Create(ctx context.Context, userID, mentorProfileID, message string) (*model.MentorRequest, error)
	Sent(ctx context.Context, userID string) ([]*model.MentorRequest, error)
	Received(ctx context.Context, mentorUserID string) ([]*model.MentorRequest, error)
	Respond(ctx context.Context, mentorUserID, id string, accept bool) (*model.MentorRequest, error)
}

type UploadProgress interface {
	Get(ctx context.Context, owner, uploadID string) (*model.UploadProgress, error)
}
