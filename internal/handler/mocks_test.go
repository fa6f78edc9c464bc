package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/SARVESHVARADKAR123/memberclub/internal/model"
	"github.com/SARVESHVARADKAR123/memberclub/internal/service"
)

type MockProfileService struct{ mock.Mock }

func (m *MockProfileService) Get(ctx context.Context, userID string) (*model.Profile, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*model.Profile)
	return p, args.Error(1)
}
func (m *MockProfileService) Upsert(ctx context.Context, in service.UpsertInput) (*service.UpsertResult, error) {
	args := m.Called(ctx, in)
	r, _ := args.Get(0).(*service.UpsertResult)
	return r, args.Error(1)
}
func (m *MockProfileService) ReplaceImage(ctx context.Context, userID string, img *model.ImageUpload) (*model.Profile, error) {
	args := m.Called(ctx, userID, img)
	p, _ := args.Get(0).(*model.Profile)
	return p, args.Error(1)
}
func (m *MockProfileService) RemoveImage(ctx context.Context, userID string) (*model.Profile, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*model.Profile)
	return p, args.Error(1)
}
func (m *MockProfileService) Delete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type MockMentorDirectory struct{ mock.Mock }

func (m *MockMentorDirectory) List(ctx context.Context, f model.MentorFilter, p model.Page) (*service.MentorPage, error) {
	args := m.Called(ctx, f, p)
	r, _ := args.Get(0).(*service.MentorPage)
	return r, args.Error(1)
}
func (m *MockMentorDirectory) Get(ctx context.Context, profileID string) (*model.MentorCard, error) {
	args := m.Called(ctx, profileID)
	c, _ := args.Get(0).(*model.MentorCard)
	return c, args.Error(1)
}
func (m *MockMentorDirectory) Expertise(ctx context.Context) ([]model.ExpertiseCount, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]model.ExpertiseCount)
	return c, args.Error(1)
}
func (m *MockMentorDirectory) ToggleVisibility(ctx context.Context, profileID string, show bool) (*model.Profile, error) {
	args := m.Called(ctx, profileID, show)
	p, _ := args.Get(0).(*model.Profile)
	return p, args.Error(1)
}

type MockAdminService struct{ mock.Mock }

func (m *MockAdminService) List(ctx context.Context, f model.ProfileFilter, p model.Page) (*service.ProfilePage, error) {
	args := m.Called(ctx, f, p)
	r, _ := args.Get(0).(*service.ProfilePage)
	return r, args.Error(1)
}
func (m *MockAdminService) Get(ctx context.Context, id string) (*model.Profile, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Profile)
	return p, args.Error(1)
}
func (m *MockAdminService) Deactivate(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockAdminService) Verify(ctx context.Context, id string, verified bool) (*model.Profile, error) {
	args := m.Called(ctx, id, verified)
	p, _ := args.Get(0).(*model.Profile)
	return p, args.Error(1)
}

type MockBannerService struct{ mock.Mock }

func (m *MockBannerService) Create(ctx context.Context, in service.BannerInput, img *model.ImageUpload) (*model.Banner, error) {
	args := m.Called(ctx, in, img)
	b, _ := args.Get(0).(*model.Banner)
	return b, args.Error(1)
}
func (m *MockBannerService) Get(ctx context.Context, id string) (*model.Banner, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*model.Banner)
	return b, args.Error(1)
}
func (m *MockBannerService) List(ctx context.Context, f model.BannerFilter, p model.Page) ([]*model.Banner, model.Pagination, error) {
	args := m.Called(ctx, f, p)
	b, _ := args.Get(0).([]*model.Banner)
	return b, args.Get(1).(model.Pagination), args.Error(2)
}
func (m *MockBannerService) Update(ctx context.Context, id string, in service.BannerInput, img *model.ImageUpload) (*model.Banner, error) {
	args := m.Called(ctx, id, in, img)
	b, _ := args.Get(0).(*model.Banner)
	return b, args.Error(1)
}
func (m *MockBannerService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockBannerService) Toggle(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *MockBannerService) Click(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockWhiteboardService struct{ mock.Mock }

func (m *MockWhiteboardService) Create(ctx context.Context, userID string, in service.PostInput, img *model.ImageUpload) (*model.WhiteboardPost, error) {
	args := m.Called(ctx, userID, in, img)
	p, _ := args.Get(0).(*model.WhiteboardPost)
	return p, args.Error(1)
}
func (m *MockWhiteboardService) List(ctx context.Context, pages map[string]model.Page) (map[string]model.CategoryPage, error) {
	args := m.Called(ctx, pages)
	r, _ := args.Get(0).(map[string]model.CategoryPage)
	return r, args.Error(1)
}
func (m *MockWhiteboardService) View(ctx context.Context, id string) (*model.WhiteboardPost, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.WhiteboardPost)
	return p, args.Error(1)
}
func (m *MockWhiteboardService) Update(ctx context.Context, actor service.Actor, id string, in service.PostInput, img *model.ImageUpload, removeImage bool) (*model.WhiteboardPost, error) {
	args := m.Called(ctx, actor, id, in, img, removeImage)
	p, _ := args.Get(0).(*model.WhiteboardPost)
	return p, args.Error(1)
}
func (m *MockWhiteboardService) Delete(ctx context.Context, actor service.Actor, id string) error {
	return m.Called(ctx, actor, id).Error(0)
}
func (m *MockWhiteboardService) Moderate(ctx context.Context, adminID, id string, in service.ModerationInput) (*model.WhiteboardPost, error) {
	args := m.Called(ctx, adminID, id, in)
	p, _ := args.Get(0).(*model.WhiteboardPost)
	return p, args.Error(1)
}

type MockMentorRequestService struct{ mock.Mock }

func (m *MockMentorRequestService) Create(ctx context.Context, userID, mentorProfileID, message string) (*model.MentorRequest, error) {
	args := m.Called(ctx, userID, mentorProfileID, message)
	r, _ := args.Get(0).(*model.MentorRequest)
	return r, args.Error(1)
}
func (m *MockMentorRequestService) Sent(ctx context.Context, userID string) ([]*model.MentorRequest, error) {
	args := m.Called(ctx, userID)
	r, _ := args.Get(0).([]*model.MentorRequest)
	return r, args.Error(1)
}
func (m *MockMentorRequestService) Received(ctx context.Context, mentorUserID string) ([]*model.MentorRequest, error) {
	args := m.Called(ctx, mentorUserID)
	r, _ := args.Get(0).([]*model.MentorRequest)
	return r, args.Error(1)
}
func (m *MockMentorRequestService) Respond(ctx context.Context, mentorUserID, id string, accept bool) (*model.MentorRequest, error) {
	args := m.Called(ctx, mentorUserID, id, accept)
	r, _ := args.Get(0).(*model.MentorRequest)
	return r, args.Error(1)
}

type MockUploadProgress struct{ mock.Mock }

func (m *MockUploadProgress) Get(ctx context.Context, owner, uploadID string) (*model.UploadProgress, error) {
	args := m.Called(ctx, owner, uploadID)
	p, _ := args.Get(0).(*model.UploadProgress)
	return p, args.Error(1)
}
