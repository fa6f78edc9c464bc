package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/SARVESHVARADKAR123/memberclub/internal/imagestore"
	"github.com/SARVESHVARADKAR123/memberclub/internal/model"
)

var fixedNow = time.Date(2026, time.October, 14, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

// MockProfileStore is a mock for ProfileStore and MentorStore
type MockProfileStore struct {
	mock.Mock
}

func (m *MockProfileStore) GetByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}
func (m *MockProfileStore) GetActiveByID(ctx context.Context, id string) (*model.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}
func (m *MockProfileStore) Insert(ctx context.Context, p *model.Profile) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockProfileStore) ReplaceByUserID(ctx context.Context, p *model.Profile) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockProfileStore) DeleteByUserID(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}
func (m *MockProfileStore) SetShowInMentorSection(ctx context.Context, id string, show bool) error {
	return m.Called(ctx, id, show).Error(0)
}
func (m *MockProfileStore) SetVerified(ctx context.Context, id string, verified bool) error {
	return m.Called(ctx, id, verified).Error(0)
}
func (m *MockProfileStore) SoftDelete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockProfileStore) List(ctx context.Context, f model.ProfileFilter, p model.Page) ([]*model.Profile, int, error) {
	args := m.Called(ctx, f, p)
	return args.Get(0).([]*model.Profile), args.Int(1), args.Error(2)
}
func (m *MockProfileStore) ListMentors(ctx context.Context, f model.MentorFilter, p model.Page) ([]*model.Profile, int, error) {
	args := m.Called(ctx, f, p)
	return args.Get(0).([]*model.Profile), args.Int(1), args.Error(2)
}
func (m *MockProfileStore) CountAvailableMentors(ctx context.Context, f model.MentorFilter) (int, error) {
	args := m.Called(ctx, f)
	return args.Int(0), args.Error(1)
}
func (m *MockProfileStore) GetMentor(ctx context.Context, id string) (*model.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}
func (m *MockProfileStore) ExpertiseCounts(ctx context.Context) ([]model.ExpertiseCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.ExpertiseCount), args.Error(1)
}

// MockImageStore is a mock for imagestore.Store
type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Validate(data []byte, c imagestore.Constraints) (imagestore.Metadata, *imagestore.Rejection) {
	args := m.Called(data, c)
	rej, _ := args.Get(1).(*imagestore.Rejection)
	return args.Get(0).(imagestore.Metadata), rej
}
func (m *MockImageStore) Transform(data []byte) ([]byte, error) {
	args := m.Called(data)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}
func (m *MockImageStore) Put(ctx context.Context, data []byte, folder string, opts imagestore.PutOptions) (imagestore.Uploaded, error) {
	args := m.Called(ctx, data, folder, opts)
	return args.Get(0).(imagestore.Uploaded), args.Error(1)
}
func (m *MockImageStore) Delete(ctx context.Context, externalID string) error {
	return m.Called(ctx, externalID).Error(0)
}

// acceptImage wires Validate and Transform to succeed for any payload.
func (m *MockImageStore) acceptImage() {
	m.On("Validate", mock.Anything, mock.Anything).Return(imagestore.Metadata{Format: "png", Width: 800, Height: 600}, nil)
	m.On("Transform", mock.Anything).Return([]byte("transformed"), nil)
}

func uploaded(id string) imagestore.Uploaded {
	return imagestore.Uploaded{
		URL:        "https://cdn.example.com/" + id,
		ExternalID: id,
		Format:     "webp",
		Width:      800,
		Height:     600,
		Bytes:      4096,
	}
}

// MockCache is a mock for ProfileCacher
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, userID string) (*model.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}
func (m *MockCache) Set(ctx context.Context, p *model.Profile) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockCache) Delete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

// MockOutbox is a mock for EventOutbox
type MockOutbox struct {
	mock.Mock
}

func (m *MockOutbox) Add(ctx context.Context, topic, key string, payload []byte) error {
	return m.Called(ctx, topic, key, payload).Error(0)
}
func (m *MockOutbox) InsertTx(ctx context.Context, tx *sql.Tx, topic, key string, payload []byte) error {
	return m.Called(ctx, tx, topic, key, payload).Error(0)
}

// MockTransactor runs fn without a real transaction
type MockTransactor struct{}

func (m *MockTransactor) WithTx(ctx context.Context, fn func(ctx context.Context, tx *sql.Tx) error) error {
	return fn(ctx, nil)
}

// MockBannerStore is a mock for BannerStore
type MockBannerStore struct {
	mock.Mock
}

func (m *MockBannerStore) Create(ctx context.Context, b *model.Banner) error {
	return m.Called(ctx, b).Error(0)
}
func (m *MockBannerStore) Get(ctx context.Context, id string) (*model.Banner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Banner), args.Error(1)
}
func (m *MockBannerStore) Update(ctx context.Context, b *model.Banner) error {
	return m.Called(ctx, b).Error(0)
}
func (m *MockBannerStore) Delete(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}
func (m *MockBannerStore) ToggleActive(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *MockBannerStore) Increment(ctx context.Context, id, counter string) error {
	return m.Called(ctx, id, counter).Error(0)
}
func (m *MockBannerStore) List(ctx context.Context, f model.BannerFilter, p model.Page) ([]*model.Banner, int, error) {
	args := m.Called(ctx, f, p)
	return args.Get(0).([]*model.Banner), args.Int(1), args.Error(2)
}

// MockWhiteboardStore is a mock for WhiteboardStore
type MockWhiteboardStore struct {
	mock.Mock
}

func (m *MockWhiteboardStore) Create(ctx context.Context, p *model.WhiteboardPost) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockWhiteboardStore) Get(ctx context.Context, id string) (*model.WhiteboardPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WhiteboardPost), args.Error(1)
}
func (m *MockWhiteboardStore) View(ctx context.Context, id string) (*model.WhiteboardPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WhiteboardPost), args.Error(1)
}
func (m *MockWhiteboardStore) Update(ctx context.Context, p *model.WhiteboardPost) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockWhiteboardStore) Moderate(ctx context.Context, p *model.WhiteboardPost) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockWhiteboardStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockWhiteboardStore) ListByCategory(ctx context.Context, category string, statuses []string, p model.Page) ([]*model.WhiteboardPost, int, error) {
	args := m.Called(ctx, category, statuses, p)
	return args.Get(0).([]*model.WhiteboardPost), args.Int(1), args.Error(2)
}
func (m *MockWhiteboardStore) UnfeatureExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockMentorRequestStore is a mock for MentorRequestStore
type MockMentorRequestStore struct {
	mock.Mock
}

func (m *MockMentorRequestStore) InsertTx(ctx context.Context, tx *sql.Tx, r *model.MentorRequest) error {
	return m.Called(ctx, tx, r).Error(0)
}
func (m *MockMentorRequestStore) HasPending(ctx context.Context, userID, mentorUserID string) (bool, error) {
	args := m.Called(ctx, userID, mentorUserID)
	return args.Bool(0), args.Error(1)
}
func (m *MockMentorRequestStore) Get(ctx context.Context, id string) (*model.MentorRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MentorRequest), args.Error(1)
}
func (m *MockMentorRequestStore) ListByUser(ctx context.Context, userID string) ([]*model.MentorRequest, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*model.MentorRequest), args.Error(1)
}
func (m *MockMentorRequestStore) ListForMentor(ctx context.Context, mentorUserID string) ([]*model.MentorRequest, error) {
	args := m.Called(ctx, mentorUserID)
	return args.Get(0).([]*model.MentorRequest), args.Error(1)
}
func (m *MockMentorRequestStore) Respond(ctx context.Context, id, status string, at time.Time) (*model.MentorRequest, error) {
	args := m.Called(ctx, id, status, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MentorRequest), args.Error(1)
}
