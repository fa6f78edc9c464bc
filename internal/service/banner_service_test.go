package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SARVESHVARADKAR123/memberclub/internal/model"
)

func newBannerService() (*BannerService, *MockBannerStore, *MockImageStore) {
	repo := new(MockBannerStore)
	store := new(MockImageStore)
	return &BannerService{Repo: repo, Images: &ImageLifecycle{Store: store, Now: clock}}, repo, store
}

func bannerInput() BannerInput {
	return BannerInput{
		Title:    "  Annual Meet  ",
		Links:    []string{"https://club.example.com/meet"},
		Tags:     []string{" Events ", "events", ""},
		Priority: 10,
	}
}

func TestBannerCreate_RequiresImage(t *testing.T) {
	svc, repo, _ := newBannerService()

	_, err := svc.Create(context.Background(), bannerInput(), nil)

	var ve *model.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Banner image is required", ve.Fields[0].Message)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBannerCreate_InvalidFields(t *testing.T) {
	svc, _, store := newBannerService()
	in := bannerInput()
	in.Title = ""
	in.Links = []string{"not a url"}
	in.Priority = 101

	_, err := svc.Create(context.Background(), in, &model.ImageUpload{Data: []byte("raw")})

	var ve *model.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Fields, 3)
	store.AssertNotCalled(t, "Validate", mock.Anything, mock.Anything)
}

func TestBannerCreate(t *testing.T) {
	ctx := context.Background()
	svc, repo, store := newBannerService()
	store.acceptImage()

	store.On("Put", ctx, mock.Anything, "banners/2026/10", mock.Anything).Return(uploaded("b-img"), nil).Once()
	repo.On("Create", ctx, mock.MatchedBy(func(b *model.Banner) bool {
		return b.Title == "Annual Meet" && b.IsActive && b.ImageExternalID() == "b-img"
	})).Return(nil).Once()

	b, err := svc.Create(ctx, bannerInput(), &model.ImageUpload{Data: []byte("raw")})
	require.NoError(t, err)
	assert.Equal(t, []string{"events"}, b.Tags)
	repo.AssertExpectations(t)
}

func TestBannerCreate_DuplicateTitleCompensates(t *testing.T) {
	ctx := context.Background()
	svc, repo, store := newBannerService()
	store.acceptImage()

	store.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(uploaded("b-img"), nil).Once()
	repo.On("Create", ctx, mock.Anything).Return(model.ErrStorageConflict).Once()
	store.On("Delete", mock.Anything, "b-img").Return(nil).Once()

	_, err := svc.Create(ctx, bannerInput(), &model.ImageUpload{Data: []byte("raw")})
	assert.ErrorIs(t, err, model.ErrStorageConflict)
	store.AssertExpectations(t)
}

func TestBannerUpdate_ReplacesImageAfterCommit(t *testing.T) {
	ctx := context.Background()
	svc, repo, store := newBannerService()
	store.acceptImage()

	current := &model.Banner{ID: "b-1", Title: "Old", Image: &model.StoredImage{URL: "u", ExternalID: "old-img"}}
	repo.On("Get", ctx, "b-1").Return(current, nil).Once()
	store.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(uploaded("new-img"), nil).Once()
	repo.On("Update", ctx, mock.Anything).Return(nil).Once()
	store.On("Delete", mock.Anything, "old-img").Return(nil).Once()

	b, err := svc.Update(ctx, "b-1", bannerInput(), &model.ImageUpload{Data: []byte("raw")})
	require.NoError(t, err)
	assert.Equal(t, "new-img", b.ImageExternalID())

	svc.Images.Wait()
	store.AssertExpectations(t)
}

func TestBannerUpdate_FieldsOnlyKeepsImage(t *testing.T) {
	ctx := context.Background()
	svc, repo, store := newBannerService()

	current := &model.Banner{ID: "b-1", Title: "Old", Image: &model.StoredImage{URL: "u", ExternalID: "old-img"}}
	repo.On("Get", ctx, "b-1").Return(current, nil).Once()
	repo.On("Update", ctx, mock.Anything).Return(nil).Once()

	b, err := svc.Update(ctx, "b-1", bannerInput(), nil)
	require.NoError(t, err)
	assert.Equal(t, "old-img", b.ImageExternalID())

	svc.Images.Wait()
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestBannerDelete_ReleasesImage(t *testing.T) {
	ctx := context.Background()
	svc, repo, store := newBannerService()

	repo.On("Delete", ctx, "b-1").Return("old-img", nil).Once()
	store.On("Delete", mock.Anything, "old-img").Return(errors.New("store down")).Once()

	require.NoError(t, svc.Delete(ctx, "b-1"))
	svc.Images.Wait()
	store.AssertExpectations(t)
}

func TestBannerGet_CountsView(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newBannerService()

	repo.On("Increment", ctx, "b-1", "views").Return(nil).Once()
	repo.On("Get", ctx, "b-1").Return(&model.Banner{ID: "b-1", Views: 1}, nil).Once()

	b, err := svc.Get(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), b.Views)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitList(" a, ,b ,"))
	assert.Equal(t, []string{}, SplitList(""))
}
