package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SARVESHVARADKAR123/memberclub/internal/model"
)

func mentorProfile(id string, keywords ...string) *model.Profile {
	p := existingProfile("")
	p.ID = id
	p.MembershipType = model.MembershipMentor
	p.MentorshipFields = keywords
	p.PreviousExperience = "CFO"
	p.AreaOfExpertise = "Finance"
	p.AvailableForMentorship = boolPtr(true)
	p.ProfileVerified = true
	return p
}

func TestToggleVisibility_RejectsIneligibleWithoutWrite(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		profile *model.Profile
		reason  string
	}{
		{
			name:    "individual member",
			profile: existingProfile(""),
			reason:  "Only mentors can be shown in mentor section",
		},
		{
			name:    "mentor without keywords",
			profile: mentorProfile("p-1"),
			reason:  "Please add mentorship fields before showing in mentor section",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockProfileStore)
			d := &MentorDirectory{Mentors: repo, Profiles: repo}
			repo.On("GetActiveByID", ctx, "p-1").Return(tt.profile, nil).Once()

			_, err := d.ToggleVisibility(ctx, "p-1", true)

			assert.ErrorIs(t, err, model.ErrNotEligibleMentor)
			var ie *model.IneligibleMentorError
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, tt.reason, ie.Reason)
			repo.AssertNotCalled(t, "SetShowInMentorSection", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestToggleVisibility_HidingNeverChecksEligibility(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProfileStore)
	cache := new(MockCache)
	d := &MentorDirectory{Mentors: repo, Profiles: repo, Cache: cache}

	p := existingProfile("")
	p.ShowInMentorSection = true
	repo.On("GetActiveByID", ctx, "p-1").Return(p, nil).Once()
	repo.On("SetShowInMentorSection", ctx, "p-1", false).Return(nil).Once()
	cache.On("Delete", ctx, "u-1").Return(nil).Once()

	got, err := d.ToggleVisibility(ctx, "p-1", false)
	require.NoError(t, err)
	assert.False(t, got.ShowInMentorSection)

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestToggleVisibility_MentorBecomesListed(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProfileStore)
	d := &MentorDirectory{Mentors: repo, Profiles: repo}

	repo.On("GetActiveByID", ctx, "p-1").Return(mentorProfile("p-1", "finance"), nil).Once()
	repo.On("SetShowInMentorSection", ctx, "p-1", true).Return(nil).Once()

	got, err := d.ToggleVisibility(ctx, "p-1", true)
	require.NoError(t, err)
	assert.True(t, got.InMentorDirectory())
}

func TestToggleVisibility_GuardedWriteLosesRace(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProfileStore)
	d := &MentorDirectory{Mentors: repo, Profiles: repo}

	repo.On("GetActiveByID", ctx, "p-1").Return(mentorProfile("p-1", "finance"), nil).Once()
	repo.On("SetShowInMentorSection", ctx, "p-1", true).Return(model.ErrNotEligibleMentor).Once()

	_, err := d.ToggleVisibility(ctx, "p-1", true)
	assert.ErrorIs(t, err, model.ErrNotEligibleMentor)
}

func TestMentorDirectory_List(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProfileStore)
	d := &MentorDirectory{Mentors: repo, Profiles: repo}

	f := model.MentorFilter{Search: "fin", AvailableOnly: true}
	page := model.NormalizePage(1, 1)
	m := mentorProfile("p-9", "finance")
	m.Image = &model.StoredImage{URL: "https://cdn.example.com/x", ExternalID: "x"}

	repo.On("ListMentors", ctx, f, page).Return([]*model.Profile{m}, 3, nil).Once()
	repo.On("CountAvailableMentors", ctx, f).Return(2, nil).Once()

	res, err := d.List(ctx, f, page)
	require.NoError(t, err)
	require.Len(t, res.Mentors, 1)

	card := res.Mentors[0]
	assert.Equal(t, "p-9", card.ID)
	require.NotNil(t, card.Image)
	assert.Equal(t, "https://cdn.example.com/x", *card.Image)
	assert.True(t, card.AvailableForMentorship)

	assert.Equal(t, 3, res.Pagination.Total)
	assert.Equal(t, 3, res.Pagination.TotalPages)
	assert.True(t, res.Pagination.HasNextPage)
	assert.False(t, res.Pagination.HasPrevPage)
	assert.Equal(t, 2, res.TotalAvailable)
}

func TestMentorDirectory_GetHidden(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProfileStore)
	d := &MentorDirectory{Mentors: repo, Profiles: repo}

	repo.On("GetMentor", ctx, "p-2").Return(nil, model.ErrMentorNotFound).Once()

	_, err := d.Get(ctx, "p-2")
	assert.ErrorIs(t, err, model.ErrMentorNotFound)
}

func TestAdmin_VerifyAndDeactivate(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProfileStore)
	cache := new(MockCache)
	s := &AdminService{Profiles: repo, Cache: cache}

	repo.On("GetActiveByID", ctx, "p-1").Return(existingProfile(""), nil).Twice()
	repo.On("SetVerified", ctx, "p-1", true).Return(nil).Once()
	repo.On("SoftDelete", ctx, "p-1").Return(nil).Once()
	cache.On("Delete", ctx, "u-1").Return(nil).Twice()

	p, err := s.Verify(ctx, "p-1", true)
	require.NoError(t, err)
	assert.True(t, p.ProfileVerified)

	require.NoError(t, s.Deactivate(ctx, "p-1"))

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestAdmin_MissingProfile(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProfileStore)
	s := &AdminService{Profiles: repo}

	repo.On("GetActiveByID", ctx, "nope").Return(nil, model.ErrProfileNotFound)

	_, err := s.Verify(ctx, "nope", true)
	assert.ErrorIs(t, err, model.ErrProfileNotFound)
	assert.ErrorIs(t, s.Deactivate(ctx, "nope"), model.ErrProfileNotFound)
	repo.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything)
}

func TestAdmin_ListPaginates(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProfileStore)
	s := &AdminService{Profiles: repo}

	f := model.ProfileFilter{Status: "all"}
	page := model.NormalizePage(2, 10)
	repo.On("List", ctx, f, page).Return([]*model.Profile{existingProfile("")}, 11, nil).Once()

	res, err := s.List(ctx, f, page)
	require.NoError(t, err)
	assert.Len(t, res.Profiles, 1)
	assert.Equal(t, 2, res.Pagination.TotalPages)
	assert.False(t, res.Pagination.HasNextPage)
	assert.True(t, res.Pagination.HasPrevPage)
}
