package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/SARVESHVARADKAR123/memberclub/internal/model"
	"github.com/SARVESHVARADKAR123/memberclub/internal/observability"
)

// MentorDirectory is the read model over visible mentors. It is computed on
// every query from persisted flags; nothing is materialized.
type MentorDirectory struct {
	Mentors  MentorStore
	Profiles ProfileStore
	Cache    ProfileCacher // optional
}

type MentorPage struct {
	Mentors        []model.MentorCard `json:"mentors"`
	Pagination     model.Pagination   `json:"pagination"`
	TotalAvailable int                `json:"totalAvailable"`
}

func (d *MentorDirectory) List(ctx context.Context, f model.MentorFilter, p model.Page) (*MentorPage, error) {
	rows, total, err := d.Mentors.ListMentors(ctx, f, p)
	if err != nil {
		return nil, err
	}
	available, err := d.Mentors.CountAvailableMentors(ctx, f)
	if err != nil {
		return nil, err
	}

	cards := make([]model.MentorCard, 0, len(rows))
	for _, r := range rows {
		cards = append(cards, model.NewMentorCard(r))
	}
	return &MentorPage{
		Mentors:        cards,
		Pagination:     model.NewPagination(p, total),
		TotalAvailable: available,
	}, nil
}

func (d *MentorDirectory) Get(ctx context.Context, profileID string) (*model.MentorCard, error) {
	p, err := d.Mentors.GetMentor(ctx, profileID)
	if err != nil {
		return nil, err
	}
	card := model.NewMentorCard(p)
	return &card, nil
}

func (d *MentorDirectory) Expertise(ctx context.Context) ([]model.ExpertiseCount, error) {
	return d.Mentors.ExpertiseCounts(ctx)
}

// ToggleVisibility sets showInMentorSection. Enabling is refused, with no
// write, unless the profile is a Mentor with at least one mentorship keyword.
func (d *MentorDirectory) ToggleVisibility(ctx context.Context, profileID string, show bool) (*model.Profile, error) {
	p, err := d.Profiles.GetActiveByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if show {
		if p.MembershipType != model.MembershipMentor {
			return nil, &model.IneligibleMentorError{Reason: "Only mentors can be shown in mentor section"}
		}
		if len(p.MentorshipFields) == 0 {
			return nil, &model.IneligibleMentorError{Reason: "Please add mentorship fields before showing in mentor section"}
		}
	}

	if err := d.Profiles.SetShowInMentorSection(ctx, profileID, show); err != nil {
		return nil, err
	}
	p.ShowInMentorSection = show

	if d.Cache != nil {
		if err := d.Cache.Delete(ctx, p.UserID); err != nil {
			observability.GetLogger(ctx).Warn("profile cache invalidation failed", zap.Error(err))
		}
	}
	return p, nil
}
