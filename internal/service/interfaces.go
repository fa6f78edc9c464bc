package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/SARVESHVARADKAR123/memberclub/internal/model"
)

// ProfileStore is the persistence surface of the profile orchestrator and
// admin operations. *repository.ProfileRepo implements it.
type ProfileStore interface {
	GetByUserID(ctx context.Context, userID string) (*model.Profile, error)
	GetActiveByID(ctx context.Context, id string) (*model.Profile, error)
	Insert(ctx context.Context, p *model.Profile) error
	ReplaceByUserID(ctx context.Context, p *model.Profile) error
	DeleteByUserID(ctx context.Context, userID string) (string, error)
	SetShowInMentorSection(ctx context.Context, id string, show bool) error
	SetVerified(ctx context.Context, id string, verified bool) error
	SoftDelete(ctx context.Context, id string) error
	List(ctx context.Context, f model.ProfileFilter, p model.Page) ([]*model.Profile, int, error)
}

// MentorStore is the directory read surface.
type MentorStore interface {
	ListMentors(ctx context.Context, f model.MentorFilter, p model.Page) ([]*model.Profile, int, error)
	CountAvailableMentors(ctx context.Context, f model.MentorFilter) (int, error)
	GetMentor(ctx context.Context, id string) (*model.Profile, error)
	ExpertiseCounts(ctx context.Context) ([]model.ExpertiseCount, error)
}

type BannerStore interface {
	Create(ctx context.Context, b *model.Banner) error
	Get(ctx context.Context, id string) (*model.Banner, error)
	Update(ctx context.Context, b *model.Banner) error
	Delete(ctx context.Context, id string) (string, error)
	ToggleActive(ctx context.Context, id string) (bool, error)
	Increment(ctx context.Context, id, counter string) error
	List(ctx context.Context, f model.BannerFilter, p model.Page) ([]*model.Banner, int, error)
}

type WhiteboardStore interface {
	Create(ctx context.Context, p *model.WhiteboardPost) error
	Get(ctx context.Context, id string) (*model.WhiteboardPost, error)
	View(ctx context.Context, id string) (*model.WhiteboardPost, error)
	Update(ctx context.Context, p *model.WhiteboardPost) error
	Moderate(ctx context.Context, p *model.WhiteboardPost) error
	Delete(ctx context.Context, id string) error
	ListByCategory(ctx context.Context, category string, statuses []string, p model.Page) ([]*model.WhiteboardPost, int, error)
	UnfeatureExpired(ctx context.Context, now time.Time) (int64, error)
}

type MentorRequestStore interface {
	InsertTx(ctx context.Context, tx *sql.Tx, m *model.MentorRequest) error
	HasPending(ctx context.Context, userID, mentorUserID string) (bool, error)
	Get(ctx context.Context, id string) (*model.MentorRequest, error)
	ListByUser(ctx context.Context, userID string) ([]*model.MentorRequest, error)
	ListForMentor(ctx context.Context, mentorUserID string) ([]*model.MentorRequest, error)
	Respond(ctx context.Context, id, status string, at time.Time) (*model.MentorRequest, error)
}

// ProfileCacher caches profile reads by user id. Get returns an error on miss.
type ProfileCacher interface {
	Get(ctx context.Context, userID string) (*model.Profile, error)
	Set(ctx context.Context, p *model.Profile) error
	Delete(ctx context.Context, userID string) error
}

// ProgressTracker records pollable upload state.
type ProgressTracker interface {
	Track(ctx context.Context, owner, uploadID, status string, percentage int, errMsg string) error
}

// EventOutbox records integration events for the outbox publisher.
type EventOutbox interface {
	Add(ctx context.Context, topic, key string, payload []byte) error
	InsertTx(ctx context.Context, tx *sql.Tx, topic, key string, payload []byte) error
}
