package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/SARVESHVARADKAR123/memberclub/internal/imagestore"
	"github.com/SARVESHVARADKAR123/memberclub/internal/model"
	"github.com/SARVESHVARADKAR123/memberclub/internal/observability"
	"github.com/SARVESHVARADKAR123/memberclub/internal/validation"
)

const profileFolder = "profiles"

// ProfileService is the profile upsert orchestrator.
type ProfileService struct {
	Repo   ProfileStore
	Images *ImageLifecycle
	Cache  ProfileCacher // optional
	Outbox EventOutbox   // optional
	Now    func() time.Time
}

type UpsertInput struct {
	UserID      string
	Fields      model.ProfileFields
	Image       *model.ImageUpload
	RemoveImage bool
}

type UpsertResult struct {
	Profile *model.Profile
	Created bool
}

func (s *ProfileService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Get returns the caller's profile, served from cache when possible.
func (s *ProfileService) Get(ctx context.Context, userID string) (*model.Profile, error) {
	if s.Cache != nil {
		if p, err := s.Cache.Get(ctx, userID); err == nil {
			return p, nil
		}
	}

	p, err := s.Repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, p); err != nil {
			observability.GetLogger(ctx).Debug("profile cache set failed", zap.Error(err))
		}
	}
	return p, nil
}

// Upsert creates or fully replaces the caller's profile.
//
//  1. normalize and validate the fields; reject before any side effect
//  2. load the existing record, if any
//  3. resolve the image: upload a new one (held pending), clear it, or keep it
//  4. build the full replacement record
//  5. insert or replace by user id
//  6. after commit, release the image the record no longer references
//  7. if commit fails, delete the pending upload before returning
func (s *ProfileService) Upsert(ctx context.Context, in UpsertInput) (*UpsertResult, error) {
	fields := validation.Normalize(in.Fields)
	errs := validation.Validate(&fields, s.now())
	if in.Image != nil && in.RemoveImage {
		errs = append(errs, model.FieldError{Field: "image", Message: "Cannot upload and remove an image in the same request"})
	}
	if len(errs) > 0 {
		return nil, &model.ValidationError{Fields: errs}
	}

	existing, err := s.Repo.GetByUserID(ctx, in.UserID)
	if err != nil && !errors.Is(err, model.ErrProfileNotFound) {
		return nil, &model.PersistenceError{Reason: "failed to load profile", Err: err}
	}

	mode := model.ImageKeep
	switch {
	case in.Image != nil:
		mode = model.ImageReplace
	case in.RemoveImage:
		mode = model.ImageRemove
	}

	var (
		image   *model.StoredImage
		pending *model.StoredImage
		oldID   string
	)
	switch mode {
	case model.ImageReplace:
		pending, err = s.Images.Upload(ctx, in.Image, profileFolder, imagestore.ProfileConstraints, &imagestore.ProfileCrop)
		if err != nil {
			return nil, err
		}
		image = pending
		if existing != nil {
			oldID = existing.ImageExternalID()
		}
	case model.ImageRemove:
		if existing != nil {
			oldID = existing.ImageExternalID()
		}
	default:
		if existing != nil {
			image = existing.Image
		}
	}

	record := &model.Profile{UserID: in.UserID, ProfileFields: fields, Image: image}

	err = s.commit(ctx, existing == nil, record)
	if existing == nil && errors.Is(err, model.ErrProfileExists) {
		// A concurrent first upsert for this user committed first. Its row
		// becomes the base and this write replaces it.
		existing, oldID, err = s.rebase(ctx, in.UserID, mode, record)
		if err == nil {
			err = s.commit(ctx, false, record)
		}
	}
	if err != nil {
		if pending != nil {
			s.Images.Compensate(ctx, pending.ExternalID)
		}
		return nil, &model.PersistenceError{Reason: "failed to save profile", Partial: pending != nil, Err: err}
	}

	s.afterWrite(ctx, record)
	if oldID != "" && oldID != record.ImageExternalID() {
		s.Images.Release(ctx, oldID)
	}

	observability.GetLogger(ctx).Info("profile upserted",
		zap.String("user_id", in.UserID),
		zap.Bool("created", existing == nil),
		zap.Stringer("image_mode", mode),
	)
	return &UpsertResult{Profile: record, Created: existing == nil}, nil
}

// rebase reloads the row that won a first-write race and carries its image
// into record according to mode. It returns the reloaded row and the image id
// that record no longer references.
func (s *ProfileService) rebase(ctx context.Context, userID string, mode model.ImageMode, record *model.Profile) (*model.Profile, string, error) {
	winner, err := s.Repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	observability.GetLogger(ctx).Info("profile created concurrently, replacing",
		zap.String("user_id", userID))

	if mode == model.ImageKeep {
		record.Image = winner.Image
		return winner, "", nil
	}
	return winner, winner.ImageExternalID(), nil
}

// commit refuses to write once the request is gone, so a cancelled caller
// takes the same compensation path as a failed write.
func (s *ProfileService) commit(ctx context.Context, create bool, p *model.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if create {
		return s.Repo.Insert(ctx, p)
	}
	return s.Repo.ReplaceByUserID(ctx, p)
}

// ReplaceImage swaps only the image of an existing profile.
func (s *ProfileService) ReplaceImage(ctx context.Context, userID string, img *model.ImageUpload) (*model.Profile, error) {
	existing, err := s.Repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	pending, err := s.Images.Upload(ctx, img, profileFolder, imagestore.ProfileConstraints, &imagestore.ProfileCrop)
	if err != nil {
		return nil, err
	}

	record := *existing
	record.Image = pending
	if err := s.commit(ctx, false, &record); err != nil {
		s.Images.Compensate(ctx, pending.ExternalID)
		return nil, &model.PersistenceError{Reason: "failed to save profile image", Partial: true, Err: err}
	}

	s.afterWrite(ctx, &record)
	s.Images.Release(ctx, existing.ImageExternalID())
	return &record, nil
}

// RemoveImage clears the image triple, then releases the old asset.
func (s *ProfileService) RemoveImage(ctx context.Context, userID string) (*model.Profile, error) {
	existing, err := s.Repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing.Image == nil {
		return nil, model.ErrNoImage
	}

	record := *existing
	record.Image = nil
	if err := s.commit(ctx, false, &record); err != nil {
		return nil, &model.PersistenceError{Reason: "failed to remove profile image", Err: err}
	}

	s.afterWrite(ctx, &record)
	s.Images.Release(ctx, existing.ImageExternalID())
	return &record, nil
}

// Delete hard-deletes the caller's profile and releases its image.
func (s *ProfileService) Delete(ctx context.Context, userID string) error {
	imageID, err := s.Repo.DeleteByUserID(ctx, userID)
	if err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	s.Images.Release(ctx, imageID)
	return nil
}

func (s *ProfileService) invalidate(ctx context.Context, userID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Delete(ctx, userID); err != nil {
		observability.GetLogger(ctx).Warn("profile cache invalidation failed",
			zap.String("user_id", userID), zap.Error(err))
	}
}

type profileUpdated struct {
	UserID            string `json:"user_id"`
	ProfileID         string `json:"profile_id"`
	MembershipType    string `json:"membership_type"`
	InMentorDirectory bool   `json:"in_mentor_directory"`
}

func (s *ProfileService) afterWrite(ctx context.Context, p *model.Profile) {
	s.invalidate(ctx, p.UserID)

	if s.Outbox == nil {
		return
	}
	b, err := json.Marshal(profileUpdated{
		UserID:            p.UserID,
		ProfileID:         p.ID,
		MembershipType:    p.MembershipType,
		InMentorDirectory: p.InMentorDirectory(),
	})
	if err != nil {
		return
	}
	if err := s.Outbox.Add(ctx, model.TopicProfileUpdated, p.UserID, b); err != nil {
		observability.GetLogger(ctx).Warn("profile.updated event not recorded",
			zap.String("user_id", p.UserID), zap.Error(err))
	}
}
