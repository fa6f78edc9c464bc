package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/SARVESHVARADKAR123/memberclub/internal/model"
	"github.com/SARVESHVARADKAR123/memberclub/internal/observability"
	"github.com/SARVESHVARADKAR123/memberclub/internal/tx"
)

const maxRequestMessage = 1000

type MentorRequestService struct {
	Requests MentorRequestStore
	Mentors  MentorStore
	Profiles ProfileStore
	Outbox   EventOutbox
	Tx       tx.Transactor
	Now      func() time.Time
}

func (s *MentorRequestService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Create files a request from userID to a visible mentor. The request and its
// notification event are written in one transaction; the email itself is sent
// by the consumer, so delivery problems never fail the request.
func (s *MentorRequestService) Create(ctx context.Context, userID, mentorProfileID, message string) (*model.MentorRequest, error) {
	message = strings.TrimSpace(message)
	if len(message) > maxRequestMessage {
		return nil, &model.ValidationError{Fields: []model.FieldError{{Field: "message", Message: "cannot exceed 1000 characters"}}}
	}

	mentor, err := s.Mentors.GetMentor(ctx, mentorProfileID)
	if err != nil {
		return nil, err
	}
	if mentor.UserID == userID {
		return nil, &model.ValidationError{Fields: []model.FieldError{{Field: "mentorId", Message: "You cannot send a request to yourself"}}}
	}

	pending, err := s.Requests.HasPending(ctx, userID, mentor.UserID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, model.ErrDuplicateRequest
	}

	event := model.MentorRequestCreated{
		MentorName:  mentor.Name,
		MentorEmail: mentor.Email,
		Message:     message,
	}
	sender, err := s.Profiles.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		event.FromName = sender.Name
		event.FromEmail = sender.Email
	case !errors.Is(err, model.ErrProfileNotFound):
		return nil, err
	}

	req := &model.MentorRequest{UserID: userID, MentorUserID: mentor.UserID, Message: message}
	err = s.Tx.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.Requests.InsertTx(ctx, tx, req); err != nil {
			return err
		}
		event.RequestID = req.ID
		b, err := json.Marshal(event)
		if err != nil {
			return err
		}
		return s.Outbox.InsertTx(ctx, tx, model.TopicMentorRequestCreated, req.ID, b)
	})
	if err != nil {
		return nil, err
	}

	observability.GetLogger(ctx).Info("mentor request created",
		zap.String("request_id", req.ID),
		zap.String("user_id", userID),
		zap.String("mentor_user_id", mentor.UserID),
	)
	return req, nil
}

func (s *MentorRequestService) Sent(ctx context.Context, userID string) ([]*model.MentorRequest, error) {
	return s.Requests.ListByUser(ctx, userID)
}

func (s *MentorRequestService) Received(ctx context.Context, mentorUserID string) ([]*model.MentorRequest, error) {
	return s.Requests.ListForMentor(ctx, mentorUserID)
}

// Respond lets the addressed mentor accept or reject a pending request.
func (s *MentorRequestService) Respond(ctx context.Context, mentorUserID, id string, accept bool) (*model.MentorRequest, error) {
	req, err := s.Requests.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.MentorUserID != mentorUserID {
		return nil, model.ErrForbidden
	}
	if req.Status != model.RequestPending {
		return nil, model.ErrRequestAlreadyFinal
	}

	status := model.RequestRejected
	if accept {
		status = model.RequestAccepted
	}
	return s.Requests.Respond(ctx, id, status, s.now())
}
