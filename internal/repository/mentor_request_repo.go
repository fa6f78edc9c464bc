package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SARVESHVARADKAR123/memberclub/internal/model"
)

type MentorRequestRepo struct{ DB *sql.DB }

const requestColumns = `id, user_id, mentor_user_id, message, status, responded_at, created_at, updated_at`

func scanRequest(row rowScanner) (*model.MentorRequest, error) {
	m := &model.MentorRequest{}
	var (
		msg       sql.NullString
		responded sql.NullTime
	)
	if err := row.Scan(&m.ID, &m.UserID, &m.MentorUserID, &msg, &m.Status, &responded, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	m.Message = msg.String
	if responded.Valid {
		t := responded.Time
		m.RespondedAt = &t
	}
	return m, nil
}

// InsertTx stores a pending request inside tx. A second pending request for
// the same pair hits the partial unique index and maps to ErrDuplicateRequest.
func (r *MentorRequestRepo) InsertTx(ctx context.Context, tx *sql.Tx, m *model.MentorRequest) error {
	id := uuid.NewString()
	err := tx.QueryRowContext(ctx, `
		INSERT INTO mentor_requests (id, user_id, mentor_user_id, message, status)
		VALUES ($1,$2,$3,$4,'pending')
		RETURNING status, created_at, updated_at`,
		id, m.UserID, m.MentorUserID, nullString(m.Message),
	).Scan(&m.Status, &m.CreatedAt, &m.UpdatedAt)
	if uniqueViolation(err) == "mentor_requests_one_pending_idx" {
		return model.ErrDuplicateRequest
	}
	if err != nil {
		return fmt.Errorf("insert mentor request: %w", err)
	}
	m.ID = id
	return nil
}

func (r *MentorRequestRepo) HasPending(ctx context.Context, userID, mentorUserID string) (bool, error) {
	var ok bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT TRUE FROM mentor_requests WHERE user_id = $1 AND mentor_user_id = $2 AND status = 'pending'`,
		userID, mentorUserID).Scan(&ok)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return ok, err
}

func (r *MentorRequestRepo) Get(ctx context.Context, id string) (*model.MentorRequest, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, model.ErrRequestNotFound
	}
	m, err := scanRequest(r.DB.QueryRowContext(ctx, `SELECT `+requestColumns+` FROM mentor_requests WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, model.ErrRequestNotFound
	}
	return m, err
}

// ListByUser returns requests sent by userID, newest first.
func (r *MentorRequestRepo) ListByUser(ctx context.Context, userID string) ([]*model.MentorRequest, error) {
	return r.list(ctx, `SELECT `+requestColumns+` FROM mentor_requests WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

// ListForMentor returns requests addressed to mentorUserID, newest first.
func (r *MentorRequestRepo) ListForMentor(ctx context.Context, mentorUserID string) ([]*model.MentorRequest, error) {
	return r.list(ctx, `SELECT `+requestColumns+` FROM mentor_requests WHERE mentor_user_id = $1 ORDER BY created_at DESC`, mentorUserID)
}

func (r *MentorRequestRepo) list(ctx context.Context, q string, arg string) ([]*model.MentorRequest, error) {
	rows, err := r.DB.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.MentorRequest{}
	for rows.Next() {
		m, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Respond moves a pending request to its final status. Only pending rows match.
func (r *MentorRequestRepo) Respond(ctx context.Context, id, status string, at time.Time) (*model.MentorRequest, error) {
	m, err := scanRequest(r.DB.QueryRowContext(ctx, `
		UPDATE mentor_requests SET status = $2, responded_at = $3, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING `+requestColumns, id, status, at))
	if err == sql.ErrNoRows {
		return nil, model.ErrRequestAlreadyFinal
	}
	return m, err
}
