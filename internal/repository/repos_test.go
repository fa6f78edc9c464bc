package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SARVESHVARADKAR123/memberclub/internal/model"
)

const bannerID = "0b6f1f3e-8a55-4d8e-9d57-3c6a8f1f2a10"

func TestBannerIncrement(t *testing.T) {
	t.Run("unknown counter", func(t *testing.T) {
		db, mock := newMock(t)
		err := (&BannerRepo{DB: db}).Increment(context.Background(), bannerID, "likes")
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("clicks", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectExec(`UPDATE banners SET clicks = clicks \+ 1 WHERE id = \$1`).
			WithArgs(bannerID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, (&BannerRepo{DB: db}).Increment(context.Background(), bannerID, "clicks"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing banner", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectExec(`UPDATE banners SET views`).WillReturnResult(sqlmock.NewResult(0, 0))

		err := (&BannerRepo{DB: db}).Increment(context.Background(), bannerID, "views")
		assert.ErrorIs(t, err, model.ErrBannerNotFound)
	})
}

func TestBannerToggleActive(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`UPDATE banners SET is_active = NOT is_active`).
		WithArgs(bannerID).
		WillReturnRows(sqlmock.NewRows([]string{"is_active"}).AddRow(false))

	active, err := (&BannerRepo{DB: db}).ToggleActive(context.Background(), bannerID)
	require.NoError(t, err)
	assert.False(t, active)
}

func TestBannerCreateRequiresImage(t *testing.T) {
	db, mock := newMock(t)
	err := (&BannerRepo{DB: db}).Create(context.Background(), &model.Banner{Title: "Summit"})
	assert.ErrorIs(t, err, model.ErrNoImage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnfeatureExpired(t *testing.T) {
	db, mock := newMock(t)
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec(`UPDATE whiteboard_posts SET is_featured = FALSE`).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := (&WhiteboardRepo{DB: db}).UnfeatureExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestMentorRequestInsertDuplicate(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO mentor_requests`).
		WithArgs(sqlmock.AnyArg(), "u-1", "u-2", sqlmock.AnyArg()).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "mentor_requests_one_pending_idx"})

	tx, err := db.Begin()
	require.NoError(t, err)

	err = (&MentorRequestRepo{DB: db}).InsertTx(context.Background(), tx,
		&model.MentorRequest{UserID: "u-1", MentorUserID: "u-2"})
	assert.ErrorIs(t, err, model.ErrDuplicateRequest)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMentorRequestRespondAlreadyFinal(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`UPDATE mentor_requests SET status = \$2`).
		WillReturnRows(sqlmock.NewRows(columns(requestColumns)))

	_, err := (&MentorRequestRepo{DB: db}).Respond(context.Background(), "r-1", model.RequestAccepted, time.Now())
	assert.ErrorIs(t, err, model.ErrRequestAlreadyFinal)
}
