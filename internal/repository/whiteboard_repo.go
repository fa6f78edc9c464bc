package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/SARVESHVARADKAR123/memberclub/internal/model"
)

type WhiteboardRepo struct{ DB *sql.DB }

const postColumns = `id, category, title, description, website_url, created_by, image, status,
	is_featured, featured_until, admin_notes, views, last_modified_by, created_at, updated_at`

func scanPost(row rowScanner) (*model.WhiteboardPost, error) {
	p := &model.WhiteboardPost{}
	var (
		website, notes, modifiedBy sql.NullString
		image                      []byte
		featuredUntil              sql.NullTime
	)
	err := row.Scan(&p.ID, &p.Category, &p.Title, &p.Description, &website, &p.CreatedBy, &image, &p.Status,
		&p.IsFeatured, &featuredUntil, &notes, &p.Views, &modifiedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(image) > 0 {
		p.Image = &model.StoredImage{}
		if err := json.Unmarshal(image, p.Image); err != nil {
			return nil, fmt.Errorf("decode post image: %w", err)
		}
	}
	if featuredUntil.Valid {
		t := featuredUntil.Time
		p.FeaturedUntil = &t
	}
	p.WebsiteURL = website.String
	p.AdminNotes = notes.String
	p.LastModifiedBy = modifiedBy.String
	return p, nil
}

func imageJSON(img *model.StoredImage) ([]byte, error) {
	if img == nil {
		return nil, nil
	}
	return json.Marshal(img)
}

func (r *WhiteboardRepo) Create(ctx context.Context, p *model.WhiteboardPost) error {
	img, err := imageJSON(p.Image)
	if err != nil {
		return err
	}
	id := uuid.NewString()
	err = r.DB.QueryRowContext(ctx, `
		INSERT INTO whiteboard_posts (id, category, title, description, website_url, created_by, image, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at, updated_at`,
		id, p.Category, p.Title, p.Description, nullString(p.WebsiteURL), p.CreatedBy, img, p.Status,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	p.ID = id
	return nil
}

// View returns the post and counts the read.
func (r *WhiteboardRepo) View(ctx context.Context, id string) (*model.WhiteboardPost, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, model.ErrPostNotFound
	}
	p, err := scanPost(r.DB.QueryRowContext(ctx,
		`UPDATE whiteboard_posts SET views = views + 1 WHERE id = $1 RETURNING `+postColumns, id))
	if err == sql.ErrNoRows {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}
	return p, nil
}

func (r *WhiteboardRepo) Get(ctx context.Context, id string) (*model.WhiteboardPost, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, model.ErrPostNotFound
	}
	p, err := scanPost(r.DB.QueryRowContext(ctx, `SELECT `+postColumns+` FROM whiteboard_posts WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}
	return p, nil
}

// Update writes the owner-editable columns and the image in one statement.
func (r *WhiteboardRepo) Update(ctx context.Context, p *model.WhiteboardPost) error {
	img, err := imageJSON(p.Image)
	if err != nil {
		return err
	}
	err = r.DB.QueryRowContext(ctx, `
		UPDATE whiteboard_posts SET category=$2, title=$3, description=$4, website_url=$5, image=$6,
			last_modified_by=$7, updated_at=NOW()
		WHERE id=$1
		RETURNING updated_at`,
		p.ID, p.Category, p.Title, p.Description, nullString(p.WebsiteURL), img, nullString(p.LastModifiedBy),
	).Scan(&p.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.ErrPostNotFound
	}
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

// Moderate writes the admin-controlled columns.
func (r *WhiteboardRepo) Moderate(ctx context.Context, p *model.WhiteboardPost) error {
	var until sql.NullTime
	if p.FeaturedUntil != nil {
		until = sql.NullTime{Time: *p.FeaturedUntil, Valid: true}
	}
	err := r.DB.QueryRowContext(ctx, `
		UPDATE whiteboard_posts SET status=$2, is_featured=$3, featured_until=$4, admin_notes=$5,
			last_modified_by=$6, updated_at=NOW()
		WHERE id=$1
		RETURNING updated_at`,
		p.ID, p.Status, p.IsFeatured, until, nullString(p.AdminNotes), nullString(p.LastModifiedBy),
	).Scan(&p.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.ErrPostNotFound
	}
	if err != nil {
		return fmt.Errorf("moderate post: %w", err)
	}
	return nil
}

func (r *WhiteboardRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM whiteboard_posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOne(res, model.ErrPostNotFound)
}

// ListByCategory pages one category, featured posts first, then newest.
func (r *WhiteboardRepo) ListByCategory(ctx context.Context, category string, statuses []string, p model.Page) ([]*model.WhiteboardPost, int, error) {
	w := &where{}
	w.add("category = ?", category)
	if len(statuses) > 0 {
		w.add("status = ANY(?)", pq.Array(statuses))
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM whiteboard_posts`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	limit, args := w.page(p)
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+postColumns+` FROM whiteboard_posts`+w.sql()+` ORDER BY is_featured DESC, created_at DESC`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	out := []*model.WhiteboardPost{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, post)
	}
	return out, total, rows.Err()
}

// UnfeatureExpired clears the featured flag on posts whose window has passed.
func (r *WhiteboardRepo) UnfeatureExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE whiteboard_posts SET is_featured = FALSE, featured_until = NULL, updated_at = NOW()
		WHERE is_featured AND featured_until IS NOT NULL AND featured_until < $1`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
