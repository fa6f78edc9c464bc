package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/SARVESHVARADKAR123/memberclub/internal/model"
)

type BannerRepo struct{ DB *sql.DB }

const bannerColumns = `id, title, description, image_url, image_public_id, image_metadata, links,
	email, phone_number, tags, priority, is_active, views, clicks, created_at, updated_at`

func scanBanner(row rowScanner) (*model.Banner, error) {
	b := &model.Banner{Image: &model.StoredImage{}}
	var (
		meta         []byte
		email, phone sql.NullString
	)
	err := row.Scan(&b.ID, &b.Title, &b.Description, &b.Image.URL, &b.Image.ExternalID, &meta,
		pq.Array(&b.Links), &email, &phone, pq.Array(&b.Tags), &b.Priority, &b.IsActive,
		&b.Views, &b.Clicks, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(meta, &b.Image.Metadata); err != nil {
		return nil, fmt.Errorf("decode image metadata: %w", err)
	}
	b.Email = email.String
	b.PhoneNumber = phone.String
	return b, nil
}

func bannerWriteError(op string, err error) error {
	if c := uniqueViolation(err); c != "" {
		return fmt.Errorf("%s: %w (%s)", op, model.ErrStorageConflict, c)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (r *BannerRepo) Create(ctx context.Context, b *model.Banner) error {
	if b.Image == nil {
		return fmt.Errorf("create banner: %w", model.ErrNoImage)
	}
	meta, err := json.Marshal(b.Image.Metadata)
	if err != nil {
		return err
	}

	id := uuid.NewString()
	err = r.DB.QueryRowContext(ctx, `
		INSERT INTO banners (id, title, description, image_url, image_public_id, image_metadata,
			links, email, phone_number, tags, priority, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING views, clicks, created_at, updated_at`,
		id, b.Title, b.Description, b.Image.URL, b.Image.ExternalID, meta,
		pq.Array(nonNil(b.Links)), nullString(b.Email), nullString(b.PhoneNumber), pq.Array(nonNil(b.Tags)),
		b.Priority, b.IsActive,
	).Scan(&b.Views, &b.Clicks, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return bannerWriteError("create banner", err)
	}
	b.ID = id
	return nil
}

func (r *BannerRepo) Get(ctx context.Context, id string) (*model.Banner, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, model.ErrBannerNotFound
	}
	b, err := scanBanner(r.DB.QueryRowContext(ctx, `SELECT `+bannerColumns+` FROM banners WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, model.ErrBannerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch banner: %w", err)
	}
	return b, nil
}

// Update replaces all editable columns including the image triple.
func (r *BannerRepo) Update(ctx context.Context, b *model.Banner) error {
	meta, err := json.Marshal(b.Image.Metadata)
	if err != nil {
		return err
	}
	err = r.DB.QueryRowContext(ctx, `
		UPDATE banners SET title=$2, description=$3, image_url=$4, image_public_id=$5, image_metadata=$6,
			links=$7, email=$8, phone_number=$9, tags=$10, priority=$11, is_active=$12, updated_at=NOW()
		WHERE id=$1
		RETURNING updated_at`,
		b.ID, b.Title, b.Description, b.Image.URL, b.Image.ExternalID, meta,
		pq.Array(nonNil(b.Links)), nullString(b.Email), nullString(b.PhoneNumber), pq.Array(nonNil(b.Tags)),
		b.Priority, b.IsActive,
	).Scan(&b.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.ErrBannerNotFound
	}
	if err != nil {
		return bannerWriteError("update banner", err)
	}
	return nil
}

// Delete removes the banner and returns the external id of its image.
func (r *BannerRepo) Delete(ctx context.Context, id string) (string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", model.ErrBannerNotFound
	}
	var imageID string
	err := r.DB.QueryRowContext(ctx, `DELETE FROM banners WHERE id = $1 RETURNING image_public_id`, id).Scan(&imageID)
	if err == sql.ErrNoRows {
		return "", model.ErrBannerNotFound
	}
	return imageID, err
}

// ToggleActive flips is_active and returns the new value.
func (r *BannerRepo) ToggleActive(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, model.ErrBannerNotFound
	}
	var active bool
	err := r.DB.QueryRowContext(ctx,
		`UPDATE banners SET is_active = NOT is_active, updated_at = NOW() WHERE id = $1 RETURNING is_active`, id).Scan(&active)
	if err == sql.ErrNoRows {
		return false, model.ErrBannerNotFound
	}
	return active, err
}

// Increment bumps the views or clicks counter.
func (r *BannerRepo) Increment(ctx context.Context, id, counter string) error {
	var col string
	switch counter {
	case "views":
		col = "views"
	case "clicks":
		col = "clicks"
	default:
		return fmt.Errorf("unknown banner counter %q", counter)
	}
	if _, err := uuid.Parse(id); err != nil {
		return model.ErrBannerNotFound
	}
	res, err := r.DB.ExecContext(ctx, `UPDATE banners SET `+col+` = `+col+` + 1 WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOne(res, model.ErrBannerNotFound)
}

// List orders by priority, highest first, then newest.
func (r *BannerRepo) List(ctx context.Context, f model.BannerFilter, p model.Page) ([]*model.Banner, int, error) {
	w := &where{}
	if f.ActiveOnly {
		w.add("is_active")
	}
	if f.Search != "" {
		s := likePattern(f.Search)
		w.add("(title ILIKE ? OR description ILIKE ? OR ? = ANY(tags))", s, s, f.Search)
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM banners`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count banners: %w", err)
	}

	limit, args := w.page(p)
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+bannerColumns+` FROM banners`+w.sql()+` ORDER BY priority DESC, created_at DESC`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list banners: %w", err)
	}
	defer rows.Close()

	out := []*model.Banner{}
	for rows.Next() {
		b, err := scanBanner(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	return out, total, rows.Err()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
