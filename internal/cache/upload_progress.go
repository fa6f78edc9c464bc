package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SARVESHVARADKAR123/memberclub/internal/model"
)

// ProgressTTL bounds how long a finished or abandoned upload stays pollable.
const ProgressTTL = time.Hour

// UploadProgress stores pollable upload state with TTL eviction.
type UploadProgress struct{ R *redis.Client }

// progressKey scopes upload ids per user so clients cannot read or overwrite
// each other's records.
func progressKey(owner, uploadID string) string {
	return "upload:progress:" + owner + ":" + uploadID
}

// Set writes the record and refreshes its TTL.
func (u *UploadProgress) Set(ctx context.Context, owner string, p model.UploadProgress) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return u.R.Set(ctx, progressKey(owner, p.UploadID), b, ProgressTTL).Err()
}

func (u *UploadProgress) Get(ctx context.Context, owner, uploadID string) (*model.UploadProgress, error) {
	if owner == "" || uploadID == "" {
		return nil, model.ErrUploadNotFound
	}
	b, err := u.R.Get(ctx, progressKey(owner, uploadID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, model.ErrUploadNotFound
	}
	if err != nil {
		return nil, err
	}
	var p model.UploadProgress
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Track records a stage of an upload. Uploads without an id or owner are
// not tracked.
func (u *UploadProgress) Track(ctx context.Context, owner, uploadID, status string, percentage int, errMsg string) error {
	if owner == "" || uploadID == "" {
		return nil
	}
	return u.Set(ctx, owner, model.UploadProgress{
		UploadID:       uploadID,
		Status:         status,
		Percentage:     percentage,
		UploadedChunks: percentage / 100,
		TotalChunks:    1,
		Error:          errMsg,
	})
}
