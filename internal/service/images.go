package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/SARVESHVARADKAR123/memberclub/internal/imagestore"
	"github.com/SARVESHVARADKAR123/memberclub/internal/model"
	"github.com/SARVESHVARADKAR123/memberclub/internal/observability"
)

const defaultCleanupTimeout = 30 * time.Second

// ImageLifecycle runs the upload, commit, cleanup protocol shared by every
// record that owns one hosted image. A new upload is only ever deleted by
// Compensate, before its record commits; a replaced image is only ever deleted
// by Release, after the new state commits.
type ImageLifecycle struct {
	Store    imagestore.Store
	Progress ProgressTracker
	Now      func() time.Time

	CleanupTimeout time.Duration

	wg sync.WaitGroup
}

func (l *ImageLifecycle) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

func (l *ImageLifecycle) track(ctx context.Context, img *model.ImageUpload, status string, pct int, msg string) {
	if l.Progress == nil || img.UploadID == "" {
		return
	}
	if err := l.Progress.Track(ctx, img.Owner, img.UploadID, status, pct, msg); err != nil {
		observability.GetLogger(ctx).Debug("upload progress write failed",
			zap.String("upload_id", img.UploadID), zap.Error(err))
	}
}

// Upload validates, transforms and puts img into a time-bucketed folder under
// prefix. No side effect happens unless the image is accepted.
func (l *ImageLifecycle) Upload(
	ctx context.Context,
	img *model.ImageUpload,
	prefix string,
	c imagestore.Constraints,
	hint *imagestore.Transformation,
) (*model.StoredImage, error) {
	now := l.now()
	l.track(ctx, img, model.UploadProcessing, 10, "")

	if _, rej := l.Store.Validate(img.Data, c); rej != nil {
		l.track(ctx, img, model.UploadFailed, 0, rej.Reason)
		return nil, &model.ImageRejectedError{Reason: rej.Reason}
	}

	data, err := l.Store.Transform(img.Data)
	if err != nil {
		l.track(ctx, img, model.UploadFailed, 0, "Failed to process image")
		return nil, &model.UploadError{Reason: "failed to process image", Err: err}
	}

	l.track(ctx, img, model.UploadUploading, 50, "")

	up, err := l.Store.Put(ctx, data, imagestore.Folder(prefix, now), imagestore.PutOptions{
		Name:           imagestore.ObjectName(img.Filename, data, now),
		Transformation: hint,
	})
	if err != nil {
		l.track(ctx, img, model.UploadFailed, 0, "Failed to upload image to storage")
		return nil, &model.UploadError{Reason: "failed to upload image to storage", Err: err}
	}

	l.track(ctx, img, model.UploadCompleted, 100, "")

	return &model.StoredImage{
		URL:        up.URL,
		ExternalID: up.ExternalID,
		Metadata: model.ImageMetadata{
			Format:     up.Format,
			Width:      up.Width,
			Height:     up.Height,
			Size:       up.Bytes,
			UploadedAt: now,
		},
	}, nil
}

func (l *ImageLifecycle) cleanupContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := l.CleanupTimeout
	if timeout <= 0 {
		timeout = defaultCleanupTimeout
	}
	return context.WithTimeout(context.WithoutCancel(ctx), timeout)
}

func (l *ImageLifecycle) delete(ctx context.Context, externalID, reason string) {
	ctx, cancel := l.cleanupContext(ctx)
	defer cancel()

	if err := l.Store.Delete(ctx, externalID); err != nil {
		observability.ImageCleanupFailuresTotal.WithLabelValues(reason).Inc()
		observability.GetLogger(ctx).Warn("image cleanup failed",
			zap.String("external_id", externalID),
			zap.String("reason", reason),
			zap.Error(err),
		)
	}
}

// Compensate synchronously deletes an upload whose record never committed.
// It runs on a context detached from the caller so a cancelled request still
// cleans up.
func (l *ImageLifecycle) Compensate(ctx context.Context, externalID string) {
	if externalID == "" {
		return
	}
	l.delete(ctx, externalID, "compensate")
}

// Release deletes an image the committed record no longer references. It is
// best-effort and runs in the background.
func (l *ImageLifecycle) Release(ctx context.Context, externalID string) {
	if externalID == "" {
		return
	}
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		l.delete(ctx, externalID, "release")
	}()
}

// Wait blocks until background releases finish.
func (l *ImageLifecycle) Wait() { l.wg.Wait() }
