package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/SARVESHVARADKAR123/memberclub/internal/observability"
)

const sweepTimeout = time.Minute

// FeatureSweeper un-features whiteboard posts whose featuredUntil has passed.
type FeatureSweeper interface {
	SweepExpiredFeatures(ctx context.Context) (int64, error)
}

// Scheduler runs the periodic maintenance jobs.
type Scheduler struct {
	c *cron.Cron
}

// New registers the featured-expiry sweep on spec, a standard five field
// cron expression or a descriptor such as "@every 15m".
func New(spec string, s FeatureSweeper) (*Scheduler, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()

		if _, err := s.SweepExpiredFeatures(ctx); err != nil {
			observability.GetLogger(ctx).Error("featured sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, err
	}
	return &Scheduler{c: c}, nil
}

func (s *Scheduler) Start() { s.c.Start() }

// Stop stops scheduling and waits for a running job to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.c.Stop().Done():
	case <-ctx.Done():
	}
}
