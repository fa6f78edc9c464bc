package outbox

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/SARVESHVARADKAR123/memberclub/internal/observability"
)

// EventPublisher is satisfied by kafka.Producer.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

type store interface {
	Fetch(ctx context.Context, limit int) ([]Row, error)
	MarkPublished(ctx context.Context, id string) error
}

// Publisher polls the outbox table and publishes unpublished events.
type Publisher struct {
	repo     store
	producer EventPublisher
	interval time.Duration
	batch    int
}

func NewPublisher(repo *Repository, producer EventPublisher) *Publisher {
	return &Publisher{repo: repo, producer: producer, interval: 2 * time.Second, batch: 50}
}

// Start blocks until ctx is cancelled.
func (p *Publisher) Start(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.publishBatch(ctx)
		}
	}
}

func (p *Publisher) publishBatch(ctx context.Context) {
	log := observability.GetLogger(ctx)

	rows, err := p.repo.Fetch(ctx, p.batch)
	if err != nil {
		log.Error("outbox query failed", zap.Error(err))
		return
	}

	for _, row := range rows {
		if err := p.producer.Publish(ctx, row.Topic, []byte(row.Key), row.Payload); err != nil {
			log.Warn("outbox publish failed", zap.String("topic", row.Topic), zap.String("outbox_id", row.ID), zap.Error(err))
			continue
		}

		if err := p.repo.MarkPublished(ctx, row.ID); err != nil {
			log.Warn("outbox mark published failed", zap.String("outbox_id", row.ID), zap.Error(err))
		}
	}
}
