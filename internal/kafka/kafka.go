package kafka

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/SARVESHVARADKAR123/memberclub/internal/model"
	"github.com/SARVESHVARADKAR123/memberclub/internal/observability"
)

// --------------- Producer ---------------

// Producer wraps a kafka.Writer that routes by the topic set on each message.
type Producer struct {
	w *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	return &Producer{
		w: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		},
	}
}

// Publish sends a single message. Messages with the same key keep their order.
func (p *Producer) Publish(ctx context.Context, topic string, key, value []byte) error {
	return p.w.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   key,
		Value: value,
	})
}

func (p *Producer) Close() error { return p.w.Close() }

// --------------- Consumer ---------------

// MentorRequestNotifier delivers the mentor request email.
type MentorRequestNotifier interface {
	NotifyMentorRequest(ctx context.Context, e model.MentorRequestCreated) error
}

// StartMentorRequestConsumer reads club.mentor_request.created and hands each
// event to the notifier. Offsets are committed after delivery is attempted,
// so a failed email is logged and skipped rather than blocking the partition.
func StartMentorRequestConsumer(ctx context.Context, brokers []string, groupID string, n MentorRequestNotifier) {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   model.TopicMentorRequestCreated,
		GroupID: groupID,
	})
	defer r.Close()

	log := observability.GetLogger(ctx).With(zap.String("topic", model.TopicMentorRequestCreated))

	for {
		m, err := r.FetchMessage(ctx)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				log.Error("mentor request consumer stopped", zap.Error(err))
			}
			return
		}

		handleMentorRequest(ctx, m.Value, n)

		if err := r.CommitMessages(ctx, m); err != nil {
			log.Warn("commit offset failed", zap.Error(err))
		}
	}
}

func handleMentorRequest(ctx context.Context, value []byte, n MentorRequestNotifier) {
	log := observability.GetLogger(ctx)

	var e model.MentorRequestCreated
	if err := json.Unmarshal(value, &e); err != nil {
		log.Warn("bad mentor_request.created payload", zap.Error(err))
		return
	}

	if err := n.NotifyMentorRequest(ctx, e); err != nil {
		log.Warn("mentor request email failed",
			zap.String("request_id", e.RequestID),
			zap.Error(err),
		)
	}
}
