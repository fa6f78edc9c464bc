package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/SARVESHVARADKAR123/memberclub/internal/model"
	"github.com/SARVESHVARADKAR123/memberclub/internal/observability"
)

// eventtail prints integration events from one club topic. It reads without a
// consumer group so it never steals offsets from the notification consumer.
func main() {
	brokers := flag.String("brokers", "localhost:9092", "comma separated kafka brokers")
	topic := flag.String("topic", model.TopicMentorRequestCreated, "topic to tail")
	flag.Parse()

	observability.InitLogger("memberclub-eventtail", "info")
	log := observability.Log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     strings.Split(*brokers, ","),
		Topic:       *topic,
		StartOffset: kafka.LastOffset,
	})
	defer reader.Close()

	log.Info("tailing topic", zap.String("topic", *topic))
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Fatal("read failed", zap.Error(err))
		}
		log.Info("event",
			zap.String("key", string(msg.Key)),
			zap.Int64("offset", msg.Offset),
			zap.ByteString("payload", msg.Value),
		)
	}
}
