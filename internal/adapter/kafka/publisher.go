package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/hurricanecontrol/bulletin-notifier/internal/domain"
)

// Publisher produces notifications to per-location Kafka topics.
// It implements analyzer.Publisher.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer. The topic is chosen per message, so
// one writer serves every tracked location.
func NewPublisher(brokers []string, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Balancer:               &kafkago.LeastBytes{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Publisher{writer: w, logger: logger}
}

// Publish serializes a notification and writes it to the given topic.
func (p *Publisher) Publish(ctx context.Context, topic string, n domain.Notification) error {
	msg, err := serializeToMessage(topic, n)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a notification into a Kafka message keyed by
// location.
func serializeToMessage(topic string, n domain.Notification) (kafkago.Message, error) {
	data, err := json.Marshal(n)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize notification: %w", err)
	}
	return kafkago.Message{
		Topic: topic,
		Key:   []byte(n.Location),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "location", Value: []byte(n.Location)},
			{Key: "issued_at", Value: []byte(n.IssuedAt.Format(time.RFC3339))},
		},
	}, nil
}
