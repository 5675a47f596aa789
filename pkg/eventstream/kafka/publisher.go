// Package kafka provides an eventstream publisher backed by a Kafka topic,
// for installations that mirror memory changes onto a bus.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/hearthhq/hearth/pkg/eventstream"
)

// Publisher implements eventstream.Publisher over a Kafka topic. Events are
// keyed by question id so per-question ordering survives partitioning.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a Kafka publisher writing to topic on brokers.
func NewPublisher(brokers []string, topic string) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one kafka broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka topic is required")
	}

	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}, nil
}

// PublishSnapshotUpdated serializes the event as JSON and writes it to the topic.
func (p *Publisher) PublishSnapshotUpdated(ctx context.Context, event *eventstream.SnapshotUpdatedEvent) error {
	if event == nil {
		return eventstream.ErrNilEvent
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling snapshot event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.QuestionID),
		Value: data,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("writing snapshot event: %w", err)
	}

	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
