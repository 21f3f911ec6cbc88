// Package dataset handles Kafka event production for dataset refresh events.
package dataset

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// RefreshProducer handles sending dataset refresh events to Kafka
type RefreshProducer struct {
	Writer *kafka.Writer
}

// NewRefreshProducer initializes a new Kafka writer for dataset events
func NewRefreshProducer(brokers []string, topic string) *RefreshProducer {
	return &RefreshProducer{
		Writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// PublishRefreshed sends a dataset.refreshed event to the Kafka topic
func (p *RefreshProducer) PublishRefreshed(ctx context.Context, recordCount int, loadedAt time.Time) error {

	// Construct the Event Contract
	event := RefreshedEvent{
		EventType:     "dataset.refreshed",
		EventID:       uuid.New().String(),
		EventTime:     time.Now().UTC(),
		SchemaVersion: "v1",
		RecordCount:   recordCount,
		LoadedAt:      loadedAt,
	}

	// Marshal to JSON
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	// Write to Kafka
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.EventType),
		Value: payload,
	})
}

// Close cleans up the Kafka writer
func (p *RefreshProducer) Close() error {
	return p.Writer.Close()
}
