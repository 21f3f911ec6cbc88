// Package dataset handles Kafka event processing for dataset refresh events.
package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
)

// RefreshService defines the interface for dataset refresh operations.
type RefreshService interface {
	RefreshDataset(ctx context.Context) (int, error)
}

// HandleRefreshRequestedWithService processes dataset refresh events from Kafka.
func HandleRefreshRequestedWithService(ctx context.Context, msg []byte, service RefreshService) error {
	var event RefreshRequestedEvent
	if err := json.Unmarshal(msg, &event); err != nil {
		return fmt.Errorf("failed to unmarshal RefreshRequestedEvent: %w", err)
	}

	if event.EventType != "dataset.refresh.requested" {
		return fmt.Errorf("invalid event: unexpected event_type %q", event.EventType)
	}

	log.Printf("Processing dataset refresh request %s (source=%s)", event.EventID, event.Source)

	count, err := service.RefreshDataset(ctx)
	if err != nil {
		return fmt.Errorf("internal service error: %w", err)
	}

	log.Printf("Successfully refreshed dataset, %d records loaded", count)
	return nil
}
