// Package services provides internal service implementations for the KPI backend.
package services

import (
	"context"
	"log"
	"time"

	"github.com/secdash/kpi-backend/dataset"
)

// RefreshedPublisher announces a completed dataset reload to downstream
// consumers. Satisfied by events/modules/dataset.RefreshProducer.
type RefreshedPublisher interface {
	PublishRefreshed(ctx context.Context, recordCount int, loadedAt time.Time) error
}

// RefreshServiceWrapper implements dataset.RefreshService
type RefreshServiceWrapper struct {
	Store *dataset.Store

	// Optional; when set, a dataset.refreshed event is published after
	// each successful reload so downstream consumers can invalidate.
	Producer RefreshedPublisher
}

// RefreshDataset reloads the vulnerability dataset by delegating to the
// shared store logic. This ensures that Kafka-driven reloads perform the
// same parsing, flag derivation, and keep-last-good handling as the REST
// API refresh endpoint.
func (w *RefreshServiceWrapper) RefreshDataset(ctx context.Context) (int, error) {
	log.Println("Worker: Processing dataset refresh")

	if err := w.Store.Refresh(ctx); err != nil {
		return 0, err
	}

	count := w.Store.Len()
	if w.Producer != nil {
		if err := w.Producer.PublishRefreshed(ctx, count, w.Store.LoadedAt()); err != nil {
			log.Printf("Worker: Failed to publish dataset.refreshed event: %v", err)
		}
	}
	return count, nil
}
