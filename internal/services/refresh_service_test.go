package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/secdash/kpi-backend/dataset"
	"github.com/secdash/kpi-backend/model"
)

type stubSource struct {
	records []model.VulnerabilityRecord
	err     error
}

func (s *stubSource) Load(_ context.Context) ([]model.VulnerabilityRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

type fakePublisher struct {
	calls int
	count int
	err   error
}

func (f *fakePublisher) PublishRefreshed(_ context.Context, recordCount int, _ time.Time) error {
	f.calls++
	f.count = recordCount
	return f.err
}

func serviceReference() time.Time {
	return time.Date(2025, time.June, 17, 0, 0, 0, 0, time.UTC)
}

func sampleRecords(n int) []model.VulnerabilityRecord {
	records := make([]model.VulnerabilityRecord, n)
	for i := range records {
		records[i] = model.VulnerabilityRecord{
			OwnerID:     "AO1",
			OwnerName:   "Dana",
			DeptName:    "Security",
			Application: "billing",
			Severity:    model.SeverityHigh,
			Status:      model.StatusOpen,
			FirstDet:    time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
		}
	}
	return records
}

func TestRefreshDatasetPublishesRefreshedEvent(t *testing.T) {
	store := dataset.NewStore(&stubSource{records: sampleRecords(4)}, time.Hour, serviceReference(), zap.NewNop())
	pub := &fakePublisher{}
	w := &RefreshServiceWrapper{Store: store, Producer: pub}

	count, err := w.RefreshDataset(context.Background())
	if err != nil {
		t.Fatalf("RefreshDataset: %v", err)
	}
	if count != 4 {
		t.Fatalf("expected count 4, got %d", count)
	}
	if pub.calls != 1 {
		t.Fatalf("expected 1 publish, got %d", pub.calls)
	}
	if pub.count != 4 {
		t.Fatalf("expected published count 4, got %d", pub.count)
	}
}

func TestRefreshDatasetSkipsPublishOnFailedReload(t *testing.T) {
	loadErr := errors.New("source down")
	store := dataset.NewStore(&stubSource{err: loadErr}, time.Hour, serviceReference(), zap.NewNop())
	pub := &fakePublisher{}
	w := &RefreshServiceWrapper{Store: store, Producer: pub}

	if _, err := w.RefreshDataset(context.Background()); !errors.Is(err, loadErr) {
		t.Fatalf("expected load error, got %v", err)
	}
	if pub.calls != 0 {
		t.Fatalf("expected no publish after failed reload, got %d", pub.calls)
	}
}

func TestRefreshDatasetPublishFailureIsNotFatal(t *testing.T) {
	store := dataset.NewStore(&stubSource{records: sampleRecords(2)}, time.Hour, serviceReference(), zap.NewNop())
	pub := &fakePublisher{err: errors.New("broker down")}
	w := &RefreshServiceWrapper{Store: store, Producer: pub}

	count, err := w.RefreshDataset(context.Background())
	if err != nil {
		t.Fatalf("expected reload to succeed despite publish failure, got %v", err)
	}
	if count != 2 {
		t.Fatalf("expected count 2, got %d", count)
	}
}

func TestRefreshDatasetWithoutProducer(t *testing.T) {
	store := dataset.NewStore(&stubSource{records: sampleRecords(1)}, time.Hour, serviceReference(), zap.NewNop())
	w := &RefreshServiceWrapper{Store: store}

	count, err := w.RefreshDataset(context.Background())
	if err != nil {
		t.Fatalf("RefreshDataset: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected count 1, got %d", count)
	}
}
