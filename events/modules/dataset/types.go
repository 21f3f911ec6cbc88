// Package dataset defines types for Kafka event processing of dataset refresh events.
package dataset

import "time"

// RefreshRequestedEvent asks the backend to reload the vulnerability dataset
// from its configured source.
type RefreshRequestedEvent struct {
	EventType     string    `json:"event_type"`
	EventID       string    `json:"event_id"`
	EventTime     time.Time `json:"event_time"`
	SchemaVersion string    `json:"schema_version"`

	// Who or what requested the reload (e.g. "etl-pipeline", "rest-api")
	Source string `json:"source,omitempty"`

	// Optional reason included for audit logging
	Reason string `json:"reason,omitempty"`
}

// RefreshedEvent announces that the dataset was reloaded successfully.
type RefreshedEvent struct {
	EventType     string    `json:"event_type"`
	EventID       string    `json:"event_id"`
	EventTime     time.Time `json:"event_time"`
	SchemaVersion string    `json:"schema_version"`

	RecordCount int       `json:"record_count"`
	LoadedAt    time.Time `json:"loaded_at"`
}
