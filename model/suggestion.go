// Package model - Suggestion types produced by the ranker.
package model

// Priority is the coarse urgency bucket attached to a suggestion for UI styling.
type Priority string

// Priority buckets.
const (
	PriorityUrgent Priority = "urgent"
	PriorityMedium Priority = "medium"
	PriorityGood   Priority = "good"
)

// Suggestion is one formatted, scored recommendation. RelevanceScore stays 0
// when embedding-based scoring is unavailable.
type Suggestion struct {
	Text           string   `json:"text"`
	Priority       Priority `json:"priority"`
	RelevanceScore float64  `json:"relevance_score"`
	Weight         float64  `json:"weight"`

	// Set only on multi-owner responses, where suggestions from several
	// owners are merged into one list.
	OwnerID   string `json:"owner_id,omitempty"`
	OwnerName string `json:"owner_name,omitempty"`
}
