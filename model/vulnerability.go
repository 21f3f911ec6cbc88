// Package model - VulnerabilityRecord defines one row of the KPI dataset and
// the derived flags computed on load.
package model

import "time"

// Severity is the reported severity bucket for a vulnerability.
type Severity string

// Severity values as they appear in the dataset.
const (
	SeverityCritical Severity = "Critical"
	SeverityHigh     Severity = "High"
	SeverityMedium   Severity = "Medium"
	SeverityLow      Severity = "Low"
)

// Status is the remediation state of a vulnerability record.
type Status string

// Status values as they appear in the dataset.
const (
	StatusOpen       Status = "Open"
	StatusInProgress Status = "In Progress"
	StatusClosed     Status = "Closed"
	StatusException  Status = "Exception"
)

// VulnerabilityRecord represents a single vulnerability finding. Owner and
// department names are denormalized onto every record, so no join is needed
// at read time. Records are immutable once loaded.
type VulnerabilityRecord struct {
	OwnerID     string     `json:"owner_id"`
	OwnerName   string     `json:"owner_name"`
	DeptName    string     `json:"dept_name"`
	Application string     `json:"application_name"`
	Asset       string     `json:"asset_name"`
	Description string     `json:"vulnerability_description"`
	Severity    Severity   `json:"vulnerability_severity"`
	CVSSScore   float64    `json:"cvss_score"`
	RiskScore   float64    `json:"risk_score"`
	Status      Status     `json:"status"`
	FirstDet    time.Time  `json:"first_detected_date"`
	ClosedAt    *time.Time `json:"closure_date,omitempty"`
	DaysToClose *float64   `json:"days_to_close,omitempty"`
	Repeats     float64    `json:"number_of_repeats"`

	// Derived flags, filled in by DeriveFlags.
	DaysOpen             float64 `json:"days_open"`
	IsCriticalHigh       bool    `json:"is_critical_high"`
	IsOver30Days         bool    `json:"is_over_30_days"`
	IsCriticalHighOver30 bool    `json:"is_critical_high_over_30"`
	IsHighRisk           bool    `json:"is_high_risk"`
}

// DeriveFlags computes the derived columns for the record. The reference
// date stands in for "now" when a record has no closure date; it is a
// configured constant, never the wall clock.
func (r *VulnerabilityRecord) DeriveFlags(reference time.Time) {
	if r.DaysToClose != nil {
		r.DaysOpen = *r.DaysToClose
	} else {
		r.DaysOpen = reference.Sub(r.FirstDet).Hours() / 24
	}

	r.IsCriticalHigh = r.Severity == SeverityCritical || r.Severity == SeverityHigh
	r.IsOver30Days = r.DaysOpen > 30
	r.IsCriticalHighOver30 = r.IsCriticalHigh && r.IsOver30Days
	r.IsHighRisk = r.CVSSScore > 7 || r.RiskScore > 7
}
