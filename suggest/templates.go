// Package suggest holds the suggestion template bank and the similarity
// ranker that orders applicable templates for an owner.
package suggest

import (
	"fmt"

	"github.com/secdash/kpi-backend/config"
	"github.com/secdash/kpi-backend/model"
)

// Template is one canned suggestion: a formatter, a priority tag, an
// applicability predicate over the owner's metrics, and a relative weight.
// Format reports ok=false when a field the text needs is absent from the
// metrics (e.g. no best application identified); such templates are skipped,
// never treated as errors.
type Template struct {
	ID       string
	Priority model.Priority
	Weight   float64
	Applies  func(m model.OwnerMetrics, th config.Thresholds) bool
	Format   func(m model.OwnerMetrics) (string, bool)
}

// Bank returns the fixed, ordered template list. Order only fixes the
// enumeration (and therefore tie-break) order; ranking reorders by score.
func Bank() []Template {
	return []Template{
		{
			ID:       "critical_remediation",
			Priority: model.PriorityUrgent,
			Weight:   1.0,
			Applies: func(m model.OwnerMetrics, th config.Thresholds) bool {
				return m.CriticalHighCount > th.CriticalHighUrgent
			},
			Format: func(m model.OwnerMetrics) (string, bool) {
				return fmt.Sprintf("[CRITICAL] Immediate action required: %d critical/high vulnerabilities need urgent remediation.", m.CriticalHighCount), true
			},
		},
		{
			ID:       "stale_vulnerabilities",
			Priority: model.PriorityUrgent,
			Weight:   0.9,
			Applies: func(m model.OwnerMetrics, th config.Thresholds) bool {
				return m.OldVulnsCount > th.OldVulnsUrgent
			},
			Format: func(m model.OwnerMetrics) (string, bool) {
				return fmt.Sprintf("[URGENT] %d vulnerabilities have been open for over 30 days. This significantly increases risk exposure.", m.OldVulnsCount), true
			},
		},
		{
			ID:       "slow_remediation",
			Priority: model.PriorityMedium,
			Weight:   0.7,
			Applies: func(m model.OwnerMetrics, th config.Thresholds) bool {
				return m.AvgDaysToClose != nil && m.DeptAvg != nil &&
					*m.AvgDaysToClose > *m.DeptAvg+th.DeptAvgMarginDays
			},
			Format: func(m model.OwnerMetrics) (string, bool) {
				if m.AvgDaysToClose == nil || m.DeptAvg == nil {
					return "", false
				}
				return fmt.Sprintf("[WARNING] Your average remediation time (%.1f days) exceeds the department average (%.1f days).", *m.AvgDaysToClose, *m.DeptAvg), true
			},
		},
		{
			ID:       "high_risk_items",
			Priority: model.PriorityUrgent,
			Weight:   0.8,
			Applies: func(m model.OwnerMetrics, th config.Thresholds) bool {
				return m.HighRiskCount > th.HighRiskUrgent
			},
			Format: func(m model.OwnerMetrics) (string, bool) {
				return fmt.Sprintf("[URGENT] %d high-risk vulnerabilities (CVSS/Risk Score > 7) require immediate attention.", m.HighRiskCount), true
			},
		},
		{
			ID:       "worst_application",
			Priority: model.PriorityMedium,
			Weight:   0.6,
			Applies: func(m model.OwnerMetrics, _ config.Thresholds) bool {
				return m.HasWorstApp()
			},
			Format: func(m model.OwnerMetrics) (string, bool) {
				if !m.HasWorstApp() {
					return "", false
				}
				return fmt.Sprintf("[RECOMMENDATION] Review patch management for Application '%s' - it shows the highest vulnerability exposure.", m.WorstApp), true
			},
		},
		{
			ID:       "automated_scanning",
			Priority: model.PriorityMedium,
			Weight:   0.5,
			Applies: func(m model.OwnerMetrics, th config.Thresholds) bool {
				return m.AvgDaysToClose != nil && *m.AvgDaysToClose > th.AutomationAvgDays
			},
			Format: func(_ model.OwnerMetrics) (string, bool) {
				return "[OPTIMIZATION] Implement automated vulnerability scanning to reduce detection time and improve security posture.", true
			},
		},
		{
			ID:       "security_training",
			Priority: model.PriorityMedium,
			Weight:   0.6,
			Applies: func(m model.OwnerMetrics, th config.Thresholds) bool {
				return m.RepeatCount > th.RepeatTraining
			},
			Format: func(m model.OwnerMetrics) (string, bool) {
				return fmt.Sprintf("[TRAINING] Security awareness training recommended - repeat vulnerabilities (%.1f) indicate process gaps.", m.RepeatCount), true
			},
		},
		{
			ID:       "prioritization_framework",
			Priority: model.PriorityMedium,
			Weight:   0.4,
			Applies: func(m model.OwnerMetrics, _ config.Thresholds) bool {
				return m.CriticalHighCount > 0
			},
			Format: func(m model.OwnerMetrics) (string, bool) {
				return fmt.Sprintf("[STRATEGIC] Establish vulnerability prioritization framework for %s department to improve response efficiency.", m.DeptName), true
			},
		},
		{
			ID:       "best_application",
			Priority: model.PriorityGood,
			Weight:   0.3,
			Applies: func(m model.OwnerMetrics, _ config.Thresholds) bool {
				return m.HasBestApp()
			},
			Format: func(m model.OwnerMetrics) (string, bool) {
				if !m.HasBestApp() {
					return "", false
				}
				return fmt.Sprintf("[EXCELLENCE] Outstanding vulnerability management for Application '%s' - consider replicating these practices.", m.BestApp), true
			},
		},
		{
			ID:       "above_average",
			Priority: model.PriorityGood,
			Weight:   0.2,
			Applies: func(m model.OwnerMetrics, th config.Thresholds) bool {
				return m.AvgDaysToClose != nil && *m.AvgDaysToClose < th.GoodAvgDays
			},
			Format: func(_ model.OwnerMetrics) (string, bool) {
				return "[SUCCESS] Team performance is above average - continue current remediation practices for sustained security improvements.", true
			},
		},
	}
}
