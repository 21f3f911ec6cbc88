// Package analytics computes per-owner aggregate metrics from the loaded
// vulnerability records.
package analytics

import (
	"errors"
	"fmt"

	"github.com/secdash/kpi-backend/model"
)

// ErrOwnerNotFound is returned when no record matches the requested owner ID.
var ErrOwnerNotFound = errors.New("application owner not found")

// OwnerMetricsFor aggregates all records belonging to ownerID. The department
// average is computed over the entire record set, not the owner's slice: it
// is the comparison baseline the templates measure against.
func OwnerMetricsFor(records []model.VulnerabilityRecord, ownerID string) (model.OwnerMetrics, error) {
	var owned []model.VulnerabilityRecord
	for _, r := range records {
		if r.OwnerID == ownerID {
			owned = append(owned, r)
		}
	}
	if len(owned) == 0 {
		return model.OwnerMetrics{}, fmt.Errorf("%w: %s", ErrOwnerNotFound, ownerID)
	}

	m := model.OwnerMetrics{
		OwnerID:    ownerID,
		OwnerName:  owned[0].OwnerName,
		DeptName:   owned[0].DeptName,
		TotalCount: len(owned),
		DeptAvg:    meanDaysToClose(records),
	}

	var repeatSum float64
	for _, r := range owned {
		if r.IsCriticalHigh {
			m.CriticalHighCount++
		}
		if r.IsOver30Days {
			m.OldVulnsCount++
		}
		if r.IsHighRisk {
			m.HighRiskCount++
		}
		if r.Status == model.StatusOpen {
			m.OpenCount++
		}
		repeatSum += r.Repeats
	}
	m.RepeatCount = repeatSum / float64(len(owned))
	m.AvgDaysToClose = meanDaysToClose(owned)

	m.Apps = appMetricsFor(owned)
	m.WorstApp = worstApp(m.Apps)
	m.BestApp = bestApp(m.Apps, m.DeptAvg)

	return m, nil
}

// appMetricsFor groups the owner's records by application name, preserving
// first-appearance order.
func appMetricsFor(owned []model.VulnerabilityRecord) []model.AppMetrics {
	index := make(map[string]int)
	var apps []model.AppMetrics
	grouped := make(map[string][]model.VulnerabilityRecord)

	for _, r := range owned {
		if _, ok := index[r.Application]; !ok {
			index[r.Application] = len(apps)
			apps = append(apps, model.AppMetrics{Name: r.Application})
		}
		grouped[r.Application] = append(grouped[r.Application], r)
	}

	for i := range apps {
		rs := grouped[apps[i].Name]
		apps[i].AvgDaysToClose = meanDaysToClose(rs)
		for _, r := range rs {
			if r.IsCriticalHigh {
				apps[i].CriticalHigh++
			}
			if r.IsHighRisk {
				apps[i].HighRisk++
			}
		}
	}
	return apps
}

// worstApp picks the application maximizing (critical/high count, avg days to
// close), critical/high count dominating. An application with no closed
// records never wins a tie on the average. Ties keep the earlier application.
func worstApp(apps []model.AppMetrics) string {
	if len(apps) == 0 {
		return ""
	}
	worst := 0
	for i := 1; i < len(apps); i++ {
		if appTupleGreater(apps[i], apps[worst]) {
			worst = i
		}
	}
	return apps[worst].Name
}

func appTupleGreater(a, b model.AppMetrics) bool {
	if a.CriticalHigh != b.CriticalHigh {
		return a.CriticalHigh > b.CriticalHigh
	}
	if a.AvgDaysToClose == nil || b.AvgDaysToClose == nil {
		// An undefined average never beats anything on the tie-break.
		return a.AvgDaysToClose != nil && b.AvgDaysToClose == nil
	}
	return *a.AvgDaysToClose > *b.AvgDaysToClose
}

// bestApp returns the first application with zero critical/high findings and
// an average closure time strictly below the department baseline, or "" when
// none qualifies.
func bestApp(apps []model.AppMetrics, deptAvg *float64) string {
	if deptAvg == nil {
		return ""
	}
	for _, a := range apps {
		if a.CriticalHigh == 0 && a.AvgDaysToClose != nil && *a.AvgDaysToClose < *deptAvg {
			return a.Name
		}
	}
	return ""
}

// meanDaysToClose averages Days_to_Close over the records that have one,
// matching the source report which ignored still-open rows. Returns nil when
// no record has closed.
func meanDaysToClose(records []model.VulnerabilityRecord) *float64 {
	var sum float64
	var n int
	for _, r := range records {
		if r.DaysToClose != nil {
			sum += *r.DaysToClose
			n++
		}
	}
	if n == 0 {
		return nil
	}
	mean := sum / float64(n)
	return &mean
}

// Summary rolls up the whole dataset for the analytics endpoint.
func Summary(records []model.VulnerabilityRecord) model.AnalyticsSummary {
	s := model.AnalyticsSummary{TotalVulnerabilities: len(records)}
	if len(records) == 0 {
		return s
	}

	depts := make(map[string]struct{})
	owners := make(map[string]struct{})
	apps := make(map[string]struct{})
	var cvssSum, riskSum float64

	for _, r := range records {
		switch r.Severity {
		case model.SeverityCritical:
			s.CriticalVulnerabilities++
		case model.SeverityHigh:
			s.HighVulnerabilities++
		}
		if r.Status == model.StatusOpen {
			s.OpenVulnerabilities++
		}
		cvssSum += r.CVSSScore
		riskSum += r.RiskScore
		depts[r.DeptName] = struct{}{}
		owners[r.OwnerID] = struct{}{}
		apps[r.Application] = struct{}{}
	}

	s.AverageCVSSScore = cvssSum / float64(len(records))
	s.AverageRiskScore = riskSum / float64(len(records))
	s.AverageDaysToClose = meanDaysToClose(records)
	s.DepartmentsCount = len(depts)
	s.OwnersCount = len(owners)
	s.ApplicationsCount = len(apps)
	return s
}
