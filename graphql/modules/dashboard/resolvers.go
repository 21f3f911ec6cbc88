// Package dashboard implements the resolvers for dashboard metrics.
package dashboard

import (
	"context"
	"sort"

	"github.com/secdash/kpi-backend/analytics"
	"github.com/secdash/kpi-backend/dataset"
	"github.com/secdash/kpi-backend/model"
)

var store *dataset.Store

// InitStore sets the dataset store the resolvers read from
func InitStore(s *dataset.Store) {
	store = s
}

// ResolveOverview handles fetching the high-level dashboard metrics
func ResolveOverview(ctx context.Context) (interface{}, error) {
	records := store.Records(ctx)

	owners := make(map[string]struct{})
	apps := make(map[string]struct{})
	depts := make(map[string]struct{})
	open := 0
	for _, r := range records {
		owners[r.OwnerID] = struct{}{}
		apps[r.Application] = struct{}{}
		depts[r.DeptName] = struct{}{}
		if r.Status == model.StatusOpen {
			open++
		}
	}

	return map[string]interface{}{
		"total_vulnerabilities": len(records),
		"total_owners":          len(owners),
		"total_applications":    len(apps),
		"total_departments":     len(depts),
		"open_vulnerabilities":  open,
	}, nil
}

// ResolveSeverityDistribution fetches current breakdown of issues
func ResolveSeverityDistribution(ctx context.Context) (interface{}, error) {
	counts := map[model.Severity]int{}
	for _, r := range store.Records(ctx) {
		counts[r.Severity]++
	}

	return map[string]interface{}{
		"critical": counts[model.SeverityCritical],
		"high":     counts[model.SeverityHigh],
		"medium":   counts[model.SeverityMedium],
		"low":      counts[model.SeverityLow],
	}, nil
}

// ResolveTopRisks returns the applications with the most critical/high
// findings, worst first.
func ResolveTopRisks(ctx context.Context, limit int) (interface{}, error) {
	type appRisk struct {
		name, ownerID                        string
		critical, high, highRisk, totalVulns int
	}

	index := make(map[string]int)
	var apps []appRisk
	for _, r := range store.Records(ctx) {
		i, ok := index[r.Application]
		if !ok {
			i = len(apps)
			index[r.Application] = i
			apps = append(apps, appRisk{name: r.Application, ownerID: r.OwnerID})
		}
		apps[i].totalVulns++
		switch r.Severity {
		case model.SeverityCritical:
			apps[i].critical++
		case model.SeverityHigh:
			apps[i].high++
		}
		if r.IsHighRisk {
			apps[i].highRisk++
		}
	}

	sort.SliceStable(apps, func(i, j int) bool {
		ci, cj := apps[i].critical+apps[i].high, apps[j].critical+apps[j].high
		if ci != cj {
			return ci > cj
		}
		return apps[i].totalVulns > apps[j].totalVulns
	})
	if limit < 0 {
		limit = 0
	}
	if len(apps) > limit {
		apps = apps[:limit]
	}

	risks := make([]map[string]interface{}, 0, len(apps))
	for _, a := range apps {
		risks = append(risks, map[string]interface{}{
			"name":           a.name,
			"owner_id":       a.ownerID,
			"critical_count": a.critical,
			"high_count":     a.high,
			"high_risk":      a.highRisk,
			"total_vulns":    a.totalVulns,
		})
	}
	return risks, nil
}

// ResolveOwnerMetrics returns the per-owner aggregate used by the detail panel
func ResolveOwnerMetrics(ctx context.Context, ownerID string) (interface{}, error) {
	m, err := analytics.OwnerMetricsFor(store.Records(ctx), ownerID)
	if err != nil {
		return nil, err
	}

	out := map[string]interface{}{
		"owner_id":            m.OwnerID,
		"owner_name":          m.OwnerName,
		"dept_name":           m.DeptName,
		"critical_high_count": m.CriticalHighCount,
		"old_vulns_count":     m.OldVulnsCount,
		"high_risk_count":     m.HighRiskCount,
		"repeat_count":        m.RepeatCount,
		"total_count":         m.TotalCount,
		"open_count":          m.OpenCount,
		"worst_app":           m.WorstApp,
		"best_app":            m.BestApp,
	}
	if m.AvgDaysToClose != nil {
		out["avg_days_to_close"] = *m.AvgDaysToClose
	}
	if m.DeptAvg != nil {
		out["dept_avg"] = *m.DeptAvg
	}
	return out, nil
}
