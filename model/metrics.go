// Package model - OwnerMetrics holds the per-owner aggregates consumed by the
// template bank and the dashboard resolvers.
package model

// AppMetrics is the per-application sub-aggregate within one owner's records.
type AppMetrics struct {
	Name           string   `json:"name"`
	AvgDaysToClose *float64 `json:"avg_days_to_close"` // nil when every record is still open
	CriticalHigh   int      `json:"critical_high"`
	HighRisk       int      `json:"high_risk"`
}

// OwnerMetrics is the aggregate computed for one Application Owner. It is
// recomputed on every suggestion request and never persisted.
type OwnerMetrics struct {
	OwnerID   string `json:"owner_id"`
	OwnerName string `json:"owner_name"`
	DeptName  string `json:"dept_name"`

	CriticalHighCount int `json:"critical_high_count"`
	OldVulnsCount     int `json:"old_vulns_count"`
	HighRiskCount     int `json:"high_risk_count"`

	// AvgDaysToClose averages Days_to_Close over the owner's closed records;
	// nil when the owner has no closed records at all.
	AvgDaysToClose *float64 `json:"avg_days_to_close"`
	// DeptAvg is the mean Days_to_Close over the entire dataset, used as a
	// comparison baseline, not the owner's own figure.
	DeptAvg *float64 `json:"dept_avg"`

	RepeatCount float64 `json:"repeat_count"`
	TotalCount  int     `json:"total_vulnerabilities"`
	OpenCount   int     `json:"open_vulnerabilities"`

	WorstApp string `json:"worst_app,omitempty"`
	BestApp  string `json:"best_app,omitempty"`

	// Apps keeps the per-application breakdown in first-appearance order.
	Apps []AppMetrics `json:"-"`
}

// HasBestApp reports whether a best application was identified. BestApp is an
// optional field: templates referencing it are skipped when it is absent.
func (m OwnerMetrics) HasBestApp() bool { return m.BestApp != "" }

// HasWorstApp reports whether a worst application was identified.
func (m OwnerMetrics) HasWorstApp() bool { return m.WorstApp != "" && m.WorstApp != "Unknown" }

// Map flattens the metrics into the key/value form returned by the API,
// using the original report's key names.
func (m OwnerMetrics) Map() map[string]interface{} {
	out := map[string]interface{}{
		"ao_id":                 m.OwnerID,
		"ao_name":               m.OwnerName,
		"dept_name":             m.DeptName,
		"critical_high_count":   m.CriticalHighCount,
		"old_vulns_count":       m.OldVulnsCount,
		"high_risk_count":       m.HighRiskCount,
		"avg_days_to_close":     floatOrNil(m.AvgDaysToClose),
		"dept_avg":              floatOrNil(m.DeptAvg),
		"repeat_count":          m.RepeatCount,
		"total_vulnerabilities": m.TotalCount,
		"open_vulnerabilities":  m.OpenCount,
	}
	if m.WorstApp != "" {
		out["worst_app"] = m.WorstApp
	}
	if m.HasBestApp() {
		out["best_app"] = m.BestApp
	}
	return out
}

func floatOrNil(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}
