package suggest

import (
	"strings"
	"testing"

	"github.com/secdash/kpi-backend/config"
	"github.com/secdash/kpi-backend/model"
)

func fp(v float64) *float64 { return &v }

func bankByID(t *testing.T) map[string]Template {
	t.Helper()
	out := make(map[string]Template)
	for _, tmpl := range Bank() {
		out[tmpl.ID] = tmpl
	}
	return out
}

func TestBankThresholds(t *testing.T) {
	th := config.Default().Thresholds
	bank := bankByID(t)

	cases := []struct {
		id      string
		metrics model.OwnerMetrics
		want    bool
	}{
		{"critical_remediation", model.OwnerMetrics{CriticalHighCount: 6}, true},
		{"critical_remediation", model.OwnerMetrics{CriticalHighCount: 5}, false},
		{"stale_vulnerabilities", model.OwnerMetrics{OldVulnsCount: 4}, true},
		{"stale_vulnerabilities", model.OwnerMetrics{OldVulnsCount: 3}, false},
		{"slow_remediation", model.OwnerMetrics{AvgDaysToClose: fp(26), DeptAvg: fp(20)}, true},
		{"slow_remediation", model.OwnerMetrics{AvgDaysToClose: fp(25), DeptAvg: fp(20)}, false},
		{"slow_remediation", model.OwnerMetrics{DeptAvg: fp(20)}, false},
		{"high_risk_items", model.OwnerMetrics{HighRiskCount: 2}, true},
		{"high_risk_items", model.OwnerMetrics{HighRiskCount: 1}, false},
		{"worst_application", model.OwnerMetrics{WorstApp: "Payroll"}, true},
		{"worst_application", model.OwnerMetrics{WorstApp: "Unknown"}, false},
		{"worst_application", model.OwnerMetrics{}, false},
		{"automated_scanning", model.OwnerMetrics{AvgDaysToClose: fp(21)}, true},
		{"automated_scanning", model.OwnerMetrics{AvgDaysToClose: fp(20)}, false},
		{"automated_scanning", model.OwnerMetrics{}, false},
		{"security_training", model.OwnerMetrics{RepeatCount: 1.6}, true},
		{"security_training", model.OwnerMetrics{RepeatCount: 1.5}, false},
		{"prioritization_framework", model.OwnerMetrics{CriticalHighCount: 1}, true},
		{"prioritization_framework", model.OwnerMetrics{}, false},
		{"best_application", model.OwnerMetrics{BestApp: "CRM"}, true},
		{"best_application", model.OwnerMetrics{}, false},
		{"above_average", model.OwnerMetrics{AvgDaysToClose: fp(14)}, true},
		{"above_average", model.OwnerMetrics{AvgDaysToClose: fp(15)}, false},
		{"above_average", model.OwnerMetrics{}, false},
	}

	for _, c := range cases {
		tmpl, ok := bank[c.id]
		if !ok {
			t.Fatalf("template %s not in bank", c.id)
		}
		if got := tmpl.Applies(c.metrics, th); got != c.want {
			t.Errorf("%s: expected Applies=%v for %+v", c.id, c.want, c.metrics)
		}
	}
}

func TestBankWeights(t *testing.T) {
	want := map[string]float64{
		"critical_remediation":     1.0,
		"stale_vulnerabilities":    0.9,
		"slow_remediation":         0.7,
		"high_risk_items":          0.8,
		"worst_application":        0.6,
		"automated_scanning":       0.5,
		"security_training":        0.6,
		"prioritization_framework": 0.4,
		"best_application":         0.3,
		"above_average":            0.2,
	}

	bank := Bank()
	if len(bank) != len(want) {
		t.Fatalf("expected %d templates, got %d", len(want), len(bank))
	}
	for _, tmpl := range bank {
		if w, ok := want[tmpl.ID]; !ok {
			t.Errorf("unexpected template %s", tmpl.ID)
		} else if tmpl.Weight != w {
			t.Errorf("%s: expected weight %v, got %v", tmpl.ID, w, tmpl.Weight)
		}
	}
}

func TestTemplateTextsIncludeMetricValues(t *testing.T) {
	bank := bankByID(t)
	m := model.OwnerMetrics{
		CriticalHighCount: 7,
		WorstApp:          "Payroll",
		DeptName:          "IT Security",
	}

	text, ok := bank["critical_remediation"].Format(m)
	if !ok || !strings.Contains(text, "7 critical/high") {
		t.Fatalf("expected count in text, got %q", text)
	}

	text, ok = bank["worst_application"].Format(m)
	if !ok || !strings.Contains(text, "'Payroll'") {
		t.Fatalf("expected application name in text, got %q", text)
	}

	text, ok = bank["prioritization_framework"].Format(m)
	if !ok || !strings.Contains(text, "IT Security department") {
		t.Fatalf("expected department in text, got %q", text)
	}
}

func TestFormatReportsMissingFields(t *testing.T) {
	bank := bankByID(t)

	if _, ok := bank["slow_remediation"].Format(model.OwnerMetrics{}); ok {
		t.Fatal("expected slow_remediation to report missing averages")
	}
	if _, ok := bank["best_application"].Format(model.OwnerMetrics{}); ok {
		t.Fatal("expected best_application to report missing best app")
	}
	if _, ok := bank["worst_application"].Format(model.OwnerMetrics{WorstApp: "Unknown"}); ok {
		t.Fatal("expected worst_application to reject the Unknown placeholder")
	}
}
