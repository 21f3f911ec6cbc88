// Package dashboard defines the GraphQL types for the KPI dashboard.
package dashboard

import (
	"github.com/graphql-go/graphql"
)

// DashboardOverviewType represents the high-level metrics for the top cards
var DashboardOverviewType = graphql.NewObject(graphql.ObjectConfig{
	Name: "DashboardOverview",
	Fields: graphql.Fields{
		"total_vulnerabilities": &graphql.Field{Type: graphql.Int},
		"total_owners":          &graphql.Field{Type: graphql.Int},
		"total_applications":    &graphql.Field{Type: graphql.Int},
		"total_departments":     &graphql.Field{Type: graphql.Int},
		"open_vulnerabilities":  &graphql.Field{Type: graphql.Int},
	},
})

// SeverityDistributionType represents the data for the pie/bar charts
var SeverityDistributionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "SeverityDistribution",
	Fields: graphql.Fields{
		"critical": &graphql.Field{Type: graphql.Int},
		"high":     &graphql.Field{Type: graphql.Int},
		"medium":   &graphql.Field{Type: graphql.Int},
		"low":      &graphql.Field{Type: graphql.Int},
	},
})

// RiskyApplicationType represents rows for the "Top Risky" tables
var RiskyApplicationType = graphql.NewObject(graphql.ObjectConfig{
	Name: "RiskyApplication",
	Fields: graphql.Fields{
		"name":           &graphql.Field{Type: graphql.String},
		"owner_id":       &graphql.Field{Type: graphql.String},
		"critical_count": &graphql.Field{Type: graphql.Int},
		"high_count":     &graphql.Field{Type: graphql.Int},
		"high_risk":      &graphql.Field{Type: graphql.Int},
		"total_vulns":    &graphql.Field{Type: graphql.Int},
	},
})

// OwnerMetricsType represents the full per-owner aggregate
var OwnerMetricsType = graphql.NewObject(graphql.ObjectConfig{
	Name: "OwnerMetrics",
	Fields: graphql.Fields{
		"owner_id":            &graphql.Field{Type: graphql.String},
		"owner_name":          &graphql.Field{Type: graphql.String},
		"dept_name":           &graphql.Field{Type: graphql.String},
		"critical_high_count": &graphql.Field{Type: graphql.Int},
		"old_vulns_count":     &graphql.Field{Type: graphql.Int},
		"high_risk_count":     &graphql.Field{Type: graphql.Int},
		"avg_days_to_close":   &graphql.Field{Type: graphql.Float},
		"dept_avg":            &graphql.Field{Type: graphql.Float},
		"repeat_count":        &graphql.Field{Type: graphql.Float},
		"total_count":         &graphql.Field{Type: graphql.Int},
		"open_count":          &graphql.Field{Type: graphql.Int},
		"worst_app":           &graphql.Field{Type: graphql.String},
		"best_app":            &graphql.Field{Type: graphql.String},
	},
})
