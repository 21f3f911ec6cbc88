// Package dashboard defines the GraphQL queries for the dashboard.
package dashboard

import (
	"github.com/graphql-go/graphql"

	"github.com/secdash/kpi-backend/dataset"
)

// GetQueryFields returns the dashboard queries to be mounted in the root schema
func GetQueryFields(store *dataset.Store) graphql.Fields {
	return graphql.Fields{
		// Section 1: Top Cards (Overview)
		"dashboardOverview": &graphql.Field{
			Type: DashboardOverviewType,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return ResolveOverview(p.Context)
			},
		},
		// Section 2: Charts (Severity)
		"dashboardSeverity": &graphql.Field{
			Type: SeverityDistributionType,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return ResolveSeverityDistribution(p.Context)
			},
		},
		// Section 3: Tables (Top Risky Applications)
		"dashboardTopRisks": &graphql.Field{
			Type: graphql.NewList(RiskyApplicationType),
			Args: graphql.FieldConfigArgument{
				"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 5},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				limit, ok := p.Args["limit"].(int)
				if !ok {
					limit = 5
				}
				return ResolveTopRisks(p.Context, limit)
			},
		},
		// Section 4: Per-owner aggregate for the detail panel
		"ownerMetrics": &graphql.Field{
			Type: OwnerMetricsType,
			Args: graphql.FieldConfigArgument{
				"owner_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				ownerID := p.Args["owner_id"].(string)
				return ResolveOwnerMetrics(p.Context, ownerID)
			},
		},
	}
}
