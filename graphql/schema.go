// Package graphql assembles the root schema from the feature modules.
package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/secdash/kpi-backend/dataset"
	gqldashboard "github.com/secdash/kpi-backend/graphql/modules/dashboard"
)

var store *dataset.Store

// InitStore sets the dataset store used by the resolvers
func InitStore(s *dataset.Store) {
	store = s
	gqldashboard.InitStore(s)
}

// CreateSchema builds the root query schema
func CreateSchema() (graphql.Schema, error) {
	fields := graphql.Fields{}
	for name, field := range gqldashboard.GetQueryFields(store) {
		fields[name] = field
	}

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Query",
		Fields: fields,
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: rootQuery})
}
