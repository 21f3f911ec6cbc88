// Package restapi provides the main router and initialization for REST API endpoints.
package restapi

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/secdash/kpi-backend/restapi/modules/admin"
	"github.com/secdash/kpi-backend/restapi/modules/catalog"
	"github.com/secdash/kpi-backend/restapi/modules/chat"
	"github.com/secdash/kpi-backend/restapi/modules/suggestions"
)

// SetupRoutes configures all REST API routes and the GraphQL endpoint.
func SetupRoutes(app *fiber.App, deps Deps, schema graphql.Schema) {

	// API Group /api/v1
	api := app.Group("/api/v1")

	// GraphQL Route - Mounted within the api group to inherit path prefixes
	api.Post("/graphql", GraphQLHandler(schema))

	// Suggestion pipeline
	api.Get("/suggestions/:owner_id", suggestions.GetSuggestions(deps.Ranker, deps.Cache, deps.Config.SuggestionTTLSeconds, deps.Logger))
	api.Post("/suggestions", suggestions.PostSuggestions(deps.Ranker, deps.Logger))

	// Chatbot
	api.Post("/chatbot", chat.PostChat(deps.Chat, deps.Logger))

	// Catalog / dashboard data
	api.Get("/owners", catalog.GetOwners(deps.Store))
	api.Get("/departments", catalog.GetDepartments(deps.Store))
	api.Get("/applications", catalog.GetApplications(deps.Store))
	api.Get("/analytics/summary", catalog.GetSummary(deps.Store))

	// Operational
	app.Get("/health", catalog.GetHealth(deps.Store, deps.Ranker.MLScoringEnabled()))
	api.Post("/refresh", admin.PostRefresh(deps.Store, deps.Logger))

	log.Println("API routes initialized successfully")
}
