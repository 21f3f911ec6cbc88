// Package catalog provides the read-only lookup endpoints backing the
// dashboard's filter dropdowns, plus the dataset-wide analytics summary.
package catalog

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/secdash/kpi-backend/analytics"
	"github.com/secdash/kpi-backend/dataset"
	"github.com/secdash/kpi-backend/model"
)

// GetOwners lists the distinct owner id/name pairs.
func GetOwners(store *dataset.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		seen := make(map[string]struct{})
		var owners []model.OwnerRef
		for _, r := range store.Records(c.Context()) {
			if _, ok := seen[r.OwnerID]; ok {
				continue
			}
			seen[r.OwnerID] = struct{}{}
			owners = append(owners, model.OwnerRef{OwnerID: r.OwnerID, OwnerName: r.OwnerName})
		}
		if owners == nil {
			owners = []model.OwnerRef{}
		}
		return c.JSON(fiber.Map{
			"application_owners": owners,
			"count":              len(owners),
		})
	}
}

// GetDepartments lists the distinct department names.
func GetDepartments(store *dataset.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		seen := make(map[string]struct{})
		departments := []string{}
		for _, r := range store.Records(c.Context()) {
			if _, ok := seen[r.DeptName]; ok {
				continue
			}
			seen[r.DeptName] = struct{}{}
			departments = append(departments, r.DeptName)
		}
		return c.JSON(fiber.Map{
			"departments": departments,
			"count":       len(departments),
		})
	}
}

// GetApplications lists application names, optionally filtered by owner.
func GetApplications(store *dataset.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ownerID := c.Query("owner_id")

		seen := make(map[string]struct{})
		applications := []string{}
		for _, r := range store.Records(c.Context()) {
			if ownerID != "" && r.OwnerID != ownerID {
				continue
			}
			if _, ok := seen[r.Application]; ok {
				continue
			}
			seen[r.Application] = struct{}{}
			applications = append(applications, r.Application)
		}

		resp := fiber.Map{
			"applications": applications,
			"count":        len(applications),
		}
		if ownerID != "" {
			resp["filtered_by_owner"] = ownerID
		}
		return c.JSON(resp)
	}
}

// GetSummary serves the dataset-wide rollup.
func GetSummary(store *dataset.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(analytics.Summary(store.Records(c.Context())))
	}
}

// GetHealth reports process health: dataset freshness and model availability.
func GetHealth(store *dataset.Store, mlEnabled bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cacheAge interface{}
		if loaded := store.LoadedAt(); !loaded.IsZero() {
			cacheAge = time.Since(loaded).Seconds()
		}
		return c.JSON(fiber.Map{
			"status":        "healthy",
			"data_loaded":   store.Len() > 0,
			"model_loaded":  mlEnabled,
			"cache_age":     cacheAge,
			"records_count": store.Len(),
		})
	}
}
