// Package admin provides operational endpoints.
package admin

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/secdash/kpi-backend/dataset"
)

// PostRefresh forces a dataset reload. On failure the previous table stays
// in place and the error is reported to the caller.
func PostRefresh(store *dataset.Store, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := store.Refresh(c.Context()); err != nil {
			log.Error("manual dataset refresh failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Refresh failed; previous dataset kept",
			})
		}
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Dataset reloaded",
			"records": store.Len(),
		})
	}
}
