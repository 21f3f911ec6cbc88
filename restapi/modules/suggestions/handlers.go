// Package suggestions provides the REST handlers for the suggestion pipeline.
package suggestions

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/secdash/kpi-backend/analytics"
	"github.com/secdash/kpi-backend/kvcache"
	"github.com/secdash/kpi-backend/model"
	"github.com/secdash/kpi-backend/suggest"
)

// GetSuggestions serves the per-owner ranked suggestion list. Responses are
// cached in valkey (when configured) under a per-owner key with TTL, the way
// the dashboard's repeated filter changes hammer the same few owners.
func GetSuggestions(ranker *suggest.Ranker, cache kvcache.KVStore, ttlSeconds int, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ownerID := c.Params("owner_id")
		cacheKey := "suggestions:" + ownerID

		if cache != nil {
			if cached, err := cache.GetValue(c.Context(), cacheKey); err == nil {
				var resp model.SuggestionResponse
				if err := json.Unmarshal([]byte(cached), &resp); err == nil {
					return c.JSON(resp)
				}
			}
		}

		resp, err := ranker.Rank(c.Context(), ownerID)
		if err != nil {
			if errors.Is(err, analytics.ErrOwnerNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": fmt.Sprintf("Application Owner %s not found", ownerID),
				})
			}
			log.Error("suggestion generation failed", zap.String("owner", ownerID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Suggestion generation failed",
			})
		}

		if cache != nil {
			if payload, err := json.Marshal(resp); err == nil {
				if err := cache.SetValueWithTTL(c.Context(), cacheKey, string(payload), ttlSeconds); err != nil {
					log.Warn("failed to cache suggestions", zap.String("owner", ownerID), zap.Error(err))
				}
			}
		}

		return c.JSON(resp)
	}
}

// PostSuggestions serves the multi-owner variant: suggestions for every
// requested owner merged into one list sorted by relevance, top ten.
func PostSuggestions(ranker *suggest.Ranker, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.MultiSuggestionsRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
		if len(req.OwnerIDs) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "owner_ids must not be empty",
			})
		}

		resp, err := ranker.RankMany(c.Context(), req.OwnerIDs)
		if err != nil {
			if errors.Is(err, analytics.ErrOwnerNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": err.Error(),
				})
			}
			log.Error("multi-owner suggestion generation failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Suggestion generation failed",
			})
		}

		return c.JSON(resp)
	}
}
