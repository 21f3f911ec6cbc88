// Package chat provides the REST handler for the knowledge-base chatbot.
package chat

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/secdash/kpi-backend/chatbot"
	"github.com/secdash/kpi-backend/embed"
	"github.com/secdash/kpi-backend/model"
	"github.com/secdash/kpi-backend/util"
)

// PostChat answers a user question from the knowledge base.
func PostChat(responder *chatbot.Responder, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.ChatRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
		if util.IsEmpty(req.Question) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "question must not be empty",
			})
		}

		resp, err := responder.Answer(c.Context(), req.Question)
		if err != nil {
			if errors.Is(err, embed.ErrUnavailable) {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"error": "AI Assistant temporarily unavailable",
				})
			}
			log.Error("chatbot request failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "AI Assistant error",
			})
		}

		return c.JSON(resp)
	}
}
