package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"task-planner/internal/repository"
	"task-planner/internal/service"
)

const currentUserKey = "currentUser"

// AuthRequired validates the bearer token and loads the calling user into
// the request context. Everything behind it can assume an identity exists.
func AuthRequired(auth *service.AuthService, users *repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(raw) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
		}

		userID, err := auth.ParseToken(strings.TrimSpace(raw))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		user, err := users.FindByID(c.UserContext(), userID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		c.Locals(currentUserKey, user)
		return c.Next()
	}
}
