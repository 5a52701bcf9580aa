package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"task-planner/internal/model"
	"task-planner/internal/service"
)

// currentUser returns the identity loaded by AuthRequired.
func currentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals(currentUserKey).(*model.User)
	return user
}

// parseID reads the :id path parameter; ok is false if it is not a positive integer.
func parseID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
}

// respondError maps service failures onto HTTP responses. A validation error
// carries every field violation; anything unrecognized is logged and hidden
// behind a 500.
func respondError(c *fiber.Ctx, log *logrus.Logger, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": verr.Fields})
	case errors.Is(err, service.ErrNotFound):
		return notFound(c)
	case errors.Is(err, service.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	default:
		log.WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
		}).WithError(err).Error("request failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}
