package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"task-planner/internal/service"
)

// AuthHandler exposes registration and login.
type AuthHandler struct {
	auth *service.AuthService
	log  *logrus.Logger
}

func NewAuthHandler(auth *service.AuthService, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var creds service.Credentials
	if err := c.BodyParser(&creds); err != nil {
		return badBody(c)
	}

	user, err := h.auth.Register(c.UserContext(), creds)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":       user.ID,
		"username": user.Username,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var creds service.Credentials
	if err := c.BodyParser(&creds); err != nil {
		return badBody(c)
	}

	token, user, err := h.auth.Login(c.UserContext(), creds)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(fiber.Map{
		"token":    token,
		"username": user.Username,
	})
}
