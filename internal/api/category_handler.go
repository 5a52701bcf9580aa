package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"task-planner/internal/service"
)

// CategoryHandler exposes CRUD for the caller's categories.
type CategoryHandler struct {
	categories *service.CategoryService
	log        *logrus.Logger
}

func NewCategoryHandler(categories *service.CategoryService, log *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{categories: categories, log: log}
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	user := currentUser(c)

	categories, err := h.categories.List(c.UserContext(), user.ID)
	if err != nil {
		return respondError(c, h.log, err)
	}

	resp := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		resp = append(resp, newCategoryResponse(&categories[i]))
	}
	return c.JSON(resp)
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	user := currentUser(c)

	var input service.CategoryInput
	if err := c.BodyParser(&input); err != nil {
		return badBody(c)
	}

	category, err := h.categories.Create(c.UserContext(), user.ID, input)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newCategoryResponse(category))
}

func (h *CategoryHandler) Retrieve(c *fiber.Ctx) error {
	user := currentUser(c)
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}

	category, err := h.categories.Get(c.UserContext(), user.ID, id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(newCategoryResponse(category))
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	user := currentUser(c)
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}

	var input service.CategoryInput
	if err := c.BodyParser(&input); err != nil {
		return badBody(c)
	}

	category, err := h.categories.Update(c.UserContext(), user.ID, id, input)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(newCategoryResponse(category))
}

func (h *CategoryHandler) PartialUpdate(c *fiber.Ctx) error {
	user := currentUser(c)
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}

	var patch service.CategoryPatch
	if err := c.BodyParser(&patch); err != nil {
		return badBody(c)
	}

	category, err := h.categories.Patch(c.UserContext(), user.ID, id, patch)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(newCategoryResponse(category))
}

func (h *CategoryHandler) Destroy(c *fiber.Ctx) error {
	user := currentUser(c)
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}

	if err := h.categories.Delete(c.UserContext(), user.ID, id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
