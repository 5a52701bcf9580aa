package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"task-planner/internal/service"
)

// TaskHandler exposes CRUD for the caller's tasks.
type TaskHandler struct {
	tasks *service.TaskService
	log   *logrus.Logger
}

func NewTaskHandler(tasks *service.TaskService, log *logrus.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, log: log}
}

func (h *TaskHandler) List(c *fiber.Ctx) error {
	user := currentUser(c)

	tasks, err := h.tasks.List(c.UserContext(), user.ID)
	if err != nil {
		return respondError(c, h.log, err)
	}

	resp := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		resp = append(resp, newTaskResponse(&tasks[i], user))
	}
	return c.JSON(resp)
}

func (h *TaskHandler) Create(c *fiber.Ctx) error {
	user := currentUser(c)

	var input service.TaskInput
	if err := c.BodyParser(&input); err != nil {
		return badBody(c)
	}

	task, err := h.tasks.Create(c.UserContext(), user.ID, input)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newTaskResponse(task, user))
}

func (h *TaskHandler) Retrieve(c *fiber.Ctx) error {
	user := currentUser(c)
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}

	task, err := h.tasks.Get(c.UserContext(), user.ID, id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(newTaskResponse(task, user))
}

func (h *TaskHandler) Update(c *fiber.Ctx) error {
	user := currentUser(c)
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}

	var input service.TaskInput
	if err := c.BodyParser(&input); err != nil {
		return badBody(c)
	}

	task, err := h.tasks.Update(c.UserContext(), user.ID, id, input)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(newTaskResponse(task, user))
}

func (h *TaskHandler) PartialUpdate(c *fiber.Ctx) error {
	user := currentUser(c)
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}

	var patch service.TaskPatch
	if err := c.BodyParser(&patch); err != nil {
		return badBody(c)
	}

	task, err := h.tasks.Patch(c.UserContext(), user.ID, id, patch)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(newTaskResponse(task, user))
}

func (h *TaskHandler) Destroy(c *fiber.Ctx) error {
	user := currentUser(c)
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}

	if err := h.tasks.Delete(c.UserContext(), user.ID, id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
