package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"task-planner/internal/repository"
	"task-planner/internal/service"
)

// Deps bundles everything the HTTP layer needs.
type Deps struct {
	Auth       *service.AuthService
	Tasks      *service.TaskService
	Categories *service.CategoryService
	Users      *repository.UserRepository
	Log        *logrus.Logger
}

// NewApp builds the fiber application with all routes registered.
func NewApp(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "task-planner",
		DisableStartupMessage: true,
	})
	Setup(app, deps)
	return app
}

// Setup registers all routes on the given app.
func Setup(app *fiber.App, deps Deps) {
	authHandler := NewAuthHandler(deps.Auth, deps.Log)
	taskHandler := NewTaskHandler(deps.Tasks, deps.Log)
	categoryHandler := NewCategoryHandler(deps.Categories, deps.Log)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	protected := api.Group("", AuthRequired(deps.Auth, deps.Users))

	tasks := protected.Group("/tasks")
	tasks.Get("/", taskHandler.List)
	tasks.Post("/", taskHandler.Create)
	tasks.Get("/:id", taskHandler.Retrieve)
	tasks.Put("/:id", taskHandler.Update)
	tasks.Patch("/:id", taskHandler.PartialUpdate)
	tasks.Delete("/:id", taskHandler.Destroy)

	categories := protected.Group("/categories")
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/:id", categoryHandler.Retrieve)
	categories.Put("/:id", categoryHandler.Update)
	categories.Patch("/:id", categoryHandler.PartialUpdate)
	categories.Delete("/:id", categoryHandler.Destroy)
}
