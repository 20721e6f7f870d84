package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/taskdeck/backend/internal/config"
	"github.com/taskdeck/backend/internal/core/services"
	"github.com/taskdeck/backend/internal/infrastructure/db"
	"github.com/taskdeck/backend/internal/infrastructure/logger"
	"github.com/taskdeck/backend/internal/transport/http/handlers"
	"gorm.io/gorm"
)

type RouterConfig struct {
	DB     *gorm.DB
	Logger *logger.Logger
	Config *config.Config
}

func SetupRoutes(app *fiber.App, cfg RouterConfig) {
	taskRepo := db.NewTaskRepository(cfg.DB, cfg.Logger)
	taskService := services.NewTaskService(taskRepo, cfg.Logger)

	taskHandler := handlers.NewTaskHandler(taskService, cfg.Logger)
	statsHandler := handlers.NewStatsHandler(taskService, cfg.Logger)
	backupHandler := handlers.NewBackupHandler(taskService, cfg.Logger)

	api := app.Group("/api")

	tasks := api.Group("/tasks")
	tasks.Get("/", taskHandler.ListTasks)
	tasks.Post("/", taskHandler.CreateTask)
	tasks.Delete("/", taskHandler.BulkDeleteTasks)
	tasks.Put("/:id", taskHandler.UpdateTask)
	tasks.Patch("/:id/toggle", taskHandler.ToggleTask)
	tasks.Delete("/:id", taskHandler.DeleteTask)

	api.Get("/stats", statsHandler.GetStats)
	api.Get("/export", backupHandler.ExportTasks)
	api.Post("/import", backupHandler.ImportTasks)
}
