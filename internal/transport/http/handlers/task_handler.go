package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/taskdeck/backend/internal/core/ports"
	"github.com/taskdeck/backend/internal/core/services"
	"github.com/taskdeck/backend/internal/domain"
	"github.com/taskdeck/backend/internal/infrastructure/logger"
	"github.com/taskdeck/backend/internal/transport/http/dto"
)

type TaskHandler struct {
	service ports.TaskService
	logger  *logger.Logger
}

func NewTaskHandler(service ports.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{service: service, logger: logger}
}

func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	filter := domain.ParseFilter(c.Query("filter"))

	tasks, err := h.service.List(c.Context(), filter)
	if err != nil {
		h.logger.Errorw("tasks_list_failed", "filter", filter, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "internal server error",
		})
	}

	return c.JSON(dto.TasksToResponse(tasks))
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Warnw("task_create_body_parse_failed", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
		})
	}

	task, err := h.service.Create(c.Context(), req.Text)
	if err != nil {
		if errors.Is(err, services.ErrTaskEmptyText) {
			h.logger.Warnw("task_create_blank_text")
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: "task text is required",
			})
		}
		h.logger.Errorw("task_create_failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "internal server error",
		})
	}

	h.logger.Infow("task_create_success", "id", task.ID)
	return c.Status(fiber.StatusCreated).JSON(dto.TaskToResponse(task))
}

func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	id := c.Params("id")

	var req dto.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Warnw("task_update_body_parse_failed", "id", id, "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
		})
	}

	task, err := h.service.Update(c.Context(), id, ports.UpdateTaskInput{
		Text:      req.Text,
		Completed: req.Completed,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskEmptyText):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: "task text is required",
			})
		case errors.Is(err, services.ErrTaskNotFound):
			h.logger.Warnw("task_update_not_found", "id", id)
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "task not found",
			})
		default:
			h.logger.Errorw("task_update_failed", "id", id, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: "internal server error",
			})
		}
	}

	return c.JSON(dto.TaskToResponse(task))
}

func (h *TaskHandler) ToggleTask(c *fiber.Ctx) error {
	id := c.Params("id")

	task, err := h.service.Toggle(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			h.logger.Warnw("task_toggle_not_found", "id", id)
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "task not found",
			})
		}
		h.logger.Errorw("task_toggle_failed", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "internal server error",
		})
	}

	h.logger.Infow("task_toggle_success", "id", id, "completed", task.Completed)
	return c.JSON(dto.TaskToResponse(task))
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			h.logger.Warnw("task_delete_not_found", "id", id)
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "task not found",
			})
		}
		h.logger.Errorw("task_delete_failed", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "internal server error",
		})
	}

	h.logger.Infow("task_delete_success", "id", id)
	return c.SendStatus(fiber.StatusNoContent)
}

// BulkDeleteTasks handles DELETE /api/tasks?filter=..., which shares a route
// with single delete but takes the filter from the query string.
func (h *TaskHandler) BulkDeleteTasks(c *fiber.Ctx) error {
	filter, ok := domain.ParseClearFilter(c.Query("filter"))
	if !ok {
		h.logger.Warnw("tasks_bulk_delete_bad_filter", "filter", c.Query("filter"))
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid filter, use \"completed\" or \"all\"",
		})
	}

	count, err := h.service.Clear(c.Context(), filter)
	if err != nil {
		h.logger.Errorw("tasks_bulk_delete_failed", "filter", filter, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "internal server error",
		})
	}

	h.logger.Infow("tasks_bulk_delete_success", "filter", filter, "count", count)
	return c.JSON(dto.BulkDeleteResponse{DeletedCount: count})
}
