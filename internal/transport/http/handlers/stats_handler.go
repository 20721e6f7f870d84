package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/taskdeck/backend/internal/core/ports"
	"github.com/taskdeck/backend/internal/infrastructure/logger"
	"github.com/taskdeck/backend/internal/transport/http/dto"
)

type StatsHandler struct {
	service ports.TaskService
	logger  *logger.Logger
}

func NewStatsHandler(service ports.TaskService, logger *logger.Logger) *StatsHandler {
	return &StatsHandler{service: service, logger: logger}
}

func (h *StatsHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		h.logger.Errorw("stats_failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "internal server error",
		})
	}

	return c.JSON(dto.StatsResponse{
		Total:     stats.Total,
		Completed: stats.Completed,
		Pending:   stats.Pending,
	})
}
