package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/taskdeck/backend/internal/core/ports"
	"github.com/taskdeck/backend/internal/core/services"
	"github.com/taskdeck/backend/internal/infrastructure/logger"
	"github.com/taskdeck/backend/internal/transport/http/dto"
)

// BackupHandler serves the export/import surface.
type BackupHandler struct {
	service ports.TaskService
	logger  *logger.Logger
}

func NewBackupHandler(service ports.TaskService, logger *logger.Logger) *BackupHandler {
	return &BackupHandler{service: service, logger: logger}
}

func (h *BackupHandler) ExportTasks(c *fiber.Ctx) error {
	data, err := h.service.Export(c.Context())
	if err != nil {
		h.logger.Errorw("export_failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "internal server error",
		})
	}

	filename := fmt.Sprintf("taskdeck-backup-%s.json", time.Now().UTC().Format("2006-01-02"))
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))

	h.logger.Infow("export_success", "total", data.TotalTasks)
	return c.JSON(dto.ExportToResponse(data))
}

func (h *BackupHandler) ImportTasks(c *fiber.Ctx) error {
	result, err := h.service.Import(c.Context(), c.Body())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrImportNotArray), errors.Is(err, services.ErrImportInvalid):
			h.logger.Warnw("import_rejected", "error", err)
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: err.Error(),
			})
		default:
			h.logger.Errorw("import_failed", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: "internal server error",
			})
		}
	}

	h.logger.Infow("import_success", "imported", result.ImportedCount)
	return c.JSON(dto.ImportResponse{
		Message:       "tasks imported successfully",
		ImportedCount: result.ImportedCount,
		TotalTasks:    result.TotalTasks,
	})
}
