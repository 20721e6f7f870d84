package dto

import (
	"time"

	"github.com/taskdeck/backend/internal/core/ports"
	"github.com/taskdeck/backend/internal/domain"
)

type CreateTaskRequest struct {
	Text string `json:"text"`
}

type UpdateTaskRequest struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// TaskResponse is the wire shape of a task: camelCase fields, a real boolean
// regardless of how the dialect stores it, and completedAt null while the
// task is open.
type TaskResponse struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func TaskToResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Text:        t.Text,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func TasksToResponse(tasks []domain.Task) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i := range tasks {
		responses[i] = TaskToResponse(&tasks[i])
	}
	return responses
}

type StatsResponse struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
	Pending   int64 `json:"pending"`
}

type BulkDeleteResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

type ExportResponse struct {
	Tasks      []TaskResponse `json:"tasks"`
	ExportDate time.Time      `json:"exportDate"`
	Version    string         `json:"version"`
	TotalTasks int            `json:"totalTasks"`
}

func ExportToResponse(data *ports.ExportData) ExportResponse {
	return ExportResponse{
		Tasks:      TasksToResponse(data.Tasks),
		ExportDate: data.ExportDate,
		Version:    data.Version,
		TotalTasks: data.TotalTasks,
	}
}

type ImportResponse struct {
	Message       string `json:"message"`
	ImportedCount int    `json:"importedCount"`
	TotalTasks    int    `json:"totalTasks"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
