package ports

import (
	"context"
	"time"

	"github.com/taskdeck/backend/internal/domain"
)

type UpdateTaskInput struct {
	Text      string
	Completed bool
}

// ExportData is the backup envelope written by export and read by import.
type ExportData struct {
	Tasks      []domain.Task `json:"tasks"`
	ExportDate time.Time     `json:"exportDate"`
	Version    string        `json:"version"`
	TotalTasks int           `json:"totalTasks"`
}

type ImportResult struct {
	ImportedCount int
	TotalTasks    int
}

type TaskService interface {
	List(ctx context.Context, filter domain.Filter) ([]domain.Task, error)
	Create(ctx context.Context, text string) (*domain.Task, error)
	Update(ctx context.Context, id string, input UpdateTaskInput) (*domain.Task, error)
	Toggle(ctx context.Context, id string) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context, filter domain.Filter) (int64, error)
	Stats(ctx context.Context) (domain.Stats, error)
	Export(ctx context.Context) (*ExportData, error)
	// Import validates the raw request document against the import schema
	// before touching the store.
	Import(ctx context.Context, payload []byte) (ImportResult, error)
}
