package ports

import (
	"context"

	"github.com/taskdeck/backend/internal/domain"
)

type TaskRepository interface {
	// List returns tasks matching the filter, newest first.
	List(ctx context.Context, filter domain.Filter) ([]domain.Task, error)
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	Create(ctx context.Context, task *domain.Task) error
	// Update saves all columns; gorm.ErrRecordNotFound when the id is unknown.
	Update(ctx context.Context, task *domain.Task) error
	// Delete removes one row; gorm.ErrRecordNotFound when the id is unknown.
	Delete(ctx context.Context, id string) error
	// DeleteByFilter removes matching rows and reports how many went away.
	DeleteByFilter(ctx context.Context, filter domain.Filter) (int64, error)
	Counts(ctx context.Context) (domain.Stats, error)
	// Import inserts tasks in one transaction, optionally clearing the table
	// first. Returns the number of rows inserted.
	Import(ctx context.Context, tasks []domain.Task, replace bool) (int, error)
}
