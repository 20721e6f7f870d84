package client

import (
	"context"
	"strings"
	"time"

	"github.com/taskdeck/backend/internal/core/ports"
	"github.com/taskdeck/backend/internal/core/services"
	"github.com/taskdeck/backend/internal/domain"
)

// LocalBackend is the standalone variant: it owns the in-memory list and
// persists it wholesale to the store after every mutation. Semantics mirror
// the REST API so the controller cannot tell the two apart.
type LocalBackend struct {
	store *Store
	tasks []domain.Task
}

func NewLocalBackend(store *Store) (*LocalBackend, error) {
	tasks, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &LocalBackend{store: store, tasks: tasks}, nil
}

func (b *LocalBackend) List(_ context.Context, filter domain.Filter) ([]domain.Task, error) {
	filtered := filter.Apply(b.tasks)
	out := make([]domain.Task, len(filtered))
	copy(out, filtered)
	return out, nil
}

func (b *LocalBackend) Create(_ context.Context, text string) (*domain.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, services.ErrTaskEmptyText
	}

	now := time.Now().UTC()
	task := domain.Task{
		ID:        domain.NewTaskID(),
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	b.tasks = append([]domain.Task{task}, b.tasks...)
	if err := b.store.Save(b.tasks); err != nil {
		return nil, err
	}
	return &task, nil
}

func (b *LocalBackend) find(id string) int {
	for i := range b.tasks {
		if b.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (b *LocalBackend) Update(_ context.Context, id, text string, completed bool) (*domain.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, services.ErrTaskEmptyText
	}
	i := b.find(id)
	if i < 0 {
		return nil, services.ErrTaskNotFound
	}

	now := time.Now().UTC()
	task := &b.tasks[i]
	task.Text = text
	task.Completed = completed
	task.UpdatedAt = now
	if completed {
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}

	if err := b.store.Save(b.tasks); err != nil {
		return nil, err
	}
	out := *task
	return &out, nil
}

func (b *LocalBackend) Toggle(_ context.Context, id string) (*domain.Task, error) {
	i := b.find(id)
	if i < 0 {
		return nil, services.ErrTaskNotFound
	}

	now := time.Now().UTC()
	task := &b.tasks[i]
	task.Completed = !task.Completed
	task.UpdatedAt = now
	if task.Completed {
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}

	if err := b.store.Save(b.tasks); err != nil {
		return nil, err
	}
	out := *task
	return &out, nil
}

func (b *LocalBackend) Delete(_ context.Context, id string) error {
	i := b.find(id)
	if i < 0 {
		return services.ErrTaskNotFound
	}
	b.tasks = append(b.tasks[:i], b.tasks[i+1:]...)
	return b.store.Save(b.tasks)
}

func (b *LocalBackend) Clear(_ context.Context, filter domain.Filter) (int64, error) {
	var keep []domain.Task
	switch filter {
	case domain.FilterCompleted:
		for _, t := range b.tasks {
			if !t.Completed {
				keep = append(keep, t)
			}
		}
	case domain.FilterAll:
		keep = nil
	default:
		return 0, services.ErrInvalidClearFilter
	}

	deleted := int64(len(b.tasks) - len(keep))
	b.tasks = keep
	if err := b.store.Save(b.tasks); err != nil {
		return 0, err
	}
	return deleted, nil
}

func (b *LocalBackend) Stats(_ context.Context) (domain.Stats, error) {
	var stats domain.Stats
	for _, t := range b.tasks {
		stats.Total++
		if t.Completed {
			stats.Completed++
		} else {
			stats.Pending++
		}
	}
	return stats, nil
}

func (b *LocalBackend) Export(_ context.Context) (*ports.ExportData, error) {
	tasks := make([]domain.Task, len(b.tasks))
	copy(tasks, b.tasks)
	return &ports.ExportData{
		Tasks:      tasks,
		ExportDate: time.Now().UTC(),
		Version:    services.ExportVersion,
		TotalTasks: len(tasks),
	}, nil
}

func (b *LocalBackend) Import(_ context.Context, tasks []domain.Task, replace bool) (int, error) {
	if replace {
		b.tasks = nil
	}

	now := time.Now().UTC()
	for _, in := range tasks {
		if in.ID == "" {
			in.ID = domain.NewTaskID()
		}
		if in.CreatedAt.IsZero() {
			in.CreatedAt = now
		}
		if in.UpdatedAt.IsZero() {
			in.UpdatedAt = now
		}
		if in.Completed && in.CompletedAt == nil {
			ts := in.UpdatedAt
			in.CompletedAt = &ts
		}
		if !in.Completed {
			in.CompletedAt = nil
		}
		b.tasks = append(b.tasks, in)
	}

	if err := b.store.Save(b.tasks); err != nil {
		return 0, err
	}
	return len(tasks), nil
}
