package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/taskdeck/backend/internal/core/ports"
	"github.com/taskdeck/backend/internal/domain"
	"github.com/taskdeck/backend/internal/infrastructure/logger"
	"gorm.io/gorm"
)

const ExportVersion = "1.0"

type TaskService struct {
	repo ports.TaskRepository
	log  *logger.Logger
}

func NewTaskService(repo ports.TaskRepository, log *logger.Logger) *TaskService {
	return &TaskService{repo: repo, log: log}
}

func (s *TaskService) List(ctx context.Context, filter domain.Filter) ([]domain.Task, error) {
	return s.repo.List(ctx, filter)
}

func (s *TaskService) Create(ctx context.Context, text string) (*domain.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrTaskEmptyText
	}

	now := time.Now().UTC()
	task := &domain.Task{
		ID:        domain.NewTaskID(),
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}
	s.log.Infow("task_created", "id", task.ID)
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, id string, input ports.UpdateTaskInput) (*domain.Task, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, ErrTaskEmptyText
	}

	now := time.Now().UTC()
	task := &domain.Task{
		ID:        id,
		Text:      text,
		Completed: input.Completed,
		UpdatedAt: now,
	}
	if input.Completed {
		task.CompletedAt = &now
	}

	if err := s.repo.Update(ctx, task); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Infow("task_updated", "id", id, "completed", input.Completed)
	return updated, nil
}

func (s *TaskService) Toggle(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	task.Completed = !task.Completed
	task.UpdatedAt = now
	if task.Completed {
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}

	if err := s.repo.Update(ctx, task); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	s.log.Infow("task_toggled", "id", id, "completed", task.Completed)
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	return nil
}

func (s *TaskService) Clear(ctx context.Context, filter domain.Filter) (int64, error) {
	if filter != domain.FilterCompleted && filter != domain.FilterAll {
		return 0, ErrInvalidClearFilter
	}
	return s.repo.DeleteByFilter(ctx, filter)
}

func (s *TaskService) Stats(ctx context.Context) (domain.Stats, error) {
	return s.repo.Counts(ctx)
}

func (s *TaskService) Export(ctx context.Context) (*ports.ExportData, error) {
	tasks, err := s.repo.List(ctx, domain.FilterAll)
	if err != nil {
		return nil, err
	}
	return &ports.ExportData{
		Tasks:      tasks,
		ExportDate: time.Now().UTC(),
		Version:    ExportVersion,
		TotalTasks: len(tasks),
	}, nil
}

// importSchema gates every import before a single row is written. Task rows
// only have to carry text; ids and timestamps are backfilled.
var importSchema = jsonschema.MustCompileString("import.json", `{
	"type": "object",
	"required": ["tasks"],
	"properties": {
		"tasks": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["text"],
				"properties": {
					"id": {"type": "string"},
					"text": {"type": "string"},
					"completed": {"type": "boolean"}
				}
			}
		},
		"replaceExisting": {"type": "boolean"}
	}
}`)

type importTask struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`

	// Exports written by older builds used snake_case timestamps; accept both.
	CreatedAt        *time.Time `json:"createdAt"`
	CreatedAtSnake   *time.Time `json:"created_at"`
	CompletedAt      *time.Time `json:"completedAt"`
	CompletedAtSnake *time.Time `json:"completed_at"`
	UpdatedAt        *time.Time `json:"updatedAt"`
	UpdatedAtSnake   *time.Time `json:"updated_at"`
}

type importRequest struct {
	Tasks           []importTask `json:"tasks"`
	ReplaceExisting bool         `json:"replaceExisting"`
}

func firstTime(a, b *time.Time, fallback time.Time) time.Time {
	if a != nil {
		return *a
	}
	if b != nil {
		return *b
	}
	return fallback
}

func (s *TaskService) Import(ctx context.Context, payload []byte) (ports.ImportResult, error) {
	var doc any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return ports.ImportResult{}, ErrImportNotArray
	}
	if err := importSchema.Validate(doc); err != nil {
		s.log.Warnw("task_import_rejected", "error", err)
		obj, ok := doc.(map[string]any)
		if !ok {
			return ports.ImportResult{}, ErrImportNotArray
		}
		if _, isArray := obj["tasks"].([]any); !isArray {
			return ports.ImportResult{}, ErrImportNotArray
		}
		return ports.ImportResult{}, ErrImportInvalid
	}

	var req importRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return ports.ImportResult{}, ErrImportInvalid
	}

	now := time.Now().UTC()
	tasks := make([]domain.Task, 0, len(req.Tasks))
	for _, in := range req.Tasks {
		id := in.ID
		if id == "" {
			id = domain.NewTaskID()
		}
		task := domain.Task{
			ID:        id,
			Text:      in.Text,
			Completed: in.Completed,
			CreatedAt: firstTime(in.CreatedAt, in.CreatedAtSnake, now),
			UpdatedAt: firstTime(in.UpdatedAt, in.UpdatedAtSnake, now),
		}
		// Reestablish the completedAt/completed invariant on the way in.
		if in.Completed {
			ts := firstTime(in.CompletedAt, in.CompletedAtSnake, task.UpdatedAt)
			task.CompletedAt = &ts
		}
		tasks = append(tasks, task)
	}

	inserted, err := s.repo.Import(ctx, tasks, req.ReplaceExisting)
	if err != nil {
		return ports.ImportResult{}, err
	}

	s.log.Infow("task_import_ok", "imported", inserted, "replace", req.ReplaceExisting)
	return ports.ImportResult{
		ImportedCount: inserted,
		TotalTasks:    len(req.Tasks),
	}, nil
}
