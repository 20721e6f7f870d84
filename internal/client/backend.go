package client

import (
	"context"
	"errors"

	"github.com/taskdeck/backend/internal/core/ports"
	"github.com/taskdeck/backend/internal/domain"
)

// ErrUnavailable marks connectivity failures, as opposed to errors the server
// actively returned. The controller falls back to the local cache on these.
var ErrUnavailable = errors.New("client: server unreachable")

// Backend is the task source a Controller drives. The server-backed variant
// talks to the REST API, the standalone variant to the local store; both obey
// the same CRUD contract.
type Backend interface {
	List(ctx context.Context, filter domain.Filter) ([]domain.Task, error)
	Create(ctx context.Context, text string) (*domain.Task, error)
	Update(ctx context.Context, id, text string, completed bool) (*domain.Task, error)
	Toggle(ctx context.Context, id string) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context, filter domain.Filter) (int64, error)
	Stats(ctx context.Context) (domain.Stats, error)
	Export(ctx context.Context) (*ports.ExportData, error)
	Import(ctx context.Context, tasks []domain.Task, replace bool) (int, error)
}

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
	LevelOffline Level = "offline"
)

// Notifier receives user-facing notifications. May be nil.
type Notifier func(level Level, message string)
