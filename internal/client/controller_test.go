package client

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/backend/internal/core/ports"
	"github.com/taskdeck/backend/internal/core/services"
	"github.com/taskdeck/backend/internal/domain"
)

// fakeBackend records calls and can simulate an unreachable server.
type fakeBackend struct {
	tasks       []domain.Task
	unreachable bool
	statsErr    bool

	createCalls []string
	updateCalls []string
}

func (f *fakeBackend) fail() error {
	if f.unreachable {
		return ErrUnavailable
	}
	return nil
}

func (f *fakeBackend) List(_ context.Context, filter domain.Filter) ([]domain.Task, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	return filter.Apply(f.tasks), nil
}

func (f *fakeBackend) Create(_ context.Context, text string) (*domain.Task, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	f.createCalls = append(f.createCalls, text)
	now := time.Now()
	task := domain.Task{ID: domain.NewTaskID(), Text: text, CreatedAt: now, UpdatedAt: now}
	f.tasks = append([]domain.Task{task}, f.tasks...)
	return &task, nil
}

func (f *fakeBackend) Update(_ context.Context, id, text string, completed bool) (*domain.Task, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	f.updateCalls = append(f.updateCalls, id)
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Text = text
			f.tasks[i].Completed = completed
			out := f.tasks[i]
			return &out, nil
		}
	}
	return nil, services.ErrTaskNotFound
}

func (f *fakeBackend) Toggle(_ context.Context, id string) (*domain.Task, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Completed = !f.tasks[i].Completed
			if f.tasks[i].Completed {
				now := time.Now()
				f.tasks[i].CompletedAt = &now
			} else {
				f.tasks[i].CompletedAt = nil
			}
			out := f.tasks[i]
			return &out, nil
		}
	}
	return nil, services.ErrTaskNotFound
}

func (f *fakeBackend) Delete(_ context.Context, id string) error {
	if err := f.fail(); err != nil {
		return err
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return services.ErrTaskNotFound
}

func (f *fakeBackend) Clear(_ context.Context, filter domain.Filter) (int64, error) {
	if err := f.fail(); err != nil {
		return 0, err
	}
	var keep []domain.Task
	if filter == domain.FilterCompleted {
		for _, t := range f.tasks {
			if !t.Completed {
				keep = append(keep, t)
			}
		}
	}
	deleted := int64(len(f.tasks) - len(keep))
	f.tasks = keep
	return deleted, nil
}

func (f *fakeBackend) Stats(_ context.Context) (domain.Stats, error) {
	if f.statsErr || f.unreachable {
		return domain.Stats{}, ErrUnavailable
	}
	var s domain.Stats
	for _, t := range f.tasks {
		s.Total++
		if t.Completed {
			s.Completed++
		} else {
			s.Pending++
		}
	}
	return s, nil
}

func (f *fakeBackend) Export(_ context.Context) (*ports.ExportData, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	return &ports.ExportData{Tasks: f.tasks, ExportDate: time.Now(), Version: "1.0", TotalTasks: len(f.tasks)}, nil
}

func (f *fakeBackend) Import(_ context.Context, tasks []domain.Task, replace bool) (int, error) {
	if err := f.fail(); err != nil {
		return 0, err
	}
	if replace {
		f.tasks = nil
	}
	f.tasks = append(f.tasks, tasks...)
	return len(tasks), nil
}

type capturedNote struct {
	level   Level
	message string
}

func newTestController(t *testing.T, backend Backend) (*Controller, *Store, *[]capturedNote) {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "tasks.json"))
	notes := &[]capturedNote{}
	ctrl := NewController(ControllerConfig{
		Backend: backend,
		Cache:   store,
		Notifier: func(level Level, message string) {
			*notes = append(*notes, capturedNote{level, message})
		},
	})
	return ctrl, store, notes
}

func hasLevel(notes []capturedNote, level Level) bool {
	for _, n := range notes {
		if n.level == level {
			return true
		}
	}
	return false
}

func TestLoadCachesOnSuccess(t *testing.T) {
	backend := &fakeBackend{tasks: []domain.Task{{ID: "a", Text: "cached"}}}
	ctrl, store, _ := newTestController(t, backend)

	require.NoError(t, ctrl.Load(context.Background()))
	assert.Len(t, ctrl.Tasks(), 1)
	assert.True(t, ctrl.Online())

	cached, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, cached, 1)
}

func TestLoadFallsBackToCacheWhenUnreachable(t *testing.T) {
	backend := &fakeBackend{tasks: []domain.Task{{ID: "a", Text: "server copy"}}}
	ctrl, _, notes := newTestController(t, backend)

	require.NoError(t, ctrl.Load(context.Background()))

	backend.unreachable = true
	require.NoError(t, ctrl.Load(context.Background()))

	assert.False(t, ctrl.Online())
	assert.Len(t, ctrl.Tasks(), 1)
	assert.Equal(t, "server copy", ctrl.Tasks()[0].Text)
	assert.True(t, hasLevel(*notes, LevelOffline))
}

func TestResyncOverwritesOfflineState(t *testing.T) {
	backend := &fakeBackend{tasks: []domain.Task{{ID: "a", Text: "v1"}}}
	ctrl, store, _ := newTestController(t, backend)
	ctx := context.Background()

	require.NoError(t, ctrl.Load(ctx))
	require.NoError(t, ctrl.SetOnline(ctx, false))
	assert.False(t, ctrl.Online())

	// The server's state moved on while the client was offline. Reconnecting
	// takes the server's copy wholesale; nothing local survives.
	backend.tasks = []domain.Task{{ID: "b", Text: "v2"}}
	require.NoError(t, ctrl.SetOnline(ctx, true))

	assert.True(t, ctrl.Online())
	require.Len(t, ctrl.Tasks(), 1)
	assert.Equal(t, "b", ctrl.Tasks()[0].ID)

	cached, err := store.Load()
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, "b", cached[0].ID)
}

func TestSubmitCreatesAndPrepends(t *testing.T) {
	backend := &fakeBackend{}
	ctrl, _, _ := newTestController(t, backend)
	ctx := context.Background()

	require.NoError(t, ctrl.Submit(ctx, "first"))
	require.NoError(t, ctrl.Submit(ctx, "second"))

	require.Len(t, ctrl.Tasks(), 2)
	assert.Equal(t, "second", ctrl.Tasks()[0].Text)
	assert.Equal(t, []string{"first", "second"}, backend.createCalls)
}

func TestSubmitBlankIsIgnored(t *testing.T) {
	backend := &fakeBackend{}
	ctrl, _, _ := newTestController(t, backend)

	require.NoError(t, ctrl.Submit(context.Background(), "   "))
	assert.Empty(t, backend.createCalls)
	assert.Empty(t, ctrl.Tasks())
}

func TestEditStateMachine(t *testing.T) {
	backend := &fakeBackend{tasks: []domain.Task{{ID: "a", Text: "one"}, {ID: "b", Text: "two"}}}
	ctrl, _, _ := newTestController(t, backend)
	ctx := context.Background()
	require.NoError(t, ctrl.Load(ctx))

	require.True(t, ctrl.StartEdit("a"))
	assert.Equal(t, "a", ctrl.EditingID())

	// Starting a new session replaces the old one, no queuing.
	require.True(t, ctrl.StartEdit("b"))
	assert.Equal(t, "b", ctrl.EditingID())

	// Submit with a pending edit updates instead of creating.
	require.NoError(t, ctrl.Submit(ctx, "two revised"))
	assert.Empty(t, ctrl.EditingID())
	assert.Empty(t, backend.createCalls)
	assert.Equal(t, []string{"b"}, backend.updateCalls)

	for _, task := range ctrl.Tasks() {
		if task.ID == "b" {
			assert.Equal(t, "two revised", task.Text)
		}
	}

	require.True(t, ctrl.StartEdit("a"))
	ctrl.CancelEdit()
	assert.Empty(t, ctrl.EditingID())
	require.NoError(t, ctrl.Submit(ctx, "a fresh task"))
	assert.Equal(t, []string{"a fresh task"}, backend.createCalls)
}

func TestStartEditUnknownID(t *testing.T) {
	ctrl, _, _ := newTestController(t, &fakeBackend{})
	assert.False(t, ctrl.StartEdit("ghost"))
	assert.Empty(t, ctrl.EditingID())
}

func TestConfirmSlotNewestWins(t *testing.T) {
	backend := &fakeBackend{tasks: []domain.Task{{ID: "a"}, {ID: "b"}}}
	ctrl, _, _ := newTestController(t, backend)
	ctx := context.Background()
	require.NoError(t, ctrl.Load(ctx))

	ctrl.RequestDelete("a")
	ctrl.RequestDelete("b")

	msg, pending := ctrl.PendingConfirm()
	require.True(t, pending)
	assert.NotEmpty(t, msg)

	require.NoError(t, ctrl.Confirm(ctx))

	// Only the second request fired.
	ids := make([]string, 0, len(backend.tasks))
	for _, task := range backend.tasks {
		ids = append(ids, task.ID)
	}
	assert.Equal(t, []string{"a"}, ids)

	_, pending = ctrl.PendingConfirm()
	assert.False(t, pending)
}

func TestDismissConfirmDiscardsAction(t *testing.T) {
	backend := &fakeBackend{tasks: []domain.Task{{ID: "a"}}}
	ctrl, _, _ := newTestController(t, backend)
	ctx := context.Background()
	require.NoError(t, ctrl.Load(ctx))

	ctrl.RequestDelete("a")
	ctrl.DismissConfirm()
	require.NoError(t, ctrl.Confirm(ctx))

	assert.Len(t, backend.tasks, 1)
}

func TestClearCompletedKeepsPending(t *testing.T) {
	now := time.Now()
	backend := &fakeBackend{tasks: []domain.Task{
		{ID: "a", Completed: true, CompletedAt: &now},
		{ID: "b"},
	}}
	ctrl, _, _ := newTestController(t, backend)
	ctx := context.Background()
	require.NoError(t, ctrl.Load(ctx))

	count, err := ctrl.Clear(ctx, domain.FilterCompleted)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.Len(t, ctrl.Tasks(), 1)
	assert.Equal(t, "b", ctrl.Tasks()[0].ID)
}

func TestStatsFallsBackToLocalCount(t *testing.T) {
	now := time.Now()
	backend := &fakeBackend{tasks: []domain.Task{
		{ID: "a", Completed: true, CompletedAt: &now},
		{ID: "b"},
		{ID: "c"},
	}}
	ctrl, _, _ := newTestController(t, backend)
	ctx := context.Background()
	require.NoError(t, ctrl.Load(ctx))

	backend.statsErr = true
	stats := ctrl.Stats(ctx)
	assert.Equal(t, domain.Stats{Total: 3, Completed: 1, Pending: 2}, stats)
}

func TestToggleReplacesInList(t *testing.T) {
	backend := &fakeBackend{tasks: []domain.Task{{ID: "a", Text: "toggle me"}}}
	ctrl, _, _ := newTestController(t, backend)
	ctx := context.Background()
	require.NoError(t, ctrl.Load(ctx))

	require.NoError(t, ctrl.Toggle(ctx, "a"))
	assert.True(t, ctrl.Tasks()[0].Completed)
	assert.NotNil(t, ctrl.Tasks()[0].CompletedAt)

	require.NoError(t, ctrl.Toggle(ctx, "a"))
	assert.False(t, ctrl.Tasks()[0].Completed)
	assert.Nil(t, ctrl.Tasks()[0].CompletedAt)
}

func TestMutationFailureNotifiesAndKeepsList(t *testing.T) {
	backend := &fakeBackend{tasks: []domain.Task{{ID: "a", Text: "keep"}}}
	ctrl, _, notes := newTestController(t, backend)
	ctx := context.Background()
	require.NoError(t, ctrl.Load(ctx))

	backend.unreachable = true
	err := ctrl.Toggle(ctx, "a")
	require.Error(t, err)
	assert.True(t, hasLevel(*notes, LevelError))
	assert.Len(t, ctrl.Tasks(), 1)
	assert.False(t, ctrl.Tasks()[0].Completed)
}
