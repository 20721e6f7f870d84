package services

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/backend/internal/core/ports"
	"github.com/taskdeck/backend/internal/domain"
	"github.com/taskdeck/backend/internal/infrastructure/db"
	"github.com/taskdeck/backend/internal/infrastructure/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var _ ports.TaskService = (*TaskService)(nil)

func newTestService(t *testing.T) *TaskService {
	t.Helper()

	database, err := gorm.Open(
		sqlite.Open(filepath.Join(t.TempDir(), "tasks.db")),
		&gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)},
	)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations(database))

	repo := db.NewTaskRepository(database, logger.Nop())
	return NewTaskService(repo, logger.Nop())
}

func TestCreateRejectsBlankText(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, text := range []string{"", "   ", "\t\n"} {
		_, err := svc.Create(ctx, text)
		assert.ErrorIs(t, err, ErrTaskEmptyText, "text %q", text)
	}

	tasks, err := svc.List(ctx, domain.FilterAll)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestCreateTrimsAndDefaults(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, "  buy milk  ")
	require.NoError(t, err)
	assert.Equal(t, "buy milk", task.Text)
	assert.False(t, task.Completed)
	assert.Nil(t, task.CompletedAt)
	assert.NotEmpty(t, task.ID)
	assert.False(t, task.CreatedAt.IsZero())
}

func TestCreateGeneratesUniqueIDs(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		task, err := svc.Create(ctx, "task")
		require.NoError(t, err)
		_, dup := seen[task.ID]
		require.False(t, dup, "duplicate id %s", task.ID)
		seen[task.ID] = struct{}{}
	}
}

func TestToggleTwiceRestoresState(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, "write tests")
	require.NoError(t, err)

	toggled, err := svc.Toggle(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)
	require.NotNil(t, toggled.CompletedAt)

	back, err := svc.Toggle(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, back.Completed)
	assert.Nil(t, back.CompletedAt)
}

func TestToggleUnknownID(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Toggle(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestUpdate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, "original")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, task.ID, ports.UpdateTaskInput{Text: "revised", Completed: true})
	require.NoError(t, err)
	assert.Equal(t, "revised", updated.Text)
	assert.True(t, updated.Completed)
	require.NotNil(t, updated.CompletedAt)
	assert.Equal(t, task.CreatedAt.Unix(), updated.CreatedAt.Unix())

	reopened, err := svc.Update(ctx, task.ID, ports.UpdateTaskInput{Text: "revised", Completed: false})
	require.NoError(t, err)
	assert.False(t, reopened.Completed)
	assert.Nil(t, reopened.CompletedAt)

	_, err = svc.Update(ctx, task.ID, ports.UpdateTaskInput{Text: "  "})
	assert.ErrorIs(t, err, ErrTaskEmptyText)

	_, err = svc.Update(ctx, "missing", ports.UpdateTaskInput{Text: "x"})
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestListFilterPartition(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, text := range []string{"one", "two", "three"} {
		_, err := svc.Create(ctx, text)
		require.NoError(t, err)
	}
	all, err := svc.List(ctx, domain.FilterAll)
	require.NoError(t, err)
	require.Len(t, all, 3)

	_, err = svc.Toggle(ctx, all[0].ID)
	require.NoError(t, err)

	pending, err := svc.List(ctx, domain.FilterPending)
	require.NoError(t, err)
	completed, err := svc.List(ctx, domain.FilterCompleted)
	require.NoError(t, err)

	assert.Len(t, pending, 2)
	assert.Len(t, completed, 1)
	assert.Equal(t, len(all), len(pending)+len(completed))
	for _, task := range pending {
		assert.False(t, task.Completed)
	}
	for _, task := range completed {
		assert.True(t, task.Completed)
	}
}

func TestListNewestFirst(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, "first")
	require.NoError(t, err)
	second, err := svc.Create(ctx, "second")
	require.NoError(t, err)

	tasks, err := svc.List(ctx, domain.FilterAll)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.False(t, tasks[0].CreatedAt.Before(tasks[1].CreatedAt))
	_ = first
	_ = second
}

func TestDeleteUnknownLeavesStoreUnchanged(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "keep me")
	require.NoError(t, err)

	err = svc.Delete(ctx, "missing")
	assert.ErrorIs(t, err, ErrTaskNotFound)

	tasks, err := svc.List(ctx, domain.FilterAll)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestClearCompleted(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	var completedIDs []string
	for i, text := range []string{"a", "b", "c", "d"} {
		task, err := svc.Create(ctx, text)
		require.NoError(t, err)
		if i%2 == 0 {
			_, err := svc.Toggle(ctx, task.ID)
			require.NoError(t, err)
			completedIDs = append(completedIDs, task.ID)
		}
	}

	count, err := svc.Clear(ctx, domain.FilterCompleted)
	require.NoError(t, err)
	assert.Equal(t, int64(len(completedIDs)), count)

	remaining, err := svc.List(ctx, domain.FilterAll)
	require.NoError(t, err)
	assert.Len(t, remaining, 2)
	for _, task := range remaining {
		assert.False(t, task.Completed)
	}
}

func TestClearAll(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, text := range []string{"a", "b"} {
		_, err := svc.Create(ctx, text)
		require.NoError(t, err)
	}

	count, err := svc.Clear(ctx, domain.FilterAll)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	_, err = svc.Clear(ctx, domain.FilterPending)
	assert.ErrorIs(t, err, ErrInvalidClearFilter)
}

func TestStats(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Stats{}, stats)

	task, err := svc.Create(ctx, "buy milk")
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, task.ID)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "walk dog")
	require.NoError(t, err)

	stats, err = svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Stats{Total: 2, Completed: 1, Pending: 1}, stats)
}

func TestExportImportRoundTrip(t *testing.T) {
	src := newTestService(t)
	dst := newTestService(t)
	ctx := context.Background()

	milk, err := src.Create(ctx, "buy milk")
	require.NoError(t, err)
	_, err = src.Toggle(ctx, milk.ID)
	require.NoError(t, err)
	_, err = src.Create(ctx, "walk dog")
	require.NoError(t, err)

	data, err := src.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExportVersion, data.Version)
	assert.Equal(t, 2, data.TotalTasks)
	require.Len(t, data.Tasks, 2)

	payload, err := json.Marshal(map[string]any{
		"tasks":           data.Tasks,
		"replaceExisting": true,
	})
	require.NoError(t, err)

	result, err := dst.Import(ctx, payload)
	require.NoError(t, err)
	assert.Equal(t, 2, result.ImportedCount)
	assert.Equal(t, 2, result.TotalTasks)

	imported, err := dst.List(ctx, domain.FilterAll)
	require.NoError(t, err)
	require.Len(t, imported, 2)

	byID := make(map[string]domain.Task)
	for _, task := range imported {
		byID[task.ID] = task
	}
	for _, want := range data.Tasks {
		got, ok := byID[want.ID]
		require.True(t, ok, "task %s not imported", want.ID)
		assert.Equal(t, want.Text, got.Text)
		assert.Equal(t, want.Completed, got.Completed)
		if want.Completed {
			assert.NotNil(t, got.CompletedAt)
		} else {
			assert.Nil(t, got.CompletedAt)
		}
	}
}

func TestImportReplaceClearsExisting(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "old task")
	require.NoError(t, err)

	payload := []byte(`{"tasks":[{"text":"fresh"}],"replaceExisting":true}`)
	result, err := svc.Import(ctx, payload)
	require.NoError(t, err)
	assert.Equal(t, 1, result.ImportedCount)

	tasks, err := svc.List(ctx, domain.FilterAll)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "fresh", tasks[0].Text)
}

func TestImportBackfillsIDsAndTimestamps(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	payload := []byte(`{"tasks":[{"text":"no id here","completed":true}]}`)
	result, err := svc.Import(ctx, payload)
	require.NoError(t, err)
	assert.Equal(t, 1, result.ImportedCount)

	tasks, err := svc.List(ctx, domain.FilterAll)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.NotEmpty(t, tasks[0].ID)
	assert.False(t, tasks[0].CreatedAt.IsZero())
	assert.True(t, tasks[0].Completed)
	assert.NotNil(t, tasks[0].CompletedAt)
}

func TestImportAcceptsSnakeCaseTimestamps(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	payload := []byte(`{"tasks":[{"text":"legacy export","created_at":"2024-02-01T10:00:00Z","updated_at":"2024-02-02T10:00:00Z"}]}`)
	_, err := svc.Import(ctx, payload)
	require.NoError(t, err)

	tasks, err := svc.List(ctx, domain.FilterAll)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, 2024, tasks[0].CreatedAt.Year())
}

func TestImportRejectsBadPayloads(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		payload string
		wantErr error
	}{
		{"not json", `{{{`, ErrImportNotArray},
		{"root array", `[]`, ErrImportNotArray},
		{"tasks missing", `{"replaceExisting":true}`, ErrImportNotArray},
		{"tasks not array", `{"tasks":"nope"}`, ErrImportNotArray},
		{"row missing text", `{"tasks":[{"completed":true}]}`, ErrImportInvalid},
		{"row text wrong type", `{"tasks":[{"text":42}]}`, ErrImportInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Import(ctx, []byte(tt.payload))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	tasks, err := svc.List(ctx, domain.FilterAll)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}
