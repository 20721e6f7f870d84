package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/taskdeck/backend/internal/core/ports"
	"github.com/taskdeck/backend/internal/domain"
)

// Controller holds the client-side task state: the ordered list, the active
// filter, at most one edit session and at most one pending confirmation. All
// mutations go through the backend first; the local list mirrors the result.
//
// In the server-backed variant the cache keeps the last successfully fetched
// list so the client stays usable through an outage. Edits made while offline
// are not replayed: the next successful fetch from the server wins.
type Controller struct {
	backend Backend
	cache   *Store
	notify  Notifier

	tasks          []domain.Task
	filter         domain.Filter
	editingID      string
	confirmMessage string
	pendingConfirm func(ctx context.Context) error
	online         bool
}

type ControllerConfig struct {
	Backend Backend
	// Cache holds the offline fallback copy. Nil for the standalone variant,
	// whose backend persists on its own.
	Cache    *Store
	Notifier Notifier
}

func NewController(cfg ControllerConfig) *Controller {
	return &Controller{
		backend: cfg.Backend,
		cache:   cfg.Cache,
		notify:  cfg.Notifier,
		filter:  domain.FilterAll,
		online:  true,
	}
}

func (c *Controller) notifyf(level Level, format string, args ...any) {
	if c.notify != nil {
		c.notify(level, fmt.Sprintf(format, args...))
	}
}

func (c *Controller) Tasks() []domain.Task { return c.tasks }
func (c *Controller) Filter() domain.Filter { return c.filter }
func (c *Controller) EditingID() string    { return c.editingID }
func (c *Controller) Online() bool         { return c.online }

// Load fetches the filtered list from the backend. On failure it falls back
// to the cached copy and reports the client offline.
func (c *Controller) Load(ctx context.Context) error {
	tasks, err := c.backend.List(ctx, c.filter)
	if err != nil {
		return c.fallback(err)
	}

	c.tasks = tasks
	c.markOnline()
	c.saveCache()
	return nil
}

func (c *Controller) fallback(cause error) error {
	if c.cache == nil {
		return cause
	}
	cached, err := c.cache.Load()
	if err != nil {
		return errors.Join(cause, err)
	}
	c.tasks = c.filter.Apply(cached)
	if c.online {
		c.online = false
		c.notifyf(LevelOffline, "server unreachable, using local data")
	}
	return nil
}

func (c *Controller) saveCache() {
	if c.cache == nil {
		return
	}
	if err := c.cache.Save(c.tasks); err != nil {
		c.notifyf(LevelError, "failed to save local copy: %v", err)
	}
}

func (c *Controller) markOnline() {
	if !c.online {
		c.online = true
		c.notifyf(LevelSuccess, "back online, synced with server")
	}
}

// SetOnline records a connectivity transition. Going from offline to online
// re-fetches from the server and overwrites local state; anything written
// while offline is discarded.
func (c *Controller) SetOnline(ctx context.Context, online bool) error {
	if online == c.online {
		return nil
	}
	if !online {
		c.online = false
		c.notifyf(LevelOffline, "offline, changes stay local")
		return nil
	}
	c.online = true
	c.notifyf(LevelSuccess, "back online, syncing")
	return c.Resync(ctx)
}

// Resync re-fetches the filtered list and overwrites local state wholesale.
func (c *Controller) Resync(ctx context.Context) error {
	tasks, err := c.backend.List(ctx, c.filter)
	if err != nil {
		return c.fallback(err)
	}
	c.tasks = tasks
	c.saveCache()
	return nil
}

// Submit adds a task, or saves the active edit session if one is open. Blank
// text is ignored without touching the backend.
func (c *Controller) Submit(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	if c.editingID != "" {
		return c.finishEdit(ctx, text)
	}

	task, err := c.backend.Create(ctx, text)
	if err != nil {
		c.notifyf(LevelError, "failed to add task: %v", err)
		return err
	}

	c.tasks = append([]domain.Task{*task}, c.tasks...)
	c.saveCache()
	c.notifyf(LevelSuccess, "task added")
	return nil
}

// StartEdit opens an edit session for id. A session already in progress is
// silently replaced.
func (c *Controller) StartEdit(id string) bool {
	for _, t := range c.tasks {
		if t.ID == id {
			c.editingID = id
			return true
		}
	}
	return false
}

func (c *Controller) CancelEdit() {
	c.editingID = ""
}

func (c *Controller) finishEdit(ctx context.Context, text string) error {
	id := c.editingID
	c.editingID = ""

	var completed bool
	for _, t := range c.tasks {
		if t.ID == id {
			completed = t.Completed
			break
		}
	}

	task, err := c.backend.Update(ctx, id, text, completed)
	if err != nil {
		c.notifyf(LevelError, "failed to update task: %v", err)
		return err
	}

	c.replace(*task)
	c.saveCache()
	c.notifyf(LevelSuccess, "task updated")
	return nil
}

func (c *Controller) replace(task domain.Task) {
	for i := range c.tasks {
		if c.tasks[i].ID == task.ID {
			c.tasks[i] = task
			return
		}
	}
}

func (c *Controller) Toggle(ctx context.Context, id string) error {
	task, err := c.backend.Toggle(ctx, id)
	if err != nil {
		c.notifyf(LevelError, "failed to toggle task: %v", err)
		return err
	}

	c.replace(*task)
	c.saveCache()
	if task.Completed {
		c.notifyf(LevelSuccess, "task completed")
	} else {
		c.notifyf(LevelSuccess, "task reopened")
	}
	return nil
}

func (c *Controller) Delete(ctx context.Context, id string) error {
	if err := c.backend.Delete(ctx, id); err != nil {
		c.notifyf(LevelError, "failed to delete task: %v", err)
		return err
	}

	kept := c.tasks[:0]
	for _, t := range c.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	c.tasks = kept
	c.saveCache()
	c.notifyf(LevelSuccess, "task deleted")
	return nil
}

func (c *Controller) Clear(ctx context.Context, filter domain.Filter) (int64, error) {
	count, err := c.backend.Clear(ctx, filter)
	if err != nil {
		c.notifyf(LevelError, "failed to clear tasks: %v", err)
		return 0, err
	}

	if filter == domain.FilterAll {
		c.tasks = nil
	} else {
		kept := c.tasks[:0]
		for _, t := range c.tasks {
			if !t.Completed {
				kept = append(kept, t)
			}
		}
		c.tasks = kept
	}
	c.saveCache()
	c.notifyf(LevelSuccess, "%d task(s) removed", count)
	return count, nil
}

// SetFilter switches the active view and re-requests the matching set.
func (c *Controller) SetFilter(ctx context.Context, filter domain.Filter) error {
	c.filter = filter
	return c.Load(ctx)
}

// Stats asks the backend for counters, computing them from the local list
// when the backend cannot answer.
func (c *Controller) Stats(ctx context.Context) domain.Stats {
	stats, err := c.backend.Stats(ctx)
	if err == nil {
		return stats
	}

	var local domain.Stats
	for _, t := range c.tasks {
		local.Total++
		if t.Completed {
			local.Completed++
		} else {
			local.Pending++
		}
	}
	return local
}

// RequestConfirm parks an action behind a confirmation. Only one slot exists;
// a newer request overwrites an older one.
func (c *Controller) RequestConfirm(message string, action func(ctx context.Context) error) {
	c.confirmMessage = message
	c.pendingConfirm = action
}

func (c *Controller) PendingConfirm() (string, bool) {
	return c.confirmMessage, c.pendingConfirm != nil
}

// Confirm fires the pending action and clears the slot.
func (c *Controller) Confirm(ctx context.Context) error {
	action := c.pendingConfirm
	c.pendingConfirm = nil
	c.confirmMessage = ""
	if action == nil {
		return nil
	}
	return action(ctx)
}

// DismissConfirm discards the pending action without running it.
func (c *Controller) DismissConfirm() {
	c.pendingConfirm = nil
	c.confirmMessage = ""
}

// RequestDelete queues a delete behind the confirm slot.
func (c *Controller) RequestDelete(id string) {
	c.RequestConfirm("delete this task?", func(ctx context.Context) error {
		return c.Delete(ctx, id)
	})
}

// RequestClear queues a bulk delete behind the confirm slot.
func (c *Controller) RequestClear(filter domain.Filter) {
	msg := "remove all completed tasks?"
	if filter == domain.FilterAll {
		msg = "remove ALL tasks?"
	}
	c.RequestConfirm(msg, func(ctx context.Context) error {
		_, err := c.Clear(ctx, filter)
		return err
	})
}

func (c *Controller) Export(ctx context.Context) (*ports.ExportData, error) {
	data, err := c.backend.Export(ctx)
	if err != nil {
		c.notifyf(LevelError, "failed to export: %v", err)
		return nil, err
	}
	c.notifyf(LevelSuccess, "exported %d task(s)", data.TotalTasks)
	return data, nil
}

// Import pushes tasks to the backend and reloads the list.
func (c *Controller) Import(ctx context.Context, tasks []domain.Task, replace bool) (int, error) {
	count, err := c.backend.Import(ctx, tasks, replace)
	if err != nil {
		c.notifyf(LevelError, "failed to import: %v", err)
		return 0, err
	}
	if err := c.Load(ctx); err != nil {
		return count, err
	}
	c.notifyf(LevelSuccess, "%d task(s) imported", count)
	return count, nil
}
