package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/taskdeck/backend/internal/core/ports"
	"github.com/taskdeck/backend/internal/core/services"
	"github.com/taskdeck/backend/internal/domain"
)

// APIBackend is the server-backed variant: every operation is one request to
// the REST API. No timeouts beyond the transport defaults; a hung request
// hangs until the stack gives up.
type APIBackend struct {
	baseURL string
	http    *http.Client
}

func NewAPIBackend(baseURL string) *APIBackend {
	return &APIBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

func (b *APIBackend) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := b.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var envelope struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		switch resp.StatusCode {
		case http.StatusNotFound:
			return services.ErrTaskNotFound
		default:
			return &apiError{Status: resp.StatusCode, Message: envelope.Error}
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (b *APIBackend) List(ctx context.Context, filter domain.Filter) ([]domain.Task, error) {
	var tasks []domain.Task
	path := "/tasks?filter=" + url.QueryEscape(string(filter))
	if err := b.do(ctx, http.MethodGet, path, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (b *APIBackend) Create(ctx context.Context, text string) (*domain.Task, error) {
	var task domain.Task
	payload := map[string]string{"text": text}
	if err := b.do(ctx, http.MethodPost, "/tasks", payload, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (b *APIBackend) Update(ctx context.Context, id, text string, completed bool) (*domain.Task, error) {
	var task domain.Task
	payload := map[string]any{"text": text, "completed": completed}
	if err := b.do(ctx, http.MethodPut, "/tasks/"+url.PathEscape(id), payload, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (b *APIBackend) Toggle(ctx context.Context, id string) (*domain.Task, error) {
	var task domain.Task
	if err := b.do(ctx, http.MethodPatch, "/tasks/"+url.PathEscape(id)+"/toggle", nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (b *APIBackend) Delete(ctx context.Context, id string) error {
	return b.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil)
}

func (b *APIBackend) Clear(ctx context.Context, filter domain.Filter) (int64, error) {
	var result struct {
		DeletedCount int64 `json:"deletedCount"`
	}
	path := "/tasks?filter=" + url.QueryEscape(string(filter))
	if err := b.do(ctx, http.MethodDelete, path, nil, &result); err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (b *APIBackend) Stats(ctx context.Context) (domain.Stats, error) {
	var stats domain.Stats
	if err := b.do(ctx, http.MethodGet, "/stats", nil, &stats); err != nil {
		return domain.Stats{}, err
	}
	return stats, nil
}

func (b *APIBackend) Export(ctx context.Context) (*ports.ExportData, error) {
	var data ports.ExportData
	if err := b.do(ctx, http.MethodGet, "/export", nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (b *APIBackend) Import(ctx context.Context, tasks []domain.Task, replace bool) (int, error) {
	payload := map[string]any{
		"tasks":           tasks,
		"replaceExisting": replace,
	}
	var result struct {
		ImportedCount int `json:"importedCount"`
	}
	if err := b.do(ctx, http.MethodPost, "/import", payload, &result); err != nil {
		return 0, err
	}
	return result.ImportedCount, nil
}
