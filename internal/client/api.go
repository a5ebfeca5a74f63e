// Package client реализует клиентский слой данных: типизированный HTTP клиент REST API
// и хранилища списков, которые согласуются с сервером после каждой мутации.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"todo-notes/internal/model"
)

// APIError ошибка, которую вернул сервер
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsNotFound проверяет, что сервер ответил 404
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// API HTTP клиент REST API задач и заметок
type API struct {
	baseURL string
	http    *http.Client
}

// NewAPI создает клиента. httpClient может быть nil, тогда используется клиент с timeout.
func NewAPI(baseURL string, timeout time.Duration, httpClient *http.Client) *API {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &API{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

func (a *API) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("json.Marshal: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("http.NewRequest: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var payload struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
			apiErr.Message = payload.Error
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}

func todoPath(id int64) string { return "/api/todos/" + strconv.FormatInt(id, 10) }
func notePath(id int64) string { return "/api/notes/" + strconv.FormatInt(id, 10) }

type createTodoBody struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

func (a *API) ListTodos(ctx context.Context) ([]model.Todo, error) {
	var todos []model.Todo
	if err := a.do(ctx, http.MethodGet, "/api/todos", nil, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

func (a *API) CreateTodo(ctx context.Context, title string, description *string) (model.Todo, error) {
	var todo model.Todo
	err := a.do(ctx, http.MethodPost, "/api/todos", createTodoBody{Title: title, Description: description}, &todo)
	return todo, err
}

func (a *API) UpdateTodo(ctx context.Context, id int64, update model.TodoUpdate) (model.Todo, error) {
	var todo model.Todo
	err := a.do(ctx, http.MethodPut, todoPath(id), update, &todo)
	return todo, err
}

func (a *API) DeleteTodo(ctx context.Context, id int64) error {
	return a.do(ctx, http.MethodDelete, todoPath(id), nil, nil)
}

type createNoteBody struct {
	Title   string         `json:"title"`
	Content string         `json:"content"`
	Type    model.NoteType `json:"type,omitempty"`
}

func (a *API) ListNotes(ctx context.Context) ([]model.Note, error) {
	var notes []model.Note
	if err := a.do(ctx, http.MethodGet, "/api/notes", nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (a *API) GetNote(ctx context.Context, id int64) (model.Note, error) {
	var note model.Note
	err := a.do(ctx, http.MethodGet, notePath(id), nil, &note)
	return note, err
}

func (a *API) CreateNote(ctx context.Context, title, content string, noteType model.NoteType) (model.Note, error) {
	var note model.Note
	err := a.do(ctx, http.MethodPost, "/api/notes", createNoteBody{Title: title, Content: content, Type: noteType}, &note)
	return note, err
}

func (a *API) UpdateNote(ctx context.Context, id int64, update model.NoteUpdate) (model.Note, error) {
	var note model.Note
	err := a.do(ctx, http.MethodPut, notePath(id), update, &note)
	return note, err
}

func (a *API) DeleteNote(ctx context.Context, id int64) error {
	return a.do(ctx, http.MethodDelete, notePath(id), nil, nil)
}
