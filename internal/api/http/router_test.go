package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"todo-notes/internal/config"
	"todo-notes/internal/metrics"
	"todo-notes/internal/model"
	"todo-notes/internal/repository/memory"
	"todo-notes/internal/repository/sqlite"
	"todo-notes/internal/service/notes"
	"todo-notes/internal/service/todos"
)

type testAPI struct {
	t       *testing.T
	handler http.Handler
}

func newMemoryAPI(t *testing.T) *testAPI {
	t.Helper()
	return &testAPI{t: t, handler: NewRouter(Deps{
		Todos:   todos.NewTodoService(memory.NewTodoRepository(), nil),
		Notes:   notes.NewNoteService(memory.NewNoteRepository(), nil),
		Log:     zap.NewNop(),
		Swagger: true,
	})}
}

func newSQLiteAPI(t *testing.T) *testAPI {
	t.Helper()
	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &testAPI{t: t, handler: NewRouter(Deps{
		Todos:  todos.NewTodoService(sqlite.NewTodoRepository(db), nil),
		Notes:  notes.NewNoteService(sqlite.NewNoteRepository(db), nil),
		Pinger: db,
		Log:    zap.NewNop(),
	})}
}

func (a *testAPI) do(method, path, body string) *httptest.ResponseRecorder {
	a.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&v), rec.Body.String())
	return v
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[errorResponse](t, rec).Error
}

func TestTodoScenario(t *testing.T) {
	for name, newAPI := range map[string]func(*testing.T) *testAPI{
		"memory": newMemoryAPI,
		"sqlite": newSQLiteAPI,
	} {
		t.Run(name, func(t *testing.T) {
			api := newAPI(t)

			rec := api.do(http.MethodPost, "/api/todos", `{"title":"  Buy milk  "}`)
			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

			var raw map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
			assert.Equal(t, "Buy milk", raw["title"])
			assert.Nil(t, raw["description"])
			assert.Contains(t, raw, "description")
			assert.Equal(t, false, raw["completed"])

			created := decode[model.Todo](t, rec)

			rec = api.do(http.MethodPut, "/api/todos/"+itoa(created.ID), `{"completed":true}`)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			updated := decode[model.Todo](t, rec)
			assert.True(t, updated.Completed)
			assert.Equal(t, "Buy milk", updated.Title)

			rec = api.do(http.MethodDelete, "/api/todos/"+itoa(created.ID), "")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "Todo deleted successfully", decode[messageResponse](t, rec).Message)

			rec = api.do(http.MethodGet, "/api/todos", "")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Empty(t, decode[[]model.Todo](t, rec))

			rec = api.do(http.MethodDelete, "/api/todos/"+itoa(created.ID), "")
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, "Todo not found", errorMessage(t, rec))
		})
	}
}

func TestTodos_ListIsNewestFirst(t *testing.T) {
	api := newSQLiteAPI(t)

	for _, title := range []string{"first", "second", "third"} {
		require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/todos", `{"title":"`+title+`"}`).Code)
	}

	list := decode[[]model.Todo](t, api.do(http.MethodGet, "/api/todos", ""))
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0].Title)
	assert.Equal(t, "first", list[2].Title)
}

func TestTodos_EmptyListIsArray(t *testing.T) {
	api := newMemoryAPI(t)

	rec := api.do(http.MethodGet, "/api/todos", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestTodos_CreateValidation(t *testing.T) {
	api := newMemoryAPI(t)

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{name: "missing title", body: `{}`, message: "Title is required"},
		{name: "blank title", body: `{"title":"   "}`, message: "Title is required"},
		{name: "malformed json", body: `{"title":`, message: "Invalid JSON body"},
		{name: "wrong type", body: `{"title":42}`, message: "Invalid JSON body"},
		{name: "empty body", body: "", message: "Request body is required"},
		{name: "trailing data", body: `{"title":"a"} trailing`, message: "Invalid JSON body"},
		{name: "two values", body: `{"title":"a"}{"title":"b"}`, message: "Invalid JSON body"},
		{name: "title too long", body: `{"title":"` + strings.Repeat("a", 201) + `"}`, message: "title must be at most 200 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(http.MethodPost, "/api/todos", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.message, errorMessage(t, rec))
		})
	}

	rec := api.do(http.MethodPost, "/api/todos", "{\"title\":\"a\"}\n\t ")
	assert.Equal(t, http.StatusCreated, rec.Code, "trailing whitespace is allowed")

	list := api.do(http.MethodGet, "/api/todos", "")
	assert.Len(t, decode[[]model.Todo](t, list), 1)
}

func TestTodos_UpdateRules(t *testing.T) {
	api := newMemoryAPI(t)

	created := decode[model.Todo](t, api.do(http.MethodPost, "/api/todos", `{"title":"t","description":"d"}`))
	path := "/api/todos/" + itoa(created.ID)

	rec := api.do(http.MethodPut, path, `{"description":"   ","unknown":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode[model.Todo](t, rec).Description)

	rec = api.do(http.MethodPut, path, `{"title":"  new title ","description":" back "}`)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[model.Todo](t, rec)
	assert.Equal(t, "new title", got.Title)
	require.NotNil(t, got.Description)
	assert.Equal(t, "back", *got.Description)

	rec = api.do(http.MethodPut, path, `{"description":null}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode[model.Todo](t, rec).Description)

	rec = api.do(http.MethodPut, path, `{"title":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPut, path, `{"completed":null}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Completed cannot be null", errorMessage(t, rec))

	rec = api.do(http.MethodPut, path, `{"completed":"yes"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTodos_UpdateIdempotent(t *testing.T) {
	api := newSQLiteAPI(t)

	created := decode[model.Todo](t, api.do(http.MethodPost, "/api/todos", `{"title":"t"}`))
	path := "/api/todos/" + itoa(created.ID)
	payload := `{"title":"same","completed":true}`

	first := decode[model.Todo](t, api.do(http.MethodPut, path, payload))
	second := decode[model.Todo](t, api.do(http.MethodPut, path, payload))

	second.UpdatedAt = first.UpdatedAt
	assert.Equal(t, first, second)
}

func TestTodos_InvalidAndMissingID(t *testing.T) {
	api := newMemoryAPI(t)

	rec := api.do(http.MethodPut, "/api/todos/abc", `{"completed":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid todo ID", errorMessage(t, rec))

	rec = api.do(http.MethodDelete, "/api/todos/1.5", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPut, "/api/todos/999", `{"completed":true}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Todo not found", errorMessage(t, rec))
}

func TestMethodNotAllowed(t *testing.T) {
	api := newMemoryAPI(t)

	tests := []struct {
		method, path, allow string
	}{
		{http.MethodPatch, "/api/todos", "GET, POST"},
		{http.MethodDelete, "/api/todos", "GET, POST"},
		{http.MethodGet, "/api/todos/1", "PUT, DELETE"},
		{http.MethodPost, "/api/todos/1", "PUT, DELETE"},
		{http.MethodPut, "/api/notes", "GET, POST"},
		{http.MethodPatch, "/api/notes/1", "GET, PUT, DELETE"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := api.do(tt.method, tt.path, "")
			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.Equal(t, tt.allow, rec.Header().Get("Allow"))
			assert.Equal(t, "Method "+tt.method+" not allowed", errorMessage(t, rec))
		})
	}
}

func TestNotes_Lifecycle(t *testing.T) {
	api := newSQLiteAPI(t)

	rec := api.do(http.MethodPost, "/api/notes", `{"title":"Rapat","content":"Jam 9"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[model.Note](t, rec)
	assert.Equal(t, model.NoteGeneral, created.Type)
	path := "/api/notes/" + itoa(created.ID)

	rec = api.do(http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Rapat", decode[model.Note](t, rec).Title)

	rec = api.do(http.MethodPut, path, `{"type":"important"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[model.Note](t, rec)
	assert.Equal(t, model.NoteImportant, updated.Type)
	assert.Equal(t, "Jam 9", updated.Content)

	rec = api.do(http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Note deleted successfully", decode[messageResponse](t, rec).Message)

	rec = api.do(http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Note not found", errorMessage(t, rec))

	rec = api.do(http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNotes_Validation(t *testing.T) {
	api := newMemoryAPI(t)

	for name, body := range map[string]string{
		"missing content": `{"title":"t"}`,
		"missing title":   `{"content":"c"}`,
		"empty both":      `{"title":"","content":""}`,
	} {
		rec := api.do(http.MethodPost, "/api/notes", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
		assert.Equal(t, "Title and content are required", errorMessage(t, rec), name)
	}

	rec := api.do(http.MethodPost, "/api/notes", `{"title":"t","content":"c","type":"urgent"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, `Invalid note type "urgent"`, errorMessage(t, rec))

	rec = api.do(http.MethodGet, "/api/notes/x", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid note ID", errorMessage(t, rec))

	created := decode[model.Note](t, api.do(http.MethodPost, "/api/notes", `{"title":" t ","content":" c ","type":"daily"}`))
	assert.Equal(t, " t ", created.Title)

	rec = api.do(http.MethodPut, "/api/notes/"+itoa(created.ID), `{"type":null}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Fields cannot be null", errorMessage(t, rec))

	rec = api.do(http.MethodPut, "/api/notes/999", `{"title":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthAndReady(t *testing.T) {
	api := newSQLiteAPI(t)

	rec := api.do(http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decode[map[string]string](t, rec)["status"])

	rec = api.do(http.MethodGet, "/ready", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", decode[map[string]string](t, rec)["status"])
}

type brokenPinger struct{}

func (brokenPinger) Ping(context.Context) error { return errors.New("database is locked") }

func TestReady_StoreDown(t *testing.T) {
	h := NewRouter(Deps{
		Todos:  todos.NewTodoService(memory.NewTodoRepository(), nil),
		Notes:  notes.NewNoteService(memory.NewNoteRepository(), nil),
		Pinger: brokenPinger{},
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	collector := metrics.NewCollector("test")
	h := NewRouter(Deps{
		Todos:   todos.NewTodoService(memory.NewTodoRepository(), collector),
		Notes:   notes.NewNoteService(memory.NewNoteRepository(), collector),
		Metrics: collector,
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/todos", strings.NewReader(`{"title":"x"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `test_entity_changes_total{entity="todo",op="created"} 1`)
	assert.Contains(t, body, `test_http_requests_total{method="POST",route="/api/todos`)
}

func TestRateLimited(t *testing.T) {
	h := NewRouter(Deps{
		Todos:   todos.NewTodoService(memory.NewTodoRepository(), nil),
		Notes:   notes.NewNoteService(memory.NewNoteRepository(), nil),
		Gateway: &config.ConfigGateway{RateLimitRPS: 1, RateLimitBurst: 1},
	})

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/notes", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestSwaggerMounted(t *testing.T) {
	api := newMemoryAPI(t)

	rec := api.do(http.MethodGet, "/swagger.json", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	api := newMemoryAPI(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/todos", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
