package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httpapi "todo-notes/internal/api/http"
	"todo-notes/internal/model"
	"todo-notes/internal/repository/memory"
	"todo-notes/internal/service/events"
	"todo-notes/internal/service/notes"
	"todo-notes/internal/service/todos"
)

type testServer struct {
	api    *API
	broker *events.Broker
}

func startServer(t *testing.T) *testServer {
	t.Helper()
	broker := events.NewBroker()
	srv := httptest.NewServer(httpapi.NewRouter(httpapi.Deps{
		Todos: todos.NewTodoService(memory.NewTodoRepository(), broker),
		Notes: notes.NewNoteService(memory.NewNoteRepository(), broker),
		Log:   zap.NewNop(),
	}))
	t.Cleanup(srv.Close)

	return &testServer{api: NewAPI(srv.URL, 5*time.Second, srv.Client()), broker: broker}
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestTodoStore_Lifecycle(t *testing.T) {
	srv := startServer(t)
	ctx := testContext(t)
	store := NewTodoStore(srv.api)

	require.NoError(t, store.FetchAll(ctx))
	assert.Empty(t, store.Items())

	first, err := store.Add(ctx, "  Buy milk ", "")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", first.Title)
	assert.Nil(t, first.Description)

	second, err := store.Add(ctx, "Walk the dog", "park")
	require.NoError(t, err)

	items := store.Items()
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID, "new item goes first")

	require.NoError(t, store.Toggle(ctx, first.ID, true))
	assert.True(t, store.Items()[1].Completed)

	updated, err := store.Update(ctx, second.ID, "Walk the cat", " ")
	require.NoError(t, err)
	assert.Equal(t, "Walk the cat", updated.Title)
	assert.Nil(t, updated.Description)
	assert.Equal(t, updated, store.Items()[0])

	require.NoError(t, store.Remove(ctx, first.ID))
	items = store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, second.ID, items[0].ID)

	// локальный список совпадает с серверным
	require.NoError(t, store.FetchAll(ctx))
	assert.Equal(t, items, store.Items())
}

func TestTodoStore_FailureKeepsState(t *testing.T) {
	srv := startServer(t)
	ctx := testContext(t)
	store := NewTodoStore(srv.api)

	created, err := store.Add(ctx, "title", "")
	require.NoError(t, err)
	before := store.Items()

	_, err = store.Add(ctx, "   ", "")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Title is required", apiErr.Message)

	_, err = store.Update(ctx, created.ID, "", "")
	require.Error(t, err)

	err = store.Remove(ctx, created.ID+100)
	assert.True(t, IsNotFound(err))

	err = store.Toggle(ctx, created.ID+100, true)
	assert.True(t, IsNotFound(err))

	assert.Equal(t, before, store.Items())
}

func TestTodoStore_UpdateOfRemovedItemIsDiscarded(t *testing.T) {
	srv := startServer(t)
	ctx := testContext(t)
	store := NewTodoStore(srv.api)

	created, err := store.Add(ctx, "title", "")
	require.NoError(t, err)

	// другой клиент уже обновил список, записи локально нет
	store.Replace(nil)
	_, err = store.Update(ctx, created.ID, "renamed", "")
	require.NoError(t, err)
	assert.Empty(t, store.Items())
}

func TestNoteStore_Lifecycle(t *testing.T) {
	srv := startServer(t)
	ctx := testContext(t)
	store := NewNoteStore(srv.api)

	note, err := store.Add(ctx, "Ideas", "write more tests", "")
	require.NoError(t, err)
	assert.Equal(t, model.NoteGeneral, note.Type)

	daily, err := store.Add(ctx, "Standup", "done: tests", model.NoteDaily)
	require.NoError(t, err)
	assert.Equal(t, []int64{daily.ID, note.ID}, noteIDs(store.Items()))

	got, err := srv.api.GetNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, note.Title, got.Title)

	updated, err := store.Update(ctx, note.ID, "Ideas", "ship it", model.NoteImportant)
	require.NoError(t, err)
	assert.Equal(t, model.NoteImportant, updated.Type)
	assert.Equal(t, updated, store.Items()[1])

	_, err = store.Add(ctx, "x", "y", "urgent")
	require.Error(t, err)

	require.NoError(t, store.Remove(ctx, daily.ID))
	assert.Equal(t, []int64{note.ID}, noteIDs(store.Items()))

	_, err = srv.api.GetNote(ctx, daily.ID)
	assert.True(t, IsNotFound(err))
}

func TestAPI_SendsRequestID(t *testing.T) {
	var seen atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.Store(r.Header.Get("X-Request-ID"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	api := NewAPI(srv.URL+"/", time.Second, nil)
	todos, err := api.ListTodos(testContext(t))
	require.NoError(t, err)
	assert.Empty(t, todos)
	assert.Len(t, seen.Load(), 36)
}

func TestAPI_ErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	_, err := NewAPI(srv.URL, time.Second, nil).ListNotes(testContext(t))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}

func noteIDs(notes []model.Note) []int64 {
	ids := make([]int64, 0, len(notes))
	for _, n := range notes {
		ids = append(ids, n.ID)
	}
	return ids
}

// startRefreshingServer вызывает refresh после обработки POST, но до отправки ответа,
// как будто Watcher получил событие раньше, чем клиент получил ответ на создание
func startRefreshingServer(t *testing.T, refresh func(ctx context.Context)) *API {
	t.Helper()
	router := httpapi.NewRouter(httpapi.Deps{
		Todos: todos.NewTodoService(memory.NewTodoRepository(), nil),
		Notes: notes.NewNoteService(memory.NewNoteRepository(), nil),
		Log:   zap.NewNop(),
	})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			router.ServeHTTP(w, r)
			return
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, r)
		refresh(r.Context())

		for k, v := range rec.Header() {
			w.Header()[k] = v
		}
		w.WriteHeader(rec.Code)
		_, _ = w.Write(rec.Body.Bytes())
	}))
	t.Cleanup(srv.Close)

	return NewAPI(srv.URL, 5*time.Second, srv.Client())
}

func TestTodoStore_AddAfterRefreshKeepsIDsUnique(t *testing.T) {
	ctx := testContext(t)
	var store *TodoStore
	store = NewTodoStore(startRefreshingServer(t, func(ctx context.Context) {
		assert.NoError(t, store.FetchAll(ctx))
	}))

	todo, err := store.Add(ctx, "x", "")
	require.NoError(t, err)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, todo, items[0])

	second, err := store.Add(ctx, "y", "")
	require.NoError(t, err)
	items = store.Items()
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
}

func TestNoteStore_AddAfterRefreshKeepsIDsUnique(t *testing.T) {
	ctx := testContext(t)
	var store *NoteStore
	store = NewNoteStore(startRefreshingServer(t, func(ctx context.Context) {
		assert.NoError(t, store.FetchAll(ctx))
	}))

	note, err := store.Add(ctx, "Standup", "9:00", model.NoteDaily)
	require.NoError(t, err)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, note, items[0])
}
