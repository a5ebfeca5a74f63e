// Package web отдает HTML страницы задач и заметок. Формы работают по схеме
// post/redirect/get, удаление подтверждается нативным confirm браузера.
package web

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"todo-notes/internal/apperrors"
	"todo-notes/internal/model"
	svc "todo-notes/internal/service"
	"todo-notes/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

// formNoteTypes порядок типов в выпадающем списке
var formNoteTypes = []model.NoteType{model.NoteGeneral, model.NoteDaily, model.NoteImportant}

// Handler HTML фронтенд
type Handler struct {
	todos  svc.TodoService
	notes  svc.NoteService
	log    *zap.Logger
	locale string
	loc    *time.Location

	todosPage *template.Template
	notesPage *template.Template
}

// New создает фронтенд. locale управляет форматом дат (id или en).
func New(todos svc.TodoService, notes svc.NoteService, log *zap.Logger, locale string) (*Handler, error) {
	h := &Handler{
		todos:  todos,
		notes:  notes,
		log:    log,
		locale: locale,
		loc:    time.Local,
	}

	funcs := template.FuncMap{
		"formatDate": func(t time.Time) string { return view.FormatDate(t.In(h.loc), h.locale) },
		"noteLabel":  view.NoteTypeLabel,
		"noteOption": view.NoteTypeOption,
	}

	var err error
	if h.todosPage, err = template.New("todos").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/todos.html"); err != nil {
		return nil, err
	}
	if h.notesPage, err = template.New("notes").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/notes.html"); err != nil {
		return nil, err
	}
	return h, nil
}

// Register добавляет маршруты страниц
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.todosIndex)
	r.Post("/todos", h.createTodo)
	r.Post("/todos/{id}/toggle", h.toggleTodo)
	r.Post("/todos/{id}/update", h.updateTodo)
	r.Post("/todos/{id}/delete", h.deleteTodo)

	r.Get("/notes", h.notesIndex)
	r.Post("/notes", h.createNote)
	r.Post("/notes/{id}/update", h.updateNote)
	r.Post("/notes/{id}/delete", h.deleteNote)
}

type todosPageData struct {
	Title   string
	Locale  string
	Error   string
	Filter  view.TodoFilter
	Filters []view.TodoFilter
	Counts  view.TodoCounts
	Items   []model.Todo
}

type notesPageData struct {
	Title   string
	Locale  string
	Error   string
	Deleted bool
	Filter  view.NoteFilter
	Filters []view.NoteFilter
	Types   []model.NoteType
	Counts  view.NoteCounts
	Items   []model.Note
}

func (h *Handler) todosIndex(w http.ResponseWriter, r *http.Request) {
	h.renderTodos(w, r, http.StatusOK, "")
}

func (h *Handler) renderTodos(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	todos, err := h.todos.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	filter := view.ParseTodoFilter(r.URL.Query().Get("filter"))
	h.render(w, h.todosPage, status, todosPageData{
		Title:   "Todo List - Stay Organized",
		Locale:  h.locale,
		Error:   errMsg,
		Filter:  filter,
		Filters: view.TodoFilters,
		Counts:  view.CountTodos(todos),
		Items:   view.FilterTodos(todos, filter),
	})
}

func (h *Handler) createTodo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderTodos(w, r, http.StatusBadRequest, "Invalid form")
		return
	}

	description := r.PostForm.Get("description")
	if _, err := h.todos.Create(r.Context(), r.PostForm.Get("title"), &description); err != nil {
		h.todoFormError(w, r, err)
		return
	}
	redirect(w, r, "/", r.URL.Query().Get("filter"))
}

func (h *Handler) toggleTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderTodos(w, r, http.StatusBadRequest, "Invalid form")
		return
	}

	// Форма передает целевое состояние, а не просит инвертировать текущее
	completed, err := strconv.ParseBool(r.PostForm.Get("completed"))
	if err != nil {
		h.renderTodos(w, r, http.StatusBadRequest, "Invalid form")
		return
	}
	if _, err := h.todos.Update(r.Context(), id, model.TodoUpdate{Completed: model.Set(completed)}); err != nil {
		h.todoFormError(w, r, err)
		return
	}
	redirect(w, r, "/", r.URL.Query().Get("filter"))
}

func (h *Handler) updateTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderTodos(w, r, http.StatusBadRequest, "Invalid form")
		return
	}

	update := model.TodoUpdate{
		Title:       model.Set(r.PostForm.Get("title")),
		Description: model.Set(r.PostForm.Get("description")),
	}
	if _, err := h.todos.Update(r.Context(), id, update); err != nil {
		h.todoFormError(w, r, err)
		return
	}
	redirect(w, r, "/", r.URL.Query().Get("filter"))
}

func (h *Handler) deleteTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.todos.Delete(r.Context(), id); err != nil && !apperrors.IsType(err, apperrors.TypeNotFound) {
		h.fail(w, r, err)
		return
	}
	redirect(w, r, "/", r.URL.Query().Get("filter"))
}

func (h *Handler) todoFormError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperrors.As(err)
	if appErr.Type == apperrors.TypeInternal {
		h.fail(w, r, err)
		return
	}
	h.renderTodos(w, r, appErr.HTTPStatus(), appErr.Message)
}

func (h *Handler) notesIndex(w http.ResponseWriter, r *http.Request) {
	h.renderNotes(w, r, http.StatusOK, "")
}

func (h *Handler) renderNotes(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	notes, err := h.notes.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	filter := view.ParseNoteFilter(r.URL.Query().Get("filter"))
	h.render(w, h.notesPage, status, notesPageData{
		Title:   "Catatan",
		Locale:  h.locale,
		Error:   errMsg,
		Deleted: r.URL.Query().Get("deleted") == "1",
		Filter:  filter,
		Filters: view.NoteFilters,
		Types:   formNoteTypes,
		Counts:  view.CountNotes(notes),
		Items:   view.FilterNotes(notes, filter),
	})
}

func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderNotes(w, r, http.StatusBadRequest, "Invalid form")
		return
	}

	f := r.PostForm
	if _, err := h.notes.Create(r.Context(), f.Get("title"), f.Get("content"), model.NoteType(f.Get("type"))); err != nil {
		h.noteFormError(w, r, err)
		return
	}
	redirect(w, r, "/notes", r.URL.Query().Get("filter"))
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderNotes(w, r, http.StatusBadRequest, "Invalid form")
		return
	}

	f := r.PostForm
	update := model.NoteUpdate{
		Title:   model.Set(f.Get("title")),
		Content: model.Set(f.Get("content")),
		Type:    model.Set(model.NoteType(f.Get("type"))),
	}
	if _, err := h.notes.Update(r.Context(), id, update); err != nil {
		h.noteFormError(w, r, err)
		return
	}
	redirect(w, r, "/notes", r.URL.Query().Get("filter"))
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.notes.Delete(r.Context(), id); err != nil {
		h.noteFormError(w, r, err)
		return
	}

	target := url.URL{Path: "/notes"}
	q := url.Values{"deleted": {"1"}}
	if filter := r.URL.Query().Get("filter"); filter != "" {
		q.Set("filter", filter)
	}
	target.RawQuery = q.Encode()
	http.Redirect(w, r, target.String(), http.StatusSeeOther)
}

func (h *Handler) noteFormError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperrors.As(err)
	if appErr.Type == apperrors.TypeInternal {
		h.fail(w, r, err)
		return
	}
	h.renderNotes(w, r, appErr.HTTPStatus(), appErr.Message)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (h *Handler) render(w http.ResponseWriter, tmpl *template.Template, status int, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		h.log.Error("template render failed", zap.String("template", tmpl.Name()), zap.Error(err))
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Error("page request failed", zap.String("path", r.URL.Path), zap.Error(err))
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

// redirect завершает POST переходом на страницу со списком, сохраняя фильтр
func redirect(w http.ResponseWriter, r *http.Request, path, filter string) {
	if filter != "" {
		path += "?filter=" + url.QueryEscape(filter)
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}
