package client

import (
	"context"
	"slices"
	"sync"

	"todo-notes/internal/model"
)

// TodoStore локальная копия списка задач. Источник истины - сервер: после каждого
// успешного ответа список согласуется точечно, при ошибке остается без изменений.
type TodoStore struct {
	api   *API
	mu    sync.RWMutex
	items []model.Todo
}

func NewTodoStore(api *API) *TodoStore {
	return &TodoStore{api: api}
}

// Items возвращает копию текущего списка
func (s *TodoStore) Items() []model.Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// Replace заменяет список целиком
func (s *TodoStore) Replace(items []model.Todo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = slices.Clone(items)
}

// FetchAll загружает список с сервера и заменяет локальный
func (s *TodoStore) FetchAll(ctx context.Context) error {
	todos, err := s.api.ListTodos(ctx)
	if err != nil {
		return err
	}
	s.Replace(todos)
	return nil
}

// Add создает задачу и добавляет ее в начало списка. Если обновление от Watcher
// успело принести запись раньше ответа, она заменяется на месте.
func (s *TodoStore) Add(ctx context.Context, title, description string) (model.Todo, error) {
	todo, err := s.api.CreateTodo(ctx, title, &description)
	if err != nil {
		return model.Todo{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.IndexFunc(s.items, func(t model.Todo) bool { return t.ID == todo.ID }); i >= 0 {
		s.items[i] = todo
	} else {
		s.items = append([]model.Todo{todo}, s.items...)
	}
	return todo, nil
}

// Toggle устанавливает признак выполнения
func (s *TodoStore) Toggle(ctx context.Context, id int64, completed bool) error {
	todo, err := s.api.UpdateTodo(ctx, id, model.TodoUpdate{Completed: model.Set(completed)})
	if err != nil {
		return err
	}
	s.replaceOne(todo)
	return nil
}

// Update меняет заголовок и описание
func (s *TodoStore) Update(ctx context.Context, id int64, title, description string) (model.Todo, error) {
	todo, err := s.api.UpdateTodo(ctx, id, model.TodoUpdate{
		Title:       model.Set(title),
		Description: model.Set(description),
	})
	if err != nil {
		return model.Todo{}, err
	}
	s.replaceOne(todo)
	return todo, nil
}

// Remove удаляет задачу на сервере и из списка
func (s *TodoStore) Remove(ctx context.Context, id int64) error {
	if err := s.api.DeleteTodo(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	s.items = slices.DeleteFunc(s.items, func(t model.Todo) bool { return t.ID == id })
	s.mu.Unlock()
	return nil
}

// replaceOne заменяет запись по ID; ответ для исчезнувшей записи отбрасывается
func (s *TodoStore) replaceOne(todo model.Todo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.IndexFunc(s.items, func(t model.Todo) bool { return t.ID == todo.ID }); i >= 0 {
		s.items[i] = todo
	}
}

// NoteStore локальная копия списка заметок, правила те же, что у TodoStore
type NoteStore struct {
	api   *API
	mu    sync.RWMutex
	items []model.Note
}

func NewNoteStore(api *API) *NoteStore {
	return &NoteStore{api: api}
}

func (s *NoteStore) Items() []model.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

func (s *NoteStore) Replace(items []model.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = slices.Clone(items)
}

func (s *NoteStore) FetchAll(ctx context.Context) error {
	notes, err := s.api.ListNotes(ctx)
	if err != nil {
		return err
	}
	s.Replace(notes)
	return nil
}

func (s *NoteStore) Add(ctx context.Context, title, content string, noteType model.NoteType) (model.Note, error) {
	note, err := s.api.CreateNote(ctx, title, content, noteType)
	if err != nil {
		return model.Note{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.IndexFunc(s.items, func(n model.Note) bool { return n.ID == note.ID }); i >= 0 {
		s.items[i] = note
	} else {
		s.items = append([]model.Note{note}, s.items...)
	}
	return note, nil
}

func (s *NoteStore) Update(ctx context.Context, id int64, title, content string, noteType model.NoteType) (model.Note, error) {
	note, err := s.api.UpdateNote(ctx, id, model.NoteUpdate{
		Title:   model.Set(title),
		Content: model.Set(content),
		Type:    model.Set(noteType),
	})
	if err != nil {
		return model.Note{}, err
	}

	s.mu.Lock()
	if i := slices.IndexFunc(s.items, func(n model.Note) bool { return n.ID == id }); i >= 0 {
		s.items[i] = note
	}
	s.mu.Unlock()
	return note, nil
}

func (s *NoteStore) Remove(ctx context.Context, id int64) error {
	if err := s.api.DeleteNote(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	s.items = slices.DeleteFunc(s.items, func(n model.Note) bool { return n.ID == id })
	s.mu.Unlock()
	return nil
}
