package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"todo-notes/internal/model"
	"todo-notes/internal/repository"
)

var (
	_ repository.TodoRepository = (*todoRepo)(nil)
	_ repository.NoteRepository = (*noteRepo)(nil)
	_ repository.Pinger         = (*table[model.Todo])(nil)
)

// table хранит записи одного типа в map с автоинкрементным ID.
// Доступ к полям записи идет через функции, чтобы не дублировать код для Todo и Note.
type table[T any] struct {
	mu     sync.RWMutex
	rows   map[int64]T
	nextID int64
	now    func() time.Time

	id      func(T) int64
	created func(T) time.Time
	stamp   func(row *T, id int64, createdAt, updatedAt time.Time)
}

func newTable[T any](id func(T) int64, created func(T) time.Time, stamp func(*T, int64, time.Time, time.Time)) *table[T] {
	return &table[T]{
		rows:    make(map[int64]T),
		nextID:  1,
		now:     func() time.Time { return time.Now().UTC() },
		id:      id,
		created: created,
		stamp:   stamp,
	}
}

func (t *table[T]) create(row T) T {
	t.mu.Lock()
	defer t.mu.Unlock()

	// ID и временные метки назначает хранилище
	now := t.now()
	id := t.nextID
	t.nextID++
	t.stamp(&row, id, now, now)
	t.rows[id] = row

	return row
}

func (t *table[T]) get(id int64) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, exists := t.rows[id]
	if !exists {
		var zero T
		return zero, repository.ErrNotFound
	}
	return row, nil
}

// list возвращает записи, отсортированные по created_at по убыванию (при равенстве - по ID)
func (t *table[T]) list() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rows := make([]T, 0, len(t.rows))
	for _, row := range t.rows {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		ci, cj := t.created(rows[i]), t.created(rows[j])
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return t.id(rows[i]) > t.id(rows[j])
	})
	return rows
}

func (t *table[T]) update(row T) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.id(row)
	existing, exists := t.rows[id]
	if !exists {
		var zero T
		return zero, repository.ErrNotFound
	}

	// created_at неизменяем, updated_at выставляется заново
	t.stamp(&row, id, t.created(existing), t.now())
	t.rows[id] = row

	return row, nil
}

func (t *table[T]) delete(id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.rows[id]; !exists {
		return repository.ErrNotFound
	}
	delete(t.rows, id)

	return nil
}

// Ping всегда успешен для in-memory хранилища
func (t *table[T]) Ping(ctx context.Context) error {
	return ctx.Err()
}

type todoRepo struct {
	*table[model.Todo]
}

// NewTodoRepository создает in-memory репозиторий задач на основе map
func NewTodoRepository() repository.TodoRepository {
	return &todoRepo{table: newTable(
		func(t model.Todo) int64 { return t.ID },
		func(t model.Todo) time.Time { return t.CreatedAt },
		func(t *model.Todo, id int64, createdAt, updatedAt time.Time) {
			t.ID, t.CreatedAt, t.UpdatedAt = id, createdAt, updatedAt
		},
	)}
}

func (r *todoRepo) Create(ctx context.Context, todo model.Todo) (model.Todo, error) {
	return r.create(todo), nil
}

func (r *todoRepo) GetByID(ctx context.Context, id int64) (model.Todo, error) {
	return r.get(id)
}

func (r *todoRepo) List(ctx context.Context) ([]model.Todo, error) {
	return r.list(), nil
}

func (r *todoRepo) Update(ctx context.Context, todo model.Todo) (model.Todo, error) {
	return r.update(todo)
}

func (r *todoRepo) Delete(ctx context.Context, id int64) error {
	return r.delete(id)
}

type noteRepo struct {
	*table[model.Note]
}

// NewNoteRepository создает in-memory репозиторий заметок на основе map
func NewNoteRepository() repository.NoteRepository {
	return &noteRepo{table: newTable(
		func(n model.Note) int64 { return n.ID },
		func(n model.Note) time.Time { return n.CreatedAt },
		func(n *model.Note, id int64, createdAt, updatedAt time.Time) {
			n.ID, n.CreatedAt, n.UpdatedAt = id, createdAt, updatedAt
		},
	)}
}

func (r *noteRepo) Create(ctx context.Context, note model.Note) (model.Note, error) {
	return r.create(note), nil
}

func (r *noteRepo) GetByID(ctx context.Context, id int64) (model.Note, error) {
	return r.get(id)
}

func (r *noteRepo) List(ctx context.Context) ([]model.Note, error) {
	return r.list(), nil
}

func (r *noteRepo) Update(ctx context.Context, note model.Note) (model.Note, error) {
	return r.update(note)
}

func (r *noteRepo) Delete(ctx context.Context, id int64) error {
	return r.delete(id)
}
