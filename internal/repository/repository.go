package repository

import (
	"context"
	"errors"

	"todo-notes/internal/model"
)

// ErrNotFound возвращается, когда запись с указанным ID отсутствует
var ErrNotFound = errors.New("record not found")

// TodoRepository интерфейс для работы с задачами в хранилище
type TodoRepository interface {
	// Create сохраняет новую задачу и возвращает ее с назначенными ID и временными метками
	Create(ctx context.Context, todo model.Todo) (model.Todo, error)

	// GetByID возвращает задачу по ее ID
	GetByID(ctx context.Context, id int64) (model.Todo, error)

	// List возвращает все задачи, новые первыми
	List(ctx context.Context) ([]model.Todo, error)

	// Update перезаписывает задачу целиком и возвращает обновленную запись
	Update(ctx context.Context, todo model.Todo) (model.Todo, error)

	// Delete удаляет задачу по ID
	Delete(ctx context.Context, id int64) error
}

// NoteRepository интерфейс для работы с заметками в хранилище
type NoteRepository interface {
	Create(ctx context.Context, note model.Note) (model.Note, error)
	GetByID(ctx context.Context, id int64) (model.Note, error)
	List(ctx context.Context) ([]model.Note, error)
	Update(ctx context.Context, note model.Note) (model.Note, error)
	Delete(ctx context.Context, id int64) error
}

// Pinger реализуется хранилищами, которые умеют проверять доступность (readiness)
type Pinger interface {
	Ping(ctx context.Context) error
}
