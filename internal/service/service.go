package service

import (
	"context"

	"todo-notes/internal/model"
)

// TodoService интерфейс бизнес-логики для задач
type TodoService interface {
	// List возвращает все задачи, новые первыми
	List(ctx context.Context) ([]model.Todo, error)

	// Create создает задачу; title обязателен после обрезки пробелов
	Create(ctx context.Context, title string, description *string) (model.Todo, error)

	// Update применяет частичное обновление к задаче с указанным ID
	Update(ctx context.Context, id int64, update model.TodoUpdate) (model.Todo, error)

	// Delete удаляет задачу по ID
	Delete(ctx context.Context, id int64) error
}

// NoteService интерфейс бизнес-логики для заметок
type NoteService interface {
	List(ctx context.Context) ([]model.Note, error)

	// Create создает заметку; пустой noteType означает general
	Create(ctx context.Context, title, content string, noteType model.NoteType) (model.Note, error)

	Get(ctx context.Context, id int64) (model.Note, error)
	Update(ctx context.Context, id int64, update model.NoteUpdate) (model.Note, error)
	Delete(ctx context.Context, id int64) error
}
