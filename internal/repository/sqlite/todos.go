package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"todo-notes/internal/model"
	"todo-notes/internal/repository"
)

var _ repository.TodoRepository = (*TodoRepository)(nil)

const todoColumns = "id, title, description, completed, created_at, updated_at"

// TodoRepository таблица Todo
type TodoRepository struct {
	db *DB
}

// NewTodoRepository создает репозиторий задач поверх открытой базы
func NewTodoRepository(db *DB) *TodoRepository {
	return &TodoRepository{db: db}
}

// Create вставляет задачу, ID назначает AUTOINCREMENT
func (r *TodoRepository) Create(ctx context.Context, todo model.Todo) (model.Todo, error) {
	now := r.db.now()
	res, err := r.db.db.ExecContext(ctx,
		"INSERT INTO Todo (title, description, completed, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		todo.Title, nullString(todo.Description), todo.Completed, formatTime(now), formatTime(now),
	)
	if err != nil {
		return model.Todo{}, fmt.Errorf("inserting todo: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Todo{}, fmt.Errorf("reading todo id: %w", err)
	}
	return r.GetByID(ctx, id)
}

// GetByID возвращает задачу по ID
func (r *TodoRepository) GetByID(ctx context.Context, id int64) (model.Todo, error) {
	row := r.db.db.QueryRowContext(ctx, "SELECT "+todoColumns+" FROM Todo WHERE id = ?", id)
	todo, err := scanTodo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Todo{}, repository.ErrNotFound
		}
		return model.Todo{}, fmt.Errorf("getting todo %d: %w", id, err)
	}
	return todo, nil
}

// List возвращает все задачи, новые первыми
func (r *TodoRepository) List(ctx context.Context) ([]model.Todo, error) {
	rows, err := r.db.db.QueryContext(ctx, "SELECT "+todoColumns+" FROM Todo ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}
	defer rows.Close()

	todos := make([]model.Todo, 0)
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning todo: %w", err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating todos: %w", err)
	}
	return todos, nil
}

// Update перезаписывает изменяемые поля и updated_at
func (r *TodoRepository) Update(ctx context.Context, todo model.Todo) (model.Todo, error) {
	res, err := r.db.db.ExecContext(ctx,
		"UPDATE Todo SET title = ?, description = ?, completed = ?, updated_at = ? WHERE id = ?",
		todo.Title, nullString(todo.Description), todo.Completed, formatTime(r.db.now()), todo.ID,
	)
	if err != nil {
		return model.Todo{}, fmt.Errorf("updating todo %d: %w", todo.ID, err)
	}
	if err := expectOneRow(res); err != nil {
		return model.Todo{}, err
	}
	return r.GetByID(ctx, todo.ID)
}

// Delete удаляет задачу
func (r *TodoRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.db.ExecContext(ctx, "DELETE FROM Todo WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting todo %d: %w", id, err)
	}
	return expectOneRow(res)
}

// Ping проверяет доступность базы
func (r *TodoRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func scanTodo(s scanner) (model.Todo, error) {
	var (
		todo                 model.Todo
		description          sql.NullString
		createdAt, updatedAt string
		err                  error
	)
	if err = s.Scan(&todo.ID, &todo.Title, &description, &todo.Completed, &createdAt, &updatedAt); err != nil {
		return model.Todo{}, err
	}
	if description.Valid {
		todo.Description = &description.String
	}
	if todo.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.Todo{}, err
	}
	if todo.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return model.Todo{}, err
	}
	return todo, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// expectOneRow превращает "ни одна строка не затронута" в ErrNotFound
func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
