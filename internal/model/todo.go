package model

import (
	"strings"
	"time"

	"todo-notes/internal/apperrors"
)

// Todo представляет задачу (доменная модель и одновременно формат ответа API)
type Todo struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"` // nil сериализуется как null
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TodoUpdate команда частичного обновления задачи
type TodoUpdate struct {
	Title       Patch[string] `json:"title,omitzero"`
	Description Patch[string] `json:"description,omitzero"`
	Completed   Patch[bool]   `json:"completed,omitzero"`
}

// Validate проверяет валидность задачи
func (t *Todo) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return apperrors.Validation("Title is required")
	}
	return nil
}

// NormalizeDescription обрезает пробелы, пустое описание превращается в nil
func NormalizeDescription(description *string) *string {
	if description == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*description)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Apply применяет команду обновления к задаче поле за полем.
// Исходная задача не изменяется при ошибке.
func (u TodoUpdate) Apply(todo Todo) (Todo, error) {
	if u.Title.IsNull() {
		return todo, apperrors.Validation("Title cannot be null")
	}
	if title, ok := u.Title.Value(); ok {
		title = strings.TrimSpace(title)
		if title == "" {
			return todo, apperrors.Validation("Title cannot be empty")
		}
		todo.Title = title
	}

	switch {
	case u.Description.IsNull():
		todo.Description = nil
	case u.Description.IsSet():
		description, _ := u.Description.Value()
		todo.Description = NormalizeDescription(&description)
	}

	if u.Completed.IsNull() {
		return todo, apperrors.Validation("Completed cannot be null")
	}
	if completed, ok := u.Completed.Value(); ok {
		todo.Completed = completed
	}

	return todo, nil
}

// IsEmpty - команда не содержит ни одного поля
func (u TodoUpdate) IsEmpty() bool {
	return u.Title.IsAbsent() && u.Description.IsAbsent() && u.Completed.IsAbsent()
}
