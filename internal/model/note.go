package model

import (
	"time"

	"todo-notes/internal/apperrors"
)

// NoteType тип заметки
type NoteType string

const (
	NoteImportant NoteType = "important"
	NoteDaily     NoteType = "daily"
	NoteGeneral   NoteType = "general"
)

// NoteTypes все допустимые типы в порядке отображения
var NoteTypes = []NoteType{NoteImportant, NoteDaily, NoteGeneral}

// Valid проверяет, что тип входит в перечисление
func (t NoteType) Valid() bool {
	switch t {
	case NoteImportant, NoteDaily, NoteGeneral:
		return true
	}
	return false
}

// Note представляет заметку (доменная модель и формат ответа API)
type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Type      NoteType  `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NoteUpdate команда частичного обновления заметки
type NoteUpdate struct {
	Title   Patch[string]   `json:"title,omitzero"`
	Content Patch[string]   `json:"content,omitzero"`
	Type    Patch[NoteType] `json:"type,omitzero"`
}

// Validate проверяет валидность заметки.
// Title и content не обрезаются: пустой считается только строка нулевой длины.
func (n *Note) Validate() error {
	if n.Title == "" || n.Content == "" {
		return apperrors.Validation("Title and content are required")
	}
	if !n.Type.Valid() {
		return apperrors.Validationf("Invalid note type %q", n.Type)
	}
	return nil
}

// Apply применяет команду обновления к заметке поле за полем
func (u NoteUpdate) Apply(note Note) (Note, error) {
	if u.Title.IsNull() || u.Content.IsNull() || u.Type.IsNull() {
		return note, apperrors.Validation("Fields cannot be null")
	}
	if title, ok := u.Title.Value(); ok {
		note.Title = title
	}
	if content, ok := u.Content.Value(); ok {
		note.Content = content
	}
	if noteType, ok := u.Type.Value(); ok {
		note.Type = noteType
	}

	if err := note.Validate(); err != nil {
		return note, err
	}
	return note, nil
}

// IsEmpty - команда не содержит ни одного поля
func (u NoteUpdate) IsEmpty() bool {
	return u.Title.IsAbsent() && u.Content.IsAbsent() && u.Type.IsAbsent()
}
