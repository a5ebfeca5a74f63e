package httpapi

import "todo-notes/internal/model"

type createTodoRequest struct {
	Title       string  `json:"title" validate:"max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

type updateTodoRequest struct {
	Title       model.Patch[string] `json:"title" validate:"omitempty,max=200"`
	Description model.Patch[string] `json:"description" validate:"omitempty,max=2000"`
	Completed   model.Patch[bool]   `json:"completed"`
}

func (r updateTodoRequest) toModel() model.TodoUpdate {
	return model.TodoUpdate{
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
	}
}

type createNoteRequest struct {
	Title   string         `json:"title" validate:"max=200"`
	Content string         `json:"content" validate:"max=20000"`
	Type    model.NoteType `json:"type"`
}

type updateNoteRequest struct {
	Title   model.Patch[string]         `json:"title" validate:"omitempty,max=200"`
	Content model.Patch[string]         `json:"content" validate:"omitempty,max=20000"`
	Type    model.Patch[model.NoteType] `json:"type"`
}

func (r updateNoteRequest) toModel() model.NoteUpdate {
	return model.NoteUpdate{
		Title:   r.Title,
		Content: r.Content,
		Type:    r.Type,
	}
}
