package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"todo-notes/internal/confirm"
	"todo-notes/internal/model"
)

func waitForPrompt(modal *confirm.Modal) tea.Cmd {
	return func() tea.Msg {
		return promptMsg(<-modal.Requests())
	}
}

func (m Model) call(fn func(ctx context.Context) tea.Msg) tea.Cmd {
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return fn(ctx)
	}
}

func (m Model) fetchTodos() tea.Cmd {
	if m.todos == nil {
		return nil
	}
	store := m.todos
	return m.call(func(ctx context.Context) tea.Msg {
		return loadedMsg{entity: model.EntityTodo, err: store.FetchAll(ctx)}
	})
}

func (m Model) fetchNotes() tea.Cmd {
	if m.notes == nil {
		return nil
	}
	store := m.notes
	return m.call(func(ctx context.Context) tea.Msg {
		return loadedMsg{entity: model.EntityNote, err: store.FetchAll(ctx)}
	})
}

func (m Model) createTodo(title, description string) tea.Cmd {
	store := m.todos
	return m.call(func(ctx context.Context) tea.Msg {
		_, err := store.Add(ctx, title, description)
		return todoCreatedMsg{err: err}
	})
}

func (m Model) updateTodo(id int64, title, description string) tea.Cmd {
	store := m.todos
	return m.call(func(ctx context.Context) tea.Msg {
		_, err := store.Update(ctx, id, title, description)
		return todoUpdatedMsg{id: id, edit: true, err: err}
	})
}

func (m Model) toggleTodo(id int64, completed bool) tea.Cmd {
	store := m.todos
	return m.call(func(ctx context.Context) tea.Msg {
		return todoUpdatedMsg{id: id, err: store.Toggle(ctx, id, completed)}
	})
}

// deleteTodo ждет ответа в диалоге подтверждения и только потом отправляет запрос
func (m Model) deleteTodo(t model.Todo) tea.Cmd {
	store, gate, timeout := m.todos, m.modal, m.timeout
	return func() tea.Msg {
		ok, err := gate.Confirm(context.Background(), confirm.Prompt{
			Title:       "Delete todo",
			Message:     fmt.Sprintf("Are you sure you want to delete %q?", t.Title),
			ConfirmText: "delete",
		})
		if err != nil || !ok {
			return todoDeletedMsg{id: t.ID, cancelled: true, err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return todoDeletedMsg{id: t.ID, err: store.Remove(ctx, t.ID)}
	}
}

func (m Model) createNote(title, content string, noteType model.NoteType) tea.Cmd {
	store := m.notes
	return m.call(func(ctx context.Context) tea.Msg {
		_, err := store.Add(ctx, title, content, noteType)
		return noteCreatedMsg{err: err}
	})
}

func (m Model) updateNote(id int64, title, content string, noteType model.NoteType) tea.Cmd {
	store := m.notes
	return m.call(func(ctx context.Context) tea.Msg {
		_, err := store.Update(ctx, id, title, content, noteType)
		return noteUpdatedMsg{id: id, err: err}
	})
}

func (m Model) deleteNote(n model.Note) tea.Cmd {
	store, gate, timeout := m.notes, m.modal, m.timeout
	return func() tea.Msg {
		ok, err := gate.Confirm(context.Background(), confirm.Prompt{
			Title:       "Hapus catatan",
			Message:     fmt.Sprintf("Apakah Anda yakin ingin menghapus %q?", n.Title),
			ConfirmText: "hapus",
		})
		if err != nil || !ok {
			return noteDeletedMsg{id: n.ID, cancelled: true, err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return noteDeletedMsg{id: n.ID, err: store.Remove(ctx, n.ID)}
	}
}
