package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todo-notes/internal/model"
	"todo-notes/internal/view"
)

type field int

const (
	fieldTitle field = iota
	fieldBody
	fieldType
)

// form общая форма добавления и редактирования. Для задач тело - однострочное
// описание, для заметок - многострочный текст и тип.
type form struct {
	notes       bool
	title       textinput.Model
	description textinput.Model
	content     textarea.Model
	noteType    model.NoteType
	focus       field
}

func newTodoForm(t *model.Todo) form {
	f := form{title: newInput("Todo title...", 200), description: newInput("Description (optional)...", 2000)}
	if t != nil {
		f.title.SetValue(t.Title)
		if t.Description != nil {
			f.description.SetValue(*t.Description)
		}
	}
	return f
}

func newNoteForm(n *model.Note) form {
	f := form{notes: true, title: newInput("Judul catatan...", 200), noteType: model.NoteGeneral}
	f.content = textarea.New()
	f.content.Placeholder = "Tulis catatan Anda di sini..."
	f.content.ShowLineNumbers = false
	f.content.CharLimit = 20000
	f.content.SetHeight(4)

	if n != nil {
		f.title.SetValue(n.Title)
		f.content.SetValue(n.Content)
		f.noteType = n.Type
	}
	return f
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	return ti
}

func (f *form) fields() int {
	if f.notes {
		return 3
	}
	return 2
}

func (f *form) setFocus(target field) tea.Cmd {
	f.focus = target
	f.title.Blur()
	f.description.Blur()
	f.content.Blur()

	switch target {
	case fieldTitle:
		return f.title.Focus()
	case fieldBody:
		if f.notes {
			return f.content.Focus()
		}
		return f.description.Focus()
	}
	return nil
}

func (f *form) move(delta int) tea.Cmd {
	n := f.fields()
	return f.setFocus(field((int(f.focus) + delta + n) % n))
}

// multiline сообщает, что enter должен попасть в поле, а не отправить форму
func (f *form) multiline() bool {
	return f.notes && f.focus == fieldBody
}

func (f form) update(msg tea.Msg) (form, tea.Cmd) {
	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldBody:
		if f.notes {
			f.content, cmd = f.content.Update(msg)
		} else {
			f.description, cmd = f.description.Update(msg)
		}
	case fieldType:
		if k, ok := msg.(tea.KeyMsg); ok {
			switch k.String() {
			case "left", "h":
				f.noteType = cycleNoteType(f.noteType, -1)
			case "right", "l", " ":
				f.noteType = cycleNoteType(f.noteType, 1)
			}
		}
	}
	return f, cmd
}

func cycleNoteType(t model.NoteType, delta int) model.NoteType {
	n := len(model.NoteTypes)
	i := slices.Index(model.NoteTypes, t)
	if i < 0 {
		return model.NoteGeneral
	}
	return model.NoteTypes[(i+delta+n)%n]
}

func (f *form) view(heading string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(heading) + "\n")
	b.WriteString(f.title.View() + "\n")
	if !f.notes {
		b.WriteString(f.description.View())
		return b.String()
	}

	b.WriteString(f.content.View() + "\n")
	types := make([]string, 0, len(model.NoteTypes))
	for _, t := range model.NoteTypes {
		label := view.NoteTypeOption(t)
		if t == f.noteType {
			label = selectedStyle.Render(label)
		}
		types = append(types, label)
	}
	prefix := "  "
	if f.focus == fieldType {
		prefix = "> "
	}
	b.WriteString(prefix + strings.Join(types, " "))
	return b.String()
}
