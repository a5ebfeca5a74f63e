// Package view содержит чистую логику отображения, общую для HTML фронтенда и TUI:
// фильтры, счетчики, подписи и форматирование дат.
package view

import "todo-notes/internal/model"

// TodoFilter фильтр списка задач
type TodoFilter string

const (
	TodoAll       TodoFilter = "all"
	TodoActive    TodoFilter = "active"
	TodoCompleted TodoFilter = "completed"
)

// TodoFilters порядок переключения фильтров
var TodoFilters = []TodoFilter{TodoAll, TodoActive, TodoCompleted}

// ParseTodoFilter разбирает значение из query; неизвестное значение означает all
func ParseTodoFilter(s string) TodoFilter {
	switch f := TodoFilter(s); f {
	case TodoActive, TodoCompleted:
		return f
	}
	return TodoAll
}

// Label подпись кнопки фильтра
func (f TodoFilter) Label() string {
	switch f {
	case TodoActive:
		return "Active"
	case TodoCompleted:
		return "Completed"
	}
	return "All"
}

// Empty сообщение для пустого списка
func (f TodoFilter) Empty() string {
	switch f {
	case TodoActive:
		return "No active todos!"
	case TodoCompleted:
		return "No completed todos yet!"
	}
	return "No todos yet. Add one to get started!"
}

// Next следующий фильтр по кругу
func (f TodoFilter) Next() TodoFilter {
	return next(TodoFilters, f)
}

// FilterTodos возвращает задачи, подходящие под фильтр, в исходном порядке
func FilterTodos(todos []model.Todo, f TodoFilter) []model.Todo {
	out := make([]model.Todo, 0, len(todos))
	for _, t := range todos {
		switch {
		case f == TodoActive && t.Completed:
		case f == TodoCompleted && !t.Completed:
		default:
			out = append(out, t)
		}
	}
	return out
}

// TodoCounts счетчики для заголовка
type TodoCounts struct {
	Total     int
	Active    int
	Completed int
}

func CountTodos(todos []model.Todo) TodoCounts {
	c := TodoCounts{Total: len(todos)}
	for _, t := range todos {
		if t.Completed {
			c.Completed++
		} else {
			c.Active++
		}
	}
	return c
}

// NoteFilter фильтр списка заметок: all или один из типов
type NoteFilter string

const NoteAll NoteFilter = "all"

// NoteFilters порядок переключения фильтров
var NoteFilters = []NoteFilter{NoteAll, NoteFilter(model.NoteImportant), NoteFilter(model.NoteDaily), NoteFilter(model.NoteGeneral)}

func ParseNoteFilter(s string) NoteFilter {
	if model.NoteType(s).Valid() {
		return NoteFilter(s)
	}
	return NoteAll
}

func (f NoteFilter) Label() string {
	if f == NoteAll {
		return "Semua"
	}
	return NoteTypeLabel(model.NoteType(f))
}

func (f NoteFilter) Empty() string {
	switch model.NoteType(f) {
	case model.NoteImportant:
		return "Tidak ada catatan penting!"
	case model.NoteDaily:
		return "Tidak ada catatan harian!"
	case model.NoteGeneral:
		return "Tidak ada catatan umum!"
	}
	return "Belum ada catatan. Buat catatan pertama Anda!"
}

func (f NoteFilter) Next() NoteFilter {
	return next(NoteFilters, f)
}

func FilterNotes(notes []model.Note, f NoteFilter) []model.Note {
	out := make([]model.Note, 0, len(notes))
	for _, n := range notes {
		if f == NoteAll || n.Type == model.NoteType(f) {
			out = append(out, n)
		}
	}
	return out
}

// NoteCounts счетчики заметок по типам
type NoteCounts struct {
	Total     int
	Important int
	Daily     int
	General   int
}

func CountNotes(notes []model.Note) NoteCounts {
	c := NoteCounts{Total: len(notes)}
	for _, n := range notes {
		switch n.Type {
		case model.NoteImportant:
			c.Important++
		case model.NoteDaily:
			c.Daily++
		case model.NoteGeneral:
			c.General++
		}
	}
	return c
}

// NoteTypeLabel короткая подпись типа для бейджа и счетчиков
func NoteTypeLabel(t model.NoteType) string {
	switch t {
	case model.NoteImportant:
		return "Penting"
	case model.NoteDaily:
		return "Harian"
	}
	return "Umum"
}

// NoteTypeOption подпись типа в выпадающем списке формы
func NoteTypeOption(t model.NoteType) string {
	if t == model.NoteDaily {
		return "Catatan Harian"
	}
	return NoteTypeLabel(t)
}

func next[T comparable](all []T, cur T) T {
	for i, v := range all {
		if v == cur {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}
