// Package tui терминальный клиент задач и заметок на bubbletea.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"todo-notes/internal/client"
	"todo-notes/internal/confirm"
	"todo-notes/internal/model"
	"todo-notes/internal/view"
)

// NoteDeletedNotice уведомление после удаления заметки
const NoteDeletedNotice = "Berhasil! Catatan berhasil dihapus."

type screen int

const (
	screenTodos screen = iota
	screenNotes
)

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeEdit
)

type itemKey struct {
	entity model.Entity
	id     int64
}

// Options зависимости TUI
type Options struct {
	Todos   *client.TodoStore
	Notes   *client.NoteStore
	Modal   *confirm.Modal
	Log     *zap.Logger
	Locale  string
	Timeout time.Duration
}

// Model корневая модель bubbletea
type Model struct {
	todos   *client.TodoStore
	notes   *client.NoteStore
	modal   *confirm.Modal
	log     *zap.Logger
	locale  string
	timeout time.Duration
	keys    keyMap

	screen     screen
	mode       mode
	todoFilter view.TodoFilter
	noteFilter view.NoteFilter
	cursor     [2]int

	form       form
	editID     int64
	submitting bool
	busy       map[itemKey]bool

	notice string
	errMsg string
}

func New(opts Options) Model {
	if opts.Modal == nil {
		opts.Modal = confirm.NewModal()
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	return Model{
		todos:      opts.Todos,
		notes:      opts.Notes,
		modal:      opts.Modal,
		log:        opts.Log,
		locale:     opts.Locale,
		timeout:    opts.Timeout,
		keys:       defaultKeys(),
		todoFilter: view.TodoAll,
		noteFilter: view.NoteAll,
		busy:       make(map[itemKey]bool),
	}
}

// сообщения

type loadedMsg struct {
	entity model.Entity
	err    error
}

// RefreshedMsg отправляется снаружи, когда список перечитан по событию ленты изменений
type RefreshedMsg struct {
	Entity model.Entity
}

type promptMsg confirm.Prompt

type todoCreatedMsg struct{ err error }

type todoUpdatedMsg struct {
	id   int64
	edit bool
	err  error
}

type todoDeletedMsg struct {
	id        int64
	cancelled bool
	err       error
}

type noteCreatedMsg struct{ err error }

type noteUpdatedMsg struct {
	id  int64
	err error
}

type noteDeletedMsg struct {
	id        int64
	cancelled bool
	err       error
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchTodos(), m.fetchNotes(), waitForPrompt(m.modal))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case promptMsg:
		// перерисовка с диалогом и ожидание следующего запроса
		return m, waitForPrompt(m.modal)

	case loadedMsg:
		if msg.err != nil {
			m.fail(fmt.Sprintf("load %ss", msg.entity), msg.err)
		}
		m.sync()
		return m, nil

	case RefreshedMsg:
		m.sync()
		return m, nil

	case todoCreatedMsg:
		m.submitting = false
		if msg.err != nil {
			m.fail("create todo", msg.err)
			return m, nil
		}
		if m.mode == modeAdd && !m.form.notes {
			m.closeForm()
		}
		m.cursor[screenTodos] = 0
		return m, nil

	case todoUpdatedMsg:
		delete(m.busy, itemKey{model.EntityTodo, msg.id})
		editing := m.mode == modeEdit && !m.form.notes && m.editID == msg.id
		if msg.edit {
			m.submitting = false
		}
		if !m.hasTodo(msg.id) {
			if editing {
				m.closeForm()
			}
			return m, nil
		}
		if msg.err != nil {
			m.fail("update todo", msg.err)
			return m, nil
		}
		if msg.edit && editing {
			m.closeForm()
		}
		return m, nil

	case todoDeletedMsg:
		delete(m.busy, itemKey{model.EntityTodo, msg.id})
		if msg.err != nil {
			m.fail("delete todo", msg.err)
		}
		m.sync()
		return m, nil

	case noteCreatedMsg:
		m.submitting = false
		if msg.err != nil {
			m.fail("create note", msg.err)
			return m, nil
		}
		if m.mode == modeAdd && m.form.notes {
			m.closeForm()
		}
		m.cursor[screenNotes] = 0
		return m, nil

	case noteUpdatedMsg:
		m.submitting = false
		editing := m.mode == modeEdit && m.form.notes && m.editID == msg.id
		if !m.hasNote(msg.id) {
			if editing {
				m.closeForm()
			}
			return m, nil
		}
		if msg.err != nil {
			m.fail("update note", msg.err)
			return m, nil
		}
		if editing {
			m.closeForm()
		}
		return m, nil

	case noteDeletedMsg:
		delete(m.busy, itemKey{model.EntityNote, msg.id})
		switch {
		case msg.cancelled:
		case msg.err != nil:
			m.fail("delete note", msg.err)
		default:
			m.notice = NoteDeletedNotice
		}
		m.sync()
		return m, nil
	}

	if m.mode != modeBrowse {
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	// открытый диалог подтверждения перехватывает ввод
	if _, ok := m.modal.Pending(); ok {
		switch {
		case key.Matches(msg, m.keys.Yes):
			m.modal.Resolve(true)
		case key.Matches(msg, m.keys.No):
			m.modal.Resolve(false)
		}
		return m, nil
	}

	if m.mode != modeBrowse {
		return m.handleFormKey(msg)
	}
	return m.handleBrowseKey(msg)
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Dismiss):
		m.notice = ""
		m.errMsg = ""

	case key.Matches(msg, m.keys.Switch):
		m.screen = 1 - m.screen
		m.errMsg = ""

	case key.Matches(msg, m.keys.Filter):
		if m.screen == screenTodos {
			m.todoFilter = m.todoFilter.Next()
		} else {
			m.noteFilter = m.noteFilter.Next()
		}
		m.cursor[m.screen] = 0

	case key.Matches(msg, m.keys.Up):
		if m.cursor[m.screen] > 0 {
			m.cursor[m.screen]--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor[m.screen] < m.visible()-1 {
			m.cursor[m.screen]++
		}

	case key.Matches(msg, m.keys.Reload):
		if m.screen == screenTodos {
			return m, m.fetchTodos()
		}
		return m, m.fetchNotes()

	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.errMsg = ""
		if m.screen == screenTodos {
			m.form = newTodoForm(nil)
		} else {
			m.form = newNoteForm(nil)
		}
		cmd := m.form.setFocus(fieldTitle)
		return m, cmd

	case key.Matches(msg, m.keys.Edit):
		return m.startEdit()

	case key.Matches(msg, m.keys.Toggle):
		t, ok := m.selectedTodo()
		if m.screen != screenTodos || !ok || m.busy[itemKey{model.EntityTodo, t.ID}] {
			return m, nil
		}
		m.busy[itemKey{model.EntityTodo, t.ID}] = true
		return m, m.toggleTodo(t.ID, !t.Completed)

	case key.Matches(msg, m.keys.Delete):
		return m.startDelete()
	}
	return m, nil
}

func (m Model) startEdit() (tea.Model, tea.Cmd) {
	if m.screen == screenTodos {
		t, ok := m.selectedTodo()
		if !ok || m.busy[itemKey{model.EntityTodo, t.ID}] {
			return m, nil
		}
		m.form, m.editID = newTodoForm(&t), t.ID
	} else {
		n, ok := m.selectedNote()
		if !ok || m.busy[itemKey{model.EntityNote, n.ID}] {
			return m, nil
		}
		m.form, m.editID = newNoteForm(&n), n.ID
	}
	m.mode = modeEdit
	m.errMsg = ""
	cmd := m.form.setFocus(fieldTitle)
	return m, cmd
}

func (m Model) startDelete() (tea.Model, tea.Cmd) {
	if m.screen == screenTodos {
		t, ok := m.selectedTodo()
		k := itemKey{model.EntityTodo, t.ID}
		if !ok || m.busy[k] {
			return m, nil
		}
		m.busy[k] = true
		return m, m.deleteTodo(t)
	}

	n, ok := m.selectedNote()
	k := itemKey{model.EntityNote, n.ID}
	if !ok || m.busy[k] {
		return m, nil
	}
	m.busy[k] = true
	return m, m.deleteNote(n)
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		// локальные изменения отбрасываются
		m.closeForm()
		m.errMsg = ""
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		cmd := m.form.move(1)
		return m, cmd
	case key.Matches(msg, m.keys.PrevField):
		cmd := m.form.move(-1)
		return m, cmd
	case key.Matches(msg, m.keys.Submit),
		key.Matches(msg, m.keys.Enter) && !m.form.multiline():
		if m.submitting {
			return m, nil
		}
		return m.submit()
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	title := m.form.title.Value()

	if !m.form.notes {
		title = strings.TrimSpace(title)
		if title == "" {
			m.errMsg = "Title is required"
			return m, nil
		}
		m.errMsg = ""
		m.submitting = true
		description := m.form.description.Value()
		if m.mode == modeAdd {
			return m, m.createTodo(title, description)
		}
		return m, m.updateTodo(m.editID, title, description)
	}

	content := m.form.content.Value()
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		m.errMsg = "Title and content are required"
		return m, nil
	}
	m.errMsg = ""
	m.submitting = true
	if m.mode == modeAdd {
		return m, m.createNote(title, content, m.form.noteType)
	}
	return m, m.updateNote(m.editID, title, content, m.form.noteType)
}

func (m *Model) closeForm() {
	m.mode = modeBrowse
	m.form = form{}
	m.editID = 0
}

// sync приводит курсор и режим редактирования к текущему содержимому списков
func (m *Model) sync() {
	if m.mode == modeEdit {
		if (m.form.notes && !m.hasNote(m.editID)) || (!m.form.notes && !m.hasTodo(m.editID)) {
			m.closeForm()
		}
	}
	for _, s := range []screen{screenTodos, screenNotes} {
		n := m.visibleOn(s)
		if m.cursor[s] >= n {
			m.cursor[s] = max(n-1, 0)
		}
	}
}

func (m *Model) fail(action string, err error) {
	m.log.Warn(action+" failed", zap.Error(err))
	m.errMsg = errorText(err)
}

func errorText(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

func (m Model) visibleTodos() []model.Todo {
	if m.todos == nil {
		return nil
	}
	return view.FilterTodos(m.todos.Items(), m.todoFilter)
}

func (m Model) visibleNotes() []model.Note {
	if m.notes == nil {
		return nil
	}
	return view.FilterNotes(m.notes.Items(), m.noteFilter)
}

func (m Model) visible() int {
	return m.visibleOn(m.screen)
}

func (m Model) visibleOn(s screen) int {
	if s == screenTodos {
		return len(m.visibleTodos())
	}
	return len(m.visibleNotes())
}

func (m Model) selectedTodo() (model.Todo, bool) {
	todos := m.visibleTodos()
	if i := m.cursor[screenTodos]; i >= 0 && i < len(todos) {
		return todos[i], true
	}
	return model.Todo{}, false
}

func (m Model) selectedNote() (model.Note, bool) {
	notes := m.visibleNotes()
	if i := m.cursor[screenNotes]; i >= 0 && i < len(notes) {
		return notes[i], true
	}
	return model.Note{}, false
}

func (m Model) hasTodo(id int64) bool {
	if m.todos == nil {
		return false
	}
	for _, t := range m.todos.Items() {
		if t.ID == id {
			return true
		}
	}
	return false
}

func (m Model) hasNote(id int64) bool {
	if m.notes == nil {
		return false
	}
	for _, n := range m.notes.Items() {
		if n.ID == id {
			return true
		}
	}
	return false
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.tabs() + "\n\n")

	if m.screen == screenTodos {
		b.WriteString(m.todosView())
	} else {
		b.WriteString(m.notesView())
	}

	if p, ok := m.modal.Pending(); ok {
		b.WriteString("\n" + promptView(p))
	}
	if m.notice != "" {
		b.WriteString("\n" + Success(m.notice) + " " + mutedStyle.Render("(esc)"))
	}
	if m.errMsg != "" {
		b.WriteString("\n" + Failure(m.errMsg))
	}

	b.WriteString("\n\n")
	if m.mode == modeBrowse {
		b.WriteString(helpLine(m.keys.browseHelp(m.screen == screenTodos)))
	} else {
		b.WriteString(helpLine(m.keys.formHelp()))
	}
	return Panel([]string{b.String()})
}

func (m Model) tabs() string {
	todos, notes := tabStyle.Render("Todos"), tabStyle.Render("Catatan")
	if m.screen == screenTodos {
		todos = activeTab.Render("Todos")
	} else {
		notes = activeTab.Render("Catatan")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, todos, " ", notes)
}

func (m Model) todosView() string {
	var b strings.Builder
	if m.todos != nil {
		b.WriteString(TodoCounters(view.CountTodos(m.todos.Items())))
	}
	b.WriteString("   " + mutedStyle.Render("filter: "+m.todoFilter.Label()) + "\n\n")

	if m.mode == modeAdd && !m.form.notes {
		b.WriteString(m.form.view("Add todo") + "\n\n")
	}

	todos := m.visibleTodos()
	if len(todos) == 0 {
		b.WriteString(mutedStyle.Render(m.todoFilter.Empty()))
		return b.String()
	}
	for i, t := range todos {
		if m.mode == modeEdit && !m.form.notes && m.editID == t.ID {
			b.WriteString(m.form.view("Edit todo") + "\n")
			continue
		}
		b.WriteString(m.line(i, TodoLine(t), m.busy[itemKey{model.EntityTodo, t.ID}]) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) notesView() string {
	var b strings.Builder
	if m.notes != nil {
		b.WriteString(NoteCounters(view.CountNotes(m.notes.Items())))
	}
	b.WriteString("   " + mutedStyle.Render("filter: "+m.noteFilter.Label()) + "\n\n")

	if m.mode == modeAdd && m.form.notes {
		b.WriteString(m.form.view("Tambah catatan") + "\n\n")
	}

	notes := m.visibleNotes()
	if len(notes) == 0 {
		b.WriteString(mutedStyle.Render(m.noteFilter.Empty()))
		return b.String()
	}
	for i, n := range notes {
		if m.mode == modeEdit && m.form.notes && m.editID == n.ID {
			b.WriteString(m.form.view("Edit catatan") + "\n")
			continue
		}
		b.WriteString(m.line(i, NoteLine(n, m.locale), m.busy[itemKey{model.EntityNote, n.ID}]) + "\n")
		if i == m.cursor[screenNotes] {
			b.WriteString("    " + mutedStyle.Render(n.Content) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) line(i int, text string, busy bool) string {
	prefix := "  "
	if m.mode == modeBrowse && i == m.cursor[m.screen] {
		prefix = selectedStyle.Render(">") + " "
	}
	if busy {
		text += " " + pendingStyle.Render("…")
	}
	return prefix + text
}

func promptView(p confirm.Prompt) string {
	confirmText := p.ConfirmText
	if confirmText == "" {
		confirmText = "yes"
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("9")).
		Padding(0, 1).
		Render(titleStyle.Render(p.Title) + "\n" + p.Message + "\n" +
			helpStyle.Render("y "+confirmText+" • n cancel"))
}
