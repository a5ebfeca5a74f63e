package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"todo-notes/internal/model"
	"todo-notes/internal/view"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
	tabStyle      = lipgloss.NewStyle().Padding(0, 1)
	activeTab     = tabStyle.Bold(true).Reverse(true)

	badgeStyles = map[model.NoteType]lipgloss.Style{
		model.NoteImportant: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		model.NoteDaily:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		model.NoteGeneral:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}

	boxChecked   = "☑"
	boxUnchecked = "☐"
)

// Success строка об успешной операции
func Success(msg string) string {
	return successStyle.Render("✔ " + msg)
}

// Failure строка об ошибке
func Failure(msg string) string {
	return errorStyle.Render("✖ " + msg)
}

// Panel рамка вокруг строк
func Panel(lines []string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return border.Render(strings.Join(lines, "\n"))
}

// TodoLine однострочное представление задачи
func TodoLine(t model.Todo) string {
	box, title := mutedStyle.Render(boxUnchecked), t.Title
	if t.Completed {
		box, title = successStyle.Render(boxChecked), doneStyle.Render(t.Title)
	}
	line := fmt.Sprintf("%s %s", box, title)
	if t.Description != nil {
		line += " " + mutedStyle.Render("- "+*t.Description)
	}
	return line
}

// NoteLine однострочное представление заметки: бейдж типа, заголовок, дата
func NoteLine(n model.Note, locale string) string {
	badge := badgeStyles[n.Type].Render("[" + view.NoteTypeLabel(n.Type) + "]")
	return fmt.Sprintf("%s %s %s", badge, titleStyle.Render(n.Title), mutedStyle.Render(view.FormatDate(n.CreatedAt.Local(), locale)))
}

// TodoCounters заголовок со счетчиками задач
func TodoCounters(c view.TodoCounts) string {
	return fmt.Sprintf("%s %d  %s %d  %s %d",
		accentStyle.Render("Total"), c.Total,
		pendingStyle.Render("• Active"), c.Active,
		successStyle.Render("✔ Completed"), c.Completed,
	)
}

// NoteCounters заголовок со счетчиками заметок
func NoteCounters(c view.NoteCounts) string {
	return fmt.Sprintf("%s %d  %s %d  %s %d  %s %d",
		accentStyle.Render(view.NoteAll.Label()), c.Total,
		badgeStyles[model.NoteImportant].Render(view.NoteTypeLabel(model.NoteImportant)), c.Important,
		badgeStyles[model.NoteDaily].Render(view.NoteTypeLabel(model.NoteDaily)), c.Daily,
		badgeStyles[model.NoteGeneral].Render(view.NoteTypeLabel(model.NoteGeneral)), c.General,
	)
}
