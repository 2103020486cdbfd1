// Package views holds the individual screens of the browse TUI.
package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pablasso/trowel/internal/task"
	"github.com/pablasso/trowel/internal/tui/components"
	"github.com/pablasso/trowel/internal/tui/msgs"
	"github.com/pablasso/trowel/internal/tui/styles"
)

// TaskListModel is the model for the task list view.
type TaskListModel struct {
	tasks    []*task.Task
	filtered []*task.Task
	cursor   int

	filter    textinput.Model
	filtering bool

	width  int
	height int
}

// NewTaskListModel creates a list over the given tasks, which are
// expected in display order.
func NewTaskListModel(tasks []*task.Task) TaskListModel {
	ti := textinput.New()
	ti.Placeholder = "Filter tasks..."
	ti.CharLimit = 64
	ti.Width = 30

	return TaskListModel{
		tasks:    tasks,
		filtered: tasks,
		filter:   ti,
	}
}

// Init implements tea.Model.
func (m TaskListModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m TaskListModel) Update(msg tea.Msg) (TaskListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// With nothing to browse, any key leaves.
		if len(m.tasks) == 0 {
			return m, tea.Quit
		}

		if m.filtering {
			return m.handleFilterKeys(msg)
		}
		return m.handleListKeys(msg)
	}
	return m, nil
}

// handleListKeys processes keys while navigating the list.
func (m TaskListModel) handleListKeys(msg tea.KeyMsg) (TaskListModel, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "/":
		m.filtering = true
		m.filter.Focus()
		return m, textinput.Blink
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(m.filtered) {
			name := m.filtered[m.cursor].Name
			return m, func() tea.Msg { return msgs.ShowDetailMsg{Name: name} }
		}
	}
	return m, nil
}

// handleFilterKeys processes keys while the filter input is focused.
func (m TaskListModel) handleFilterKeys(msg tea.KeyMsg) (TaskListModel, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.applyFilter()
		return m, nil
	case "enter":
		m.filtering = false
		m.filter.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

// applyFilter recomputes the visible tasks from the filter text and
// keeps the cursor in range.
func (m *TaskListModel) applyFilter() {
	query := strings.ToLower(m.filter.Value())
	if query == "" {
		m.filtered = m.tasks
	} else {
		var kept []*task.Task
		for _, t := range m.tasks {
			if strings.Contains(strings.ToLower(t.Name), query) ||
				strings.Contains(strings.ToLower(t.Doc), query) {
				kept = append(kept, t)
			}
		}
		m.filtered = kept
	}

	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View implements tea.Model.
func (m TaskListModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if len(m.tasks) == 0 {
		return m.renderEmptyView()
	}

	return m.renderNormalView()
}

func (m TaskListModel) renderNormalView() string {
	var b strings.Builder

	title := styles.TitleStyle.Render("Tasks")
	titleLine := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, title)

	var filterLines int
	var filterLine string
	if m.filtering || m.filter.Value() != "" {
		filterLines = 2
		filterLine = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.filter.View())
	}

	var taskList string
	listLines := len(m.filtered)
	if listLines == 0 {
		taskList = styles.SubtleStyle.Render("No tasks match.")
		listLines = 1
	} else {
		var taskLines []string
		for i, t := range m.filtered {
			taskLines = append(taskLines, m.formatTaskLine(i, t))
		}
		taskList = strings.Join(taskLines, "\n")
	}

	// Vertical placement: bias towards the top third.
	statusBarHeight := 1
	contentHeight := 2 + filterLines + listLines
	availableHeight := m.height - statusBarHeight

	topPadding := (availableHeight - contentHeight) / 3
	if topPadding < 0 {
		topPadding = 0
	}

	b.WriteString(strings.Repeat("\n", topPadding))
	b.WriteString(titleLine)
	b.WriteString("\n\n")
	if filterLines > 0 {
		b.WriteString(filterLine)
		b.WriteString("\n\n")
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, taskList))

	currentLines := topPadding + contentHeight
	bottomPadding := availableHeight - currentLines
	if bottomPadding < 0 {
		bottomPadding = 0
	}
	b.WriteString(strings.Repeat("\n", bottomPadding))

	hints := []string{"↑↓ Navigate", "Enter Details", "/ Filter", "q Quit"}
	if m.filtering {
		hints = []string{"Enter Apply", "Esc Clear"}
	}
	b.WriteString(components.NewStatusBar().Render(m.width, m.countSummary(), hints))

	return b.String()
}

// formatTaskLine formats a single task line for display.
func (m TaskListModel) formatTaskLine(index int, t *task.Task) string {
	indicator := "○"
	if index == m.cursor {
		indicator = "●"
	}

	line := fmt.Sprintf("%s %-30s", indicator, t.Name)
	if index == m.cursor {
		line = styles.SelectedStyle.Render(line)
	}
	if t.Doc != "" {
		line += "  " + styles.SubtleStyle.Render(t.Doc)
	}
	return line
}

func (m TaskListModel) renderEmptyView() string {
	var b strings.Builder

	title := styles.TitleStyle.Render("Tasks")
	titleLine := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, title)

	msg1 := "No tasks found!"
	msg2 := "Declare tasks in trowel.lua or under the trowel/ directory."
	msg1Line := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, msg1)
	msg2Line := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, styles.SubtleStyle.Render(msg2))

	statusBarHeight := 1
	contentHeight := 5
	availableHeight := m.height - statusBarHeight

	topPadding := (availableHeight - contentHeight) / 3
	if topPadding < 0 {
		topPadding = 0
	}

	b.WriteString(strings.Repeat("\n", topPadding))
	b.WriteString(titleLine)
	b.WriteString("\n\n")
	b.WriteString(msg1Line)
	b.WriteString("\n\n")
	b.WriteString(msg2Line)

	currentLines := topPadding + contentHeight
	bottomPadding := availableHeight - currentLines
	if bottomPadding < 0 {
		bottomPadding = 0
	}
	b.WriteString(strings.Repeat("\n", bottomPadding))

	b.WriteString(components.NewStatusBar().Render(m.width, m.countSummary(), []string{"any key Quit"}))

	return b.String()
}

// countSummary returns the left status bar text, e.g. "3 tasks" or
// "1/3 tasks" while a filter is active.
func (m TaskListModel) countSummary() string {
	if len(m.filtered) != len(m.tasks) {
		return fmt.Sprintf("%d/%d tasks", len(m.filtered), len(m.tasks))
	}
	if len(m.tasks) == 1 {
		return "1 task"
	}
	return fmt.Sprintf("%d tasks", len(m.tasks))
}

// SetSize updates the model dimensions.
func (m *TaskListModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Tasks returns all tasks behind the list, ignoring the filter.
func (m TaskListModel) Tasks() []*task.Task {
	return m.tasks
}

// Visible returns the tasks currently shown.
func (m TaskListModel) Visible() []*task.Task {
	return m.filtered
}

// Cursor returns the current cursor position within the visible tasks.
func (m TaskListModel) Cursor() int {
	return m.cursor
}

// Filtering reports whether the filter input is focused.
func (m TaskListModel) Filtering() bool {
	return m.filtering
}
