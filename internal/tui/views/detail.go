package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pablasso/trowel/internal/task"
	"github.com/pablasso/trowel/internal/tui/components"
	"github.com/pablasso/trowel/internal/tui/msgs"
	"github.com/pablasso/trowel/internal/tui/styles"
)

// TaskDetailModel shows one task's doc, source file, and parameters.
type TaskDetailModel struct {
	task   *task.Task
	width  int
	height int
}

// NewTaskDetailModel creates a detail view for the given task.
func NewTaskDetailModel(t *task.Task) TaskDetailModel {
	return TaskDetailModel{task: t}
}

// Init implements tea.Model.
func (m TaskDetailModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m TaskDetailModel) Update(msg tea.Msg) (TaskDetailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "backspace":
			return m, func() tea.Msg { return msgs.BackToListMsg{} }
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m TaskDetailModel) View() string {
	if m.width == 0 || m.height == 0 || m.task == nil {
		return ""
	}

	var b strings.Builder

	title := styles.TitleStyle.Render(m.task.Name)
	titleLine := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, title)

	var lines []string
	if m.task.Doc != "" {
		lines = append(lines, m.task.Doc)
	} else {
		lines = append(lines, styles.SubtleStyle.Render("No description."))
	}
	lines = append(lines, styles.SubtleStyle.Render("Source: "+m.task.Source))
	lines = append(lines, "")
	lines = append(lines, m.parameterLines()...)

	body := strings.Join(lines, "\n")

	statusBarHeight := 1
	contentHeight := 2 + len(lines)
	availableHeight := m.height - statusBarHeight

	topPadding := (availableHeight - contentHeight) / 3
	if topPadding < 0 {
		topPadding = 0
	}

	b.WriteString(strings.Repeat("\n", topPadding))
	b.WriteString(titleLine)
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body))

	currentLines := topPadding + contentHeight
	bottomPadding := availableHeight - currentLines
	if bottomPadding < 0 {
		bottomPadding = 0
	}
	b.WriteString(strings.Repeat("\n", bottomPadding))

	hints := []string{"Esc Back", "q Quit"}
	b.WriteString(components.NewStatusBar().Render(m.width, m.task.Name, hints))

	return b.String()
}

// parameterLines renders the parameter block, one line per parameter.
func (m TaskDetailModel) parameterLines() []string {
	if len(m.task.Params) == 0 {
		return []string{styles.SubtleStyle.Render("Takes no arguments.")}
	}

	lines := []string{styles.SectionStyle.Render("Parameters")}
	for _, p := range m.task.Params {
		line := fmt.Sprintf("%-20s %s", p.Name, p.Kind)
		if p.Default != nil {
			line += styles.SubtleStyle.Render(fmt.Sprintf("  (default %v)", p.Default))
		}
		lines = append(lines, line)
	}
	return lines
}

// SetSize updates the model dimensions.
func (m *TaskDetailModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Task returns the task being shown.
func (m TaskDetailModel) Task() *task.Task {
	return m.task
}
