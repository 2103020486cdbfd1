// Package tui implements the interactive task browser.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pablasso/trowel/internal/task"
	"github.com/pablasso/trowel/internal/tui/msgs"
	"github.com/pablasso/trowel/internal/tui/views"
)

// View represents the different screens in the browser.
type View int

const (
	ViewList View = iota
	ViewDetail
)

// Model is the main Bubble Tea model that orchestrates the views.
type Model struct {
	currentView View
	width       int
	height      int

	list   views.TaskListModel
	detail views.TaskDetailModel

	reg *task.Registry
}

// Run starts the browser over the given registry and blocks until the
// user quits.
func Run(reg *task.Registry) error {
	p := tea.NewProgram(NewModel(reg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// NewModel builds the initial model listing every registered task.
func NewModel(reg *task.Registry) Model {
	return Model{
		currentView: ViewList,
		list:        views.NewTaskListModel(reg.All()),
		reg:         reg,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height)
		m.detail.SetSize(msg.Width, msg.Height)
		return m, nil

	case msgs.ShowDetailMsg:
		if t, ok := m.reg.Get(msg.Name); ok {
			m.detail = views.NewTaskDetailModel(t)
			m.detail.SetSize(m.width, m.height)
			m.currentView = ViewDetail
		}
		return m, nil

	case msgs.BackToListMsg:
		m.currentView = ViewList
		return m, nil
	}

	var cmd tea.Cmd
	switch m.currentView {
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	default:
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	switch m.currentView {
	case ViewDetail:
		return m.detail.View()
	default:
		return m.list.View()
	}
}
