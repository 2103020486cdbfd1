package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pablasso/trowel/internal/task"
	"github.com/pablasso/trowel/internal/tui/msgs"
)

func sampleTasks() []*task.Task {
	return []*task.Task{
		{Name: "build", Doc: "Compile the project", Source: "trowel.lua"},
		{Name: "db.migrate", Doc: "Apply pending migrations", Source: "trowel/db.lua"},
		{Name: "test", Source: "trowel.lua"},
	}
}

func TestTaskListModel_Init(t *testing.T) {
	m := NewTaskListModel(sampleTasks())

	if m.Init() != nil {
		t.Error("expected Init() to return nil")
	}
	if m.Cursor() != 0 {
		t.Errorf("expected cursor to start at 0, got %d", m.Cursor())
	}
	if len(m.Tasks()) != 3 {
		t.Errorf("expected 3 tasks, got %d", len(m.Tasks()))
	}
}

func TestTaskListModel_CursorNavigation(t *testing.T) {
	m := NewTaskListModel(sampleTasks())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.Cursor() != 1 {
		t.Errorf("expected cursor 1 after down, got %d", m.Cursor())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	if m.Cursor() != 2 {
		t.Errorf("expected cursor 2 after j, got %d", m.Cursor())
	}

	// Already on the last task.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.Cursor() != 2 {
		t.Errorf("expected cursor clamped at 2, got %d", m.Cursor())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	if m.Cursor() != 1 {
		t.Errorf("expected cursor 1 after k, got %d", m.Cursor())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.Cursor() != 0 {
		t.Errorf("expected cursor clamped at 0, got %d", m.Cursor())
	}
}

func TestTaskListModel_EnterShowsDetail(t *testing.T) {
	m := NewTaskListModel(sampleTasks())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected command from Enter")
	}

	msg := cmd()
	detail, ok := msg.(msgs.ShowDetailMsg)
	if !ok {
		t.Fatalf("expected msgs.ShowDetailMsg, got %T", msg)
	}
	if detail.Name != "db.migrate" {
		t.Errorf("expected detail for db.migrate, got %s", detail.Name)
	}
}

func TestTaskListModel_QuitKeys(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		m := NewTaskListModel(sampleTasks())
		_, cmd := m.Update(key)
		if cmd == nil {
			t.Fatalf("expected quit command for %s", key.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("expected tea.QuitMsg for %s", key.String())
		}
	}
}

func TestTaskListModel_EmptyState_AnyKeyQuits(t *testing.T) {
	m := NewTaskListModel(nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if cmd == nil {
		t.Fatal("expected quit command from any key in empty state")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg in empty state")
	}
}

func TestTaskListModel_View_ListsTasks(t *testing.T) {
	m := NewTaskListModel(sampleTasks())
	m.SetSize(80, 24)

	view := m.View()
	for _, want := range []string{"build", "db.migrate", "test", "Compile the project", "3 tasks"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestTaskListModel_View_EmptyState(t *testing.T) {
	m := NewTaskListModel(nil)
	m.SetSize(80, 24)

	view := m.View()
	if !strings.Contains(view, "No tasks found!") {
		t.Error("expected empty state message")
	}
}

func TestTaskListModel_View_ZeroSizeRendersNothing(t *testing.T) {
	m := NewTaskListModel(sampleTasks())

	if m.View() != "" {
		t.Error("expected empty view before the first WindowSizeMsg")
	}
}

func TestTaskListModel_Update_WindowSizeMsg(t *testing.T) {
	m := NewTaskListModel(nil)

	m, cmd := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	if cmd != nil {
		t.Error("expected no command from WindowSizeMsg")
	}
	if m.width != 100 || m.height != 40 {
		t.Errorf("expected size 100x40, got %dx%d", m.width, m.height)
	}
}

func typeRunes(t *testing.T, m TaskListModel, runes string) TaskListModel {
	t.Helper()
	for _, r := range runes {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestTaskListModel_FilterNarrowsTasks(t *testing.T) {
	m := NewTaskListModel(sampleTasks())

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	if cmd == nil {
		t.Fatal("expected blink command when entering filter mode")
	}
	if !m.Filtering() {
		t.Fatal("expected filter mode after /")
	}

	m = typeRunes(t, m, "db")
	if len(m.Visible()) != 1 || m.Visible()[0].Name != "db.migrate" {
		t.Fatalf("expected filter to keep db.migrate, got %d visible", len(m.Visible()))
	}

	// Enter keeps the filter applied but returns to navigation.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Filtering() {
		t.Error("expected filter input to blur on Enter")
	}
	if len(m.Visible()) != 1 {
		t.Errorf("expected filter to stay applied, got %d visible", len(m.Visible()))
	}

	// Enter again opens the only visible task.
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected command from Enter")
	}
	detail, ok := cmd().(msgs.ShowDetailMsg)
	if !ok {
		t.Fatalf("expected msgs.ShowDetailMsg, got %T", cmd())
	}
	if detail.Name != "db.migrate" {
		t.Errorf("expected detail for db.migrate, got %s", detail.Name)
	}
}

func TestTaskListModel_FilterMatchesDocText(t *testing.T) {
	m := NewTaskListModel(sampleTasks())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = typeRunes(t, m, "compile")

	if len(m.Visible()) != 1 || m.Visible()[0].Name != "build" {
		t.Fatalf("expected doc text to match build, got %d visible", len(m.Visible()))
	}
}

func TestTaskListModel_FilterEscClears(t *testing.T) {
	m := NewTaskListModel(sampleTasks())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = typeRunes(t, m, "db")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if m.Filtering() {
		t.Error("expected filter mode to end on Esc")
	}
	if len(m.Visible()) != len(sampleTasks()) {
		t.Errorf("expected all tasks visible after Esc, got %d", len(m.Visible()))
	}
}

func TestTaskListModel_FilterClampsCursor(t *testing.T) {
	m := NewTaskListModel(sampleTasks())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = typeRunes(t, m, "db")

	if m.Cursor() != 0 {
		t.Errorf("expected cursor clamped to visible tasks, got %d", m.Cursor())
	}
}

func TestTaskListModel_FilterNoMatches(t *testing.T) {
	m := NewTaskListModel(sampleTasks())
	m.SetSize(80, 24)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = typeRunes(t, m, "zzz")

	if len(m.Visible()) != 0 {
		t.Fatalf("expected no visible tasks, got %d", len(m.Visible()))
	}
	if !strings.Contains(m.View(), "No tasks match.") {
		t.Error("expected no-match message in view")
	}
	if !strings.Contains(m.View(), "0/3 tasks") {
		t.Error("expected filtered count in status bar")
	}
}
