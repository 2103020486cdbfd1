// Package msgs defines shared message types for TUI view transitions.
package msgs

// ShowDetailMsg signals transition to the detail view for the named task.
type ShowDetailMsg struct {
	Name string
}

// BackToListMsg signals return to the task list view.
type BackToListMsg struct{}
