// Package task defines the core model of the runner: discovered tasks,
// their parameter descriptors, the per-run registry, name resolution,
// and argument binding.
package task

import (
	"context"
	"fmt"
	"sort"
)

// ParamKind classifies how a parameter accepts values.
type ParamKind string

const (
	// Required parameters must receive a value.
	Required ParamKind = "required"
	// Optional parameters carry a default and may be filled positionally
	// or by name.
	Optional ParamKind = "optional"
	// Variadic parameters absorb overflow positional values.
	Variadic ParamKind = "variadic"
	// Keyword parameters absorb options that name no declared parameter.
	Keyword ParamKind = "keyword"
)

// ParamSpec describes one declared parameter of a task, in declaration
// order within its task.
type ParamSpec struct {
	Name string
	Kind ParamKind
	// Default holds a string or bool for Optional parameters, nil
	// otherwise. A bool default enables the --name/--no-name flag
	// shorthand at binding time.
	Default any
}

// Callable is the invocable body behind a task.
type Callable interface {
	// Params reports the declared parameter list in declaration order.
	// It fails with an UninspectableError when the signature cannot be
	// determined.
	Params() ([]ParamSpec, error)

	// Invoke calls the body with bound arguments.
	Invoke(ctx context.Context, call BoundCall) error
}

// Task is one discovered invocable unit. Tasks are built during a
// discovery pass and immutable afterwards; none outlives a single run.
type Task struct {
	// Name is the dotted task name, unique within a registry.
	Name string
	// Doc is an optional one-line description used by listings.
	Doc string
	// Params holds the parameter descriptors in declaration order.
	Params []ParamSpec
	// Source is the file that declared the task, kept for diagnostics.
	Source string

	fn Callable
}

// New builds a Task from a discovered callable, inspecting its
// parameter list once so later binding needs no live introspection.
func New(name, doc, source string, fn Callable) (*Task, error) {
	params, err := fn.Params()
	if err != nil {
		return nil, fmt.Errorf("failed to inspect task %s: %w", name, err)
	}
	return &Task{Name: name, Doc: doc, Params: params, Source: source, fn: fn}, nil
}

// Invoke runs the task body with the given bound call.
func (t *Task) Invoke(ctx context.Context, call BoundCall) error {
	return t.fn.Invoke(ctx, call)
}

// Registry maps dotted task names to tasks for one run. It is built
// fresh per invocation and never persisted.
type Registry struct {
	tasks map[string]*Task
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{tasks: make(map[string]*Task)}
}

// Add inserts a task. A task with the same name replaces the earlier
// one; last discovered wins.
func (r *Registry) Add(t *Task) {
	r.tasks[t.Name] = t
}

// Get returns the task registered under the exact name.
func (r *Registry) Get(name string) (*Task, bool) {
	t, ok := r.tasks[name]
	return t, ok
}

// Len reports the number of registered tasks.
func (r *Registry) Len() int {
	return len(r.tasks)
}

// Names returns all registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tasks))
	for name := range r.tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns all tasks sorted by name.
func (r *Registry) All() []*Task {
	tasks := make([]*Task, 0, len(r.tasks))
	for _, name := range r.Names() {
		tasks = append(tasks, r.tasks[name])
	}
	return tasks
}
