// Package discover walks task search roots, loads every task file it
// finds, and merges the declared tasks into a single registry.
package discover

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pablasso/trowel/internal/task"
)

const (
	// RootFile is the task file looked up at the top of each search root.
	RootFile = "trowel.lua"
	// TaskDir is the directory of namespaced task files under each root.
	TaskDir = "trowel"

	luaExt   = ".lua"
	initFile = "init"
)

// Declared is one task reported by a loader for a single file. Name is
// the dotted name within the file (in-file groups included); the walker
// prepends the namespace derived from the file's location.
type Declared struct {
	Name string
	Doc  string
	Fn   task.Callable
}

// Loader executes one task-definition file and reports the tasks it
// declared, in declaration order.
type Loader interface {
	Load(path string) ([]Declared, error)
}

// LoadError reports a task file the loader could not execute. It is
// fatal: discovery stops at the offending file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Walker discovers task files and builds the registry for one run.
type Walker struct {
	loader Loader
	log    *slog.Logger
}

// Option configures a Walker.
type Option func(*Walker)

// WithLogger sets the logger that receives discovery diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(w *Walker) {
		w.log = log
	}
}

// New creates a Walker that loads task files through the given loader.
func New(loader Loader, opts ...Option) *Walker {
	w := &Walker{loader: loader, log: slog.Default()}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Discover scans the primary root and, when non-empty, the secondary
// root, merging every declared task into one registry. The secondary
// root is visited last, so its tasks win name collisions. Roots that do
// not exist or hold no task files contribute nothing; an empty registry
// is not an error.
func (w *Walker) Discover(primary, secondary string) (*task.Registry, error) {
	reg := task.NewRegistry()
	if err := w.walkRoot(reg, primary); err != nil {
		return nil, err
	}
	if secondary != "" {
		if err := w.walkRoot(reg, secondary); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// walkRoot visits the root task file first, then every .lua file under
// the task directory in lexical order, depth-first. The ordering keeps
// last-wins collisions deterministic.
func (w *Walker) walkRoot(reg *task.Registry, root string) error {
	rootFile := filepath.Join(root, RootFile)
	if info, err := os.Stat(rootFile); err == nil && info.Mode().IsRegular() {
		if err := w.loadFile(reg, rootFile, ""); err != nil {
			return err
		}
	}

	taskDir := filepath.Join(root, TaskDir)
	if info, err := os.Stat(taskDir); err != nil || !info.IsDir() {
		return nil
	}
	return filepath.WalkDir(taskDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != luaExt {
			return nil
		}
		return w.loadFile(reg, path, namespaceFor(taskDir, path))
	})
}

// loadFile runs the loader on one file and registers its tasks under
// the namespace derived from the file's location.
func (w *Walker) loadFile(reg *task.Registry, path, namespace string) error {
	w.log.Debug(fmt.Sprintf("Loading %s", path))

	decls, err := w.loader.Load(path)
	if err != nil {
		return &LoadError{Path: path, Err: err}
	}
	for _, decl := range decls {
		name := decl.Name
		if namespace != "" {
			name = namespace + "." + name
		}
		t, err := task.New(name, decl.Doc, path, decl.Fn)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		w.log.Debug(fmt.Sprintf("Found task %s in %s", name, path))
		reg.Add(t)
	}
	return nil
}

// namespaceFor derives the dotted namespace of a task file from its
// path relative to the task directory. A file named init.lua takes its
// directory's namespace instead of adding a segment of its own.
func namespaceFor(taskDir, path string) string {
	rel, err := filepath.Rel(taskDir, path)
	if err != nil {
		return ""
	}
	rel = strings.TrimSuffix(filepath.ToSlash(rel), luaExt)
	if rel == initFile {
		return ""
	}
	rel = strings.TrimSuffix(rel, "/"+initFile)
	return strings.ReplaceAll(rel, "/", ".")
}
