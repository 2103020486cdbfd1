package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pablasso/trowel/internal/config"
	"github.com/pablasso/trowel/internal/discover"
	"github.com/pablasso/trowel/internal/luatask"
	"github.com/pablasso/trowel/internal/task"
)

// runtime holds what a single invocation needs: the effective
// configuration, the Lua loader, and the registry of discovered tasks.
type runtime struct {
	cfg    config.Config
	log    *slog.Logger
	loader *luatask.Loader
	reg    *task.Registry
}

// newRuntime loads configuration, applies command line overrides, and
// discovers tasks from the working directory and TROWEL_HOME.
func newRuntime() (*runtime, error) {
	cfg, err := config.Load(config.File())
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Verbose = true
	}
	if noColor {
		cfg.Color = config.ColorNever
	}

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to determine working directory: %w", err)
	}

	loader := luatask.NewLoader()
	reg, err := discover.New(loader, discover.WithLogger(log)).Discover(cwd, config.Home())
	if err != nil {
		loader.Close()
		return nil, err
	}
	return &runtime{cfg: cfg, log: log, loader: loader, reg: reg}, nil
}

// Close releases the Lua states backing the discovered tasks.
func (rt *runtime) Close() {
	rt.loader.Close()
}

// dispatch resolves name, binds args onto the task's parameters, and
// invokes it. With --dry-run it stops after binding and prints the
// call that would have run.
func (rt *runtime) dispatch(ctx context.Context, out io.Writer, name string, args []string) error {
	t, err := task.Resolve(rt.reg, name)
	if err != nil {
		return err
	}
	rt.log.Debug(fmt.Sprintf("Dispatching %s", t.Name))

	call, err := task.Bind(t.Params, args)
	if err != nil {
		return fmt.Errorf("%s: %w", t.Name, err)
	}
	if dryRun {
		fmt.Fprintf(out, "Would have executed:\n%s\n", call.Format(t.Name))
		return nil
	}
	if err := t.Invoke(ctx, call); err != nil {
		return fmt.Errorf("%s: %w", t.Name, err)
	}
	return nil
}
