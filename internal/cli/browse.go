package cli

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pablasso/trowel/internal/config"
	"github.com/pablasso/trowel/internal/tui"
	"github.com/pablasso/trowel/internal/tui/styles"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse discovered tasks interactively",
	Args:  cobra.NoArgs,
	RunE:  runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	styles.SetColorMode(rt.colorMode())
	return tui.Run(rt.reg)
}

// colorMode resolves the configured color setting against the terminal.
func (rt *runtime) colorMode() string {
	if rt.cfg.Color != config.ColorAuto {
		return rt.cfg.Color
	}
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return config.ColorAlways
	}
	return config.ColorNever
}
