// Package cli implements the trowel command line interface.
package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	dryRun  bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "trowel [task] [arguments...]",
	Short: "Run project tasks defined in Lua",
	Long: `Trowel discovers tasks declared in Lua files (trowel.lua and the
trowel/ directory of the working directory and of $TROWEL_HOME) and
runs the one named on the command line. Task names are dotted and may
be shortened to any unambiguous prefix or final segment.`,
	Args: cobra.ArbitraryArgs,
	// Task arguments are free-form; they are split from the global
	// options by hand so tasks can declare any option names they like.
	DisableFlagParsing: true,
	SilenceUsage:       true,
	RunE:               runRoot,
	ValidArgsFunction:  completeTasks,
}

func init() {
	// Registered even though the root never parses them: the help text
	// documents them and subcommand routing must know they take no
	// value.
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log discovery and dispatch diagnostics")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Resolve and bind the task but do not run it")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable styled output")

	rootCmd.AddCommand(tasksCmd, browseCmd, versionCmd)
	rootCmd.SetHelpCommand(helpCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runRoot(cmd *cobra.Command, args []string) error {
	rest, help := splitGlobal(args)
	if help {
		return cmd.Help()
	}

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	if len(rest) == 0 {
		return rt.listTasks(cmd.OutOrStdout())
	}

	// Reserved words reach this function instead of their subcommands
	// when global options precede them.
	switch rest[0] {
	case "tasks":
		return rt.listTasks(cmd.OutOrStdout())
	case "help":
		return rt.help(cmd.OutOrStdout(), rest[1:])
	}
	return rt.dispatch(cmd.Context(), cmd.OutOrStdout(), rest[0], rest[1:])
}

// splitGlobal pulls the global options out of the raw argument list.
// Only bare, exact tokens count: --verbose=loud belongs to the task
// being invoked, not to trowel.
func splitGlobal(args []string) (rest []string, help bool) {
	for _, arg := range args {
		switch arg {
		case "--verbose", "-v":
			verbose = true
		case "--dry-run":
			dryRun = true
		case "--no-color":
			noColor = true
		case "--help", "-h":
			help = true
		default:
			rest = append(rest, arg)
		}
	}
	return rest, help
}

// completeTasks offers discovered task names to shell completion.
func completeTasks(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		// Task arguments are the task's business.
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	rt, err := newRuntime()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer rt.Close()

	var names []string
	for _, t := range rt.reg.All() {
		if !strings.HasPrefix(t.Name, toComplete) {
			continue
		}
		if t.Doc != "" {
			names = append(names, t.Name+"\t"+t.Doc)
		} else {
			names = append(names, t.Name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
