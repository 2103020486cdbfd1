package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pablasso/trowel/internal/task"
	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help [task...]",
	Short: "Describe tasks and their parameters",
	RunE:  runHelp,
}

func runHelp(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()
	return rt.help(cmd.OutOrStdout(), args)
}

// help lists every task, or describes the named ones in detail.
func (rt *runtime) help(out io.Writer, names []string) error {
	if len(names) == 0 {
		return rt.listHelp(out)
	}
	for i, name := range names {
		t, err := task.Resolve(rt.reg, name)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(out)
		}
		describe(out, t)
	}
	return nil
}

func (rt *runtime) listHelp(out io.Writer) error {
	tasks := rt.reg.All()
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks found!")
		return nil
	}
	for _, t := range tasks {
		if t.Doc != "" {
			fmt.Fprintf(out, "%s => %s\n", t.Name, t.Doc)
		} else {
			fmt.Fprintln(out, t.Name)
		}
	}
	return nil
}

// describe prints one task's summary, source file, and parameter table.
func describe(out io.Writer, t *task.Task) {
	if t.Doc != "" {
		fmt.Fprintf(out, "%s => %s\n", t.Name, t.Doc)
	} else {
		fmt.Fprintln(out, t.Name)
	}
	fmt.Fprintf(out, "Source: %s\n", t.Source)
	if len(t.Params) == 0 {
		fmt.Fprintln(out, "Takes no arguments.")
		return
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PARAMETER\tKIND\tDEFAULT")
	for _, p := range t.Params {
		def := "-"
		if p.Default != nil {
			def = fmt.Sprintf("%v", p.Default)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, p.Kind, def)
	}
	w.Flush()
}
