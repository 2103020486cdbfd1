package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List every discovered task",
	Args:  cobra.NoArgs,
	RunE:  runTasks,
}

func runTasks(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()
	return rt.listTasks(cmd.OutOrStdout())
}

// listTasks prints one line per task, name first, summary after a #.
func (rt *runtime) listTasks(out io.Writer) error {
	tasks := rt.reg.All()
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks found!")
		return nil
	}
	for _, t := range tasks {
		if t.Doc != "" {
			fmt.Fprintf(out, "%s # %s\n", t.Name, t.Doc)
		} else {
			fmt.Fprintln(out, t.Name)
		}
	}
	return nil
}
