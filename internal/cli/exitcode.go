package cli

import "errors"

// ExitCode maps an Execute error onto the process exit status.
// Resolution failures carry their own code; any other failure is 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return 1
}
