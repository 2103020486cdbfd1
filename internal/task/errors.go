package task

import (
	"fmt"
	"strings"
)

// NoMatchError reports a query that matched no registered task.
type NoMatchError struct {
	Query string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("task not found: %s", e.Query)
}

// AmbiguousError reports a query that matched more than one task.
type AmbiguousError struct {
	Query      string
	Candidates []string // sorted
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("multiple tasks match '%s': %s", e.Query, strings.Join(e.Candidates, ", "))
}

// ExitCode reports the candidate count; the dispatcher surfaces it as
// the process exit status.
func (e *AmbiguousError) ExitCode() int {
	return len(e.Candidates)
}

// UninspectableError reports a callable whose parameter list cannot be
// determined. Such a task cannot be called safely, so discovery treats
// this as fatal.
type UninspectableError struct {
	Reason string
}

func (e *UninspectableError) Error() string {
	return fmt.Sprintf("uninspectable signature: %s", e.Reason)
}

// MissingArgumentError reports a required parameter left without a
// value after binding.
type MissingArgumentError struct {
	Name string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("missing required argument: %s", e.Name)
}

// UnexpectedArgumentError reports a positional token with no parameter
// left to receive it.
type UnexpectedArgumentError struct {
	Token string
}

func (e *UnexpectedArgumentError) Error() string {
	return fmt.Sprintf("unexpected argument: %s", e.Token)
}

// UnknownOptionError reports an option that names no declared
// parameter.
type UnknownOptionError struct {
	Name string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("unknown option: --%s", e.Name)
}

// MissingValueError reports an option that requires a value but got
// none.
type MissingValueError struct {
	Name string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("option --%s requires a value", e.Name)
}
