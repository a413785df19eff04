package exit

import (
	"fmt"
	"io"
	"os"
)

// Result describes how the process should terminate: what to print, where,
// and with which exit code.
type Result struct {
	Output   io.Writer
	ExitCode int
	Message  string
}

// Print writes the result message to its output destination.
func (r *Result) Print() {
	fmt.Fprint(r.Output, r.Message)
}

// Success prints to stdout and exits 0.
func Success(message string) *Result {
	return &Result{
		Output:   os.Stdout,
		ExitCode: 0,
		Message:  message,
	}
}

// Error prints to stderr and exits 1.
func Error(message string) *Result {
	return &Result{
		Output:   os.Stderr,
		ExitCode: 1,
		Message:  message,
	}
}

// Errorf is Error with formatting.
func Errorf(format string, a ...any) *Result {
	return Error(fmt.Sprintf(format, a...))
}
