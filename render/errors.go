package render

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound means the renderer program is missing or cannot be
	// executed. It is never retried.
	ErrNotFound = errors.New("renderer not found")

	// ErrUnsupportedFormat means the output format is unknown.
	ErrUnsupportedFormat = errors.New("unsupported output format")
)

// NotFoundError names the program that could not be run. It matches
// ErrNotFound with errors.Is.
type NotFoundError struct {
	Program string
	Cause   error
}

func (e *NotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%v: %q: %v", ErrNotFound, e.Program, e.Cause)
	}
	return fmt.Sprintf("%v: %q", ErrNotFound, e.Program)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func (e *NotFoundError) Unwrap() error { return e.Cause }

// InvocationError is returned when the renderer exits with a non-zero status
// or writes diagnostics to its error stream.
type InvocationError struct {
	Program  string
	ExitCode int    // -1 when the process did not exit normally
	Stderr   string // captured diagnostics
	Cause    error
}

func (e *InvocationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s failed", e.Program)
	if e.ExitCode != 0 {
		fmt.Fprintf(&b, " with exit code %d", e.ExitCode)
	}
	if msg := strings.TrimSpace(e.Stderr); msg != "" {
		fmt.Fprintf(&b, ": %s", msg)
	} else if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

func (e *InvocationError) Unwrap() error { return e.Cause }
