// internal/core/ports/runner.go
package ports

import "context"

// Invocation captures the observable result of one external hashing
// invocation. It is the sole input to outcome classification.
type Invocation struct {
	// ExitCode is the process completion status. -1 means the process
	// could not be started at all.
	ExitCode int

	// Stdout is the raw output stream text.
	Stdout string

	// Stderr is the raw diagnostic stream text.
	Stderr string
}

// OK reports whether the invocation completed with a success status.
func (i Invocation) OK() bool {
	return i.ExitCode == 0
}

// Runner is the port for the external fuzzy-hashing computation. A
// failing tool is represented as data in the returned Invocation (exit
// code plus streams), never as a Go error; the error return is reserved
// for the invocation boundary itself being unusable in a way the
// Invocation cannot express (it is nil in the provided implementation).
type Runner interface {
	// Invoke runs the tool against a single file path and blocks until
	// the process exits or ctx is canceled.
	Invoke(ctx context.Context, path string) (Invocation, error)

	// Command returns the fixed invocation signature used for
	// reporting (tool name plus its fixed flags).
	Command() string

	// Close releases any resources held by the runner. Idempotent.
	Close() error
}
