// internal/hasher/ssdeep/ssdeep.go

// Package ssdeep wraps the external ssdeep CLI tool behind the Runner
// port. The tool is always invoked with the same two flags: -s runs it
// silently (tool-internal errors go to stdout instead of failing the
// process) and -b emits bare output (no directory prefix in the
// reported filename field). These flags are part of the invocation
// contract and are not configurable.
package ssdeep

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"ssdeepx/internal/core/ports"
	"ssdeepx/internal/platform/logx"
)

const (
	toolName = "ssdeep"

	// reportCommand is the fixed invocation signature placed into every
	// batch result, independent of how the binary path was resolved.
	reportCommand = "ssdeep -s -b"
)

// Runner executes ssdeep as a subprocess. It implements ports.Runner.
type Runner struct {
	logger   logx.Logger
	execPath string
	timeout  time.Duration // 0 = block until the process exits

	// Process management
	mu  sync.Mutex
	cmd *exec.Cmd
}

// New creates a Runner that resolves the ssdeep binary from PATH and
// never times out, matching the historical blocking behavior.
func New(logger logx.Logger) *Runner {
	return NewWithConfig(logger, toolName, 0)
}

// NewWithConfig creates a Runner with an explicit binary path and an
// optional per-invocation timeout.
func NewWithConfig(logger logx.Logger, execPath string, timeout time.Duration) *Runner {
	if execPath == "" {
		execPath = toolName
	}
	return &Runner{
		logger:   logger.With("runner", toolName),
		execPath: execPath,
		timeout:  timeout,
	}
}

// Command returns the fixed reporting signature.
func (r *Runner) Command() string {
	return reportCommand
}

// Invoke runs `ssdeep -s -b <path>` and blocks until the process exits
// or ctx is canceled. Every failure mode is expressed through the
// returned Invocation: a non-zero exit keeps the process's own code and
// streams, and a process that could not be started at all (binary
// missing, permission denied, context already canceled) is reported as
// code -1 with the spawn error on the diagnostic stream. The error
// return is always nil.
func (r *Runner) Invoke(ctx context.Context, path string) (ports.Invocation, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.execPath, "-s", "-b", path)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.mu.Lock()
	r.cmd = cmd
	r.mu.Unlock()

	r.logger.Debug("invoking ssdeep", "path", path, "exec_path", r.execPath)

	start := time.Now()
	runErr := cmd.Run()
	duration := time.Since(start)

	r.mu.Lock()
	r.cmd = nil
	r.mu.Unlock()

	inv := ports.Invocation{
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			inv.ExitCode = exitErr.ExitCode()
		} else {
			// The process never produced an exit status.
			inv.ExitCode = -1
			if inv.Stderr == "" {
				inv.Stderr = runErr.Error()
			}
		}
		r.logger.Debug("ssdeep exited with error",
			"path", path,
			"exit_code", inv.ExitCode,
			"duration", duration.String(),
		)
		return inv, nil
	}

	r.logger.Debug("ssdeep completed",
		"path", path,
		"duration", duration.String(),
	)
	return inv, nil
}

// Initialize verifies that the ssdeep binary exists and resolves its
// absolute path. Failure here is the only locally fatal condition; a
// caller may also skip it and let a missing binary surface through the
// normal Invoke error-as-data path.
func (r *Runner) Initialize() error {
	execPath, err := exec.LookPath(r.execPath)
	if err != nil {
		return fmt.Errorf("ssdeep not found in PATH: %w", err)
	}

	r.execPath = execPath
	r.logger.Debug("found ssdeep binary", "path", execPath)
	return nil
}

// Close terminates any in-flight subprocess. Safe to call multiple
// times.
func (r *Runner) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cmd != nil && r.cmd.Process != nil {
		proc := r.cmd.Process
		state := r.cmd.ProcessState

		if state == nil || !state.Exited() {
			// SIGTERM first, then force kill.
			if err := proc.Signal(os.Interrupt); err != nil && err != os.ErrProcessDone {
				r.logger.Warn("SIGTERM failed, forcing kill", "error", err.Error())
				if killErr := proc.Kill(); killErr != nil && killErr != os.ErrProcessDone {
					r.logger.Warn("failed to kill ssdeep process", "error", killErr.Error())
				}
			}
		}

		r.cmd = nil
	}

	return nil
}
