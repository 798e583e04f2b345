// Package shell runs model-requested commands in the working directory.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"time"
)

// ErrTimeout is returned when a command exceeds the configured timeout.
var ErrTimeout = errors.New("command timed out")

// Result captures one command execution. Stdout and stderr are kept
// separate so the model can distinguish them.
type Result struct {
	Command  string
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
	TimedOut bool
}

// Runner executes commands synchronously in a fixed working directory. One
// command at a time; the agent loop is strictly sequential.
type Runner struct {
	workingDir string
	timeout    time.Duration
	logger     *slog.Logger
}

// NewRunner returns a runner bound to workingDir. A zero timeout means
// commands may block indefinitely.
func NewRunner(workingDir string, timeout time.Duration, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{workingDir: workingDir, timeout: timeout, logger: logger}
}

// Run executes command through the platform shell and captures both output
// streams. Stdin is never inherited, so a command waiting for input fails
// rather than blocking the session forever.
func (r *Runner) Run(ctx context.Context, command string) (*Result, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.CommandContext(ctx, "cmd", "/C", command)
	} else {
		cmd = exec.CommandContext(ctx, "sh", "-c", command)
	}
	cmd.Dir = r.workingDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.Info("executing command", "command", command, "dir", r.workingDir)

	start := time.Now()
	err := cmd.Run()
	result := &Result{
		Command:  command,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if ctx.Err() == context.DeadlineExceeded {
		result.TimedOut = true
		result.ExitCode = 124
		r.logger.Warn("command timed out", "command", command, "timeout", r.timeout)
		return result, fmt.Errorf("%w after %s", ErrTimeout, r.timeout)
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		result.ExitCode = 0
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	default:
		// Spawn failure: no process ran at all.
		r.logger.Error("command failed to start", "command", command, "error", err)
		return nil, fmt.Errorf("starting command: %w", err)
	}

	r.logger.Info("command finished", "command", command, "exit_code", result.ExitCode, "duration", result.Duration)
	return result, nil
}
