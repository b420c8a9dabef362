package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// Runner executes invocations.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: Run must honor cancellation; a canceled run returns ctx.Err().
// - Errors: non-zero exit returns the Output together with an *Error
// (errors.Is(err, ErrToolchainFailure)); start failures wrap ErrStart.
// - Ownership: implementations must not mutate the invocation.
type Runner interface {
	Run(ctx context.Context, inv Invocation) (Output, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, inv Invocation) (Output, error)

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, inv Invocation) (Output, error) {
	return f(ctx, inv)
}

// ExecRunner runs invocations on the host with os/exec.
type ExecRunner struct {
	// Env, when non-nil, replaces the environment of the child process.
	// Nil inherits the environment of the current process.
	Env []string
}

// NewExecRunner returns a runner that inherits the current environment.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run starts the process, waits for it, and returns its merged output.
func (r *ExecRunner) Run(ctx context.Context, inv Invocation) (Output, error) {
	if err := inv.Validate(); err != nil {
		return Output{}, err
	}

	cmd := exec.CommandContext(ctx, inv.Path, inv.Args...)
	cmd.Dir = inv.Dir
	if r.Env != nil {
		cmd.Env = r.Env
	}

	// A single buffer for both streams keeps diagnostics in write order.
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	start := time.Now()
	err := cmd.Run()
	out := Output{
		Combined: buf.String(),
		Duration: time.Since(start),
	}

	if err == nil {
		return out, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		out.ExitCode = -1
		return out, fmt.Errorf("%s: %w", inv.Path, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		out.ExitCode = exitErr.ExitCode()
		return out, &Error{
			Invocation: inv,
			ExitCode:   out.ExitCode,
			Output:     out.Combined,
		}
	}
	out.ExitCode = -1
	return out, fmt.Errorf("%w: %s: %v", ErrStart, inv.Path, err)
}

var _ Runner = (*ExecRunner)(nil)
