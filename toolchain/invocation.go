// Package toolchain runs the external compiler, verifier, and produced
// binaries as synchronous subprocesses.
//
// A [Runner] executes an [Invocation] and returns its merged stdout and
// stderr. A non-zero exit status is reported as an [*Error] that still
// carries the captured text, because compiler and prover diagnostics are the
// useful output of a failed block.
package toolchain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Errors returned by runners.
var (
	// ErrToolchainFailure indicates the process exited with a non-zero status.
	ErrToolchainFailure = errors.New("toolchain failure")

	// ErrInvalidInvocation indicates an invocation without an executable.
	ErrInvalidInvocation = errors.New("invalid invocation")

	// ErrStart indicates the process could not be started.
	ErrStart = errors.New("toolchain start failed")
)

// Invocation is one fully composed command line.
type Invocation struct {
	// Path is the executable name or path.
	Path string `json:"path"`

	// Args are the arguments, in order, excluding Path.
	Args []string `json:"args,omitempty"`

	// Dir is the working directory. Empty means the caller's directory.
	Dir string `json:"dir,omitempty"`
}

// Validate checks that the invocation names an executable.
func (i Invocation) Validate() error {
	if strings.TrimSpace(i.Path) == "" {
		return fmt.Errorf("%w: executable is required", ErrInvalidInvocation)
	}
	return nil
}

// Argv returns Path followed by Args.
func (i Invocation) Argv() []string {
	argv := make([]string, 0, len(i.Args)+1)
	argv = append(argv, i.Path)
	return append(argv, i.Args...)
}

// String renders the command line for logs, quoting fields that contain
// whitespace.
func (i Invocation) String() string {
	argv := i.Argv()
	for n, a := range argv {
		if a == "" || strings.ContainsAny(a, " \t\n\"'") {
			argv[n] = fmt.Sprintf("%q", a)
		}
	}
	return strings.Join(argv, " ")
}

// Output is the captured result of a finished process.
type Output struct {
	// ExitCode is the process exit status.
	ExitCode int `json:"exitCode"`

	// Combined is stdout and stderr interleaved in write order.
	Combined string `json:"combined"`

	// Duration is the wall-clock run time.
	Duration time.Duration `json:"duration"`
}

// Error reports a process that ran to completion with a non-zero status.
type Error struct {
	// Invocation is the command that failed.
	Invocation Invocation

	// ExitCode is the non-zero exit status.
	ExitCode int

	// Output is the merged stdout and stderr of the process.
	Output string
}

// Error returns a one-line description. The captured output is not
// included; read it from Output.
func (e *Error) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Invocation.Path, e.ExitCode)
}

// Is reports whether target is ErrToolchainFailure.
func (e *Error) Is(target error) bool {
	return target == ErrToolchainFailure
}
