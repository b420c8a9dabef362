// Package command composes the exact command lines for compiling, running,
// and proving an Ada block.
//
// Base commands are configured as plain strings such as "gnatmake" or
// "gnatprove --report=all" and split on whitespace. Optional flags are
// omitted entirely when their value is absent; they are never emitted empty.
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonwraymond/adablock/toolchain"
)

// ErrEmptyCommand indicates a configured base command with no executable.
var ErrEmptyCommand = errors.New("empty base command")

// SplitCommand splits a configured base command into its executable and
// leading arguments.
func SplitCommand(base string) ([]string, error) {
	fields := strings.Fields(base)
	if len(fields) == 0 {
		return nil, ErrEmptyCommand
	}
	return fields, nil
}

// VersionFlag returns the GNAT language version switch, or "" for version 0.
func VersionFlag(version int) string {
	if version == 0 {
		return ""
	}
	return "-gnat" + strconv.Itoa(version)
}

// CompileOptions selects the optional compiler switches.
type CompileOptions struct {
	// Version is the effective Ada version. Zero adds no version switch.
	Version int

	// Assertions appends AssertionFlag.
	Assertions bool

	// AssertionFlag is the configured assertion-enabling switch.
	AssertionFlag string
}

// Compile composes
//
//	<base> [-gnat<version>] [<assertion flag>] -o <binary> <source>
//
// to run in dir.
func Compile(base string, opts CompileOptions, binary, source, dir string) (toolchain.Invocation, error) {
	argv, err := SplitCommand(base)
	if err != nil {
		return toolchain.Invocation{}, fmt.Errorf("compile command: %w", err)
	}
	if flag := VersionFlag(opts.Version); flag != "" {
		argv = append(argv, flag)
	}
	if opts.Assertions && opts.AssertionFlag != "" {
		argv = append(argv, opts.AssertionFlag)
	}
	argv = append(argv, "-o", binary, source)
	return toolchain.Invocation{Path: argv[0], Args: argv[1:], Dir: dir}, nil
}

// ProveOptions selects the optional verifier switches.
type ProveOptions struct {
	// Mode is emitted as --mode=<Mode> when non-empty.
	Mode string

	// Level is emitted as --level=<Level> when non-empty.
	Level string
}

// Prove composes
//
//	<base> -P<descriptor> [--mode=<mode>] [--level=<level>] -u <source>
//
// to run in dir.
func Prove(base string, opts ProveOptions, descriptor, source, dir string) (toolchain.Invocation, error) {
	argv, err := SplitCommand(base)
	if err != nil {
		return toolchain.Invocation{}, fmt.Errorf("prove command: %w", err)
	}
	argv = append(argv, "-P"+descriptor)
	if opts.Mode != "" {
		argv = append(argv, "--mode="+opts.Mode)
	}
	if opts.Level != "" {
		argv = append(argv, "--level="+opts.Level)
	}
	argv = append(argv, "-u", source)
	return toolchain.Invocation{Path: argv[0], Args: argv[1:], Dir: dir}, nil
}

// RunBinary composes the invocation of a freshly built executable: no
// arguments, working directory dir.
func RunBinary(binary, dir string) toolchain.Invocation {
	return toolchain.Invocation{Path: binary, Dir: dir}
}
