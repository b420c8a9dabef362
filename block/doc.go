// Package block runs Ada source blocks for a literate-programming host.
//
// An [Executor] takes a [Request] (source text plus loosely-typed header
// arguments) through a fixed pipeline:
//
//	Normalize -> NameArtifacts -> {EmitDescriptor | ReapStale}
//	          -> ComposeCommand -> Invoke -> [Invoke binary] -> PassThroughResult
//
// # Execute mode
//
// The source is written to <base>.adb, stale <unit>, <unit>.ali and <unit>.o
// files are removed when a unit name is given, the configured compiler is
// invoked as
//
//	gnatmake [-gnat<version>] [-gnata] -o <binary> <source>
//
// and the produced binary is run with the scratch directory as its working
// directory. Its output is the block result.
//
// # Prove mode
//
// With prove set, a single-source project file is emitted next to the
// source, the verifier's cache directory is purged, and the configured
// verifier is invoked as
//
//	gnatprove -P<project> [--mode=<mode>] [--level=<level>] -u <source>
//
// ada-version and assertions do not apply to proofs. Flags written into the
// configured verifier command, a -gnat version switch included, are passed
// through as given.
//
// # Failures
//
// A non-zero exit from the compiler, verifier, or binary ends the run. The
// captured diagnostics become [Result].Value and the [*toolchain.Error] is
// recorded in [Result].Error; Execute itself returns a nil error, because
// diagnostics are what the host should display. Parameter, configuration,
// and filesystem problems are returned as errors.
//
// # Sessions
//
// Every run is a fresh one-shot build. [Executor.StartSession] always fails
// with [ErrUnsupportedOperation].
package block
