// Package artifact names, creates, and reaps the temporary files produced by
// an Ada block run.
//
// Every block is materialized in a scratch directory as a standalone
// compilation unit. The base name of each generated file doubles as an Ada
// unit or project identifier, so names are either supplied by the caller
// (a unit name) or generated from a prefix and a [Counter] sequence number,
// and in both cases must satisfy [IsIdentifier].
//
// # Naming
//
// [Namer.MakeTempPath] resolves the scratch directory from a [Scratch]
// (remote root, host temp directory, or the system temp directory), builds
// the file name, and creates the file empty before returning it:
//
//	namer := artifact.NewNamer(artifact.NewCounter(), artifact.Scratch{TempDir: dir})
//	src, _ := namer.MakeTempPath("ada_src_", ".adb")          // ada_src_000001.adb
//	bin, _ := namer.MakeTempPath("ada_bin_", "", artifact.WithUnit("hello"), artifact.NoSuffix())
//
// # Reaping
//
// A [Reaper] deletes the compiler outputs left behind by a previous run of the
// same unit, and purges the verifier's cache directory before a proof run.
package artifact
