package block

import (
	"fmt"
	"strings"

	"github.com/jonwraymond/adablock/artifact"
	"github.com/jonwraymond/adablock/toolchain"
)

// Default toolchain settings.
const (
	DefaultCompileCommand = "gnatmake"
	DefaultProveCommand   = "gnatprove"
	DefaultAssertionFlag  = "-gnata"
)

// Artifact naming used by every run.
const (
	SourcePrefix     = "ada_src_"
	DescriptorPrefix = "ada_gpr_"
	BinaryPrefix     = "ada_bin_"

	SourceSuffix     = ".adb"
	DescriptorSuffix = ".gpr"
)

// Config holds the configuration for an Executor.
type Config struct {
	// CompileCommand is the compiler invocation, split on whitespace.
	// Default: gnatmake
	CompileCommand string

	// ProveCommand is the verifier invocation, split on whitespace.
	// Default: gnatprove
	ProveCommand string

	// AssertionFlag is appended to the compile command when a block sets
	// assertions. Default: -gnata
	AssertionFlag string

	// DefaultVersion is the Ada version used when a block does not set
	// ada-version. Zero adds no version switch and lets the compiler pick.
	DefaultVersion int

	// TempDir is the host-declared scratch directory. When it does not
	// exist the system temp directory is used.
	TempDir string

	// RemoteRoot is the local root of a remote working context. When set,
	// TempDir is resolved beneath it.
	RemoteRoot string

	// ReapSuffixes are the sibling suffixes removed before compiling a
	// named unit. Default: artifact.DefaultReapSuffixes
	ReapSuffixes []string

	// ProveCacheDir is the verifier's cache directory under the scratch
	// directory, purged before every proof. Default: gnatprove
	ProveCacheDir string

	// Counter numbers anonymous artifacts. Share one counter between
	// executors writing to the same scratch directory.
	// Default: a fresh counter
	Counter *artifact.Counter

	// Runner executes toolchain invocations.
	// Default: toolchain.NewExecRunner()
	Runner toolchain.Runner

	// Logger is an optional logger for pipeline events.
	Logger Logger
}

// Validate checks fields that defaults cannot repair.
// Returns ErrConfiguration describing every problem found.
func (c *Config) Validate() error {
	var problems []string

	if c.DefaultVersion < 0 {
		problems = append(problems, fmt.Sprintf("DefaultVersion %d is negative", c.DefaultVersion))
	}
	if strings.ContainsAny(c.ProveCacheDir, `/\`) || c.ProveCacheDir == "." || c.ProveCacheDir == ".." {
		problems = append(problems, fmt.Sprintf("ProveCacheDir %q must be a plain directory name", c.ProveCacheDir))
	}
	for _, s := range c.ReapSuffixes {
		if strings.ContainsAny(s, `/\`) {
			problems = append(problems, fmt.Sprintf("ReapSuffixes entry %q contains a path separator", s))
		}
	}
	if strings.ContainsAny(c.AssertionFlag, " \t\n") {
		problems = append(problems, fmt.Sprintf("AssertionFlag %q must be a single argument", c.AssertionFlag))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrConfiguration, strings.Join(problems, "; "))
	}
	return nil
}

// applyDefaults sets default values for optional fields.
func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.CompileCommand) == "" {
		c.CompileCommand = DefaultCompileCommand
	}
	if strings.TrimSpace(c.ProveCommand) == "" {
		c.ProveCommand = DefaultProveCommand
	}
	if c.AssertionFlag == "" {
		c.AssertionFlag = DefaultAssertionFlag
	}
	if c.ReapSuffixes == nil {
		c.ReapSuffixes = append([]string(nil), artifact.DefaultReapSuffixes...)
	}
	if c.ProveCacheDir == "" {
		c.ProveCacheDir = artifact.DefaultProveCacheDir
	}
	if c.Counter == nil {
		c.Counter = artifact.NewCounter()
	}
	if c.Runner == nil {
		c.Runner = toolchain.NewExecRunner()
	}
}
