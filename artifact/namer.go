package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Errors returned by naming and reaping.
var (
	// ErrInvalidName indicates a unit name or generated base name that is not a
	// valid Ada identifier, or that would escape the scratch directory.
	ErrInvalidName = errors.New("invalid artifact name")

	// ErrCreate indicates the artifact file could not be created.
	ErrCreate = errors.New("artifact create failed")
)

// seqWidth is the zero-padded width of generated sequence numbers.
const seqWidth = 6

// Artifact describes a file created in the scratch directory.
type Artifact struct {
	// Path is the absolute path of the file.
	Path string

	// Dir is the scratch directory holding the file.
	Dir string

	// Base is the file name without its suffix. It is a valid Ada identifier.
	Base string

	// Unit is the caller-supplied unit name, empty for anonymous artifacts.
	Unit string

	// Seq is the counter value consumed by the call that created the artifact.
	Seq int64

	// Suffix is the file name extension including its dot, or empty.
	Suffix string
}

// Name returns the file name of the artifact.
func (a Artifact) Name() string {
	return filepath.Base(a.Path)
}

// Scratch selects the directory artifacts are written to.
type Scratch struct {
	// TempDir is the host-declared temporary directory. It is used when it
	// exists; otherwise the system temp directory is used.
	TempDir string

	// RemoteRoot is the local root of a remote working context. When set, the
	// scratch directory is TempDir (or the system temp directory) beneath it.
	RemoteRoot string
}

// Dir resolves the scratch directory to an absolute path.
func (s Scratch) Dir() (string, error) {
	var dir string
	switch {
	case s.RemoteRoot != "":
		base := s.TempDir
		if base == "" {
			base = os.TempDir()
		}
		dir = filepath.Join(s.RemoteRoot, base)
	case s.TempDir != "" && isDir(s.TempDir):
		dir = s.TempDir
	default:
		dir = os.TempDir()
	}
	return filepath.Abs(dir)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// NameOption configures a single MakeTempPath call.
type NameOption func(*nameOptions)

type nameOptions struct {
	unit     string
	noSuffix bool
}

// WithUnit names the artifact after a caller-supplied unit instead of the
// counter. An empty unit leaves anonymous naming in effect.
func WithUnit(unit string) NameOption {
	return func(o *nameOptions) {
		o.unit = unit
	}
}

// NoSuffix drops the suffix from unit-named artifacts. Executables are named
// this way.
func NoSuffix() NameOption {
	return func(o *nameOptions) {
		o.noSuffix = true
	}
}

// Namer produces collision-free artifact paths.
//
// Contract:
// - Concurrency: safe for concurrent use; uniqueness of anonymous names comes
// from the shared Counter, uniqueness of unit names is the caller's concern.
// - Errors: ErrInvalidName for names that are not Ada identifiers, ErrCreate
// when the file cannot be created.
type Namer struct {
	counter *Counter
	scratch Scratch
}

// NewNamer creates a Namer. A nil counter is replaced by a fresh one.
func NewNamer(counter *Counter, scratch Scratch) *Namer {
	if counter == nil {
		counter = NewCounter()
	}
	return &Namer{counter: counter, scratch: scratch}
}

// Counter returns the counter backing anonymous names.
func (n *Namer) Counter() *Counter {
	return n.counter
}

// Scratch returns the scratch directory selection.
func (n *Namer) Scratch() Scratch {
	return n.scratch
}

// MakeTempPath builds an artifact path and creates the file empty.
//
// With WithUnit the file is named unit+suffix, or just unit under NoSuffix.
// Otherwise it is named prefix, the zero-padded next counter value, then
// suffix. The counter advances on every call.
func (n *Namer) MakeTempPath(prefix, suffix string, opts ...NameOption) (Artifact, error) {
	var o nameOptions
	for _, opt := range opts {
		opt(&o)
	}

	seq := n.counter.Next()

	dir, err := n.scratch.Dir()
	if err != nil {
		return Artifact{}, fmt.Errorf("%w: resolving scratch directory: %v", ErrCreate, err)
	}

	a := Artifact{Dir: dir, Seq: seq, Suffix: suffix}
	if o.unit != "" {
		a.Unit = o.unit
		a.Base = o.unit
		if o.noSuffix {
			a.Suffix = ""
		}
	} else {
		a.Base = fmt.Sprintf("%s%0*d", prefix, seqWidth, seq)
	}

	if !IsIdentifier(a.Base) {
		return Artifact{}, fmt.Errorf("%w: %q is not an Ada identifier", ErrInvalidName, a.Base)
	}
	if strings.ContainsAny(a.Suffix, `/\`) {
		return Artifact{}, fmt.Errorf("%w: suffix %q contains a path separator", ErrInvalidName, a.Suffix)
	}

	a.Path = filepath.Join(dir, a.Base+a.Suffix)

	f, err := os.OpenFile(a.Path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return Artifact{}, fmt.Errorf("%w: %v", ErrCreate, err)
	}
	if err := f.Close(); err != nil {
		return Artifact{}, fmt.Errorf("%w: %v", ErrCreate, err)
	}
	return a, nil
}
