package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrReap indicates a stale artifact exists but could not be removed.
var ErrReap = errors.New("artifact reap failed")

// DefaultReapSuffixes are the files gnatmake leaves next to a unit: the
// executable, the library information file, and the object file.
var DefaultReapSuffixes = []string{"", ".ali", ".o"}

// DefaultProveCacheDir is the directory gnatprove writes its session data to.
const DefaultProveCacheDir = "gnatprove"

// Reaper removes stale artifacts from a scratch directory before a rerun.
type Reaper struct {
	// Dir is the scratch directory.
	Dir string

	// Suffixes are appended to a unit name to find its stale siblings; ""
	// selects the bare executable. Nil means DefaultReapSuffixes, an empty
	// list reaps nothing.
	Suffixes []string
}

// ReapUnit deletes every existing file named unit+suffix for the configured
// suffixes and returns the removed paths. Directories are left alone.
func (r Reaper) ReapUnit(unit string) ([]string, error) {
	if err := checkEntryName(unit); err != nil {
		return nil, err
	}
	suffixes := r.Suffixes
	if suffixes == nil {
		suffixes = DefaultReapSuffixes
	}

	var removed []string
	for _, suffix := range suffixes {
		if strings.ContainsAny(suffix, `/\`) {
			return removed, fmt.Errorf("%w: suffix %q contains a path separator", ErrInvalidName, suffix)
		}
		path := filepath.Join(r.Dir, unit+suffix)
		info, err := os.Lstat(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return removed, fmt.Errorf("%w: %v", ErrReap, err)
		}
		if info.IsDir() {
			continue
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, fmt.Errorf("%w: %v", ErrReap, err)
		}
		removed = append(removed, path)
	}
	return removed, nil
}

// PurgeDir recursively removes the named subdirectory of the scratch
// directory. It reports whether anything was removed.
func (r Reaper) PurgeDir(name string) (bool, error) {
	if err := checkEntryName(name); err != nil {
		return false, err
	}
	path := filepath.Join(r.Dir, name)
	if _, err := os.Lstat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", ErrReap, err)
	}
	if err := os.RemoveAll(path); err != nil {
		return false, fmt.Errorf("%w: %v", ErrReap, err)
	}
	return true, nil
}

// checkEntryName rejects names that are empty or would leave the scratch
// directory.
func checkEntryName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
