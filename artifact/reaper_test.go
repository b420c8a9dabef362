package artifact

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func TestReaper_ReapUnit(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"foo", "foo.ali", "foo.o", "bar.o", "foo.adb"} {
		touch(t, filepath.Join(dir, name))
	}

	removed, err := Reaper{Dir: dir}.ReapUnit("foo")
	if err != nil {
		t.Fatalf("ReapUnit() error = %v", err)
	}

	sort.Strings(removed)
	want := []string{filepath.Join(dir, "foo"), filepath.Join(dir, "foo.ali"), filepath.Join(dir, "foo.o")}
	if len(removed) != len(want) {
		t.Fatalf("removed = %v, want %v", removed, want)
	}
	for i := range want {
		if removed[i] != want[i] {
			t.Errorf("removed[%d] = %q, want %q", i, removed[i], want[i])
		}
		if exists(want[i]) {
			t.Errorf("%s still exists", want[i])
		}
	}
	for _, keep := range []string{"bar.o", "foo.adb"} {
		if !exists(filepath.Join(dir, keep)) {
			t.Errorf("%s was removed", keep)
		}
	}
}

func TestReaper_ReapUnit_NothingToRemove(t *testing.T) {
	removed, err := Reaper{Dir: t.TempDir()}.ReapUnit("foo")
	if err != nil {
		t.Fatalf("ReapUnit() error = %v", err)
	}
	if len(removed) != 0 {
		t.Errorf("removed = %v, want none", removed)
	}
}

func TestReaper_ReapUnit_CustomSuffixes(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"foo", "foo.o", "foo.dSYM.txt"} {
		touch(t, filepath.Join(dir, name))
	}

	r := Reaper{Dir: dir, Suffixes: []string{".o", ".dSYM.txt"}}
	if _, err := r.ReapUnit("foo"); err != nil {
		t.Fatalf("ReapUnit() error = %v", err)
	}
	if !exists(filepath.Join(dir, "foo")) {
		t.Error("foo removed although its suffix was not configured")
	}
	if exists(filepath.Join(dir, "foo.dSYM.txt")) {
		t.Error("foo.dSYM.txt not removed")
	}
}

func TestReaper_ReapUnit_EmptySuffixes(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"foo", "foo.ali", "foo.o"} {
		touch(t, filepath.Join(dir, name))
	}

	removed, err := Reaper{Dir: dir, Suffixes: []string{}}.ReapUnit("foo")
	if err != nil {
		t.Fatalf("ReapUnit() error = %v", err)
	}
	if len(removed) != 0 {
		t.Errorf("removed = %v, want none", removed)
	}
	for _, name := range []string{"foo", "foo.ali", "foo.o"} {
		if !exists(filepath.Join(dir, name)) {
			t.Errorf("%s was removed", name)
		}
	}
}

func TestReaper_ReapUnit_SkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "foo"), 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := (Reaper{Dir: dir}).ReapUnit("foo"); err != nil {
		t.Fatalf("ReapUnit() error = %v", err)
	}
	if !exists(filepath.Join(dir, "foo")) {
		t.Error("directory foo was removed")
	}
}

func TestReaper_ReapUnit_InvalidNames(t *testing.T) {
	r := Reaper{Dir: t.TempDir()}
	for _, unit := range []string{"", "..", "a/b"} {
		if _, err := r.ReapUnit(unit); !errors.Is(err, ErrInvalidName) {
			t.Errorf("ReapUnit(%q) error = %v, want ErrInvalidName", unit, err)
		}
	}
	bad := Reaper{Dir: t.TempDir(), Suffixes: []string{"/x"}}
	if _, err := bad.ReapUnit("foo"); !errors.Is(err, ErrInvalidName) {
		t.Errorf("ReapUnit() with separator suffix error = %v, want ErrInvalidName", err)
	}
}

func TestReaper_PurgeDir(t *testing.T) {
	dir := t.TempDir()
	cache := filepath.Join(dir, DefaultProveCacheDir)
	if err := os.MkdirAll(filepath.Join(cache, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	touch(t, filepath.Join(cache, "nested", "foo.spark"))
	touch(t, filepath.Join(dir, "keep.adb"))

	r := Reaper{Dir: dir}
	purged, err := r.PurgeDir(DefaultProveCacheDir)
	if err != nil {
		t.Fatalf("PurgeDir() error = %v", err)
	}
	if !purged {
		t.Error("PurgeDir() = false, want true")
	}
	if exists(cache) {
		t.Error("cache directory still exists")
	}
	if !exists(filepath.Join(dir, "keep.adb")) {
		t.Error("sibling file removed")
	}

	purged, err = r.PurgeDir(DefaultProveCacheDir)
	if err != nil {
		t.Fatalf("second PurgeDir() error = %v", err)
	}
	if purged {
		t.Error("second PurgeDir() = true, want false")
	}
}
