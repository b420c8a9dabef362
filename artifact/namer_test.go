package artifact

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"sync"
	"testing"
)

func TestCounter_NextIncrements(t *testing.T) {
	c := NewCounter()
	if c.Current() != 0 {
		t.Fatalf("Current() = %d, want 0", c.Current())
	}
	for want := int64(1); want <= 3; want++ {
		if got := c.Next(); got != want {
			t.Fatalf("Next() = %d, want %d", got, want)
		}
	}
	c.Reset()
	if got := c.Next(); got != 1 {
		t.Errorf("Next() after Reset = %d, want 1", got)
	}
}

func TestCounter_ConcurrentUnique(t *testing.T) {
	c := NewCounter()
	const workers, per = 8, 50

	var mu sync.Mutex
	seen := make(map[int64]bool)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < per; j++ {
				v := c.Next()
				mu.Lock()
				seen[v] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != workers*per {
		t.Errorf("unique values = %d, want %d", len(seen), workers*per)
	}
}

func TestNamer_AnonymousStrictlyIncreasing(t *testing.T) {
	dir := t.TempDir()
	n := NewNamer(NewCounter(), Scratch{TempDir: dir})

	pattern := regexp.MustCompile(`^ada_src_(\d{6})\.adb$`)
	paths := make(map[string]bool)
	var last int64
	for i := 0; i < 20; i++ {
		a, err := n.MakeTempPath("ada_src_", ".adb")
		if err != nil {
			t.Fatalf("MakeTempPath() error = %v", err)
		}
		m := pattern.FindStringSubmatch(a.Name())
		if m == nil {
			t.Fatalf("name %q does not match %s", a.Name(), pattern)
		}
		seq, _ := strconv.ParseInt(m[1], 10, 64)
		if seq <= last {
			t.Fatalf("sequence %d not greater than %d", seq, last)
		}
		if seq != a.Seq {
			t.Errorf("Seq = %d, name carries %d", a.Seq, seq)
		}
		last = seq
		if paths[a.Path] {
			t.Fatalf("duplicate path %q", a.Path)
		}
		paths[a.Path] = true
	}
}

func TestNamer_CounterSharedAcrossPrefixes(t *testing.T) {
	dir := t.TempDir()
	n := NewNamer(nil, Scratch{TempDir: dir})

	src, err := n.MakeTempPath("ada_src_", ".adb")
	if err != nil {
		t.Fatalf("MakeTempPath() error = %v", err)
	}
	gpr, err := n.MakeTempPath("ada_gpr_", ".gpr")
	if err != nil {
		t.Fatalf("MakeTempPath() error = %v", err)
	}
	if src.Name() != "ada_src_000001.adb" {
		t.Errorf("src = %q, want %q", src.Name(), "ada_src_000001.adb")
	}
	if gpr.Name() != "ada_gpr_000002.gpr" {
		t.Errorf("gpr = %q, want %q", gpr.Name(), "ada_gpr_000002.gpr")
	}
}

func TestNamer_UnitNames(t *testing.T) {
	tests := []struct {
		name   string
		suffix string
		opts   []NameOption
		want   string
	}{
		{"with suffix", ".adb", []NameOption{WithUnit("hello")}, "hello.adb"},
		{"no suffix", "", []NameOption{WithUnit("hello"), NoSuffix()}, "hello"},
		{"no suffix drops given suffix", ".exe", []NameOption{WithUnit("hello"), NoSuffix()}, "hello"},
		{"empty unit is anonymous", ".adb", []NameOption{WithUnit("")}, "ada_src_000001.adb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			n := NewNamer(NewCounter(), Scratch{TempDir: dir})
			a, err := n.MakeTempPath("ada_src_", tt.suffix, tt.opts...)
			if err != nil {
				t.Fatalf("MakeTempPath() error = %v", err)
			}
			if a.Name() != tt.want {
				t.Errorf("Name() = %q, want %q", a.Name(), tt.want)
			}
			if a.Path != filepath.Join(dir, tt.want) {
				t.Errorf("Path = %q, want %q", a.Path, filepath.Join(dir, tt.want))
			}
		})
	}
}

func TestNamer_UnitNamingAdvancesCounter(t *testing.T) {
	c := NewCounter()
	n := NewNamer(c, Scratch{TempDir: t.TempDir()})

	if _, err := n.MakeTempPath("ada_src_", ".adb", WithUnit("hello")); err != nil {
		t.Fatalf("MakeTempPath() error = %v", err)
	}
	if c.Current() != 1 {
		t.Errorf("Current() = %d, want 1", c.Current())
	}
}

func TestNamer_CreatesEmptyFile(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "hello.adb")
	if err := os.WriteFile(stale, []byte("old contents"), 0o644); err != nil {
		t.Fatal(err)
	}

	n := NewNamer(NewCounter(), Scratch{TempDir: dir})
	a, err := n.MakeTempPath("ada_src_", ".adb", WithUnit("hello"))
	if err != nil {
		t.Fatalf("MakeTempPath() error = %v", err)
	}
	info, err := os.Stat(a.Path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("size = %d, want 0", info.Size())
	}
}

func TestNamer_RejectsInvalidIdentifiers(t *testing.T) {
	n := NewNamer(NewCounter(), Scratch{TempDir: t.TempDir()})

	tests := []struct {
		name   string
		prefix string
		opts   []NameOption
	}{
		{"hyphenated prefix", "ada-src-", nil},
		{"digit prefix", "1src_", nil},
		{"hyphenated unit", "ada_src_", []NameOption{WithUnit("my-unit")}},
		{"path unit", "ada_src_", []NameOption{WithUnit("../escape")}},
		{"reserved unit", "ada_src_", []NameOption{WithUnit("Begin")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.MakeTempPath(tt.prefix, ".adb", tt.opts...)
			if !errors.Is(err, ErrInvalidName) {
				t.Errorf("MakeTempPath() error = %v, want ErrInvalidName", err)
			}
		})
	}
}

func TestNamer_MissingScratchDirFails(t *testing.T) {
	root := filepath.Join(t.TempDir(), "missing-root")
	n := NewNamer(NewCounter(), Scratch{TempDir: "/scratch", RemoteRoot: root})

	_, err := n.MakeTempPath("ada_src_", ".adb")
	if !errors.Is(err, ErrCreate) {
		t.Errorf("MakeTempPath() error = %v, want ErrCreate", err)
	}
}

func TestScratch_Dir(t *testing.T) {
	existing := t.TempDir()
	missing := filepath.Join(existing, "does-not-exist")

	tests := []struct {
		name    string
		scratch Scratch
		want    string
	}{
		{"existing temp dir", Scratch{TempDir: existing}, existing},
		{"missing temp dir falls back", Scratch{TempDir: missing}, os.TempDir()},
		{"empty falls back", Scratch{}, os.TempDir()},
		{"remote root prefixes temp dir", Scratch{TempDir: "/babel", RemoteRoot: existing}, filepath.Join(existing, "babel")},
		{"remote root without temp dir", Scratch{RemoteRoot: existing}, filepath.Join(existing, os.TempDir())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.scratch.Dir()
			if err != nil {
				t.Fatalf("Dir() error = %v", err)
			}
			want, _ := filepath.Abs(tt.want)
			if got != want {
				t.Errorf("Dir() = %q, want %q", got, want)
			}
		})
	}
}
