// Package project emits the minimal GNAT project file that binds a
// synthesized project name to one generated source file. The file is the
// only thing gnatprove needs to find the source it should analyze.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonwraymond/adablock/artifact"
)

// ErrInvalidDescriptor indicates a descriptor that cannot be rendered.
var ErrInvalidDescriptor = errors.New("invalid project descriptor")

// Descriptor is a single-source GNAT project.
type Descriptor struct {
	// Name is the project identifier.
	Name string

	// SourcePath is the absolute path of the generated source file.
	SourcePath string
}

// New builds a descriptor for sourcePath whose name is derived from the
// descriptor file path.
func New(descriptorPath, sourcePath string) (Descriptor, error) {
	d := Descriptor{
		Name:       NameFromPath(descriptorPath),
		SourcePath: sourcePath,
	}
	if err := d.Validate(); err != nil {
		return Descriptor{}, err
	}
	return d, nil
}

// NameFromPath turns a descriptor file path into a project identifier by
// dropping the directory and extension and title-casing each underscore
// separated segment: /tmp/ada_gpr_000002.gpr becomes Ada_Gpr_000002.
func NameFromPath(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	caser := cases.Title(language.Und)
	parts := strings.Split(base, "_")
	for i, p := range parts {
		parts[i] = caser.String(p)
	}
	return strings.Join(parts, "_")
}

// Validate checks that the descriptor names a valid project and source.
func (d Descriptor) Validate() error {
	if !artifact.IsIdentifier(d.Name) {
		return fmt.Errorf("%w: project name %q is not an Ada identifier", ErrInvalidDescriptor, d.Name)
	}
	if d.SourcePath == "" {
		return fmt.Errorf("%w: source path is required", ErrInvalidDescriptor)
	}
	return nil
}

// Render returns the project file text.
func (d Descriptor) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "project %s is\n", d.Name)
	fmt.Fprintf(&b, "   for Source_Files use (%s);\n", quote(filepath.Base(d.SourcePath)))
	fmt.Fprintf(&b, "   for Main use (%s);\n", quote(d.SourcePath))
	fmt.Fprintf(&b, "end %s;\n", d.Name)
	return b.String()
}

// Write validates the descriptor and writes it to path.
func (d Descriptor) Write(path string) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(d.Render()), 0o644); err != nil {
		return fmt.Errorf("writing project file: %w", err)
	}
	return nil
}

// quote renders s as a GNAT project string literal; embedded quotes double.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
