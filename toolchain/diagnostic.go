package toolchain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Diagnostic is one located message from GNAT or GNATprove output.
type Diagnostic struct {
	// File is the source file name as printed by the tool.
	File string `json:"file"`

	// Line is the 1-based line number.
	Line int `json:"line"`

	// Column is the 1-based column number. Zero means unknown.
	Column int `json:"column,omitempty"`

	// Severity is the leading tag of the message: error, warning, info,
	// low, medium, high, or empty when the tool printed none.
	Severity string `json:"severity,omitempty"`

	// Message is the text after the location and severity.
	Message string `json:"message"`
}

// String renders the diagnostic the way GNAT prints it.
func (d Diagnostic) String() string {
	loc := fmt.Sprintf("%s:%d", d.File, d.Line)
	if d.Column > 0 {
		loc += ":" + strconv.Itoa(d.Column)
	}
	if d.Severity != "" {
		return fmt.Sprintf("%s: %s: %s", loc, d.Severity, d.Message)
	}
	return loc + ": " + d.Message
}

var (
	locationRE = regexp.MustCompile(`^([^:\s][^:]*):(\d+)(?::(\d+))?:\s*(.*)$`)
	severityRE = regexp.MustCompile(`^(error|warning|info|low|medium|high|note|style)\s*:\s*(.*)$`)
)

// ParseDiagnostics extracts the located messages from tool output. Lines
// without a file:line prefix, or with a position that overflows int, are
// skipped.
func ParseDiagnostics(output string) []Diagnostic {
	var out []Diagnostic
	for _, line := range strings.Split(output, "\n") {
		m := locationRE.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		d := Diagnostic{File: m[1], Message: m[4]}
		var err error
		if d.Line, err = strconv.Atoi(m[2]); err != nil {
			continue
		}
		if m[3] != "" {
			if d.Column, err = strconv.Atoi(m[3]); err != nil {
				continue
			}
		}
		if s := severityRE.FindStringSubmatch(d.Message); s != nil {
			d.Severity, d.Message = s[1], s[2]
		}
		out = append(out, d)
	}
	return out
}

// Diagnostics parses the captured output of the failed invocation.
func (e *Error) Diagnostics() []Diagnostic {
	return ParseDiagnostics(e.Output)
}
