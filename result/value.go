// Package result hands block output back to the host, turning it into a
// table when it is already tabular and leaving it untouched otherwise.
package result

import (
	"encoding/csv"
	"strings"
)

// Value is the output of a block: plain text, or a table.
type Value struct {
	// Text is the captured output, always set.
	Text string `json:"text"`

	// Table holds the rows when Text parsed as a table.
	Table [][]string `json:"table,omitempty"`
}

// IsTable reports whether the value was tabulated.
func (v Value) IsTable() bool {
	return v.Table != nil
}

// String returns the original text.
func (v Value) String() string {
	return v.Text
}

// MaybeTabulate returns text as a table when every non-empty line splits
// into the same number (at least two) of fields, and as plain text
// otherwise. Recognized layouts, tried in order:
//
//   - tab separated lines;
//   - pipe tables whose lines start and end with '|' (rule lines such as
//     |---+---| are skipped);
//   - comma separated values spanning at least two lines.
func MaybeTabulate(text string) Value {
	v := Value{Text: text}
	lines := nonEmptyLines(text)
	if len(lines) == 0 {
		return v
	}
	if rows, ok := delimited(lines, '\t', 1); ok {
		v.Table = rows
	} else if rows, ok := pipeTable(lines); ok {
		v.Table = rows
	} else if rows, ok := delimited(lines, ',', 2); ok {
		v.Table = rows
	}
	return v
}

func nonEmptyLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

func delimited(lines []string, sep rune, minRows int) ([][]string, bool) {
	if len(lines) < minRows {
		return nil, false
	}
	for _, line := range lines {
		if !strings.ContainsRune(line, sep) {
			return nil, false
		}
	}
	r := csv.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	r.Comma = sep
	r.LazyQuotes = true
	r.TrimLeadingSpace = sep == ','
	rows, err := r.ReadAll()
	if err != nil || len(rows) != len(lines) || len(rows[0]) < 2 {
		return nil, false
	}
	return rows, true
}

func pipeTable(lines []string) ([][]string, bool) {
	var rows [][]string
	width := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) < 2 || line[0] != '|' || line[len(line)-1] != '|' {
			return nil, false
		}
		inner := line[1 : len(line)-1]
		if isRule(inner) {
			continue
		}
		cells := strings.Split(inner, "|")
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
		if width == 0 {
			width = len(cells)
		}
		if len(cells) != width {
			return nil, false
		}
		rows = append(rows, cells)
	}
	if len(rows) == 0 || width < 2 {
		return nil, false
	}
	return rows, true
}

func isRule(inner string) bool {
	return strings.Trim(inner, "-+|: ") == "" && strings.Contains(inner, "-")
}
