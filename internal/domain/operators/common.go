// Package operators implements the individual transformation operators
// applied by the engine: stylistic inserts, deletions, conditional wraps,
// and defensive validation inserts.
package operators

import (
	"strings"

	m "cloneforge.dev/pkg/cloneforge/internal/model"
)

// Result is the outcome of one operator application.
type Result struct {
	// Lines is the transformed snippet.
	Lines []string
	// Payload is the text the operator introduced, empty for deletions.
	Payload string
	// At is the zero-based line index the edit landed on in the
	// transformed snippet.
	At int
}

// Picker selects a deterministic index in [0, n). The engine passes its
// seeded generator so operator choices replay byte-identically.
type Picker func(n int) int

func commentPrefix(lang m.Language) string {
	if lang == m.LangPython {
		return "# "
	}

	return "// "
}

func indentOf(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// opensBlock reports whether the trimmed statement introduces a block.
func opensBlock(trimmed string, lang m.Language) bool {
	if lang == m.LangPython {
		return strings.HasSuffix(trimmed, ":")
	}

	return strings.HasSuffix(trimmed, "{")
}

// insertAfter returns a copy of lines with text inserted after index at.
func insertAfter(lines []string, at int, text string) []string {
	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:at+1]...)
	out = append(out, text)
	out = append(out, lines[at+1:]...)

	return out
}

// insertBefore returns a copy of lines with text inserted before index at.
func insertBefore(lines []string, at int, text string) []string {
	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:at]...)
	out = append(out, text)
	out = append(out, lines[at:]...)

	return out
}
