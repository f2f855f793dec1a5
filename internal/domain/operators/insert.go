package operators

import (
	"strings"

	m "cloneforge.dev/pkg/cloneforge/internal/model"
)

// stylisticComments is the pool of comment bodies the insert operator
// draws from. The pick index comes from the engine's seeded generator.
var stylisticComments = []string{
	"inline note",
	"kept for readability",
	"see surrounding logic",
	"intermediate step",
	"straightforward case",
}

// pythonNoOps are additional no-op statements available in Python, where
// a same-indent `pass` after a statement parses cleanly.
var pythonNoOps = []string{
	"pass",
}

// Insert appends a stylistic comment or no-op statement after the line at
// index at, matching its indentation.
func Insert(lines []string, at int, lang m.Language, pick Picker) (Result, bool) {
	if at < 0 || at >= len(lines) {
		return Result{}, false
	}

	indent := indentOf(lines[at])
	trimmed := strings.TrimSpace(lines[at])

	pool := make([]string, 0, len(stylisticComments)+len(pythonNoOps))
	for _, body := range stylisticComments {
		pool = append(pool, commentPrefix(lang)+body)
	}

	// A no-op statement directly after a block opener would sit at the
	// wrong depth, so openers only receive comments.
	if lang == m.LangPython && !opensBlock(trimmed, lang) {
		pool = append(pool, pythonNoOps...)
	}

	payload := indent + pool[pick(len(pool))]

	return Result{
		Lines:   insertAfter(lines, at, payload),
		Payload: payload,
		At:      at + 1,
	}, true
}
