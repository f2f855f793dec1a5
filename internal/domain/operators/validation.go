package operators

import (
	"strings"

	m "cloneforge.dev/pkg/cloneforge/internal/model"
)

// defensiveComments are the bodies available to the validation-insert
// operator. They read like input checks but never change control flow.
var defensiveComments = []string{
	"inputs assumed valid here",
	"caller guarantees non-empty input",
	"bounds checked upstream",
	"sanity: state is consistent at this point",
}

// ValidationInsert adds a defensive comment near the entry point: right
// after the leading run of declaration-ish lines (imports, signatures,
// decorators), or at the top when the snippet starts with plain code.
func ValidationInsert(lines []string, lang m.Language, isCritical func(int) bool, pick Picker) (Result, bool) {
	if len(lines) == 0 {
		return Result{}, false
	}

	entry := entryPoint(lines, isCritical)
	body := defensiveComments[pick(len(defensiveComments))]

	indent := ""
	if entry < len(lines) {
		indent = indentOf(lines[entry])
	}

	payload := indent + commentPrefix(lang) + body

	if entry >= len(lines) {
		return Result{Lines: append(append([]string{}, lines...), payload), Payload: payload, At: len(lines)}, true
	}

	return Result{Lines: insertBefore(lines, entry, payload), Payload: payload, At: entry}, true
}

// entryPoint returns the index of the first non-blank, non-critical line.
func entryPoint(lines []string, isCritical func(int) bool) int {
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if isCritical(i) {
			continue
		}

		return i
	}

	return len(lines)
}
