package operators

import (
	"strings"

	m "cloneforge.dev/pkg/cloneforge/internal/model"
)

// pythonIndentUnit is the indent step used for the wrapped statement.
const pythonIndentUnit = "    "

// ConditionalWrap wraps a single simple statement in an always-true
// guard. Only indentation-scoped languages support this without
// disturbing bracket counts; for brace languages the operator reports
// not-applicable and the engine falls through to another operator.
func ConditionalWrap(lines []string, at int, lang m.Language) (Result, bool) {
	if lang != m.LangPython {
		return Result{}, false
	}

	if at < 0 || at >= len(lines) {
		return Result{}, false
	}

	trimmed := strings.TrimSpace(lines[at])
	if trimmed == "" || opensBlock(trimmed, lang) {
		return Result{}, false
	}

	indent := indentOf(lines[at])
	guard := indent + "if True:"
	wrapped := indent + pythonIndentUnit + trimmed

	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:at]...)
	out = append(out, guard, wrapped)
	out = append(out, lines[at+1:]...)

	return Result{Lines: out, Payload: guard, At: at}, true
}
