package domain

import (
	"testing"

	m "cloneforge.dev/pkg/cloneforge/internal/model"
)

const pythonSnippet = `import sys

def main():
    total = 0
    for x in range(10):
        total = total + x
    print(total)
`

func classify(t *testing.T, code string, lang m.Language) map[int]m.MutationTag {
	t.Helper()

	tags := make(map[int]m.MutationTag)
	for _, pt := range NewClassifier(3).Classify(code, lang) {
		tags[pt.Line] = pt.Tag
	}

	return tags
}

func TestClassifier_PythonDeclarationsAreCritical(t *testing.T) {
	tags := classify(t, pythonSnippet, m.LangPython)

	for _, line := range []int{0, 2} { // import, def
		if tags[line] != m.TagCritical {
			t.Errorf("line %d = %v, expected critical", line, tags[line])
		}
	}
}

func TestClassifier_SimpleStatementsAreDeletable(t *testing.T) {
	tags := classify(t, pythonSnippet, m.LangPython)

	if tags[3] != m.TagDeletable {
		t.Errorf("assignment line = %v, expected deletable", tags[3])
	}
}

func TestClassifier_BlockOpenersAreNotDeletable(t *testing.T) {
	tags := classify(t, pythonSnippet, m.LangPython)

	if tags[4] != m.TagInsertable {
		t.Errorf("for-loop line = %v, expected insertable", tags[4])
	}
}

func TestClassifier_ClosingBracketLinesAreCritical(t *testing.T) {
	code := "func add(a, b int) int {\n\tsum := a + b\n\treturn sum\n}\n"

	tags := classify(t, code, m.LangGo)

	if tags[0] != m.TagCritical {
		t.Errorf("signature = %v, expected critical", tags[0])
	}

	if tags[3] != m.TagCritical {
		t.Errorf("closing brace = %v, expected critical", tags[3])
	}
}

func TestClassifier_BlankLinesAreExcluded(t *testing.T) {
	tags := classify(t, pythonSnippet, m.LangPython)

	if _, ok := tags[1]; ok {
		t.Errorf("blank line classified as %v, expected no point", tags[1])
	}
}

func TestClassifier_TooFewLinesYieldsNoCandidates(t *testing.T) {
	points := NewClassifier(3).Classify("def f():\n    return 1\n", m.LangPython)

	if len(points) != 0 {
		t.Errorf("Classify() returned %d points, expected 0 for short input", len(points))
	}
}

func TestClassifier_ShortLinesAreNotDeletable(t *testing.T) {
	code := "a = 1\nx=2\nresult = a + x\nprint(result)\n"

	tags := classify(t, code, m.LangPython)

	if tags[1] == m.TagDeletable {
		t.Error("short line x=2 classified deletable, expected insertable")
	}
}

func TestClassifier_BracketLinesNotDeletableInBraceLanguages(t *testing.T) {
	code := "int x = 1;\nint y = 2;\nprintf(\"%d\", x + y);\nint z = 3;\nint w = 4;\n"

	tags := classify(t, code, m.LangC)

	if tags[2] == m.TagDeletable {
		t.Error("call statement with parens classified deletable in C")
	}

	if tags[1] != m.TagDeletable {
		t.Errorf("plain assignment = %v, expected deletable", tags[1])
	}
}

func TestSplitJoinLines_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"trailing newline", "a\nb\n"},
		{"interior blank", "a\n\nb\n"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JoinLines(SplitLines(tt.code))
			if got != tt.code {
				t.Errorf("JoinLines(SplitLines(%q)) = %q", tt.code, got)
			}
		})
	}
}
