package operators

import (
	"strings"
	"testing"

	m "cloneforge.dev/pkg/cloneforge/internal/model"
)

func pickFirst(int) int { return 0 }

func pickLast(n int) int { return n - 1 }

func TestInsert_CommentMatchesIndent(t *testing.T) {
	lines := []string{"def f():", "    x = 1", "    return x"}

	res, ok := Insert(lines, 1, m.LangPython, pickFirst)
	if !ok {
		t.Fatal("Insert() reported not-applicable")
	}

	if len(res.Lines) != 4 {
		t.Fatalf("got %d lines, expected 4", len(res.Lines))
	}

	if res.Lines[2] != "    # inline note" {
		t.Errorf("inserted line = %q, expected an indented comment", res.Lines[2])
	}

	if res.At != 2 {
		t.Errorf("At = %d, expected 2", res.At)
	}

	if res.Payload != res.Lines[2] {
		t.Errorf("Payload = %q, does not match inserted line %q", res.Payload, res.Lines[2])
	}
}

func TestInsert_PythonPassAvailableAfterStatements(t *testing.T) {
	lines := []string{"x = 1", "y = 2"}

	res, ok := Insert(lines, 0, m.LangPython, pickLast)
	if !ok {
		t.Fatal("Insert() reported not-applicable")
	}

	if res.Lines[1] != "pass" {
		t.Errorf("last pool entry = %q, expected a pass statement", res.Lines[1])
	}
}

func TestInsert_NoPassAfterBlockOpener(t *testing.T) {
	lines := []string{"for i in range(3):", "    x = i"}

	res, ok := Insert(lines, 0, m.LangPython, pickLast)
	if !ok {
		t.Fatal("Insert() reported not-applicable")
	}

	if !strings.HasPrefix(strings.TrimSpace(res.Lines[1]), "#") {
		t.Errorf("inserted line after opener = %q, expected a comment", res.Lines[1])
	}
}

func TestInsert_BraceLanguageUsesSlashes(t *testing.T) {
	lines := []string{"int x = 1;", "int y = 2;"}

	res, ok := Insert(lines, 0, m.LangC, pickFirst)
	if !ok {
		t.Fatal("Insert() reported not-applicable")
	}

	if !strings.HasPrefix(res.Lines[1], "// ") {
		t.Errorf("inserted line = %q, expected a // comment", res.Lines[1])
	}
}

func TestInsert_OutOfRange(t *testing.T) {
	if _, ok := Insert([]string{"x = 1"}, 5, m.LangPython, pickFirst); ok {
		t.Error("Insert() accepted an out-of-range index")
	}
}

func TestDelete_RemovesLine(t *testing.T) {
	lines := []string{"a = 1", "b = 2", "c = 3"}

	res, ok := Delete(lines, 1)
	if !ok {
		t.Fatal("Delete() reported not-applicable")
	}

	if len(res.Lines) != 2 || res.Lines[0] != "a = 1" || res.Lines[1] != "c = 3" {
		t.Errorf("Delete() produced %v", res.Lines)
	}

	if res.Payload != "" {
		t.Errorf("Payload = %q, expected empty for deletion", res.Payload)
	}

	if len(lines) != 3 {
		t.Error("Delete() mutated its input slice")
	}
}

func TestDelete_OutOfRange(t *testing.T) {
	if _, ok := Delete([]string{"a"}, -1); ok {
		t.Error("Delete() accepted a negative index")
	}

	if _, ok := Delete([]string{"a"}, 1); ok {
		t.Error("Delete() accepted an out-of-range index")
	}
}

func TestConditionalWrap_Python(t *testing.T) {
	lines := []string{"def f():", "    x = 1", "    return x"}

	res, ok := ConditionalWrap(lines, 1, m.LangPython)
	if !ok {
		t.Fatal("ConditionalWrap() reported not-applicable")
	}

	if res.Lines[1] != "    if True:" {
		t.Errorf("guard = %q", res.Lines[1])
	}

	if res.Lines[2] != "        x = 1" {
		t.Errorf("wrapped statement = %q", res.Lines[2])
	}

	if len(res.Lines) != 4 {
		t.Errorf("got %d lines, expected 4", len(res.Lines))
	}
}

func TestConditionalWrap_NotApplicable(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		at    int
		lang  m.Language
	}{
		{"brace language", []string{"int x = 1;"}, 0, m.LangC},
		{"block opener", []string{"if x:", "    y = 1"}, 0, m.LangPython},
		{"blank line", []string{"x = 1", "", "y = 2"}, 1, m.LangPython},
		{"out of range", []string{"x = 1"}, 3, m.LangPython},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := ConditionalWrap(tt.lines, tt.at, tt.lang); ok {
				t.Error("ConditionalWrap() applied, expected not-applicable")
			}
		})
	}
}

func TestValidationInsert_SkipsLeadingDeclarations(t *testing.T) {
	lines := []string{"import sys", "", "def f():", "    x = 1"}
	critical := func(i int) bool { return i == 0 || i == 2 }

	res, ok := ValidationInsert(lines, m.LangPython, critical, pickFirst)
	if !ok {
		t.Fatal("ValidationInsert() reported not-applicable")
	}

	if res.At != 3 {
		t.Fatalf("At = %d, expected 3", res.At)
	}

	if res.Lines[3] != "    # inputs assumed valid here" {
		t.Errorf("inserted line = %q", res.Lines[3])
	}

	if res.Lines[4] != "    x = 1" {
		t.Errorf("displaced line = %q, expected the original statement", res.Lines[4])
	}
}

func TestValidationInsert_AllCriticalAppends(t *testing.T) {
	lines := []string{"import sys", "import os"}
	critical := func(int) bool { return true }

	res, ok := ValidationInsert(lines, m.LangPython, critical, pickFirst)
	if !ok {
		t.Fatal("ValidationInsert() reported not-applicable")
	}

	if res.At != 2 || len(res.Lines) != 3 {
		t.Fatalf("At = %d, len = %d, expected append at the end", res.At, len(res.Lines))
	}
}

func TestValidationInsert_EmptyInput(t *testing.T) {
	if _, ok := ValidationInsert(nil, m.LangPython, func(int) bool { return false }, pickFirst); ok {
		t.Error("ValidationInsert() applied to empty input")
	}
}
