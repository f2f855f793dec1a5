package domain

import (
	"strings"
	"testing"
)

const validatorOriginal = `def calc(a, b):
    total = a + b
    scale = 2
    result = total * scale
    return result
`

func TestValidator_AcceptsIdenticalCode(t *testing.T) {
	v := NewValidator(0.7)

	if err := v.Check(validatorOriginal, validatorOriginal, nil); err != nil {
		t.Fatalf("Check() on identical code = %v", err)
	}
}

func TestValidator_AcceptsCommentInsert(t *testing.T) {
	v := NewValidator(0.7)
	transformed := strings.Replace(validatorOriginal, "    scale = 2\n", "    scale = 2\n    # inline note\n", 1)

	if err := v.Check(validatorOriginal, transformed, nil); err != nil {
		t.Fatalf("Check() rejected a plain comment insert: %v", err)
	}
}

func TestValidator_RejectsBracketCountChange(t *testing.T) {
	v := NewValidator(0.7)
	transformed := strings.Replace(validatorOriginal, "result = total * scale", "result = (total * scale)", 1)

	if err := v.Check(validatorOriginal, transformed, nil); err == nil {
		t.Fatal("Check() accepted a change to paren counts")
	}
}

func TestValidator_RejectsExcessiveDeletion(t *testing.T) {
	v := NewValidator(0.7)
	transformed := "def calc(a, b):\n    return 0\n"

	if err := v.Check(validatorOriginal, transformed, nil); err == nil {
		t.Fatal("Check() accepted a clone below the retention floor")
	}
}

func TestValidator_RejectsAlteredCriticalLine(t *testing.T) {
	v := NewValidator(0.7)
	critical := []string{"def calc(a, b):"}
	transformed := strings.Replace(validatorOriginal, "def calc(a, b):", "def calc(b, a):", 1)

	if err := v.Check(validatorOriginal, transformed, critical); err == nil {
		t.Fatal("Check() accepted an altered critical line")
	}
}

func TestValidator_RejectsNestingChange(t *testing.T) {
	v := NewValidator(0.5)
	original := "a = [1]\nb = [2]\nc = [3]\n"
	transformed := "a = [[1]]\nb = 2\nc = [3]\n"

	if err := v.Check(original, transformed, nil); err == nil {
		t.Fatal("Check() accepted a bracket nesting change")
	}
}

func TestBalanced(t *testing.T) {
	tests := []struct {
		name string
		code string
		want bool
	}{
		{"balanced", "f(x[0]) { y }", true},
		{"missing close paren", "f(x", false},
		{"extra brace", "x } ", false},
		{"no brackets", "plain text", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Balanced(tt.code); got != tt.want {
				t.Errorf("Balanced(%q) = %v, expected %v", tt.code, got, tt.want)
			}
		})
	}
}
