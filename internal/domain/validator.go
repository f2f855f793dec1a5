package domain

import (
	"fmt"
	"strings"
)

// DefaultMinRetention is the minimum fraction of original lines a clone
// must keep.
const DefaultMinRetention = 0.7

// bracketPairs lists the bracket characters tracked by the validator.
var bracketPairs = [][2]rune{
	{'(', ')'},
	{'{', '}'},
	{'[', ']'},
}

// Validator checks structural invariants between an original snippet and
// a transformed candidate. A failing check rejects the single attempted
// edit; the engine then retries elsewhere.
type Validator struct {
	// MinRetention is the minimum ratio of transformed to original
	// non-blank line count.
	MinRetention float64
}

// NewValidator returns a Validator with the given retention floor, or
// the default when ratio is not in (0, 1].
func NewValidator(ratio float64) *Validator {
	if ratio <= 0 || ratio > 1 {
		ratio = DefaultMinRetention
	}

	return &Validator{MinRetention: ratio}
}

// Check verifies the transformed snippet against the original. critical
// holds the verbatim text of every critical line of the original. A nil
// return means the edit may be accepted.
func (v *Validator) Check(original, transformed string, critical []string) error {
	if err := checkBracketCounts(original, transformed); err != nil {
		return err
	}

	if err := checkNesting(original, transformed); err != nil {
		return err
	}

	if err := v.checkRetention(original, transformed); err != nil {
		return err
	}

	return checkCriticalLines(transformed, critical)
}

// Balanced reports whether every bracket type in code has matching open
// and close counts. The engine refuses snippets that are unbalanced
// before any edit.
func Balanced(code string) bool {
	for _, pair := range bracketPairs {
		if strings.Count(code, string(pair[0])) != strings.Count(code, string(pair[1])) {
			return false
		}
	}

	return true
}

func checkBracketCounts(original, transformed string) error {
	for _, pair := range bracketPairs {
		for _, ch := range pair {
			want := strings.Count(original, string(ch))
			got := strings.Count(transformed, string(ch))

			if want != got {
				return fmt.Errorf("bracket count changed for %q: %d -> %d", ch, want, got)
			}
		}
	}

	return nil
}

// checkNesting compares the top-level shape: the indentation of the first
// non-blank line and the maximum bracket nesting depth must not move.
func checkNesting(original, transformed string) error {
	if a, b := firstIndent(original), firstIndent(transformed); a != b {
		return fmt.Errorf("top-level indentation changed: %d -> %d", a, b)
	}

	if a, b := maxBracketDepth(original), maxBracketDepth(transformed); a != b {
		return fmt.Errorf("bracket nesting depth changed: %d -> %d", a, b)
	}

	return nil
}

func (v *Validator) checkRetention(original, transformed string) error {
	origCount := CountNonBlank(SplitLines(original))
	if origCount == 0 {
		return nil
	}

	gotCount := CountNonBlank(SplitLines(transformed))

	ratio := float64(gotCount) / float64(origCount)
	if ratio < v.MinRetention {
		return fmt.Errorf("retention %.2f below minimum %.2f", ratio, v.MinRetention)
	}

	return nil
}

// checkCriticalLines requires every critical line of the original to
// appear verbatim, in order, in the transformed snippet.
func checkCriticalLines(transformed string, critical []string) error {
	lines := SplitLines(transformed)
	next := 0

	for _, want := range critical {
		found := false

		for ; next < len(lines); next++ {
			if lines[next] == want {
				next++
				found = true

				break
			}
		}

		if !found {
			return fmt.Errorf("critical line missing or altered: %q", strings.TrimSpace(want))
		}
	}

	return nil
}

func firstIndent(code string) int {
	for _, line := range SplitLines(code) {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}

		return len(line) - len(trimmed)
	}

	return 0
}

func maxBracketDepth(code string) int {
	depth := 0
	maxDepth := 0

	for _, ch := range code {
		switch ch {
		case '(', '{', '[':
			depth++
			if depth > maxDepth {
				maxDepth = depth
			}
		case ')', '}', ']':
			depth--
		}
	}

	return maxDepth
}
