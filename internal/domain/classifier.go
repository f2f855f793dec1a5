// Package domain contains the core clone-generation and mining logic.
package domain

import (
	"regexp"
	"strings"

	m "cloneforge.dev/pkg/cloneforge/internal/model"
)

// DefaultMinTokenLength is the minimum trimmed length a line needs before
// it is considered for deletion.
const DefaultMinTokenLength = 4

// declarationPatterns matches lines that introduce declarations and must
// survive every transformation untouched.
var declarationPatterns = map[m.Language][]*regexp.Regexp{
	m.LangPython: {
		regexp.MustCompile(`^\s*def\s+\w+`),
		regexp.MustCompile(`^\s*class\s+\w+`),
		regexp.MustCompile(`^\s*import\s+\w`),
		regexp.MustCompile(`^\s*from\s+\S+\s+import\b`),
		regexp.MustCompile(`^\s*@\w+`),
	},
	m.LangGo: {
		regexp.MustCompile(`^\s*func\s+`),
		regexp.MustCompile(`^\s*package\s+\w+`),
		regexp.MustCompile(`^\s*import\b`),
		regexp.MustCompile(`^\s*type\s+\w+`),
	},
	m.LangJava: {
		regexp.MustCompile(`^\s*(public|private|protected|static|abstract|final)\b.*[({]?\s*$`),
		regexp.MustCompile(`^\s*(class|interface|enum)\s+\w+`),
		regexp.MustCompile(`^\s*(import|package)\s+\S+`),
	},
	m.LangC: {
		regexp.MustCompile(`^\s*#\s*(include|define|ifdef|ifndef|endif|pragma)\b`),
		regexp.MustCompile(`^\w[\w\s\*]*\w\s*\([^;]*\)\s*\{?\s*$`),
		regexp.MustCompile(`^\s*(struct|union|enum|typedef)\b`),
	},
	m.LangCPP: {
		regexp.MustCompile(`^\s*#\s*(include|define|ifdef|ifndef|endif|pragma)\b`),
		regexp.MustCompile(`^[\w:<>~]+[\w\s\*&:<>,]*\([^;]*\)\s*(const)?\s*\{?\s*$`),
		regexp.MustCompile(`^\s*(class|struct|namespace|template|typedef|using)\b`),
	},
	m.LangJavaScript: {
		regexp.MustCompile(`^\s*(function|class)\s+\w+`),
		regexp.MustCompile(`^\s*(import|export)\b`),
		regexp.MustCompile(`^\s*(const|let|var)\s+\w+\s*=\s*(async\s*)?\(?[\w\s,]*\)?\s*=>`),
	},
}

// closingOnly matches lines consisting solely of closing brackets,
// optional trailing separators, and whitespace.
var closingOnly = regexp.MustCompile(`^\s*[)\]}]+[;,]?\s*$`)

// controlKeyword matches statements whose removal would change control
// flow, so they are never deletable.
var controlKeyword = regexp.MustCompile(`^\s*(return|break|continue|if|elif|else|for|while|switch|case|default|try|except|catch|finally|raise|throw|yield|go|defer|do)\b`)

// anyBracket matches lines carrying bracket characters. Deleting one
// would upset the bracket-count invariant, so such lines stay put in
// brace languages.
var anyBracket = regexp.MustCompile(`[()\[\]{}]`)

// Classifier tags each source line as critical, insertable, or deletable.
type Classifier struct {
	// MinLines is the minimum number of non-blank lines required before
	// any candidates are produced.
	MinLines int
	// MinTokenLength excludes short lines from the deletable set.
	MinTokenLength int
}

// NewClassifier returns a Classifier with the given floor on non-blank
// lines and the default token-length threshold.
func NewClassifier(minLines int) *Classifier {
	return &Classifier{MinLines: minLines, MinTokenLength: DefaultMinTokenLength}
}

// Classify returns one mutation point per non-blank line, in line order.
// It returns nil when the snippet has fewer than MinLines non-blank
// lines, which forces the engine into its fallback.
func (c *Classifier) Classify(code string, lang m.Language) []m.MutationPoint {
	lines := SplitLines(code)
	if CountNonBlank(lines) < c.MinLines {
		return nil
	}

	points := make([]m.MutationPoint, 0, len(lines))

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		points = append(points, m.MutationPoint{Line: i, Tag: c.classifyLine(line, trimmed, lang)})
	}

	return points
}

func (c *Classifier) classifyLine(line, trimmed string, lang m.Language) m.MutationTag {
	if isDeclaration(line, lang) || closingOnly.MatchString(line) {
		return m.TagCritical
	}

	if c.isDeletable(line, trimmed, lang) {
		return m.TagDeletable
	}

	return m.TagInsertable
}

// isDeletable accepts simple statements whose removal keeps the snippet
// structurally intact: no block openers, no control flow, no bracket
// imbalance risk in brace languages, and enough substance to matter.
func (c *Classifier) isDeletable(line, trimmed string, lang m.Language) bool {
	if len(trimmed) < c.MinTokenLength {
		return false
	}

	if controlKeyword.MatchString(line) {
		return false
	}

	if opensBlock(trimmed, lang) {
		return false
	}

	if lang != m.LangPython && anyBracket.MatchString(line) {
		return false
	}

	return true
}

func isDeclaration(line string, lang m.Language) bool {
	for _, re := range declarationPatterns[lang] {
		if re.MatchString(line) {
			return true
		}
	}

	return false
}

// opensBlock reports whether the statement introduces a nested block.
func opensBlock(trimmed string, lang m.Language) bool {
	if lang == m.LangPython {
		return strings.HasSuffix(trimmed, ":")
	}

	return strings.HasSuffix(trimmed, "{")
}

// SplitLines splits code on newlines without dropping interior empties.
// A single trailing newline does not produce a phantom last line.
func SplitLines(code string) []string {
	code = strings.TrimSuffix(code, "\n")
	if code == "" {
		return nil
	}

	return strings.Split(code, "\n")
}

// JoinLines is the inverse of SplitLines, restoring the trailing newline.
func JoinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}

	return strings.Join(lines, "\n") + "\n"
}

// CountNonBlank counts lines with any non-whitespace content.
func CountNonBlank(lines []string) int {
	n := 0

	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}

	return n
}
