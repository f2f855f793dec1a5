// Package model defines the data structures for clone-pair generation.
package model

// Path represents a file system path.
type Path string

// Language identifies the programming language of a source unit.
type Language string

// Supported languages.
const (
	LangPython     Language = "python"
	LangGo         Language = "go"
	LangJava       Language = "java"
	LangC          Language = "c"
	LangCPP        Language = "cpp"
	LangJavaScript Language = "javascript"
)

// Languages lists every supported language in a stable order.
func Languages() []Language {
	return []Language{LangPython, LangGo, LangJava, LangC, LangCPP, LangJavaScript}
}

// IsSupported reports whether l is one of the supported languages.
func (l Language) IsSupported() bool {
	switch l {
	case LangPython, LangGo, LangJava, LangC, LangCPP, LangJavaScript:
		return true
	}

	return false
}

// SourceUnit is an immutable input snippet. The engine never mutates a
// SourceUnit in place; every transformation works on a copy of Code.
type SourceUnit struct {
	Code string
	Lang Language
}

// File represents a scanned corpus file.
type File struct {
	Path      Path
	ProblemID string
}
