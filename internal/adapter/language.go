package adapter

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"

	m "cloneforge.dev/pkg/cloneforge/internal/model"
)

// LanguageResolver decides whether a corpus file belongs to a requested
// language.
type LanguageResolver interface {
	// Matches reports whether the file at path is written in lang.
	Matches(path string, lang m.Language) bool

	// Extensions returns the canonical extensions for lang.
	Extensions(lang m.Language) []string
}

// extensionTable is the static fallback mapping used when enry cannot
// identify the file (bare corpora frequently use unusual extensions).
var extensionTable = map[m.Language][]string{
	m.LangPython:     {".py"},
	m.LangGo:         {".go"},
	m.LangJava:       {".java"},
	m.LangC:          {".c", ".h"},
	m.LangCPP:        {".cpp", ".cc", ".cxx", ".hpp", ".hh"},
	m.LangJavaScript: {".js", ".mjs"},
}

// enryNames maps our language enum to the names enry reports.
var enryNames = map[m.Language]string{
	m.LangPython:     "Python",
	m.LangGo:         "Go",
	m.LangJava:       "Java",
	m.LangC:          "C",
	m.LangCPP:        "C++",
	m.LangJavaScript: "JavaScript",
}

// EnryResolver resolves languages via go-enry with a static extension
// fallback.
type EnryResolver struct{}

// NewEnryResolver constructs an EnryResolver.
func NewEnryResolver() *EnryResolver {
	return &EnryResolver{}
}

// Matches checks the static extension table first, then asks enry to
// identify the file by extension.
func (r *EnryResolver) Matches(path string, lang m.Language) bool {
	ext := strings.ToLower(filepath.Ext(path))

	for _, want := range extensionTable[lang] {
		if ext == want {
			return true
		}
	}

	detected, _ := enry.GetLanguageByExtension(path)

	return detected != "" && detected == enryNames[lang]
}

// Extensions returns the canonical extensions for lang.
func (r *EnryResolver) Extensions(lang m.Language) []string {
	return extensionTable[lang]
}
