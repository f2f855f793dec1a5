package domain

import (
	"path/filepath"
	"strings"

	m "cloneforge.dev/pkg/cloneforge/internal/model"
)

// Submission-marker substrings, in precedence order. The order is a
// contract: the first matching rule wins and later rules are never
// consulted, so clusters stay comparable across runs and tools.
const (
	subMarker      = "_sub_"
	solutionMarker = "_solution_"
)

// ExtractProblemID maps a file path to the identifier of the problem it
// solves, using ordered heuristics on the extension-less base name:
//
//  1. text before the first "_sub_" when present,
//  2. else text before the first "_solution_",
//  3. else text before the first underscore,
//  4. else the whole name.
func ExtractProblemID(path m.Path) string {
	name := filepath.Base(string(path))
	name = strings.TrimSuffix(name, filepath.Ext(name))

	if i := strings.Index(name, subMarker); i >= 0 {
		return name[:i]
	}

	if i := strings.Index(name, solutionMarker); i >= 0 {
		return name[:i]
	}

	if i := strings.Index(name, "_"); i >= 0 {
		return name[:i]
	}

	return name
}
