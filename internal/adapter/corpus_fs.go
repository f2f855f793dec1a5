// Package adapter contains infrastructure adapters for the cloneforge CLI.
package adapter

import (
	"os"
	"path/filepath"

	m "cloneforge.dev/pkg/cloneforge/internal/model"
)

// WalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here so the domain layer does not depend on the standard
// library type directly.
type WalkFunc func(path string, info os.FileInfo, err error) error

// CorpusFS abstracts the read-only filesystem operations the mining and
// batch workflows rely on. The corpus is never written to; hiding direct
// os access keeps the workflow logic testable without touching the disk.
type CorpusFS interface {
	// Walk traverses the tree rooted at root, descending into
	// subdirectories.
	Walk(root m.Path, fn WalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// Stat returns metadata for a path so the workflow can fail fast on
	// a missing or unreadable corpus root.
	Stat(path m.Path) (os.FileInfo, error)

	// ReadDir lists the immediate entries of a directory, used to fan a
	// parallel scan out across top-level subtrees.
	ReadDir(path m.Path) ([]os.DirEntry, error)
}

// LocalCorpusFS backs CorpusFS with the local filesystem.
type LocalCorpusFS struct{}

// NewLocalCorpusFS constructs a LocalCorpusFS ready to be wired into the
// workflow.
func NewLocalCorpusFS() *LocalCorpusFS {
	return &LocalCorpusFS{}
}

// Walk iterates over all files under root.
func (a *LocalCorpusFS) Walk(root m.Path, fn WalkFunc) error {
	return filepath.Walk(string(root), func(path string, info os.FileInfo, err error) error {
		return fn(path, info, err)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalCorpusFS) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// Stat returns os.FileInfo metadata for the given path.
func (a *LocalCorpusFS) Stat(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// ReadDir lists the immediate entries of path.
func (a *LocalCorpusFS) ReadDir(path m.Path) ([]os.DirEntry, error) {
	return os.ReadDir(string(path))
}
