package adapter

import (
	"os"

	lru "github.com/hashicorp/golang-lru/v2"

	m "cloneforge.dev/pkg/cloneforge/internal/model"
)

// DefaultCacheSize is the number of file contents kept in memory by the
// caching corpus adapter.
const DefaultCacheSize = 256

// CachingCorpusFS wraps a CorpusFS with an LRU read-through cache.
// Batch generation reads each corpus file at least once per pass; the
// cache keeps hot solutions resident across passes.
type CachingCorpusFS struct {
	inner CorpusFS
	cache *lru.Cache[m.Path, []byte]
}

// NewCachingCorpusFS wraps inner with an LRU cache of the given size.
// A non-positive size falls back to DefaultCacheSize.
func NewCachingCorpusFS(inner CorpusFS, size int) (*CachingCorpusFS, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}

	cache, err := lru.New[m.Path, []byte](size)
	if err != nil {
		return nil, err
	}

	return &CachingCorpusFS{inner: inner, cache: cache}, nil
}

// ReadFile returns cached contents when present, reading through to the
// wrapped adapter otherwise.
func (a *CachingCorpusFS) ReadFile(path m.Path) ([]byte, error) {
	if content, ok := a.cache.Get(path); ok {
		return content, nil
	}

	content, err := a.inner.ReadFile(path)
	if err != nil {
		return nil, err
	}

	a.cache.Add(path, content)

	return content, nil
}

// Walk delegates to the wrapped adapter.
func (a *CachingCorpusFS) Walk(root m.Path, fn WalkFunc) error {
	return a.inner.Walk(root, fn)
}

// Stat delegates to the wrapped adapter.
func (a *CachingCorpusFS) Stat(path m.Path) (os.FileInfo, error) {
	return a.inner.Stat(path)
}

// ReadDir delegates to the wrapped adapter.
func (a *CachingCorpusFS) ReadDir(path m.Path) ([]os.DirEntry, error) {
	return a.inner.ReadDir(path)
}
