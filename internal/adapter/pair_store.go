package adapter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	m "cloneforge.dev/pkg/cloneforge/internal/model"
)

// Export file names inside the output directory.
const (
	pairsFileName    = "pairs.jsonl"
	clonesFileName   = "clones.jsonl"
	manifestFileName = "manifest.yaml"
)

// RunManifest describes one export: what was run, with which options,
// and what came out. Written alongside the dataset so downstream
// consumers can tell runs apart.
type RunManifest struct {
	Label     string        `yaml:"label"`
	Lang      m.Language    `yaml:"lang"`
	Root      m.Path        `yaml:"root"`
	CreatedAt time.Time     `yaml:"created_at"`
	Options   ManifestOpts  `yaml:"options"`
	Stats     m.MiningStats `yaml:"stats,omitempty"`
}

// ManifestOpts records the knobs that shaped the run.
type ManifestOpts struct {
	MinClusterSize     int    `yaml:"min_cluster_size,omitempty"`
	MaxPairsPerCluster int    `yaml:"max_pairs_per_cluster,omitempty"`
	Seed               *int64 `yaml:"seed,omitempty"`
	MaxTransformations int    `yaml:"max_transformations,omitempty"`
}

// PairStore persists exported datasets. Persistence beyond this export
// (tables, object stores) stays a caller responsibility.
type PairStore interface {
	SavePairs(dir m.Path, pairs []m.ClonePair) error
	SaveClones(dir m.Path, each func(func(m.Type3Record) error) error) error
	SaveManifest(dir m.Path, manifest RunManifest) error
}

// JSONLPairStore writes pairs and clones as JSON lines plus a yaml
// manifest into an output directory.
type JSONLPairStore struct{}

// NewPairStore constructs a JSONLPairStore.
func NewPairStore() *JSONLPairStore {
	return &JSONLPairStore{}
}

// SavePairs writes pairs.jsonl under dir, one pair per line.
func (s *JSONLPairStore) SavePairs(dir m.Path, pairs []m.ClonePair) error {
	return s.writeLines(dir, pairsFileName, func(emit func(any) error) error {
		for _, pair := range pairs {
			if err := emit(pair); err != nil {
				return err
			}
		}

		return nil
	})
}

// SaveClones writes clones.jsonl under dir. The each callback iterates
// records so spilled datasets stream to disk without rematerializing.
func (s *JSONLPairStore) SaveClones(dir m.Path, each func(func(m.Type3Record) error) error) error {
	return s.writeLines(dir, clonesFileName, func(emit func(any) error) error {
		return each(func(rec m.Type3Record) error {
			return emit(rec)
		})
	})
}

// SaveManifest writes manifest.yaml under dir.
func (s *JSONLPairStore) SaveManifest(dir m.Path, manifest RunManifest) error {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	data, err := yaml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	target := filepath.Join(string(dir), manifestFileName)
	if err := os.WriteFile(target, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", manifestFileName, err)
	}

	return nil
}

func (s *JSONLPairStore) writeLines(dir m.Path, name string, fill func(emit func(any) error) error) error {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	target := filepath.Join(string(dir), name)

	f, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}

	defer func() { _ = f.Close() }()

	enc := json.NewEncoder(f)

	return fill(func(v any) error {
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode record: %w", err)
		}

		return nil
	})
}
