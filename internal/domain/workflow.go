package domain

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"cloneforge.dev/pkg/cloneforge/internal/adapter"
	m "cloneforge.dev/pkg/cloneforge/internal/model"
	"cloneforge.dev/pkg/cloneforge/pkg"
)

// Miner discovers Type-4 clone pairs in a corpus of independently
// written solutions.
type Miner interface {
	Mine(ctx context.Context, args MineArgs) ([]m.ClonePair, error)
	MineWithStats(ctx context.Context, args MineArgs) ([]m.ClonePair, m.MiningStats, error)
}

// Workflow composes the mining and batch-generation pipelines on top of
// the filesystem and language adapters.
type Workflow interface {
	Miner
	Batch(ctx context.Context, args BatchArgs) (BatchOutcome, error)
}

// MineArgs configures one mining run.
type MineArgs struct {
	Root m.Path
	Lang m.Language
	// MinClusterSize is the minimum member count before a cluster
	// yields pairs. Values below 2 are raised to 2.
	MinClusterSize int
	// MaxPairsPerCluster caps pair output per cluster; zero means
	// uncapped.
	MaxPairsPerCluster int
	// Parallel fans the scan out across top-level subtrees. Clustering
	// always waits for the full scan to finish.
	Parallel int
}

// BatchArgs configures corpus-wide Type-3 generation.
type BatchArgs struct {
	Root     m.Path
	Lang     m.Language
	Parallel int
	Gen      GenerateOptions
}

// BatchOutcome reports a completed batch run. Records holds the
// generated dataset rows spilled to disk in corpus order.
type BatchOutcome struct {
	Records   pkg.FileSpill[m.Type3Record]
	Generated int
	Fallbacks int
}

type workflow struct {
	fs     adapter.CorpusFS
	langs  adapter.LanguageResolver
	engine Generator
}

// NewWorkflow creates a Workflow with the provided dependencies.
func NewWorkflow(fs adapter.CorpusFS, langs adapter.LanguageResolver, engine Generator) Workflow {
	return &workflow{fs: fs, langs: langs, engine: engine}
}

// Mine scans the corpus, clusters solutions by problem id, and emits all
// unordered pairs of qualifying clusters.
func (w *workflow) Mine(ctx context.Context, args MineArgs) ([]m.ClonePair, error) {
	pairs, _, err := w.mine(ctx, args)

	return pairs, err
}

// MineWithStats runs Mine and aggregates run statistics.
func (w *workflow) MineWithStats(ctx context.Context, args MineArgs) ([]m.ClonePair, m.MiningStats, error) {
	return w.mine(ctx, args)
}

func (w *workflow) mine(ctx context.Context, args MineArgs) ([]m.ClonePair, m.MiningStats, error) {
	files, err := w.Scan(ctx, args.Root, args.Lang, args.Parallel)
	if err != nil {
		return nil, m.MiningStats{}, err
	}

	// Clustering requires the complete scan result; Scan has already
	// joined every subtree at this point.
	clusters := BuildClusters(files)
	qualifying := QualifyingClusters(clusters, args.MinClusterSize)

	pairs := make([]m.ClonePair, 0)
	for _, cluster := range qualifying {
		pairs = append(pairs, GeneratePairs(cluster, args.MaxPairsPerCluster)...)
	}

	stats := ComputeStats(len(files), clusters, qualifying, len(pairs))

	slog.Info("mining run complete",
		"root", args.Root,
		"lang", args.Lang,
		"files", stats.NumFiles,
		"problems", stats.NumProblems,
		"qualifying", stats.NumQualifyingClusters,
		"pairs", stats.NumPairs,
	)

	return pairs, stats, nil
}

// Scan enumerates corpus files for lang under root. Results are sorted
// by path so cluster insertion order is stable regardless of parallelism.
// A missing or unreadable root is fatal: there is no safe fallback for
// mining.
func (w *workflow) Scan(ctx context.Context, root m.Path, lang m.Language, parallel int) ([]m.File, error) {
	info, err := w.fs.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("corpus root %s: %w", root, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("corpus root %s is not a directory", root)
	}

	var files []m.File
	if parallel > 1 {
		files, err = w.scanParallel(ctx, root, lang, parallel)
	} else {
		files, err = w.scanTree(ctx, root, lang)
	}

	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	for i := range files {
		files[i].ProblemID = ExtractProblemID(files[i].Path)
	}

	return files, nil
}

func (w *workflow) scanTree(ctx context.Context, root m.Path, lang m.Language) ([]m.File, error) {
	var files []m.File

	err := w.fs.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if info.IsDir() || !w.langs.Matches(path, lang) {
			return nil
		}

		files = append(files, m.File{Path: m.Path(path)})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	return files, nil
}

// scanParallel walks each top-level subtree in its own goroutine. The
// errgroup join is the synchronization barrier before clustering.
func (w *workflow) scanParallel(ctx context.Context, root m.Path, lang m.Language, parallel int) ([]m.File, error) {
	entries, err := w.fs.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	var (
		mu    sync.Mutex
		files []m.File
	)

	// Top-level files are collected separately and merged only after the
	// group join, so the shared slice is touched exclusively under mu by
	// the workers.
	var topLevel []m.File

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(parallel)

	for _, entry := range entries {
		path := m.Path(filepath.Join(string(root), entry.Name()))

		if !entry.IsDir() {
			if w.langs.Matches(string(path), lang) {
				topLevel = append(topLevel, m.File{Path: path})
			}

			continue
		}

		group.Go(func() error {
			sub, err := w.scanTree(groupCtx, path, lang)
			if err != nil {
				return err
			}

			mu.Lock()
			files = append(files, sub...)
			mu.Unlock()

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return append(files, topLevel...), nil
}

// indexedRecord carries one generated dataset row together with its
// corpus position, so the spill consumer can restore scan order.
type indexedRecord struct {
	idx int
	rec m.Type3Record
}

// Batch generates a Type-3 clone for every corpus file and spills the
// dataset rows to disk in corpus order. Per-file seeds derive from the
// run seed and the file path, so a batch replays byte-identically.
//
// Workers publish records as they finish; a single consumer writes them
// to the spill in corpus order. Tasks are launched in corpus order with
// at most `threads` in flight, so the reorder buffer never holds more
// than `threads` records and peak memory stays independent of corpus
// size.
func (w *workflow) Batch(ctx context.Context, args BatchArgs) (BatchOutcome, error) {
	files, err := w.Scan(ctx, args.Root, args.Lang, args.Parallel)
	if err != nil {
		return BatchOutcome{}, err
	}

	spill, err := pkg.NewFileSpill[m.Type3Record]("cloneforge-batch-*.gob")
	if err != nil {
		return BatchOutcome{}, err
	}

	threads := args.Parallel
	if threads < 1 {
		threads = 1
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(threads)

	records := make(chan indexedRecord, threads)

	go func() {
		defer close(records)

		for i, file := range files {
			i, file := i, file

			group.Go(func() error {
				if ctxErr := groupCtx.Err(); ctxErr != nil {
					return ctxErr
				}

				content, err := w.fs.ReadFile(file.Path)
				if err != nil {
					return fmt.Errorf("read %s: %w", file.Path, err)
				}

				opts := args.Gen
				opts.Seed = batchSeed(args.Gen.Seed, file.Path)

				res := w.engine.Generate(string(content), args.Lang, opts)

				records <- indexedRecord{idx: i, rec: m.Type3Record{
					Path:               file.Path,
					Clone:              res.Clone,
					Success:            res.Success,
					NumTransformations: len(res.Applied),
					Label:              m.LabelType3,
				}}

				return nil
			})
		}

		_ = group.Wait()
	}()

	outcome := BatchOutcome{Records: spill}
	pending := make(map[int]m.Type3Record, threads)
	next := 0

	// Keep draining even after a spill failure so no worker blocks on
	// the channel; the first error wins.
	var spillErr error

	for ir := range records {
		pending[ir.idx] = ir.rec

		for {
			rec, ok := pending[next]
			if !ok {
				break
			}

			delete(pending, next)
			next++

			if spillErr != nil {
				continue
			}

			if err := spill.Append(rec); err != nil {
				spillErr = err
				continue
			}

			if rec.Success {
				outcome.Generated++
			} else {
				outcome.Fallbacks++
			}
		}
	}

	if err := group.Wait(); err != nil {
		_ = spill.Close()
		return BatchOutcome{}, err
	}

	if spillErr != nil {
		_ = spill.Close()
		return BatchOutcome{}, spillErr
	}

	slog.Info("batch run complete",
		"root", args.Root,
		"lang", args.Lang,
		"files", len(files),
		"generated", outcome.Generated,
		"fallbacks", outcome.Fallbacks,
	)

	return outcome, nil
}

// batchSeed folds the file path into the run seed so every file gets a
// distinct but reproducible stream.
func batchSeed(base *int64, path m.Path) *int64 {
	var seed int64
	if base != nil {
		seed = *base
	}

	var acc int64
	for _, r := range strings.ToValidUTF8(string(path), "") {
		acc = acc*31 + int64(r)
	}

	seed ^= acc

	return &seed
}
