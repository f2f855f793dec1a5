package domain

import (
	m "cloneforge.dev/pkg/cloneforge/internal/model"
)

// BuildClusters groups scanned files by problem id, preserving first-seen
// insertion order of both clusters and members. It expects the complete
// scan result: partial scans must not be clustered.
func BuildClusters(files []m.File) []m.ProblemCluster {
	index := make(map[string]int, len(files))
	clusters := make([]m.ProblemCluster, 0)

	for _, f := range files {
		id := f.ProblemID
		if id == "" {
			id = ExtractProblemID(f.Path)
		}

		at, ok := index[id]
		if !ok {
			index[id] = len(clusters)
			clusters = append(clusters, m.ProblemCluster{ProblemID: id})
			at = len(clusters) - 1
		}

		clusters[at].Files = append(clusters[at].Files, f.Path)
	}

	return clusters
}

// QualifyingClusters keeps clusters with at least minSize members.
func QualifyingClusters(clusters []m.ProblemCluster, minSize int) []m.ProblemCluster {
	if minSize < 2 {
		minSize = 2
	}

	out := make([]m.ProblemCluster, 0, len(clusters))

	for _, c := range clusters {
		if c.Size() >= minSize {
			out = append(out, c)
		}
	}

	return out
}

// GeneratePairs emits every unordered 2-combination of the cluster's
// members as Type-4 pairs. maxPairs caps the output per cluster; zero
// means uncapped. The cap is the resource-control knob for skewed
// corpora, where one oversized cluster dominates the quadratic cost.
//
// Filtering pairs by similarity is a deliberate extension point left to
// downstream consumers; no metric is computed here.
func GeneratePairs(cluster m.ProblemCluster, maxPairs int) []m.ClonePair {
	n := cluster.Size()
	if n < 2 {
		return nil
	}

	limit := n * (n - 1) / 2
	if maxPairs > 0 && maxPairs < limit {
		limit = maxPairs
	}

	pairs := make([]m.ClonePair, 0, limit)

	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			if len(pairs) >= limit {
				return pairs
			}

			pairs = append(pairs, m.ClonePair{
				PathA: cluster.Files[i],
				PathB: cluster.Files[j],
				Label: m.LabelType4,
			})
		}
	}

	return pairs
}

// ComputeStats aggregates counts over a completed mining run. Pure.
func ComputeStats(numFiles int, clusters, qualifying []m.ProblemCluster, numPairs int) m.MiningStats {
	stats := m.MiningStats{
		NumFiles:              numFiles,
		NumProblems:           len(clusters),
		NumQualifyingClusters: len(qualifying),
		NumPairs:              numPairs,
	}

	if len(qualifying) > 0 {
		total := 0
		for _, c := range qualifying {
			total += c.Size()
		}

		stats.AvgSolutionsPerProblem = float64(total) / float64(len(qualifying))
	}

	return stats
}
