package model

// Clone-pair labels attached to exported datasets.
const (
	// LabelType3 marks a pair produced by the transformation engine.
	LabelType3 = "type3"
	// LabelType4 marks a pair mined from independent solutions.
	LabelType4 = "type4"
)

// ProblemCluster groups the solution files of one problem, in the order
// they were seen during the scan. Built once per mining run.
type ProblemCluster struct {
	ProblemID string
	Files     []Path
}

// Size returns the number of member files.
func (c ProblemCluster) Size() int {
	return len(c.Files)
}

// ClonePair is a labeled pair of paths. Both paths belong to the same
// cluster and a path is never paired against itself.
type ClonePair struct {
	PathA Path   `json:"path_a"`
	PathB Path   `json:"path_b"`
	Label string `json:"label"`
}

// Type3Record is one row of a batch-generated Type-3 dataset: the corpus
// file it came from and the clone derived from it.
type Type3Record struct {
	Path               Path   `json:"path"`
	Clone              string `json:"clone"`
	Success            bool   `json:"success"`
	NumTransformations int    `json:"num_transformations"`
	Label              string `json:"label"`
}

// MiningStats aggregates counts over a completed mining run.
type MiningStats struct {
	NumFiles               int     `yaml:"num_files"`
	NumProblems            int     `yaml:"num_problems"`
	NumQualifyingClusters  int     `yaml:"num_qualifying_clusters"`
	NumPairs               int     `yaml:"num_pairs"`
	AvgSolutionsPerProblem float64 `yaml:"avg_solutions_per_problem"`
}
