package cmd

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "cloneforge.dev/pkg/cloneforge/internal/model"
)

func readClones(t *testing.T, path string) []m.Type3Record {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)

	defer func() { _ = f.Close() }()

	var records []m.Type3Record

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		var rec m.Type3Record
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		records = append(records, rec)
	}

	require.NoError(t, scanner.Err())

	return records
}

func TestBatchCommand_ExportsCloneDataset(t *testing.T) {
	chdir(t, t.TempDir())

	corpus := writeTestCorpus(t, "q1_sub_1.py", "q1_sub_2.py", "q2_sub_1.py")

	out, err := executeCommand(t, "batch", corpus, "-o", "dataset", "--seed", "9")

	require.NoError(t, err)
	assert.Contains(t, out, "Generated")

	records := readClones(t, filepath.Join("dataset", "clones.jsonl"))
	require.Len(t, records, 3)

	for _, rec := range records {
		assert.Equal(t, m.LabelType3, rec.Label)
		assert.NotEmpty(t, rec.Clone)
	}
}

func TestBatchCommand_RunsAreReproducible(t *testing.T) {
	chdir(t, t.TempDir())

	corpus := writeTestCorpus(t, "q1_sub_1.py", "q1_sub_2.py")

	_, err := executeCommand(t, "batch", corpus, "-o", "first", "--seed", "4")
	require.NoError(t, err)

	_, err = executeCommand(t, "batch", corpus, "-o", "second", "--seed", "4")
	require.NoError(t, err)

	first := readClones(t, filepath.Join("first", "clones.jsonl"))
	second := readClones(t, filepath.Join("second", "clones.jsonl"))

	assert.Equal(t, first, second)
}

func TestBatchCommand_MissingRootFails(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := executeCommand(t, "batch", "no-such-dir", "-o", "dataset")

	assert.Error(t, err)
}
