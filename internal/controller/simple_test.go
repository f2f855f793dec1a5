package controller

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "cloneforge.dev/pkg/cloneforge/internal/model"
)

func newCapturedUI() (*SimpleUI, *bytes.Buffer) {
	cmd := &cobra.Command{}
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)

	return NewSimpleUI(cmd), buf
}

func TestSimpleUI_Start(t *testing.T) {
	ui, buf := newCapturedUI()

	require.NoError(t, ui.Start(context.Background(), "Mining corpus"))
	assert.Equal(t, "Mining corpus\n", buf.String())
}

func TestSimpleUI_DisplayCloneSuccess(t *testing.T) {
	ui, buf := newCapturedUI()

	result := m.CloneResult{
		Clone:   "x = 1\n# inline note\n",
		Success: true,
		Applied: []m.TransformationRecord{
			{Kind: m.OpInsert, Line: 0, Payload: "# inline note"},
		},
	}

	require.NoError(t, ui.DisplayClone(context.Background(), result))

	out := buf.String()
	assert.Contains(t, out, "x = 1\n")
	assert.Contains(t, out, string(m.OpInsert))
	assert.Contains(t, out, "# inline note")
}

func TestSimpleUI_DisplayCloneFallback(t *testing.T) {
	ui, buf := newCapturedUI()

	result := m.CloneResult{
		Clone:        "x = 1\n",
		Success:      false,
		ErrorMessage: "code too short",
	}

	require.NoError(t, ui.DisplayClone(context.Background(), result))

	out := buf.String()
	assert.Contains(t, out, "fell back")
	assert.Contains(t, out, "code too short")
	assert.Contains(t, out, "x = 1\n")
}

func TestSimpleUI_DisplayPairsRespectsLimit(t *testing.T) {
	ui, buf := newCapturedUI()

	pairs := []m.ClonePair{
		{PathA: "a.py", PathB: "b.py", Label: m.LabelType4},
		{PathA: "a.py", PathB: "c.py", Label: m.LabelType4},
		{PathA: "b.py", PathB: "c.py", Label: m.LabelType4},
	}

	require.NoError(t, ui.DisplayPairs(context.Background(), pairs, 2))

	out := buf.String()
	assert.Contains(t, out, "a.py\tb.py")
	assert.Contains(t, out, "... and 1 more")
	assert.Contains(t, out, "Total pairs: 3")
	assert.NotContains(t, out, "b.py\tc.py")
}

func TestSimpleUI_DisplayPairsZeroLimitShowsAll(t *testing.T) {
	ui, buf := newCapturedUI()

	pairs := []m.ClonePair{
		{PathA: "a.py", PathB: "b.py", Label: m.LabelType4},
	}

	require.NoError(t, ui.DisplayPairs(context.Background(), pairs, 0))

	out := buf.String()
	assert.Contains(t, out, "a.py\tb.py")
	assert.NotContains(t, out, "more")
}

func TestSimpleUI_DisplayStats(t *testing.T) {
	ui, buf := newCapturedUI()

	stats := m.MiningStats{
		NumFiles:               4,
		NumProblems:            2,
		NumQualifyingClusters:  1,
		NumPairs:               3,
		AvgSolutionsPerProblem: 3,
	}

	require.NoError(t, ui.DisplayStats(context.Background(), stats))

	out := buf.String()
	assert.Contains(t, out, "Files scanned")
	assert.Contains(t, out, "3.00")
}

func TestSimpleUI_DisplayBatchSummary(t *testing.T) {
	ui, buf := newCapturedUI()

	require.NoError(t, ui.DisplayBatchSummary(context.Background(), 5, 2))
	assert.Contains(t, buf.String(), "Generated 5 clone(s), 2 fallback(s)")
}

func TestSimpleUI_CancelledContext(t *testing.T) {
	ui, buf := newCapturedUI()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, ui.Start(ctx, "run"))
	assert.Error(t, ui.DisplayClone(ctx, m.CloneResult{}))
	assert.Error(t, ui.DisplayPairs(ctx, nil, 0))
	assert.Error(t, ui.DisplayStats(ctx, m.MiningStats{}))
	assert.Error(t, ui.DisplayBatchSummary(ctx, 0, 0))
	assert.Empty(t, buf.String())
}

func TestNewUI_PicksSimpleForNonTTY(t *testing.T) {
	ui := NewUI(&cobra.Command{}, false)

	_, ok := ui.(*SimpleUI)
	assert.True(t, ok)
}
