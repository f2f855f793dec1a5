package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "cloneforge.dev/pkg/cloneforge/internal/model"
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start announces the run.
func (s *SimpleUI) Start(ctx context.Context, label string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s\n", label)

	return nil
}

// Close finalizes the UI (no-op for SimpleUI).
func (s *SimpleUI) Close(ctx context.Context) {
	_ = ctx.Err()
}

// DisplayClone prints the clone followed by its transformation log.
func (s *SimpleUI) DisplayClone(ctx context.Context, result m.CloneResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if !result.Success {
		s.printf("generation fell back to the original: %s\n", result.ErrorMessage)
		s.printf("%s", result.Clone)

		return nil
	}

	s.printf("%s", result.Clone)
	s.printf("\n%s", renderTransformationTable(result.Applied))

	return nil
}

// DisplayPairs prints up to limit pairs and the total count.
func (s *SimpleUI) DisplayPairs(ctx context.Context, pairs []m.ClonePair, limit int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	shown := len(pairs)
	if limit > 0 && limit < shown {
		shown = limit
	}

	for _, pair := range pairs[:shown] {
		s.printf("%s\t%s\t%s\n", pair.PathA, pair.PathB, pair.Label)
	}

	if shown < len(pairs) {
		s.printf("... and %d more\n", len(pairs)-shown)
	}

	s.printf("Total pairs: %d\n", len(pairs))

	return nil
}

// DisplayStats prints the mining statistics table.
func (s *SimpleUI) DisplayStats(ctx context.Context, stats m.MiningStats) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderStatsTable(stats))

	return nil
}

// DisplayBatchSummary prints batch generation counts.
func (s *SimpleUI) DisplayBatchSummary(ctx context.Context, generated, fallbacks int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("Generated %d clone(s), %d fallback(s)\n", generated, fallbacks)

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func renderTransformationTable(applied []m.TransformationRecord) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"#", "Operator", "Line", "Payload"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT})

	for i, rec := range applied {
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			string(rec.Kind),
			fmt.Sprintf("%d", rec.Line+1),
			rec.Payload,
		})
	}

	table.Render()

	return buf.String()
}

func renderStatsTable(stats m.MiningStats) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Metric", "Value"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	table.Append([]string{"Files scanned", fmt.Sprintf("%d", stats.NumFiles)})
	table.Append([]string{"Distinct problems", fmt.Sprintf("%d", stats.NumProblems)})
	table.Append([]string{"Qualifying clusters", fmt.Sprintf("%d", stats.NumQualifyingClusters)})
	table.Append([]string{"Pairs generated", fmt.Sprintf("%d", stats.NumPairs)})
	table.Append([]string{"Avg solutions/problem", fmt.Sprintf("%.2f", stats.AvgSolutionsPerProblem)})

	table.Render()

	return buf.String()
}
