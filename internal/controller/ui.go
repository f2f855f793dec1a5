// Package controller provides output adapters for displaying generation
// and mining results.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "cloneforge.dev/pkg/cloneforge/internal/model"
)

// UI displays pipeline progress and results. Implementations can use
// different output methods (simple text, TUI).
type UI interface {
	// Start begins a run display with the given label.
	Start(ctx context.Context, label string) error
	// Close finalizes the run display.
	Close(ctx context.Context)
	// DisplayClone shows a generation result and its transformation log.
	DisplayClone(ctx context.Context, result m.CloneResult) error
	// DisplayPairs shows mined pairs, previewing at most limit rows.
	DisplayPairs(ctx context.Context, pairs []m.ClonePair, limit int) error
	// DisplayStats shows aggregate mining statistics.
	DisplayStats(ctx context.Context, stats m.MiningStats) error
	// DisplayBatchSummary shows batch generation counts.
	DisplayBatchSummary(ctx context.Context, generated, fallbacks int) error
}

// NewUI picks the TUI on interactive terminals and the simple printer
// otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
