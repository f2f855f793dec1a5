package controller

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	m "cloneforge.dev/pkg/cloneforge/internal/model"
)

var (
	labelStyle   = lipgloss.NewStyle().Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// TUI implements UI with a Bubble Tea spinner while a run is in flight
// and lipgloss-styled output once it completes.
type TUI struct {
	cmd     *cobra.Command
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI writing to the command's output.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{cmd: cmd}
}

// Start launches the spinner display.
func (t *TUI) Start(ctx context.Context, label string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	model := newSpinnerModel(label)
	t.program = tea.NewProgram(model, tea.WithOutput(t.cmd.OutOrStdout()))
	t.done = make(chan struct{})

	go func() {
		defer close(t.done)

		_, _ = t.program.Run()
	}()

	return nil
}

// Close stops the spinner and waits for the program to unwind.
func (t *TUI) Close(ctx context.Context) {
	if t.program == nil {
		return
	}

	t.program.Send(runDoneMsg{})

	select {
	case <-t.done:
	case <-ctx.Done():
	}

	t.program = nil
}

// DisplayClone shows the clone and a styled transformation log.
func (t *TUI) DisplayClone(ctx context.Context, result m.CloneResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if !result.Success {
		t.printf("%s %s\n", warnStyle.Render("fallback:"), result.ErrorMessage)
		t.printf("%s", result.Clone)

		return nil
	}

	t.printf("%s", result.Clone)
	t.printf("\n%s", renderTransformationTable(result.Applied))

	return nil
}

// DisplayPairs shows mined pairs with a styled total.
func (t *TUI) DisplayPairs(ctx context.Context, pairs []m.ClonePair, limit int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	shown := len(pairs)
	if limit > 0 && limit < shown {
		shown = limit
	}

	for _, pair := range pairs[:shown] {
		t.printf("%s\t%s\t%s\n", pair.PathA, pair.PathB, subtleStyle.Render(pair.Label))
	}

	if shown < len(pairs) {
		t.printf("%s\n", subtleStyle.Render(fmt.Sprintf("... and %d more", len(pairs)-shown)))
	}

	t.printf("%s %s\n", labelStyle.Render("Total pairs:"), successStyle.Render(fmt.Sprintf("%d", len(pairs))))

	return nil
}

// DisplayStats shows the mining statistics table.
func (t *TUI) DisplayStats(ctx context.Context, stats m.MiningStats) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.printf("\n%s", renderStatsTable(stats))

	return nil
}

// DisplayBatchSummary shows batch generation counts.
func (t *TUI) DisplayBatchSummary(ctx context.Context, generated, fallbacks int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.printf("%s %s, %s\n",
		labelStyle.Render("Batch complete:"),
		successStyle.Render(fmt.Sprintf("%d generated", generated)),
		warnStyle.Render(fmt.Sprintf("%d fallbacks", fallbacks)),
	)

	return nil
}

func (t *TUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(t.cmd.OutOrStdout(), format, args...)
}

// runDoneMsg tells the spinner model the run has finished.
type runDoneMsg struct{}

type spinnerModel struct {
	spinner spinner.Model
	label   string
}

func newSpinnerModel(label string) spinnerModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return spinnerModel{spinner: sp, label: label}
}

func (s spinnerModel) Init() tea.Cmd {
	return s.spinner.Tick
}

func (s spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case runDoneMsg:
		return s, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return s, tea.Quit
		}

		return s, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)

		return s, cmd
	}

	return s, nil
}

func (s spinnerModel) View() string {
	return fmt.Sprintf("%s %s\n", s.spinner.View(), labelStyle.Render(s.label))
}
