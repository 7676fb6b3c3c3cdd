package cli

import (
	"fmt"
	"time"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/conceptmap/cmapscore/internal/runner"
)

const pollInterval = 100 * time.Millisecond

// Theme holds the color scheme for the progress display.
type Theme struct {
	Status  lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Hint    lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Status:  lipgloss.Color("#5FAFD7"), // light blue
	Success: lipgloss.Color("#00D787"), // green
	Error:   lipgloss.Color("#FF005F"), // red
	Hint:    lipgloss.Color("#6C6C6C"), // dim gray
}

func (t Theme) statusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Status)
}

func (t Theme) completedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success).Bold(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

// tickMsg triggers polling the batch status
type tickMsg time.Time

// progressModel is the bubbletea model for batch progress.
type progressModel struct {
	batch    *runner.Batch
	snap     runner.BatchSnapshot
	progress progress.Model
	theme    Theme
	done     bool
	quitting bool
}

// newProgressModel creates a new progress model.
func newProgressModel(batch *runner.Batch) progressModel {
	prog := progress.New(
		progress.WithDefaultBlend(),
		progress.WithWidth(40),
	)

	return progressModel{
		batch:    batch,
		snap:     batch.Snapshot(),
		progress: prog,
		theme:    defaultTheme,
	}
}

// Init returns the initial command (start polling).
func (m progressModel) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		m.progress.Init(),
	)
}

// Update handles messages and returns the updated model.
func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}

	case tickMsg:
		m.snap = m.batch.Snapshot()
		if m.snap.Done {
			m.done = true
			return m, tea.Quit
		}
		return m, tickCmd()

	case progress.FrameMsg:
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the progress display.
func (m progressModel) View() tea.View {
	return tea.NewView(m.renderContent())
}

func (m progressModel) renderContent() string {
	if m.done || m.quitting {
		return m.finalView()
	}

	var pct float64
	if m.snap.Total > 0 {
		pct = float64(m.snap.Processed) / float64(m.snap.Total)
	}

	status := m.theme.statusStyle().Render("[grading]")
	progressBar := m.progress.ViewAs(pct)
	counts := fmt.Sprintf("%d/%d files", m.snap.Processed, m.snap.Total)

	current := ""
	if m.snap.Current != "" {
		current = m.theme.hintStyle().Render(m.snap.Current)
	}

	return fmt.Sprintf("%s %s %s\n%s\n", status, progressBar, counts, current)
}

// finalView renders the completion message.
func (m progressModel) finalView() string {
	if m.quitting {
		return m.theme.hintStyle().Render("\nGrading continues, results follow when done.\n")
	}

	msg := m.theme.completedStyle().Render(fmt.Sprintf("✓ %d files graded", m.snap.Processed))
	if m.snap.Failed > 0 {
		msg += " " + m.theme.errorStyle().Render(fmt.Sprintf("(%d failed)", m.snap.Failed))
	}
	return "\n" + msg + "\n"
}

// tickCmd schedules the next poll.
func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// showProgress runs the progress display until the batch finishes or the
// user dismisses it.
func showProgress(batch *runner.Batch) error {
	_, err := tea.NewProgram(newProgressModel(batch)).Run()
	return err
}
