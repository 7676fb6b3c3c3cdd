package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/conceptmap/cmapscore/internal/scoring"
)

// Theme holds the color scheme for terminal output.
type Theme struct {
	Heading lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Hint    lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Heading: lipgloss.Color("#5FAFD7"), // light blue
	Success: lipgloss.Color("#00D787"), // green
	Error:   lipgloss.Color("#FF005F"), // red
	Hint:    lipgloss.Color("#6C6C6C"), // dim gray
}

func (t Theme) headingStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Heading).Bold(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

func writeText(w io.Writer, rep *Report) error {
	theme := defaultTheme
	registry := scoring.DefaultRegistry()

	header := fmt.Sprintf("%s vs %s", rep.Master, rep.Student)
	if _, err := fmt.Fprintf(w, "%s\n\n", theme.headingStyle().Render(header)); err != nil {
		return err
	}

	for _, entry := range rep.Entries {
		title := theme.headingStyle().Render(fmt.Sprintf("── %s ──", entry.Algorithm))
		meta := theme.hintStyle().Render(fmt.Sprintf("run %s, %.1fms", entry.RunID, entry.ElapsedMS))
		if _, err := fmt.Fprintf(w, "%s %s\n", title, meta); err != nil {
			return err
		}

		if entry.Error != "" {
			msg := theme.errorStyle().Render(fmt.Sprintf("✗ %s", entry.Error))
			if _, err := fmt.Fprintf(w, "%s\n\n", msg); err != nil {
				return err
			}
			continue
		}

		body := entry.Result.Method
		if algo, err := registry.Get(entry.Algorithm); err == nil {
			body = algo.FormatResults(entry.Result)
		}
		if _, err := fmt.Fprintf(w, "%s\n", body); err != nil {
			return err
		}
	}
	return nil
}
