// Package report renders scoring results as terminal text, JSON, Markdown,
// or CSV.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/conceptmap/cmapscore/internal/models"
	"github.com/conceptmap/cmapscore/internal/runner"
)

// Format selects an output renderer.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
)

// ParseFormat validates a format name from a flag or config value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatMarkdown, FormatCSV:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json, markdown or csv)", s)
	}
}

// Entry is one algorithm's outcome for a map pair. Exactly one of Result
// and Error is populated.
type Entry struct {
	Algorithm string              `json:"algorithm"`
	RunID     string              `json:"run_id"`
	ElapsedMS float64             `json:"elapsed_ms"`
	Result    *models.ScoreResult `json:"result,omitempty"`
	Error     string              `json:"error,omitempty"`
}

// Report collects the entries for one master/student pair.
type Report struct {
	Master  string  `json:"master"`
	Student string  `json:"student"`
	Entries []Entry `json:"results"`
}

// FromExecutions converts runner output into report entries, preserving
// request order.
func FromExecutions(execs []runner.Execution) []Entry {
	entries := make([]Entry, 0, len(execs))
	for _, e := range execs {
		entry := Entry{
			Algorithm: e.Algorithm,
			RunID:     e.RunID,
			ElapsedMS: float64(e.Elapsed.Microseconds()) / 1000,
			Result:    e.Result,
		}
		if e.Err != nil {
			entry.Error = e.Err.Error()
		}
		entries = append(entries, entry)
	}
	return entries
}

// Write renders the report in the given format.
func Write(w io.Writer, rep *Report, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, rep)
	case FormatMarkdown:
		return writeMarkdown(w, rep)
	case FormatCSV:
		return writeCSV(w, rep)
	case FormatText:
		return writeText(w, rep)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeJSON(w io.Writer, rep *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
