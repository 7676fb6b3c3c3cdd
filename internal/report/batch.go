package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/conceptmap/cmapscore/internal/runner"
)

// FileEntry holds one student file's entries within a batch.
type FileEntry struct {
	File    string  `json:"file"`
	Entries []Entry `json:"results,omitempty"`
	Error   string  `json:"error,omitempty"`
}

// BatchReport collects the results of grading a directory against one
// master map.
type BatchReport struct {
	Master string      `json:"master"`
	Files  []FileEntry `json:"files"`
}

// FromBatch converts the runner's batch output into a report.
func FromBatch(master string, results []runner.FileResult) *BatchReport {
	br := &BatchReport{Master: master, Files: make([]FileEntry, 0, len(results))}
	for _, res := range results {
		fe := FileEntry{File: res.File, Entries: FromExecutions(res.Executions)}
		if res.Err != nil {
			fe.Error = res.Err.Error()
			fe.Entries = nil
		}
		br.Files = append(br.Files, fe)
	}
	return br
}

// WriteBatch renders the batch report in the given format.
func WriteBatch(w io.Writer, br *BatchReport, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(br)
	case FormatCSV:
		return writeBatchCSV(w, br)
	case FormatMarkdown:
		return writeBatchMarkdown(w, br)
	case FormatText:
		return writeBatchText(w, br)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeBatchCSV(w io.Writer, br *BatchReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"master", "file"}, tableHeader...)); err != nil {
		return err
	}
	for _, fe := range br.Files {
		if fe.Error != "" {
			row := append([]string{br.Master, fe.File}, entryRow(Entry{Error: fe.Error})...)
			if err := cw.Write(row); err != nil {
				return err
			}
			continue
		}
		for _, entry := range fe.Entries {
			row := append([]string{br.Master, fe.File}, entryRow(entry)...)
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeBatchMarkdown(w io.Writer, br *BatchReport) error {
	if _, err := fmt.Fprintf(w, "## Batch results against %s\n\n", br.Master); err != nil {
		return err
	}
	header := append([]string{"file"}, tableHeader...)
	if err := markdownRow(w, header); err != nil {
		return err
	}
	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	if err := markdownRow(w, sep); err != nil {
		return err
	}
	for _, fe := range br.Files {
		if fe.Error != "" {
			if err := markdownRow(w, append([]string{fe.File}, entryRow(Entry{Error: fe.Error})...)); err != nil {
				return err
			}
			continue
		}
		for _, entry := range fe.Entries {
			if err := markdownRow(w, append([]string{fe.File}, entryRow(entry)...)); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

func writeBatchText(w io.Writer, br *BatchReport) error {
	theme := defaultTheme

	header := theme.headingStyle().Render(fmt.Sprintf("Batch results against %s", br.Master))
	if _, err := fmt.Fprintf(w, "%s\n\n", header); err != nil {
		return err
	}

	failed := 0
	for _, fe := range br.Files {
		if fe.Error != "" {
			failed++
			msg := theme.errorStyle().Render(fmt.Sprintf("✗ %s: %s", fe.File, fe.Error))
			if _, err := fmt.Fprintf(w, "%s\n", msg); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%s\n", theme.headingStyle().Render(fe.File)); err != nil {
			return err
		}
		for _, entry := range fe.Entries {
			line := summaryLine(entry)
			if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
				return err
			}
		}
	}

	footer := theme.hintStyle().Render(fmt.Sprintf("%d files graded, %d failed", len(br.Files), failed))
	_, err := fmt.Fprintf(w, "\n%s\n", footer)
	return err
}

func summaryLine(entry Entry) string {
	if entry.Error != "" {
		return fmt.Sprintf("%-10s error: %s", entry.Algorithm, entry.Error)
	}
	r := entry.Result
	line := fmt.Sprintf("%-10s %d/%d (%.1f%%)", entry.Algorithm, r.TotalScore, r.MaxScore, r.Percentage)
	if r.FValue != nil {
		line += fmt.Sprintf("  f-value %.3f", *r.FValue)
	}
	return line
}
