package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

func metricCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 4, 64)
}

func entryRow(entry Entry) []string {
	if entry.Result == nil {
		return []string{entry.Algorithm, "", "", "", "", "", "", "", entry.Error}
	}
	r := entry.Result
	return []string{
		entry.Algorithm,
		strconv.Itoa(r.TotalScore),
		strconv.Itoa(r.MaxScore),
		strconv.FormatFloat(r.Percentage, 'f', 2, 64),
		metricCell(r.Precision),
		metricCell(r.Recall),
		metricCell(r.FValue),
		metricCell(r.Coverage),
		"",
	}
}

var tableHeader = []string{
	"algorithm", "total_score", "max_score", "percentage",
	"precision", "recall", "f_value", "coverage", "error",
}

func writeCSV(w io.Writer, rep *Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"master", "student"}, tableHeader...)); err != nil {
		return err
	}
	for _, entry := range rep.Entries {
		row := append([]string{rep.Master, rep.Student}, entryRow(entry)...)
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeMarkdown(w io.Writer, rep *Report) error {
	if _, err := fmt.Fprintf(w, "## %s vs %s\n\n", rep.Master, rep.Student); err != nil {
		return err
	}
	if err := markdownRow(w, tableHeader); err != nil {
		return err
	}
	sep := make([]string, len(tableHeader))
	for i := range sep {
		sep[i] = "---"
	}
	if err := markdownRow(w, sep); err != nil {
		return err
	}
	for _, entry := range rep.Entries {
		if err := markdownRow(w, entryRow(entry)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

func markdownRow(w io.Writer, cells []string) error {
	_, err := fmt.Fprintf(w, "| %s |\n", joinCells(cells))
	return err
}

func joinCells(cells []string) string {
	out := ""
	for i, c := range cells {
		if i > 0 {
			out += " | "
		}
		out += c
	}
	return out
}
