// Package parser reads concept maps from tabular CSV data.
//
// The expected format has a header row with at least the fields id, antes,
// conq, and type. The antes cell holds one or more node identifiers
// separated by whitespace; conq holds a single node. Field names come from
// the research data format this tool consumes ("antes"/"conq" for
// antecedents and consequent).
package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/conceptmap/cmapscore/internal/models"
)

// requiredFields must be present in the header and non-empty in every row.
var requiredFields = []string{"id", "antes", "conq"}

// ParseCSV reads a concept map from r. Rows missing a required field are
// skipped with a warning, matching the tolerant behavior graders expect from
// hand-edited spreadsheets; structurally invalid propositions (duplicate
// antecedents, consequent among antecedents) are hard errors.
func ParseCSV(r io.Reader, name string) (*models.ConceptMap, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: %s is empty", models.ErrEmptyMap, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", name, err)
	}

	cols, err := indexHeader(header)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	cmap := &models.ConceptMap{Name: name}
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read %s line %d: %w", name, line, err)
		}

		prop, ok := rowToProposition(record, cols)
		if !ok {
			slog.Warn("skipping row with missing required field", "file", name, "line", line)
			continue
		}
		if err := prop.Validate(); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", name, line, err)
		}
		cmap.Propositions = append(cmap.Propositions, prop)
	}

	if len(cmap.Propositions) == 0 {
		return nil, fmt.Errorf("%w: %s has no usable rows", models.ErrEmptyMap, name)
	}
	return cmap, nil
}

// LoadFile reads a concept map from a CSV file on disk.
func LoadFile(path string) (*models.ConceptMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open concept map: %w", err)
	}
	defer f.Close()
	return ParseCSV(f, path)
}

// indexHeader maps column names to positions. The first cell may carry a
// UTF-8 BOM (spreadsheets commonly export one); it is stripped before
// matching.
func indexHeader(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\uFEFF")
		}
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, f := range requiredFields {
		if _, ok := cols[f]; !ok {
			return nil, fmt.Errorf("missing required column %q", f)
		}
	}
	return cols, nil
}

// rowToProposition builds a proposition from one record, reporting ok=false
// when a required field is absent or blank.
func rowToProposition(record []string, cols map[string]int) (models.Proposition, bool) {
	get := func(field string) string {
		i, ok := cols[field]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	id, antes, conq := get("id"), get("antes"), get("conq")
	if id == "" || antes == "" || conq == "" {
		return models.Proposition{}, false
	}

	// Whitespace-split, order preserved: the first antecedent is the
	// primary one under qualifier expansion.
	fields := strings.Fields(antes)
	antecedents := make([]models.Node, len(fields))
	for i, f := range fields {
		antecedents[i] = models.Node(f)
	}

	return models.Proposition{
		ID:          id,
		Antecedents: antecedents,
		Consequent:  models.Node(conq),
		Type:        models.LinkType(get("type")),
	}, true
}
