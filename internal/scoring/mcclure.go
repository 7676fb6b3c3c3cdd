package scoring

import (
	"fmt"
	"strings"

	"github.com/conceptmap/cmapscore/internal/expand"
	"github.com/conceptmap/cmapscore/internal/models"
)

// McClure point scale (McClure 1999). Independent of the 0-4 similarity
// scale: only the categorical reasoning is shared.
const (
	McClureExact             = 3
	McClureDirectionMismatch = 2
	McClureLabelMismatch     = 1
	McClureNoMatch           = 0
)

// McClure scores with graded partial credit: exact matches earn 3 points,
// near matches (reversed direction or relabeled) 2 and 1, anything weaker
// nothing. Matching is greedy one-to-one over master links in input order.
type McClure struct{}

// NewMcClure returns the McClure algorithm.
func NewMcClure() *McClure { return &McClure{} }

func (m *McClure) Name() string { return "mcclure" }

func (m *McClure) Description() string {
	return "McClure (1999) concept-map scoring: graded credit for exact, direction-mismatch, and label-mismatch links"
}

func (m *McClure) SupportedOptions() map[string]OptionSpec {
	return map[string]OptionSpec{
		OptExpansionMode: expansionModeSpec(),
	}
}

// mcclurePoints maps a similarity score onto the McClure point scale.
func mcclurePoints(score int) int {
	switch score {
	case ScoreExact:
		return McClureExact
	case ScoreNear:
		return McClureDirectionMismatch
	case ScorePartial:
		return McClureLabelMismatch
	default:
		return McClureNoMatch
	}
}

func (m *McClure) Execute(master, student *models.ConceptMap, opts Options) (*models.ScoreResult, error) {
	specs := m.SupportedOptions()
	if err := ValidateOptions(opts, specs); err != nil {
		return nil, err
	}
	mode := expand.Mode(stringOption(opts, specs, OptExpansionMode))

	masterLinks, err := expand.ExpandMap(master, mode)
	if err != nil {
		return nil, fmt.Errorf("expand master map: %w", err)
	}
	studentLinks, err := expand.ExpandMap(student, mode)
	if err != nil {
		return nil, fmt.Errorf("expand student map: %w", err)
	}

	pairs := greedyMatch(masterLinks, studentLinks, ScorePartial)

	total := 0
	matched := 0
	counts := make(map[models.MatchCategory]int)
	for _, p := range pairs {
		pts := mcclurePoints(p.score)
		total += pts
		counts[p.category]++
		if pts > McClureNoMatch {
			matched++
		}
	}

	maxScore := McClureExact * len(masterLinks)
	percentage := 0.0
	if maxScore > 0 {
		percentage = float64(total) / float64(maxScore) * 100
	}
	precision, recall, fValue := Metrics(matched, len(studentLinks), len(masterLinks))

	return &models.ScoreResult{
		Method:           "McClure",
		TotalScore:       total,
		RawScore:         total,
		MaxScore:         maxScore,
		MaxPossibleScore: maxScore,
		Percentage:       percentage,
		ScoreRate:        percentage / 100,
		Precision:        models.FloatPtr(precision),
		Recall:           models.FloatPtr(recall),
		FValue:           models.FloatPtr(fValue),
		MasterLinks:      len(masterLinks),
		StudentLinks:     len(studentLinks),
		MatchedCount:     matched,
		CategoryCounts:   counts,
		Matches:          buildMatches(masterLinks, studentLinks, pairs, mcclurePoints),
	}, nil
}

func (m *McClure) FormatResults(r *models.ScoreResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "McClure scoring\n")
	fmt.Fprintf(&b, "  master links:  %d\n", r.MasterLinks)
	fmt.Fprintf(&b, "  student links: %d\n\n", r.StudentLinks)
	fmt.Fprintf(&b, "  exact match        (3pt): %d\n", r.CategoryCounts[models.CategoryExact])
	fmt.Fprintf(&b, "  direction mismatch (2pt): %d\n", r.CategoryCounts[models.CategoryNear])
	fmt.Fprintf(&b, "  label mismatch     (1pt): %d\n", r.CategoryCounts[models.CategoryPartial])
	fmt.Fprintf(&b, "  no match           (0pt): %d\n\n", r.CategoryCounts[models.CategoryNone]+r.CategoryCounts[models.CategoryWeak])
	fmt.Fprintf(&b, "  total: %d/%d (%.1f%%)\n", r.TotalScore, r.MaxScore, r.Percentage)
	b.WriteString(formatMetrics(r))
	return b.String()
}

// formatMetrics renders the shared precision/recall/f block.
func formatMetrics(r *models.ScoreResult) string {
	if r.Precision == nil || r.Recall == nil || r.FValue == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "\n  precision: %.3f\n", *r.Precision)
	fmt.Fprintf(&b, "  recall:    %.3f\n", *r.Recall)
	fmt.Fprintf(&b, "  f-value:   %.3f\n", *r.FValue)
	if r.Coverage != nil {
		fmt.Fprintf(&b, "  coverage:  %.3f\n", *r.Coverage)
	}
	return b.String()
}
