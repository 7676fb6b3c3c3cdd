package scoring

import (
	"fmt"
	"strings"

	"github.com/conceptmap/cmapscore/internal/expand"
	"github.com/conceptmap/cmapscore/internal/models"
)

// Novak point scale: exact match or nothing, plus a structural bonus.
const (
	NovakExact   = 3
	NovakNoMatch = 0

	// DefaultStructureBonus is the credit one limiting structure earns.
	DefaultStructureBonus = 4
)

// Novak scores the exact/no-match dichotomy and rewards limiting structures:
// groups of two or more links sharing a source (divergent) or a target
// (convergent). Conflict-typed links are taken out of the base pass and
// scored via the cross_link_score option instead.
type Novak struct{}

// NewNovak returns the Novak algorithm.
func NewNovak() *Novak { return &Novak{} }

func (n *Novak) Name() string { return "novak" }

func (n *Novak) Description() string {
	return "Novak concept-map scoring: exact matches only, with bonus points for limiting structures and configurable conflict-link credit"
}

func (n *Novak) SupportedOptions() map[string]OptionSpec {
	return map[string]OptionSpec{
		OptExpansionMode: expansionModeSpec(),
		OptCrossLinkScore: {
			Type:     "int",
			Default:  0,
			Help:     "points per Conflict-typed link (0-4)",
			Validate: intRange(OptCrossLinkScore, 0, 4),
		},
		OptStructureBonus: {
			Type:     "int",
			Default:  DefaultStructureBonus,
			Help:     "bonus points per limiting structure (shared-source or shared-target group)",
			Validate: intRange(OptStructureBonus, 0, 100),
		},
	}
}

func novakPoints(score int) int {
	if score == ScoreExact {
		return NovakExact
	}
	return NovakNoMatch
}

// countStructureGroups counts the limiting structures in one side's link
// set: every source with two or more outgoing links (divergent group) and
// every target with two or more incoming links (convergent group), each
// qualifying group counted once.
func countStructureGroups(links []models.SimpleLink) int {
	bySource := make(map[models.Node]int)
	byTarget := make(map[models.Node]int)
	for _, l := range links {
		bySource[l.Source]++
		byTarget[l.Target]++
	}
	groups := 0
	for _, c := range bySource {
		if c >= 2 {
			groups++
		}
	}
	for _, c := range byTarget {
		if c >= 2 {
			groups++
		}
	}
	return groups
}

// splitConflicts separates Conflict-typed links from the rest, preserving
// order.
func splitConflicts(links []models.SimpleLink) (regular, conflicts []models.SimpleLink) {
	for _, l := range links {
		if l.Type.IsConflict() {
			conflicts = append(conflicts, l)
		} else {
			regular = append(regular, l)
		}
	}
	return regular, conflicts
}

func (n *Novak) Execute(master, student *models.ConceptMap, opts Options) (*models.ScoreResult, error) {
	specs := n.SupportedOptions()
	if err := ValidateOptions(opts, specs); err != nil {
		return nil, err
	}
	mode := expand.Mode(stringOption(opts, specs, OptExpansionMode))
	crossLink := intOption(opts, specs, OptCrossLinkScore)
	bonus := intOption(opts, specs, OptStructureBonus)

	masterLinks, err := expand.ExpandMap(master, mode)
	if err != nil {
		return nil, fmt.Errorf("expand master map: %w", err)
	}
	studentLinks, err := expand.ExpandMap(student, mode)
	if err != nil {
		return nil, fmt.Errorf("expand student map: %w", err)
	}

	masterRegular, masterConflicts := splitConflicts(masterLinks)
	studentRegular, studentConflicts := splitConflicts(studentLinks)

	// Base pass: exact or nothing.
	pairs := greedyMatch(masterRegular, studentRegular, ScoreExact)

	matched := 0
	counts := make(map[models.MatchCategory]int)
	for _, p := range pairs {
		counts[p.category]++
		if p.score == ScoreExact {
			matched++
		}
	}

	studentGroups := countStructureGroups(studentLinks)
	masterGroups := countStructureGroups(masterLinks)
	structureScore := bonus * studentGroups
	crossLinkScore := crossLink * len(studentConflicts)

	total := NovakExact*matched + structureScore + crossLinkScore
	maxScore := NovakExact*len(masterRegular) + bonus*masterGroups + crossLink*len(masterConflicts)
	percentage := 0.0
	if maxScore > 0 {
		percentage = float64(total) / float64(maxScore) * 100
	}
	precision, recall, fValue := Metrics(matched, len(studentLinks), len(masterLinks))

	matches := buildMatches(masterRegular, studentRegular, pairs, novakPoints)
	for i := range masterConflicts {
		matches = append(matches, models.MatchPair{Master: &masterConflicts[i], Category: models.CategoryNone})
	}
	for i := range studentConflicts {
		matches = append(matches, models.MatchPair{
			Student:  &studentConflicts[i],
			Category: models.CategoryNone,
			Points:   crossLink,
		})
	}

	return &models.ScoreResult{
		Method:           "Novak",
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
		Matches:          matches,
		StructureGroups:  studentGroups,
		StructureScore:   structureScore,
		ConflictCount:    len(studentConflicts),
		CrossLinkScore:   crossLinkScore,
	}, nil
}

func (n *Novak) FormatResults(r *models.ScoreResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Novak scoring\n")
	fmt.Fprintf(&b, "  master links:  %d\n", r.MasterLinks)
	fmt.Fprintf(&b, "  student links: %d\n\n", r.StudentLinks)
	fmt.Fprintf(&b, "  exact match (3pt): %d\n", r.MatchedCount)
	fmt.Fprintf(&b, "  structure groups:  %d (+%d)\n", r.StructureGroups, r.StructureScore)
	if r.ConflictCount > 0 || r.CrossLinkScore > 0 {
		fmt.Fprintf(&b, "  conflict links:    %d (+%d)\n", r.ConflictCount, r.CrossLinkScore)
	}
	fmt.Fprintf(&b, "\n  total: %d/%d (%.1f%%)\n", r.TotalScore, r.MaxScore, r.Percentage)
	b.WriteString(formatMetrics(r))
	return b.String()
}
