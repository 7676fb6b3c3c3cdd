package scoring

import (
	"fmt"
	"strings"

	"github.com/conceptmap/cmapscore/internal/expand"
	"github.com/conceptmap/cmapscore/internal/models"
)

// leaTrueGate is the minimum similarity score counted as a true positive:
// partial-or-better.
const leaTrueGate = ScorePartial

// LEA (Link Evaluation Algorithm) builds the full master x student
// similarity matrix and solves the optimal one-to-one assignment, so its raw
// score is the exact maximum over all pairings rather than a greedy
// approximation.
type LEA struct{}

// NewLEA returns the LEA algorithm.
func NewLEA() *LEA { return &LEA{} }

func (l *LEA) Name() string { return "lea" }

func (l *LEA) Description() string {
	return "LEA link evaluation: optimal one-to-one assignment over the 0-4 similarity matrix, with f-value, recall, precision, and coverage"
}

func (l *LEA) SupportedOptions() map[string]OptionSpec {
	return map[string]OptionSpec{
		OptSimpleScoreOnly: {
			Type:    "bool",
			Default: false,
			Help:    "compute the raw score only, skipping precision/recall/f-value",
		},
	}
}

func (l *LEA) Execute(master, student *models.ConceptMap, opts Options) (*models.ScoreResult, error) {
	specs := l.SupportedOptions()
	if err := ValidateOptions(opts, specs); err != nil {
		return nil, err
	}
	simpleOnly := boolOption(opts, specs, OptSimpleScoreOnly)

	// LEA has no expansion_mode option; it always normalizes hyperedges the
	// default way so every input becomes comparable simple links.
	masterLinks, err := expand.ExpandMap(master, expand.ModeJunction)
	if err != nil {
		return nil, fmt.Errorf("expand master map: %w", err)
	}
	studentLinks, err := expand.ExpandMap(student, expand.ModeJunction)
	if err != nil {
		return nil, fmt.Errorf("expand student map: %w", err)
	}

	m, n := len(masterLinks), len(studentLinks)
	scores := make([][]int, m)
	for i := range scores {
		scores[i] = make([]int, n)
		for j := range scores[i] {
			scores[i][j], _ = Similarity(masterLinks[i], studentLinks[j])
		}
	}

	assignment := optimalAssignment(scores, m, n)

	raw := 0
	matched := 0
	truePositives := 0
	counts := make(map[models.MatchCategory]int)
	studentMatched := make([]bool, n)
	matches := make([]models.MatchPair, 0, m+n)

	for i, j := range assignment {
		score := 0
		if j >= 0 {
			score = scores[i][j]
		}
		if score > 0 {
			matched++
			studentMatched[j] = true
			if score >= leaTrueGate {
				truePositives++
			}
			cat := categoryForScore(score)
			counts[cat]++
			matches = append(matches, models.MatchPair{
				Master:   &masterLinks[i],
				Student:  &studentLinks[j],
				Score:    score,
				Category: cat,
				Points:   score,
			})
		} else {
			counts[models.CategoryNone]++
			matches = append(matches, models.MatchPair{
				Master:   &masterLinks[i],
				Category: models.CategoryNone,
			})
		}
		raw += score
	}
	for j := range studentLinks {
		if !studentMatched[j] {
			matches = append(matches, models.MatchPair{
				Student:  &studentLinks[j],
				Category: models.CategoryNone,
			})
		}
	}

	maxPossible := MaxLinkScore * max(m, n)
	rate := 0.0
	if maxPossible > 0 {
		rate = float64(raw) / float64(maxPossible)
	}

	result := &models.ScoreResult{
		Method:           "LEA",
		TotalScore:       raw,
		RawScore:         raw,
		MaxScore:         maxPossible,
		MaxPossibleScore: maxPossible,
		Percentage:       rate * 100,
		ScoreRate:        rate,
		MasterLinks:      m,
		StudentLinks:     n,
		MatchedCount:     matched,
		CategoryCounts:   counts,
		Matches:          matches,
		SimpleScoreOnly:  simpleOnly,
	}
	if simpleOnly {
		return result, nil
	}

	precision, recall, fValue := Metrics(truePositives, n, m)
	result.Precision = models.FloatPtr(precision)
	result.Recall = models.FloatPtr(recall)
	result.FValue = models.FloatPtr(fValue)
	result.Coverage = models.FloatPtr(float64(matched) / float64(m))
	return result, nil
}

// optimalAssignment solves the maximum-weight assignment over an m x n score
// matrix. The matrix is padded square and converted to costs
// (MaxLinkScore - score) so the Hungarian solver's minimum is the score
// maximum. The returned slice maps each master index to its student index,
// or -1 where the assignment landed on padding.
func optimalAssignment(scores [][]int, m, n int) []int {
	k := max(m, n)
	if k == 0 {
		return nil
	}
	cost := make([][]int, k)
	for i := range cost {
		cost[i] = make([]int, k)
		for j := range cost[i] {
			if i < m && j < n {
				cost[i][j] = MaxLinkScore - scores[i][j]
			} else {
				cost[i][j] = MaxLinkScore
			}
		}
	}

	solved := solveAssignment(cost)
	assignment := make([]int, m)
	for i := 0; i < m; i++ {
		if solved[i] < n {
			assignment[i] = solved[i]
		} else {
			assignment[i] = -1
		}
	}
	return assignment
}

func (l *LEA) FormatResults(r *models.ScoreResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "LEA link evaluation\n")
	fmt.Fprintf(&b, "  master links:  %d\n", r.MasterLinks)
	fmt.Fprintf(&b, "  student links: %d\n\n", r.StudentLinks)
	fmt.Fprintf(&b, "  raw score: %d/%d (%.1f%%)\n", r.RawScore, r.MaxPossibleScore, r.Percentage)
	fmt.Fprintf(&b, "  matched pairs: %d\n", r.MatchedCount)
	if r.SimpleScoreOnly {
		return b.String()
	}
	b.WriteString(formatMetrics(r))
	return b.String()
}
