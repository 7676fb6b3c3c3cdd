package models

// MatchCategory is the discrete similarity class of a master/student link
// pair, ordered from most to least similar.
type MatchCategory string

const (
	// CategoryExact: endpoints, direction, and type all agree (score 4).
	CategoryExact MatchCategory = "exact"
	// CategoryNear: same endpoint set, but the direction is reversed or the
	// type differs, not both (score 3).
	CategoryNear MatchCategory = "near"
	// CategoryPartial: exactly one shared endpoint, type agrees (score 2).
	CategoryPartial MatchCategory = "partial"
	// CategoryWeak: exactly one shared endpoint or reversed with a type
	// mismatch (score 1).
	CategoryWeak MatchCategory = "weak"
	// CategoryNone: no shared endpoint (score 0).
	CategoryNone MatchCategory = "no_match"
)

// MatchPair records a single pairing decision. A nil Student (or Master)
// represents an unmatched link; unmatched links still count in the
// precision/recall denominators.
type MatchPair struct {
	Master   *SimpleLink   `json:"master,omitempty"`
	Student  *SimpleLink   `json:"student,omitempty"`
	Score    int           `json:"score"`
	Category MatchCategory `json:"category"`

	// Points is the algorithm-scale value of the pair (McClure and Novak use
	// their own 0..3 point scale; LEA points equal Score).
	Points int `json:"points"`
}

// ScoreResult is the record one algorithm run produces. It is created once
// per (master, student, algorithm, options) invocation, is immutable after
// creation, and is never shared between concurrent runs.
//
// The JSON field names are a compatibility surface consumed by downstream
// report renderers and must remain stable. total_score/raw_score and
// max_score/max_possible_score are aliases carrying the same values.
type ScoreResult struct {
	Method string `json:"method"`

	TotalScore       int     `json:"total_score"`
	RawScore         int     `json:"raw_score"`
	MaxScore         int     `json:"max_score"`
	MaxPossibleScore int     `json:"max_possible_score"`
	Percentage       float64 `json:"percentage"`
	ScoreRate        float64 `json:"score_rate"`

	// Metrics are nil when not computed (LEA with simple_score_only).
	Precision *float64 `json:"precision,omitempty"`
	Recall    *float64 `json:"recall,omitempty"`
	FValue    *float64 `json:"f_value,omitempty"`

	// Coverage is the fraction of master links with any non-zero-score
	// counterpart; only LEA reports it.
	Coverage *float64 `json:"coverage,omitempty"`

	MasterLinks  int `json:"master_links"`
	StudentLinks int `json:"student_links"`
	MatchedCount int `json:"matched_count"`

	CategoryCounts map[MatchCategory]int `json:"category_counts,omitempty"`
	Matches        []MatchPair           `json:"matches,omitempty"`

	// Novak-specific structure scoring.
	StructureGroups int `json:"structure_groups,omitempty"`
	StructureScore  int `json:"structure_score,omitempty"`
	ConflictCount   int `json:"conflict_count,omitempty"`
	CrossLinkScore  int `json:"cross_link_score,omitempty"`

	// SimpleScoreOnly marks a LEA run that stopped after the raw score.
	SimpleScoreOnly bool `json:"simple_score_only,omitempty"`
}

// FloatPtr is a small helper for the optional metric fields.
func FloatPtr(v float64) *float64 { return &v }
