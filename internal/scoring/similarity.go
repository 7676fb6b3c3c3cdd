// Package scoring implements the three concept-map scoring algorithms
// (McClure, Novak, LEA) behind a common Algorithm interface, plus the shared
// similarity scorer and metrics they are built on.
package scoring

import "github.com/conceptmap/cmapscore/internal/models"

// Similarity scores for a master/student link pair, most to least similar.
const (
	ScoreExact   = 4 // endpoints, direction, and type all agree
	ScoreNear    = 3 // same endpoints; direction reversed or type differs, not both
	ScorePartial = 2 // exactly one shared endpoint, type agrees
	ScoreWeak    = 1 // one shared endpoint with type mismatch, or reversed with type mismatch
	ScoreNone    = 0 // no shared endpoint
	MaxLinkScore = ScoreExact
)

// Similarity computes the categorical 0-4 match score between two simple
// links. Node equality is exact value equality. When a pair admits several
// interpretations the highest-scoring one wins: full-endpoint agreement is
// checked before partial overlap.
func Similarity(master, student models.SimpleLink) (int, models.MatchCategory) {
	typeEq := master.Type.Equal(student.Type)

	// Both endpoints agree, same direction.
	if master.Source == student.Source && master.Target == student.Target {
		if typeEq {
			return ScoreExact, models.CategoryExact
		}
		return ScoreNear, models.CategoryNear
	}

	// Both endpoints agree, direction reversed. A reversed link with a type
	// mismatch carries two deviations and drops to the weak category.
	if master.Source == student.Target && master.Target == student.Source {
		if typeEq {
			return ScoreNear, models.CategoryNear
		}
		return ScoreWeak, models.CategoryWeak
	}

	if sharedEndpoint(master, student) {
		if typeEq {
			return ScorePartial, models.CategoryPartial
		}
		return ScoreWeak, models.CategoryWeak
	}

	return ScoreNone, models.CategoryNone
}

// sharedEndpoint reports whether exactly one endpoint of the two links
// coincides. Full set equality is handled by the callers above, so any
// overlap seen here is a single shared node.
func sharedEndpoint(a, b models.SimpleLink) bool {
	return a.Source == b.Source || a.Source == b.Target ||
		a.Target == b.Source || a.Target == b.Target
}

// categoryForScore maps a similarity score back to its category. Used where
// only the score survives (assignment matrices).
func categoryForScore(score int) models.MatchCategory {
	switch score {
	case ScoreExact:
		return models.CategoryExact
	case ScoreNear:
		return models.CategoryNear
	case ScorePartial:
		return models.CategoryPartial
	case ScoreWeak:
		return models.CategoryWeak
	default:
		return models.CategoryNone
	}
}
