package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conceptmap/cmapscore/internal/models"
)

func cmap(name string, props ...models.Proposition) *models.ConceptMap {
	return &models.ConceptMap{Name: name, Propositions: props}
}

// A multi-antecedent proposition copied verbatim into the student map must
// come back as a perfect score: both sides expand to the same two junction
// links plus the original relation.
func TestMcClure_IdenticalMultiAntecedent(t *testing.T) {
	master := cmap("master",
		models.Proposition{ID: "m1", Antecedents: []models.Node{"0", "1"}, Consequent: "2", Type: models.TypeIf},
	)
	student := cmap("student",
		models.Proposition{ID: "s1", Antecedents: []models.Node{"0", "1"}, Consequent: "2", Type: models.TypeIf},
	)

	r, err := NewMcClure().Execute(master, student, Options{OptExpansionMode: "junction"})
	require.NoError(t, err)

	assert.Equal(t, 9, r.TotalScore)
	assert.Equal(t, 9, r.MaxScore)
	assert.InDelta(t, 100.0, r.Percentage, 1e-9)
	assert.Equal(t, 3, r.CategoryCounts[models.CategoryExact])
	assert.Equal(t, 3, r.MatchedCount)
	require.NotNil(t, r.FValue)
	assert.InDelta(t, 1.0, *r.FValue, 1e-9)
}

func TestMcClure_GradedCredit(t *testing.T) {
	master := cmap("master",
		models.Proposition{ID: "m1", Antecedents: []models.Node{"a"}, Consequent: "b", Type: models.TypeIf},
		models.Proposition{ID: "m2", Antecedents: []models.Node{"c"}, Consequent: "d", Type: models.TypeThen},
		models.Proposition{ID: "m3", Antecedents: []models.Node{"e"}, Consequent: "f", Type: models.TypeBecause},
	)
	student := cmap("student",
		// exact: 3 points
		models.Proposition{ID: "s1", Antecedents: []models.Node{"a"}, Consequent: "b", Type: models.TypeIf},
		// reversed direction: 2 points
		models.Proposition{ID: "s2", Antecedents: []models.Node{"d"}, Consequent: "c", Type: models.TypeThen},
		// one shared endpoint, same type: 1 point
		models.Proposition{ID: "s3", Antecedents: []models.Node{"e"}, Consequent: "x", Type: models.TypeBecause},
	)

	r, err := NewMcClure().Execute(master, student, nil)
	require.NoError(t, err)

	assert.Equal(t, 6, r.TotalScore)
	assert.Equal(t, 9, r.MaxScore)
	assert.Equal(t, 1, r.CategoryCounts[models.CategoryExact])
	assert.Equal(t, 1, r.CategoryCounts[models.CategoryNear])
	assert.Equal(t, 1, r.CategoryCounts[models.CategoryPartial])
	assert.Equal(t, 3, r.MatchedCount)
}

// A consumed student link is unavailable to later master links.
func TestMcClure_GreedyConsumption(t *testing.T) {
	master := cmap("master",
		models.Proposition{ID: "m1", Antecedents: []models.Node{"a"}, Consequent: "b", Type: models.TypeIf},
		models.Proposition{ID: "m2", Antecedents: []models.Node{"a"}, Consequent: "b", Type: models.TypeThen},
	)
	student := cmap("student",
		models.Proposition{ID: "s1", Antecedents: []models.Node{"a"}, Consequent: "b", Type: models.TypeIf},
	)

	r, err := NewMcClure().Execute(master, student, nil)
	require.NoError(t, err)

	// m1 takes the exact match; m2 is left with nothing above the gate.
	assert.Equal(t, 3, r.TotalScore)
	assert.Equal(t, 1, r.MatchedCount)
	assert.Equal(t, 1, r.CategoryCounts[models.CategoryExact])
}

// Ties between equally-scoring student links go to the first-seen one.
func TestMcClure_TieBreakFirstSeen(t *testing.T) {
	master := cmap("master",
		models.Proposition{ID: "m1", Antecedents: []models.Node{"a"}, Consequent: "b", Type: models.TypeIf},
	)
	student := cmap("student",
		models.Proposition{ID: "s1", Antecedents: []models.Node{"b"}, Consequent: "a", Type: models.TypeIf},
		models.Proposition{ID: "s2", Antecedents: []models.Node{"a"}, Consequent: "b", Type: models.TypeThen},
	)

	r, err := NewMcClure().Execute(master, student, nil)
	require.NoError(t, err)

	require.NotEmpty(t, r.Matches)
	first := r.Matches[0]
	require.NotNil(t, first.Student)
	assert.Equal(t, "s1", first.Student.OriginID)
	assert.Equal(t, 2, first.Points)
}

func TestMcClure_NoneModeRejectsHyperedges(t *testing.T) {
	master := cmap("master",
		models.Proposition{ID: "m1", Antecedents: []models.Node{"a", "b"}, Consequent: "c", Type: models.TypeIf},
	)
	student := cmap("student",
		models.Proposition{ID: "s1", Antecedents: []models.Node{"a"}, Consequent: "c", Type: models.TypeIf},
	)

	_, err := NewMcClure().Execute(master, student, Options{OptExpansionMode: "none"})
	assert.ErrorIs(t, err, models.ErrUnsupportedStructure)
}

func TestMcClure_EmptyMap(t *testing.T) {
	master := cmap("master",
		models.Proposition{ID: "m1", Antecedents: []models.Node{"a"}, Consequent: "b", Type: models.TypeIf},
	)

	_, err := NewMcClure().Execute(master, cmap("student"), nil)
	assert.ErrorIs(t, err, models.ErrEmptyMap)

	_, err = NewMcClure().Execute(cmap("master"), master, nil)
	assert.ErrorIs(t, err, models.ErrEmptyMap)
}

func TestMcClure_InvalidOptions(t *testing.T) {
	master := cmap("master",
		models.Proposition{ID: "m1", Antecedents: []models.Node{"a"}, Consequent: "b", Type: models.TypeIf},
	)

	_, err := NewMcClure().Execute(master, master, Options{OptExpansionMode: "bogus"})
	assert.ErrorIs(t, err, models.ErrInvalidOption)

	_, err = NewMcClure().Execute(master, master, Options{"unknown_option": 1})
	assert.ErrorIs(t, err, models.ErrInvalidOption)

	_, err = NewMcClure().Execute(master, master, Options{OptCrossLinkScore: 2})
	assert.ErrorIs(t, err, models.ErrInvalidOption, "cross_link_score is not a McClure option")
}
