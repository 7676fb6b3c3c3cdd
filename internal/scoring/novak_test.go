package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conceptmap/cmapscore/internal/models"
)

func TestNovak_ExactOrNothing(t *testing.T) {
	master := cmap("master",
		models.Proposition{ID: "m1", Antecedents: []models.Node{"a"}, Consequent: "b", Type: models.TypeIf},
	)
	student := cmap("student",
		// Reversed direction earns partial credit under McClure but nothing
		// under Novak's dichotomy.
		models.Proposition{ID: "s1", Antecedents: []models.Node{"b"}, Consequent: "a", Type: models.TypeIf},
	)

	r, err := NewNovak().Execute(master, student, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, r.TotalScore)
	assert.Equal(t, 0, r.MatchedCount)
	assert.Equal(t, 3, r.MaxScore)
}

func TestNovak_StructureBonus(t *testing.T) {
	divergent := cmap("divergent",
		models.Proposition{ID: "p1", Antecedents: []models.Node{"a"}, Consequent: "b", Type: models.TypeIf},
		models.Proposition{ID: "p2", Antecedents: []models.Node{"a"}, Consequent: "c", Type: models.TypeIf},
	)

	r, err := NewNovak().Execute(divergent, divergent, nil)
	require.NoError(t, err)

	// Two exact matches plus one shared-source group on each side.
	assert.Equal(t, 1, r.StructureGroups)
	assert.Equal(t, DefaultStructureBonus, r.StructureScore)
	assert.Equal(t, 3*2+DefaultStructureBonus, r.TotalScore)
	assert.Equal(t, 3*2+DefaultStructureBonus, r.MaxScore)
	assert.InDelta(t, 100.0, r.Percentage, 1e-9)
}

func TestNovak_ConvergentStructure(t *testing.T) {
	convergent := cmap("convergent",
		models.Proposition{ID: "p1", Antecedents: []models.Node{"a"}, Consequent: "c", Type: models.TypeIf},
		models.Proposition{ID: "p2", Antecedents: []models.Node{"b"}, Consequent: "c", Type: models.TypeThen},
	)

	r, err := NewNovak().Execute(convergent, convergent, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, r.StructureGroups)
}

func TestNovak_ConfigurableBonus(t *testing.T) {
	divergent := cmap("divergent",
		models.Proposition{ID: "p1", Antecedents: []models.Node{"a"}, Consequent: "b", Type: models.TypeIf},
		models.Proposition{ID: "p2", Antecedents: []models.Node{"a"}, Consequent: "c", Type: models.TypeIf},
	)

	r, err := NewNovak().Execute(divergent, divergent, Options{OptStructureBonus: 10})
	require.NoError(t, err)
	assert.Equal(t, 10, r.StructureScore)
	assert.Equal(t, 16, r.TotalScore)
}

// A Conflict link present only in the student map contributes exactly
// cross_link_score to the total, independent of the base match outcome.
func TestNovak_CrossLinkScore(t *testing.T) {
	master := cmap("master",
		models.Proposition{ID: "m1", Antecedents: []models.Node{"a"}, Consequent: "b", Type: models.TypeIf},
	)
	student := cmap("student",
		models.Proposition{ID: "s1", Antecedents: []models.Node{"a"}, Consequent: "b", Type: models.TypeIf},
		models.Proposition{ID: "s2", Antecedents: []models.Node{"x"}, Consequent: "y", Type: models.TypeConflict},
	)

	baseline, err := NewNovak().Execute(master, student, Options{OptExpansionMode: "qualifier"})
	require.NoError(t, err)

	r, err := NewNovak().Execute(master, student, Options{
		OptExpansionMode:  "qualifier",
		OptCrossLinkScore: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, baseline.TotalScore+2, r.TotalScore)
	assert.Equal(t, 1, r.ConflictCount)
	assert.Equal(t, 2, r.CrossLinkScore)
	// No conflict links on the master side, so the max is unchanged.
	assert.Equal(t, baseline.MaxScore, r.MaxScore)
}

func TestNovak_MasterConflictRaisesMax(t *testing.T) {
	master := cmap("master",
		models.Proposition{ID: "m1", Antecedents: []models.Node{"a"}, Consequent: "b", Type: models.TypeIf},
		models.Proposition{ID: "m2", Antecedents: []models.Node{"x"}, Consequent: "y", Type: models.TypeConflict},
	)
	student := cmap("student",
		models.Proposition{ID: "s1", Antecedents: []models.Node{"a"}, Consequent: "b", Type: models.TypeIf},
	)

	r, err := NewNovak().Execute(master, student, Options{OptCrossLinkScore: 3})
	require.NoError(t, err)

	// Base 3 for the one regular master link, plus 3 for its conflict link.
	assert.Equal(t, 6, r.MaxScore)
	assert.Equal(t, 3, r.TotalScore)
}

func TestNovak_InvalidCrossLinkScore(t *testing.T) {
	master := cmap("master",
		models.Proposition{ID: "m1", Antecedents: []models.Node{"a"}, Consequent: "b", Type: models.TypeIf},
	)

	_, err := NewNovak().Execute(master, master, Options{OptCrossLinkScore: 5})
	assert.ErrorIs(t, err, models.ErrInvalidOption)

	_, err = NewNovak().Execute(master, master, Options{OptCrossLinkScore: -1})
	assert.ErrorIs(t, err, models.ErrInvalidOption)

	_, err = NewNovak().Execute(master, master, Options{OptCrossLinkScore: "2"})
	assert.ErrorIs(t, err, models.ErrInvalidOption)
}
