package expand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conceptmap/cmapscore/internal/models"
)

func prop(id string, antes []models.Node, conq models.Node, typ models.LinkType) models.Proposition {
	return models.Proposition{ID: id, Antecedents: antes, Consequent: conq, Type: typ}
}

func TestExpand_SingleAntecedent(t *testing.T) {
	props := []models.Proposition{
		prop("p1", []models.Node{"a"}, "b", models.TypeIf),
	}

	for _, mode := range []Mode{ModeNone, ModeJunction, ModeQualifier} {
		t.Run(string(mode), func(t *testing.T) {
			links, err := Expand(props, mode)
			require.NoError(t, err)
			require.Len(t, links, 1)
			assert.Equal(t, models.Node("a"), links[0].Source)
			assert.Equal(t, models.Node("b"), links[0].Target)
			assert.Equal(t, models.TypeIf, links[0].Type)
			assert.False(t, links[0].Synthetic)
			assert.Equal(t, "p1", links[0].OriginID)
		})
	}
}

func TestExpand_JunctionMode(t *testing.T) {
	props := []models.Proposition{
		prop("p1", []models.Node{"0", "1"}, "2", models.TypeIf),
	}

	links, err := Expand(props, ModeJunction)
	require.NoError(t, err)
	require.Len(t, links, 3)

	j := models.Node("t_0_1_to_2")

	assert.Equal(t, models.SimpleLink{Source: "0", Target: j, Type: models.TypeJunction, Synthetic: true, OriginID: "p1"}, links[0])
	assert.Equal(t, models.SimpleLink{Source: "1", Target: j, Type: models.TypeJunction, Synthetic: true, OriginID: "p1"}, links[1])
	assert.Equal(t, models.SimpleLink{Source: j, Target: "2", Type: models.TypeIf, OriginID: "p1"}, links[2])
}

func TestExpand_JunctionNodeIgnoresAntecedentOrder(t *testing.T) {
	a, err := Expand([]models.Proposition{prop("p1", []models.Node{"x", "y"}, "z", models.TypeThen)}, ModeJunction)
	require.NoError(t, err)
	b, err := Expand([]models.Proposition{prop("p2", []models.Node{"y", "x"}, "z", models.TypeThen)}, ModeJunction)
	require.NoError(t, err)

	// Same junction node either way, so both sides of a comparison expand
	// to the same edges.
	assert.Equal(t, a[2].Source, b[2].Source)
}

func TestExpand_QualifierMode(t *testing.T) {
	props := []models.Proposition{
		prop("p1", []models.Node{"a1", "a2", "a3"}, "c", models.TypeBecause),
	}

	links, err := Expand(props, ModeQualifier)
	require.NoError(t, err)
	require.Len(t, links, 3)

	assert.Equal(t, models.SimpleLink{Source: "a1", Target: "c", Type: models.TypeBecause, OriginID: "p1"}, links[0])
	assert.Equal(t, models.SimpleLink{Source: "a1", Target: "a2", Type: models.TypeQualifier, Synthetic: true, OriginID: "p1"}, links[1])
	assert.Equal(t, models.SimpleLink{Source: "a1", Target: "a3", Type: models.TypeQualifier, Synthetic: true, OriginID: "p1"}, links[2])
}

func TestExpand_NoneModeRejectsMultiAntecedent(t *testing.T) {
	props := []models.Proposition{
		prop("p1", []models.Node{"a", "b"}, "c", models.TypeIf),
	}

	_, err := Expand(props, ModeNone)
	assert.ErrorIs(t, err, models.ErrUnsupportedStructure)
}

func TestExpand_MalformedProposition(t *testing.T) {
	props := []models.Proposition{
		prop("p1", nil, "c", models.TypeIf),
	}

	_, err := Expand(props, ModeJunction)
	assert.ErrorIs(t, err, models.ErrMalformedProposition)
}

func TestExpand_Deduplicates(t *testing.T) {
	props := []models.Proposition{
		prop("p1", []models.Node{"a"}, "b", "If"),
		prop("p2", []models.Node{"a"}, "b", "if"),
		prop("p3", []models.Node{"a"}, "b", models.TypeThen),
	}

	links, err := Expand(props, ModeJunction)
	require.NoError(t, err)
	require.Len(t, links, 2)
	// First occurrence wins.
	assert.Equal(t, "p1", links[0].OriginID)
	assert.Equal(t, "p3", links[1].OriginID)
}

func TestExpand_Deterministic(t *testing.T) {
	props := []models.Proposition{
		prop("p1", []models.Node{"a", "b"}, "c", models.TypeIf),
		prop("p2", []models.Node{"c"}, "d", models.TypeThen),
		prop("p3", []models.Node{"d", "e", "f"}, "g", models.TypeBecause),
	}

	first, err := Expand(props, ModeJunction)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Expand(props, ModeJunction)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

// Feeding an expansion's output back through as single-antecedent
// propositions is a no-op for every mode.
func TestExpand_Idempotent(t *testing.T) {
	props := []models.Proposition{
		prop("p1", []models.Node{"a", "b"}, "c", models.TypeIf),
		prop("p2", []models.Node{"c"}, "d", models.TypeThen),
	}

	links, err := Expand(props, ModeJunction)
	require.NoError(t, err)

	asProps := make([]models.Proposition, len(links))
	for i, l := range links {
		asProps[i] = prop(l.OriginID, []models.Node{l.Source}, l.Target, l.Type)
	}

	for _, mode := range []Mode{ModeNone, ModeJunction, ModeQualifier} {
		again, err := Expand(asProps, mode)
		require.NoError(t, err)
		require.Len(t, again, len(links))
		for i := range links {
			assert.Equal(t, links[i].Source, again[i].Source, "mode %s link %d", mode, i)
			assert.Equal(t, links[i].Target, again[i].Target, "mode %s link %d", mode, i)
			assert.Equal(t, links[i].Type, again[i].Type, "mode %s link %d", mode, i)
		}
	}
}

func TestExpand_DoesNotMutateInput(t *testing.T) {
	antes := []models.Node{"y", "x"}
	props := []models.Proposition{prop("p1", antes, "z", models.TypeIf)}

	_, err := Expand(props, ModeJunction)
	require.NoError(t, err)
	assert.Equal(t, []models.Node{"y", "x"}, antes)
}

func TestExpandMap_Empty(t *testing.T) {
	_, err := ExpandMap(&models.ConceptMap{Name: "empty"}, ModeJunction)
	assert.ErrorIs(t, err, models.ErrEmptyMap)

	_, err = ExpandMap(nil, ModeJunction)
	assert.ErrorIs(t, err, models.ErrEmptyMap)
}

func TestParseMode(t *testing.T) {
	for _, valid := range []string{"none", "junction", "qualifier"} {
		mode, err := ParseMode(valid)
		require.NoError(t, err)
		assert.Equal(t, Mode(valid), mode)
	}

	_, err := ParseMode("bogus")
	assert.ErrorIs(t, err, models.ErrInvalidOption)
}
