package scoring

import (
	"testing"

	"github.com/conceptmap/cmapscore/internal/models"
)

func link(source, target models.Node, typ models.LinkType) models.SimpleLink {
	return models.SimpleLink{Source: source, Target: target, Type: typ}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name    string
		master  models.SimpleLink
		student models.SimpleLink
		want    int
		wantCat models.MatchCategory
	}{
		{
			name:    "exact",
			master:  link("a", "b", models.TypeIf),
			student: link("a", "b", models.TypeIf),
			want:    4,
			wantCat: models.CategoryExact,
		},
		{
			name:    "exact with type case difference",
			master:  link("a", "b", "If"),
			student: link("a", "b", "if"),
			want:    4,
			wantCat: models.CategoryExact,
		},
		{
			name:    "same direction different type",
			master:  link("a", "b", models.TypeIf),
			student: link("a", "b", models.TypeThen),
			want:    3,
			wantCat: models.CategoryNear,
		},
		{
			name:    "reversed same type",
			master:  link("a", "b", models.TypeIf),
			student: link("b", "a", models.TypeIf),
			want:    3,
			wantCat: models.CategoryNear,
		},
		{
			name:    "reversed and different type",
			master:  link("a", "b", models.TypeIf),
			student: link("b", "a", models.TypeThen),
			want:    1,
			wantCat: models.CategoryWeak,
		},
		{
			name:    "one shared endpoint same type",
			master:  link("a", "b", models.TypeIf),
			student: link("a", "c", models.TypeIf),
			want:    2,
			wantCat: models.CategoryPartial,
		},
		{
			name:    "shared endpoint crosswise same type",
			master:  link("a", "b", models.TypeIf),
			student: link("c", "a", models.TypeIf),
			want:    2,
			wantCat: models.CategoryPartial,
		},
		{
			name:    "one shared endpoint different type",
			master:  link("a", "b", models.TypeIf),
			student: link("a", "c", models.TypeThen),
			want:    1,
			wantCat: models.CategoryWeak,
		},
		{
			name:    "disjoint",
			master:  link("a", "b", models.TypeIf),
			student: link("c", "d", models.TypeIf),
			want:    0,
			wantCat: models.CategoryNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, cat := Similarity(tt.master, tt.student)
			if got != tt.want {
				t.Errorf("Similarity() = %d, want %d", got, tt.want)
			}
			if cat != tt.wantCat {
				t.Errorf("Similarity() category = %q, want %q", cat, tt.wantCat)
			}
		})
	}
}

// Endpoint-set comparisons must not depend on argument order: swapping the
// two links never changes the score.
func TestSimilarity_ArgumentOrder(t *testing.T) {
	links := []models.SimpleLink{
		link("a", "b", models.TypeIf),
		link("b", "a", models.TypeIf),
		link("a", "b", models.TypeThen),
		link("a", "c", models.TypeIf),
		link("c", "d", models.TypeBecause),
	}

	for _, x := range links {
		for _, y := range links {
			ab, _ := Similarity(x, y)
			ba, _ := Similarity(y, x)
			if ab != ba {
				t.Errorf("Similarity(%v, %v) = %d but reversed arguments give %d", x, y, ab, ba)
			}
		}
	}
}
