// Package expand converts raw propositions into the simple links the
// matchers operate on. Multi-antecedent propositions are normalized under a
// selectable strategy: a synthetic junction node, qualifier edges off the
// primary antecedent, or rejection.
package expand

import (
	"fmt"
	"sort"
	"strings"

	"github.com/conceptmap/cmapscore/internal/models"
)

// Mode selects the multi-antecedent expansion strategy.
type Mode string

const (
	// ModeNone performs no transformation; any multi-antecedent proposition
	// fails with ErrUnsupportedStructure.
	ModeNone Mode = "none"
	// ModeJunction merges the antecedents of a proposition through one
	// synthetic junction node.
	ModeJunction Mode = "junction"
	// ModeQualifier keeps the first antecedent as the primary relation and
	// marks the remaining ones as qualifier edges.
	ModeQualifier Mode = "qualifier"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeNone, ModeJunction, ModeQualifier:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: unknown expansion mode %q", models.ErrInvalidOption, s)
	}
}

// junctionNode derives the synthetic node for a multi-antecedent
// proposition. The name depends only on the proposition's node content, so
// identical propositions on the master and student side expand to identical
// junction links.
func junctionNode(antecedents []models.Node, consequent models.Node) models.Node {
	ids := make([]string, len(antecedents))
	for i, a := range antecedents {
		ids[i] = string(a)
	}
	sort.Strings(ids)
	return models.Node("t_" + strings.Join(ids, "_") + "_to_" + string(consequent))
}

// Expand converts propositions into simple links under the given mode. The
// call is pure and idempotent: inputs are never mutated, and the same input
// always yields the same links in the same order. Duplicate edges (same
// source, target, and normalized type) are dropped, keeping the first
// occurrence so the result order follows the input order.
func Expand(props []models.Proposition, mode Mode) ([]models.SimpleLink, error) {
	links := make([]models.SimpleLink, 0, len(props))
	seen := make(map[string]struct{}, len(props))

	emit := func(l models.SimpleLink) {
		if _, dup := seen[l.Key()]; dup {
			return
		}
		seen[l.Key()] = struct{}{}
		links = append(links, l)
	}

	for _, p := range props {
		if err := p.Validate(); err != nil {
			return nil, err
		}

		if len(p.Antecedents) == 1 {
			// A single-antecedent proposition is already a simple link,
			// whatever the mode.
			emit(models.SimpleLink{
				Source:   p.Antecedents[0],
				Target:   p.Consequent,
				Type:     p.Type,
				OriginID: p.ID,
			})
			continue
		}

		switch mode {
		case ModeNone:
			return nil, fmt.Errorf("%w: proposition %q has %d antecedents and expansion is disabled",
				models.ErrUnsupportedStructure, p.ID, len(p.Antecedents))

		case ModeJunction:
			j := junctionNode(p.Antecedents, p.Consequent)
			for _, a := range p.Antecedents {
				emit(models.SimpleLink{
					Source:    a,
					Target:    j,
					Type:      models.TypeJunction,
					Synthetic: true,
					OriginID:  p.ID,
				})
			}
			emit(models.SimpleLink{
				Source:   j,
				Target:   p.Consequent,
				Type:     p.Type,
				OriginID: p.ID,
			})

		case ModeQualifier:
			primary := p.Antecedents[0]
			emit(models.SimpleLink{
				Source:   primary,
				Target:   p.Consequent,
				Type:     p.Type,
				OriginID: p.ID,
			})
			for _, a := range p.Antecedents[1:] {
				emit(models.SimpleLink{
					Source:    primary,
					Target:    a,
					Type:      models.TypeQualifier,
					Synthetic: true,
					OriginID:  p.ID,
				})
			}

		default:
			return nil, fmt.Errorf("%w: unknown expansion mode %q", models.ErrInvalidOption, mode)
		}
	}

	return links, nil
}

// ExpandMap expands a whole concept map, enforcing the non-empty invariant.
func ExpandMap(m *models.ConceptMap, mode Mode) ([]models.SimpleLink, error) {
	if m == nil || len(m.Propositions) == 0 {
		name := ""
		if m != nil {
			name = m.Name
		}
		return nil, fmt.Errorf("%w: map %q has no propositions", models.ErrEmptyMap, name)
	}
	return Expand(m.Propositions, mode)
}
