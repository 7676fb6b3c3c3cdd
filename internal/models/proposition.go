// Package models defines the canonical data types of the scoring engine:
// propositions as authored in a concept map, the simple links derived from
// them, and the result records produced by the matchers.
package models

import (
	"fmt"
	"strings"
)

// Node names a concept. Nodes are opaque identifiers; equality is exact
// value equality, there is no fuzzy label matching.
type Node string

// LinkType labels the relation a proposition asserts. It is an open
// enumeration: unrecognized values are preserved as-is and compared by
// normalized string equality.
type LinkType string

// Recognized link types. Junction and Qualifier are reserved for links
// synthesized by the expansion engine and never appear in source data.
const (
	TypeIf        LinkType = "If"
	TypeThen      LinkType = "Then"
	TypeBecause   LinkType = "Because"
	TypeConflict  LinkType = "Conflict"
	TypeJunction  LinkType = "Junction"
	TypeQualifier LinkType = "Qualifier"
)

// Normalized returns the comparison form of the type: trimmed and lowercased.
func (t LinkType) Normalized() string {
	return strings.ToLower(strings.TrimSpace(string(t)))
}

// Equal reports whether two types compare equal under normalization.
func (t LinkType) Equal(other LinkType) bool {
	return t.Normalized() == other.Normalized()
}

// IsConflict reports whether the type is the reserved Conflict type.
func (t LinkType) IsConflict() bool {
	return t.Normalized() == TypeConflict.Normalized()
}

// Proposition is the raw input unit: one labeled, directed relation with one
// or more antecedent nodes and a single consequent node.
type Proposition struct {
	ID          string   `json:"id"`
	Antecedents []Node   `json:"antecedents"`
	Consequent  Node     `json:"consequent"`
	Type        LinkType `json:"type"`
}

// Validate checks the structural invariants of a proposition: at least one
// antecedent, no duplicate antecedents, and a consequent that is not also an
// antecedent. Violations are reported as ErrMalformedProposition.
func (p Proposition) Validate() error {
	if len(p.Antecedents) == 0 {
		return fmt.Errorf("%w: proposition %q has no antecedents", ErrMalformedProposition, p.ID)
	}
	if p.Consequent == "" {
		return fmt.Errorf("%w: proposition %q has no consequent", ErrMalformedProposition, p.ID)
	}
	seen := make(map[Node]struct{}, len(p.Antecedents))
	for _, a := range p.Antecedents {
		if a == "" {
			return fmt.Errorf("%w: proposition %q has an empty antecedent", ErrMalformedProposition, p.ID)
		}
		if _, dup := seen[a]; dup {
			return fmt.Errorf("%w: proposition %q repeats antecedent %q", ErrMalformedProposition, p.ID, a)
		}
		seen[a] = struct{}{}
	}
	if _, ok := seen[p.Consequent]; ok {
		return fmt.Errorf("%w: proposition %q lists consequent %q as antecedent", ErrMalformedProposition, p.ID, p.Consequent)
	}
	return nil
}

// ConceptMap is an ordered sequence of propositions. Order is preserved from
// the source so that expansion and greedy matching are deterministic.
type ConceptMap struct {
	Name         string        `json:"name,omitempty"`
	Propositions []Proposition `json:"propositions"`
}

// Validate checks every proposition and that the map is non-empty.
func (m *ConceptMap) Validate() error {
	if len(m.Propositions) == 0 {
		return fmt.Errorf("%w: map %q has no propositions", ErrEmptyMap, m.Name)
	}
	for _, p := range m.Propositions {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}
