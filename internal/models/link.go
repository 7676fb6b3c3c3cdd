package models

import "fmt"

// SimpleLink is a single-source, single-target directed edge. Every matcher
// operates on simple links; they are produced only by the expansion engine
// and never hand-constructed elsewhere.
type SimpleLink struct {
	Source Node     `json:"source"`
	Target Node     `json:"target"`
	Type   LinkType `json:"type"`

	// Synthetic marks links introduced by expansion (junction or qualifier
	// edges) rather than authored in the source map.
	Synthetic bool `json:"synthetic,omitempty"`

	// OriginID is the ID of the proposition the link was derived from.
	OriginID string `json:"origin_id,omitempty"`
}

// Key identifies a link for deduplication: two links with the same source,
// target, and normalized type are considered the same edge.
func (l SimpleLink) Key() string {
	return string(l.Source) + "\x1f" + string(l.Target) + "\x1f" + l.Type.Normalized()
}

func (l SimpleLink) String() string {
	return fmt.Sprintf("%s -[%s]-> %s", l.Source, l.Type, l.Target)
}
