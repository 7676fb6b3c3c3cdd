package models

import "errors"

// Sentinel errors for data validation. All are recoverable at the boundary:
// they fail the single requested computation, never the process. Check with
// errors.Is().
var (
	// ErrMalformedProposition indicates a proposition with a missing
	// antecedent or consequent, or a duplicated antecedent.
	ErrMalformedProposition = errors.New("malformed proposition")

	// ErrUnsupportedStructure indicates a multi-antecedent proposition
	// encountered under an expansion mode that requires simple links.
	ErrUnsupportedStructure = errors.New("unsupported structure")

	// ErrEmptyMap indicates a concept map with zero propositions; recall and
	// precision are undefined, so scoring fails explicitly instead of
	// silently returning zeros.
	ErrEmptyMap = errors.New("empty concept map")

	// ErrInvalidOption indicates an algorithm option outside its declared
	// domain, or an option the algorithm does not recognize.
	ErrInvalidOption = errors.New("invalid option")
)
