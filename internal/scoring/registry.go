package scoring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/conceptmap/cmapscore/internal/models"
)

// Algorithm is the plugin contract every scoring method implements. New
// algorithms are added by registering another implementation; the engine
// itself never changes.
type Algorithm interface {
	Name() string
	Description() string

	// SupportedOptions declares the options Execute accepts.
	SupportedOptions() map[string]OptionSpec

	// Execute scores a student map against a master map. The inputs are
	// never mutated; every call produces a fresh ScoreResult, so independent
	// runs over the same maps may proceed concurrently.
	Execute(master, student *models.ConceptMap, opts Options) (*models.ScoreResult, error)

	// FormatResults renders a result as human-readable text.
	FormatResults(*models.ScoreResult) string
}

// Registry maps algorithm names to implementations. Registration happens
// once at process start via DefaultRegistry; there is no dynamic
// self-registration.
type Registry struct {
	byName map[string]Algorithm
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Algorithm)}
}

// Register adds an algorithm, replacing any previous entry with the same name.
func (r *Registry) Register(a Algorithm) {
	r.byName[strings.ToLower(a.Name())] = a
}

// Get returns the named algorithm. Names match case-insensitively.
func (r *Registry) Get(name string) (Algorithm, error) {
	a, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown algorithm %q (have: %v)", name, r.Names())
	}
	return a, nil
}

// Names lists registered algorithm names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// All returns the registered algorithms in name order.
func (r *Registry) All() []Algorithm {
	algos := make([]Algorithm, 0, len(r.byName))
	for _, n := range r.Names() {
		algos = append(algos, r.byName[n])
	}
	return algos
}

// DefaultRegistry builds the registry with the three canonical algorithms.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewMcClure())
	r.Register(NewNovak())
	r.Register(NewLEA())
	return r
}
