package scoring

import (
	"fmt"

	"github.com/conceptmap/cmapscore/internal/models"
)

// Option names recognized across the algorithms.
const (
	OptExpansionMode   = "expansion_mode"
	OptCrossLinkScore  = "cross_link_score"
	OptStructureBonus  = "structure_bonus"
	OptSimpleScoreOnly = "simple_score_only"
)

// Options carries per-run option values keyed by option name. Values must
// match the declared type of the algorithm's OptionSpec.
type Options map[string]any

// OptionSpec declares one supported option of an algorithm: its type
// ("string", "int", or "bool"), default value, and help text. Validate, when
// set, constrains the value's domain.
type OptionSpec struct {
	Type     string
	Default  any
	Help     string
	Validate func(v any) error
}

// ValidateOptions checks every supplied option against the declared specs.
// Unknown names, wrong types, and out-of-domain values are reported as
// ErrInvalidOption.
func ValidateOptions(opts Options, specs map[string]OptionSpec) error {
	for name, value := range opts {
		spec, ok := specs[name]
		if !ok {
			return fmt.Errorf("%w: unknown option %q", models.ErrInvalidOption, name)
		}
		switch spec.Type {
		case "string":
			if _, ok := value.(string); !ok {
				return fmt.Errorf("%w: option %q wants a string, got %T", models.ErrInvalidOption, name, value)
			}
		case "int":
			if _, ok := value.(int); !ok {
				return fmt.Errorf("%w: option %q wants an int, got %T", models.ErrInvalidOption, name, value)
			}
		case "bool":
			if _, ok := value.(bool); !ok {
				return fmt.Errorf("%w: option %q wants a bool, got %T", models.ErrInvalidOption, name, value)
			}
		}
		if spec.Validate != nil {
			if err := spec.Validate(value); err != nil {
				return err
			}
		}
	}
	return nil
}

func stringOption(opts Options, specs map[string]OptionSpec, name string) string {
	if v, ok := opts[name].(string); ok {
		return v
	}
	return specs[name].Default.(string)
}

func intOption(opts Options, specs map[string]OptionSpec, name string) int {
	if v, ok := opts[name].(int); ok {
		return v
	}
	return specs[name].Default.(int)
}

func boolOption(opts Options, specs map[string]OptionSpec, name string) bool {
	if v, ok := opts[name].(bool); ok {
		return v
	}
	return specs[name].Default.(bool)
}

// intRange builds a validator for closed integer ranges, used by
// cross_link_score (0..4) and structure_bonus (>= 0).
func intRange(name string, min, max int) func(any) error {
	return func(v any) error {
		n, ok := v.(int)
		if !ok {
			return fmt.Errorf("%w: option %q wants an int, got %T", models.ErrInvalidOption, name, v)
		}
		if n < min || n > max {
			return fmt.Errorf("%w: option %q must be in [%d,%d], got %d", models.ErrInvalidOption, name, min, max, n)
		}
		return nil
	}
}

// expansionModeSpec is shared by McClure and Novak.
func expansionModeSpec() OptionSpec {
	return OptionSpec{
		Type:    "string",
		Default: "junction",
		Help:    "multi-antecedent expansion strategy: junction, qualifier, or none",
		Validate: func(v any) error {
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("%w: option %q wants a string, got %T", models.ErrInvalidOption, OptExpansionMode, v)
			}
			switch s {
			case "junction", "qualifier", "none":
				return nil
			default:
				return fmt.Errorf("%w: unknown expansion mode %q", models.ErrInvalidOption, s)
			}
		},
	}
}
