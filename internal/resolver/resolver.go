// Package resolver turns design variable values into CSS values.
package resolver

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"bennypowers.dev/vars2css/internal/color"
	"bennypowers.dev/vars2css/internal/naming"
	"bennypowers.dev/vars2css/internal/variables"
)

// Lookup fetches variables by ID. variables.Store satisfies it.
type Lookup interface {
	Variable(ctx context.Context, id string) (*variables.Variable, error)
}

// AliasMode controls how alias values are written
type AliasMode int

const (
	// AliasReference writes aliases as var() references to the target's property
	AliasReference AliasMode = iota
	// AliasInline substitutes the target's resolved value, following chains
	AliasInline
)

// ParseAliasMode parses "reference" or "inline"
func ParseAliasMode(s string) (AliasMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reference", "ref", "var":
		return AliasReference, nil
	case "inline", "value":
		return AliasInline, nil
	}
	return AliasReference, fmt.Errorf("unknown alias mode %q (expected reference or inline)", s)
}

func (m AliasMode) String() string {
	if m == AliasInline {
		return "inline"
	}
	return "reference"
}

// SkipReason explains why a declaration has no value
type SkipReason int

const (
	// SkipNone means the value resolved
	SkipNone SkipReason = iota
	// SkipMissingValue means the variable has no value for the mode
	SkipMissingValue
	// SkipUnsupportedType means the variable's type has no CSS representation
	SkipUnsupportedType
)

func (r SkipReason) String() string {
	switch r {
	case SkipMissingValue:
		return "missing value"
	case SkipUnsupportedType:
		return "unsupported type"
	}
	return "resolved"
}

// Resolution is the outcome of resolving one variable in one mode.
// Skipped resolutions carry an empty Value.
type Resolution struct {
	Value   string
	Skipped SkipReason
}

// Resolved reports whether the resolution produced a value
func (r Resolution) Resolved() bool {
	return r.Skipped == SkipNone
}

func skipped(reason SkipReason) Resolution {
	return Resolution{Skipped: reason}
}

// Options configures a Resolver
type Options struct {
	// AliasMode selects reference (var()) or inline alias output
	AliasMode AliasMode

	// Prefix is inserted into every generated property name
	Prefix string

	// DefaultModes maps collection IDs to the mode used when an inlined
	// alias target has no value for the requested mode
	DefaultModes map[string]string
}

// Resolver converts variable values to CSS values
type Resolver struct {
	lookup Lookup
	opts   Options
}

// New creates a resolver that looks up alias targets through lookup
func New(lookup Lookup, opts Options) *Resolver {
	return &Resolver{lookup: lookup, opts: opts}
}

// PropertyName returns the CSS custom property name for a variable
func (r *Resolver) PropertyName(v *variables.Variable) string {
	return naming.WithPrefix(v.Name, r.opts.Prefix)
}

// Resolve resolves the value v holds in the given mode
func (r *Resolver) Resolve(ctx context.Context, v *variables.Variable, modeID string) (Resolution, error) {
	value, _ := v.ValueForMode(modeID)
	return r.ResolveValue(ctx, v, modeID, value)
}

// ResolveValue resolves a single mode value of v.
//
// A nil value or an unsupported type yields a skipped Resolution, not an error.
// An alias whose target cannot be looked up yields an UnresolvedReferenceError.
func (r *Resolver) ResolveValue(ctx context.Context, v *variables.Variable, modeID string, value variables.Value) (Resolution, error) {
	if value == nil {
		return skipped(SkipMissingValue), nil
	}
	if !v.ResolvedType.Supported() {
		return skipped(SkipUnsupportedType), nil
	}

	if alias, ok := value.(variables.Alias); ok {
		if r.opts.AliasMode == AliasInline {
			return r.inline(ctx, v, modeID, alias)
		}
		target, err := r.lookup.Variable(ctx, alias.ID)
		if err != nil {
			return Resolution{}, variables.NewUnresolvedReferenceError(v.ID, modeID, alias.ID, err)
		}
		return Resolution{Value: naming.Var(r.PropertyName(target))}, nil
	}

	return literal(v, modeID, value)
}

// literal resolves a non-alias value according to the variable's type
func literal(v *variables.Variable, modeID string, value variables.Value) (Resolution, error) {
	switch v.ResolvedType {
	case variables.TypeColor:
		c, ok := value.(variables.Color)
		if !ok {
			return Resolution{}, mismatch(v, modeID, value)
		}
		return Resolution{Value: color.Encode(c)}, nil

	case variables.TypeFloat:
		n, ok := value.(variables.Number)
		if !ok {
			return Resolution{}, mismatch(v, modeID, value)
		}
		return Resolution{Value: FormatNumber(float64(n)) + "px"}, nil

	default:
		s, ok := value.(variables.Text)
		if !ok {
			return Resolution{}, mismatch(v, modeID, value)
		}
		lower := strings.ToLower(string(s))
		if w, ok := FontWeight(lower); ok {
			return Resolution{Value: strconv.Itoa(w)}, nil
		}
		return Resolution{Value: lower}, nil
	}
}

func mismatch(v *variables.Variable, modeID string, value variables.Value) error {
	return fmt.Errorf("%w: %s variable %s (%s) holds %T in mode %s",
		variables.ErrInvalidValue, v.ResolvedType, v.Name, v.ID, value, modeID)
}

// FormatNumber formats a number the shortest way, without exponents,
// e.g. 12 -> "12", 1.5 -> "1.5"
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		// drops the sign of negative zero
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
