package variables

import "context"

// ResolvedType is the value type a design variable resolves to
type ResolvedType string

const (
	// TypeColor is an RGBA color
	TypeColor ResolvedType = "COLOR"
	// TypeFloat is a plain number
	TypeFloat ResolvedType = "FLOAT"
	// TypeString is free text
	TypeString ResolvedType = "STRING"
	// TypeBoolean is a boolean flag. It has no CSS representation.
	TypeBoolean ResolvedType = "BOOLEAN"
)

// Supported reports whether values of this type can be written as CSS
func (t ResolvedType) Supported() bool {
	switch t {
	case TypeColor, TypeFloat, TypeString:
		return true
	}
	return false
}

// Variable is a named design token with one value per mode
type Variable struct {
	// ID is the opaque identifier assigned by the document
	ID string `json:"id" yaml:"id"`

	// Name is the hierarchical, slash-delimited name (e.g. "Color/PrimaryBlue")
	Name string `json:"name" yaml:"name"`

	// ResolvedType is the type every mode value resolves to
	ResolvedType ResolvedType `json:"resolvedType" yaml:"resolvedType"`

	// Description is optional documentation
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// CollectionID is the collection this variable belongs to
	CollectionID string `json:"variableCollectionId,omitempty" yaml:"variableCollectionId,omitempty"`

	// ValuesByMode maps mode IDs to values
	ValuesByMode map[string]Value `json:"-" yaml:"-"`
}

// ValueForMode returns the value bound to the given mode, if any
func (v *Variable) ValueForMode(modeID string) (Value, bool) {
	if v == nil || v.ValuesByMode == nil {
		return nil, false
	}
	val, ok := v.ValuesByMode[modeID]
	if !ok || val == nil {
		return nil, false
	}
	return val, true
}

// Value is a value bound to a variable under one mode.
// It is one of Color, Number, Text, Bool or Alias.
type Value interface {
	isValue()
}

// Color is an RGBA color with channels in [0,1]
type Color struct {
	R float64 `json:"r" yaml:"r"`
	G float64 `json:"g" yaml:"g"`
	B float64 `json:"b" yaml:"b"`
	A float64 `json:"a" yaml:"a"`
}

// Number is a numeric value
type Number float64

// Text is a string value
type Text string

// Bool is a boolean value
type Bool bool

// Alias references another variable by ID
type Alias struct {
	ID string `json:"id" yaml:"id"`
}

func (Color) isValue()  {}
func (Number) isValue() {}
func (Text) isValue()   {}
func (Bool) isValue()   {}
func (Alias) isValue()  {}

// Mode is a named variant axis within a collection (e.g. light/dark)
type Mode struct {
	ID   string `json:"modeId" yaml:"modeId"`
	Name string `json:"name" yaml:"name"`
}

// Collection groups modes and the variables they apply to
type Collection struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Modes       []Mode   `json:"modes" yaml:"modes"`
	VariableIDs []string `json:"variableIds" yaml:"variableIds"`

	// DefaultModeID is the mode used when no other mode applies.
	// Empty means the first mode.
	DefaultModeID string `json:"defaultModeId,omitempty" yaml:"defaultModeId,omitempty"`
}

// DefaultMode returns the collection's default mode
func (c *Collection) DefaultMode() (Mode, bool) {
	if len(c.Modes) == 0 {
		return Mode{}, false
	}
	if c.DefaultModeID != "" {
		for _, m := range c.Modes {
			if m.ID == c.DefaultModeID {
				return m, true
			}
		}
	}
	return c.Modes[0], true
}

// Store is the document variable store the exporter reads from.
// Lookups may block, so every method takes a context.
type Store interface {
	// Collections returns every collection in document order
	Collections(ctx context.Context) ([]Collection, error)

	// Variable returns the variable with the given ID.
	// Returns an error wrapping ErrVariableNotFound when it does not exist.
	Variable(ctx context.Context, id string) (*Variable, error)
}
