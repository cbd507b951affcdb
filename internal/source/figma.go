package source

import (
	"fmt"
	"strings"

	"bennypowers.dev/vars2css/internal/log"
	"bennypowers.dev/vars2css/internal/variables"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// aliasType is the type tag of alias values in Figma exports
const aliasType = "VARIABLE_ALIAS"

// ParseFigma parses a Figma local variables export into a store.
//
// Accepted layouts, as JSON (comments allowed) or YAML:
//
//	{"meta": {"variableCollections": {...}, "variables": {...}}}  // REST API response
//	{"variableCollections": [...], "variables": [...]}            // plugin dumps
//
// Collections keep document order. Both layouts are read through the yaml.v3
// node tree so mapping order survives decoding.
func ParseFigma(data []byte, isJSON bool) (*variables.MemoryStore, error) {
	if isJSON {
		data = jsonc.ToJSON(data)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse variables export: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, fmt.Errorf("variables export is empty")
	}

	doc := root.Content[0]
	if meta := mappingValue(doc, "meta"); meta != nil {
		doc = meta
	}
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("variables export must be an object")
	}

	collectionsNode := mappingValue(doc, "variableCollections")
	variablesNode := mappingValue(doc, "variables")
	if collectionsNode == nil && variablesNode == nil {
		return nil, fmt.Errorf("variables export has neither variableCollections nor variables")
	}

	store := variables.NewMemoryStore()
	// variable ID -> collection ID, for variables that don't name their collection
	owner := make(map[string]string)

	err := eachEntry(collectionsNode, func(key string, node *yaml.Node) error {
		var c variables.Collection
		if err := node.Decode(&c); err != nil {
			return fmt.Errorf("collection %s: %w", key, err)
		}
		if c.ID == "" {
			c.ID = key
		}
		for _, id := range c.VariableIDs {
			owner[id] = c.ID
		}
		return store.AddCollection(c)
	})
	if err != nil {
		return nil, err
	}

	err = eachEntry(variablesNode, func(key string, node *yaml.Node) error {
		v, err := decodeVariable(node)
		if err != nil {
			return fmt.Errorf("variable %s: %w", key, err)
		}
		if v.ID == "" {
			v.ID = key
		}
		if v.CollectionID == "" {
			v.CollectionID = owner[v.ID]
		}
		return store.AddVariable(v)
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

type rawVariable struct {
	variables.Variable `yaml:",inline"`
	ValuesByMode       map[string]yaml.Node `yaml:"valuesByMode"`
}

func decodeVariable(node *yaml.Node) (*variables.Variable, error) {
	var raw rawVariable
	if err := node.Decode(&raw); err != nil {
		return nil, err
	}

	v := raw.Variable
	v.ValuesByMode = make(map[string]variables.Value, len(raw.ValuesByMode))
	for modeID, valueNode := range raw.ValuesByMode {
		value, err := decodeValue(&valueNode)
		if err != nil {
			return nil, fmt.Errorf("mode %s: %w", modeID, err)
		}
		v.ValuesByMode[modeID] = value
	}
	return &v, nil
}

// decodeValue converts one valuesByMode entry to a variables.Value
func decodeValue(node *yaml.Node) (variables.Value, error) {
	switch node.Kind {
	case yaml.MappingNode:
		if typ := mappingValue(node, "type"); typ != nil && typ.Value == aliasType {
			var a variables.Alias
			if err := node.Decode(&a); err != nil {
				return nil, err
			}
			if a.ID == "" {
				return nil, fmt.Errorf("%w: alias without id", variables.ErrInvalidValue)
			}
			return a, nil
		}
		if mappingValue(node, "r") != nil {
			c := variables.Color{A: 1}
			if err := node.Decode(&c); err != nil {
				return nil, err
			}
			return c, nil
		}
		return nil, fmt.Errorf("%w: unrecognised object value at line %d", variables.ErrInvalidValue, node.Line)

	case yaml.ScalarNode:
		switch node.Tag {
		case "!!null":
			return nil, nil
		case "!!bool":
			var b bool
			if err := node.Decode(&b); err != nil {
				return nil, err
			}
			return variables.Bool(b), nil
		case "!!int", "!!float":
			var f float64
			if err := node.Decode(&f); err != nil {
				return nil, err
			}
			return variables.Number(f), nil
		default:
			return variables.Text(node.Value), nil
		}

	case yaml.AliasNode:
		return decodeValue(node.Alias)
	}

	return nil, fmt.Errorf("%w: unsupported value at line %d", variables.ErrInvalidValue, node.Line)
}

// eachEntry calls fn for every entry of a mapping (keyed by its key)
// or a sequence (keyed by index)
func eachEntry(node *yaml.Node, fn func(key string, node *yaml.Node) error) error {
	if node == nil {
		return nil
	}
	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			if err := fn(node.Content[i].Value, node.Content[i+1]); err != nil {
				return err
			}
		}
	case yaml.SequenceNode:
		for i, item := range node.Content {
			if err := fn(fmt.Sprint(i), item); err != nil {
				return err
			}
		}
	default:
		log.Warn("Ignoring %s at line %d: expected an object or array", strings.TrimPrefix(node.Tag, "!!"), node.Line)
	}
	return nil
}

// mappingValue returns the value node for key in a mapping node
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}
