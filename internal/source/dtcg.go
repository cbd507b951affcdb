package source

import (
	"fmt"
	"strconv"
	"strings"

	asimonimParser "bennypowers.dev/asimonim/parser"
	"bennypowers.dev/vars2css/internal/color"
	"bennypowers.dev/vars2css/internal/log"
	"bennypowers.dev/vars2css/internal/variables"
)

// DTCGModeID is the single mode of collections read from DTCG token files
const DTCGModeID = "value"

// ParseDTCG parses a Design Tokens Community Group token file into a store
// holding one collection named after the file, with a single "Value" mode.
//
// Variable IDs are dotted token paths ("color.primary") and names are
// slash-delimited ("color/primary") so they normalize like design tool names.
// Whole-token references ("{color.base}") become aliases.
func ParseDTCG(data []byte, collection string) (*variables.MemoryStore, error) {
	parser := asimonimParser.NewJSONParser()
	parsed, err := parser.Parse(data, asimonimParser.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse design tokens: %w", err)
	}

	store := variables.NewMemoryStore()
	c := variables.Collection{
		ID:    "dtcg:" + collection,
		Name:  collection,
		Modes: []variables.Mode{{ID: DTCGModeID, Name: "Value"}},
	}

	for _, tok := range parsed {
		path := tok.Path
		if len(path) == 0 {
			path = strings.Split(tok.Name, "-")
		}

		typ, value, err := tokenValue(tok.Type, tok.Value)
		if err != nil {
			log.Warn("Skipping token %s: %v", strings.Join(path, "."), err)
			continue
		}

		v := &variables.Variable{
			ID:           strings.Join(path, "."),
			Name:         strings.Join(path, "/"),
			ResolvedType: typ,
			CollectionID: c.ID,
			ValuesByMode: map[string]variables.Value{DTCGModeID: value},
		}
		if err := store.AddVariable(v); err != nil {
			return nil, err
		}
		c.VariableIDs = append(c.VariableIDs, v.ID)
	}

	if err := store.AddCollection(c); err != nil {
		return nil, err
	}
	return store, nil
}

// tokenValue maps a DTCG $type and $value to a resolved type and value
func tokenValue(tokenType, raw string) (variables.ResolvedType, variables.Value, error) {
	raw = strings.TrimSpace(raw)
	typ := dtcgType(tokenType, raw)

	if ref, ok := wholeReference(raw); ok {
		return typ, variables.Alias{ID: ref}, nil
	}

	switch typ {
	case variables.TypeColor:
		c, err := color.Parse(raw)
		if err != nil {
			return typ, nil, err
		}
		return typ, c, nil

	case variables.TypeFloat:
		n, err := strconv.ParseFloat(strings.TrimSuffix(raw, "px"), 64)
		if err != nil {
			// Non-pixel dimensions (rem, %) are written verbatim
			return variables.TypeString, variables.Text(raw), nil
		}
		return typ, variables.Number(n), nil

	case variables.TypeString:
		return typ, variables.Text(raw), nil
	}

	return typ, variables.Text(raw), nil
}

func dtcgType(tokenType, raw string) variables.ResolvedType {
	switch strings.ToLower(tokenType) {
	case "color":
		return variables.TypeColor
	case "dimension", "number":
		return variables.TypeFloat
	case "fontweight", "fontfamily", "string", "duration", "cubicbezier":
		return variables.TypeString
	case "":
		if _, err := strconv.ParseFloat(raw, 64); err == nil {
			return variables.TypeFloat
		}
		return variables.TypeString
	}
	// composite types (shadow, typography, border, ...) have no single CSS value
	return variables.ResolvedType(strings.ToUpper(tokenType))
}

// wholeReference reports whether value is exactly one "{path}" reference
func wholeReference(value string) (string, bool) {
	if !strings.HasPrefix(value, "{") || !strings.HasSuffix(value, "}") {
		return "", false
	}
	inner := value[1 : len(value)-1]
	if inner == "" || strings.ContainsAny(inner, "{}") {
		return "", false
	}
	return inner, true
}
