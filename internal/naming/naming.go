// Package naming turns hierarchical design variable names into CSS custom property names.
package naming

import (
	"regexp"
	"strings"
)

var camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)

// Normalize converts a variable name to a CSS custom property name
// e.g., "Color/PrimaryBlue" -> "--color-primary-blue"
func Normalize(raw string) string {
	return "--" + kebab(raw)
}

// WithPrefix is like Normalize but inserts a prefix after the leading dashes
// e.g., ("Color/Red", "ds") -> "--ds-color-red"
func WithPrefix(raw, prefix string) string {
	prefix = strings.TrimPrefix(kebab(prefix), "--")
	prefix = strings.Trim(prefix, "-")
	if prefix == "" {
		return Normalize(raw)
	}
	return "--" + prefix + "-" + kebab(raw)
}

// Var wraps a custom property name in a var() reference
func Var(property string) string {
	return "var(" + property + ")"
}

func kebab(name string) string {
	name = strings.ReplaceAll(name, "/", "-")
	name = camelBoundary.ReplaceAllString(name, "${1}-${2}")
	return strings.ToLower(name)
}
