// Package css writes and inspects blocks of CSS custom property declarations.
package css

import "strings"

// DefaultSelector is the selector the declarations are scoped to
const DefaultSelector = ":root"

// Entry is one custom property declaration
type Entry struct {
	Name  string
	Value string
}

// Format controls the layout of generated CSS
type Format struct {
	// Pretty indents declarations and drops the trailing space before each newline.
	// The zero value reproduces the exact layout of the design tool plugin:
	//   ":root { \n--a: 1px; \n--b: 2px; \n}"
	Pretty bool

	// Selector wraps the declarations. Empty means DefaultSelector.
	Selector string
}

func (f Format) selector() string {
	if f.Selector == "" {
		return DefaultSelector
	}
	return f.Selector
}

// Declarations writes one declaration line per entry, in order
func Declarations(entries []Entry, f Format) string {
	var b strings.Builder
	for _, e := range entries {
		writeDeclaration(&b, e, f)
	}
	return b.String()
}

// Block writes the declarations wrapped in a selector block
func Block(entries []Entry, f Format) string {
	var b strings.Builder
	if f.Pretty {
		b.WriteString(f.selector() + " {\n")
	} else {
		b.WriteString(f.selector() + " { \n")
	}
	b.WriteString(Declarations(entries, f))
	if f.Pretty {
		b.WriteString("}\n")
	} else {
		b.WriteString("}")
	}
	return b.String()
}

func writeDeclaration(b *strings.Builder, e Entry, f Format) {
	if f.Pretty {
		b.WriteString("  ")
		b.WriteString(e.Name)
		b.WriteString(": ")
		b.WriteString(e.Value)
		b.WriteString(";\n")
		return
	}
	b.WriteString(e.Name)
	b.WriteString(": ")
	b.WriteString(e.Value)
	b.WriteString("; \n")
}
