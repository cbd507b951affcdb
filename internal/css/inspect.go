package css

import (
	"fmt"
	"strings"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
)

// Declaration is a custom property declaration found in CSS source
type Declaration struct {
	Name  string
	Value string
	// Line is 0-based
	Line int
}

// Reference is a var() call found in CSS source
type Reference struct {
	Name     string
	Fallback *string
	Line     int
}

// Inspection is everything Inspect found in a stylesheet
type Inspection struct {
	Declarations []Declaration
	References   []Reference
	// HasErrors is set when tree-sitter had to recover from syntax errors
	HasErrors bool
}

// Inspector parses CSS with tree-sitter
type Inspector struct {
	parser *sitter.Parser
}

var inspectorPool = sync.Pool{
	New: func() any {
		return NewInspector()
	},
}

// AcquireInspector takes an inspector from the pool
func AcquireInspector() *Inspector {
	return inspectorPool.Get().(*Inspector)
}

// ReleaseInspector returns an inspector to the pool
func ReleaseInspector(i *Inspector) {
	if i != nil {
		inspectorPool.Put(i)
	}
}

// NewInspector creates a new CSS inspector
func NewInspector() *Inspector {
	parser := sitter.NewParser()
	lang := sitter.NewLanguage(tree_sitter_css.Language())
	if err := parser.SetLanguage(lang); err != nil {
		panic(fmt.Sprintf("css: loading tree-sitter grammar: %v", err))
	}
	return &Inspector{parser: parser}
}

// Close frees the underlying tree-sitter parser
func (i *Inspector) Close() {
	if i.parser != nil {
		i.parser.Close()
		i.parser = nil
	}
}

// Inspect parses source and collects custom property declarations and var() calls
func (i *Inspector) Inspect(source string) (*Inspection, error) {
	src := []byte(source)
	tree := i.parser.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse CSS")
	}
	defer tree.Close()

	root := tree.RootNode()
	result := &Inspection{HasErrors: root.HasError()}
	walk(root, src, result)
	return result, nil
}

func walk(node *sitter.Node, src []byte, result *Inspection) {
	if node == nil {
		return
	}

	switch node.Kind() {
	case "declaration":
		declaration(node, src, result)
	case "call_expression":
		call(node, src, result)
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		walk(node.Child(i), src, result)
	}
}

func text(node *sitter.Node, src []byte) string {
	return string(src[node.StartByte():node.EndByte()])
}

// declaration records custom properties. The value is the source text
// between the colon and the semicolon.
func declaration(node *sitter.Node, src []byte, result *Inspection) {
	var name string
	var start, end uint
	seenColon := false

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch kind := child.Kind(); {
		case kind == "property_name":
			name = text(child, src)
		case kind == ":":
			seenColon = true
			start, end = child.EndByte(), child.EndByte()
		case kind == ";":
		case seenColon:
			end = child.EndByte()
		}
	}

	if !strings.HasPrefix(name, "--") {
		return
	}

	result.Declarations = append(result.Declarations, Declaration{
		Name:  name,
		Value: strings.TrimSpace(string(src[start:end])),
		Line:  int(node.StartPosition().Row),
	})
}

// call records var() calls with their optional fallback
func call(node *sitter.Node, src []byte, result *Inspection) {
	var fn, args *sitter.Node
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "function_name":
			fn = child
		case "arguments":
			args = child
		}
	}
	if fn == nil || args == nil || text(fn, src) != "var" {
		return
	}

	ref := Reference{Line: int(node.StartPosition().Row)}
	argCount := 0
	for i := uint(0); i < args.ChildCount(); i++ {
		child := args.Child(i)
		switch child.Kind() {
		case "(", ")", ",":
			continue
		}
		switch argCount {
		case 0:
			ref.Name = strings.TrimSpace(text(child, src))
		case 1:
			fb := strings.TrimSpace(text(child, src))
			ref.Fallback = &fb
		}
		argCount++
	}

	if ref.Name == "" {
		return
	}
	result.References = append(result.References, ref)
}
