package css

import (
	"fmt"

	"bennypowers.dev/vars2css/internal/collections"
)

// ProblemKind classifies lint problems
type ProblemKind string

const (
	// DuplicateProperty is a custom property declared more than once
	DuplicateProperty ProblemKind = "duplicate-property"
	// UndeclaredReference is a var() to a property not declared in the same source
	UndeclaredReference ProblemKind = "undeclared-reference"
	// SyntaxError means the source did not parse cleanly
	SyntaxError ProblemKind = "syntax-error"
)

// Problem is one lint finding
type Problem struct {
	Kind     ProblemKind
	Property string
	// Line is 0-based
	Line int
	// FirstLine is where a duplicate property was first declared
	FirstLine int
}

func (p Problem) String() string {
	switch p.Kind {
	case DuplicateProperty:
		return fmt.Sprintf("line %d: %s is already declared on line %d", p.Line+1, p.Property, p.FirstLine+1)
	case UndeclaredReference:
		return fmt.Sprintf("line %d: var(%s) references an undeclared property", p.Line+1, p.Property)
	}
	return "stylesheet contains syntax errors"
}

// Lint inspects generated CSS and reports duplicate declarations and
// var() references that have no declaration in the same source.
// References with a fallback are not reported.
func Lint(source string) ([]Problem, error) {
	inspector := AcquireInspector()
	defer ReleaseInspector(inspector)

	inspection, err := inspector.Inspect(source)
	if err != nil {
		return nil, err
	}
	return LintInspection(inspection), nil
}

// LintInspection is Lint for an existing inspection
func LintInspection(inspection *Inspection) []Problem {
	var problems []Problem
	if inspection.HasErrors {
		problems = append(problems, Problem{Kind: SyntaxError})
	}

	declared := collections.NewOrderedSet[string]()
	firstLine := make(map[string]int)
	for _, d := range inspection.Declarations {
		if !declared.Add(d.Name) {
			problems = append(problems, Problem{
				Kind:      DuplicateProperty,
				Property:  d.Name,
				Line:      d.Line,
				FirstLine: firstLine[d.Name],
			})
			continue
		}
		firstLine[d.Name] = d.Line
	}

	for _, ref := range inspection.References {
		if ref.Fallback != nil || declared.Has(ref.Name) {
			continue
		}
		problems = append(problems, Problem{
			Kind:     UndeclaredReference,
			Property: ref.Name,
			Line:     ref.Line,
		})
	}

	return problems
}
