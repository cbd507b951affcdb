package resolver

import "strings"

// fontWeights maps CSS font-weight keywords to their numeric values.
// Read only; use FontWeight.
var fontWeights = map[string]int{
	"thin":       100,
	"extralight": 200,
	"light":      300,
	"regular":    400,
	"medium":     500,
	"semibold":   600,
	"bold":       700,
	"extrabold":  800,
	"black":      900,
}

// FontWeight returns the numeric weight for a keyword, ignoring case
func FontWeight(keyword string) (int, bool) {
	w, ok := fontWeights[strings.ToLower(keyword)]
	return w, ok
}
