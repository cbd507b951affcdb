package color_test

import (
	"regexp"
	"testing"

	"bennypowers.dev/vars2css/internal/color"
	"bennypowers.dev/vars2css/internal/variables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	hexPattern  = regexp.MustCompile(`^#[0-9a-f]{6}$`)
	rgbaPattern = regexp.MustCompile(`^rgba\(\d{1,3}, \d{1,3}, \d{1,3}, \d+\.\d{4}\)$`)
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		input    variables.Color
		expected string
	}{
		{"opaque red", variables.Color{R: 1, G: 0, B: 0, A: 1}, "#ff0000"},
		{"opaque white", variables.Color{R: 1, G: 1, B: 1, A: 1}, "#ffffff"},
		{"opaque black is zero padded", variables.Color{R: 0, G: 0, B: 0, A: 1}, "#000000"},
		{"halves round up", variables.Color{R: 0.5, G: 0.5, B: 0.5, A: 1}, "#808080"},
		{"small channel is padded", variables.Color{R: 0.02, G: 0.04, B: 0.06, A: 1}, "#050a0f"},
		{"translucent", variables.Color{R: 1, G: 0.5, B: 0, A: 0.5}, "rgba(255, 128, 0, 0.5000)"},
		{"transparent", variables.Color{R: 0, G: 0, B: 0, A: 0}, "rgba(0, 0, 0, 0.0000)"},
		{"alpha is rounded to four places", variables.Color{R: 0, G: 0, B: 1, A: 0.123456}, "rgba(0, 0, 255, 0.1235)"},
		{"alpha above one is not opaque", variables.Color{R: 0, G: 0, B: 0, A: 1.5}, "rgba(0, 0, 0, 1.5000)"},
		{"alpha tie rounds up", variables.Color{A: 0.03125}, "rgba(0, 0, 0, 0.0313)"},
		{"alpha just below a tie rounds down", variables.Color{A: 0.00004999}, "rgba(0, 0, 0, 0.0000)"},
		{"alpha large values", variables.Color{A: 12.5}, "rgba(0, 0, 0, 12.5000)"},
		{"negative alpha keeps its sign", variables.Color{A: -0.03125}, "rgba(0, 0, 0, -0.0313)"},
		{"negative channel is not padded", variables.Color{R: -0.04, A: 1}, "#-a0000"},
		{"channel above one is written as is", variables.Color{R: 2, G: 0, B: 0, A: 1}, "#1fe0000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, color.Encode(tt.input))
		})
	}
}

func TestEncodeFormats(t *testing.T) {
	steps := []float64{0, 0.1, 0.25, 0.333, 0.5, 0.66, 0.75, 0.999, 1}

	t.Run("opaque colors are lowercase hex", func(t *testing.T) {
		for _, r := range steps {
			for _, g := range steps {
				for _, b := range steps {
					css := color.Encode(variables.Color{R: r, G: g, B: b, A: 1})
					assert.Regexp(t, hexPattern, css)
				}
			}
		}
	})

	t.Run("translucent colors are rgba", func(t *testing.T) {
		for _, r := range steps {
			for _, a := range []float64{0, 0.01, 0.5, 0.9999} {
				css := color.Encode(variables.Color{R: r, G: 1 - r, B: r / 2, A: a})
				assert.Regexp(t, rgbaPattern, css)
			}
		}
	})
}

func TestParse(t *testing.T) {
	t.Run("round trips through Encode", func(t *testing.T) {
		tests := []struct {
			input    string
			expected string
		}{
			{"#FF0000", "#ff0000"},
			{"rebeccapurple", "#663399"},
			{"rgb(0, 128, 255)", "#0080ff"},
			{"rgba(0, 0, 0, 0.5)", "rgba(0, 0, 0, 0.5000)"},
			{"  #abc  ", "#aabbcc"},
		}
		for _, tt := range tests {
			t.Run(tt.input, func(t *testing.T) {
				c, err := color.Parse(tt.input)
				require.NoError(t, err)
				assert.Equal(t, tt.expected, color.Encode(c))
			})
		}
	})

	t.Run("invalid color", func(t *testing.T) {
		_, err := color.Parse("not-a-color")
		require.Error(t, err)
		assert.ErrorIs(t, err, variables.ErrInvalidValue)
	})
}
