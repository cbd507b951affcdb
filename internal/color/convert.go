package color

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"bennypowers.dev/vars2css/internal/variables"
	"github.com/mazznoer/csscolorparser"
)

// Encode converts an RGBA color to a CSS color string.
// Opaque colors become "#rrggbb", anything else "rgba(r, g, b, a)" with a
// four-digit alpha. Channels are not clamped.
func Encode(c variables.Color) string {
	r, g, b := channel(c.R), channel(c.G), channel(c.B)

	if c.A != 1 {
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, formatAlpha(c.A))
	}

	return "#" + hexByte(r) + hexByte(g) + hexByte(b)
}

// Parse converts any CSS color string (hex, rgb(), hsl(), named colors, ...)
// to an RGBA color with channels in [0,1]
func Parse(css string) (variables.Color, error) {
	parsed, err := csscolorparser.Parse(strings.TrimSpace(css))
	if err != nil {
		return variables.Color{}, fmt.Errorf("%w: color %q: %v", variables.ErrInvalidValue, css, err)
	}
	return variables.Color{R: parsed.R, G: parsed.G, B: parsed.B, A: parsed.A}, nil
}

// channel scales a [0,1] channel to 0-255, rounding halves up
func channel(v float64) int {
	return int(math.Floor(v*255 + 0.5))
}

// hexByte pads to two characters, so negative channels keep a single digit
func hexByte(v int) string {
	if v < 0 {
		return fmt.Sprintf("-%x", -v)
	}
	return fmt.Sprintf("%02x", v)
}

// formatAlpha writes a with four decimals, rounding the exact binary value
// half away from zero (0.03125 -> "0.0313")
func formatAlpha(a float64) string {
	switch {
	case math.IsNaN(a):
		return "NaN"
	case math.IsInf(a, 1):
		return "Infinity"
	case math.IsInf(a, -1):
		return "-Infinity"
	}

	scaled := new(big.Rat).SetFloat64(math.Abs(a))
	scaled.Mul(scaled, big.NewRat(10000, 1))

	n := new(big.Int).Quo(scaled.Num(), scaled.Denom())
	rest := new(big.Rat).Sub(scaled, new(big.Rat).SetInt(n))
	if rest.Cmp(big.NewRat(1, 2)) >= 0 {
		n.Add(n, big.NewInt(1))
	}

	digits := n.String()
	if len(digits) < 5 {
		digits = strings.Repeat("0", 5-len(digits)) + digits
	}
	out := digits[:len(digits)-4] + "." + digits[len(digits)-4:]
	if a < 0 {
		out = "-" + out
	}
	return out
}
