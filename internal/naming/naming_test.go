package naming_test

import (
	"testing"

	"bennypowers.dev/vars2css/internal/naming"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"hierarchy and camelCase", "Color/PrimaryBlue", "--color-primary-blue"},
		{"digits stay attached", "Color/Brand/Primary500", "--color-brand-primary500"},
		{"leading camelCase segment", "borderRadius/sm", "--border-radius-sm"},
		{"already kebab", "spacing-large", "--spacing-large"},
		{"uppercase runs are not split", "Font/HTMLSize", "--font-htmlsize"},
		{"non-overlapping boundaries", "aBcD", "--a-bc-d"},
		{"spaces are kept", "Color/Primary Blue", "--color-primary blue"},
		{"empty", "", "--"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, naming.Normalize(tt.input))
		})
	}
}

func TestWithPrefix(t *testing.T) {
	assert.Equal(t, "--ds-color-red", naming.WithPrefix("Color/Red", "ds"))
	assert.Equal(t, "--my-system-color-red", naming.WithPrefix("Color/Red", "mySystem"))
	assert.Equal(t, "--ds-color-red", naming.WithPrefix("Color/Red", "--ds"))
	assert.Equal(t, "--color-red", naming.WithPrefix("Color/Red", ""))
}

func TestVar(t *testing.T) {
	assert.Equal(t, "var(--spacing-large)", naming.Var(naming.Normalize("Spacing/Large")))
}
