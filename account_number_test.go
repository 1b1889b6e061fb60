package bankauth_test

import (
	"strings"
	"testing"

	bankauth "github.com/pbanach/go-bank-auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	format := bankauth.DefaultAccountNumberFormat()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "canonical input returned unchanged",
			input:    "PL10 9010 1400 0007 1219 8128",
			expected: "PL10 9010 1400 0007 1219 8128",
		},
		{
			name:     "bare digits get prefixed and grouped",
			input:    "1090101400000712198128",
			expected: "PL10 9010 1400 0007 1219 8128",
		},
		{
			name:     "spaced bare digits get prefixed and regrouped",
			input:    "10 9010 1400 0007 1219 8128",
			expected: "PL10 9010 1400 0007 1219 8128",
		},
		{
			name:     "prefixed compact of canonical length returned as is",
			input:    "1234 5678 9012 3456 7890 1234567",
			expected: "PL123456789012345678901234567",
		},
		{
			name:     "too short input returned untouched",
			input:    "abc",
			expected: "abc",
		},
		{
			name:     "too long digit run returned untouched",
			input:    "61109010140000071219812874",
			expected: "61109010140000071219812874",
		},
		{
			name:     "empty input returned untouched",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, format.Normalize(tt.input))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	format := bankauth.DefaultAccountNumberFormat()

	inputs := []string{
		"PL10 9010 1400 0007 1219 8128",
		"1090101400000712198128",
		"abc",
		"61109010140000071219812874",
	}

	for _, input := range inputs {
		once := format.Normalize(input)
		assert.Equal(t, once, format.Normalize(once), "normalize should be stable for %q", input)
	}
}

func TestNormalizeSpacePositions(t *testing.T) {
	format := bankauth.DefaultAccountNumberFormat()

	out := format.Normalize("1090101400000712198128")
	require.Len(t, out, format.CanonicalLength)

	for i, r := range out {
		isBreak := i == 4 || i == 9 || i == 14 || i == 19 || i == 24
		if isBreak {
			assert.Equal(t, ' ', r, "expected space at index %d", i)
		} else {
			assert.NotEqual(t, ' ', r, "unexpected space at index %d", i)
		}
	}
}

func TestGenerate(t *testing.T) {
	format := bankauth.DefaultAccountNumberFormat()

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		number, err := format.Generate()
		require.NoError(t, err)

		assert.Len(t, number, format.CanonicalLength)
		assert.True(t, strings.HasPrefix(number, format.CountryPrefix))
		assert.True(t, format.IsCanonical(number))
		seen[number] = true
	}

	// 22 random digits should never collide across 20 draws
	assert.Len(t, seen, 20)
}
