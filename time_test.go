package bankauth_test

import (
	"testing"
	"time"

	bankauth "github.com/pbanach/go-bank-auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsWithinThresholdPeriod(t *testing.T) {
	tests := []struct {
		name          string
		inputTime     time.Time
		thresholdExpr string
		expected      bool
		expectErr     bool
	}{
		{
			name:          "within 15 minute threshold",
			inputTime:     time.Now().Add(-5 * time.Minute),
			thresholdExpr: "15m",
			expected:      true,
		},
		{
			name:          "outside 15 minute threshold",
			inputTime:     time.Now().Add(-20 * time.Minute),
			thresholdExpr: "15m",
			expected:      false,
		},
		{
			name:          "future time",
			inputTime:     time.Now().Add(time.Hour),
			thresholdExpr: "15m",
			expected:      true,
		},
		{
			name:          "invalid threshold expression",
			inputTime:     time.Now(),
			thresholdExpr: "soon",
			expectErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := bankauth.IsWithinThresholdPeriod(tt.inputTime, tt.thresholdExpr)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestThresholdHelpersAreComplementary(t *testing.T) {
	inputs := []time.Time{
		time.Now().Add(-5 * time.Minute),
		time.Now().Add(-20 * time.Minute),
		time.Now().Add(time.Hour),
	}

	for _, input := range inputs {
		within, err1 := bankauth.IsWithinThresholdPeriod(input, "15m")
		outside, err2 := bankauth.IsOutsideThresholdPeriod(input, "15m")
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.NotEqual(t, within, outside)
	}
}
