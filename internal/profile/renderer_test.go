package profile

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_DistinctAndDeterministic(t *testing.T) {
	stable, err := Render(Stable)
	require.NoError(t, err)
	high, err := Render(HighRisk)
	require.NoError(t, err)

	assert.NotEmpty(t, stable)
	assert.NotEmpty(t, high)
	assert.NotEqual(t, stable, high)

	again, err := Render(HighRisk)
	require.NoError(t, err)
	assert.Equal(t, high, again)

	assert.Contains(t, stable, "Stable")
	assert.Contains(t, stable, "$10M")
	assert.Contains(t, high, "High-risk")
	assert.Contains(t, high, "$250K")
	assert.Contains(t, high, "25% – 300%")
}

func TestRender_UnknownClassification(t *testing.T) {
	_, err := Render(Classification("degen"))
	assert.ErrorIs(t, err, ErrInvalidClassification)
}

func TestFormatUSD(t *testing.T) {
	tests := map[string]string{
		"999":        "$999",
		"250000":     "$250K",
		"1500000":    "$1.5M",
		"10000000":   "$10M",
		"2000000000": "$2B",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatUSD(decimal.RequireFromString(in)), in)
	}
}
