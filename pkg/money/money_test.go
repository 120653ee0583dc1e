package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFloat(t *testing.T) {
	cases := []struct {
		in   float64
		want int64
	}{
		{0, 0},
		{10.50, 1050},
		{10.55, 1055},
		{0.01, 1},
		{1234.99, 123499},
		// binary float noise rounds back to the intended paise
		{19.99, 1999},
		{0.1 + 0.2, 30},
	}
	for _, tc := range cases {
		got, err := FromFloat(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "FromFloat(%v)", tc.in)
	}
}

func TestToMinor_RejectsSubPaise(t *testing.T) {
	_, err := ToMinor(decimal.RequireFromString("10.505"))
	assert.Error(t, err)
}

func TestParseMinor(t *testing.T) {
	got, err := ParseMinor("10.50")
	require.NoError(t, err)
	assert.Equal(t, int64(1050), got)

	_, err = ParseMinor("ten rupees")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "10.50", Format(1050))
	assert.Equal(t, "0.00", Format(0))
	assert.Equal(t, "-3.07", Format(-307))
}

func TestWithinTolerance(t *testing.T) {
	assert.True(t, WithinTolerance(1000, 1000))
	assert.True(t, WithinTolerance(1000, 1001))
	assert.True(t, WithinTolerance(1001, 1000))
	assert.False(t, WithinTolerance(1000, 1002))
}
