package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearity(t *testing.T) {
	s := New()
	s.Initialize(1.25)
	s.SetUserScale(2)

	factor := s.Factor()
	require.InDelta(t, 2.5, factor, 1e-6)

	for _, u := range []float32{0, 1, 8, 24, 13.5} {
		assert.InDelta(t, u*factor, s.ToPixels(u), 1e-4)
	}
}

func TestRoundTrip(t *testing.T) {
	s := New()
	s.Initialize(1.5)
	s.SetUserScale(0.75)

	for _, u := range []float32{1, 4, 17, 240.25} {
		assert.InDelta(t, u, s.ToAbstract(s.ToPixels(u)), 1e-4)
	}
}

func TestInitializeIdempotent(t *testing.T) {
	s := New()
	s.Initialize(2)
	s.Initialize(1) // ignored
	assert.Equal(t, float32(2), s.SystemScale())
}

func TestClamping(t *testing.T) {
	tests := []struct {
		in   float32
		want float32
	}{
		{0.1, 0.5},
		{0.5, 0.5},
		{1.7, 1.7},
		{3.0, 3.0},
		{9.9, 3.0},
	}
	for _, tt := range tests {
		s := New()
		s.SetUserScale(tt.in)
		assert.Equal(t, tt.want, s.UserScale())
	}
}

func TestFontPixelSizeRounds(t *testing.T) {
	s := New()
	s.Initialize(1)
	s.SetUserScale(1.5)

	assert.Equal(t, 21, s.FontPixelSize(14)) // 21.0
	assert.Equal(t, 20, s.FontPixelSize(13)) // 19.5 rounds up
}

func TestFontsNeedReloadSticky(t *testing.T) {
	s := New()
	s.Initialize(1)
	require.False(t, s.FontsNeedReload())

	s.SetUserScale(1.5)
	assert.True(t, s.FontsNeedReload())

	// Stays set until the cache clears it, even across further reads.
	assert.True(t, s.FontsNeedReload())
	s.ClearFontsReload()
	assert.False(t, s.FontsNeedReload())

	// Unchanged values do not re-arm the flag.
	s.SetUserScale(1.5)
	assert.False(t, s.FontsNeedReload())

	s.SetSystemScale(2)
	assert.True(t, s.FontsNeedReload())
}

func TestFactorAlwaysPositive(t *testing.T) {
	s := New()
	s.Initialize(0) // clamps to MinFactor
	s.SetUserScale(0)
	assert.Greater(t, s.Factor(), float32(0))
}
