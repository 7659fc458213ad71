package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 1.0, 48)
	require.Len(t, s, 48)
	// Phase 0 starts at zero.
	assert.InDelta(t, 0, s[0], 1e-15)

	for i, v := range s {
		require.Truef(t, v >= -1 && v <= 1, "s[%d] = %v out of range", i, v)
	}
}

func TestDeterministicSineReproducible(t *testing.T) {
	assert.Equal(t, DeterministicSine(440, 44100, 0.5, 100), DeterministicSine(440, 44100, 0.5, 100))
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	require.Len(t, a, 64)
	assert.Equal(t, a, DeterministicNoise(42, 1.0, 64))
	assert.NotEqual(t, DeterministicNoise(1, 1.0, 16), DeterministicNoise(2, 1.0, 16))
}

func TestImpulse(t *testing.T) {
	assert.Equal(t, []float64{0, 0, 0, 1, 0, 0, 0, 0}, Impulse(8, 3))
	assert.Equal(t, []float64{0, 0, 0, 0}, Impulse(4, 10))
}

func TestDCAndOnes(t *testing.T) {
	assert.Equal(t, []float64{0.5, 0.5, 0.5, 0.5}, DC(0.5, 4))
	assert.Equal(t, []float64{1, 1, 1}, Ones(3))
}

func TestSquareWave(t *testing.T) {
	assert.Equal(t, []float64{0.5, 0.5, -0.5, -0.5, 0.5, 0.5}, SquareWave(2, 0.5, 6))
	assert.Equal(t, []float64{0, 0}, SquareWave(0, 1, 2))
}

func TestAddBurstClipsToBuffer(t *testing.T) {
	dst := Silence(4)
	AddBurst(dst, 2, 10, 1, 1)
	assert.Equal(t, []float64{0, 0, 1, -1}, dst)
}

func TestConcat(t *testing.T) {
	assert.Equal(t, []float64{1, 1, 0, 2}, Concat(Ones(2), Silence(1), DC(2, 1)))
}

func TestToneSwitch(t *testing.T) {
	s := ToneSwitch(100, 200, 1000, 1, 5, 10)
	a := DeterministicSine(100, 1000, 1, 10)
	b := DeterministicSine(200, 1000, 1, 10)
	assert.InDeltaSlice(t, a[:5], s[:5], 1e-12)
	assert.InDeltaSlice(t, b[5:], s[5:], 1e-12)
}

func TestDFTMagnitude(t *testing.T) {
	// Impulse at 0 has a flat unit spectrum.
	assert.InDeltaSlice(t, []float64{1, 1, 1, 1, 1}, DFTMagnitude(Impulse(5, 0)), 1e-12)

	// DC concentrates in bin 0.
	assert.InDeltaSlice(t, []float64{8, 0, 0, 0}, DFTMagnitude(DC(2, 4)), 1e-12)

	// A cosine at bin 2 of 8 splits evenly between bins 2 and 6.
	x := make([]float64, 8)
	for i := range x {
		x[i] = math.Cos(2 * math.Pi * 2 * float64(i) / 8)
	}
	assert.InDeltaSlice(t, []float64{0, 0, 4, 0, 0, 0, 4, 0}, DFTMagnitude(x), 1e-12)
}
