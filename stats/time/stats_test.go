package time

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// generateSine creates a sine wave with exactly numCycles full cycles.
func generateSine(amplitude, freq, sampleRate float64, numCycles int) []float64 {
	samplesPerCycle := int(sampleRate / freq)
	n := samplesPerCycle * numCycles
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/sampleRate)
	}
	return out
}

func TestCalculateEmpty(t *testing.T) {
	assert.Equal(t, Stats{}, Calculate(nil))
}

func TestCalculateSine(t *testing.T) {
	s := Calculate(generateSine(2, 1000, 48000, 10))

	assert.Equal(t, 480, s.Length)
	assert.InDelta(t, 2/math.Sqrt2, s.RMS, 1e-6)
	assert.InDelta(t, 0, s.DC, 1e-9)
	assert.InDelta(t, 2, s.Peak, 1e-6)
	assert.InDelta(t, math.Sqrt2, s.CrestFactor, 1e-5)
}

func TestCalculatePeakAndCrossings(t *testing.T) {
	s := Calculate([]float64{0.5, -3, 2, 0, 1})

	assert.Equal(t, 3.0, s.Peak)
	assert.Equal(t, 1, s.PeakPos)
	// Zero samples do not count as sign changes.
	assert.Equal(t, 2, s.ZeroCrossings)
	assert.InDelta(t, 0.1, s.DC, 1e-12)
}

func TestMeanSquareMatchesCalculate(t *testing.T) {
	sig := generateSine(0.7, 440, 44100, 20)
	assert.InDelta(t, Calculate(sig).Power, MeanSquare(sig), 1e-9)
	assert.InDelta(t, Calculate(sig).Energy, Energy(sig), 1e-6)
}

func TestMeanSquareSilence(t *testing.T) {
	assert.Zero(t, MeanSquare(make([]float64, 1024)))
	assert.Zero(t, MeanSquare(nil))
	assert.Zero(t, Energy(nil))
}
