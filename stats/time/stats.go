package time

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Stats holds time-domain signal statistics.
type Stats struct {
	Length        int
	DC            float64 // mean
	RMS           float64
	Peak          float64 // max |x|
	PeakPos       int
	Energy        float64 // sum of squares
	Power         float64 // energy / length
	CrestFactor   float64 // peak / RMS (linear)
	ZeroCrossings int
}

// Calculate computes the time-domain statistics of signal in a single pass.
func Calculate(signal []float64) Stats {
	n := len(signal)
	if n == 0 {
		return Stats{}
	}

	var (
		sum, sumSq    float64
		peak          float64
		peakPos       int
		zeroCrossings int
	)

	for i, x := range signal {
		sum += x
		sumSq += x * x

		if a := math.Abs(x); a > peak {
			peak = a
			peakPos = i
		}

		if i > 0 && signal[i-1]*x < 0 {
			zeroCrossings++
		}
	}

	nf := float64(n)
	rms := math.Sqrt(sumSq / nf)

	var crest float64
	if rms > 0 {
		crest = peak / rms
	}

	return Stats{
		Length:        n,
		DC:            sum / nf,
		RMS:           rms,
		Peak:          peak,
		PeakPos:       peakPos,
		Energy:        sumSq,
		Power:         sumSq / nf,
		CrestFactor:   crest,
		ZeroCrossings: zeroCrossings,
	}
}

// Energy returns the sum of squared samples.
func Energy(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	return vecmath.DotProduct(signal, signal)
}

// MeanSquare returns the energy of signal divided by its length, the
// per-window loudness measure used by the onset detectors. An empty signal
// has zero mean square.
func MeanSquare(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	return Energy(signal) / float64(len(signal))
}
