package frequency

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Stats summarises one spectrum frame for display and logging.
type Stats struct {
	BinCount  int
	Sum       float64 // sum of magnitudes
	Energy    float64 // sum of squared magnitudes
	Peak      float64
	PeakFreq  float64 // frequency of the largest magnitude (Hz)
	Centroid  float64 // spectral centroid (Hz)
	Spread    float64 // spectral spread (Hz)
	Flatness  float64 // spectral flatness (Wiener entropy), 0..1
	Rolloff   float64 // frequency below which 85% energy (Hz)
	Populated bool    // false when every magnitude is zero
}

// Calculate summarises a spectrum given as parallel bin frequencies and
// magnitudes (linear scale, NOT dB). Bins with negative frequency, as found in
// the upper half of a full FFT, are ignored.
func Calculate(freqs, magnitude []float64) Stats {
	f, m := nonNegative(freqs, magnitude)

	var s Stats
	s.BinCount = len(m)
	if len(m) == 0 {
		return s
	}

	for i, v := range m {
		s.Energy += v * v
		if v > s.Peak {
			s.Peak = v
			s.PeakFreq = f[i]
		}
	}

	s.Sum = vecmath.Sum(m)
	if s.Sum == 0 {
		return s
	}

	s.Populated = true
	s.Centroid, _ = WeightedCentroid(f, m)
	s.Spread = spread(f, m, s.Centroid, s.Sum)
	s.Flatness = Flatness(m)
	s.Rolloff = Rolloff(f, m, 0.85)

	return s
}

// WeightedCentroid returns the magnitude-weighted mean frequency
//
//	centroid = sum(f_i * |X_i|) / sum(|X_i|)
//
// ok is false when the slices differ in length, are empty, or carry no
// magnitude, in which case no centroid is defined.
func WeightedCentroid(freqs, magnitude []float64) (centroid float64, ok bool) {
	if len(freqs) != len(magnitude) || len(magnitude) == 0 {
		return 0, false
	}

	sum := vecmath.Sum(magnitude)
	if sum == 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		return 0, false
	}

	return vecmath.DotProduct(freqs, magnitude) / sum, true
}

// spread computes spectral spread (standard deviation of the spectrum around the centroid).
func spread(freqs, magnitude []float64, cent, sumMag float64) float64 {
	if sumMag == 0 {
		return 0
	}
	weightedSqSum := 0.0
	for i, v := range magnitude {
		diff := freqs[i] - cent
		weightedSqSum += diff * diff * v
	}
	return math.Sqrt(weightedSqSum / sumMag)
}

// Flatness returns the spectral flatness (Wiener entropy) in the range 0..1.
//
// Flatness = exp(mean(log(|X_i|))) / mean(|X_i|)
//
// If any bin is zero the geometric mean is zero, so flatness is zero.
func Flatness(magnitude []float64) float64 {
	n := len(magnitude)
	if n == 0 {
		return 0
	}

	sumLin := 0.0
	sumLog := 0.0
	for _, v := range magnitude {
		if v <= 0 {
			return 0
		}
		sumLin += v
		sumLog += math.Log(v)
	}

	meanLin := sumLin / float64(n)
	return math.Exp(sumLog/float64(n)) / meanLin
}

// Rolloff returns the frequency below which the specified fraction (0..1) of
// spectral energy lies. Energy is the sum of squared magnitudes; a typical
// value for percent is 0.85.
func Rolloff(freqs, magnitude []float64, percent float64) float64 {
	n := len(magnitude)
	if n == 0 || len(freqs) != n {
		return 0
	}

	energy := vecmath.DotProduct(magnitude, magnitude)
	if energy == 0 {
		return 0
	}

	threshold := percent * energy
	cumEnergy := 0.0
	for i, v := range magnitude {
		cumEnergy += v * v
		if cumEnergy >= threshold {
			return freqs[i]
		}
	}
	return freqs[n-1]
}

func nonNegative(freqs, magnitude []float64) ([]float64, []float64) {
	n := min(len(freqs), len(magnitude))

	end := 0
	for end < n && freqs[end] >= 0 {
		end++
	}

	if end == n {
		return freqs[:n], magnitude[:n]
	}

	// fftfreq layout: non-negative bins first, then negatives. Anything
	// non-negative after the first negative bin is gathered explicitly.
	f := append([]float64(nil), freqs[:end]...)
	m := append([]float64(nil), magnitude[:end]...)
	for i := end; i < n; i++ {
		if freqs[i] >= 0 {
			f = append(f, freqs[i])
			m = append(m, magnitude[i])
		}
	}

	return f, m
}
