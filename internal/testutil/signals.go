package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	return DC(1.0, n)
}

// Silence returns length zero samples.
func Silence(length int) []float64 {
	return make([]float64, length)
}

// Concat joins signal segments into one buffer.
func Concat(parts ...[]float64) []float64 {
	n := 0
	for _, p := range parts {
		n += len(p)
	}

	out := make([]float64, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// SquareWave generates a ±amplitude square wave that flips sign every
// halfPeriod samples, starting positive.
func SquareWave(halfPeriod int, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	if halfPeriod <= 0 {
		return out
	}
	for i := range out {
		if (i/halfPeriod)%2 == 0 {
			out[i] = amplitude
		} else {
			out[i] = -amplitude
		}
	}
	return out
}

// AddBurst adds a square burst of the given length to dst starting at
// start. Samples past the end of dst are dropped.
func AddBurst(dst []float64, start, length, halfPeriod int, amplitude float64) {
	burst := SquareWave(halfPeriod, amplitude, length)
	for i, v := range burst {
		j := start + i
		if j < 0 || j >= len(dst) {
			continue
		}
		dst[j] += v
	}
}

// ToneSwitch generates a sine at freqA for the first switchAt samples and at
// freqB afterwards. Phase is computed from the absolute sample index, so the
// switch is not phase-continuous.
func ToneSwitch(freqA, freqB, sampleRate, amplitude float64, switchAt, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		f := freqA
		if i >= switchAt {
			f = freqB
		}
		out[i] = amplitude * math.Sin(2*math.Pi*f*float64(i)/sampleRate)
	}
	return out
}
