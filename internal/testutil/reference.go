package testutil

import "math"

// DFTMagnitude returns |X[k]| of the direct O(n²) discrete Fourier transform
// of x. Twiddle angles are reduced modulo n before evaluation.
func DFTMagnitude(x []float64) []float64 {
	n := len(x)
	out := make([]float64, n)

	for k := range n {
		var re, im float64
		for j, v := range x {
			phase := 2 * math.Pi * float64((k*j)%n) / float64(n)
			re += v * math.Cos(phase)
			im -= v * math.Sin(phase)
		}

		out[k] = math.Hypot(re, im)
	}

	return out
}
