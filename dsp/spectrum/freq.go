package spectrum

// Audible band limits applied by [Analyzer] unless overridden.
const (
	DefaultBandLowHz  = 20.0
	DefaultBandHighHz = 20000.0
)

// binWidth reproduces 1/(n·d) with d = 1/sampleRate, the spacing used by the
// fftfreq family.
func binWidth(n int, sampleRate float64) float64 {
	d := 1 / sampleRate
	return 1 / (float64(n) * d)
}

// FFTFreq returns the bin frequencies of an n-point full-spectrum FFT:
// [0, 1, ..., ceil(n/2)-1, -floor(n/2), ..., -1] · sampleRate/n.
func FFTFreq(n int, sampleRate float64) []float64 {
	if n <= 0 {
		return nil
	}

	val := binWidth(n, sampleRate)
	out := make([]float64, n)

	positive := (n-1)/2 + 1
	for k := 0; k < positive; k++ {
		out[k] = float64(k) * val
	}

	for k := positive; k < n; k++ {
		out[k] = float64(k-n) * val
	}

	return out
}

// RFFTFreq returns the n/2+1 non-negative bin frequencies of an n-point
// real-input FFT.
func RFFTFreq(n int, sampleRate float64) []float64 {
	if n <= 0 {
		return nil
	}

	val := binWidth(n, sampleRate)
	out := make([]float64, n/2+1)
	for k := range out {
		out[k] = float64(k) * val
	}

	return out
}

// BandBins returns the indices of freqs that lie in [lowHz, highHz].
func BandBins(freqs []float64, lowHz, highHz float64) []int {
	var out []int
	for i, f := range freqs {
		if f >= lowHz && f <= highHz {
			out = append(out, i)
		}
	}

	return out
}
