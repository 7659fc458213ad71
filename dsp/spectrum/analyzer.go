package spectrum

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/cwbudde/algo-onset/dsp/core"
	"github.com/cwbudde/algo-onset/dsp/window"
	"github.com/cwbudde/algo-onset/stats/frequency"
)

// ErrInvalidAnalyzer is returned by NewAnalyzer for unusable parameters.
var ErrInvalidAnalyzer = errors.New("invalid spectrum analyzer configuration")

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*analyzerConfig)

type analyzerConfig struct {
	lowHz  float64
	highHz float64
	taper  window.Type
}

// WithBand restricts analysis to bins whose frequency lies in [lowHz, highHz].
func WithBand(lowHz, highHz float64) AnalyzerOption {
	return func(c *analyzerConfig) {
		c.lowHz = lowHz
		c.highHz = highHz
	}
}

// WithTaper multiplies each window by a periodic taper before the transform.
// The default is rectangular, i.e. raw samples.
func WithTaper(t window.Type) AnalyzerOption {
	return func(c *analyzerConfig) {
		c.taper = t
	}
}

// Analyzer computes band-limited half spectra of fixed-size windows of raw
// samples. It owns scratch memory and is not safe for concurrent use.
type Analyzer struct {
	size   int
	fft    *fourier.FFT
	coeffs []float64 // nil when rectangular

	bins  []int
	freqs []float64

	tapered []float64
	bins64  []complex128
	band    []complex128
	mags    []float64
}

// NewAnalyzer returns an Analyzer for windows of size samples at sampleRate.
func NewAnalyzer(size int, sampleRate float64, opts ...AnalyzerOption) (*Analyzer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size must be > 0: %d", ErrInvalidAnalyzer, size)
	}

	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("%w: sample rate must be > 0: %v", ErrInvalidAnalyzer, sampleRate)
	}

	cfg := analyzerConfig{
		lowHz:  DefaultBandLowHz,
		highHz: DefaultBandHighHz,
		taper:  window.TypeRectangular,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.lowHz > cfg.highHz {
		return nil, fmt.Errorf("%w: band low %v above high %v", ErrInvalidAnalyzer, cfg.lowHz, cfg.highHz)
	}

	all := RFFTFreq(size, sampleRate)
	bins := BandBins(all, cfg.lowHz, cfg.highHz)

	freqs := make([]float64, len(bins))
	for i, b := range bins {
		freqs[i] = all[b]
	}

	a := &Analyzer{
		size:    size,
		fft:     fourier.NewFFT(size),
		bins:    bins,
		freqs:   freqs,
		tapered: make([]float64, size),
		bins64:  make([]complex128, size/2+1),
		band:    make([]complex128, len(bins)),
		mags:    make([]float64, len(bins)),
	}

	if cfg.taper != window.TypeRectangular {
		a.coeffs = window.Generate(cfg.taper, size, window.WithPeriodic())
	}

	return a, nil
}

// Size returns the window length the analyzer expects.
func (a *Analyzer) Size() int { return a.size }

// Frequencies returns the in-band bin frequencies. The slice is shared and
// must not be modified.
func (a *Analyzer) Frequencies() []float64 { return a.freqs }

// Magnitudes returns the in-band magnitudes of samples, which must be
// exactly Size() long; any other length returns nil. The returned slice is
// reused by the next call.
func (a *Analyzer) Magnitudes(samples []float64) []float64 {
	if len(samples) != a.size {
		return nil
	}

	seq := samples
	if a.coeffs != nil {
		window.ApplyCoefficients(a.tapered, samples, a.coeffs)
		seq = a.tapered
	}

	a.bins64 = a.fft.Coefficients(a.bins64, seq)
	for i, b := range a.bins {
		a.band[i] = a.bins64[b]
	}

	if len(a.band) > 0 {
		magnitudeInto(a.mags, a.band)
	}

	return a.mags
}

// Centroid returns the magnitude-weighted mean in-band frequency of samples.
// ok is false when the window has no in-band magnitude or the wrong length.
func (a *Analyzer) Centroid(samples []float64) (centroid float64, ok bool) {
	mags := a.Magnitudes(samples)
	if mags == nil {
		return 0, false
	}

	return frequency.WeightedCentroid(a.freqs, mags)
}
