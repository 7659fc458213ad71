package spectrum

import (
	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	dspfft "github.com/mjibson/go-dsp/fft"

	"github.com/cwbudde/algo-onset/dsp/buffer"
	"github.com/cwbudde/algo-onset/dsp/core"
)

// Transformer computes full-spectrum frames of peak-normalised, 16-bit
// quantised windows. Power-of-two lengths run on cached algo-fft plans;
// all other lengths use the go-dsp mixed-radix/Bluestein transform.
//
// A Transformer is not safe for concurrent use; give each goroutine its own.
type Transformer struct {
	sampleRate float64
	plans      map[int]*algofft.Plan[complex128]
	noPlan     map[int]bool
	scratch    *buffer.Pool
	in         []complex128
}

// NewTransformer returns a Transformer for the given sample rate.
func NewTransformer(sampleRate float64) *Transformer {
	return &Transformer{
		sampleRate: sampleRate,
		plans:      make(map[int]*algofft.Plan[complex128]),
		noPlan:     make(map[int]bool),
		scratch:    buffer.NewPool(),
	}
}

// SampleRate returns the rate used for bin frequencies.
func (t *Transformer) SampleRate() float64 { return t.sampleRate }

// Full returns the magnitude spectrum and fftfreq bin frequencies of window.
//
// Empty windows yield a degenerate frame of [EmptyFallbackSize] bins;
// all-zero or non-finite windows, and windows whose transform is not finite,
// yield a degenerate frame of len(window) bins.
func (t *Transformer) Full(window []float64) Frame {
	n := len(window)
	if n == 0 {
		return Fallback(EmptyFallbackSize)
	}

	if core.AllZero(window) || !core.AllFinite(window) {
		return Fallback(n)
	}

	scratch := t.scratch.Get(n)
	defer t.scratch.Put(scratch)

	normalized := scratch.Samples()
	NormalizeInt16(normalized, window)

	mags := Magnitude(t.forward(normalized))
	if !core.AllFinite(mags) {
		return Fallback(n)
	}

	return Frame{
		Frequencies: FFTFreq(n, t.sampleRate),
		Magnitudes:  mags,
		Status:      StatusOK,
	}
}

// Full is a one-shot convenience wrapper around [Transformer.Full].
func Full(window []float64, sampleRate float64) Frame {
	return NewTransformer(sampleRate).Full(window)
}

// NormalizeInt16 writes src scaled so its peak magnitude maps to 32767 and
// truncated to the signed 16-bit range into dst. A zero peak copies src
// through unscaled (still quantised). dst must be at least len(src) long.
func NormalizeInt16(dst, src []float64) {
	peak := vecmath.MaxAbs(src)

	for i, v := range src {
		if peak > 0 {
			v = v / peak * core.Int16Max
		}
		dst[i] = core.QuantizeInt16(v)
	}
}

func (t *Transformer) forward(x []float64) []complex128 {
	n := len(x)

	plan := t.plan(n)
	if plan == nil {
		return dspfft.FFTReal(x)
	}

	if cap(t.in) < n {
		t.in = make([]complex128, n)
	}
	in := t.in[:n]
	for i, v := range x {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return dspfft.FFTReal(x)
	}

	return out
}

// plan returns a cached plan for power-of-two n, or nil for every other
// length; the caller then uses the arbitrary-length fallback.
func (t *Transformer) plan(n int) *algofft.Plan[complex128] {
	if !isPowerOfTwo(n) {
		return nil
	}

	if p, ok := t.plans[n]; ok {
		return p
	}

	if t.noPlan[n] {
		return nil
	}

	p, err := algofft.NewPlan64(n)
	if err != nil {
		t.noPlan[n] = true
		return nil
	}

	t.plans[n] = p

	return p
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
