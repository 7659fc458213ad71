package onset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-onset/dsp/window"
	"github.com/cwbudde/algo-onset/internal/testutil"
)

func newFreq(t *testing.T, opts ...Option) *FrequencyChangeDetector {
	t.Helper()

	d, err := NewFrequencyChangeDetector(opts...)
	require.NoError(t, err)

	return d
}

func TestFrequencyDefaults(t *testing.T) {
	d := newFreq(t)

	assert.Equal(t, 2048, d.Scan().WindowSize)
	assert.Equal(t, 1024, d.Scan().HopSize)
	assert.Equal(t, 9, d.CooldownFrames())
}

func TestFrequencyOptionErrors(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{name: "window-type", opt: WithWindow(window.Type(99))},
		{name: "band", opt: WithBand(500, 100)},
		{name: "negative-band", opt: WithBand(-1, 100)},
		{name: "silence", opt: WithSilenceThreshold(-0.1)},
		{name: "sensitivity", opt: WithSensitivity(math.NaN())},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewFrequencyChangeDetector(tc.opt)
			assert.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
}

func TestFrequencyShortBuffer(t *testing.T) {
	d := newFreq(t)

	got := d.Detect(testutil.DeterministicSine(440, sr, 0.8, 2047))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFrequencySilence(t *testing.T) {
	d := newFreq(t)

	assert.Empty(t, d.Detect(testutil.Silence(2*sr)))
}

func TestFrequencySteadyTone(t *testing.T) {
	d := newFreq(t)

	for _, amp := range []float64{0.8, 10000} {
		sig := testutil.DeterministicSine(440, sr, amp, 5*sr)
		assert.Empty(t, d.Detect(sig), "amp %v", amp)

		_, centroids := d.Centroids(sig)
		for _, c := range centroids {
			require.InDelta(t, 440, c, 5, "amp %v", amp)
		}
	}
}

func TestFrequencyToneSwitch(t *testing.T) {
	d := newFreq(t)
	sig := testutil.ToneSwitch(200, 8000, sr, 0.8, sr, 2*sr)

	got := d.Detect(sig)
	require.Len(t, got, 1, "changes=%v", got)
	assert.InDelta(t, sr, got[0], float64(3*d.Scan().HopSize))
	assert.Equal(t, got, d.Detect(sig))
}

func TestFrequencyBelowSilenceThreshold(t *testing.T) {
	d := newFreq(t)

	// Mean square of a 0.1 sine is 0.005.
	sig := testutil.ToneSwitch(200, 8000, sr, 0.1, sr, 2*sr)
	assert.Empty(t, d.Detect(sig))

	d = newFreq(t, WithSilenceThreshold(0.001))
	assert.Len(t, d.Detect(sig), 1)
}

func TestFrequencyEmptyBand(t *testing.T) {
	d := newFreq(t, WithBand(30000, 40000))

	sig := testutil.ToneSwitch(200, 8000, sr, 0.8, sr, 2*sr)
	assert.Empty(t, d.Detect(sig))
}

func TestFrequencyInvariants(t *testing.T) {
	d := newFreq(t, WithSensitivity(0.1))

	// Alternate tones every 100 ms, faster than the cooldown.
	var parts [][]float64
	for k := range 30 {
		f := 300.0
		if k%2 == 1 {
			f = 3000
		}
		parts = append(parts, testutil.DeterministicSine(f, sr, 0.8, sr/10))
	}
	sig := testutil.Concat(parts...)

	changes := d.Detect(sig)
	require.NotEmpty(t, changes)

	testutil.RequireStrictlyIncreasing(t, changes)

	hop := d.Scan().HopSize
	minGap := (d.CooldownFrames() + 1) * hop

	for i, c := range changes {
		require.True(t, c >= 0 && c <= len(sig)-d.Scan().WindowSize && c%hop == 0,
			"change %d at %d outside scan grid", i, c)

		if i > 0 {
			require.GreaterOrEqual(t, c-changes[i-1], minGap, "changes %d and %d closer than cooldown", changes[i-1], c)
		}
	}
}

func TestCentroidStateSequence(t *testing.T) {
	s := NewCentroidState(1, 0.3)

	require.False(t, s.Step(100), "first centroid must only seed")
	require.True(t, s.HasReference)
	require.Equal(t, 100.0, s.Reference)

	require.False(t, s.Step(110), "10% change reported")
	require.InDelta(t, 101, s.Reference, 1e-9)

	require.True(t, s.Step(200), "expected change")
	require.Equal(t, 200.0, s.Reference, "change must hard-reset the reference")
	require.Equal(t, 1, s.CooldownRemaining)

	require.False(t, s.Step(1000), "change reported during cooldown")
	assert.InDelta(t, 280, s.Reference, 1e-9, "cooldown must blend")
	assert.Zero(t, s.CooldownRemaining)
}

func TestCentroidStateZeroReference(t *testing.T) {
	s := NewCentroidState(0, 0.3)

	s.Step(0)

	require.False(t, s.Step(500), "change reported against a zero reference")
	require.InDelta(t, 50, s.Reference, 1e-9)
	assert.True(t, s.Step(500), "expected change once the reference is positive")
}
