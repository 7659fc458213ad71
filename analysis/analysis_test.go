package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-onset/audio"
	"github.com/cwbudde/algo-onset/batch"
	"github.com/cwbudde/algo-onset/internal/testutil"
	"github.com/cwbudde/algo-onset/onset"
)

const sr = 44100

func track(channels ...[]float64) *audio.Track {
	return &audio.Track{
		SampleRate: sr,
		Channels:   len(channels),
		BitDepth:   16,
		Duration:   float64(len(channels[0])) / sr,
		Data:       channels,
	}
}

func TestRunStereo(t *testing.T) {
	left := testutil.Concat(
		testutil.Silence(2*sr),
		testutil.SquareWave(50, 1, 2205),
		testutil.Silence(sr),
	)
	right := testutil.DeterministicSine(440, sr, 0.5, len(left))

	report, err := Run(context.Background(), track(left, right), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []int{87552}, report.Beats)
	assert.Equal(t, 2, report.Channels)
	assert.InDelta(t, 87552.0/sr, report.BeatTimes()[0], 1e-12)

	require.NotNil(t, report.Spectrum)
	assert.Equal(t, 67, report.Spectrum.Len())

	for i, f := range report.Spectrum.Frames {
		assert.False(t, f.Degenerate(), "frame %d", i)
	}
}

func TestRunToneSwitch(t *testing.T) {
	line := testutil.ToneSwitch(200, 8000, sr, 0.8, sr, 2*sr)

	opts := DefaultOptions()
	opts.SkipSpectrum = true

	report, err := Run(context.Background(), track(line), opts)
	require.NoError(t, err)

	assert.Empty(t, report.Beats)
	require.Len(t, report.FrequencyChanges, 1)
	assert.InDelta(t, 1.0, report.FrequencyChangeTimes()[0], 3*1024.0/sr)
	assert.Nil(t, report.Spectrum)
}

func TestRunValuesPerSecond(t *testing.T) {
	opts := DefaultOptions()
	opts.Spectrum.Policy = batch.PolicyValuesPerSecond

	report, err := Run(context.Background(), track(testutil.Silence(2*sr)), opts)
	require.NoError(t, err)

	assert.Empty(t, report.Beats)
	assert.Empty(t, report.FrequencyChanges)
	assert.Equal(t, 40, report.Spectrum.Len())

	f, ok := report.Spectrum.FrameAt(1.5)
	require.True(t, ok)
	assert.True(t, f.Degenerate())
}

func TestRunErrors(t *testing.T) {
	_, err := Run(context.Background(), nil, DefaultOptions())
	require.ErrorIs(t, err, ErrNoTrack)

	_, err = Run(context.Background(), &audio.Track{SampleRate: sr}, DefaultOptions())
	require.ErrorIs(t, err, ErrNoTrack)

	opts := DefaultOptions()
	opts.Beats = []onset.Option{onset.WithHopSize(0)}

	_, err = Run(context.Background(), track(testutil.Silence(sr)), opts)
	require.ErrorIs(t, err, onset.ErrInvalidParameter)

	opts = DefaultOptions()
	opts.Spectrum.SamplesPerChunk = 0

	_, err = Run(context.Background(), track(testutil.Silence(sr)), opts)
	require.ErrorIs(t, err, batch.ErrInvalidConfig)
}

func TestReportSeconds(t *testing.T) {
	r := &Report{SampleRate: 44100}
	assert.InDelta(t, 1.0, r.Seconds(44100), 1e-12)
	assert.Equal(t, 0.0, (&Report{}).Seconds(10))
}
