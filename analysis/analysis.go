// Package analysis runs the onset detectors and the spectrum producer over a
// decoded track in one call.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/cwbudde/algo-onset/audio"
	"github.com/cwbudde/algo-onset/batch"
	"github.com/cwbudde/algo-onset/onset"
)

// ErrNoTrack is returned when Run is given a track without samples.
var ErrNoTrack = errors.New("analysis: empty track")

// Options carries detector options and the batch configuration. The track's
// sample rate overrides any rate set here.
type Options struct {
	Beats            []onset.Option
	FrequencyChanges []onset.Option
	Spectrum         batch.Config
	// SkipSpectrum disables frame production.
	SkipSpectrum bool
}

// DefaultOptions returns the default detectors and the samples-per-chunk
// spectrum policy.
func DefaultOptions() Options {
	return Options{Spectrum: batch.DefaultConfig()}
}

// Report holds everything found in one track.
type Report struct {
	SampleRate       int
	Channels         int
	Duration         float64
	Beats            []int
	FrequencyChanges []int
	Spectrum         *batch.Spectrum
}

// Seconds converts a sample offset to seconds.
func (r *Report) Seconds(idx int) float64 {
	if r.SampleRate <= 0 {
		return 0
	}

	return float64(idx) / float64(r.SampleRate)
}

// BeatTimes returns the beat offsets in seconds.
func (r *Report) BeatTimes() []float64 { return r.times(r.Beats) }

// FrequencyChangeTimes returns the frequency-change offsets in seconds.
func (r *Report) FrequencyChangeTimes() []float64 { return r.times(r.FrequencyChanges) }

func (r *Report) times(idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, v := range idx {
		out[i] = r.Seconds(v)
	}

	return out
}

// Run detects beats and frequency changes on the track's line channel and
// produces spectrum frames from its spectrum channel.
func Run(ctx context.Context, track *audio.Track, opts Options) (*Report, error) {
	if track == nil || track.Frames() == 0 {
		return nil, ErrNoTrack
	}

	rate := onset.WithSampleRate(float64(track.SampleRate))

	beats, err := onset.NewBeatDetector(append(slices.Clip(opts.Beats), rate)...)
	if err != nil {
		return nil, fmt.Errorf("beat detector: %w", err)
	}

	changes, err := onset.NewFrequencyChangeDetector(append(slices.Clip(opts.FrequencyChanges), rate)...)
	if err != nil {
		return nil, fmt.Errorf("frequency-change detector: %w", err)
	}

	report := &Report{
		SampleRate: track.SampleRate,
		Channels:   track.Channels,
		Duration:   track.Duration,
	}

	line := track.Line()
	report.Beats = beats.Detect(line)
	report.FrequencyChanges = changes.Detect(line)

	if opts.SkipSpectrum {
		return report, nil
	}

	cfg := opts.Spectrum
	cfg.SampleRate = float64(track.SampleRate)

	producer, err := batch.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("spectrum producer: %w", err)
	}

	report.Spectrum, err = producer.Produce(ctx, track.SpectrumChannel(), track.Duration)
	if err != nil {
		return nil, fmt.Errorf("spectrum: %w", err)
	}

	return report, nil
}
