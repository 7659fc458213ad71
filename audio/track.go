package audio

import (
	"time"

	"github.com/cwbudde/algo-onset/dsp/core"
)

// Track is a fully decoded audio file.
type Track struct {
	SampleRate int
	Channels   int
	BitDepth   int
	// Duration is Frames()/SampleRate in seconds.
	Duration float64
	// Data holds one sample slice per channel, all of equal length.
	Data [][]float64
}

// Frames returns the number of samples per channel.
func (t *Track) Frames() int {
	if len(t.Data) == 0 {
		return 0
	}

	return len(t.Data[0])
}

// Length returns the duration as a time.Duration.
func (t *Track) Length() time.Duration {
	return time.Duration(t.Duration * float64(time.Second))
}

// Channel returns channel i, clamped to the available channels. A track
// without data returns nil.
func (t *Track) Channel(i int) []float64 {
	if len(t.Data) == 0 {
		return nil
	}

	i = core.ClampInt(i, 0, len(t.Data)-1)

	return t.Data[i]
}

// Line returns the channel onsets are detected on (the first one).
func (t *Track) Line() []float64 { return t.Channel(0) }

// SpectrumChannel returns the channel spectrum frames are computed from:
// the second channel when present, otherwise the first.
func (t *Track) SpectrumChannel() []float64 { return t.Channel(1) }

// newTrack deinterleaves samples into channels and derives the duration.
// A trailing partial frame is dropped.
func newTrack(interleaved []float64, channels, sampleRate, bitDepth int) (*Track, error) {
	if channels <= 0 || sampleRate <= 0 {
		return nil, ErrInvalidFile
	}

	frames := len(interleaved) / channels
	if frames == 0 {
		return nil, ErrNoSamples
	}

	data := make([][]float64, channels)
	for c := range data {
		data[c] = make([]float64, frames)
	}

	for f := range frames {
		base := f * channels
		for c := range channels {
			data[c][f] = interleaved[base+c]
		}
	}

	return &Track{
		SampleRate: sampleRate,
		Channels:   channels,
		BitDepth:   bitDepth,
		Duration:   float64(frames) / float64(sampleRate),
		Data:       data,
	}, nil
}
