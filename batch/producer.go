package batch

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-onset/dsp/buffer"
	"github.com/cwbudde/algo-onset/dsp/spectrum"
)

// Producer maps chunked sample buffers to spectrum frames.
type Producer struct {
	cfg Config
}

// New validates cfg and returns a Producer.
func New(cfg Config) (*Producer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Producer{cfg: cfg}, nil
}

// Config returns the producer configuration.
func (p *Producer) Config() Config { return p.cfg }

// Spectrum is the ordered frame sequence of one buffer.
type Spectrum struct {
	Frames []spectrum.Frame
	// FrameRate is the number of frames per second of audio.
	FrameRate float64
}

// Len returns the number of frames.
func (s *Spectrum) Len() int { return len(s.Frames) }

// Index returns the frame index shown at a playback time:
// floor(seconds·FrameRate), clamped to the frame range. It returns -1 when
// there are no frames.
func (s *Spectrum) Index(seconds float64) int {
	n := len(s.Frames)
	if n == 0 {
		return -1
	}

	if seconds <= 0 || math.IsNaN(seconds) {
		return 0
	}

	i := math.Floor(seconds * s.FrameRate)
	if i >= float64(n-1) {
		return n - 1
	}

	return int(i)
}

// FrameAt returns the frame shown at a playback time. ok is false when the
// spectrum has no frames.
func (s *Spectrum) FrameAt(seconds float64) (frame spectrum.Frame, ok bool) {
	i := s.Index(seconds)
	if i < 0 {
		return spectrum.Frame{}, false
	}

	return s.Frames[i], true
}

// Produce splits samples into ChunkCount chunks and transforms each of them.
// A non-positive duration is derived from the sample count and rate.
func (p *Producer) Produce(ctx context.Context, samples []float64, duration float64) (*Spectrum, error) {
	if duration <= 0 {
		duration = float64(len(samples)) / p.cfg.SampleRate
	}

	chunks := buffer.Split(samples, p.cfg.ChunkCount(len(samples), duration))

	frames, err := p.ProduceChunks(ctx, chunks)
	if err != nil {
		return nil, err
	}

	return &Spectrum{Frames: frames, FrameRate: p.cfg.FrameRate()}, nil
}

// ProduceChunks transforms every chunk, preserving order. Each worker owns
// one Transformer; a degenerate chunk only affects its own frame. The only
// error is cancellation of ctx.
func (p *Producer) ProduceChunks(ctx context.Context, chunks [][]float64) ([]spectrum.Frame, error) {
	frames := make([]spectrum.Frame, len(chunks))
	if len(chunks) == 0 {
		return frames, nil
	}

	workers := min(p.cfg.workers(), len(chunks))

	g, ctx := errgroup.WithContext(ctx)

	for w := range workers {
		g.Go(func() error {
			tr := spectrum.NewTransformer(p.cfg.SampleRate)

			for i := w; i < len(chunks); i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}

				frames[i] = tr.Full(chunks[i])
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return frames, nil
}
