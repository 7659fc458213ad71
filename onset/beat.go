package onset

import (
	"fmt"

	"github.com/cwbudde/algo-onset/dsp/core"
	timestats "github.com/cwbudde/algo-onset/stats/time"
)

// BeatDetector finds sudden energy rises in a mono buffer.
//
// Each window's energy is its mean square. The first max(1, cooldown)
// energies seed a moving average; after that a window whose energy exceeds
// sensitivity times the updated average is a beat, and the following
// cooldown hops are skipped.
type BeatDetector struct {
	scan           core.ScanConfig
	sensitivity    float64
	cooldownFrames int
	initFrames     int
}

// NewBeatDetector returns a BeatDetector with defaults of 44.1 kHz, a 1024
// sample window, a 512 sample hop, sensitivity 1.3 and a 0.1 s cooldown.
func NewBeatDetector(opts ...Option) (*BeatDetector, error) {
	cfg := beatDefaults()
	if err := cfg.apply(opts); err != nil {
		return nil, err
	}

	scan := core.ScanConfig{
		SampleRate: cfg.sampleRate,
		WindowSize: cfg.windowSize,
		HopSize:    cfg.hopSize,
	}
	if err := scan.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}

	cooldown := scan.FramesFor(cfg.cooldown)

	return &BeatDetector{
		scan:           scan,
		sensitivity:    cfg.sensitivity,
		cooldownFrames: cooldown,
		initFrames:     max(1, cooldown),
	}, nil
}

// Scan returns the window geometry of the detector.
func (d *BeatDetector) Scan() core.ScanConfig { return d.scan }

// CooldownFrames returns the number of hops skipped after a beat.
func (d *BeatDetector) CooldownFrames() int { return d.cooldownFrames }

// InitFrames returns the number of hops used to seed the moving average.
func (d *BeatDetector) InitFrames() int { return d.initFrames }

// NewState returns a fresh per-scan state.
func (d *BeatDetector) NewState() *EnergyState {
	return NewEnergyState(d.initFrames, d.cooldownFrames, d.sensitivity)
}

// Detect returns the window start offsets of detected beats in ascending
// order. A buffer shorter than one window yields an empty list.
func (d *BeatDetector) Detect(samples []float64) []int {
	beats := []int{}

	hops := d.scan.Hops(len(samples))
	if hops == 0 {
		return beats
	}

	state := d.NewState()
	w := d.scan.WindowSize

	for h := range hops {
		i := h * d.scan.HopSize
		if state.Step(timestats.MeanSquare(samples[i : i+w])) {
			beats = append(beats, i)
		}
	}

	return beats
}

// Energies returns the mean square of every scanned window, in hop order.
func (d *BeatDetector) Energies(samples []float64) []float64 {
	hops := d.scan.Hops(len(samples))
	out := make([]float64, hops)
	w := d.scan.WindowSize

	for h := range out {
		i := h * d.scan.HopSize
		out[h] = timestats.MeanSquare(samples[i : i+w])
	}

	return out
}
