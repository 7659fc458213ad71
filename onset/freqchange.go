package onset

import (
	"fmt"

	"github.com/cwbudde/algo-onset/dsp/core"
	"github.com/cwbudde/algo-onset/dsp/spectrum"
	"github.com/cwbudde/algo-onset/dsp/window"
	timestats "github.com/cwbudde/algo-onset/stats/time"
)

// FrequencyChangeDetector finds abrupt shifts of the spectral centroid.
//
// Windows quieter than the silence threshold, or without magnitude in the
// analysis band, are skipped without touching the state. The first valid
// centroid seeds a reference; later centroids that differ from it by more
// than the sensitivity (relative) are changes.
type FrequencyChangeDetector struct {
	scan             core.ScanConfig
	sensitivity      float64
	cooldownFrames   int
	silenceThreshold float64
	taper            window.Type
	bandLow          float64
	bandHigh         float64
}

// NewFrequencyChangeDetector returns a FrequencyChangeDetector with defaults
// of 44.1 kHz, a 2048 sample window, a 1024 sample hop, sensitivity 0.3, a
// 0.2 s cooldown, a 0.01 silence threshold, a 20 Hz to 20 kHz band and a
// Hann taper.
func NewFrequencyChangeDetector(opts ...Option) (*FrequencyChangeDetector, error) {
	cfg := frequencyDefaults()
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

	d := &FrequencyChangeDetector{
		scan:             scan,
		sensitivity:      cfg.sensitivity,
		cooldownFrames:   scan.FramesFor(cfg.cooldown),
		silenceThreshold: cfg.silenceThreshold,
		taper:            cfg.taper,
		bandLow:          cfg.bandLow,
		bandHigh:         cfg.bandHigh,
	}

	// Surface analyzer errors at construction rather than per scan.
	if _, err := d.analyzer(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}

	return d, nil
}

// Scan returns the window geometry of the detector.
func (d *FrequencyChangeDetector) Scan() core.ScanConfig { return d.scan }

// CooldownFrames returns the number of hops following a change during which
// no change is reported.
func (d *FrequencyChangeDetector) CooldownFrames() int { return d.cooldownFrames }

// NewState returns a fresh per-scan state.
func (d *FrequencyChangeDetector) NewState() *CentroidState {
	return NewCentroidState(d.cooldownFrames, d.sensitivity)
}

func (d *FrequencyChangeDetector) analyzer() (*spectrum.Analyzer, error) {
	return spectrum.NewAnalyzer(d.scan.WindowSize, d.scan.SampleRate,
		spectrum.WithBand(d.bandLow, d.bandHigh),
		spectrum.WithTaper(d.taper),
	)
}

// Detect returns the window start offsets of detected frequency changes in
// ascending order. A buffer shorter than one window yields an empty list.
func (d *FrequencyChangeDetector) Detect(samples []float64) []int {
	changes := []int{}

	hops := d.scan.Hops(len(samples))
	if hops == 0 {
		return changes
	}

	a, err := d.analyzer()
	if err != nil {
		// Parameters were checked by the constructor.
		return changes
	}

	state := d.NewState()

	d.scanCentroids(samples, hops, a, func(i int, centroid float64) {
		if state.Step(centroid) {
			changes = append(changes, i)
		}
	})

	return changes
}

// Centroids returns the window offsets and centroids of every window the
// detector would feed to its state machine, in hop order.
func (d *FrequencyChangeDetector) Centroids(samples []float64) (offsets []int, centroids []float64) {
	hops := d.scan.Hops(len(samples))
	if hops == 0 {
		return nil, nil
	}

	a, err := d.analyzer()
	if err != nil {
		return nil, nil
	}

	d.scanCentroids(samples, hops, a, func(i int, c float64) {
		offsets = append(offsets, i)
		centroids = append(centroids, c)
	})

	return offsets, centroids
}

func (d *FrequencyChangeDetector) scanCentroids(samples []float64, hops int, a *spectrum.Analyzer, fn func(int, float64)) {
	w := d.scan.WindowSize

	for h := range hops {
		i := h * d.scan.HopSize
		win := samples[i : i+w]

		if timestats.MeanSquare(win) < d.silenceThreshold {
			continue
		}

		c, ok := a.Centroid(win)
		if !ok {
			continue
		}

		fn(i, c)
	}
}
