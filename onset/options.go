package onset

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-onset/dsp/spectrum"
	"github.com/cwbudde/algo-onset/dsp/window"
)

const (
	defaultSampleRate = 44100.0

	defaultBeatWindowSize  = 1024
	defaultBeatHopSize     = 512
	defaultBeatSensitivity = 1.3
	defaultBeatCooldown    = 0.1 // seconds

	defaultFreqWindowSize       = 2048
	defaultFreqHopSize          = 1024
	defaultFreqSensitivity      = 0.3
	defaultFreqCooldown         = 0.2 // seconds
	defaultFreqSilenceThreshold = 0.01
)

type config struct {
	sampleRate  float64
	windowSize  int
	hopSize     int
	sensitivity float64
	cooldown    float64

	// frequency-change only
	silenceThreshold float64
	taper            window.Type
	bandLow          float64
	bandHigh         float64
}

func beatDefaults() config {
	return config{
		sampleRate:  defaultSampleRate,
		windowSize:  defaultBeatWindowSize,
		hopSize:     defaultBeatHopSize,
		sensitivity: defaultBeatSensitivity,
		cooldown:    defaultBeatCooldown,
	}
}

func frequencyDefaults() config {
	return config{
		sampleRate:       defaultSampleRate,
		windowSize:       defaultFreqWindowSize,
		hopSize:          defaultFreqHopSize,
		sensitivity:      defaultFreqSensitivity,
		cooldown:         defaultFreqCooldown,
		silenceThreshold: defaultFreqSilenceThreshold,
		taper:            window.TypeHann,
		bandLow:          spectrum.DefaultBandLowHz,
		bandHigh:         spectrum.DefaultBandHighHz,
	}
}

func (c *config) apply(opts []Option) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(c); err != nil {
			return err
		}
	}

	return nil
}

// Option configures a detector. Options that only concern the
// frequency-change detector are accepted and ignored by [NewBeatDetector].
type Option func(*config) error

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// WithSampleRate sets the sample rate in Hz (default 44100).
func WithSampleRate(hz float64) Option {
	return func(c *config) error {
		if hz <= 0 || !finite(hz) {
			return fmt.Errorf("%w: sample rate must be > 0 and finite: %v", ErrInvalidParameter, hz)
		}

		c.sampleRate = hz

		return nil
	}
}

// WithWindowSize sets the analysis window length in samples
// (default 1024 for beats, 2048 for frequency changes).
func WithWindowSize(n int) Option {
	return func(c *config) error {
		if n <= 0 {
			return fmt.Errorf("%w: window size must be > 0: %d", ErrInvalidParameter, n)
		}

		c.windowSize = n

		return nil
	}
}

// WithHopSize sets the distance between window starts in samples
// (default 512 for beats, 1024 for frequency changes).
func WithHopSize(n int) Option {
	return func(c *config) error {
		if n <= 0 {
			return fmt.Errorf("%w: hop size must be > 0: %d", ErrInvalidParameter, n)
		}

		c.hopSize = n

		return nil
	}
}

// WithSensitivity sets the detection threshold. For beats it is the ratio of
// window energy to moving average (default 1.3, higher means fewer beats);
// for frequency changes it is the relative centroid change (default 0.3).
func WithSensitivity(s float64) Option {
	return func(c *config) error {
		if s <= 0 || !finite(s) {
			return fmt.Errorf("%w: sensitivity must be > 0 and finite: %v", ErrInvalidParameter, s)
		}

		c.sensitivity = s

		return nil
	}
}

// WithCooldown sets the refractory period after an event in seconds
// (default 0.1 for beats, 0.2 for frequency changes). It is converted to
// whole hops by rounding.
func WithCooldown(seconds float64) Option {
	return func(c *config) error {
		if seconds < 0 || !finite(seconds) {
			return fmt.Errorf("%w: cooldown must be >= 0 and finite: %v", ErrInvalidParameter, seconds)
		}

		c.cooldown = seconds

		return nil
	}
}

// WithSilenceThreshold sets the mean-square level below which a window is
// skipped by the frequency-change detector (default 0.01, on the scale of
// the input samples).
func WithSilenceThreshold(level float64) Option {
	return func(c *config) error {
		if level < 0 || !finite(level) {
			return fmt.Errorf("%w: silence threshold must be >= 0 and finite: %v", ErrInvalidParameter, level)
		}

		c.silenceThreshold = level

		return nil
	}
}

// WithWindow sets the taper applied before the centroid transform
// (default Hann). window.TypeRectangular analyses raw samples.
func WithWindow(t window.Type) Option {
	return func(c *config) error {
		switch t {
		case window.TypeRectangular, window.TypeHann, window.TypeHamming, window.TypeBlackman:
		default:
			return fmt.Errorf("%w: unknown window type: %d", ErrInvalidParameter, t)
		}

		c.taper = t

		return nil
	}
}

// WithBand limits the centroid to bins in [lowHz, highHz]
// (default 20 Hz to 20 kHz).
func WithBand(lowHz, highHz float64) Option {
	return func(c *config) error {
		if lowHz < 0 || !finite(lowHz) || !finite(highHz) || highHz < lowHz {
			return fmt.Errorf("%w: band must satisfy 0 <= low <= high: [%v, %v]", ErrInvalidParameter, lowHz, highHz)
		}

		c.bandLow = lowHz
		c.bandHigh = highHz

		return nil
	}
}
