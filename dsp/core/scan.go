package core

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidScan is returned when a scan configuration cannot describe a
// hop-spaced pass over a buffer.
var ErrInvalidScan = errors.New("invalid scan configuration")

// ScanConfig describes a single hop-spaced pass of fixed-size windows over a
// sample buffer.
type ScanConfig struct {
	SampleRate float64
	WindowSize int
	HopSize    int
}

// Validate reports whether the configuration is usable.
func (c ScanConfig) Validate() error {
	if c.SampleRate <= 0 || !IsFinite(c.SampleRate) {
		return fmt.Errorf("%w: sample rate must be > 0: %v", ErrInvalidScan, c.SampleRate)
	}

	if c.WindowSize <= 0 {
		return fmt.Errorf("%w: window size must be > 0: %d", ErrInvalidScan, c.WindowSize)
	}

	if c.HopSize <= 0 {
		return fmt.Errorf("%w: hop size must be > 0: %d", ErrInvalidScan, c.HopSize)
	}

	return nil
}

// Hops returns the number of windows that fit into a buffer of length n.
// Buffers shorter than one window yield zero hops.
func (c ScanConfig) Hops(n int) int {
	if c.HopSize <= 0 || c.WindowSize <= 0 || n < c.WindowSize {
		return 0
	}

	return (n-c.WindowSize)/c.HopSize + 1
}

// FramesFor converts a duration in seconds to a whole number of hops,
// rounded to nearest.
func (c ScanConfig) FramesFor(seconds float64) int {
	if c.HopSize <= 0 {
		return 0
	}

	return int(math.Round(seconds * c.SampleRate / float64(c.HopSize)))
}
