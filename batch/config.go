package batch

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"strings"
)

// Policy selects how the chunk count is derived.
type Policy int

const (
	// PolicySamplesPerChunk uses round(sampleRate·duration/samplesPerChunk)
	// chunks.
	PolicySamplesPerChunk Policy = iota
	// PolicyValuesPerSecond uses round(valuesPerSecond·duration) chunks.
	PolicyValuesPerSecond
)

// Default chunking: 2000 samples per chunk at 44.1 kHz, or 20 frames per
// second.
const (
	DefaultSamplesPerChunk = 2000
	DefaultValuesPerSecond = 20.0
	DefaultSampleRate      = 44100.0
)

// ErrInvalidConfig is wrapped by Config.Validate errors.
var ErrInvalidConfig = errors.New("batch: invalid config")

var policyNames = map[Policy]string{
	PolicySamplesPerChunk: "samples-per-chunk",
	PolicyValuesPerSecond: "values-per-second",
}

func (p Policy) String() string {
	if n, ok := policyNames[p]; ok {
		return n
	}

	return fmt.Sprintf("policy(%d)", int(p))
}

// ParsePolicy resolves a configuration name. An empty name selects
// PolicySamplesPerChunk.
func ParsePolicy(name string) (Policy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return PolicySamplesPerChunk, nil
	}

	for p, n := range policyNames {
		if n == name {
			return p, nil
		}
	}

	return 0, fmt.Errorf("%w: unknown policy %q", ErrInvalidConfig, name)
}

// MarshalText implements encoding.TextMarshaler.
func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Policy) UnmarshalText(b []byte) error {
	v, err := ParsePolicy(string(b))
	if err != nil {
		return err
	}

	*p = v

	return nil
}

// Config controls chunking and parallelism.
type Config struct {
	Policy          Policy
	SamplesPerChunk int
	ValuesPerSecond float64
	SampleRate      float64
	// Workers bounds the number of concurrent transforms; zero means
	// GOMAXPROCS.
	Workers int
}

// DefaultConfig returns the samples-per-chunk policy at 2000 samples per
// chunk and 44.1 kHz.
func DefaultConfig() Config {
	return Config{
		Policy:          PolicySamplesPerChunk,
		SamplesPerChunk: DefaultSamplesPerChunk,
		ValuesPerSecond: DefaultValuesPerSecond,
		SampleRate:      DefaultSampleRate,
	}
}

// Validate reports whether the config can drive a Producer.
func (c Config) Validate() error {
	if c.SampleRate <= 0 || math.IsNaN(c.SampleRate) || math.IsInf(c.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate must be > 0: %v", ErrInvalidConfig, c.SampleRate)
	}

	switch c.Policy {
	case PolicySamplesPerChunk:
		if c.SamplesPerChunk <= 0 {
			return fmt.Errorf("%w: samples per chunk must be > 0: %d", ErrInvalidConfig, c.SamplesPerChunk)
		}
	case PolicyValuesPerSecond:
		if c.ValuesPerSecond <= 0 || math.IsNaN(c.ValuesPerSecond) || math.IsInf(c.ValuesPerSecond, 0) {
			return fmt.Errorf("%w: values per second must be > 0: %v", ErrInvalidConfig, c.ValuesPerSecond)
		}
	default:
		return fmt.Errorf("%w: unknown policy %d", ErrInvalidConfig, int(c.Policy))
	}

	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0: %d", ErrInvalidConfig, c.Workers)
	}

	return nil
}

// ChunkCount returns the number of chunks for a buffer of n samples lasting
// duration seconds, clamped to [1, n]. An empty buffer has no chunks.
func (c Config) ChunkCount(n int, duration float64) int {
	if n <= 0 {
		return 0
	}

	var count float64
	switch c.Policy {
	case PolicyValuesPerSecond:
		count = c.ValuesPerSecond * duration
	default:
		count = c.SampleRate * duration / float64(c.SamplesPerChunk)
	}

	k := int(math.Round(count))
	if k < 1 {
		return 1
	}

	if k > n {
		return n
	}

	return k
}

// FrameRate returns the number of frames per second of audio the policy
// aims for.
func (c Config) FrameRate() float64 {
	if c.Policy == PolicyValuesPerSecond {
		return c.ValuesPerSecond
	}

	return c.SampleRate / float64(c.SamplesPerChunk)
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}

	return runtime.GOMAXPROCS(0)
}
