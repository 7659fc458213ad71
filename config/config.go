// Package config loads analysis settings from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-onset/analysis"
	"github.com/cwbudde/algo-onset/batch"
	"github.com/cwbudde/algo-onset/dsp/window"
	"github.com/cwbudde/algo-onset/onset"
)

type Config struct {
	Beats            BeatConfig      `yaml:"beats"`
	FrequencyChanges FrequencyConfig `yaml:"frequency_changes"`
	Spectrum         SpectrumConfig  `yaml:"spectrum"`
}

type BeatConfig struct {
	WindowSize  int     `yaml:"window_size"`
	HopSize     int     `yaml:"hop_size"`
	Sensitivity float64 `yaml:"sensitivity"` // energy ratio over the moving average
	Cooldown    float64 `yaml:"cooldown"`    // seconds
}

type FrequencyConfig struct {
	WindowSize       int     `yaml:"window_size"`
	HopSize          int     `yaml:"hop_size"`
	Sensitivity      float64 `yaml:"sensitivity"` // relative centroid change
	Cooldown         float64 `yaml:"cooldown"`    // seconds
	SilenceThreshold float64 `yaml:"silence_threshold"`
	Window           string  `yaml:"window"` // rectangular, hann, hamming, blackman
	BandLowHz        float64 `yaml:"band_low_hz"`
	BandHighHz       float64 `yaml:"band_high_hz"`
}

type SpectrumConfig struct {
	Policy          batch.Policy `yaml:"policy"` // samples-per-chunk or values-per-second
	SamplesPerChunk int          `yaml:"samples_per_chunk"`
	ValuesPerSecond float64      `yaml:"values_per_second"`
	Workers         int          `yaml:"workers"` // 0 = GOMAXPROCS
}

// Default returns the detector and spectrum defaults: 1024/512 beat windows,
// 2048/1024 frequency windows and 2000 samples per chunk at 44.1 kHz.
func Default() *Config {
	return &Config{
		Beats: BeatConfig{
			WindowSize:  1024,
			HopSize:     512,
			Sensitivity: 1.3,
			Cooldown:    0.1,
		},
		FrequencyChanges: FrequencyConfig{
			WindowSize:       2048,
			HopSize:          1024,
			Sensitivity:      0.3,
			Cooldown:         0.2,
			SilenceThreshold: 0.01,
			Window:           window.TypeHann.String(),
			BandLowHz:        20,
			BandHighHz:       20000,
		},
		Spectrum: SpectrumConfig{
			Policy:          batch.PolicySamplesPerChunk,
			SamplesPerChunk: batch.DefaultSamplesPerChunk,
			ValuesPerSecond: batch.DefaultValuesPerSecond,
		},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result. Keys that
// are absent keep their default value.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Marshal encodes the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks every setting by building the detectors and the spectrum
// producer at the default sample rate.
func (c *Config) Validate() error {
	opts, err := c.AnalysisOptions()
	if err != nil {
		return err
	}

	if _, err := onset.NewBeatDetector(opts.Beats...); err != nil {
		return fmt.Errorf("invalid beats config: %w", err)
	}

	if _, err := onset.NewFrequencyChangeDetector(opts.FrequencyChanges...); err != nil {
		return fmt.Errorf("invalid frequency_changes config: %w", err)
	}

	if err := opts.Spectrum.Validate(); err != nil {
		return fmt.Errorf("invalid spectrum config: %w", err)
	}

	return nil
}

// AnalysisOptions converts the config to pipeline options. The sample rate
// is left at its default; analysis.Run replaces it with the track's rate.
func (c *Config) AnalysisOptions() (analysis.Options, error) {
	taper, err := window.Parse(c.FrequencyChanges.Window)
	if err != nil {
		return analysis.Options{}, fmt.Errorf("invalid frequency_changes config: %w", err)
	}

	b := c.Beats
	f := c.FrequencyChanges
	s := c.Spectrum

	spectrum := batch.DefaultConfig()
	spectrum.Policy = s.Policy
	spectrum.SamplesPerChunk = s.SamplesPerChunk
	spectrum.ValuesPerSecond = s.ValuesPerSecond
	spectrum.Workers = s.Workers

	return analysis.Options{
		Beats: []onset.Option{
			onset.WithWindowSize(b.WindowSize),
			onset.WithHopSize(b.HopSize),
			onset.WithSensitivity(b.Sensitivity),
			onset.WithCooldown(b.Cooldown),
		},
		FrequencyChanges: []onset.Option{
			onset.WithWindowSize(f.WindowSize),
			onset.WithHopSize(f.HopSize),
			onset.WithSensitivity(f.Sensitivity),
			onset.WithCooldown(f.Cooldown),
			onset.WithSilenceThreshold(f.SilenceThreshold),
			onset.WithWindow(taper),
			onset.WithBand(f.BandLowHz, f.BandHighHz),
		},
		Spectrum: spectrum,
	}, nil
}
