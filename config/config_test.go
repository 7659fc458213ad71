package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-onset/batch"
	"github.com/cwbudde/algo-onset/dsp/window"
	"github.com/cwbudde/algo-onset/onset"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Default().Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "samples-per-chunk")

	cfg, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
beats:
  sensitivity: 1.5
frequency_changes:
  window: rectangular
spectrum:
  policy: values-per-second
  values_per_second: 30
`))
	require.NoError(t, err)

	assert.Equal(t, 1.5, cfg.Beats.Sensitivity)
	assert.Equal(t, 1024, cfg.Beats.WindowSize)
	assert.Equal(t, "rectangular", cfg.FrequencyChanges.Window)
	assert.Equal(t, 2048, cfg.FrequencyChanges.WindowSize)
	assert.Equal(t, batch.PolicyValuesPerSecond, cfg.Spectrum.Policy)
	assert.Equal(t, 30.0, cfg.Spectrum.ValuesPerSecond)

	opts, err := cfg.AnalysisOptions()
	require.NoError(t, err)
	assert.Len(t, opts.Beats, 4)
	assert.Len(t, opts.FrequencyChanges, 7)
	assert.Equal(t, batch.PolicyValuesPerSecond, opts.Spectrum.Policy)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("beats:\n  hop_size: 0\n"))
	require.ErrorIs(t, err, onset.ErrInvalidParameter)

	_, err = Parse([]byte("frequency_changes:\n  window: kaiser\n"))
	require.ErrorIs(t, err, window.ErrUnknownType)

	_, err = Parse([]byte("spectrum:\n  samples_per_chunk: -1\n"))
	require.ErrorIs(t, err, batch.ErrInvalidConfig)

	_, err = Parse([]byte("spectrum:\n  policy: fps\n"))
	require.Error(t, err)

	_, err = Parse([]byte("beats: [unterminated"))
	require.Error(t, err)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestHotConfigReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "onset.yaml")
	writeFile(t, path, "beats:\n  sensitivity: 1.4\n")

	hc, err := NewHotConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 1.4, hc.Get().Beats.Sensitivity)

	var got *Config
	hc.OnReload(func(c *Config) { got = c })

	writeFile(t, path, "beats:\n  sensitivity: 2\n")
	require.NoError(t, hc.Reload())
	require.NotNil(t, got)
	assert.Equal(t, 2.0, got.Beats.Sensitivity)

	writeFile(t, path, "beats:\n  sensitivity: -1\n")
	require.Error(t, hc.Reload())
	assert.Equal(t, 2.0, hc.Get().Beats.Sensitivity)
}

func TestHotConfigWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "onset.yaml")
	writeFile(t, path, "beats:\n  sensitivity: 1.4\n")

	hc, err := NewHotConfig(path, nil)
	require.NoError(t, err)

	reloaded := make(chan *Config, 8)
	hc.OnReload(func(c *Config) { reloaded <- c })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, hc.Watch(ctx))

	writeFile(t, path, "beats:\n  sensitivity: 1.8\n")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case c := <-reloaded:
			if c.Beats.Sensitivity == 1.8 {
				assert.Equal(t, 1.8, hc.Get().Beats.Sensitivity)
				return
			}
		case <-deadline:
			t.Fatal("config was not reloaded")
		}
	}
}
