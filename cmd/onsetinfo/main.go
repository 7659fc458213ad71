// Command onsetinfo prints the beats, frequency changes and spectrum frames
// found in an audio file.
//
// Usage:
//
//	onsetinfo [flags] file ...
//
// Examples:
//
//	onsetinfo song.wav
//	onsetinfo -format json -no-spectrum song.mp3
//	onsetinfo -config onset.yaml -frames 20 song.ogg
//	onsetinfo -config onset.yaml -watch song.wav
//	onsetinfo -list
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/cwbudde/algo-onset/analysis"
	"github.com/cwbudde/algo-onset/audio"
	"github.com/cwbudde/algo-onset/batch"
	"github.com/cwbudde/algo-onset/config"
	"github.com/cwbudde/algo-onset/stats/frequency"
	timestats "github.com/cwbudde/algo-onset/stats/time"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}

		slog.Error("onsetinfo failed", "err", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	format     string
	frames     int
	noSpectrum bool
	watch      bool
	verbose    bool
	list       bool

	beatSensitivity float64
	freqSensitivity float64
	window          string
	policy          string
	valuesPerSecond float64
	samplesPerChunk int
	workers         int

	set map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (*options, []string, error) {
	fs := flag.NewFlagSet("onsetinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)

	o := &options{}
	fs.StringVar(&o.configPath, "config", "", "YAML config file (defaults apply when empty)")
	fs.StringVar(&o.format, "format", "text", "output format: text or json")
	fs.IntVar(&o.frames, "frames", 0, "print a summary of the first N spectrum frames (text format)")
	fs.BoolVar(&o.noSpectrum, "no-spectrum", false, "skip spectrum frame production")
	fs.BoolVar(&o.watch, "watch", false, "re-run whenever the config file changes (requires -config)")
	fs.BoolVar(&o.verbose, "v", false, "verbose logging")
	fs.BoolVar(&o.list, "list", false, "list supported file formats")
	fs.Float64Var(&o.beatSensitivity, "beat-sensitivity", 0, "override beats.sensitivity")
	fs.Float64Var(&o.freqSensitivity, "freq-sensitivity", 0, "override frequency_changes.sensitivity")
	fs.StringVar(&o.window, "window", "", "override frequency_changes.window (rectangular, hann, hamming, blackman)")
	fs.StringVar(&o.policy, "policy", "", "override spectrum.policy (samples-per-chunk, values-per-second)")
	fs.Float64Var(&o.valuesPerSecond, "values-per-second", 0, "override spectrum.values_per_second")
	fs.IntVar(&o.samplesPerChunk, "samples-per-chunk", 0, "override spectrum.samples_per_chunk")
	fs.IntVar(&o.workers, "workers", 0, "override spectrum.workers")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: onsetinfo [flags] file ...\n\n")
		fmt.Fprintf(stderr, "Prints beats, frequency changes and spectrum frames of audio files.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  onsetinfo song.wav\n")
		fmt.Fprintf(stderr, "  onsetinfo -format json -no-spectrum song.mp3\n")
		fmt.Fprintf(stderr, "  onsetinfo -config onset.yaml -watch song.wav\n")
	}

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	o.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })

	return o, fs.Args(), nil
}

// override applies explicitly set flags on top of cfg.
func (o *options) override(cfg *config.Config) error {
	if o.set["beat-sensitivity"] {
		cfg.Beats.Sensitivity = o.beatSensitivity
	}

	if o.set["freq-sensitivity"] {
		cfg.FrequencyChanges.Sensitivity = o.freqSensitivity
	}

	if o.set["window"] {
		cfg.FrequencyChanges.Window = o.window
	}

	if o.set["policy"] {
		p, err := batch.ParsePolicy(o.policy)
		if err != nil {
			return err
		}

		cfg.Spectrum.Policy = p
	}

	if o.set["values-per-second"] {
		cfg.Spectrum.ValuesPerSecond = o.valuesPerSecond
	}

	if o.set["samples-per-chunk"] {
		cfg.Spectrum.SamplesPerChunk = o.samplesPerChunk
	}

	if o.set["workers"] {
		cfg.Spectrum.Workers = o.workers
	}

	return cfg.Validate()
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	o, files, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	registry := audio.DefaultRegistry()

	if o.list {
		for _, f := range registry.Formats() {
			fmt.Fprintln(stdout, f)
		}

		return nil
	}

	if o.format != "text" && o.format != "json" {
		return fmt.Errorf("unknown format %q", o.format)
	}

	if len(files) == 0 {
		return errors.New("no input files (see -h)")
	}

	if o.watch && o.configPath == "" {
		return errors.New("-watch requires -config")
	}

	tracks := make([]namedTrack, 0, len(files))
	for _, path := range files {
		t, err := registry.Open(path)
		if err != nil {
			return err
		}

		logger.Debug("decoded", "file", path, "rate", t.SampleRate, "channels", t.Channels, "seconds", t.Duration)
		tracks = append(tracks, namedTrack{path: path, track: t})
	}

	if !o.watch {
		cfg := config.Default()
		if o.configPath != "" {
			if cfg, err = config.Load(o.configPath); err != nil {
				return err
			}
		}

		return analyze(ctx, cfg, o, tracks, stdout, logger)
	}

	hc, err := config.NewHotConfig(o.configPath, logger)
	if err != nil {
		return err
	}

	if err := analyze(ctx, hc.Get(), o, tracks, stdout, logger); err != nil {
		return err
	}

	hc.OnReload(func(c *config.Config) {
		if err := analyze(ctx, c, o, tracks, stdout, logger); err != nil {
			logger.Error("analysis failed", "err", err)
		}
	})

	if err := hc.Watch(ctx); err != nil {
		return err
	}

	logger.Info("watching config", "path", o.configPath)
	<-ctx.Done()

	return nil
}

type namedTrack struct {
	path  string
	track *audio.Track
}

func analyze(ctx context.Context, base *config.Config, o *options, tracks []namedTrack, stdout io.Writer, logger *slog.Logger) error {
	cfg := *base
	if err := o.override(&cfg); err != nil {
		return err
	}

	opts, err := cfg.AnalysisOptions()
	if err != nil {
		return err
	}

	opts.SkipSpectrum = o.noSpectrum

	results := make([]fileReport, 0, len(tracks))
	for _, nt := range tracks {
		report, err := analysis.Run(ctx, nt.track, opts)
		if err != nil {
			return fmt.Errorf("%s: %w", nt.path, err)
		}

		logger.Debug("analysed", "file", nt.path, "beats", len(report.Beats), "frequency_changes", len(report.FrequencyChanges))
		results = append(results, newFileReport(nt.path, nt.track, report, o.frames))
	}

	if o.format == "json" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")

		return enc.Encode(results)
	}

	for _, r := range results {
		if err := printText(stdout, r); err != nil {
			return err
		}
	}

	return nil
}

type frameSummary struct {
	Index    int     `json:"index"`
	Bins     int     `json:"bins"`
	Status   string  `json:"status"`
	PeakHz   float64 `json:"peak_hz"`
	Centroid float64 `json:"centroid_hz"`
	Rolloff  float64 `json:"rolloff_hz"`
	Flatness float64 `json:"flatness"`
}

// levelSummary describes the channel onsets are detected on, in native
// sample scale.
type levelSummary struct {
	RMS           float64 `json:"rms"`
	Peak          float64 `json:"peak"`
	PeakSeconds   float64 `json:"peak_seconds"`
	DC            float64 `json:"dc"`
	CrestFactor   float64 `json:"crest_factor"`
	ZeroCrossings int     `json:"zero_crossings"`
}

func newLevelSummary(line []float64, sampleRate int) levelSummary {
	s := timestats.Calculate(line)

	l := levelSummary{
		RMS:           s.RMS,
		Peak:          s.Peak,
		DC:            s.DC,
		CrestFactor:   s.CrestFactor,
		ZeroCrossings: s.ZeroCrossings,
	}
	if sampleRate > 0 {
		l.PeakSeconds = float64(s.PeakPos) / float64(sampleRate)
	}

	return l
}

type fileReport struct {
	File                 string         `json:"file"`
	SampleRate           int            `json:"sample_rate"`
	Channels             int            `json:"channels"`
	Duration             float64        `json:"duration_seconds"`
	Level                levelSummary   `json:"level"`
	Beats                []int          `json:"beats"`
	BeatTimes            []float64      `json:"beat_times"`
	FrequencyChanges     []int          `json:"frequency_changes"`
	FrequencyChangeTimes []float64      `json:"frequency_change_times"`
	SpectrumFrames       int            `json:"spectrum_frames"`
	DegenerateFrames     int            `json:"degenerate_frames"`
	FrameRate            float64        `json:"frame_rate,omitempty"`
	Frames               []frameSummary `json:"frames,omitempty"`
}

func newFileReport(path string, track *audio.Track, r *analysis.Report, frames int) fileReport {
	fr := fileReport{
		File:                 path,
		SampleRate:           r.SampleRate,
		Channels:             r.Channels,
		Duration:             r.Duration,
		Level:                newLevelSummary(track.Line(), track.SampleRate),
		Beats:                r.Beats,
		BeatTimes:            r.BeatTimes(),
		FrequencyChanges:     r.FrequencyChanges,
		FrequencyChangeTimes: r.FrequencyChangeTimes(),
	}

	if r.Spectrum == nil {
		return fr
	}

	fr.SpectrumFrames = r.Spectrum.Len()
	fr.FrameRate = r.Spectrum.FrameRate

	for i, f := range r.Spectrum.Frames {
		if f.Degenerate() {
			fr.DegenerateFrames++
		}

		if i >= frames {
			continue
		}

		s := frequency.Calculate(f.Frequencies, f.Magnitudes)
		fr.Frames = append(fr.Frames, frameSummary{
			Index:    i,
			Bins:     f.Len(),
			Status:   f.Status.String(),
			PeakHz:   s.PeakFreq,
			Centroid: s.Centroid,
			Rolloff:  s.Rolloff,
			Flatness: s.Flatness,
		})
	}

	return fr
}

func printText(w io.Writer, r fileReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "File\t%s\n", r.File)
	fmt.Fprintf(tw, "Sample rate\t%d Hz\n", r.SampleRate)
	fmt.Fprintf(tw, "Channels\t%d\n", r.Channels)
	fmt.Fprintf(tw, "Duration\t%.3f s\n", r.Duration)
	fmt.Fprintf(tw, "Level\tRMS %.1f\tpeak %.0f at %.3f s\tcrest %.2f\n",
		r.Level.RMS, r.Level.Peak, r.Level.PeakSeconds, r.Level.CrestFactor)
	fmt.Fprintf(tw, "Beats\t%d\t%s\n", len(r.Beats), formatTimes(r.BeatTimes))
	fmt.Fprintf(tw, "Frequency changes\t%d\t%s\n", len(r.FrequencyChanges), formatTimes(r.FrequencyChangeTimes))
	fmt.Fprintf(tw, "Spectrum frames\t%d\t(%d degenerate)\n", r.SpectrumFrames, r.DegenerateFrames)

	if len(r.Frames) > 0 {
		fmt.Fprintf(tw, "\nFrame\tBins\tStatus\tPeak [Hz]\tCentroid [Hz]\tRolloff [Hz]\tFlatness\n")
		fmt.Fprintf(tw, "-----\t----\t------\t---------\t-------------\t------------\t--------\n")

		for _, f := range r.Frames {
			fmt.Fprintf(tw, "%d\t%d\t%s\t%.1f\t%.1f\t%.1f\t%.4f\n",
				f.Index, f.Bins, f.Status, f.PeakHz, f.Centroid, f.Rolloff, f.Flatness)
		}
	}

	fmt.Fprintln(tw)

	return tw.Flush()
}

func formatTimes(ts []float64) string {
	if len(ts) == 0 {
		return "-"
	}

	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = fmt.Sprintf("%.3f", t)
	}

	return strings.Join(parts, " ")
}
