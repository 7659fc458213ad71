// Package spectrum turns fixed-size sample windows into magnitude spectra.
//
// Two variants are provided. [Transformer.Full] produces display frames:
// the window is peak-normalised, quantised to
// the signed 16-bit range and transformed with a full complex FFT whose bin
// frequencies follow the fftfreq convention (negative frequencies in the
// upper half). Degenerate windows (empty, all-zero, non-finite) are not
// errors; they yield a zero-filled [Frame] tagged [StatusDegenerate].
//
// [Analyzer] is the half-spectrum variant used by onset detectors. It runs a
// real-input FFT on raw samples, keeps only the bins inside an audible band
// (20 Hz to 20 kHz by default) and exposes the band-limited spectral centroid.
package spectrum
