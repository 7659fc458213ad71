// Package audio decodes audio files into per-channel sample buffers for
// analysis.
//
// Decoders are looked up by format key in a [Registry]; [DefaultRegistry]
// knows WAV, AIFF, FLAC, MP3 and Ogg Vorbis. Samples keep the integer scale of the
// source PCM (a 16-bit file spans ±32768), so level thresholds behave the
// same regardless of container. Formats that decode to floating point are
// rescaled to the 16-bit range.
package audio
