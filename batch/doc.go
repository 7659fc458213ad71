// Package batch precomputes the spectrum frames a visualizer steps through
// during playback.
//
// A buffer is split into contiguous chunks with array-split semantics (the
// first len%count chunks are one sample longer) and every chunk is mapped
// through [spectrum.Transformer.Full]. The number of chunks follows one of
// two policies: a fixed number of samples per chunk, or a fixed number of
// frames per second of audio.
package batch
