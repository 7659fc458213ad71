// Package buffer partitions sample buffers into near-equal chunks and
// provides a pooled scratch buffer for per-chunk transforms. Chunks are views
// into the caller's slice; nothing here copies or mutates input samples.
package buffer
