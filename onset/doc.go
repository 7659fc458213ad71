// Package onset finds perceptual events in a mono sample buffer.
//
// Two detectors share the same shape: a fixed-size window slides over the
// buffer in hop-sized steps, a scalar feature is measured per window and a
// small state machine with a refractory cooldown decides whether the window
// start is an event.
//
//   - [BeatDetector] tracks window energy against an exponential moving
//     average and reports sudden rises (beats).
//   - [FrequencyChangeDetector] tracks the band-limited spectral centroid
//     against a reference and reports large relative jumps.
//
// Both return strictly increasing sample offsets of window starts. Detection
// never fails; invalid parameters are rejected by the constructors.
// Detectors are immutable after construction and safe for concurrent use.
// Each Detect call owns its own state.
package onset
