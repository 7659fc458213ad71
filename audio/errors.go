package audio

import "errors"

var (
	ErrUnknownFormat = errors.New("audio: unknown format")
	ErrInvalidFile   = errors.New("audio: invalid file")
	ErrNoSamples     = errors.New("audio: no samples")
)
