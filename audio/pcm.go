package audio

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// seekable returns r as an io.ReadSeeker, buffering it in memory when needed.
// go-audio decoders seek between chunks.
func seekable(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading data: %w", err)
	}

	return bytes.NewReader(data), nil
}

func intBufferTrack(buf *goaudio.IntBuffer, bitDepth int) (*Track, error) {
	if buf == nil || buf.Format == nil {
		return nil, ErrInvalidFile
	}

	samples := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float64(v)
	}

	return newTrack(samples, buf.Format.NumChannels, buf.Format.SampleRate, bitDepth)
}

// WAVDecoder decodes RIFF/WAVE PCM files.
type WAVDecoder struct{}

// Decode implements Decoder.
func (WAVDecoder) Decode(r io.Reader) (*Track, error) {
	rs, err := seekable(r)
	if err != nil {
		return nil, err
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not a WAV file", ErrInvalidFile)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	return intBufferTrack(buf, int(dec.BitDepth))
}

// AIFFDecoder decodes AIFF PCM files.
type AIFFDecoder struct{}

// Decode implements Decoder.
func (AIFFDecoder) Decode(r io.Reader) (*Track, error) {
	rs, err := seekable(r)
	if err != nil {
		return nil, err
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not an AIFF file", ErrInvalidFile)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	return intBufferTrack(buf, int(dec.BitDepth))
}
