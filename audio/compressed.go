package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/tphakala/flac"
)

// int16Scale maps [-1, 1] floating-point samples to the 16-bit PCM range.
const int16Scale = 32768.0

// appendLE appends the signed little-endian PCM samples in raw to dst.
// width is the sample size in bytes (2, 3 or 4); a trailing partial sample
// is ignored.
func appendLE(dst []float64, raw []byte, width int) ([]float64, error) {
	switch width {
	case 2:
		for i := 0; i+2 <= len(raw); i += 2 {
			dst = append(dst, float64(int16(binary.LittleEndian.Uint16(raw[i:]))))
		}
	case 3:
		for i := 0; i+3 <= len(raw); i += 3 {
			v := int32(raw[i]) | int32(raw[i+1])<<8 | int32(raw[i+2])<<16
			if v&0x800000 != 0 {
				v |= -1 << 24
			}
			dst = append(dst, float64(v))
		}
	case 4:
		for i := 0; i+4 <= len(raw); i += 4 {
			dst = append(dst, float64(int32(binary.LittleEndian.Uint32(raw[i:]))))
		}
	default:
		return dst, fmt.Errorf("%w: unsupported sample width %d bytes", ErrInvalidFile, width)
	}

	return dst, nil
}

// MP3Decoder decodes MPEG-1/2 Layer III streams. go-mp3 always produces
// 16-bit little-endian stereo.
type MP3Decoder struct{}

// Decode implements Decoder.
func (MP3Decoder) Decode(r io.Reader) (*Track, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	samples, err := appendLE(make([]float64, 0, len(raw)/2), raw, 2)
	if err != nil {
		return nil, err
	}

	return newTrack(samples, 2, dec.SampleRate(), 16)
}

// VorbisDecoder decodes Ogg Vorbis streams. Samples are rescaled from
// [-1, 1] to the 16-bit PCM range.
type VorbisDecoder struct{}

// Decode implements Decoder.
func (VorbisDecoder) Decode(r io.Reader) (*Track, error) {
	data, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	samples := make([]float64, len(data))
	for i, v := range data {
		samples[i] = float64(v) * int16Scale
	}

	return newTrack(samples, format.Channels, format.SampleRate, 16)
}

// FLACDecoder decodes FLAC streams with 16, 24 or 32 bits per sample.
type FLACDecoder struct{}

// Decode implements Decoder.
func (FLACDecoder) Decode(r io.Reader) (*Track, error) {
	dec, err := flac.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	bits := dec.BitsPerSample
	if bits != 16 && bits != 24 && bits != 32 {
		return nil, fmt.Errorf("%w: unsupported FLAC bit depth %d", ErrInvalidFile, bits)
	}

	var samples []float64
	for {
		frame, err := dec.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
		}

		if samples, err = appendLE(samples, frame, bits/8); err != nil {
			return nil, err
		}
	}

	return newTrack(samples, dec.NChannels, dec.SampleRate, bits)
}
