package audio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Decoder turns an encoded stream into a Track.
type Decoder interface {
	Decode(r io.Reader) (*Track, error)
}

// DecoderFunc adapts a function to Decoder.
type DecoderFunc func(r io.Reader) (*Track, error)

// Decode calls f(r).
func (f DecoderFunc) Decode(r io.Reader) (*Track, error) { return f(r) }

// Registry maps format keys (lower-case file extensions without the dot) to
// decoders. It is safe for concurrent use.
type Registry struct {
	codecs map[string]Decoder
	mtx    sync.RWMutex
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Decoder)}
}

// DefaultRegistry returns a registry with the built-in decoders:
// wav/wave, aiff/aif, flac, mp3 and ogg/oga.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("wav", WAVDecoder{})
	r.Register("wave", WAVDecoder{})
	r.Register("aiff", AIFFDecoder{})
	r.Register("aif", AIFFDecoder{})
	r.Register("flac", FLACDecoder{})
	r.Register("mp3", MP3Decoder{})
	r.Register("ogg", VorbisDecoder{})
	r.Register("oga", VorbisDecoder{})

	return r
}

// Register adds or replaces the decoder for format.
func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[normalizeFormat(format)] = d
}

// Get returns the decoder for format.
func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	d, ok := r.codecs[normalizeFormat(format)]

	return d, ok
}

// Formats returns the registered format keys in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	out := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		out = append(out, k)
	}

	sort.Strings(out)

	return out
}

// Decode decodes r with the decoder registered for format.
func (r *Registry) Decode(format string, in io.Reader) (*Track, error) {
	d, ok := r.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	return d.Decode(in)
}

// Open decodes the file at path, choosing the decoder by extension.
func (r *Registry) Open(path string) (*Track, error) {
	format := FormatFromPath(path)
	if _, ok := r.Get(format); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Base(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	t, err := r.Decode(format, f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}

	return t, nil
}

// FormatFromPath returns the lower-case extension of path without the dot.
func FormatFromPath(path string) string {
	return normalizeFormat(filepath.Ext(path))
}

func normalizeFormat(format string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(format)), ".")
}
