package spectrum

// EmptyFallbackSize is the length of the zero spectrum substituted for an
// empty window.
const EmptyFallbackSize = 2048

// Status tags a Frame as a real spectrum or a zero-filled substitute.
type Status int

const (
	// StatusOK marks a frame computed from the window.
	StatusOK Status = iota
	// StatusDegenerate marks a zero-filled substitute for a window with no
	// usable spectral content (empty, all-zero or non-finite).
	StatusDegenerate
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusDegenerate:
		return "degenerate"
	default:
		return "unknown"
	}
}

// Frame holds parallel bin frequencies and magnitudes of one window.
// Both slices always have the same length.
type Frame struct {
	Frequencies []float64
	Magnitudes  []float64
	Status      Status
}

// Len returns the number of bins.
func (f Frame) Len() int { return len(f.Magnitudes) }

// Degenerate reports whether the frame is a zero-filled substitute.
func (f Frame) Degenerate() bool { return f.Status == StatusDegenerate }

// Fallback returns a degenerate frame of n zero frequencies and magnitudes.
func Fallback(n int) Frame {
	if n < 0 {
		n = 0
	}

	return Frame{
		Frequencies: make([]float64, n),
		Magnitudes:  make([]float64, n),
		Status:      StatusDegenerate,
	}
}
