package buffer

// Bounds returns the [start, end) offsets of sections near-equal partitions of
// a buffer of length n. The first n%sections partitions are one sample longer
// than the rest. sections is clamped to [1, n] for n > 0; n == 0 yields no
// partitions.
func Bounds(n, sections int) [][2]int {
	if n <= 0 {
		return nil
	}

	if sections < 1 {
		sections = 1
	}

	if sections > n {
		sections = n
	}

	base := n / sections
	extra := n % sections

	out := make([][2]int, sections)
	start := 0
	for i := range out {
		size := base
		if i < extra {
			size++
		}
		out[i] = [2]int{start, start + size}
		start += size
	}

	return out
}

// Split partitions samples into sections near-equal views following the same
// rule as Bounds.
func Split(samples []float64, sections int) [][]float64 {
	bounds := Bounds(len(samples), sections)
	if bounds == nil {
		return nil
	}

	out := make([][]float64, len(bounds))
	for i, b := range bounds {
		out[i] = samples[b[0]:b[1]:b[1]]
	}

	return out
}
