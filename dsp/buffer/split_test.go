package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundsArraySplit(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		sections int
		sizes    []int
	}{
		{name: "even", n: 10, sections: 5, sizes: []int{2, 2, 2, 2, 2}},
		{name: "remainder first", n: 11, sections: 3, sizes: []int{4, 4, 3}},
		{name: "more sections than samples", n: 3, sections: 10, sizes: []int{1, 1, 1}},
		{name: "zero sections", n: 4, sections: 0, sizes: []int{4}},
		{name: "empty", n: 0, sections: 3, sizes: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Bounds(tt.n, tt.sections)
			require.Len(t, b, len(tt.sizes))

			prev := 0
			for i, r := range b {
				require.Equal(t, prev, r[0], "section %d start", i)
				require.Equal(t, tt.sizes[i], r[1]-r[0], "section %d size", i)
				prev = r[1]
			}

			if len(b) > 0 {
				assert.Equal(t, tt.n, prev, "sections must cover every sample")
			}
		})
	}
}

func TestSplitViews(t *testing.T) {
	samples := []float64{0, 1, 2, 3, 4, 5, 6}
	chunks := Split(samples, 3)
	require.Len(t, chunks, 3)
	assert.Equal(t, []float64{0, 1, 2}, chunks[0])
	assert.Equal(t, []float64{3, 4}, chunks[1])
	assert.Equal(t, []float64{5, 6}, chunks[2])

	// Appending to a view must not overwrite the next chunk.
	_ = append(chunks[0], 99)
	assert.Equal(t, 3.0, samples[3])
}
