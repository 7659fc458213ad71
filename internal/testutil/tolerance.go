package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		require.Falsef(t, math.IsNaN(v) || math.IsInf(v, 0), "index %d: non-finite value %v", i, v)
	}
}

// RequireStrictlyIncreasing fails t unless every index is larger than the
// one before it.
func RequireStrictlyIncreasing(t *testing.T, idx []int) {
	t.Helper()
	for i := 1; i < len(idx); i++ {
		require.Greaterf(t, idx[i], idx[i-1], "index %d of %v", i, idx)
	}
}

// RequireSpectrumNearlyEqual fails t unless got and want have the same
// length and every bin differs by at most rel times the largest magnitude
// in want.
func RequireSpectrumNearlyEqual(t *testing.T, want, got []float64, rel float64) {
	t.Helper()
	require.Len(t, got, len(want))

	peak := 0.0
	for _, v := range want {
		peak = max(peak, math.Abs(v))
	}

	require.InDeltaSlice(t, want, got, rel*peak)
}
