package frequency_test

import (
	"fmt"

	frequencystats "github.com/cwbudde/algo-onset/stats/frequency"
)

func ExampleCalculate() {
	freqs := []float64{0, 1000, 2000, 3000, 4000}
	mag := []float64{0, 1, 2, 1, 0}
	s := frequencystats.Calculate(freqs, mag)
	fmt.Printf("centroid=%.0f rolloff=%.0f peak=%.0f\n", s.Centroid, s.Rolloff, s.PeakFreq)

	// Output:
	// centroid=2000 rolloff=3000 peak=2000
}

func ExampleWeightedCentroid() {
	c, ok := frequencystats.WeightedCentroid([]float64{100, 300}, []float64{1, 1})
	fmt.Println(c, ok)

	// Output:
	// 200 true
}
