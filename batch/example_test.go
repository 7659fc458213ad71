package batch_test

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-onset/batch"
)

func ExampleProducer_Produce() {
	cfg := batch.DefaultConfig()
	cfg.Policy = batch.PolicyValuesPerSecond
	cfg.ValuesPerSecond = 4

	p, err := batch.New(cfg)
	if err != nil {
		panic(err)
	}

	s, err := p.Produce(context.Background(), make([]float64, 44100), 1)
	if err != nil {
		panic(err)
	}

	f, _ := s.FrameAt(0.6)
	fmt.Println(s.Len(), f.Len(), f.Status)
	// Output:
	// 4 11025 degenerate
}
