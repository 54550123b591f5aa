package sim

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/FatCoding3/walton-machine/internal/ladder"
)

// SweepRun is the outcome of one ladder in a sweep.
type SweepRun struct {
	Stages int
	Ladder *ladder.Ladder
	Result *Result
}

// MetricFactory builds fresh metrics for one ladder of a sweep.
type MetricFactory func(l *ladder.Ladder) []Metric

// Sweep runs one independent ladder per stage count concurrently, all at the
// same drive voltage and step count. Results keep the order of stages.
func Sweep(ctx context.Context, stages []int, voltage float64, steps int, metrics MetricFactory, log zerolog.Logger) ([]SweepRun, error) {
	runs := make([]SweepRun, len(stages))

	g, gctx := errgroup.WithContext(ctx)
	for i, n := range stages {
		g.Go(func() error {
			l, err := ladder.New(n, voltage)
			if err != nil {
				return fmt.Errorf("sweep stages=%d: %w", n, err)
			}
			r := New(l, log.With().Int("stages", n).Logger())
			if metrics != nil {
				for _, m := range metrics(l) {
					r.AddMetric(m)
				}
			}
			res, err := r.Run(gctx, steps)
			if err != nil {
				return err
			}
			runs[i] = SweepRun{Stages: n, Ladder: l, Result: res}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return runs, nil
}
