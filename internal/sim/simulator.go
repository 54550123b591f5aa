package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/FatCoding3/walton-machine/internal/ladder"
)

// Runner advances a ladder and reports each new snapshot to its metrics and
// observers.
type Runner struct {
	ladder    *ladder.Ladder
	metrics   []Metric
	observers []Observer
	log       zerolog.Logger
}

func New(l *ladder.Ladder, log zerolog.Logger) *Runner {
	return &Runner{
		ladder:    l,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		log:       log,
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) Ladder() *ladder.Ladder { return r.ladder }

// Run advances the ladder steps times. Metrics are reset and first see the
// snapshot the run starts from. A cancelled context stops the run between
// steps and returns the partial result with ctx.Err().
func (r *Runner) Run(ctx context.Context, steps int) (*Result, error) {
	if steps < 0 {
		return nil, fmt.Errorf("steps must be non-negative, got %d", steps)
	}

	start := time.Now()
	result := &Result{
		StartStep: r.ladder.Len() - 1,
		Metrics:   make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}
	r.notify(result.StartStep)

	r.log.Debug().
		Int("stages", r.ladder.Stages()).
		Float64("voltage", r.ladder.Voltage()).
		Int("from", result.StartStep).
		Int("steps", steps).
		Msg("run started")

	var runErr error
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		step := r.ladder.AdvanceOne()
		result.StepsTaken++
		r.notify(step)
	}

	result.EndStep = r.ladder.Len() - 1
	result.FinalSum, _ = r.ladder.SumVoltage(result.EndStep)
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Elapsed = time.Since(start)

	evt := r.log.Debug()
	if runErr != nil {
		evt = r.log.Warn().Err(runErr)
	}
	evt.Int("steps_taken", result.StepsTaken).
		Float64("sum_voltage", result.FinalSum).
		Dur("elapsed", result.Elapsed).
		Msg("run finished")

	return result, runErr
}

func (r *Runner) notify(step int) {
	if len(r.metrics) == 0 && len(r.observers) == 0 {
		return
	}
	s, err := r.ladder.Snapshot(step, false)
	if err != nil {
		return
	}
	for _, m := range r.metrics {
		m.Observe(step, s)
	}
	for _, o := range r.observers {
		o.OnStep(step, s)
	}
}
