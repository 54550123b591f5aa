package sim

import (
	"time"

	"github.com/FatCoding3/walton-machine/internal/ladder"
)

// Metric accumulates a scalar over the snapshots of a run.
type Metric interface {
	Name() string
	Observe(step int, s ladder.State)
	Value() float64
	Reset()
}

// Observer is notified of every snapshot a run produces.
type Observer interface {
	OnStep(step int, s ladder.State)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(step int, s ladder.State)

func (f ObserverFunc) OnStep(step int, s ladder.State) { f(step, s) }

type Result struct {
	StartStep  int
	EndStep    int
	StepsTaken int
	FinalSum   float64
	Metrics    map[string]float64
	Elapsed    time.Duration
}
