package metrics

import "github.com/FatCoding3/walton-machine/internal/ladder"

const DefaultFraction = 0.99

// Convergence records the first step whose sum voltage reaches fraction of
// the ladder ceiling. Value is -1 until that happens.
type Convergence struct {
	name      string
	threshold float64
	reached   int
}

func NewConvergence(ceiling, fraction float64) *Convergence {
	if fraction <= 0 || fraction > 1 {
		fraction = DefaultFraction
	}
	return &Convergence{
		name:      "settle_step",
		threshold: ceiling * fraction,
		reached:   -1,
	}
}

func (c *Convergence) Name() string { return c.name }

func (c *Convergence) Observe(step int, s ladder.State) {
	if c.reached >= 0 {
		return
	}
	if s.Sum() >= c.threshold {
		c.reached = step
	}
}

func (c *Convergence) Value() float64 {
	return float64(c.reached)
}

func (c *Convergence) Reset() {
	c.reached = -1
}
