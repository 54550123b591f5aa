package metrics

import (
	"math"

	"github.com/FatCoding3/walton-machine/internal/ladder"
)

// Ripple is the mean absolute change in sum voltage between consecutive odd
// steps, the samples the output sees after each full switch cycle.
type Ripple struct {
	name     string
	last     float64
	haveLast bool
	sum      float64
	samples  int
}

func NewRipple() *Ripple {
	return &Ripple{name: "ripple"}
}

func (r *Ripple) Name() string { return r.name }

func (r *Ripple) Observe(step int, s ladder.State) {
	if step%2 != 1 {
		return
	}
	v := s.Sum()
	if r.haveLast {
		r.sum += math.Abs(v - r.last)
		r.samples++
	}
	r.last = v
	r.haveLast = true
}

func (r *Ripple) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return r.sum / float64(r.samples)
}

func (r *Ripple) Reset() {
	r.last = 0
	r.haveLast = false
	r.sum = 0
	r.samples = 0
}
