package metrics

import (
	"math"

	"github.com/FatCoding3/walton-machine/internal/ladder"
)

// Peak tracks the largest sum voltage observed.
type Peak struct {
	name    string
	peak    float64
	samples int
}

func NewPeak() *Peak {
	return &Peak{name: "peak_voltage"}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(step int, s ladder.State) {
	v := s.Sum()
	if p.samples == 0 || v > p.peak {
		p.peak = v
	}
	p.samples++
}

func (p *Peak) Value() float64 {
	if p.samples == 0 {
		return math.NaN()
	}
	return p.peak
}

func (p *Peak) Reset() {
	p.peak = 0
	p.samples = 0
}
