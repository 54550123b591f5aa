package ladder

import "math"

// State holds the node charges of a ladder at one instant. Upper has one more
// entry than Lower: Upper[0] is the driven input node, Upper[N] the output.
type State struct {
	Upper []float64
	Lower []float64
}

// NewState returns the initial condition of an n-stage ladder driven at voltage.
func NewState(n int, voltage float64) State {
	s := State{
		Upper: make([]float64, n+1),
		Lower: make([]float64, n),
	}
	s.Upper[0] = voltage
	return s
}

func (s State) Stages() int { return len(s.Lower) }

func (s State) Clone() State {
	c := State{
		Upper: make([]float64, len(s.Upper)),
		Lower: make([]float64, len(s.Lower)),
	}
	copy(c.Upper, s.Upper)
	copy(c.Lower, s.Lower)
	return c
}

func (s State) Equal(other State) bool {
	if len(s.Upper) != len(other.Upper) || len(s.Lower) != len(other.Lower) {
		return false
	}
	for i := range s.Upper {
		if s.Upper[i] != other.Upper[i] {
			return false
		}
	}
	for i := range s.Lower {
		if s.Lower[i] != other.Lower[i] {
			return false
		}
	}
	return true
}

func (s State) IsValid() bool {
	if len(s.Lower) < 1 || len(s.Upper) != len(s.Lower)+1 {
		return false
	}
	for _, v := range s.Upper {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	for _, v := range s.Lower {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Sum is the potential between the input node and the output node.
func (s State) Sum() float64 {
	return s.Upper[0] - s.Upper[len(s.Upper)-1]
}
