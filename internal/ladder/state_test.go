package ladder

import (
	"math"
	"testing"
)

func TestNewState(t *testing.T) {
	s := NewState(3, 2.5)

	if len(s.Upper) != 4 {
		t.Errorf("expected 4 upper nodes, got %d", len(s.Upper))
	}
	if len(s.Lower) != 3 {
		t.Errorf("expected 3 lower nodes, got %d", len(s.Lower))
	}
	if s.Upper[0] != 2.5 {
		t.Errorf("expected upper[0] 2.5, got %f", s.Upper[0])
	}
	if s.Stages() != 3 {
		t.Errorf("expected 3 stages, got %d", s.Stages())
	}
}

func TestState_Clone(t *testing.T) {
	s := NewState(2, 1.0)
	c := s.Clone()

	c.Upper[0] = 99
	c.Lower[1] = 42
	if s.Upper[0] == 99 || s.Lower[1] == 42 {
		t.Error("Clone did not create independent copy")
	}
	if !s.Equal(NewState(2, 1.0)) {
		t.Errorf("original changed: %+v", s)
	}
}

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"initial", NewState(2, 1), true},
		{"no stages", State{Upper: []float64{1}, Lower: []float64{}}, false},
		{"mismatched", State{Upper: []float64{1, 0}, Lower: []float64{0, 0}}, false},
		{"with NaN", State{Upper: []float64{1, math.NaN()}, Lower: []float64{0}}, false},
		{"with -Inf", State{Upper: []float64{1, 0}, Lower: []float64{math.Inf(-1)}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestState_Sum(t *testing.T) {
	s := State{Upper: []float64{3, 1, 0.5}, Lower: []float64{0, 0}}
	if got := s.Sum(); got != 2.5 {
		t.Errorf("expected sum 2.5, got %f", got)
	}
}
