package ladder

import (
	"errors"
	"math"
	"testing"
)

func TestNewInvalidStages(t *testing.T) {
	for _, n := range []int{0, -1} {
		if _, err := New(n, 1.0); !errors.Is(err, ErrInvalidStages) {
			t.Errorf("New(%d): expected ErrInvalidStages, got %v", n, err)
		}
	}
}

func TestLadderScenario(t *testing.T) {
	l, err := New(2, 1.0)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	s0, _ := l.Snapshot(0, false)
	if !s0.Equal(State{Upper: []float64{1, 0, 0}, Lower: []float64{0, 0}}) {
		t.Errorf("unexpected initial snapshot %+v", s0)
	}

	l.Advance(1)
	s1, _ := l.Snapshot(1, false)
	if !s1.Equal(State{Upper: []float64{1, 0, 0}, Lower: []float64{1, 0}}) {
		t.Errorf("unexpected step 1 snapshot %+v", s1)
	}

	sum, err := l.SumVoltage(1)
	if err != nil {
		t.Fatalf("sum voltage failed: %v", err)
	}
	if sum != 1 {
		t.Errorf("expected sum 1, got %f", sum)
	}
}

func TestLadderHistorySequence(t *testing.T) {
	l, _ := New(2, 1.0)
	l.Advance(6)

	wantSums := []float64{1, 1, 1.5, 1.25, 1.625, 1.4375, 1.71875}
	for step, want := range wantSums {
		got, err := l.SumVoltage(step)
		if err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
		if got != want {
			t.Errorf("step %d: expected sum %f, got %f", step, want, got)
		}
	}
}

func TestLadderAdvanceLength(t *testing.T) {
	tests := []struct {
		stages int
		steps  int
	}{
		{1, 0}, {1, 5}, {3, 10}, {8, 33},
	}

	for _, tt := range tests {
		l, _ := New(tt.stages, 1.5)
		l.Advance(tt.steps)
		if l.Len() != tt.steps+1 {
			t.Errorf("stages=%d steps=%d: expected len %d, got %d", tt.stages, tt.steps, tt.steps+1, l.Len())
		}
	}
}

func TestLadderAdvanceZero(t *testing.T) {
	l, _ := New(3, 1.0)
	l.Advance(5)
	before := l.Current()

	l.Advance(0)
	l.Advance(-2)

	if l.Len() != 6 {
		t.Errorf("expected len 6, got %d", l.Len())
	}
	if !l.Current().Equal(before) {
		t.Error("live state changed on zero advance")
	}
}

func TestLadderSnapshotNegative(t *testing.T) {
	l, _ := New(2, 1.0)
	l.Advance(2)

	if _, err := l.Snapshot(-1, false); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange without allowNegative, got %v", err)
	}

	s, err := l.Snapshot(-1, true)
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	want, _ := l.Snapshot(2, false)
	if !s.Equal(want) {
		t.Errorf("expected latest snapshot %+v, got %+v", want, s)
	}
}

func TestLadderSumVoltageOutOfRange(t *testing.T) {
	l, _ := New(2, 1.0)
	l.Advance(3)

	for _, step := range []int{-1, 4, 100} {
		if _, err := l.SumVoltage(step); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("SumVoltage(%d): expected ErrOutOfRange, got %v", step, err)
		}
	}
}

func TestLadderStageVoltage(t *testing.T) {
	l, _ := New(2, 1.0)
	l.Advance(2)
	// step 2: upper = [1.5, 0.5, 0]

	tests := []struct {
		name    string
		stage   int
		isLower bool
		want    float64
	}{
		{"first", 1, false, 1.0},
		{"last", 2, false, 0.5},
		{"wraps to output", 0, false, -1.5},
		{"lower reads upper", 1, true, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := l.StageVoltage(2, tt.stage, tt.isLower)
			if err != nil {
				t.Fatalf("stage voltage failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %f, got %f", tt.want, got)
			}
		})
	}
}

func TestLadderStageVoltageOutOfRange(t *testing.T) {
	l, _ := New(3, 1.0)
	l.Advance(1)

	tests := []struct {
		name    string
		step    int
		stage   int
		isLower bool
	}{
		{"stage past top", 1, 4, false},
		{"lower stage at top", 1, 3, true},
		{"negative stage", 1, -1, false},
		{"negative step", -1, 1, false},
		{"step past end", 2, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.StageVoltage(tt.step, tt.stage, tt.isLower)
			if !errors.Is(err, ErrOutOfRange) {
				t.Errorf("expected ErrOutOfRange, got %v", err)
			}
		})
	}
}

func TestLadderConvergence(t *testing.T) {
	for _, n := range []int{1, 2, 4} {
		l, _ := New(n, 1.0)
		l.Advance(2000)

		ceiling := l.Ceiling()
		final, _ := l.SumVoltage(l.Len() - 1)
		if math.Abs(final-ceiling) > 1e-6 {
			t.Errorf("stages=%d: expected sum near %f, got %f", n, ceiling, final)
		}
	}
}
