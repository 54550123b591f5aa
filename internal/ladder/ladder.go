package ladder

import "fmt"

// Ladder is a live multiplier: the current State, its drive configuration
// and the history of every step since construction.
type Ladder struct {
	stages  int
	voltage float64
	state   State
	history *History
}

// New builds an n-stage ladder driven at voltage and records step 0.
func New(stages int, voltage float64) (*Ladder, error) {
	if stages < 1 {
		return nil, fmt.Errorf("got %d: %w", stages, ErrInvalidStages)
	}
	l := &Ladder{
		stages:  stages,
		voltage: voltage,
		state:   NewState(stages, voltage),
		history: NewHistory(),
	}
	l.history.Append(l.state)
	return l, nil
}

func (l *Ladder) Stages() int      { return l.stages }
func (l *Ladder) Voltage() float64 { return l.voltage }
func (l *Ladder) Len() int         { return l.history.Len() }

// Ceiling is the steady-state output the ladder approaches, V*N.
func (l *Ladder) Ceiling() float64 { return l.voltage * float64(l.stages) }

// Current returns a copy of the live state.
func (l *Ladder) Current() State { return l.state.Clone() }

// History exposes the snapshot log for read access.
func (l *Ladder) History() *History { return l.history }

// Advance steps the ladder times times, recording a snapshot after each.
func (l *Ladder) Advance(times int) {
	for k := 0; k < times; k++ {
		l.AdvanceOne()
	}
}

// AdvanceOne performs a single step and returns the new step index.
func (l *Ladder) AdvanceOne() int {
	Step(&l.state, l.voltage, Parity(l.history.Len()-1))
	return l.history.Append(l.state)
}

// Snapshot returns a copy of the state at step. Negative steps are accepted
// only when allowNegative is set.
func (l *Ladder) Snapshot(step int, allowNegative bool) (State, error) {
	s, err := l.history.at(step, allowNegative)
	if err != nil {
		return State{}, err
	}
	return s.Clone(), nil
}

// SumVoltage is the potential across the whole ladder at step.
func (l *Ladder) SumVoltage(step int) (float64, error) {
	s, err := l.history.at(step, false)
	if err != nil {
		return 0, err
	}
	return s.Sum(), nil
}

// StageVoltage returns Upper[stage-1] - Upper[stage] at step, with stage 0
// wrapping to the output node.
//
// The result is always read from the upper chain. isLower only tightens the
// bound on stage (lower capacitors stop one short of N); it does not select
// the lower chain.
func (l *Ladder) StageVoltage(step, stage int, isLower bool) (float64, error) {
	s, err := l.history.at(step, false)
	if err != nil {
		return 0, err
	}
	hi := l.stages
	if isLower {
		hi--
	}
	if stage < 0 || stage > hi {
		return 0, fmt.Errorf("stage %d (max %d): %w", stage, hi, ErrOutOfRange)
	}
	prev := stage - 1
	if prev < 0 {
		prev = len(s.Upper) - 1
	}
	return s.Upper[prev] - s.Upper[stage], nil
}
