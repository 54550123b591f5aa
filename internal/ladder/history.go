package ladder

import (
	"fmt"
	"sync"
)

// History is an append-only log of ladder snapshots indexed by step.
type History struct {
	mu     sync.RWMutex
	states []State
}

func NewHistory() *History {
	return &History{states: make([]State, 0, 64)}
}

// Append stores a copy of s and returns its step index.
func (h *History) Append(s State) int {
	c := s.Clone()
	h.mu.Lock()
	defer h.mu.Unlock()
	h.states = append(h.states, c)
	return len(h.states) - 1
}

// Get returns a copy of the snapshot at step. Negative steps count back from
// the latest entry, so -1 is the most recent snapshot.
func (h *History) Get(step int) (State, error) {
	s, err := h.at(step, true)
	if err != nil {
		return State{}, err
	}
	return s.Clone(), nil
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.states)
}

func (h *History) at(step int, allowNegative bool) (State, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := len(h.states)
	lo := 0
	if allowNegative {
		lo = -n
	}
	if step < lo || step >= n {
		return State{}, fmt.Errorf("step %d of %d: %w", step, n, ErrOutOfRange)
	}
	if step < 0 {
		step += n
	}
	return h.states[step], nil
}
