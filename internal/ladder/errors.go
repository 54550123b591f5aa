package ladder

import "errors"

var (
	// ErrOutOfRange indicates a step or stage index outside the recorded bounds.
	ErrOutOfRange = errors.New("ladder: index out of range")

	// ErrInvalidStages indicates a ladder configured with fewer than one stage.
	ErrInvalidStages = errors.New("ladder: stage count must be at least 1")
)
