package ladder

// Parity returns the switch phase for the step that follows step.
func Parity(step int) int {
	return step % 2
}

// Step advances s by one switch phase in place.
//
// On parity 0 each lower capacitor i shares charge with the upper node
// directly above it; on parity 1 with the node one higher. After the
// averaging pass, an even step grounds the output node and lifts the first
// lower capacitor one drive voltage above its neighbour, and every step
// re-references the input node to the drive voltage.
func Step(s *State, voltage float64, parity int) {
	n := len(s.Lower)
	for i := 0; i < n; i++ {
		j := i + parity
		mean := (s.Upper[j] + s.Lower[i]) / 2
		s.Upper[j] = mean
		s.Lower[i] = mean
	}

	if parity == 0 {
		s.Upper[n] = 0
		// a single-stage ladder has no neighbour; treat it as ground
		neighbour := 0.0
		if n > 1 {
			neighbour = s.Lower[1]
		}
		s.Lower[0] = neighbour + voltage
	}
	s.Upper[0] = s.Upper[1] + voltage
}
