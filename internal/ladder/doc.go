// Package ladder simulates the charge transfer of a Cockcroft-Walton voltage
// multiplier.
//
// A ladder of N stages has N+1 upper nodes and N lower capacitors. On every
// step a two-phase switch network connects each lower capacitor to one of the
// upper nodes and the pair settles to their mean charge:
//
//   - [State]: upper and lower charge buffers at one instant
//   - [Step]: one in-place update of a State for a given switch phase
//   - [History]: append-only log of State snapshots
//   - [Ladder]: owns the live State and its History, answers voltage queries
//
// # Example
//
//	l, _ := ladder.New(4, 1.0)
//	l.Advance(200)
//	v, _ := l.SumVoltage(l.Len() - 1)
//
// # Thread Safety
//
// Advance must not be called concurrently on the same Ladder. Snapshots are
// immutable once appended, so reads of existing history may run alongside a
// single writer.
package ladder
