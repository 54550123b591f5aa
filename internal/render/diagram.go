package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/FatCoding3/walton-machine/internal/ladder"
)

const (
	cellWidth    = 19
	wireWidth    = 16
	diagonalRows = 9
)

// Layout controls how node values are printed in a diagram.
type Layout struct {
	ValueFormat string
}

func DefaultLayout() Layout {
	return Layout{ValueFormat: "%.3e"}
}

// row repeats cell count times with sep between copies. Labels, when set,
// overwrite the start of the cell or separator they belong to.
type row struct {
	start, end string
	cell, sep  string
	count      int
	cellLabel  func(i int) string
	sepLabel   func(i int) string
}

func overlay(label, base string) string {
	if len(label) >= len(base) {
		return label
	}
	return label + base[len(label):]
}

func (r row) write(b *strings.Builder) {
	b.WriteString(r.start)
	for i := 0; i < r.count; i++ {
		cell := r.cell
		if r.cellLabel != nil {
			cell = overlay(r.cellLabel(i), cell)
		}
		b.WriteString(cell)
		if i == r.count-1 {
			break
		}
		sep := r.sep
		if r.sepLabel != nil {
			sep = overlay(r.sepLabel(i), sep)
		}
		b.WriteString(sep)
	}
	b.WriteString(r.end)
}

// Diagram writes the ladder at step. Negative steps count back from the
// latest snapshot.
func Diagram(w io.Writer, l *ladder.Ladder, step int, layout Layout) error {
	s, err := l.Snapshot(step, true)
	if err != nil {
		return err
	}
	if step < 0 {
		step += l.Len()
	}
	_, err = io.WriteString(w, DiagramState(s, step, layout))
	return err
}

// DiagramState renders a snapshot taken at step. The switch diagonals lean
// right on even steps and left on odd ones.
func DiagramState(s ladder.State, step int, layout Layout) string {
	if layout.ValueFormat == "" {
		layout.ValueFormat = DefaultLayout().ValueFormat
	}
	n := s.Stages()
	value := func(v float64) string { return " > " + fmt.Sprintf(layout.ValueFormat, v) }
	blank := strings.Repeat(" ", cellWidth)
	gap := strings.Repeat(" ", cellWidth-1)
	wire := strings.Repeat("-", wireWidth)

	var b strings.Builder
	fmt.Fprintf(&b, "System in step %d\n\n", step)

	rows := []row{
		{start: "   ", end: "\n", cell: blank, count: n + 1,
			cellLabel: func(i int) string { return value(s.Upper[i]) }},
		{start: blank, end: "\n", cell: blank, count: n,
			cellLabel: func(i int) string { return fmt.Sprintf("C%d", i+1) }},
		{start: "---", end: "\n", cell: wire, sep: "| |", count: n + 1},
		{start: strings.Repeat(" ", 10), end: "\n", cell: "|", sep: gap, count: n + 1},
		{start: strings.Repeat(" ", 10), end: fmt.Sprintf("B%d\n", n+1), cell: "|", sep: gap, count: n + 1,
			sepLabel: func(i int) string { return fmt.Sprintf("B%d", i+1) }},
		{start: strings.Repeat(" ", 10) + "|------|+  -|------", end: "\n", cell: "|", sep: gap, count: n},
	}
	for _, r := range rows {
		r.write(&b)
	}

	for i := 0; i < diagonalRows; i++ {
		r := row{end: "\n", cell: "/", sep: gap, count: n + 1}
		if ladder.Parity(step) == 0 {
			r.start = strings.Repeat(" ", 10-i)
		} else {
			r.cell = "\\"
			r.start = strings.Repeat(" ", 11+i)
		}
		r.write(&b)
	}

	dEnd := fmt.Sprintf("D%d", n)
	rows = []row{
		{start: " ", end: dEnd + strings.Repeat(" ", cellWidth-1-len(dEnd)) + "|\n", cell: "|", sep: gap, count: n + 1,
			sepLabel: func(i int) string { return fmt.Sprintf("D%d", i) }},
		{start: " ", end: gap + "|\n", cell: "|", sep: gap, count: n + 1},
		{start: strings.Repeat(" ", 12), end: strings.Repeat(" ", 9) + "Ground\n", cell: wire, sep: "| |", count: n},
		{start: strings.Repeat(" ", 28), end: "\n", cell: blank, count: n - 1,
			cellLabel: func(i int) string { return fmt.Sprintf("C%d'", i+1) }},
		{start: strings.Repeat(" ", 12), end: "\n", cell: blank, count: n,
			cellLabel: func(i int) string { return value(s.Lower[i]) }},
	}
	for _, r := range rows {
		r.write(&b)
	}

	return b.String()
}
