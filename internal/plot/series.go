package plot

import (
	"errors"
	"fmt"

	"github.com/FatCoding3/walton-machine/internal/ladder"
)

var ErrInvalidRange = errors.New("plot: invalid step range")

// Options selects which steps and series to chart. To <= 0 means through the
// latest step. Stage numbers in Upper and Lower are passed to
// Ladder.StageVoltage as is.
type Options struct {
	From          int
	To            int
	OnlyOddSteps  bool
	MaxVoltage    bool
	SumVoltage    bool
	Upper         []int
	Lower         []int
	AllCapacitors bool
	Width         int
	Height        int
}

func DefaultOptions() Options {
	return Options{
		OnlyOddSteps: true,
		MaxVoltage:   true,
		SumVoltage:   true,
		Width:        80,
		Height:       15,
	}
}

type Line struct {
	Name   string
	Steps  []int
	Values []float64
	Dashed bool
}

type Chart struct {
	Steps   []int
	Lines   []Line
	Warning string
}

// Series evaluates the chart described by opts over the ladder history.
func Series(l *ladder.Ladder, opts Options) (*Chart, error) {
	n := l.Len()
	from, to := opts.From, opts.To
	if to <= 0 {
		to = n
	}
	if from < 0 || from > n {
		return nil, fmt.Errorf("from step %d outside [0, %d]: %w", from, n, ErrInvalidRange)
	}
	if from >= to {
		return nil, fmt.Errorf("to step %d must exceed from step %d: %w", to, from, ErrInvalidRange)
	}

	chart := &Chart{}
	if to > n {
		chart.Warning = fmt.Sprintf("current max step is %d", n-1)
		to = n
	}

	for i := from; i < to; i++ {
		if opts.OnlyOddSteps && i%2 != 1 {
			continue
		}
		chart.Steps = append(chart.Steps, i)
	}

	if opts.SumVoltage {
		line := Line{Name: "Sum voltage", Steps: chart.Steps}
		for _, step := range chart.Steps {
			v, err := l.SumVoltage(step)
			if err != nil {
				return nil, err
			}
			line.Values = append(line.Values, v)
		}
		chart.Lines = append(chart.Lines, line)
	}

	if opts.MaxVoltage {
		c := l.Ceiling()
		chart.Lines = append(chart.Lines, Line{
			Name:   "Max voltage",
			Steps:  []int{0, n},
			Values: []float64{c, c},
			Dashed: true,
		})
	}

	upper, lower := opts.Upper, opts.Lower
	if opts.AllCapacitors {
		upper = sequence(l.Stages())
		lower = sequence(l.Stages() - 1)
	}
	for _, c := range upper {
		line, err := stageLine(l, chart.Steps, c, false)
		if err != nil {
			return nil, err
		}
		chart.Lines = append(chart.Lines, line)
	}
	for _, c := range lower {
		line, err := stageLine(l, chart.Steps, c, true)
		if err != nil {
			return nil, err
		}
		chart.Lines = append(chart.Lines, line)
	}

	return chart, nil
}

func stageLine(l *ladder.Ladder, steps []int, stage int, isLower bool) (Line, error) {
	line := Line{Name: fmt.Sprintf("C%d voltage", stage), Steps: steps, Dashed: isLower}
	if isLower {
		line.Name = fmt.Sprintf("C%d' voltage", stage)
	}
	for _, step := range steps {
		v, err := l.StageVoltage(step, stage, isLower)
		if err != nil {
			return Line{}, err
		}
		line.Values = append(line.Values, v)
	}
	return line, nil
}

func sequence(n int) []int {
	if n <= 0 {
		return nil
	}
	s := make([]int, n)
	for i := range s {
		s[i] = i
	}
	return s
}
