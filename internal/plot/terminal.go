package plot

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
)

var palette = []asciigraph.AnsiColor{
	asciigraph.Cyan,
	asciigraph.Yellow,
	asciigraph.Green,
	asciigraph.Magenta,
	asciigraph.Red,
	asciigraph.Blue,
	asciigraph.White,
}

// Terminal draws the chart with asciigraph. The max voltage line is expanded
// to the sampled steps so it spans the whole x axis.
func Terminal(chart *Chart, opts Options) string {
	if len(chart.Steps) == 0 {
		return "no steps in range"
	}

	data := make([][]float64, 0, len(chart.Lines))
	legends := make([]string, 0, len(chart.Lines))
	colors := make([]asciigraph.AnsiColor, 0, len(chart.Lines))
	for i, line := range chart.Lines {
		values := line.Values
		if len(line.Values) != len(chart.Steps) && len(line.Values) > 0 {
			values = make([]float64, len(chart.Steps))
			for k := range values {
				values[k] = line.Values[0]
			}
		}
		if len(values) == 0 {
			continue
		}
		data = append(data, values)
		legends = append(legends, line.Name)
		colors = append(colors, palette[i%len(palette)])
	}
	if len(data) == 0 {
		return "no series selected"
	}

	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = DefaultOptions().Width
	}
	if height <= 0 {
		height = DefaultOptions().Height
	}

	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(3),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(legends...),
		asciigraph.Caption(fmt.Sprintf("voltage, steps %d..%d", chart.Steps[0], chart.Steps[len(chart.Steps)-1])),
	)
}
