package plot

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const (
	imageWidth  = 8 * vg.Inch
	imageHeight = 5 * vg.Inch
)

func build(chart *Chart) (*gplot.Plot, error) {
	p := gplot.New()
	p.Title.Text = "Voltage multiplier"
	p.X.Label.Text = "Step"
	p.Y.Label.Text = "Voltage"
	p.Legend.Top = true
	p.Legend.Left = true

	for i, line := range chart.Lines {
		if len(line.Steps) == 0 || len(line.Steps) != len(line.Values) {
			continue
		}
		pts := make(plotter.XYs, len(line.Steps))
		for k := range line.Steps {
			pts[k].X = float64(line.Steps[k])
			pts[k].Y = line.Values[k]
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", line.Name, err)
		}
		l.Color = plotutil.Color(i)
		if line.Dashed {
			l.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
		}
		p.Add(l)
		p.Legend.Add(line.Name, l)
	}
	return p, nil
}

// WriteImage encodes the chart in format ("png", "svg", "pdf", ...).
func WriteImage(w io.Writer, chart *Chart, format string) error {
	p, err := build(chart)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(imageWidth, imageHeight, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// Save writes the chart to path, choosing the format from its extension.
func Save(path string, chart *Chart) error {
	if strings.TrimPrefix(filepath.Ext(path), ".") == "" {
		return fmt.Errorf("no image format in %q", path)
	}
	p, err := build(chart)
	if err != nil {
		return err
	}
	return p.Save(imageWidth, imageHeight, path)
}
