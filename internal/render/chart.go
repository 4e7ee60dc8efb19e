package render

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrTooFewSamples is returned when a chart has fewer than two points.
var ErrTooFewSamples = errors.New("render: need at least two samples to plot")

// Growth records how the coral filled in over a run.
type Growth struct {
	Steps   []float64
	Settled []float64
	Height  []float64
}

// Record appends one sample. height is the number of rows the colony spans.
func (g *Growth) Record(step, settled, height int) {
	g.Steps = append(g.Steps, float64(step))
	g.Settled = append(g.Settled, float64(settled))
	g.Height = append(g.Height, float64(height))
}

// Len returns the number of samples.
func (g *Growth) Len() int { return len(g.Steps) }

// WriteChart plots settled cells and colony height against step number as
// a PNG at path.
func (g *Growth) WriteChart(path, title string) error {
	if g.Len() < 2 {
		return ErrTooFewSamples
	}
	graph := chart.Chart{
		Title:  title,
		Width:  1024,
		Height: 512,
		XAxis: chart.XAxis{
			Name:  "Step",
			Style: chart.Style{FontSize: 10.0},
		},
		YAxis: chart.YAxis{
			Name:  "Settled cells",
			Style: chart.Style{FontSize: 10.0},
		},
		YAxisSecondary: chart.YAxis{
			Name:  "Height (rows)",
			Style: chart.Style{FontSize: 10.0},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Settled",
				XValues: g.Steps,
				YValues: g.Settled,
				Style:   chart.Style{StrokeColor: drawing.Color{R: 255, G: 120, B: 60, A: 255}, StrokeWidth: 3.0},
			},
			chart.ContinuousSeries{
				Name:    "Height",
				YAxis:   chart.YAxisSecondary,
				XValues: g.Steps,
				YValues: g.Height,
				Style:   chart.Style{StrokeColor: drawing.Color{R: 40, G: 90, B: 220, A: 255}, StrokeWidth: 3.0},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("render: cannot draw chart: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("render: cannot write chart %s: %w", path, err)
	}
	return nil
}
