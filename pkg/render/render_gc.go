package render

import (
	"fmt"
	"io"

	"github.com/yumyai/seqtool/logger"
	"go.uber.org/zap"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	GCChartTitle  = "GC Content Across Sequence"
	GCSeriesName  = "GC Content"
	GCXAxisName   = "Position in Sequence"
	GCYAxisName   = "GC Content"
	DefaultWidth  = 1000
	DefaultHeight = 600
)

type ChartOptions struct {
	Width  int
	Height int
}

func gridStyle() chart.Style {
	return chart.Style{
		StrokeColor: drawing.ColorFromHex("d9d9d9"),
		StrokeWidth: 1.0,
	}
}

// RenderGCChart draws the GC trace against position 1..N and writes it as PNG.
// A fresh chart is built on every call.
func RenderGCChart(w io.Writer, trace []float64, opts ChartOptions) error {
	if len(trace) == 0 {
		return fmt.Errorf("RenderGCChart: empty trace")
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}

	xs := make([]float64, len(trace))
	for i := range trace {
		xs[i] = float64(i + 1)
	}

	// go-chart refuses a zero-width domain, widen it for single-base input
	xMax := float64(len(trace))
	if xMax < 2 {
		xMax = 2
	}

	ch := chart.Chart{
		Title:      GCChartTitle,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           GCXAxisName,
			Range:          &chart.ContinuousRange{Min: 1, Max: xMax},
			GridMajorStyle: gridStyle(),
		},
		YAxis: chart.YAxis{
			Name:           GCYAxisName,
			Range:          &chart.ContinuousRange{Min: 0, Max: 1},
			GridMajorStyle: gridStyle(),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    GCSeriesName,
				XValues: xs,
				YValues: trace,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 1.5,
				},
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	logger.Debug("Rendering GC chart", zap.Int("points", len(trace)), zap.Int("width", opts.Width), zap.Int("height", opts.Height))

	return ch.Render(chart.PNG, w)
}
