package chart

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoData is returned when there is nothing meaningful to plot.
var ErrNoData = errors.New("no data to plot")

const (
	defaultWidth  = 800
	defaultHeight = 400
)

// Point is one sample of a time series.
type Point struct {
	Time  time.Time
	Value float64
}

// Series is a named line.
type Series struct {
	Name   string
	Points []Point
}

// Slice is a labelled value used by bar and pie charts.
type Slice struct {
	Label string
	Value float64
}

var palette = []drawing.Color{
	gochart.ColorBlue,
	gochart.ColorGreen,
	gochart.ColorOrange,
	gochart.ColorRed,
	gochart.ColorAlternateGray,
}

// Renderer draws PNG charts at a fixed size.
type Renderer struct {
	Width  int
	Height int
}

// NewRenderer returns a renderer with the dashboard's default canvas size.
func NewRenderer() *Renderer {
	return &Renderer{Width: defaultWidth, Height: defaultHeight}
}

// Trend plots one or more daily series. Each series needs at least two points.
func (r *Renderer) Trend(title string, series []Series) ([]byte, error) {
	var out []gochart.Series
	maxY := 0.0
	for i, s := range series {
		if len(s.Points) < 2 {
			continue
		}
		pts := append([]Point(nil), s.Points...)
		sort.Slice(pts, func(a, b int) bool { return pts[a].Time.Before(pts[b].Time) })

		xs := make([]time.Time, len(pts))
		ys := make([]float64, len(pts))
		for j, p := range pts {
			xs[j] = p.Time
			ys[j] = p.Value
			if p.Value > maxY {
				maxY = p.Value
			}
		}
		if !xs[0].Before(xs[len(xs)-1]) {
			continue
		}
		col := palette[i%len(palette)]
		out = append(out, gochart.TimeSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style:   gochart.Style{StrokeColor: col, StrokeWidth: 2, DotColor: col, DotWidth: 3},
		})
	}
	if len(out) == 0 {
		return nil, ErrNoData
	}
	if maxY <= 0 {
		maxY = 1
	}

	ch := gochart.Chart{
		Title:      title,
		Width:      r.width(),
		Height:     r.height(),
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      gochart.XAxis{ValueFormatter: gochart.TimeValueFormatterWithFormat("01-02")},
		YAxis:      gochart.YAxis{Range: &gochart.ContinuousRange{Min: 0, Max: maxY * 1.1}},
		Series:     out,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	return render(ch.Render)
}

// Bars renders a labelled bar chart, e.g. Big-5 counts.
func (r *Renderer) Bars(title string, slices []Slice) ([]byte, error) {
	if len(slices) == 0 {
		return nil, ErrNoData
	}
	maxV := 0.0
	bars := make([]gochart.Value, len(slices))
	for i, s := range slices {
		bars[i] = gochart.Value{Label: s.Label, Value: s.Value}
		if s.Value > maxV {
			maxV = s.Value
		}
	}
	if maxV <= 0 {
		return nil, ErrNoData
	}

	barWidth := (r.width() - 80) / (len(bars) * 2)
	if barWidth < 8 {
		barWidth = 8
	}
	bc := gochart.BarChart{
		Title:    title,
		Width:    r.width(),
		Height:   r.height(),
		BarWidth: barWidth,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40},
		},
		YAxis: gochart.YAxis{Range: &gochart.ContinuousRange{Min: 0, Max: maxV * 1.1}},
		Bars:  bars,
	}
	return render(bc.Render)
}

// Pie renders a share chart. Zero slices are dropped.
func (r *Renderer) Pie(title string, slices []Slice) ([]byte, error) {
	values := make([]gochart.Value, 0, len(slices))
	for _, s := range slices {
		if s.Value <= 0 {
			continue
		}
		values = append(values, gochart.Value{Label: fmt.Sprintf("%s (%g)", s.Label, s.Value), Value: s.Value})
	}
	if len(values) == 0 {
		return nil, ErrNoData
	}
	pc := gochart.PieChart{
		Title:  title,
		Width:  r.height(),
		Height: r.height(),
		Values: values,
	}
	return render(pc.Render)
}

func (r *Renderer) width() int {
	if r.Width > 0 {
		return r.Width
	}
	return defaultWidth
}

func (r *Renderer) height() int {
	if r.Height > 0 {
		return r.Height
	}
	return defaultHeight
}

func render(fn func(gochart.RendererProvider, io.Writer) error) ([]byte, error) {
	var buf bytes.Buffer
	if err := fn(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}
