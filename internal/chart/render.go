// Package chart draws dashboard series as PNG images.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/airdash/airdash/internal/airquality"
)

// ErrInvalidSize is returned for non-positive or oversized image dimensions.
var ErrInvalidSize = errors.New("invalid chart size")

// Size limits in pixels.
const (
	DefaultWidth  = 960
	DefaultHeight = 480
	MaxWidth      = 4096
	MaxHeight     = 4096
)

// dpi is the resolution gonum's PNG canvas renders at.
const dpi = 96

// Options control the rendered image.
type Options struct {
	// Width in pixels. Default: DefaultWidth
	Width int

	// Height in pixels. Default: DefaultHeight
	Height int
}

func (o Options) withDefaults() (Options, error) {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Width < 0 || o.Height < 0 || o.Width > MaxWidth || o.Height > MaxHeight {
		return o, fmt.Errorf("%w: %dx%d", ErrInvalidSize, o.Width, o.Height)
	}
	return o, nil
}

// Colors per view.
var viewColors = map[airquality.View]color.RGBA{
	airquality.ViewDaily:   {R: 128, G: 0, B: 128, A: 255},   // purple
	airquality.ViewYearly:  {R: 186, G: 85, B: 211, A: 255},  // mediumorchid
	airquality.ViewMonthly: {R: 238, G: 130, B: 238, A: 255}, // violet
	airquality.ViewHourly:  {R: 221, G: 160, B: 221, A: 255}, // plum
}

// Color returns the fill or stroke color used for a view.
func Color(v airquality.View) color.RGBA {
	if c, ok := viewColors[v]; ok {
		return c
	}
	return color.RGBA{A: 255}
}

// Render writes s as a PNG image to w.
func Render(w io.Writer, s *airquality.Series, opts Options) error {
	opts, err := opts.withDefaults()
	if err != nil {
		return err
	}

	p, err := build(s)
	if err != nil {
		return err
	}

	width := vg.Length(opts.Width) * vg.Inch / dpi
	height := vg.Length(opts.Height) * vg.Inch / dpi
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("create png canvas: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

func build(s *airquality.Series) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = s.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Add(plotter.NewGrid())

	if s.Horizontal {
		p.X.Label.Text = s.ValueLabel
		p.Y.Label.Text = s.CategoryLabel
	} else {
		p.X.Label.Text = s.CategoryLabel
		p.Y.Label.Text = s.ValueLabel
	}

	if len(s.Points) == 0 {
		return p, nil
	}

	c := Color(s.View)
	switch s.Chart {
	case airquality.ChartLine:
		return p, addLine(p, s, c)
	case airquality.ChartBar:
		return p, addBars(p, s, c)
	default:
		return nil, fmt.Errorf("unsupported chart kind %q", s.Chart)
	}
}

func addLine(p *plot.Plot, s *airquality.Series, c color.RGBA) error {
	xys := make(plotter.XYs, len(s.Points))
	for i, pt := range s.Points {
		xys[i].X = float64(pt.Date.Unix())
		xys[i].Y = pt.Mean
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("line plot: %w", err)
	}
	line.Color = c
	line.Width = vg.Points(1.5)

	p.Add(line)
	p.X.Tick.Marker = plot.TimeTicks{Format: airquality.DateLayout}
	return nil
}

func addBars(p *plot.Plot, s *airquality.Series, c color.RGBA) error {
	values, labels := barData(s)

	bars, err := plotter.NewBarChart(values, vg.Points(barWidth(len(values))))
	if err != nil {
		return fmt.Errorf("bar plot: %w", err)
	}
	bars.Color = c
	bars.LineStyle.Width = vg.Length(0)
	bars.Horizontal = s.Horizontal

	p.Add(bars)
	if s.Horizontal {
		p.NominalY(labels...)
	} else {
		p.NominalX(labels...)
	}
	return nil
}

// barData returns the bar values and category labels in plotting order.
// The Y axis grows upwards, so horizontal bars are reversed to read
// top-down with the first category at the top.
func barData(s *airquality.Series) (plotter.Values, []string) {
	n := len(s.Points)
	values := make(plotter.Values, n)
	labels := make([]string, n)
	for i, pt := range s.Points {
		j := i
		if s.Horizontal {
			j = n - 1 - i
		}
		values[j] = pt.Mean
		labels[j] = pt.Label
	}
	return values, labels
}

// barWidth narrows bars as the category count grows.
func barWidth(n int) float64 {
	switch {
	case n <= 6:
		return 40
	case n <= 12:
		return 24
	default:
		return 10
	}
}
