// Package render paints a chart layout through go-chart's renderer
// interface, which gives PNG and SVG output without a display.
package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ngthanhdat199/scrollchart/internal/graph"
)

type Format int

const (
	FormatPNG Format = iota
	FormatSVG
)

func (f Format) String() string {
	if f == FormatSVG {
		return "svg"
	}
	return "png"
}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "png", "":
		return FormatPNG, nil
	case "svg":
		return FormatSVG, nil
	}
	return FormatPNG, fmt.Errorf("unknown image format %q", s)
}

func (f Format) provider() chart.RendererProvider {
	if f == FormatSVG {
		return chart.SVG
	}
	return chart.PNG
}

// ErrEmpty is returned when the layout has no area to paint.
var ErrEmpty = errors.New("nothing to render")

// Write lays out cfg at the given height and encodes the whole scrollable
// content (not just a viewport) to w.
func Write(w io.Writer, format Format, cfg graph.Config, height int) (graph.Layout, error) {
	l := graph.Compute(cfg, float64(height))
	if err := l.Status.Skipped; errors.Is(err, graph.ErrInvalidConfig) {
		return l, err
	}
	width := int(math.Ceil(l.ContentWidth))
	if width <= 0 || height <= 0 {
		return l, fmt.Errorf("%w: %w", ErrEmpty, graph.ErrNoValues)
	}
	r, err := format.provider()(width, height)
	if err != nil {
		return l, fmt.Errorf("create %s renderer: %w", format, err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return l, fmt.Errorf("load default font: %w", err)
	}
	r.SetFont(font)
	Draw(r, l, cfg.Colors, cfg.LineWidth)
	if err := r.Save(w); err != nil {
		return l, fmt.Errorf("encode %s: %w", format, err)
	}
	return l, nil
}

// Draw paints every drawn element of l. Skipped elements are left out.
func Draw(r chart.Renderer, l graph.Layout, colors graph.Colors, lineWidth float64) {
	for _, c := range l.Cells {
		drawCell(r, c, colors)
	}
	if l.Comparison.Status.Drawn() {
		drawComparison(r, l.Comparison, colors, lineWidth)
	}
}

func drawCell(r chart.Renderer, c graph.Cell, colors graph.Colors) {
	fillRect(r, c.Frame.X, c.Frame.Y, c.Frame.Width, c.Frame.Height, colors.CellBackground)

	m := c.Marker()
	switch {
	case !m.Status.Drawn():
	case m.Kind == graph.MarkerBar:
		from, to := c.ToContent(m.From), c.ToContent(m.To)
		r.SetStrokeColor(colors.Bar)
		r.SetStrokeWidth(m.Width)
		r.MoveTo(px(from.X), px(from.Y))
		r.LineTo(px(to.X), px(to.Y))
		r.Stroke()
		r.ResetStyle()
	case m.Kind == graph.MarkerRound:
		p := c.ToContent(m.To)
		r.SetFillColor(colors.Round)
		r.SetStrokeColor(colors.Round)
		r.SetStrokeWidth(0)
		r.Circle(m.Diameter/2, px(p.X), px(p.Y))
		r.FillStroke()
		r.ResetStyle()
	}

	if label, ok := c.ValueLabel(); ok {
		label.Center = c.ToContent(label.Center)
		drawLabel(r, label, colors.LabelBackground, colors.Text)
	}
	if label, ok := c.DateLabel(); ok {
		label.Center = c.ToContent(label.Center)
		drawLabel(r, label, colors.LabelBackground, colors.Text)
	}
}

func drawComparison(r chart.Renderer, line graph.ComparisonLine, colors graph.Colors, width float64) {
	r.SetStrokeColor(colors.Line)
	r.SetStrokeWidth(width)
	r.MoveTo(px(line.From.X), px(line.From.Y))
	r.LineTo(px(line.To.X), px(line.To.Y))
	r.Stroke()
	r.ResetStyle()
	drawLabel(r, line.Label, colors.ComparisonLabelBackground, colors.Text)
}

func drawLabel(r chart.Renderer, l graph.Label, background, text drawing.Color) {
	o := l.Origin()
	fillRect(r, o.X, o.Y, l.Width, l.Height, background)
	if l.Text == "" {
		return
	}
	r.SetFontColor(text)
	r.SetFontSize(graph.LabelFontSize)
	box := r.MeasureText(l.Text)
	x := px(l.Center.X) - box.Width()/2
	y := px(l.Center.Y) + box.Height()/2
	r.Text(l.Text, x, y)
	r.ResetStyle()
}

func fillRect(r chart.Renderer, x, y, w, h float64, col drawing.Color) {
	if col.A == 0 || w <= 0 || h <= 0 {
		return
	}
	r.SetFillColor(col)
	r.MoveTo(px(x), px(y))
	r.LineTo(px(x+w), px(y))
	r.LineTo(px(x+w), px(y+h))
	r.LineTo(px(x), px(y+h))
	r.Close()
	r.Fill()
	r.ResetStyle()
}

func px(v float64) int { return int(math.Round(v)) }
