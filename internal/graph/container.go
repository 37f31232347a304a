package graph

import (
	"time"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

type ComparisonLine struct {
	From   Point
	To     Point
	Y      float64
	Label  Label
	Status Status
}

type Layout struct {
	ContentWidth  float64
	ContentHeight float64
	Max           float64
	HasMax        bool
	Cells         []Cell
	Comparison    ComparisonLine
	// Status reports whether cells were built.
	Status Status
}

// CellAt returns the cell under content x coordinate x.
func (l Layout) CellAt(x float64) (Cell, bool) {
	for _, c := range l.Cells {
		if x >= c.Frame.X && x < c.Frame.X+c.Frame.Width {
			return c, true
		}
	}
	return Cell{}, false
}

// Compute lays out cfg in a content area of the given height.
func Compute(cfg Config, height float64) Layout {
	if err := cfg.Validate(); err != nil {
		return Layout{
			ContentHeight: height,
			Comparison:    ComparisonLine{Status: skipped(err)},
			Status:        skipped(err),
		}
	}
	n := len(cfg.Values)
	top, hasMax := cfg.Max()
	l := Layout{
		ContentWidth:  float64(n) * cfg.BarAreaWidth,
		ContentHeight: height,
		Max:           top,
		HasMax:        hasMax,
	}
	scale := Scale{Max: top, HasMax: hasMax, Ratios: cfg.Ratios}
	l.Comparison = comparisonLine(cfg, scale, height, l.ContentWidth)

	switch {
	case n == 0:
		l.Status = skipped(ErrNoValues)
		return l
	case cfg.MinimumDate.IsZero():
		l.Status = skipped(ErrNoMinimumDate)
		l.Comparison = ComparisonLine{Status: skipped(ErrNoMinimumDate)}
		return l
	}

	opts := CellOptions{
		Style:           cfg.Style,
		Granularity:     cfg.Granularity,
		DataType:        cfg.DataType,
		ComparisonValue: cfg.ComparisonValue,
		OnlyPathLine:    cfg.OnlyPathLine,
	}
	l.Cells = make([]Cell, 0, n)
	for i, v := range cfg.Values {
		frame := Frame{X: float64(i) * cfg.BarAreaWidth, Width: cfg.BarAreaWidth, Height: height}
		date := AddUnits(cfg.MinimumDate, cfg.Granularity, i)
		l.Cells = append(l.Cells, NewCell(i, frame, v, date, scale, opts))
	}
	l.Status = drawn()
	return l
}

// comparisonLine is derived once from the shared scale, not from any cell.
func comparisonLine(cfg Config, scale Scale, height, width float64) ComparisonLine {
	y, ok := scale.yOf(cfg.ComparisonValue, height)
	if !ok {
		return ComparisonLine{Status: skipped(ErrNoScale)}
	}
	line := ComparisonLine{
		From: Point{X: 0, Y: y},
		To:   Point{X: width, Y: y},
		Y:    y,
		Label: Label{
			Text:   formatPlain(cfg.ComparisonValue),
			Center: Point{X: ComparisonLabelWidth / 2, Y: y + ComparisonLabelHeight/2},
			Width:  ComparisonLabelWidth,
			Height: ComparisonLabelHeight,
		},
		Status: drawn(),
	}
	if cfg.ComparisonHidden {
		line.Status = skipped(ErrComparisonHidden)
	}
	return line
}

// Container owns the chart config and its last layout. Setters change a
// pending config which only takes effect on the next Reload; Resize relays
// out with the config applied by the last Reload.
//
// A Container is not safe for concurrent use.
type Container struct {
	pending Config
	applied Config
	height  float64
	layout  Layout
}

// NewContainer builds a container and loads it immediately.
func NewContainer(height float64, cfg Config) *Container {
	c := &Container{pending: cfg.Clone(), height: height}
	c.Reload()
	return c
}

func (c *Container) Layout() Layout { return c.layout }

func (c *Container) Height() float64 { return c.height }

// Config returns a copy of the pending config.
func (c *Container) Config() Config { return c.pending.Clone() }

// Applied returns a copy of the config the current layout was built from.
func (c *Container) Applied() Config { return c.applied.Clone() }

// Reload discards the current cells and lays out the pending config again.
func (c *Container) Reload() Layout {
	c.applied = c.pending.Clone()
	c.layout = Compute(c.applied, c.height)
	return c.layout
}

// Resize relays out for a new height without applying pending changes.
func (c *Container) Resize(height float64) Layout {
	c.height = height
	c.layout = Compute(c.applied, height)
	return c.layout
}

func (c *Container) CellAt(x float64) (Cell, bool) { return c.layout.CellAt(x) }

func (c *Container) SetConfig(cfg Config) { c.pending = cfg.Clone() }

func (c *Container) SetValues(values []float64) {
	c.pending.Values = append([]float64(nil), values...)
}

func (c *Container) SetMinimumDate(t time.Time) { c.pending.MinimumDate = t }

func (c *Container) SetStyle(s Style) { c.pending.Style = s }

func (c *Container) SetGranularity(g DateGranularity) { c.pending.Granularity = g }

func (c *Container) SetDataType(d DataType) { c.pending.DataType = d }

func (c *Container) SetComparisonValue(v float64) { c.pending.ComparisonValue = v }

func (c *Container) SetComparisonHidden(hidden bool) { c.pending.ComparisonHidden = hidden }

func (c *Container) SetOnlyPathLine(only bool) { c.pending.OnlyPathLine = only }

func (c *Container) SetBarAreaWidth(w float64) { c.pending.BarAreaWidth = w }

func (c *Container) SetLineWidth(w float64) { c.pending.LineWidth = w }

func (c *Container) SetBarAreaHeightRate(r float64) { c.pending.Ratios.BarAreaHeight = r }

func (c *Container) SetMaxValueRate(r float64) { c.pending.Ratios.MaxValue = r }

func (c *Container) SetBarWidthRate(r float64) { c.pending.Ratios.BarWidth = r }

func (c *Container) SetRoundSize(r float64) { c.pending.Ratios.RoundSize = r }

func (c *Container) SetBarColor(col drawing.Color) { c.pending.Colors.Bar = col }

func (c *Container) SetRoundColor(col drawing.Color) { c.pending.Colors.Round = col }

func (c *Container) SetTextColor(col drawing.Color) { c.pending.Colors.Text = col }

func (c *Container) SetLabelBackgroundColor(col drawing.Color) { c.pending.Colors.LabelBackground = col }

func (c *Container) SetGraphBackgroundColor(col drawing.Color) { c.pending.Colors.CellBackground = col }

func (c *Container) SetComparisonLineColor(col drawing.Color) { c.pending.Colors.Line = col }

func (c *Container) SetComparisonLabelBackgroundColor(col drawing.Color) {
	c.pending.Colors.ComparisonLabelBackground = col
}
