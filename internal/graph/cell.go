package graph

import "time"

type Point struct {
	X, Y float64
}

type Frame struct {
	X, Y, Width, Height float64
}

func (f Frame) Contains(p Point) bool {
	return p.X >= f.X && p.X < f.X+f.Width && p.Y >= f.Y && p.Y < f.Y+f.Height
}

// Scale is what a cell needs from its container: the shared maximum and the
// layout ratios. It is copied into each cell instead of referencing the
// container.
type Scale struct {
	Max    float64
	HasMax bool
	Ratios Ratios
}

func barAreaHeight(h float64, r Ratios) (float64, bool) {
	if !(r.BarAreaHeight > 0) {
		return 0, false
	}
	return h * r.BarAreaHeight, true
}

func labelHeight(h float64, r Ratios) (float64, bool) {
	area, ok := barAreaHeight(h, r)
	if !ok {
		return 0, false
	}
	return (h - area) / 2, true
}

// baselineY is where bars start: below the bar area plus the top label margin.
func baselineY(h float64, r Ratios) (float64, bool) {
	area, ok := barAreaHeight(h, r)
	if !ok {
		return 0, false
	}
	return area + (h-area)/2, true
}

func (s Scale) maxBarAreaHeight() (float64, bool) {
	if !s.HasMax || !(s.Max > 0) || !(s.Ratios.MaxValue > 0) {
		return 0, false
	}
	return s.Max / s.Ratios.MaxValue, true
}

// heightOf scales v into the bar area of a cell of height h.
func (s Scale) heightOf(v, h float64) (float64, bool) {
	maxArea, ok := s.maxBarAreaHeight()
	if !ok {
		return 0, false
	}
	area, ok := barAreaHeight(h, s.Ratios)
	if !ok {
		return 0, false
	}
	return area * v / maxArea, true
}

// yOf is the y coordinate reached by v in a cell of height h.
func (s Scale) yOf(v, h float64) (float64, bool) {
	height, ok := s.heightOf(v, h)
	if !ok {
		return 0, false
	}
	base, ok := baselineY(h, s.Ratios)
	if !ok {
		return 0, false
	}
	return base - height, true
}

type CellOptions struct {
	Style           Style
	Granularity     DateGranularity
	DataType        DataType
	ComparisonValue float64
	OnlyPathLine    bool
}

// Cell is one data point. Geometry getters use cell-local coordinates and
// report ok=false when a dependency is missing, which callers treat as
// nothing to draw.
type Cell struct {
	Index int
	Value float64
	Date  time.Time
	Frame Frame

	scale Scale
	opts  CellOptions
}

func NewCell(index int, frame Frame, value float64, date time.Time, scale Scale, opts CellOptions) Cell {
	return Cell{
		Index: index,
		Value: value,
		Date:  date,
		Frame: frame,
		scale: scale,
		opts:  opts,
	}
}

func (c Cell) Scale() Scale { return c.scale }

func (c Cell) CenterX() float64 { return c.Frame.Width / 2 }

func (c Cell) BarAreaHeight() (float64, bool) { return barAreaHeight(c.Frame.Height, c.scale.Ratios) }

func (c Cell) LabelHeight() (float64, bool) { return labelHeight(c.Frame.Height, c.scale.Ratios) }

func (c Cell) BaselineY() (float64, bool) { return baselineY(c.Frame.Height, c.scale.Ratios) }

func (c Cell) MaxBarAreaHeight() (float64, bool) { return c.scale.maxBarAreaHeight() }

func (c Cell) BarHeight() (float64, bool) { return c.scale.heightOf(c.Value, c.Frame.Height) }

// EndPoint is the top of the bar, which is also the round marker centre.
func (c Cell) EndPoint() (Point, bool) {
	y, ok := c.scale.yOf(c.Value, c.Frame.Height)
	if !ok {
		return Point{}, false
	}
	return Point{X: c.CenterX(), Y: y}, true
}

func (c Cell) BarWidth() (float64, bool) {
	if !(c.scale.Ratios.BarWidth > 0) {
		return 0, false
	}
	return c.Frame.Width * c.scale.Ratios.BarWidth, true
}

func (c Cell) RoundSize() (float64, bool) {
	if !(c.scale.Ratios.RoundSize > 0) {
		return 0, false
	}
	return c.Frame.Width * c.scale.Ratios.RoundSize, true
}

func (c Cell) ComparisonHeight() (float64, bool) {
	return c.scale.heightOf(c.opts.ComparisonValue, c.Frame.Height)
}

func (c Cell) ComparisonY() (float64, bool) {
	return c.scale.yOf(c.opts.ComparisonValue, c.Frame.Height)
}

type MarkerKind int

const (
	MarkerNone MarkerKind = iota
	MarkerBar
	MarkerRound
)

// Marker describes the shape drawn for a cell. For a bar, From is the
// baseline point and To the end point; for a round marker both are the
// centre.
type Marker struct {
	Kind     MarkerKind
	From     Point
	To       Point
	Width    float64
	Diameter float64
	Status   Status
}

func (c Cell) Marker() Marker {
	end, ok := c.EndPoint()
	if !ok {
		return Marker{Status: skipped(ErrNoScale)}
	}
	base, _ := c.BaselineY()
	switch c.opts.Style {
	case StyleRound:
		if c.opts.OnlyPathLine {
			return Marker{From: end, To: end, Status: skipped(ErrMarkerSuppressed)}
		}
		d, ok := c.RoundSize()
		if !ok {
			return Marker{Status: skipped(ErrInvalidConfig)}
		}
		return Marker{Kind: MarkerRound, From: end, To: end, Diameter: d, Status: drawn()}
	default:
		w, _ := c.BarWidth()
		return Marker{
			Kind:   MarkerBar,
			From:   Point{X: c.CenterX(), Y: base},
			To:     end,
			Width:  w,
			Status: drawn(),
		}
	}
}

type Label struct {
	Text   string
	Center Point
	Width  float64
	Height float64
}

// Origin is the top-left corner of the label box.
func (l Label) Origin() Point {
	return Point{X: l.Center.X - l.Width/2, Y: l.Center.Y - l.Height/2}
}

func (c Cell) ValueLabel() (Label, bool) {
	lh, ok := c.LabelHeight()
	if !ok {
		return Label{}, false
	}
	return Label{
		Text:   FormatValue(c.Value, c.opts.DataType),
		Center: Point{X: c.CenterX(), Y: lh / 2},
		Width:  c.Frame.Width,
		Height: lh,
	}, true
}

func (c Cell) DateLabel() (Label, bool) {
	lh, ok := c.LabelHeight()
	if !ok {
		return Label{}, false
	}
	return Label{
		Text:   FormatDate(c.Date, c.opts.Granularity),
		Center: Point{X: c.CenterX(), Y: c.Frame.Height - lh/2},
		Width:  c.Frame.Width,
		Height: lh,
	}, true
}

// ToContent converts a cell-local point into content coordinates.
func (c Cell) ToContent(p Point) Point {
	return Point{X: p.X + c.Frame.X, Y: p.Y + c.Frame.Y}
}
