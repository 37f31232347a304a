package chartview

import (
	"errors"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ngthanhdat199/scrollchart/internal/graph"
)

// content is the scrolled area: every cell plus the comparison line, whose
// label stays pinned to the left edge of the viewport.
type content struct {
	widget.BaseWidget
	view *GraphView

	mu      sync.Mutex
	offsetX float32
}

var _ fyne.Tappable = (*content)(nil)

func newContent(view *GraphView) *content {
	c := &content{view: view}
	c.ExtendBaseWidget(c)
	return c
}

func (c *content) scrolled(p fyne.Position) {
	c.mu.Lock()
	c.offsetX = p.X
	c.mu.Unlock()
	c.Refresh()
}

func (c *content) offset() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offsetX
}

func (c *content) Tapped(e *fyne.PointEvent) {
	cell, ok := c.view.Layout().CellAt(float64(e.Position.X))
	if !ok {
		return
	}
	c.view.cellTapped(cell)
}

func (c *content) CreateRenderer() fyne.WidgetRenderer {
	r := &contentRenderer{
		content:    c,
		line:       canvas.NewLine(theme.Color(theme.ColorNameForeground)),
		labelBack:  canvas.NewRectangle(theme.Color(theme.ColorNameBackground)),
		labelText:  canvas.NewText("", theme.Color(theme.ColorNameForeground)),
		background: canvas.NewRectangle(theme.Color(theme.ColorNameBackground)),
	}
	r.labelText.TextSize = graph.LabelFontSize
	r.labelText.Alignment = fyne.TextAlignCenter
	r.Refresh()
	return r
}

type contentRenderer struct {
	content *content

	background *canvas.Rectangle
	cells      []*cellWidget
	line       *canvas.Line
	labelBack  *canvas.Rectangle
	labelText  *canvas.Text

	layout graph.Layout
}

func (r *contentRenderer) MinSize() fyne.Size {
	// Height follows the viewport; only the width scrolls.
	return fyne.NewSize(float32(r.layout.ContentWidth), 0)
}

func (r *contentRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	for i, w := range r.cells {
		f := r.layout.Cells[i].Frame
		w.Move(fyne.NewPos(float32(f.X), float32(f.Y)))
		w.Resize(fyne.NewSize(float32(f.Width), float32(f.Height)))
	}

	cmp := r.layout.Comparison
	r.line.Position1 = fyne.NewPos(float32(cmp.From.X), float32(cmp.From.Y))
	r.line.Position2 = fyne.NewPos(float32(cmp.To.X), float32(cmp.To.Y))

	origin := cmp.Label.Origin()
	pos := fyne.NewPos(float32(origin.X)+r.content.offset(), float32(origin.Y))
	labelSize := fyne.NewSize(float32(cmp.Label.Width), float32(cmp.Label.Height))
	r.labelBack.Move(pos)
	r.labelBack.Resize(labelSize)
	placeText(r.labelText, pos, labelSize)
}

func (r *contentRenderer) Refresh() {
	l, cfg, hidden := r.content.view.applied()
	r.layout = l

	if len(r.cells) != len(l.Cells) {
		r.cells = make([]*cellWidget, len(l.Cells))
		for i := range r.cells {
			r.cells[i] = newCellWidget()
		}
	}
	for i, w := range r.cells {
		w.set(l.Cells[i], cfg.Colors)
	}

	r.background.FillColor = toColor(cfg.Colors.CellBackground)
	r.background.Refresh()

	visible := comparisonComputed(l.Comparison.Status) && !hidden
	r.line.StrokeColor = toColor(cfg.Colors.Line)
	r.line.StrokeWidth = float32(cfg.LineWidth)
	r.labelBack.FillColor = toColor(cfg.Colors.ComparisonLabelBackground)
	r.labelText.Text = l.Comparison.Label.Text
	r.labelText.Color = toColor(cfg.Colors.Text)
	for _, o := range []fyne.CanvasObject{r.line, r.labelBack, r.labelText} {
		setVisible(o, visible)
	}

	r.Layout(r.content.Size())
	canvas.Refresh(r.content)
}

// comparisonComputed reports whether the line has geometry, even if hidden.
func comparisonComputed(s graph.Status) bool {
	return s.Drawn() || errors.Is(s.Skipped, graph.ErrComparisonHidden)
}

func (r *contentRenderer) Objects() []fyne.CanvasObject {
	objs := make([]fyne.CanvasObject, 0, len(r.cells)+4)
	objs = append(objs, r.background)
	for _, w := range r.cells {
		objs = append(objs, w)
	}
	return append(objs, r.line, r.labelBack, r.labelText)
}

func (r *contentRenderer) Destroy() {}

// placeText centres t vertically in the box at pos.
func placeText(t *canvas.Text, pos fyne.Position, size fyne.Size) {
	h := t.MinSize().Height
	t.Move(fyne.NewPos(pos.X, pos.Y+(size.Height-h)/2))
	t.Resize(fyne.NewSize(size.Width, h))
}
