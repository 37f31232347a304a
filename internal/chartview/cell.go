package chartview

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ngthanhdat199/scrollchart/internal/graph"
)

// cellWidget draws one value: its marker and the value and date labels.
type cellWidget struct {
	widget.BaseWidget

	mu     sync.RWMutex
	cell   graph.Cell
	colors graph.Colors
}

func newCellWidget() *cellWidget {
	w := &cellWidget{}
	w.ExtendBaseWidget(w)
	return w
}

func (w *cellWidget) set(c graph.Cell, colors graph.Colors) {
	w.mu.Lock()
	w.cell = c
	w.colors = colors
	w.mu.Unlock()
	w.Refresh()
}

func (w *cellWidget) state() (graph.Cell, graph.Colors) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.cell, w.colors
}

func (w *cellWidget) CreateRenderer() fyne.WidgetRenderer {
	fg := theme.Color(theme.ColorNameForeground)
	r := &cellRenderer{
		widget:     w,
		background: canvas.NewRectangle(theme.Color(theme.ColorNameBackground)),
		bar:        canvas.NewLine(fg),
		round:      canvas.NewCircle(fg),
		valueBack:  canvas.NewRectangle(theme.Color(theme.ColorNameBackground)),
		valueText:  canvas.NewText("", fg),
		dateBack:   canvas.NewRectangle(theme.Color(theme.ColorNameBackground)),
		dateText:   canvas.NewText("", fg),
	}
	for _, t := range []*canvas.Text{r.valueText, r.dateText} {
		t.TextSize = graph.LabelFontSize
		t.Alignment = fyne.TextAlignCenter
	}
	r.Refresh()
	return r
}

type cellRenderer struct {
	widget *cellWidget

	background *canvas.Rectangle
	bar        *canvas.Line
	round      *canvas.Circle
	valueBack  *canvas.Rectangle
	valueText  *canvas.Text
	dateBack   *canvas.Rectangle
	dateText   *canvas.Text
}

func (r *cellRenderer) MinSize() fyne.Size {
	return fyne.NewSize(1, 1)
}

func (r *cellRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	cell, _ := r.widget.state()

	m := cell.Marker()
	switch m.Kind {
	case graph.MarkerBar:
		r.bar.Position1 = fyne.NewPos(float32(m.From.X), float32(m.From.Y))
		r.bar.Position2 = fyne.NewPos(float32(m.To.X), float32(m.To.Y))
		r.bar.StrokeWidth = float32(m.Width)
	case graph.MarkerRound:
		rad := float32(m.Diameter / 2)
		cx, cy := float32(m.To.X), float32(m.To.Y)
		r.round.Position1 = fyne.NewPos(cx-rad, cy-rad)
		r.round.Position2 = fyne.NewPos(cx+rad, cy+rad)
	}

	if l, ok := cell.ValueLabel(); ok {
		layoutLabel(r.valueBack, r.valueText, l)
	}
	if l, ok := cell.DateLabel(); ok {
		layoutLabel(r.dateBack, r.dateText, l)
	}
}

func layoutLabel(back *canvas.Rectangle, text *canvas.Text, l graph.Label) {
	o := l.Origin()
	pos := fyne.NewPos(float32(o.X), float32(o.Y))
	size := fyne.NewSize(float32(l.Width), float32(l.Height))
	back.Move(pos)
	back.Resize(size)
	placeText(text, pos, size)
}

func (r *cellRenderer) Refresh() {
	cell, colors := r.widget.state()

	r.background.FillColor = toColor(colors.CellBackground)
	r.bar.StrokeColor = toColor(colors.Bar)
	r.round.FillColor = toColor(colors.Round)

	m := cell.Marker()
	setVisible(r.bar, m.Kind == graph.MarkerBar)
	setVisible(r.round, m.Kind == graph.MarkerRound)

	vl, vok := cell.ValueLabel()
	dl, dok := cell.DateLabel()
	r.valueText.Text = vl.Text
	r.dateText.Text = dl.Text
	for _, t := range []*canvas.Text{r.valueText, r.dateText} {
		t.Color = toColor(colors.Text)
	}
	for _, b := range []*canvas.Rectangle{r.valueBack, r.dateBack} {
		b.FillColor = toColor(colors.LabelBackground)
	}
	setVisible(r.valueBack, vok)
	setVisible(r.valueText, vok)
	setVisible(r.dateBack, dok)
	setVisible(r.dateText, dok)

	r.Layout(r.widget.Size())
	canvas.Refresh(r.widget)
}

func setVisible(o fyne.CanvasObject, visible bool) {
	if visible {
		o.Show()
	} else {
		o.Hide()
	}
}

func (r *cellRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.bar, r.round, r.valueBack, r.valueText, r.dateBack, r.dateText}
}

func (r *cellRenderer) Destroy() {}
