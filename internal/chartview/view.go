// Package chartview is the fyne widget for scrollable bar / round-point
// charts laid out by package graph.
package chartview

import (
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog/log"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ngthanhdat199/scrollchart/internal/graph"
)

const (
	minViewWidth  = graph.DefaultBarAreaWidth
	minViewHeight = 120
)

// GraphView shows one cell per value inside a horizontal scroll container.
// Setters change the pending config; call Reload to apply them.
type GraphView struct {
	widget.BaseWidget
	mu sync.RWMutex

	chart            *graph.Container
	comparisonHidden bool

	// OnCellTapped is called with the cell under a tap.
	OnCellTapped func(graph.Cell)
}

var _ fyne.Widget = (*GraphView)(nil)

func New(values []float64, minimumDate time.Time, style graph.Style) *GraphView {
	cfg := graph.DefaultConfig()
	cfg.Values = values
	cfg.MinimumDate = minimumDate
	cfg.Style = style
	return NewWithConfig(cfg)
}

func NewWithConfig(cfg graph.Config) *GraphView {
	g := &GraphView{
		chart:            graph.NewContainer(0, cfg),
		comparisonHidden: cfg.ComparisonHidden,
	}
	g.ExtendBaseWidget(g)
	return g
}

// Layout returns the layout currently on screen.
func (g *GraphView) Layout() graph.Layout {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.chart.Layout()
}

// Config returns the pending config.
func (g *GraphView) Config() graph.Config {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.chart.Config()
}

// Applied returns the config of the layout on screen, including a
// comparison line hidden since the last Reload.
func (g *GraphView) Applied() graph.Config {
	g.mu.RLock()
	defer g.mu.RUnlock()
	cfg := g.chart.Applied()
	cfg.ComparisonHidden = g.comparisonHidden
	return cfg
}

func (g *GraphView) applied() (graph.Layout, graph.Config, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.chart.Layout(), g.chart.Applied(), g.comparisonHidden
}

// Reload discards every cell and lays out the pending config again.
func (g *GraphView) Reload() {
	g.mu.Lock()
	l := g.chart.Reload()
	g.comparisonHidden = g.chart.Applied().ComparisonHidden
	g.mu.Unlock()
	logLayout(l)
	g.Refresh()
}

func logLayout(l graph.Layout) {
	if err := l.Status.Skipped; err != nil {
		log.Warn().Err(err).Msg("chart cells skipped")
	}
	if err := l.Comparison.Status.Skipped; err != nil {
		log.Debug().Err(err).Msg("comparison line skipped")
	}
	log.Debug().Int("cells", len(l.Cells)).Float64("width", l.ContentWidth).Float64("height", l.ContentHeight).Msg("chart laid out")
}

func (g *GraphView) resizeChart(height float32) graph.Layout {
	g.mu.Lock()
	defer g.mu.Unlock()
	if float64(height) == g.chart.Height() {
		return g.chart.Layout()
	}
	return g.chart.Resize(float64(height))
}

func (g *GraphView) cellTapped(c graph.Cell) {
	if g.OnCellTapped != nil {
		g.OnCellTapped(c)
	}
}

func (g *GraphView) update(fn func(*graph.Container)) {
	g.mu.Lock()
	fn(g.chart)
	g.mu.Unlock()
}

func (g *GraphView) SetValues(values []float64) {
	g.update(func(c *graph.Container) { c.SetValues(values) })
}

func (g *GraphView) SetMinimumDate(t time.Time) {
	g.update(func(c *graph.Container) { c.SetMinimumDate(t) })
}

func (g *GraphView) SetStyle(s graph.Style) {
	g.update(func(c *graph.Container) { c.SetStyle(s) })
}

func (g *GraphView) SetGranularity(d graph.DateGranularity) {
	g.update(func(c *graph.Container) { c.SetGranularity(d) })
}

func (g *GraphView) SetDataType(d graph.DataType) {
	g.update(func(c *graph.Container) { c.SetDataType(d) })
}

func (g *GraphView) SetComparisonValue(v float64) {
	g.update(func(c *graph.Container) { c.SetComparisonValue(v) })
}

// SetComparisonHidden shows or hides the comparison line and label at once.
func (g *GraphView) SetComparisonHidden(hidden bool) {
	g.update(func(c *graph.Container) {
		c.SetComparisonHidden(hidden)
		g.comparisonHidden = hidden
	})
	g.Refresh()
}

func (g *GraphView) SetOnlyPathLine(only bool) {
	g.update(func(c *graph.Container) { c.SetOnlyPathLine(only) })
}

func (g *GraphView) SetBarAreaWidth(w float64) {
	g.update(func(c *graph.Container) { c.SetBarAreaWidth(w) })
}

func (g *GraphView) SetLineWidth(w float64) {
	g.update(func(c *graph.Container) { c.SetLineWidth(w) })
}

func (g *GraphView) SetBarAreaHeightRate(r float64) {
	g.update(func(c *graph.Container) { c.SetBarAreaHeightRate(r) })
}

func (g *GraphView) SetMaxValueRate(r float64) {
	g.update(func(c *graph.Container) { c.SetMaxValueRate(r) })
}

func (g *GraphView) SetBarWidthRate(r float64) {
	g.update(func(c *graph.Container) { c.SetBarWidthRate(r) })
}

func (g *GraphView) SetRoundSize(r float64) {
	g.update(func(c *graph.Container) { c.SetRoundSize(r) })
}

func (g *GraphView) SetBarColor(col drawing.Color) {
	g.update(func(c *graph.Container) { c.SetBarColor(col) })
}

func (g *GraphView) SetRoundColor(col drawing.Color) {
	g.update(func(c *graph.Container) { c.SetRoundColor(col) })
}

func (g *GraphView) SetTextColor(col drawing.Color) {
	g.update(func(c *graph.Container) { c.SetTextColor(col) })
}

func (g *GraphView) SetLabelBackgroundColor(col drawing.Color) {
	g.update(func(c *graph.Container) { c.SetLabelBackgroundColor(col) })
}

func (g *GraphView) SetGraphBackgroundColor(col drawing.Color) {
	g.update(func(c *graph.Container) { c.SetGraphBackgroundColor(col) })
}

func (g *GraphView) SetComparisonLineColor(col drawing.Color) {
	g.update(func(c *graph.Container) { c.SetComparisonLineColor(col) })
}

func (g *GraphView) SetComparisonLabelBackgroundColor(col drawing.Color) {
	g.update(func(c *graph.Container) { c.SetComparisonLabelBackgroundColor(col) })
}

func (g *GraphView) CreateRenderer() fyne.WidgetRenderer {
	content := newContent(g)
	scroll := container.NewHScroll(content)
	scroll.OnScrolled = content.scrolled
	return &graphViewRenderer{view: g, content: content, scroll: scroll}
}

type graphViewRenderer struct {
	view    *GraphView
	content *content
	scroll  *container.Scroll
}

func (r *graphViewRenderer) Layout(size fyne.Size) {
	r.view.resizeChart(size.Height)
	r.scroll.Resize(size)
	r.content.Refresh()
}

func (r *graphViewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(minViewWidth, minViewHeight)
}

func (r *graphViewRenderer) Refresh() {
	r.content.Refresh()
	r.scroll.Refresh()
}

func (r *graphViewRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.scroll}
}

func (r *graphViewRenderer) Destroy() {}

func toColor(c drawing.Color) color.Color {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
