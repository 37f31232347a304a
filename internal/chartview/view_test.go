package chartview

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/require"

	"github.com/ngthanhdat199/scrollchart/internal/graph"
)

var jan2020 = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

func newTestView(t *testing.T) *GraphView {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	view := New([]float64{10, 20, 40}, jan2020, graph.StyleBar)
	view.Resize(fyne.NewSize(100, 200))
	return view
}

func renderers(t *testing.T, view *GraphView) (*graphViewRenderer, *contentRenderer) {
	t.Helper()
	r, ok := test.WidgetRenderer(view).(*graphViewRenderer)
	require.True(t, ok)
	cr, ok := test.WidgetRenderer(r.content).(*contentRenderer)
	require.True(t, ok)
	return r, cr
}

func TestGraphViewLayoutFollowsHeight(t *testing.T) {
	view := newTestView(t)

	l := view.Layout()
	require.Len(t, l.Cells, 3)
	require.Equal(t, 150.0, l.ContentWidth)
	require.Equal(t, 200.0, l.ContentHeight)

	view.Resize(fyne.NewSize(100, 300))
	require.Equal(t, 300.0, view.Layout().ContentHeight)

	_, cr := renderers(t, view)
	require.Equal(t, float32(150), cr.MinSize().Width)
	require.Len(t, cr.cells, 3)
	require.Equal(t, fyne.NewPos(50, 0), cr.cells[1].Position())
}

func TestGraphViewSettersApplyOnReload(t *testing.T) {
	view := newTestView(t)

	view.SetValues([]float64{1, 2, 3, 4})
	view.SetStyle(graph.StyleRound)
	require.Len(t, view.Layout().Cells, 3)
	require.Equal(t, graph.StyleRound, view.Config().Style)

	view.Reload()
	l := view.Layout()
	require.Len(t, l.Cells, 4)
	require.Equal(t, graph.MarkerRound, l.Cells[0].Marker().Kind)

	_, cr := renderers(t, view)
	require.Len(t, cr.cells, 4)
}

func TestGraphViewComparisonHidden(t *testing.T) {
	view := newTestView(t)
	_, cr := renderers(t, view)
	require.True(t, cr.line.Visible())
	require.Equal(t, "100000.0", cr.labelText.Text)

	view.SetComparisonHidden(true)
	require.False(t, cr.line.Visible())
	require.False(t, cr.labelText.Visible())

	view.SetComparisonHidden(false)
	require.True(t, cr.line.Visible())
}

func TestGraphViewAppliedFollowsHiddenComparison(t *testing.T) {
	view := newTestView(t)
	require.False(t, view.Applied().ComparisonHidden)

	view.SetComparisonHidden(true)
	require.True(t, view.Applied().ComparisonHidden)
	require.True(t, view.Config().ComparisonHidden)

	view.Reload()
	require.True(t, view.Applied().ComparisonHidden)
	require.ErrorIs(t, view.Layout().Comparison.Status.Skipped, graph.ErrComparisonHidden)
}

func TestGraphViewComparisonLabelFollowsScroll(t *testing.T) {
	view := newTestView(t)
	r, cr := renderers(t, view)

	before := cr.labelBack.Position().X
	r.content.scrolled(fyne.NewPos(30, 0))
	require.Equal(t, before+30, cr.labelBack.Position().X)
}

func TestGraphViewCellTapped(t *testing.T) {
	view := newTestView(t)
	r, _ := renderers(t, view)

	var tapped []graph.Cell
	view.OnCellTapped = func(c graph.Cell) { tapped = append(tapped, c) }

	test.TapAt(r.content, fyne.NewPos(75, 20))
	require.Len(t, tapped, 1)
	require.Equal(t, 1, tapped[0].Index)
	require.Equal(t, 20.0, tapped[0].Value)

	test.TapAt(r.content, fyne.NewPos(500, 20))
	require.Len(t, tapped, 1)
}

func TestGraphViewNoMinimumDate(t *testing.T) {
	a := test.NewApp()
	t.Cleanup(a.Quit)

	view := New([]float64{1, 2}, time.Time{}, graph.StyleBar)
	view.Resize(fyne.NewSize(100, 200))

	l := view.Layout()
	require.Empty(t, l.Cells)
	require.ErrorIs(t, l.Status.Skipped, graph.ErrNoMinimumDate)
	require.Equal(t, 100.0, l.ContentWidth)
}
