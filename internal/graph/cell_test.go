package graph

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func cellFor(t *testing.T, cfg Config, height float64, index int) Cell {
	t.Helper()
	l := Compute(cfg, height)
	require.Greater(t, len(l.Cells), index)
	return l.Cells[index]
}

func TestBarHeightAtMaxWithFullHeadroom(t *testing.T) {
	cfg := testConfig(5, 20, 10)
	cfg.Ratios.MaxValue = 1
	c := cellFor(t, cfg, 200, 1)

	area, ok := c.BarAreaHeight()
	require.True(t, ok)
	h, ok := c.BarHeight()
	require.True(t, ok)
	require.InDelta(t, area, h, 1e-9)
}

func TestBarHeightZeroValue(t *testing.T) {
	c := cellFor(t, testConfig(0, 20), 200, 0)
	h, ok := c.BarHeight()
	require.True(t, ok)
	require.Zero(t, h)
	end, ok := c.EndPoint()
	require.True(t, ok)
	base, _ := c.BaselineY()
	require.Equal(t, base, end.Y)
}

func TestCellGeometry(t *testing.T) {
	// height 200, bar area 0.8 -> 160, label margins 20, baseline 180.
	// max 40 / 0.8 -> 50; value 20 -> 160*20/50 = 64.
	c := cellFor(t, testConfig(20, 40), 200, 0)

	area, _ := c.BarAreaHeight()
	require.InDelta(t, 160, area, 1e-9)
	lh, _ := c.LabelHeight()
	require.InDelta(t, 20, lh, 1e-9)
	base, _ := c.BaselineY()
	require.InDelta(t, 180, base, 1e-9)
	maxArea, _ := c.MaxBarAreaHeight()
	require.InDelta(t, 50, maxArea, 1e-9)
	h, _ := c.BarHeight()
	require.InDelta(t, 64, h, 1e-9)
	end, _ := c.EndPoint()
	require.InDelta(t, 25, end.X, 1e-9)
	require.InDelta(t, 116, end.Y, 1e-9)
	w, _ := c.BarWidth()
	require.InDelta(t, 25, w, 1e-9)
	d, _ := c.RoundSize()
	require.InDelta(t, 15, d, 1e-9)
}

func TestCellComparisonHeight(t *testing.T) {
	cfg := testConfig(20, 40)
	cfg.ComparisonValue = 25
	c := cellFor(t, cfg, 200, 0)
	h, ok := c.ComparisonHeight()
	require.True(t, ok)
	require.InDelta(t, 80, h, 1e-9)
	y, ok := c.ComparisonY()
	require.True(t, ok)
	require.InDelta(t, 100, y, 1e-9)
}

func TestCellMarkerBar(t *testing.T) {
	c := cellFor(t, testConfig(20, 40), 200, 1)
	m := c.Marker()
	require.True(t, m.Status.Drawn())
	require.Equal(t, MarkerBar, m.Kind)
	require.Equal(t, Point{X: 25, Y: 180}, m.From)
	require.InDelta(t, 52, m.To.Y, 1e-9)
	require.InDelta(t, 25, m.Width, 1e-9)
}

func TestCellMarkerRound(t *testing.T) {
	cfg := testConfig(20, 40)
	cfg.Style = StyleRound
	m := cellFor(t, cfg, 200, 0).Marker()
	require.Equal(t, MarkerRound, m.Kind)
	require.Equal(t, m.From, m.To)
	require.InDelta(t, 15, m.Diameter, 1e-9)

	cfg.OnlyPathLine = true
	m = cellFor(t, cfg, 200, 0).Marker()
	require.Equal(t, MarkerNone, m.Kind)
	require.ErrorIs(t, m.Status.Skipped, ErrMarkerSuppressed)
}

func TestCellGeometryWithoutScale(t *testing.T) {
	c := NewCell(0, Frame{Width: 50, Height: 100}, 3, jan2020, Scale{Ratios: DefaultRatios()}, CellOptions{})
	_, ok := c.MaxBarAreaHeight()
	require.False(t, ok)
	_, ok = c.EndPoint()
	require.False(t, ok)
	_, ok = c.ComparisonY()
	require.False(t, ok)
	_, ok = c.BaselineY()
	require.True(t, ok)

	c = NewCell(0, Frame{Width: 50, Height: 100}, 3, jan2020, Scale{Max: 3, HasMax: true}, CellOptions{})
	_, ok = c.BarAreaHeight()
	require.False(t, ok)
	_, ok = c.ValueLabel()
	require.False(t, ok)
	_, ok = c.BarWidth()
	require.False(t, ok)
}

func TestCellLabels(t *testing.T) {
	cfg := testConfig(12345.6, 20000)
	cfg.DataType = DataYen
	c := cellFor(t, cfg, 200, 0)

	over, ok := c.ValueLabel()
	require.True(t, ok)
	require.Equal(t, "12345 円", over.Text)
	require.Equal(t, Point{X: 25, Y: 10}, over.Center)
	require.Equal(t, 50.0, over.Width)
	require.Equal(t, 20.0, over.Height)

	under, ok := c.DateLabel()
	require.True(t, ok)
	require.Equal(t, "2020/01", under.Text)
	require.Equal(t, Point{X: 25, Y: 190}, under.Center)
}

func TestCellDates(t *testing.T) {
	values := make([]float64, 14)
	cfg := testConfig(values...)
	c := cellFor(t, cfg, 100, 13)
	label, _ := c.DateLabel()
	require.Equal(t, "2021/02", label.Text)

	cfg.Granularity = Day
	c = cellFor(t, cfg, 100, 13)
	label, _ = c.DateLabel()
	require.Equal(t, "01/14", label.Text)

	cfg.Granularity = Year
	c = cellFor(t, cfg, 100, 13)
	label, _ = c.DateLabel()
	require.Equal(t, "2033", label.Text)
	require.Equal(t, time.Date(2033, time.January, 1, 0, 0, 0, 0, time.UTC), c.Date)
}

func TestCellToContent(t *testing.T) {
	c := cellFor(t, testConfig(1, 2, 3), 100, 2)
	require.Equal(t, Point{X: 125, Y: 40}, c.ToContent(Point{X: 25, Y: 40}))
}
