package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ngthanhdat199/scrollchart/internal/graph"
)

func renderConfig(values ...float64) graph.Config {
	cfg := graph.DefaultConfig()
	cfg.Values = values
	cfg.MinimumDate = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	return cfg
}

func rgbaAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestWritePNG(t *testing.T) {
	cfg := renderConfig(10, 20)
	cfg.ComparisonValue = 12.5

	var buf bytes.Buffer
	l, err := Write(&buf, FormatPNG, cfg, 200)
	require.NoError(t, err)
	require.Len(t, l.Cells, 2)
	require.InDelta(t, 100, l.Comparison.Y, 1e-9)

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, 100, img.Bounds().Dx())
	require.Equal(t, 200, img.Bounds().Dy())

	// Bar of the first cell runs from y=180 up to y=116 around x=25.
	bar := rgbaAt(img, 25, 150)
	require.InDelta(t, int(cfg.Colors.Bar.R), int(bar.R), 8)
	require.InDelta(t, int(cfg.Colors.Bar.B), int(bar.B), 8)

	bg := rgbaAt(img, 5, 150)
	require.Equal(t, uint8(0xff), bg.R)
	require.Equal(t, uint8(0xff), bg.G)

	// Comparison line crosses the second cell outside its bar.
	line := rgbaAt(img, 95, 100)
	require.Greater(t, int(line.R), 180)
	require.Less(t, int(line.G), 120)
}

func TestWriteRoundPNG(t *testing.T) {
	cfg := renderConfig(10, 20)
	cfg.Style = graph.StyleRound
	cfg.Ratios.RoundSize = 0.5

	var buf bytes.Buffer
	l, err := Write(&buf, FormatPNG, cfg, 200)
	require.NoError(t, err)
	end, ok := l.Cells[0].EndPoint()
	require.True(t, ok)

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	dot := rgbaAt(img, int(end.X), int(end.Y))
	require.InDelta(t, int(cfg.Colors.Round.B), int(dot.B), 8)
	require.InDelta(t, int(cfg.Colors.Round.R), int(dot.R), 8)
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	_, err := Write(&buf, FormatSVG, renderConfig(1, 2, 3), 150)
	require.NoError(t, err)
	out := buf.String()
	require.True(t, strings.Contains(out, "<svg"), out)
	require.Contains(t, out, "2020/03")
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	_, err := Write(&buf, FormatPNG, renderConfig(), 200)
	require.ErrorIs(t, err, ErrEmpty)
	require.ErrorIs(t, err, graph.ErrNoValues)
	require.Zero(t, buf.Len())
}

func TestWriteInvalidConfig(t *testing.T) {
	cfg := renderConfig(1)
	cfg.BarAreaWidth = 0
	_, err := Write(&bytes.Buffer{}, FormatPNG, cfg, 200)
	require.ErrorIs(t, err, graph.ErrInvalidConfig)
}

func TestWriteNonFiniteValues(t *testing.T) {
	for _, cfg := range []graph.Config{
		renderConfig(1, math.NaN(), 3),
		renderConfig(1, math.Inf(1)),
	} {
		var buf bytes.Buffer
		_, err := Write(&buf, FormatPNG, cfg, 200)
		require.ErrorIs(t, err, graph.ErrInvalidConfig)
		require.Zero(t, buf.Len())
	}

	cfg := renderConfig(1, 2)
	cfg.ComparisonValue = math.NaN()
	_, err := Write(&bytes.Buffer{}, FormatSVG, cfg, 200)
	require.ErrorIs(t, err, graph.ErrInvalidConfig)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(".SVG")
	require.NoError(t, err)
	require.Equal(t, FormatSVG, f)
	f, err = ParseFormat("")
	require.NoError(t, err)
	require.Equal(t, FormatPNG, f)
	_, err = ParseFormat("gif")
	require.Error(t, err)
}
