package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/require"

	"github.com/ngthanhdat199/scrollchart/internal/chartview"
	"github.com/ngthanhdat199/scrollchart/internal/graph"
	"github.com/ngthanhdat199/scrollchart/internal/render"
	"github.com/ngthanhdat199/scrollchart/internal/source"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := Root()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log.level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scrollchart.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExportPNGToStdout(t *testing.T) {
	out, err := execute(t, "export", "-v", "10,20,30", "-d", "2020-01-01")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "\x89PNG"))
}

func TestExportFormatFromOutExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.svg")
	_, err := execute(t, "export", "-v", "10,20,30", "-d", "2020-01-01", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "<svg")
	require.Contains(t, string(data), "2020/02")
}

func TestExportNoValues(t *testing.T) {
	_, err := execute(t, "export", "-d", "2020-01-01")
	require.ErrorIs(t, err, render.ErrEmpty)
}

func TestExportBadValues(t *testing.T) {
	_, err := execute(t, "export", "-v", "1,x")
	require.Error(t, err)
}

func TestExportNonFiniteValues(t *testing.T) {
	out, err := execute(t, "export", "-v", "1,NaN,3", "-d", "2020-01-01")
	require.ErrorIs(t, err, source.ErrNotFinite)
	require.False(t, strings.HasPrefix(out, "\x89PNG"))
}

func TestCheckConfig(t *testing.T) {
	path := writeConfig(t, `
[source]
inline = "10, 20, 30"

[chart]
minimum_date = "2020-01-01"
style = "round"
`)
	out, err := execute(t, "checkconfig", "-c", path)
	require.NoError(t, err)
	require.Equal(t, "config OK: 3 values, max 30, style round\n", out)
}

func TestCheckConfigErrors(t *testing.T) {
	_, err := execute(t, "checkconfig")
	require.ErrorIs(t, err, errConfigNotFound)

	_, err = execute(t, "checkconfig", "-c", filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorIs(t, err, errConfigNotFound)

	_, err = execute(t, "checkconfig", "-c", writeConfig(t, "[chart]\nbar_width_rate = 3\n"))
	require.ErrorIs(t, err, graph.ErrInvalidConfig)
}

func newTestScreen(t *testing.T) *chartScreen {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	win := test.NewWindow(nil)
	t.Cleanup(win.Close)
	view := chartview.New([]float64{10, 20, 30}, time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC), graph.StyleBar)
	s := newChartScreen(win, view, 200)
	win.SetContent(s.content)
	win.Resize(fyne.NewSize(800, 400))
	return s
}

func TestChartScreenReloadAppliesControls(t *testing.T) {
	s := newTestScreen(t)
	require.Equal(t, "3 values, max 30", s.status.Text)

	s.style.SetSelected(graph.StyleRound.String())
	s.granularity.SetSelected(graph.Year.String())
	s.comparison.SetText("15")
	require.Equal(t, graph.StyleBar, s.view.Applied().Style)

	test.Tap(s.reload)
	applied := s.view.Applied()
	require.Equal(t, graph.StyleRound, applied.Style)
	require.Equal(t, graph.Year, applied.Granularity)
	require.Equal(t, 15.0, applied.ComparisonValue)

	l := s.view.Layout()
	require.Equal(t, graph.MarkerRound, l.Cells[0].Marker().Kind)
	label, ok := l.Cells[2].DateLabel()
	require.True(t, ok)
	require.Equal(t, "2022", label.Text)
}

func TestChartScreenInvalidComparison(t *testing.T) {
	s := newTestScreen(t)
	s.style.SetSelected(graph.StyleRound.String())
	s.comparison.SetText("lots")

	test.Tap(s.reload)
	require.Equal(t, graph.StyleBar, s.view.Applied().Style)
}

func TestChartScreenNonFiniteComparison(t *testing.T) {
	s := newTestScreen(t)
	s.style.SetSelected(graph.StyleRound.String())

	for _, text := range []string{"NaN", "Inf", "-inf"} {
		s.comparison.SetText(text)
		require.Error(t, s.comparison.Validate())
		test.Tap(s.reload)
		require.Equal(t, graph.StyleBar, s.view.Applied().Style, text)
		require.Equal(t, float64(graph.DefaultComparisonValue), s.view.Applied().ComparisonValue)
	}
}

func TestChartScreenExportHonoursHiddenLine(t *testing.T) {
	s := newTestScreen(t)

	var buf bytes.Buffer
	require.NoError(t, s.writeImage(&buf, ".svg"))
	require.Contains(t, buf.String(), "100000.0")

	s.hide.SetChecked(true)
	buf.Reset()
	require.NoError(t, s.writeImage(&buf, ".svg"))
	require.NotContains(t, buf.String(), "100000.0")
}

func TestChartScreenWriteImage(t *testing.T) {
	s := newTestScreen(t)

	var buf bytes.Buffer
	require.NoError(t, s.writeImage(&buf, ".svg"))
	require.Contains(t, buf.String(), "<svg")

	require.Error(t, s.writeImage(&buf, ".gif"))
}

func TestStatusText(t *testing.T) {
	require.Equal(t, "Nothing drawn: "+graph.ErrNoValues.Error(), statusText(graph.Compute(graph.DefaultConfig(), 100)))
}
