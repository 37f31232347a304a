package cli

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ngthanhdat199/scrollchart/internal/chartview"
	"github.com/ngthanhdat199/scrollchart/internal/config"
	"github.com/ngthanhdat199/scrollchart/internal/graph"
	"github.com/ngthanhdat199/scrollchart/internal/render"
)

const appID = "io.github.ngthanhdat199.scrollchart"

func Show(root *rootOptions) *cobra.Command {
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Open the chart in a window",
		Long:  `Open a window with the scrollable chart and controls to restyle and reload it`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return show(cmd, root.configFile)
		},
	}
	config.DefineFlags(showCmd)
	showCmd.Flags().Float32("window.width", 1000, "initial window width")
	showCmd.Flags().Float32("window.height", 400, "initial window height")
	return showCmd
}

func show(cmd *cobra.Command, configFile string) error {
	conf, cfg, closeLog, err := prepare(cmd, configFile)
	if err != nil {
		return err
	}
	defer closeLog()

	a := app.NewWithID(appID)
	win := a.NewWindow("scrollchart")
	view := chartview.NewWithConfig(cfg)
	screen := newChartScreen(win, view, conf.Export.Height)
	win.SetContent(screen.content)
	win.Resize(fyne.NewSize(conf.Window.Width, conf.Window.Height))
	log.Info().Int("values", len(cfg.Values)).Msg("showing chart")
	win.ShowAndRun()
	return nil
}

// chartScreen is the show window: a control bar above the chart and a
// status line below it.
type chartScreen struct {
	win          fyne.Window
	view         *chartview.GraphView
	exportHeight int

	style       *widget.Select
	granularity *widget.Select
	dataType    *widget.Select
	comparison  *widget.Entry
	hide        *widget.Check
	onlyPath    *widget.Check
	reload      *widget.Button
	export      *widget.Button
	status      *widget.Label

	content fyne.CanvasObject
}

func newChartScreen(win fyne.Window, view *chartview.GraphView, exportHeight int) *chartScreen {
	s := &chartScreen{win: win, view: view, exportHeight: exportHeight}
	cfg := view.Config()

	s.style = widget.NewSelect([]string{graph.StyleBar.String(), graph.StyleRound.String()}, func(v string) {
		if style, err := graph.ParseStyle(v); err == nil {
			view.SetStyle(style)
		}
	})
	s.style.SetSelected(cfg.Style.String())

	s.granularity = widget.NewSelect([]string{graph.Year.String(), graph.Month.String(), graph.Day.String()}, func(v string) {
		if g, err := graph.ParseGranularity(v); err == nil {
			view.SetGranularity(g)
		}
	})
	s.granularity.SetSelected(cfg.Granularity.String())

	s.dataType = widget.NewSelect([]string{graph.DataNormal.String(), graph.DataYen.String()}, func(v string) {
		if d, err := graph.ParseDataType(v); err == nil {
			view.SetDataType(d)
		}
	})
	s.dataType.SetSelected(cfg.DataType.String())

	s.comparison = widget.NewEntry()
	s.comparison.SetText(strconv.FormatFloat(cfg.ComparisonValue, 'f', -1, 64))
	s.comparison.Validator = func(text string) error {
		_, err := parseComparison(text)
		return err
	}
	s.comparison.OnSubmitted = func(string) { s.applyComparison() }

	s.hide = widget.NewCheck("Hide line", view.SetComparisonHidden)
	s.hide.SetChecked(cfg.ComparisonHidden)
	s.onlyPath = widget.NewCheck("Path only", view.SetOnlyPathLine)
	s.onlyPath.SetChecked(cfg.OnlyPathLine)

	s.reload = widget.NewButton("Reload", s.doReload)
	s.export = widget.NewButton("Export", s.showExport)
	s.status = widget.NewLabel(statusText(view.Layout()))

	view.OnCellTapped = s.showCell

	controls := container.NewHBox(
		s.style, s.granularity, s.dataType,
		widget.NewLabel("Comparison"), container.NewGridWrap(fyne.NewSize(100, s.comparison.MinSize().Height), s.comparison),
		s.hide, s.onlyPath,
		layout.NewSpacer(),
		s.reload, s.export,
	)
	s.content = container.NewBorder(
		container.NewPadded(controls),
		container.NewPadded(s.status),
		nil, nil,
		view,
	)
	return s
}

func (s *chartScreen) applyComparison() bool {
	v, err := parseComparison(s.comparison.Text)
	if err != nil {
		dialog.ShowError(fmt.Errorf("comparison value: %w", err), s.win)
		return false
	}
	s.view.SetComparisonValue(v)
	return true
}

func parseComparison(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%v is not a finite number", v)
	}
	return v, nil
}

func (s *chartScreen) doReload() {
	if !s.applyComparison() {
		return
	}
	s.view.Reload()
	s.status.SetText(statusText(s.view.Layout()))
}

func (s *chartScreen) showCell(c graph.Cell) {
	info := fmt.Sprintf("#%d", c.Index+1)
	if l, ok := c.DateLabel(); ok {
		info += "\n" + l.Text
	}
	if l, ok := c.ValueLabel(); ok {
		info += "\n" + l.Text
	}
	dialog.ShowInformation("Value", info, s.win)
}

func (s *chartScreen) showExport() {
	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, s.win)
			return
		}
		if wc == nil {
			return
		}
		defer wc.Close()
		if err := s.writeImage(wc, wc.URI().Extension()); err != nil {
			log.Error().Err(err).Str("uri", wc.URI().String()).Msg("export failed")
			dialog.ShowError(err, s.win)
			return
		}
		log.Info().Str("uri", wc.URI().String()).Msg("chart exported")
	}, s.win)
	d.SetFileName("chart.png")
	d.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".svg"}))
	d.Show()
}

func (s *chartScreen) writeImage(w io.Writer, ext string) error {
	format, err := render.ParseFormat(ext)
	if err != nil {
		return err
	}
	_, err = render.Write(w, format, s.view.Applied(), s.exportHeight)
	return err
}

func statusText(l graph.Layout) string {
	if err := l.Status.Skipped; err != nil {
		return "Nothing drawn: " + err.Error()
	}
	text := fmt.Sprintf("%d values", len(l.Cells))
	if l.HasMax {
		text += fmt.Sprintf(", max %g", l.Max)
	}
	return text
}
