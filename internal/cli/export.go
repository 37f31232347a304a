package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ngthanhdat199/scrollchart/internal/config"
	"github.com/ngthanhdat199/scrollchart/internal/render"
)

func Export(root *rootOptions) *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Render the chart to an image",
		Long:  `Render the whole chart, not only the visible part, to a PNG or SVG image`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return export(cmd, root.configFile)
		},
	}
	config.DefineFlags(exportCmd)
	exportCmd.Flags().String("export.format", "png", "png or svg, taken from the --export.out extension when not set")
	exportCmd.Flags().StringP("export.out", "o", "", "output file - if not specified the image is written to STDOUT")
	exportCmd.Flags().Int("export.height", 300, "image height in pixels")
	return exportCmd
}

func export(cmd *cobra.Command, configFile string) error {
	conf, cfg, closeLog, err := prepare(cmd, configFile)
	if err != nil {
		return err
	}
	defer closeLog()

	format, err := render.ParseFormat(exportFormat(cmd, conf))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	l, err := render.Write(&buf, format, cfg, conf.Export.Height)
	if err != nil {
		return fmt.Errorf("error rendering chart: %w", err)
	}
	if err := l.Status.Skipped; err != nil {
		log.Warn().Err(err).Msg("chart cells skipped")
	}

	if conf.Export.Out == "" {
		_, err = cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(conf.Export.Out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("error writing %s: %w", conf.Export.Out, err)
	}
	log.Info().
		Str("path", conf.Export.Out).
		Str("format", format.String()).
		Int("cells", len(l.Cells)).
		Msg("chart exported")
	return nil
}

func exportFormat(cmd *cobra.Command, conf config.Config) string {
	if f := cmd.Flags().Lookup("export.format"); f != nil && f.Changed {
		return conf.Export.Format
	}
	if ext := filepath.Ext(conf.Export.Out); ext != "" {
		return ext
	}
	return conf.Export.Format
}
