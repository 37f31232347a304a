// Package cli holds the scrollchart cobra commands.
package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ngthanhdat199/scrollchart/internal/config"
	"github.com/ngthanhdat199/scrollchart/internal/graph"
	"github.com/ngthanhdat199/scrollchart/internal/logging"
	"github.com/ngthanhdat199/scrollchart/internal/source"
)

type rootOptions struct {
	configFile string
}

func Root() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:           "scrollchart",
		Short:         "Scrollable bar and round-point charts",
		Long:          `Show a horizontally scrollable chart of a value series, or export it as PNG / SVG`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "path to config file (toml, yaml or json)")
	rootCmd.PersistentFlags().String("log.level", "info", "set the log level: trace, debug, info, warn, error, fatal or none")
	rootCmd.PersistentFlags().String("log.file", "", "optional log file - if not specified logs go to STDERR")

	rootCmd.AddCommand(Show(opts))
	rootCmd.AddCommand(Export(opts))
	rootCmd.AddCommand(CheckConfig(opts))
	return rootCmd
}

// prepare loads config, sets up logging and reads chart values. The returned
// func must be called when the command is done.
func prepare(cmd *cobra.Command, configFile string) (config.Config, graph.Config, func(), error) {
	conf, meta, err := config.Load(cmd, configFile)
	if err != nil {
		return config.Config{}, graph.Config{}, nil, err
	}
	closeLog, err := logging.Setup(conf.Log.Level, conf.Log.File)
	if err != nil {
		return config.Config{}, graph.Config{}, nil, err
	}
	if meta.FileNotFound {
		log.Warn().Str("path", configFile).Msg("config file not found, using defaults")
	}

	values, err := source.Load(conf.Source)
	if err != nil {
		closeLog()
		return config.Config{}, graph.Config{}, nil, fmt.Errorf("error loading values: %w", err)
	}
	cfg, err := conf.Graph(values)
	if err != nil {
		closeLog()
		return config.Config{}, graph.Config{}, nil, err
	}
	log.Debug().
		Int("values", len(values)).
		Str("style", cfg.Style.String()).
		Str("granularity", cfg.Granularity.String()).
		Time("minimum_date", cfg.MinimumDate).
		Msg("chart config loaded")
	return conf, cfg, closeLog, nil
}
