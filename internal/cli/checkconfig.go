package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ngthanhdat199/scrollchart/internal/config"
	"github.com/ngthanhdat199/scrollchart/internal/source"
)

var errConfigNotFound = errors.New("config file not found")

func CheckConfig(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "checkconfig",
		Short: "Check configuration file",
		Long:  `Check scrollchart configuration file and the values it points to`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkConfig(cmd, root.configFile)
		},
	}
}

func checkConfig(cmd *cobra.Command, configFile string) error {
	if configFile == "" {
		return fmt.Errorf("%w: set one with --config", errConfigNotFound)
	}
	conf, meta, err := config.Load(cmd, configFile)
	if err != nil {
		return fmt.Errorf("error getting config: %w", err)
	}
	if meta.FileNotFound {
		return fmt.Errorf("%w: %s", errConfigNotFound, configFile)
	}
	values, err := source.Load(conf.Source)
	if err != nil {
		return fmt.Errorf("error loading values: %w", err)
	}
	cfg, err := conf.Graph(values)
	if err != nil {
		return fmt.Errorf("error validating config: %w", err)
	}
	top, _ := cfg.Max()
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "config OK: %d values, max %g, style %s\n", len(values), top, cfg.Style)
	return err
}
