// Package config contains the scrollchart Config and the code to load it
// from a file, SCROLLCHART_* environment variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ngthanhdat199/scrollchart/internal/graph"
	"github.com/ngthanhdat199/scrollchart/internal/source"
)

const EnvPrefix = "SCROLLCHART"

type Config struct {
	// Log configures the global logger.
	Log Log `mapstructure:"log" json:"log" toml:"log" yaml:"log"`
	// Source tells where chart values are read from.
	Source source.Spec `mapstructure:"source" json:"source" toml:"source" yaml:"source"`
	// Chart is the chart style.
	Chart Chart `mapstructure:"chart" json:"chart" toml:"chart" yaml:"chart"`
	// Window is the initial size of the show window.
	Window Window `mapstructure:"window" json:"window" toml:"window" yaml:"window"`
	// Export configures headless rendering.
	Export Export `mapstructure:"export" json:"export" toml:"export" yaml:"export"`
}

type Log struct {
	Level string `mapstructure:"level" json:"level" toml:"level" yaml:"level"`
	File  string `mapstructure:"file" json:"file" toml:"file" yaml:"file"`
}

type Chart struct {
	// MinimumDate is the first cell date, YYYY-MM-DD. Empty leaves it unset.
	MinimumDate time.Time `mapstructure:"minimum_date" json:"minimum_date" toml:"minimum_date" yaml:"minimum_date"`
	Style       string    `mapstructure:"style" json:"style" toml:"style" yaml:"style"`
	Granularity string    `mapstructure:"granularity" json:"granularity" toml:"granularity" yaml:"granularity"`
	DataType    string    `mapstructure:"data_type" json:"data_type" toml:"data_type" yaml:"data_type"`

	ComparisonValue  float64 `mapstructure:"comparison_value" json:"comparison_value" toml:"comparison_value" yaml:"comparison_value"`
	ComparisonHidden bool    `mapstructure:"comparison_hidden" json:"comparison_hidden" toml:"comparison_hidden" yaml:"comparison_hidden"`
	OnlyPathLine     bool    `mapstructure:"only_path_line" json:"only_path_line" toml:"only_path_line" yaml:"only_path_line"`

	BarAreaWidth      float64 `mapstructure:"bar_area_width" json:"bar_area_width" toml:"bar_area_width" yaml:"bar_area_width"`
	LineWidth         float64 `mapstructure:"line_width" json:"line_width" toml:"line_width" yaml:"line_width"`
	BarAreaHeightRate float64 `mapstructure:"bar_area_height_rate" json:"bar_area_height_rate" toml:"bar_area_height_rate" yaml:"bar_area_height_rate"`
	MaxValueRate      float64 `mapstructure:"max_value_rate" json:"max_value_rate" toml:"max_value_rate" yaml:"max_value_rate"`
	BarWidthRate      float64 `mapstructure:"bar_width_rate" json:"bar_width_rate" toml:"bar_width_rate" yaml:"bar_width_rate"`
	RoundSizeRate     float64 `mapstructure:"round_size_rate" json:"round_size_rate" toml:"round_size_rate" yaml:"round_size_rate"`

	Colors Colors `mapstructure:"colors" json:"colors" toml:"colors" yaml:"colors"`
}

// Colors are hex strings in files ("#rrggbb" or "#rrggbbaa").
type Colors struct {
	Bar                       drawing.Color `mapstructure:"bar" json:"bar" toml:"bar" yaml:"bar"`
	Round                     drawing.Color `mapstructure:"round" json:"round" toml:"round" yaml:"round"`
	Text                      drawing.Color `mapstructure:"text" json:"text" toml:"text" yaml:"text"`
	LabelBackground           drawing.Color `mapstructure:"label_background" json:"label_background" toml:"label_background" yaml:"label_background"`
	Background                drawing.Color `mapstructure:"background" json:"background" toml:"background" yaml:"background"`
	Line                      drawing.Color `mapstructure:"line" json:"line" toml:"line" yaml:"line"`
	ComparisonLabelBackground drawing.Color `mapstructure:"comparison_label_background" json:"comparison_label_background" toml:"comparison_label_background" yaml:"comparison_label_background"`
}

type Window struct {
	Width  float32 `mapstructure:"width" json:"width" toml:"width" yaml:"width"`
	Height float32 `mapstructure:"height" json:"height" toml:"height" yaml:"height"`
}

type Export struct {
	Format string `mapstructure:"format" json:"format" toml:"format" yaml:"format"`
	Out    string `mapstructure:"out" json:"out" toml:"out" yaml:"out"`
	Height int    `mapstructure:"height" json:"height" toml:"height" yaml:"height"`
}

type Meta struct {
	FileNotFound bool
}

func defaults() map[string]any {
	d := graph.DefaultConfig()
	return map[string]any{
		"log.level":                                "info",
		"log.file":                                 "",
		"source.kind":                              "",
		"source.inline":                            "",
		"source.path":                              "",
		"source.sheet":                             "",
		"source.column":                            "",
		"source.expr":                              "",
		"chart.minimum_date":                       "",
		"chart.style":                              d.Style.String(),
		"chart.granularity":                        d.Granularity.String(),
		"chart.data_type":                          d.DataType.String(),
		"chart.comparison_value":                   d.ComparisonValue,
		"chart.comparison_hidden":                  d.ComparisonHidden,
		"chart.only_path_line":                     d.OnlyPathLine,
		"chart.bar_area_width":                     d.BarAreaWidth,
		"chart.line_width":                         d.LineWidth,
		"chart.bar_area_height_rate":               d.Ratios.BarAreaHeight,
		"chart.max_value_rate":                     d.Ratios.MaxValue,
		"chart.bar_width_rate":                     d.Ratios.BarWidth,
		"chart.round_size_rate":                    d.Ratios.RoundSize,
		"chart.colors.bar":                         FormatColor(d.Colors.Bar),
		"chart.colors.round":                       FormatColor(d.Colors.Round),
		"chart.colors.text":                        FormatColor(d.Colors.Text),
		"chart.colors.label_background":            FormatColor(d.Colors.LabelBackground),
		"chart.colors.background":                  FormatColor(d.Colors.CellBackground),
		"chart.colors.line":                        FormatColor(d.Colors.Line),
		"chart.colors.comparison_label_background": FormatColor(d.Colors.ComparisonLabelBackground),
		"window.width":                             1000,
		"window.height":                            400,
		"export.format":                            "png",
		"export.out":                               "",
		"export.height":                            300,
	}
}

// DefineFlags registers the flags that can override config keys.
func DefineFlags(cmd *cobra.Command) {
	d := graph.DefaultConfig()
	cmd.Flags().StringP("source.inline", "v", "", "inline values, e.g. \"10,20,15\"")
	cmd.Flags().StringP("source.path", "f", "", "csv, xlsx or json file with values")
	cmd.Flags().String("source.sheet", "", "xlsx sheet name (first sheet when empty)")
	cmd.Flags().String("source.column", "", "csv/xlsx column, 1-based index or letter")
	cmd.Flags().String("source.expr", "", "gjson path selecting values in a json file")
	cmd.Flags().StringP("chart.minimum_date", "d", "", "date of the first value, YYYY-MM-DD")
	cmd.Flags().StringP("chart.style", "s", d.Style.String(), "bar or round")
	cmd.Flags().StringP("chart.granularity", "g", d.Granularity.String(), "year, month or day")
	cmd.Flags().String("chart.data_type", d.DataType.String(), "normal or yen")
	cmd.Flags().Float64("chart.comparison_value", d.ComparisonValue, "comparison line value")
	cmd.Flags().Bool("chart.comparison_hidden", false, "hide the comparison line")
	cmd.Flags().Float64("chart.bar_area_width", d.BarAreaWidth, "width of one cell")
}

var boundFlags = []string{
	"log.level", "log.file",
	"source.inline", "source.path", "source.sheet", "source.column", "source.expr",
	"chart.minimum_date", "chart.style", "chart.granularity", "chart.data_type",
	"chart.comparison_value", "chart.comparison_hidden", "chart.bar_area_width",
	"export.format", "export.out", "export.height",
	"window.width", "window.height",
}

// Load reads configFile (toml, yaml or json by extension) and applies env
// and flag overrides. A missing file is reported in Meta, not as error.
func Load(cmd *cobra.Command, configFile string) (Config, Meta, error) {
	v := viper.NewWithOptions(viper.WithDecodeHook(mapstructure.ComposeDecodeHookFunc(
		stringToDateHookFunc(),
		stringToColorHookFunc(),
	)))
	for k, val := range defaults() {
		v.SetDefault(k, val)
	}
	if cmd != nil {
		for _, name := range boundFlags {
			if f := lookupFlag(cmd, name); f != nil {
				_ = v.BindPFlag(name, f)
			}
		}
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	meta := Meta{}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			var pathErr *os.PathError
			if errors.As(err, &pathErr) {
				meta.FileNotFound = true
			} else {
				return Config{}, Meta{}, fmt.Errorf("error reading config file %s: %w", configFile, err)
			}
		}
	}

	conf := Config{}
	if err := v.Unmarshal(&conf); err != nil {
		return Config{}, Meta{}, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return conf, meta, nil
}

// Graph converts the chart section into a validated graph config.
func (c Config) Graph(values []float64) (graph.Config, error) {
	style, err := graph.ParseStyle(c.Chart.Style)
	if err != nil {
		return graph.Config{}, err
	}
	granularity, err := graph.ParseGranularity(c.Chart.Granularity)
	if err != nil {
		return graph.Config{}, err
	}
	dataType, err := graph.ParseDataType(c.Chart.DataType)
	if err != nil {
		return graph.Config{}, err
	}
	cfg := graph.Config{
		Values:           values,
		MinimumDate:      c.Chart.MinimumDate,
		Style:            style,
		Granularity:      granularity,
		DataType:         dataType,
		ComparisonValue:  c.Chart.ComparisonValue,
		ComparisonHidden: c.Chart.ComparisonHidden,
		OnlyPathLine:     c.Chart.OnlyPathLine,
		BarAreaWidth:     c.Chart.BarAreaWidth,
		LineWidth:        c.Chart.LineWidth,
		Ratios: graph.Ratios{
			BarAreaHeight: c.Chart.BarAreaHeightRate,
			MaxValue:      c.Chart.MaxValueRate,
			BarWidth:      c.Chart.BarWidthRate,
			RoundSize:     c.Chart.RoundSizeRate,
		},
		Colors: graph.Colors{
			Bar:                       c.Chart.Colors.Bar,
			Round:                     c.Chart.Colors.Round,
			Text:                      c.Chart.Colors.Text,
			LabelBackground:           c.Chart.Colors.LabelBackground,
			CellBackground:            c.Chart.Colors.Background,
			Line:                      c.Chart.Colors.Line,
			ComparisonLabelBackground: c.Chart.Colors.ComparisonLabelBackground,
		},
	}
	if err := cfg.Validate(); err != nil {
		return graph.Config{}, err
	}
	return cfg, nil
}

func lookupFlag(cmd *cobra.Command, name string) *pflag.Flag {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f
	}
	return cmd.PersistentFlags().Lookup(name)
}

func stringToDateHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(time.Time{}) {
			return data, nil
		}
		return ParseDate(data.(string))
	}
}

func stringToColorHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(drawing.Color{}) {
			return data, nil
		}
		return ParseColor(data.(string))
	}
}

// ParseDate accepts YYYY-MM-DD or RFC 3339. Empty yields the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
}

// ParseColor accepts "#rrggbb" or "#rrggbbaa", with or without the hash.
func ParseColor(s string) (drawing.Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return drawing.Color{}, fmt.Errorf("invalid color %q, expected #rrggbb or #rrggbbaa", s)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return drawing.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(hex) == 6 {
		n = n<<8 | 0xff
	}
	return drawing.Color{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
}

func FormatColor(c drawing.Color) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
