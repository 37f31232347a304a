// Package graph computes the layout of a scrollable bar / round-point chart:
// one fixed-width cell per value, each scaled against the maximum value, plus
// a shared comparison-value line.
package graph

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

type Style int

const (
	StyleBar Style = iota
	StyleRound
)

func (s Style) String() string {
	switch s {
	case StyleRound:
		return "round"
	default:
		return "bar"
	}
}

// ParseStyle accepts "bar" or "round".
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bar", "":
		return StyleBar, nil
	case "round":
		return StyleRound, nil
	}
	return StyleBar, fmt.Errorf("unknown style %q", s)
}

// DateGranularity is the step between two neighbouring cells and also selects
// the date label format.
type DateGranularity int

const (
	Year DateGranularity = iota
	Month
	Day
)

func (g DateGranularity) String() string {
	switch g {
	case Year:
		return "year"
	case Day:
		return "day"
	default:
		return "month"
	}
}

func ParseGranularity(s string) (DateGranularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "year":
		return Year, nil
	case "month", "":
		return Month, nil
	case "day":
		return Day, nil
	}
	return Month, fmt.Errorf("unknown date granularity %q", s)
}

// DataType selects how the value label above a cell is formatted.
type DataType int

const (
	DataNormal DataType = iota
	DataYen
)

func (d DataType) String() string {
	if d == DataYen {
		return "yen"
	}
	return "normal"
}

func ParseDataType(s string) (DataType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal", "":
		return DataNormal, nil
	case "yen":
		return DataYen, nil
	}
	return DataNormal, fmt.Errorf("unknown data type %q", s)
}

// Ratios are the cell layout proportions. Every field must be in (0,1].
type Ratios struct {
	// BarAreaHeight is the share of the cell height reserved for the bar.
	BarAreaHeight float64
	// MaxValue is the headroom factor: the maximum value reaches
	// MaxValue x bar area height.
	MaxValue float64
	// BarWidth is the share of the cell width used as bar stroke width.
	BarWidth float64
	// RoundSize is the marker diameter as a share of the cell width.
	RoundSize float64
}

type Colors struct {
	Bar                       drawing.Color
	Round                     drawing.Color
	Text                      drawing.Color
	LabelBackground           drawing.Color
	CellBackground            drawing.Color
	Line                      drawing.Color
	ComparisonLabelBackground drawing.Color
}

// Config is everything a layout pass reads. It is passed explicitly into
// each pass; there is no process-wide style state.
type Config struct {
	Values []float64
	// MinimumDate is the date of the first cell. The zero time means unset.
	MinimumDate time.Time

	Style       Style
	Granularity DateGranularity
	DataType    DataType

	ComparisonValue  float64
	ComparisonHidden bool
	// OnlyPathLine suppresses the round marker.
	OnlyPathLine bool

	BarAreaWidth float64
	LineWidth    float64

	Ratios Ratios
	Colors Colors
}

const (
	DefaultBarAreaWidth    = 50
	DefaultLineWidth       = 2
	DefaultComparisonValue = 100000

	ComparisonLabelWidth  = 50
	ComparisonLabelHeight = 20
	LabelFontSize         = 10
)

func DefaultRatios() Ratios {
	return Ratios{
		BarAreaHeight: 0.8,
		MaxValue:      0.8,
		BarWidth:      0.5,
		RoundSize:     0.3,
	}
}

func DefaultColors() Colors {
	return Colors{
		Bar:                       drawing.Color{R: 0x4a, G: 0x90, B: 0xe2, A: 0xff},
		Round:                     drawing.Color{R: 0x4a, G: 0x90, B: 0xe2, A: 0xff},
		Text:                      drawing.Color{R: 0, G: 0, B: 0, A: 0xff},
		LabelBackground:           drawing.Color{},
		CellBackground:            drawing.Color{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Line:                      drawing.Color{R: 0xff, G: 0, B: 0, A: 0xff},
		ComparisonLabelBackground: drawing.Color{R: 0xaa, G: 0xaa, B: 0xaa, A: 0xb3},
	}
}

func DefaultConfig() Config {
	return Config{
		Style:           StyleBar,
		Granularity:     Month,
		DataType:        DataNormal,
		ComparisonValue: DefaultComparisonValue,
		BarAreaWidth:    DefaultBarAreaWidth,
		LineWidth:       DefaultLineWidth,
		Ratios:          DefaultRatios(),
		Colors:          DefaultColors(),
	}
}

// Clone returns a copy that does not share the Values backing array.
func (c Config) Clone() Config {
	out := c
	if c.Values != nil {
		out.Values = append([]float64(nil), c.Values...)
	}
	return out
}

// Max returns the largest value; ok is false for an empty sequence.
func (c Config) Max() (float64, bool) {
	var top float64
	for i, v := range c.Values {
		if i == 0 || v > top {
			top = v
		}
	}
	return top, len(c.Values) > 0
}

func (c Config) Validate() error {
	check := func(name string, v float64) error {
		if !(v > 0 && v <= 1) {
			return fmt.Errorf("%w: %s ratio %v is outside (0,1]", ErrInvalidConfig, name, v)
		}
		return nil
	}
	for _, r := range []struct {
		name string
		v    float64
	}{
		{"bar area height", c.Ratios.BarAreaHeight},
		{"max value", c.Ratios.MaxValue},
		{"bar width", c.Ratios.BarWidth},
		{"round size", c.Ratios.RoundSize},
	} {
		if err := check(r.name, r.v); err != nil {
			return err
		}
	}
	for i, v := range c.Values {
		if !finite(v) {
			return fmt.Errorf("%w: value %d is %v", ErrInvalidConfig, i, v)
		}
	}
	if !finite(c.ComparisonValue) {
		return fmt.Errorf("%w: comparison value is %v", ErrInvalidConfig, c.ComparisonValue)
	}
	if !(c.BarAreaWidth > 0) || !finite(c.BarAreaWidth) {
		return fmt.Errorf("%w: bar area width must be finite and positive, got %v", ErrInvalidConfig, c.BarAreaWidth)
	}
	if c.LineWidth < 0 || !finite(c.LineWidth) {
		return fmt.Errorf("%w: line width must be finite and not negative, got %v", ErrInvalidConfig, c.LineWidth)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
