// Package source loads the value sequence of a chart from inline text, CSV,
// xlsx workbooks or JSON documents.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/xuri/excelize/v2"
)

type Kind string

const (
	KindInline Kind = "inline"
	KindCSV    Kind = "csv"
	KindXLSX   Kind = "xlsx"
	KindJSON   Kind = "json"
)

// Spec selects where values come from.
type Spec struct {
	Kind Kind `mapstructure:"kind"`
	// Inline is a comma or whitespace separated list, used by KindInline.
	Inline string `mapstructure:"inline"`
	// Path of the csv, xlsx or json file.
	Path string `mapstructure:"path"`
	// Sheet name for xlsx, first sheet when empty.
	Sheet string `mapstructure:"sheet"`
	// Column is a 1-based index or a letter ("B") for csv and xlsx.
	Column string `mapstructure:"column"`
	// Expr is a gjson path for json, e.g. "data.#.amount".
	Expr string `mapstructure:"expr"`
}

var (
	ErrUnknownKind = errors.New("unknown source kind")
	// ErrNotFinite rejects NaN and infinities, which have no bar height.
	ErrNotFinite = errors.New("not a finite number")
)

// ParseError points at the offending input position.
type ParseError struct {
	Row   int
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d: cannot parse %q as number: %v", e.Row, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads values according to spec. An empty kind is inferred from the
// path extension, falling back to inline.
func Load(spec Spec) ([]float64, error) {
	kind := spec.Kind
	if kind == "" {
		kind = inferKind(spec.Path)
	}
	switch kind {
	case KindInline:
		return ParseInline(spec.Inline)
	case KindCSV:
		f, err := os.Open(spec.Path)
		if err != nil {
			return nil, fmt.Errorf("open csv: %w", err)
		}
		defer f.Close()
		return ReadCSV(f, spec.Column)
	case KindXLSX:
		return ReadXLSX(spec.Path, spec.Sheet, spec.Column)
	case KindJSON:
		data, err := os.ReadFile(spec.Path)
		if err != nil {
			return nil, fmt.Errorf("read json: %w", err)
		}
		return ReadJSON(data, spec.Expr)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

func inferKind(path string) Kind {
	if path == "" {
		return KindInline
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsm":
		return KindXLSX
	default:
		return Kind(strings.TrimPrefix(ext, "."))
	}
}

func ParseInline(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n'
	})
	values := make([]float64, 0, len(fields))
	for i, f := range fields {
		v, err := parseNumber(f)
		if err != nil {
			return nil, &ParseError{Row: i + 1, Value: f, Err: err}
		}
		values = append(values, v)
	}
	return values, nil
}

// ReadCSV reads one column. A first row that does not parse is treated as
// a header; blank cells are skipped.
func ReadCSV(r io.Reader, column string) ([]float64, error) {
	col, err := columnIndex(column)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return columnValues(records, col)
}

// ReadXLSX reads one column of a sheet with the same header rule as ReadCSV.
func ReadXLSX(path, sheet, column string) ([]float64, error) {
	col, err := columnIndex(column)
	if err != nil {
		return nil, err
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return columnValues(rows, col)
}

// ReadJSON evaluates a gjson path that must yield numbers or an array of
// numbers.
func ReadJSON(data []byte, expr string) ([]float64, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid json document")
	}
	var res gjson.Result
	if expr == "" {
		res = gjson.ParseBytes(data)
	} else {
		res = gjson.GetBytes(data, expr)
	}
	if !res.Exists() {
		return nil, fmt.Errorf("json path %q matched nothing", expr)
	}
	items := []gjson.Result{res}
	if res.IsArray() {
		items = res.Array()
	}
	values := make([]float64, 0, len(items))
	for i, item := range items {
		switch item.Type {
		case gjson.Number:
			v := item.Float()
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, &ParseError{Row: i + 1, Value: item.Raw, Err: ErrNotFinite}
			}
			values = append(values, v)
		case gjson.String:
			v, err := parseNumber(strings.TrimSpace(item.Str))
			if err != nil {
				return nil, &ParseError{Row: i + 1, Value: item.Str, Err: err}
			}
			values = append(values, v)
		default:
			return nil, &ParseError{Row: i + 1, Value: item.Raw, Err: errors.New("not a number")}
		}
	}
	return values, nil
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotFinite
	}
	return v, nil
}

func columnValues(rows [][]string, col int) ([]float64, error) {
	values := make([]float64, 0, len(rows))
	for i, row := range rows {
		if col >= len(row) {
			continue
		}
		cell := strings.TrimSpace(row[col])
		if cell == "" {
			continue
		}
		v, err := parseNumber(cell)
		if err != nil {
			if i == 0 {
				continue
			}
			return nil, &ParseError{Row: i + 1, Value: cell, Err: err}
		}
		values = append(values, v)
	}
	return values, nil
}

// columnIndex turns "2" or "B" into a 0-based index. Empty means the first
// column.
func columnIndex(column string) (int, error) {
	column = strings.TrimSpace(column)
	if column == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(column); err == nil {
		if n < 1 {
			return 0, fmt.Errorf("column %d out of range", n)
		}
		return n - 1, nil
	}
	n, err := excelize.ColumnNameToNumber(strings.ToUpper(column))
	if err != nil {
		return 0, fmt.Errorf("invalid column %q: %w", column, err)
	}
	return n - 1, nil
}
