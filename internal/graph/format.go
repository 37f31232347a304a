package graph

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatValue renders the label shown above a cell.
func FormatValue(v float64, dt DataType) string {
	if dt == DataYen {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return formatPlain(v) + " 円"
		}
		t := math.Trunc(v)
		if t == 0 {
			t = 0 // drop the sign of -0
		}
		return strconv.FormatFloat(t, 'f', 0, 64) + " 円"
	}
	return formatPlain(v)
}

// formatPlain prints the shortest exact decimal and keeps one fractional
// digit on integral values, so 100 prints as "100.0". Magnitudes from 1e16
// up and below 1e-4 switch to exponent form ("1e+16", "1e-05").
func formatPlain(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	if a := math.Abs(v); a >= 1e16 || (a != 0 && a < 1e-4) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if strings.ContainsRune(s, '.') {
		return s
	}
	return s + ".0"
}

func FormatDate(t time.Time, g DateGranularity) string {
	switch g {
	case Year:
		return t.Format("2006")
	case Day:
		return t.Format("01/02")
	default:
		return t.Format("2006/01")
	}
}

// AddUnits moves t by n granularity steps. Month and year steps clamp the day
// to the end of the target month instead of overflowing into the next one.
func AddUnits(t time.Time, g DateGranularity, n int) time.Time {
	switch g {
	case Day:
		return t.AddDate(0, 0, n)
	case Year:
		return addMonths(t, 12*n)
	default:
		return addMonths(t, n)
	}
}

func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	total := int(m) - 1 + n
	y += floorDiv(total, 12)
	m = time.Month(total - floorDiv(total, 12)*12 + 1)
	if last := daysIn(y, m); d > last {
		d = last
	}
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
