// Package format is the locale adapter between operator-typed text and the
// numeric core: it parses decimal-comma input and renders Italian-style
// figures (thousands ".", decimals ",").
package format

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrNotANumber is returned when operator input cannot be read as a number.
var ErrNotANumber = errors.New("not a number")

const (
	// MoneyDecimals is the precision shown for currency figures.
	MoneyDecimals = 2
	// MeasureDecimals is the precision shown for area and consumption figures.
	MeasureDecimals = 3
)

var printer = message.NewPrinter(language.Italian)

// ParseDecimal reads a number typed by the operator. Both "," and "." are
// accepted as decimal separator; surrounding spaces are ignored.
func ParseDecimal(s string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if cleaned == "" {
		return 0, fmt.Errorf("%w: empty input", ErrNotANumber)
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, s)
	}
	return v, nil
}

// ParseInt reads a whole number. Values such as "50,0" are accepted as long
// as they carry no fractional part.
func ParseInt(s string) (int, error) {
	v, err := ParseDecimal(s)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) || v > math.MaxInt32 || v < math.MinInt32 {
		return 0, fmt.Errorf("%w: %q is not a whole number", ErrNotANumber, s)
	}
	return int(v), nil
}

// Number renders x with the given number of decimals, "." as thousands
// separator and "," as decimal separator.
func Number(x float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return printer.Sprintf(fmt.Sprintf("%%.%df", decimals), x)
}

// EUR renders a currency amount as "€ 1.234,56".
func EUR(x float64) string {
	return "€ " + Number(x, MoneyDecimals)
}

// Measure renders an area or consumption figure with three decimals.
func Measure(x float64) string {
	return Number(x, MeasureDecimals)
}

// Plain renders a parameter value with no rounding and "," as decimal
// separator, e.g. 0.006 → "0,006", 16000 → "16000".
func Plain(x float64) string {
	return strings.Replace(strconv.FormatFloat(x, 'f', -1, 64), ".", ",", 1)
}
