package collector

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidTicker is returned for symbols outside the NSE/BSE format.
var ErrInvalidTicker = errors.New("invalid ticker")

var tickerPattern = regexp.MustCompile(`^[A-Z0-9&-]+\.(NS|BO)$`)

// NormalizeTicker trims whitespace and upper-cases the symbol.
func NormalizeTicker(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// ValidateTicker accepts SYMBOL.NS (NSE) and SYMBOL.BO (BSE).
func ValidateTicker(symbol string) error {
	if symbol == "" {
		return fmt.Errorf("%w: ticker cannot be empty", ErrInvalidTicker)
	}
	if !tickerPattern.MatchString(symbol) {
		return fmt.Errorf("%w: %q, use SYMBOL.NS for NSE or SYMBOL.BO for BSE", ErrInvalidTicker, symbol)
	}
	return nil
}

// ParseTickers splits a comma or space separated list and normalizes each entry.
func ParseTickers(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if t := NormalizeTicker(f); t != "" {
			out = append(out, t)
		}
	}
	return out
}
