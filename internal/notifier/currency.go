package notifier

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// NotAvailable is printed for every missing value.
const NotAvailable = "N/A"

var (
	crore = decimal.NewFromInt(1_00_00_000)
	lakh  = decimal.NewFromInt(1_00_000)
)

// FormatINR renders v in rupees with Indian digit grouping, e.g. ₹1,23,45,678.00.
func FormatINR(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	s := d.StringFixed(2)
	intPart, fracPart, _ := strings.Cut(s, ".")
	return sign + "₹" + groupIndian(intPart) + "." + fracPart
}

// FormatLargeINR uses Cr and L suffixes from one lakh upwards.
func FormatLargeINR(v float64) string {
	d := decimal.NewFromFloat(v)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	switch {
	case d.GreaterThanOrEqual(crore):
		return sign + "₹" + d.Div(crore).StringFixed(2) + " Cr"
	case d.GreaterThanOrEqual(lakh):
		return sign + "₹" + d.Div(lakh).StringFixed(2) + " L"
	default:
		return sign + FormatINR(d.InexactFloat64())
	}
}

// groupIndian groups the last three digits, then pairs: 12345678 -> 1,23,45,678.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}

// FormatPercent renders a percentage with two decimals and a sign.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

// FormatOptional renders a nil value as N/A, otherwise applies format.
func FormatOptional(v *float64, format func(float64) string) string {
	if v == nil {
		return NotAvailable
	}
	return format(*v)
}

// FormatRatio renders a plain two-decimal number.
func FormatRatio(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func optionalString(s *string) string {
	if s == nil || *s == "" {
		return NotAvailable
	}
	return *s
}
