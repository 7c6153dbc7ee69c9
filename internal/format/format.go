// Package format holds the display formatters for the viewer and the quote
// CLI. Every function is pure and total: missing or unparsable input
// renders a placeholder instead of failing.
package format

import (
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Placeholder is rendered for any value the API did not supply.
const Placeholder = "-"

var printer = message.NewPrinter(language.English)

// Money renders a monetary value with a magnitude suffix: trillions,
// billions, millions and thousands get T/B/M/K with two decimals, smaller
// values plain two-decimal currency.
func Money(x *float64) string {
	if x == nil {
		return Placeholder
	}
	v := *x
	switch {
	case v >= 1e12:
		return printer.Sprintf("$%.2fT", v/1e12)
	case v >= 1e9:
		return printer.Sprintf("$%.2fB", v/1e9)
	case v >= 1e6:
		return printer.Sprintf("$%.2fM", v/1e6)
	case v >= 1e3:
		return printer.Sprintf("$%.2fK", v/1e3)
	default:
		return printer.Sprintf("$%.2f", v)
	}
}

// Price renders a price with eight decimals below $1 so small-denomination
// coins stay readable, two decimals otherwise.
func Price(x *float64) string {
	if x == nil {
		return Placeholder
	}
	if *x < 1 && *x > -1 {
		return printer.Sprintf("$%.8f", *x)
	}
	return printer.Sprintf("$%.2f", *x)
}

// Percent renders a two-decimal percentage.
func Percent(x *float64) string {
	if x == nil {
		return Placeholder
	}
	return strconv.FormatFloat(*x, 'f', 2, 64) + "%"
}

// Rank renders a listing rank.
func Rank(x *int) string {
	if x == nil {
		return Placeholder
	}
	return strconv.Itoa(*x)
}

// Timestamp renders an ISO-8601 timestamp as "YYYY-MM-DD HH:MM:SS".
// An empty input renders the placeholder; input that is present but does
// not parse is returned verbatim so the raw API value stays visible.
func Timestamp(iso string) string {
	if iso == "" {
		return Placeholder
	}
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return t.Format("2006-01-02 15:04:05")
}
