package dashboard

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatCount renders n with digit grouping, e.g. 1234567 → "1,234,567".
func FormatCount(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatRate renders f with digit grouping and at most three fraction
// digits, trailing zeros removed.
func FormatRate(f float64) string {
	out := printer.Sprintf("%.3f", f)
	if strings.Contains(out, ".") {
		out = strings.TrimRight(out, "0")
		out = strings.TrimSuffix(out, ".")
	}
	if out == "-0" {
		return "0"
	}
	return out
}

// FormatUptime renders seconds as a single largest-unit label.
func FormatUptime(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	switch {
	case seconds < 60:
		return fmt.Sprintf("%ds", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%dm", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%dh", seconds/3600)
	default:
		return fmt.Sprintf("%dd", seconds/86400)
	}
}

// FormatMicros renders an average match time.
func FormatMicros(us int64) string {
	return fmt.Sprintf("%d μs", us)
}

// FormatPercent renders a CPU percentage with one decimal.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// FormatMegabytes renders memory use with one decimal.
func FormatMegabytes(mb float64) string {
	return fmt.Sprintf("%.1f MB", mb)
}

// FormatMatchCount is the label used for both match-count surfaces.
func FormatMatchCount(n int) string {
	return fmt.Sprintf("%d matches", n)
}
