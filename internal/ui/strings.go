package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// fit truncates s to width terminal cells, marking the cut with an
// ellipsis, and pads the result with spaces to exactly width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) > width {
		s = ansi.Truncate(s, width, "…")
	}
	return padRight(s, width)
}

// padRight pads s with spaces to width terminal cells.
func padRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// hyperlink wraps text in an OSC 8 hyperlink to url.
func hyperlink(url, text string) string {
	if url == "" {
		return text
	}
	return ansi.SetHyperlink(url) + text + ansi.ResetHyperlink()
}

// fitRendered truncates already styled text to width cells.
func fitRendered(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
