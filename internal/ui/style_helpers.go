package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// canvas paints text onto a single background color. Lipgloss resets after
// every styled run, so the spaces between runs must be painted as well or
// the bar shows holes.
type canvas struct {
	fill  lipgloss.Style
	blank string
}

func onColor(color string) canvas {
	fill := lipgloss.NewStyle().Background(lipgloss.Color(color))
	return canvas{fill: fill, blank: fill.Render(" ")}
}

// text renders s word by word so runs of spaces keep the background.
func (c canvas) text(s string, style lipgloss.Style) string {
	if s == "" {
		return ""
	}
	styled := style.Inherit(c.fill)
	var b strings.Builder
	for i, word := range strings.Split(s, " ") {
		if i > 0 {
			b.WriteString(c.blank)
		}
		if word != "" {
			b.WriteString(styled.Render(word))
		}
	}
	return b.String()
}

func (c canvas) pad(n int) string {
	if n <= 0 {
		return ""
	}
	return c.fill.Render(strings.Repeat(" ", n))
}

// label renders "caption: value".
func (c canvas) label(caption, value string, captionStyle, valueStyle lipgloss.Style) string {
	return c.text(caption+":", captionStyle) + c.blank + c.text(value, valueStyle)
}

func (c canvas) join(parts []string, gap int) string {
	return strings.Join(parts, c.pad(gap))
}

// joinFitting joins as many leading parts as fit in width cells.
func (c canvas) joinFitting(parts []string, gap, width int) string {
	kept := make([]string, 0, len(parts))
	used := 0
	for _, part := range parts {
		w := lipgloss.Width(part)
		if len(kept) > 0 {
			w += gap
		}
		if used+w > width {
			break
		}
		kept = append(kept, part)
		used += w
	}
	return c.join(kept, gap)
}

// line stretches rendered content to width.
func (c canvas) line(content string, width int) string {
	return c.fill.Width(width).Render(content)
}
