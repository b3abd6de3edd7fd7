package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/canaryct/canarywatch/internal/dashboard"
)

type column struct {
	title string
	width int
}

// columns lays out the table for the given inner width. Domains takes
// whatever the fixed columns leave; matched domains only appear on wide
// terminals.
func columns(inner int) []column {
	fixed := colTimestamp + colPriority + colRule + colLink + 4*colGap
	cols := []column{
		{"Detected", colTimestamp},
		{"Priority", colPriority},
		{"Rule", colRule},
	}
	flex := inner - fixed
	if inner >= LayoutMatchedWidth {
		matched := flex / 3
		cols = append(cols,
			column{"Domains", flex - matched - colGap},
			column{"Matched", matched},
		)
	} else {
		cols = append(cols, column{"Domains", max(flex, 8)})
	}
	return append(cols, column{"Link", colLink})
}

// renderTable renders the current page inside a titled box.
func (m Model) renderTable(width, height int) string {
	inner := width - 2
	cols := columns(inner)
	bg := onColor(m.theme.SurfaceAlt)
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)

	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = fit(c.title, c.width)
	}
	lines := []string{bg.text(strings.Join(headers, strings.Repeat(" ", colGap)), styles.MutedText.Bold(true))}

	if len(m.out.rows) == 0 {
		msg := m.out.empty
		if msg == "" {
			msg = dashboard.EmptyMessage
		}
		lines = append(lines, bg.text(fit(msg, inner), styles.MutedText))
	}
	// borders and the column header
	start, end := rowWindow(len(m.out.rows), m.cursor, height-3)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderRow(m.out.rows[i], cols, inner, i == m.cursor))
	}

	title := "Matches · " + m.out.matchCount
	if start > 0 || end < len(m.out.rows) {
		title += fmt.Sprintf(" · rows %d-%d of %d", start+1, end, len(m.out.rows))
	}
	return m.renderTitledBox(title, strings.Join(lines, "\n"), width, height)
}

// rowWindow returns the [start, end) range of rows shown in a box with
// room for capacity rows. The window scrolls just enough to keep the
// cursor inside it.
func rowWindow(total, cursor, capacity int) (start, end int) {
	capacity = max(capacity, 1)
	if total <= capacity {
		return 0, total
	}
	if cursor >= capacity {
		start = cursor - capacity + 1
	}
	start = min(start, total-capacity)
	return start, start + capacity
}

// renderRow formats one match. The selected row uses the selection colors
// for every cell so the priority badge stays readable.
func (m Model) renderRow(row dashboard.Row, cols []column, width int, selected bool) string {
	bgColor := m.theme.SurfaceAlt
	if selected {
		bgColor = m.theme.SelectionBg
	}
	bg := onColor(bgColor)
	styles := m.theme.Styles().WithBackground(bgColor)
	text := styles.Text
	if selected {
		text = styles.Text.Foreground(lipgloss.Color(m.theme.SelectionText))
	}

	cells := make([]string, 0, len(cols))
	for _, c := range cols {
		switch c.title {
		case "Detected":
			cells = append(cells, bg.text(fit(row.Timestamp, c.width), styles.MutedText))
		case "Priority":
			// the badge adds one cell of padding on each side
			badge := styles.Badge(row.PriorityTone).Render(fitRendered(row.Priority, c.width-2))
			cells = append(cells, badge+bg.pad(c.width-lipgloss.Width(badge)))
		case "Rule":
			cells = append(cells, bg.text(fit(row.Rule, c.width), styles.AccentText))
		case "Domains":
			cells = append(cells, bg.text(fit(row.Domains, c.width), text))
		case "Matched":
			cells = append(cells, bg.text(fit(row.MatchedDomains, c.width), styles.MutedText))
		case "Link":
			label := fitRendered(row.LookupLabel, c.width)
			link := bg.text(hyperlink(row.LookupURL, label), styles.AccentText.Underline(true))
			cells = append(cells, link+bg.pad(c.width-ansi.StringWidth(label)))
		}
	}
	return bg.line(bg.join(cells, colGap), width)
}

// renderDetail shows every DNS name and the lookup link of the selected
// row.
func (m Model) renderDetail() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := onColor(m.theme.Background)

	row, ok := m.selectedRow()
	if !ok {
		return bg.line("", m.width)
	}
	parts := []string{bg.text(row.Tooltip, styles.Text)}
	if row.MatchedDomains != "" {
		parts = append(parts, bg.label("matched", row.MatchedDomains, styles.MutedText, styles.Text))
	}
	parts = append(parts, bg.text(hyperlink(row.LookupURL, row.LookupURL), styles.FaintText))

	line := " " + bg.join(parts, 2)
	return bg.line(fitRendered(line, m.width), m.width)
}

// renderTitledBox renders content in a box with the title embedded in the
// top border: ┌─── Title ───┐
func (m Model) renderTitledBox(title, content string, width, height int) string {
	bg := onColor(m.theme.SurfaceAlt)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Border))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := width - 2
	title = fitRendered(title, innerWidth-2)
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.text("┌", borderStyle) +
		bg.text(strings.Repeat("─", leftPad), borderStyle) +
		bg.text(" "+title+" ", titleStyle) +
		bg.text(strings.Repeat("─", rightPad), borderStyle) +
		bg.text("┐", borderStyle)

	bottomBorder := bg.text("└", borderStyle) +
		bg.text(strings.Repeat("─", max(innerWidth, 0)), borderStyle) +
		bg.text("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).Background(lipgloss.Color(m.theme.SurfaceAlt))
	contentLines := strings.Split(content, "\n")
	boxHeight := height - 2

	padded := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		padded = append(padded,
			bg.text("│", borderStyle)+
				contentStyle.Render(fitRendered(line, innerWidth))+
				bg.text("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(padded, "\n") + "\n" + bottomBorder
}
