package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/canaryct/canarywatch/internal/dashboard"
)

// renderMain renders the full dashboard. The match box gets whatever
// height the bars leave.
func (m Model) renderMain() string {
	top := []string{
		m.renderHeader(),
		m.renderMetricsBar(),
		m.renderFilterBar(),
	}
	bottom := []string{
		m.renderDetail(),
		m.renderCommandBar(),
	}
	used := 0
	for _, bar := range top {
		used += lipgloss.Height(bar)
	}
	for _, bar := range bottom {
		used += lipgloss.Height(bar)
	}
	boxHeight := max(m.height-used, minBoxHeight)

	lines := append(top, m.renderTable(m.width, boxHeight))
	lines = append(lines, bottom...)
	return strings.Join(lines, "\n")
}

// renderHeader renders the logo, connectivity badge, API target and theme
// icon.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := onColor(m.theme.Surface)
	sep := bg.pad(2)

	parts := []string{
		bg.text("canarywatch", styles.Logo),
		m.statusBadge(styles, bg),
	}
	if m.apiURL != "" && m.width >= LayoutCompactWidth {
		parts = append(parts, bg.text(dashboard.Sanitize(m.apiURL), styles.FaintText))
	}
	right := bg.text(m.theme.Name.Icon(), styles.AccentText)
	left := fitRendered(strings.Join(parts, sep), m.width-3-lipgloss.Width(right))

	gap := m.width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	return styles.Header.Width(m.width).Render(left + bg.pad(gap) + right)
}

func (m Model) statusBadge(styles Styles, bg canvas) string {
	switch m.out.status {
	case dashboard.Online:
		return bg.text("● Online", styles.SuccessText)
	case dashboard.Offline:
		return bg.text("● Offline", styles.DangerText)
	default:
		return bg.text("● Connecting", styles.WarningText.Bold(true))
	}
}

// renderMetricsBar renders the aggregate counters and the latest
// performance sample.
func (m Model) renderMetricsBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := onColor(m.theme.Background)

	fields := dashboard.MetricFields
	if m.width < LayoutCompactWidth {
		fields = fields[:4]
	}

	segments := make([]string, 0, len(fields))
	for _, field := range fields {
		segments = append(segments,
			bg.label(field.Label(), m.out.metric(field), styles.MutedText, styles.Text))
	}
	return bg.line(" "+bg.joinFitting(segments, 2, m.width-1), m.width)
}

// renderFilterBar renders the active search, priority and time range.
func (m Model) renderFilterBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := onColor(m.theme.Background)
	st := m.dash.State()

	var search string
	switch {
	case m.searching:
		search = m.search.View()
	case st.Search != "":
		search = bg.text("/"+dashboard.Sanitize(st.Search), styles.AccentText)
	default:
		search = bg.text("/ search", styles.FaintText)
	}

	segments := []string{
		search,
		bg.label("Priority", priorityLabel(string(st.Priority)), styles.MutedText, styles.Text),
		bg.label("Range", rangeLabel(st.EffectiveTimeRange()), styles.MutedText, styles.Text),
		bg.text(m.out.matchCount, styles.AccentText),
	}
	return bg.line(fitRendered(" "+bg.join(segments, 2), m.width), m.width)
}

// renderCommandBar renders the key hints, or the current notice, on the
// left and the page label with the match count on the right. Hints that do
// not fit are dropped so the page label always shows.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := onColor(m.theme.Surface)
	inner := m.width - 2

	p := m.out.pagination
	right := bg.join([]string{
		bg.text(fmt.Sprintf("Page %d of %d", p.Page+1, p.Pages), styles.Text),
		bg.text(m.out.matchCount, styles.MutedText),
	}, 2)
	right = fitRendered(right, inner)
	avail := inner - lipgloss.Width(right) - 2

	var left string
	if m.notice != "" {
		left = fitRendered(bg.text(dashboard.Sanitize(m.notice), styles.WarningText), avail)
	} else {
		left = bg.joinFitting(m.commandHints(styles, bg), 2, avail)
	}

	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	return styles.Header.Width(m.width).Render(left + bg.pad(gap) + right)
}

func (m Model) commandHints(styles Styles, bg canvas) []string {
	type cmd struct{ key, desc string }
	commands := []cmd{
		{"/", "Search"},
		{"p", "Priority"},
		{"t", "Range"},
		{"r", "Refresh"},
		{"[/]", "Page"},
		{"y", "Copy"},
	}
	if m.out.clearVisible {
		commands = append(commands, cmd{"X", "clear"})
	}
	commands = append(commands, cmd{"T", m.theme.Name.Icon()}, cmd{"?", "More"})

	colon := bg.text(":", styles.FaintText)
	hints := make([]string, 0, len(commands))
	for _, c := range commands {
		hints = append(hints, bg.text(c.key, styles.AccentText)+colon+bg.text(c.desc, styles.MutedText))
	}
	return hints
}

func priorityLabel(p string) string {
	if p == "" {
		return "All"
	}
	return strings.ToUpper(p[:1]) + p[1:]
}

func rangeLabel(minutes int) string {
	if minutes%60 == 0 {
		return fmt.Sprintf("%dh", minutes/60)
	}
	return fmt.Sprintf("%dm", minutes)
}
