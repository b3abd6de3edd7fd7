// Package ui is the Bubble Tea front end of canarywatch.
//
// The Model owns a dashboard.Dashboard and a set of surfaces that
// implement dashboard.View. Fetch jobs returned by the dashboard run as
// tea.Cmds; their results come back as messages and are applied on the
// Update loop, which is the only place dashboard state changes.
//
// Layout, top to bottom:
//
//   - header: logo, connectivity badge, API target, theme icon
//   - metrics bar: totals, uptime and the latest performance sample
//   - filter bar: search, priority, time range, match count
//   - match table: one page of matches with an OSC 8 lookup link per row
//   - detail line: every DNS name of the selected row
//   - command bar: key hints, page label, match count, notices
//
// Themes are light and dark; T toggles between them and persists the
// choice through the prefs package.
package ui
