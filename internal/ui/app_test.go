package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/canaryct/canarywatch/internal/canary"
	"github.com/canaryct/canarywatch/internal/dashboard"
	"github.com/canaryct/canarywatch/internal/prefs"
)

type stubFetcher struct {
	metrics    *canary.MetricsResponse
	perf       *canary.PerformanceResponse
	matches    []canary.Match
	matchesErr error
}

func (f *stubFetcher) FetchMetrics(context.Context) (*canary.MetricsResponse, error) {
	return f.metrics, nil
}

func (f *stubFetcher) FetchPerformance(context.Context, int) (*canary.PerformanceResponse, error) {
	return f.perf, nil
}

func (f *stubFetcher) FetchRecentMatches(context.Context, int) ([]canary.Match, error) {
	if f.matchesErr != nil {
		return nil, f.matchesErr
	}
	return f.matches, nil
}

func newStubFetcher() *stubFetcher {
	return &stubFetcher{
		metrics: &canary.MetricsResponse{TotalMatches: 1234, TotalCerts: 99, RulesCount: 4, UptimeSeconds: 7200},
		perf:    &canary.PerformanceResponse{Current: &canary.PerformanceSnapshot{CertsPerMinute: 1500.25}},
		matches: []canary.Match{
			{DetectedAt: "2024-01-01T00:00:00Z", DNSNames: []string{"old.example"}, MatchedRule: "phish", Priority: "low", TbsSha256: "aa"},
			{DetectedAt: "2024-01-02T00:00:00Z", DNSNames: []string{"new.example", "www.new.example"}, MatchedRule: "brand", Priority: "critical", TbsSha256: "bb"},
		},
	}
}

func newTestModel(t *testing.T, f canary.Fetcher) Model {
	t.Helper()
	m := New(Options{
		Fetcher:   f,
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
		Dashboard: dashboard.Options{PollInterval: time.Millisecond, Location: time.UTC},
	})
	m.copyText = func(string) error { return nil }
	m.openURL = func(string) error { return nil }
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
	return updated.(Model)
}

// settle runs cmd and feeds fetch results back through Update until no
// fetches remain. Scheduler ticks are collected, not delivered.
func settle(t *testing.T, m Model, cmd tea.Cmd) (Model, []tickMsg) {
	t.Helper()
	var ticks []tickMsg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case resultMsg:
			next, nc := m.Update(msg)
			m = next.(Model)
			queue = append(queue, nc)
		case tickMsg:
			ticks = append(ticks, msg)
		}
	}
	return m, ticks
}

func loaded(t *testing.T, f canary.Fetcher) Model {
	t.Helper()
	m := newTestModel(t, f)
	m, _ = settle(t, m, m.Init())
	return m
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "ctrl+c":
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, c := m.Update(msg)
		m = next.(Model)
		cmd = c
	}
	return m, cmd
}

func plainView(m Model) string {
	return ansi.Strip(m.View())
}

func TestInit_LoadsThenArmsOneTick(t *testing.T) {
	m := newTestModel(t, newStubFetcher())
	if !strings.Contains(plainView(m), "● Connecting") {
		t.Fatalf("badge before any outcome should read Connecting:\n%s", plainView(m))
	}

	m, ticks := settle(t, m, m.Init())
	if len(ticks) != 1 || ticks[0].generation != m.dash.Scheduler().Generation() {
		t.Fatalf("ticks = %#v, want exactly one for the current generation", ticks)
	}

	view := plainView(m)
	for _, want := range []string{"● Online", "1,234", "2h", "1,500.25", "new.example, www.new.example", "2 matches", "Page 1 of 1"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Index(view, "new.example") > strings.Index(view, "old.example") {
		t.Fatalf("newest match should render first:\n%s", view)
	}
}

func TestTick_RearmsOnlyForCurrentGeneration(t *testing.T) {
	m := loaded(t, newStubFetcher())

	if _, cmd := m.Update(tickMsg{generation: 99}); cmd != nil {
		t.Fatalf("stale tick should not re-arm")
	}

	_, cmd := m.Update(tickMsg{generation: m.dash.Scheduler().Generation()})
	if _, ticks := settle(t, m, cmd); len(ticks) != 1 {
		t.Fatalf("current tick should re-arm once, got %d", len(ticks))
	}
}

func TestMatchesFailure_ShowsOfflineAndEmptyState(t *testing.T) {
	f := newStubFetcher()
	f.matchesErr = &canary.FetchError{Kind: canary.KindTransport, Err: errors.New("refused")}
	m := loaded(t, f)

	view := plainView(m)
	if !strings.Contains(view, "● Offline") {
		t.Fatalf("badge should read Offline:\n%s", view)
	}
	if !strings.Contains(view, "No matches found") || !strings.Contains(view, "0 matches") {
		t.Fatalf("empty state not rendered:\n%s", view)
	}
}

func TestSearch_FiltersAsYouType(t *testing.T) {
	m := loaded(t, newStubFetcher())

	m, _ = press(t, m, "/", "w", "w", "w")
	if !m.searching {
		t.Fatalf("search mode not entered")
	}
	st := m.dash.State()
	if st.Search != "www" || len(st.Filtered) != 1 {
		t.Fatalf("search = %q filtered = %d, want www / 1", st.Search, len(st.Filtered))
	}

	m, _ = press(t, m, "enter")
	if m.searching || m.dash.State().Search != "www" {
		t.Fatalf("enter should keep the search and leave input mode")
	}

	m, _ = press(t, m, "esc")
	if m.dash.State().Search != "" || len(m.dash.State().Filtered) != 2 {
		t.Fatalf("esc should clear the search")
	}
}

func TestPriorityAndRangeKeys(t *testing.T) {
	m := loaded(t, newStubFetcher())

	m, _ = press(t, m, "p")
	if m.dash.State().Priority != canary.PriorityCritical {
		t.Fatalf("priority = %q, want critical", m.dash.State().Priority)
	}
	if !strings.Contains(plainView(m), "Priority: Critical") {
		t.Fatalf("priority label missing:\n%s", plainView(m))
	}

	m, cmd := press(t, m, "t")
	if m.dash.State().TimeRangeMinutes != 60 {
		t.Fatalf("time range = %d, want 60", m.dash.State().TimeRangeMinutes)
	}
	m, _ = settle(t, m, cmd)
	if !strings.Contains(plainView(m), "Range: 1h") {
		t.Fatalf("range label missing:\n%s", plainView(m))
	}
}

func TestCursorAndPaging(t *testing.T) {
	f := newStubFetcher()
	f.matches = nil
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 45; i++ {
		f.matches = append(f.matches, canary.Match{
			DetectedAt: base.Add(-time.Duration(i) * time.Minute).Format(time.RFC3339),
			DNSNames:   []string{fmt.Sprintf("host%d.example", i)},
			Priority:   "low",
			TbsSha256:  fmt.Sprintf("%02x", i),
		})
	}
	m := loaded(t, f)

	m, _ = press(t, m, "j", "j", "k")
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.cursor)
	}
	m, _ = press(t, m, "k", "k")
	if m.cursor != 0 {
		t.Fatalf("cursor should stop at 0, got %d", m.cursor)
	}

	m, _ = press(t, m, "j", "]")
	if m.cursor != 0 || m.dash.State().Page != 1 {
		t.Fatalf("next page: cursor %d page %d, want 0 / 1", m.cursor, m.dash.State().Page)
	}
	if !strings.Contains(plainView(m), "Page 2 of 3") {
		t.Fatalf("page label missing:\n%s", plainView(m))
	}
	m, _ = press(t, m, "[", "[")
	if m.dash.State().Page != 0 {
		t.Fatalf("page = %d, want 0", m.dash.State().Page)
	}
}

func TestCopyLink(t *testing.T) {
	m := loaded(t, newStubFetcher())
	var copied string
	m.copyText = func(s string) error {
		copied = s
		return nil
	}

	_, cmd := press(t, m, "y")
	if cmd == nil {
		t.Fatalf("y should return a copy command")
	}
	msg, ok := cmd().(noticeMsg)
	if !ok || copied != "https://crt.sh/?q=bb" {
		t.Fatalf("copied %q (msg %v), want the selected row's lookup link", copied, msg)
	}
}

func TestClear_RequiresVisibilityAndConfirmation(t *testing.T) {
	m := loaded(t, newStubFetcher())
	m, _ = press(t, m, "X")
	if m.confirm != nil {
		t.Fatalf("X should be ignored while the clear control is hidden")
	}

	f := newStubFetcher()
	f.metrics.RecentMatches = 3
	m = loaded(t, f)
	if !strings.Contains(plainView(m), "X:clear") {
		t.Fatalf("clear hint missing:\n%s", plainView(m))
	}

	m, _ = press(t, m, "X")
	if m.confirm == nil || !strings.Contains(plainView(m), "Are you sure you want to clear all matches from memory?") {
		t.Fatalf("confirmation not shown:\n%s", plainView(m))
	}
	m, cmd := press(t, m, "n")
	if m.confirm != nil || cmd != nil {
		t.Fatalf("n should dismiss without action")
	}

	m, _ = press(t, m, "X")
	m, cmd = press(t, m, "y")
	if m.confirm != nil || cmd == nil {
		t.Fatalf("y should dismiss and delegate")
	}
	if _, ok := cmd().(noticeMsg); !ok {
		t.Fatalf("delegation should produce a notice")
	}
	if len(m.dash.State().Matches) != 2 {
		t.Fatalf("matches changed locally after delegated clear")
	}
}

func TestThemeToggle_PersistsAndSwapsIcon(t *testing.T) {
	m := loaded(t, newStubFetcher())
	if !strings.Contains(plainView(m), "☾") {
		t.Fatalf("light theme should show the moon icon")
	}

	m, _ = press(t, m, "T")
	if m.theme.Name != prefs.ThemeDark || !strings.Contains(plainView(m), "☀") {
		t.Fatalf("toggle did not switch to dark")
	}
	p, _ := prefs.Load(m.prefsPath)
	if p.Theme != prefs.ThemeDark {
		t.Fatalf("persisted theme = %q, want dark", p.Theme)
	}
}

func TestThemeToggle_SaveFailureStillApplies(t *testing.T) {
	m := loaded(t, newStubFetcher())
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	m.prefsPath = filepath.Join(blocker, "prefs.toml")

	m, _ = press(t, m, "T")
	if m.theme.Name != prefs.ThemeDark {
		t.Fatalf("theme should toggle even when saving fails")
	}
}

func TestView_EscapesHostileFields(t *testing.T) {
	f := newStubFetcher()
	f.matches = []canary.Match{{
		DetectedAt:  "2024-01-02T00:00:00Z",
		DNSNames:    []string{"evil\x1b[2J.example"},
		MatchedRule: "r\x07",
		Priority:    "high",
		TbsSha256:   "cc",
	}}
	m := loaded(t, f)

	view := m.View()
	if strings.Contains(view, "\x1b[2J") {
		t.Fatalf("raw control sequence reached the terminal")
	}
	if !strings.Contains(view, `evil\x1b[2J.example`) || !strings.Contains(view, `r\x07`) {
		t.Fatalf("escaped form not shown:\n%s", view)
	}
}

func TestQuit_StopsScheduler(t *testing.T) {
	m := loaded(t, newStubFetcher())
	m, cmd := press(t, m, "q")
	if cmd == nil {
		t.Fatalf("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q should return tea.Quit")
	}
	if m.dash.Scheduler().Running() {
		t.Fatalf("scheduler still running after quit")
	}
}

func TestHelp_AnyKeyCloses(t *testing.T) {
	m := loaded(t, newStubFetcher())
	m, _ = press(t, m, "?")
	if !m.showHelp || !strings.Contains(plainView(m), "Keyboard Shortcuts") {
		t.Fatalf("help not shown")
	}
	m, _ = press(t, m, "x")
	if m.showHelp {
		t.Fatalf("help should close on any key")
	}
}

func numberedMatches(n int) []canary.Match {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	matches := make([]canary.Match, 0, n)
	for i := 0; i < n; i++ {
		matches = append(matches, canary.Match{
			DetectedAt: base.Add(-time.Duration(i) * time.Minute).Format(time.RFC3339),
			DNSNames:   []string{fmt.Sprintf("host%02d.example", i)},
			Priority:   "medium",
			TbsSha256:  fmt.Sprintf("%02x", i),
		})
	}
	return matches
}

func resize(m Model, width, height int) Model {
	next, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return next.(Model)
}

// tableLines returns the rows drawn inside the match box.
func tableLines(view string) []string {
	var rows []string
	for _, line := range strings.Split(view, "\n") {
		if strings.HasPrefix(line, "│") {
			rows = append(rows, line)
		}
	}
	return rows
}

func TestView_FitsTerminal(t *testing.T) {
	f := newStubFetcher()
	f.matches = numberedMatches(20)
	f.metrics.RecentMatches = 1
	base := loaded(t, f)

	sizes := []struct{ width, height int }{
		{80, 24},
		{100, 24},
		{120, 30},
		{160, 40},
	}
	for _, size := range sizes {
		t.Run(fmt.Sprintf("%dx%d", size.width, size.height), func(t *testing.T) {
			m := resize(base, size.width, size.height)
			lines := strings.Split(plainView(m), "\n")
			if len(lines) != size.height {
				t.Fatalf("view has %d lines, want %d:\n%s", len(lines), size.height, strings.Join(lines, "\n"))
			}
			for i, line := range lines {
				if w := ansi.StringWidth(line); w > size.width {
					t.Fatalf("line %d is %d cells wide, want <= %d: %q", i, w, size.width, line)
				}
			}
			if !strings.Contains(lines[0], "● Online") {
				t.Fatalf("header lost the status badge: %q", lines[0])
			}
			last := lines[len(lines)-1]
			if !strings.Contains(last, "Page 1 of 1") || !strings.Contains(last, "20 matches") {
				t.Fatalf("command bar lost the page label: %q", last)
			}
		})
	}
}

func TestView_NoticeKeepsPageLabel(t *testing.T) {
	m := resize(loaded(t, newStubFetcher()), 80, 24)
	next, _ := m.Update(noticeMsg("Copied https://crt.sh/?q=" + strings.Repeat("ab", 32)))
	m = next.(Model)

	lines := strings.Split(plainView(m), "\n")
	last := lines[len(lines)-1]
	if len(lines) != 24 || !strings.Contains(last, "Copied") || !strings.Contains(last, "Page 1 of 1") {
		t.Fatalf("notice should share the bar with the page label: %q (%d lines)", last, len(lines))
	}
}

func TestTable_CursorStaysVisibleOnShortTerminal(t *testing.T) {
	f := newStubFetcher()
	f.matches = numberedMatches(20)
	m := resize(loaded(t, f), 100, 24)

	rows := tableLines(plainView(m))
	if !strings.Contains(strings.Join(rows, "\n"), "host00.example") {
		t.Fatalf("first row should be visible:\n%s", plainView(m))
	}
	if !strings.Contains(plainView(m), "rows 1-16 of 20") {
		t.Fatalf("title should say which rows are shown:\n%s", plainView(m))
	}

	for i := 0; i < 19; i++ {
		m, _ = press(t, m, "j")
	}
	if m.cursor != 19 {
		t.Fatalf("cursor = %d, want 19", m.cursor)
	}

	view := plainView(m)
	rows = tableLines(view)
	found := false
	for _, row := range rows {
		if strings.Contains(row, "host19.example") {
			found = true
		}
		if strings.Contains(row, "host00.example") {
			t.Fatalf("window should have scrolled past the first row:\n%s", view)
		}
	}
	if !found {
		t.Fatalf("selected row not drawn in the table:\n%s", view)
	}
	if !strings.Contains(view, "rows 5-20 of 20") {
		t.Fatalf("title should follow the window:\n%s", view)
	}

	var copied string
	m.copyText = func(s string) error {
		copied = s
		return nil
	}
	_, cmd := press(t, m, "y")
	cmd()
	if copied != "https://crt.sh/?q=13" {
		t.Fatalf("copied %q, want the link of the visible selected row", copied)
	}
}

func TestRowWindow(t *testing.T) {
	cases := []struct {
		total, cursor, capacity int
		start, end              int
	}{
		{5, 0, 10, 0, 5},
		{20, 0, 16, 0, 16},
		{20, 15, 16, 0, 16},
		{20, 16, 16, 1, 17},
		{20, 19, 16, 4, 20},
		{20, 3, 0, 3, 4},
	}
	for _, tc := range cases {
		start, end := rowWindow(tc.total, tc.cursor, tc.capacity)
		if start != tc.start || end != tc.end {
			t.Fatalf("rowWindow(%d, %d, %d) = %d, %d; want %d, %d",
				tc.total, tc.cursor, tc.capacity, start, end, tc.start, tc.end)
		}
	}
}

func TestView_LongPriorityStaysOnOneLine(t *testing.T) {
	f := newStubFetcher()
	f.matches = []canary.Match{{
		DetectedAt:  "2024-01-02T00:00:00Z",
		DNSNames:    []string{"a.example"},
		MatchedRule: "r",
		Priority:    "informational-extended-priority",
		TbsSha256:   "dd",
	}}
	m := resize(loaded(t, f), 100, 24)

	rows := tableLines(plainView(m))
	for _, row := range rows {
		if w := ansi.StringWidth(row); w > 100 {
			t.Fatalf("row is %d cells wide: %q", w, row)
		}
	}
	var matchRow string
	for _, row := range rows {
		if strings.Contains(row, "a.example") {
			matchRow = row
		}
	}
	if !strings.Contains(matchRow, "informa…") || !strings.Contains(matchRow, "crt.sh") {
		t.Fatalf("priority should be truncated and the link kept on the row: %q", matchRow)
	}
	if strings.Contains(matchRow, "informational-extended-priority") {
		t.Fatalf("priority badge not fitted: %q", matchRow)
	}
}

func TestView_LinkLabelFollowsLookupHost(t *testing.T) {
	m := New(Options{
		Fetcher:   newStubFetcher(),
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
		Dashboard: dashboard.Options{
			PollInterval: time.Millisecond,
			Location:     time.UTC,
			LookupURL:    "https://ct.io/search",
		},
	})
	m = resize(m, 160, 40)
	m, _ = settle(t, m, m.Init())

	rows := strings.Join(tableLines(plainView(m)), "\n")
	if !strings.Contains(rows, "ct.io") || strings.Contains(rows, "crt.sh") {
		t.Fatalf("link text should come from the lookup host:\n%s", rows)
	}
}

func TestRefresh_NoticeWhileInFlight(t *testing.T) {
	m := loaded(t, newStubFetcher())

	m, first := press(t, m, "r")
	if first == nil || m.notice != "" {
		t.Fatalf("first refresh should start a fetch without a notice")
	}

	m, _ = press(t, m, "r")
	if m.notice != "Refresh already in progress" {
		t.Fatalf("notice = %q, want refresh already in progress", m.notice)
	}
	if !strings.Contains(plainView(m), "Refresh already in progress") {
		t.Fatalf("notice not rendered:\n%s", plainView(m))
	}

	m, _ = settle(t, m, first)
	next, _ := m.Update(clearNoticeMsg(m.noticeSeq))
	m = next.(Model)
	m, cmd := press(t, m, "r")
	if cmd == nil || m.notice != "" {
		t.Fatalf("refresh should run again once the fetch completed")
	}
}
