package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/canaryct/canarywatch/internal/canary"
	"github.com/canaryct/canarywatch/internal/dashboard"
	"github.com/canaryct/canarywatch/internal/telemetry"
)

// Snapshot runs the initial load once, without the TUI, and prints the
// first page to w. It fails when the matches fetch fails.
func Snapshot(ctx context.Context, opts Options, w io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg.LogFile, opts.Debug)
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := canary.NewClient(cfg.APIURL, cfg.RequestTimeout)
	if err != nil {
		return fmt.Errorf("init canary client: %w", err)
	}

	view := newTextView()
	d := dashboard.New(client, view, dashboardOptions(cfg, logger, telemetry.New()))

	var matchesErr error
	jobs := d.Begin()
	for len(jobs) > 0 {
		res := jobs[0].Run(ctx)
		if res.Resource == dashboard.ResourceMatches && !res.OK() {
			matchesErr = res.Err
		}
		jobs = d.Apply(res).Jobs
	}
	d.Stop()

	if err := view.write(w, client.BaseURL()); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if matchesErr != nil {
		return fmt.Errorf("fetch matches: %w", matchesErr)
	}
	return nil
}

// textView is a plain-text dashboard.View for one-shot output.
type textView struct {
	metrics      map[dashboard.MetricField]string
	rows         []dashboard.Row
	empty        string
	matchCount   string
	pagination   dashboard.Pagination
	status       dashboard.Connectivity
	clearVisible bool
}

var _ dashboard.View = (*textView)(nil)

func newTextView() *textView {
	return &textView{metrics: make(map[dashboard.MetricField]string)}
}

func (v *textView) SetMetric(field dashboard.MetricField, value string) { v.metrics[field] = value }
func (v *textView) SetMatchCount(label string)                          { v.matchCount = label }
func (v *textView) SetPagination(p dashboard.Pagination)                { v.pagination = p }
func (v *textView) SetStatus(c dashboard.Connectivity)                  { v.status = c }
func (v *textView) SetClearVisible(visible bool)                        { v.clearVisible = visible }

func (v *textView) SetRows(rows []dashboard.Row) {
	v.rows = rows
	v.empty = ""
}

func (v *textView) SetEmpty(message string) {
	v.rows = nil
	v.empty = message
}

func (v *textView) write(w io.Writer, api string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "canarywatch  ● %s  %s\n", v.status, dashboard.Sanitize(api))

	metrics := make([]string, 0, len(dashboard.MetricFields))
	for _, field := range dashboard.MetricFields {
		value, ok := v.metrics[field]
		if !ok {
			value = "-"
		}
		metrics = append(metrics, fmt.Sprintf("%s: %s", field.Label(), value))
	}
	b.WriteString(strings.Join(metrics, "  "))
	b.WriteString("\n\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}

	if len(v.rows) == 0 {
		if _, err := fmt.Fprintln(w, v.empty); err != nil {
			return err
		}
	} else {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "DETECTED\tPRIORITY\tRULE\tDOMAINS\tMATCHED\tLOOKUP")
		for _, row := range v.rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				row.Timestamp, row.Priority, row.Rule, row.Domains, row.MatchedDomains, row.LookupURL)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\nPage %d of %d  %s\n", v.pagination.Page+1, v.pagination.Pages, v.matchCount)
	return err
}
