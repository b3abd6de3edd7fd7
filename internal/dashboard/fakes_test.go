package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/canaryct/canarywatch/internal/canary"
)

type recordingView struct {
	metrics      map[MetricField]string
	rows         []Row
	empty        string
	emptyShown   bool
	matchCount   string
	pagination   Pagination
	status       Connectivity
	statusCalls  int
	clearVisible bool
}

func newRecordingView() *recordingView {
	return &recordingView{metrics: make(map[MetricField]string)}
}

func (v *recordingView) SetMetric(field MetricField, value string) { v.metrics[field] = value }

func (v *recordingView) SetRows(rows []Row) {
	v.rows = rows
	v.emptyShown = false
}

func (v *recordingView) SetEmpty(message string) {
	v.rows = nil
	v.empty = message
	v.emptyShown = true
}

func (v *recordingView) SetMatchCount(label string)   { v.matchCount = label }
func (v *recordingView) SetPagination(p Pagination)   { v.pagination = p }
func (v *recordingView) SetClearVisible(visible bool) { v.clearVisible = visible }

func (v *recordingView) SetStatus(c Connectivity) {
	v.status = c
	v.statusCalls++
}

type fakeFetcher struct {
	metrics     *canary.MetricsResponse
	metricsErr  error
	perf        *canary.PerformanceResponse
	perfErr     error
	matches     []canary.Match
	matchesErr  error
	gotMinutes  []int
	gotPerfMins []int
}

func (f *fakeFetcher) FetchMetrics(context.Context) (*canary.MetricsResponse, error) {
	if f.metricsErr != nil {
		return nil, f.metricsErr
	}
	return f.metrics, nil
}

func (f *fakeFetcher) FetchPerformance(_ context.Context, minutes int) (*canary.PerformanceResponse, error) {
	f.gotPerfMins = append(f.gotPerfMins, minutes)
	if f.perfErr != nil {
		return nil, f.perfErr
	}
	return f.perf, nil
}

func (f *fakeFetcher) FetchRecentMatches(_ context.Context, minutes int) ([]canary.Match, error) {
	f.gotMinutes = append(f.gotMinutes, minutes)
	if f.matchesErr != nil {
		return nil, f.matchesErr
	}
	return f.matches, nil
}

var errNetwork = &canary.FetchError{Kind: canary.KindTransport, Path: "/api", Err: errors.New("connection refused")}

func newTestDashboard(f canary.Fetcher, v View) *Dashboard {
	n := 0
	return New(f, v, Options{
		Location: time.UTC,
		NewCycleID: func() string {
			n++
			return fmt.Sprintf("cycle-%d", n)
		},
	})
}

// runInitialLoad drives Begin/Apply synchronously and returns the Next of
// the final Apply.
func runInitialLoad(d *Dashboard) (Next, []Resource) {
	var order []Resource
	jobs := d.Begin()
	var last Next
	for len(jobs) > 0 {
		job := jobs[0]
		order = append(order, job.Resource)
		last = d.Apply(job.Run(context.Background()))
		jobs = last.Jobs
	}
	return last, order
}

func match(detectedAt, priority string, names ...string) canary.Match {
	return canary.Match{
		DetectedAt:  detectedAt,
		DNSNames:    names,
		MatchedRule: "rule",
		Priority:    canary.Priority(priority),
		TbsSha256:   "ab12",
	}
}

func manyMatches(n int) []canary.Match {
	out := make([]canary.Match, n)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range out {
		out[i] = match(base.Add(-time.Duration(i)*time.Minute).Format(time.RFC3339), "low", fmt.Sprintf("host%d.example", i))
	}
	return out
}
