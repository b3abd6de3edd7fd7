package dashboard

import (
	"github.com/canaryct/canarywatch/internal/canary"
)

// effect mutates state and view in response to one fetch outcome.
type effect func(d *Dashboard, r Result)

// policy maps each resource to what success and failure do. Only a failed
// matches fetch clears anything; stale metrics and performance values stay
// on screen.
var policy = map[Resource]struct {
	success effect
	failure effect
}{
	ResourceMetrics:     {success: applyMetrics, failure: markOffline},
	ResourceMatches:     {success: applyMatches, failure: clearMatches},
	ResourcePerformance: {success: applyPerformance, failure: ignoreFailure},
}

func applyMetrics(d *Dashboard, r Result) {
	m := r.Metrics
	if m == nil {
		m = &canary.MetricsResponse{}
	}
	d.view.SetMetric(FieldTotalMatches, FormatCount(m.TotalMatches))
	d.view.SetMetric(FieldTotalCerts, FormatCount(m.TotalCerts))
	d.view.SetMetric(FieldActiveRules, FormatCount(m.RulesCount))
	d.view.SetMetric(FieldUptime, FormatUptime(m.UptimeSeconds))
	if m.RecentMatches > 0 && !d.state.ClearVisible {
		d.state.ClearVisible = true
		d.view.SetClearVisible(true)
	}
	d.setConnectivity(Online)
}

func markOffline(d *Dashboard, _ Result) {
	d.setConnectivity(Offline)
}

func applyMatches(d *Dashboard, r Result) {
	d.state.Matches = SortNewestFirst(r.Matches)
	d.setConnectivity(Online)
	d.refilter()
}

// clearMatches empties the store and forces the filtered view empty
// without running the filter engine.
func clearMatches(d *Dashboard, _ Result) {
	d.setConnectivity(Offline)
	d.state.Matches = []canary.Match{}
	d.state.Filtered = []canary.Match{}
	d.state.Page = 0
	d.Render()
}

func applyPerformance(d *Dashboard, r Result) {
	if r.Performance == nil || r.Performance.Current == nil {
		return
	}
	cur := r.Performance.Current
	d.view.SetMetric(FieldCertsPerMinute, FormatRate(cur.CertsPerMinute))
	d.view.SetMetric(FieldMatchesPerMinute, FormatRate(cur.MatchesPerMinute))
	d.view.SetMetric(FieldAvgMatchTime, FormatMicros(cur.AvgMatchTimeUS))
	d.view.SetMetric(FieldCPU, FormatPercent(cur.CPUPercent))
	d.view.SetMetric(FieldMemory, FormatMegabytes(cur.MemoryUsedMB))
	d.view.SetMetric(FieldGoroutines, FormatCount(cur.GoroutineCount))
}

func ignoreFailure(*Dashboard, Result) {}
