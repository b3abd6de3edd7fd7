package dashboard

import (
	"time"

	"github.com/canaryct/canarywatch/internal/canary"
)

// Resource identifies one of the three polled endpoints.
type Resource int

const (
	ResourceMetrics Resource = iota
	ResourceMatches
	ResourcePerformance
)

// Resources is the order fetches are issued in, both for the initial load
// and for each scheduled cycle.
var Resources = []Resource{ResourceMetrics, ResourceMatches, ResourcePerformance}

func (r Resource) String() string {
	switch r {
	case ResourceMetrics:
		return "metrics"
	case ResourceMatches:
		return "matches"
	case ResourcePerformance:
		return "performance"
	default:
		return "unknown"
	}
}

// Result is the uniform outcome of one fetch. Exactly one payload field is
// set on success; Err is set on failure.
type Result struct {
	Resource Resource
	Cycle    string
	Initial  bool
	Duration time.Duration

	Metrics     *canary.MetricsResponse
	Performance *canary.PerformanceResponse
	Matches     []canary.Match

	Err error
}

// OK reports whether the fetch succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Kind classifies the failure; zero on success.
func (r Result) Kind() canary.ErrorKind {
	return canary.KindOf(r.Err)
}
