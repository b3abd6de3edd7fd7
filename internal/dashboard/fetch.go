package dashboard

import (
	"context"
	"time"

	"github.com/canaryct/canarywatch/internal/canary"
)

// Job is a fetch waiting to run. Run it off the update loop and feed the
// Result back through Dashboard.Apply. A Job only captures its request
// parameters, never dashboard state, so it is safe to run concurrently.
type Job struct {
	Resource Resource
	Cycle    string
	Initial  bool

	run func(ctx context.Context) Result
}

// Run performs the fetch and returns its outcome.
func (j Job) Run(ctx context.Context) Result {
	started := time.Now()
	res := j.run(ctx)
	res.Resource = j.Resource
	res.Cycle = j.Cycle
	res.Initial = j.Initial
	res.Duration = time.Since(started)
	return res
}

func fetchMetrics(f canary.Fetcher) func(context.Context) Result {
	return func(ctx context.Context) Result {
		payload, err := f.FetchMetrics(ctx)
		if err != nil {
			return Result{Err: err}
		}
		return Result{Metrics: payload}
	}
}

func fetchMatches(f canary.Fetcher, minutes int) func(context.Context) Result {
	return func(ctx context.Context) Result {
		matches, err := f.FetchRecentMatches(ctx, minutes)
		if err != nil {
			return Result{Err: err}
		}
		if matches == nil {
			matches = []canary.Match{}
		}
		return Result{Matches: matches}
	}
}

func fetchPerformance(f canary.Fetcher, minutes int) func(context.Context) Result {
	return func(ctx context.Context) Result {
		payload, err := f.FetchPerformance(ctx, minutes)
		if err != nil {
			return Result{Err: err}
		}
		return Result{Performance: payload}
	}
}
