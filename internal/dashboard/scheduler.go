package dashboard

import "time"

// DefaultPollInterval is the refresh cadence once the initial load is done.
const DefaultPollInterval = 5 * time.Second

// Scheduler tracks the repeating refresh cycle. It owns no goroutines; the
// caller arms a timer for Period and hands the generation back to Accept
// when it fires, so ticks armed before Stop are ignored.
type Scheduler struct {
	period     time.Duration
	started    bool
	stopped    bool
	generation int
	inFlight   map[Resource]bool
}

// NewScheduler returns an idle scheduler. A non-positive period uses
// DefaultPollInterval.
func NewScheduler(period time.Duration) *Scheduler {
	if period <= 0 {
		period = DefaultPollInterval
	}
	return &Scheduler{
		period:   period,
		inFlight: make(map[Resource]bool, len(Resources)),
	}
}

// Period returns the cycle length.
func (s *Scheduler) Period() time.Duration {
	return s.period
}

// Start moves the scheduler to running. Only the first call succeeds.
func (s *Scheduler) Start() (generation int, ok bool) {
	if s.started {
		return s.generation, false
	}
	s.started = true
	s.generation++
	return s.generation, true
}

// Stop ends the cycle; pending ticks are rejected by Accept.
func (s *Scheduler) Stop() {
	if s.stopped {
		return
	}
	s.stopped = true
	s.generation++
}

// Running reports whether ticks are currently accepted.
func (s *Scheduler) Running() bool {
	return s.started && !s.stopped
}

// Generation identifies the current run.
func (s *Scheduler) Generation() int {
	return s.generation
}

// Accept reports whether a tick armed for generation should run a cycle.
func (s *Scheduler) Accept(generation int) bool {
	return s.Running() && generation == s.generation
}

// Acquire marks r in flight. It returns false when a fetch for r has not
// completed yet; the caller skips r for this cycle.
func (s *Scheduler) Acquire(r Resource) bool {
	if s.inFlight[r] {
		return false
	}
	s.inFlight[r] = true
	return true
}

// Release clears the in-flight flag for r.
func (s *Scheduler) Release(r Resource) {
	delete(s.inFlight, r)
}

// InFlight reports whether a fetch for r is outstanding.
func (s *Scheduler) InFlight(r Resource) bool {
	return s.inFlight[r]
}
