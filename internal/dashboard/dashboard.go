package dashboard

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/canaryct/canarywatch/internal/canary"
)

// Observer receives fetch instrumentation. kind is empty on success.
type Observer interface {
	ObserveFetch(resource, kind string, elapsed time.Duration)
	ObserveSkip(resource string)
}

type nopObserver struct{}

func (nopObserver) ObserveFetch(string, string, time.Duration) {}
func (nopObserver) ObserveSkip(string)                         {}

// TimeRangeOptions are the lookback windows the operator can pick from.
var TimeRangeOptions = []int{5, 15, 30, 60, 180, 360, 720, 1440}

// Options configure a Dashboard.
type Options struct {
	PageSize          int
	TimeRangeMinutes  int
	PerformanceWindow int // minutes
	PollInterval      time.Duration
	LookupURL         string
	Location          *time.Location
	Logger            logrus.FieldLogger
	Observer          Observer
	NewCycleID        func() string
}

// Next tells the caller what to do after Apply.
type Next struct {
	Jobs []Job
	// Started is set once, when the initial load finishes and the
	// scheduler begins; the caller arms the first tick for Generation.
	Started    bool
	Generation int
}

// Dashboard owns the state and drives the view. It is not safe for
// concurrent use: every method must be called from a single loop, with
// Job.Run the only part that runs elsewhere.
type Dashboard struct {
	state      State
	view       View
	fetcher    canary.Fetcher
	sched      *Scheduler
	rows       RowBuilder
	perfWindow int
	begun      bool

	log        logrus.FieldLogger
	observer   Observer
	newCycleID func() string
}

// New builds a Dashboard that fetches through f and renders into v.
func New(f canary.Fetcher, v View, opts Options) *Dashboard {
	logger := opts.Logger
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	observer := opts.Observer
	if observer == nil {
		observer = nopObserver{}
	}
	newCycleID := opts.NewCycleID
	if newCycleID == nil {
		newCycleID = func() string { return uuid.NewString() }
	}
	perfWindow := opts.PerformanceWindow
	if perfWindow <= 0 {
		perfWindow = DefaultPerformanceWindow
	}
	lookup := opts.LookupURL
	if lookup == "" {
		lookup = DefaultLookupURL
	}
	return &Dashboard{
		state:      NewState(opts.PageSize, opts.TimeRangeMinutes),
		view:       v,
		fetcher:    f,
		sched:      NewScheduler(opts.PollInterval),
		rows:       RowBuilder{LookupBase: lookup, Location: opts.Location},
		perfWindow: perfWindow,
		log:        logger,
		observer:   observer,
		newCycleID: newCycleID,
	}
}

// State returns a copy of the current state.
func (d *Dashboard) State() State {
	return d.state.clone()
}

// Scheduler exposes the refresh cycle.
func (d *Dashboard) Scheduler() *Scheduler {
	return d.sched
}

// Begin starts the initial load with the metrics fetch. Matches and
// performance follow one after another from Apply. Later calls return nil.
func (d *Dashboard) Begin() []Job {
	if d.begun {
		return nil
	}
	d.begun = true
	d.view.SetStatus(d.state.Connectivity)
	d.Render()
	cycle := d.newCycleID()
	d.log.WithField("cycle", cycle).Debug("initial load started")
	if job, ok := d.acquire(Resources[0], cycle, true); ok {
		return []Job{job}
	}
	return nil
}

// Tick runs one scheduled cycle if generation is current. Resources whose
// previous fetch is still outstanding are skipped. ok is false when the
// tick is stale and must not be re-armed.
func (d *Dashboard) Tick(generation int) (jobs []Job, ok bool) {
	if !d.sched.Accept(generation) {
		return nil, false
	}
	cycle := d.newCycleID()
	for _, r := range Resources {
		job, acquired := d.acquire(r, cycle, false)
		if !acquired {
			d.observer.ObserveSkip(r.String())
			d.log.WithFields(logrus.Fields{"resource": r.String(), "cycle": cycle}).
				Debug("previous fetch still in flight, skipping")
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs, true
}

// Refresh refetches matches on operator request. It is a no-op until the
// initial load has finished or while a matches fetch is outstanding.
func (d *Dashboard) Refresh() []Job {
	if !d.sched.Running() {
		return nil
	}
	job, ok := d.acquire(ResourceMatches, d.newCycleID(), false)
	if !ok {
		d.observer.ObserveSkip(ResourceMatches.String())
		return nil
	}
	return []Job{job}
}

// Stop halts the refresh cycle. Outstanding fetches still apply.
func (d *Dashboard) Stop() {
	d.sched.Stop()
}

// Apply folds a fetch outcome into the state through the policy table.
func (d *Dashboard) Apply(r Result) Next {
	d.sched.Release(r.Resource)

	entry, known := policy[r.Resource]
	if !known {
		return Next{}
	}
	fields := logrus.Fields{
		"resource": r.Resource.String(),
		"cycle":    r.Cycle,
		"duration": r.Duration.Round(time.Millisecond).String(),
	}
	if r.OK() {
		d.observer.ObserveFetch(r.Resource.String(), "", r.Duration)
		d.log.WithFields(fields).Debug("fetch succeeded")
		entry.success(d, r)
	} else {
		kind := r.Kind().String()
		d.observer.ObserveFetch(r.Resource.String(), kind, r.Duration)
		fields["kind"] = kind
		d.log.WithFields(fields).WithError(r.Err).Warn("fetch failed")
		entry.failure(d, r)
	}

	if !r.Initial {
		return Next{}
	}
	return d.advanceInitial(r)
}

func (d *Dashboard) advanceInitial(r Result) Next {
	for i, res := range Resources {
		if res != r.Resource || i+1 >= len(Resources) {
			continue
		}
		if job, ok := d.acquire(Resources[i+1], r.Cycle, true); ok {
			return Next{Jobs: []Job{job}}
		}
	}
	generation, started := d.sched.Start()
	if started {
		d.log.WithField("period", d.sched.Period().String()).Info("refresh cycle started")
	}
	return Next{Started: started, Generation: generation}
}

// SetSearch updates the search text and refilters.
func (d *Dashboard) SetSearch(search string) {
	d.state.Search = search
	d.refilter()
}

// SetPriority updates the priority filter and refilters. Empty means all.
func (d *Dashboard) SetPriority(p canary.Priority) {
	d.state.Priority = p
	d.refilter()
}

// CyclePriority advances the priority filter through all, critical, high,
// medium, low and back to all.
func (d *Dashboard) CyclePriority() canary.Priority {
	next := canary.Priority("")
	if d.state.Priority == "" {
		next = canary.Priorities[0]
	} else {
		for i, p := range canary.Priorities {
			if p == d.state.Priority && i+1 < len(canary.Priorities) {
				next = canary.Priorities[i+1]
			}
		}
	}
	d.SetPriority(next)
	return next
}

// SetTimeRange selects a new lookback and refetches matches.
func (d *Dashboard) SetTimeRange(minutes int) []Job {
	if minutes <= 0 {
		minutes = DefaultTimeRangeMinutes
	}
	d.state.TimeRangeMinutes = minutes
	return d.Refresh()
}

// CycleTimeRange moves to the next entry of TimeRangeOptions.
func (d *Dashboard) CycleTimeRange() (int, []Job) {
	next := TimeRangeOptions[0]
	for i, option := range TimeRangeOptions {
		if option == d.state.TimeRangeMinutes && i+1 < len(TimeRangeOptions) {
			next = TimeRangeOptions[i+1]
		}
	}
	return next, d.SetTimeRange(next)
}

// PrevPage moves back one page if possible.
func (d *Dashboard) PrevPage() bool {
	if d.state.Page <= 0 {
		return false
	}
	d.state.Page--
	d.Render()
	return true
}

// NextPage moves forward one page if possible.
func (d *Dashboard) NextPage() bool {
	if (d.state.Page+1)*d.state.PageSize >= len(d.state.Filtered) {
		return false
	}
	d.state.Page++
	d.Render()
	return true
}

// CurrentPage returns the rows on the visible page.
func (d *Dashboard) CurrentPage() []Row {
	pv := Paginate(d.state.Filtered, d.state.Page, d.state.PageSize)
	return d.rows.BuildAll(pv.Matches)
}

// Render writes the counts, pagination and rows of the current page.
func (d *Dashboard) Render() {
	pv := Paginate(d.state.Filtered, d.state.Page, d.state.PageSize)
	d.view.SetMatchCount(FormatMatchCount(len(d.state.Filtered)))
	d.view.SetPagination(pv.Pagination)
	if len(pv.Matches) == 0 {
		d.view.SetEmpty(EmptyMessage)
		return
	}
	d.view.SetRows(d.rows.BuildAll(pv.Matches))
}

func (d *Dashboard) refilter() {
	d.state.Filtered = Filter(d.state.Matches, d.state.Search, d.state.Priority)
	d.state.Page = 0
	d.Render()
}

func (d *Dashboard) setConnectivity(c Connectivity) {
	d.state.Connectivity = c
	d.view.SetStatus(c)
}

func (d *Dashboard) acquire(r Resource, cycle string, initial bool) (Job, bool) {
	if !d.sched.Acquire(r) {
		return Job{}, false
	}
	job := Job{Resource: r, Cycle: cycle, Initial: initial}
	switch r {
	case ResourceMetrics:
		job.run = fetchMetrics(d.fetcher)
	case ResourceMatches:
		job.run = fetchMatches(d.fetcher, d.state.EffectiveTimeRange())
	case ResourcePerformance:
		job.run = fetchPerformance(d.fetcher, d.perfWindow)
	default:
		d.sched.Release(r)
		return Job{}, false
	}
	return job, true
}
