package dashboard

import (
	"github.com/canaryct/canarywatch/internal/canary"
)

const (
	// DefaultPageSize is the number of match rows on one page.
	DefaultPageSize = 20
	// DefaultTimeRangeMinutes is the lookback used when none is selected.
	DefaultTimeRangeMinutes = 30
	// DefaultPerformanceWindow is the lookback for performance samples.
	DefaultPerformanceWindow = 60
)

// Connectivity is the Online/Offline badge state.
type Connectivity int

const (
	// ConnectivityUnknown is only seen before the first metrics or matches
	// outcome.
	ConnectivityUnknown Connectivity = iota
	Online
	Offline
)

func (c Connectivity) String() string {
	switch c {
	case Online:
		return "Online"
	case Offline:
		return "Offline"
	default:
		return "Connecting"
	}
}

// State is the dashboard's single mutable value. Each field has one owner:
// the match store writes Matches, the filter engine writes Filtered, and
// the paginator writes Page.
type State struct {
	Matches          []canary.Match
	Filtered         []canary.Match
	Page             int
	PageSize         int
	Connectivity     Connectivity
	TimeRangeMinutes int
	Search           string
	Priority         canary.Priority
	ClearVisible     bool
}

// NewState returns a state with defaults applied.
func NewState(pageSize, timeRangeMinutes int) State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if timeRangeMinutes <= 0 {
		timeRangeMinutes = DefaultTimeRangeMinutes
	}
	return State{
		PageSize:         pageSize,
		TimeRangeMinutes: timeRangeMinutes,
	}
}

// EffectiveTimeRange returns the lookback to request, falling back to the
// default when the selection is unset.
func (s State) EffectiveTimeRange() int {
	if s.TimeRangeMinutes <= 0 {
		return DefaultTimeRangeMinutes
	}
	return s.TimeRangeMinutes
}

func (s State) clone() State {
	out := s
	out.Matches = cloneMatches(s.Matches)
	out.Filtered = cloneMatches(s.Filtered)
	return out
}

func cloneMatches(items []canary.Match) []canary.Match {
	if items == nil {
		return nil
	}
	dup := make([]canary.Match, len(items))
	copy(dup, items)
	return dup
}
