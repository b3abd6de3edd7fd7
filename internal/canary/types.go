package canary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Priority is the severity a rule assigns to a match.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Priorities lists the known priorities from most to least severe.
var Priorities = []Priority{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow}

// Known reports whether p is one of the four defined priorities.
func (p Priority) Known() bool {
	for _, known := range Priorities {
		if p == known {
			return true
		}
	}
	return false
}

// MetricsResponse mirrors the payload returned by /api/metrics.
type MetricsResponse struct {
	TotalMatches  int64 `json:"total_matches"`
	TotalCerts    int64 `json:"total_certs"`
	RulesCount    int64 `json:"rules_count"`
	UptimeSeconds int64 `json:"uptime_seconds"`
	RecentMatches int64 `json:"recent_matches"`
}

// PerformanceResponse mirrors /api/metrics/performance. Current is nil when
// the server has no sample for the requested window.
type PerformanceResponse struct {
	Current *PerformanceSnapshot `json:"current"`
}

// PerformanceSnapshot is the latest throughput and resource sample.
type PerformanceSnapshot struct {
	CertsPerMinute   float64 `json:"certs_per_minute"`
	MatchesPerMinute float64 `json:"matches_per_minute"`
	AvgMatchTimeUS   int64   `json:"avg_match_time_us"`
	CPUPercent       float64 `json:"cpu_percent"`
	MemoryUsedMB     float64 `json:"memory_used_mb"`
	GoroutineCount   int64   `json:"goroutine_count"`
}

// MatchListResponse mirrors /api/matches/recent.
type MatchListResponse struct {
	Count   int     `json:"count"`
	Matches []Match `json:"matches"`
}

// Match is a single rule hit against an observed certificate.
type Match struct {
	DetectedAt     string         `json:"detected_at"`
	DNSNames       []string       `json:"dns_names"`
	MatchedRule    string         `json:"matched_rule"`
	Priority       Priority       `json:"priority"`
	MatchedDomains MatchedDomains `json:"matched_domains"`
	TbsSha256      string         `json:"tbs_sha256"`
}

// ParsedDetectedAt returns DetectedAt as time.Time, or the zero time when it
// cannot be parsed.
func (m Match) ParsedDetectedAt() time.Time {
	return parseTime(m.DetectedAt)
}

// MatchedDomains holds the matched_domains field, which servers send either
// as a single string or as an array of strings.
type MatchedDomains struct {
	Values []string
	Scalar bool
}

// String flattens the values into a comma separated list.
func (d MatchedDomains) String() string {
	return strings.Join(d.Values, ", ")
}

// UnmarshalJSON accepts null, a string, or an array of strings.
func (d *MatchedDomains) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*d = MatchedDomains{}
		return nil
	}
	switch trimmed[0] {
	case '"':
		var single string
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return err
		}
		*d = MatchedDomains{Values: []string{single}, Scalar: true}
		return nil
	case '[':
		var many []string
		if err := json.Unmarshal(trimmed, &many); err != nil {
			return err
		}
		*d = MatchedDomains{Values: many}
		return nil
	}
	return fmt.Errorf("matched_domains: unexpected JSON %s", trimmed)
}

// MarshalJSON writes the value back in the shape it was received in.
func (d MatchedDomains) MarshalJSON() ([]byte, error) {
	if d.Scalar && len(d.Values) == 1 {
		return json.Marshal(d.Values[0])
	}
	if d.Values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(d.Values)
}

func parseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
