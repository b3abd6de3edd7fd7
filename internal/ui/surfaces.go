package ui

import "github.com/canaryct/canarywatch/internal/dashboard"

const placeholder = "-"

// surfaces is the terminal View: the dashboard writes into it and the
// bubbletea View reads from it. It is shared by pointer between Model
// copies and only touched from the Update loop.
type surfaces struct {
	metrics      map[dashboard.MetricField]string
	rows         []dashboard.Row
	empty        string
	matchCount   string
	pagination   dashboard.Pagination
	status       dashboard.Connectivity
	clearVisible bool
}

var _ dashboard.View = (*surfaces)(nil)

func newSurfaces() *surfaces {
	return &surfaces{
		metrics:    make(map[dashboard.MetricField]string, len(dashboard.MetricFields)),
		matchCount: dashboard.FormatMatchCount(0),
		pagination: dashboard.Pagination{Pages: 1},
	}
}

func (s *surfaces) SetMetric(field dashboard.MetricField, value string) {
	s.metrics[field] = value
}

func (s *surfaces) SetRows(rows []dashboard.Row) {
	s.rows = rows
	s.empty = ""
}

func (s *surfaces) SetEmpty(message string) {
	s.rows = nil
	s.empty = message
}

func (s *surfaces) SetMatchCount(label string) {
	s.matchCount = label
}

func (s *surfaces) SetPagination(p dashboard.Pagination) {
	s.pagination = p
}

func (s *surfaces) SetStatus(c dashboard.Connectivity) {
	s.status = c
}

func (s *surfaces) SetClearVisible(visible bool) {
	s.clearVisible = visible
}

// metric returns the last value written for field, or a placeholder.
func (s *surfaces) metric(field dashboard.MetricField) string {
	if v, ok := s.metrics[field]; ok && v != "" {
		return v
	}
	return placeholder
}
