package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100

	// LayoutMatchedWidth is the minimum width to show the matched-domains
	// column.
	LayoutMatchedWidth = 130
)

// Fixed column widths of the match table.
const (
	colTimestamp = 19
	colPriority  = 10
	colRule      = 18
	colLink      = 10
	colGap       = 2
)

// minBoxHeight fits the borders, the column header and one row.
const minBoxHeight = 4

// noticeTTL is how long a transient footer notice stays visible.
const noticeTTL = 4 * time.Second
