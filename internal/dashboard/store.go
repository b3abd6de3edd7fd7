package dashboard

import (
	"sort"

	"github.com/canaryct/canarywatch/internal/canary"
)

// SortNewestFirst returns a copy of matches ordered by detected_at
// descending. Equal timestamps keep arrival order and unparseable
// timestamps sort last.
func SortNewestFirst(matches []canary.Match) []canary.Match {
	out := make([]canary.Match, len(matches))
	copy(out, matches)
	sort.SliceStable(out, func(i, j int) bool {
		ti := out[i].ParsedDetectedAt()
		tj := out[j].ParsedDetectedAt()
		if ti.IsZero() || tj.IsZero() {
			return !ti.IsZero() && tj.IsZero()
		}
		return ti.After(tj)
	})
	return out
}
