package dashboard

import (
	"strings"

	"github.com/canaryct/canarywatch/internal/canary"
)

// Filter keeps the matches with at least one DNS name containing search
// (case-insensitive) and, when priority is set, the same priority. Order is
// preserved.
//
// A match without DNS names never passes, not even for an empty search.
// An empty search therefore matches every record that has a name, which
// is narrower than "an empty search matches everything"; the narrower
// rule is kept because the web dashboard behaves the same way.
func Filter(matches []canary.Match, search string, priority canary.Priority) []canary.Match {
	needle := strings.ToLower(search)
	out := make([]canary.Match, 0, len(matches))
	for _, m := range matches {
		if priority != "" && m.Priority != priority {
			continue
		}
		if !anyNameContains(m.DNSNames, needle) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func anyNameContains(names []string, needle string) bool {
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), needle) {
			return true
		}
	}
	return false
}
