package dashboard

import (
	"fmt"
	"strings"
	"unicode"
)

// Sanitize makes s safe to interpolate into terminal output. Control
// characters (including ESC, which starts every terminal escape sequence)
// and bidirectional overrides are replaced by their visible escaped form,
// so the operator sees the literal bytes and nothing is interpreted.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	if !needsSanitizing(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		switch {
		case r < 0x80 && unicode.IsControl(r):
			fmt.Fprintf(&b, `\x%02x`, r)
		case unicode.IsControl(r) || isBidiControl(r):
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func needsSanitizing(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) || isBidiControl(r) {
			return true
		}
	}
	return false
}

func isBidiControl(r rune) bool {
	return (r >= 0x202A && r <= 0x202E) || (r >= 0x2066 && r <= 0x2069) || r == 0x200E || r == 0x200F
}
