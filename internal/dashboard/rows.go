package dashboard

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/canaryct/canarywatch/internal/canary"
)

const (
	// DefaultLookupURL is the certificate-transparency search used for the
	// per-row link.
	DefaultLookupURL = "https://crt.sh/"

	summaryNames   = 3
	timestampStyle = "2006-01-02 15:04:05"

	// EmptyMessage is shown in place of rows when the page is empty.
	EmptyMessage = "No matches found. Adjust filters or wait for new certificates..."
)

// Tone is the visual treatment of a badge.
type Tone int

const (
	ToneSecondary Tone = iota
	ToneDanger
	ToneWarning
	ToneInfo
)

func (t Tone) String() string {
	switch t {
	case ToneDanger:
		return "danger"
	case ToneWarning:
		return "warning"
	case ToneInfo:
		return "info"
	default:
		return "secondary"
	}
}

// Row is a render-ready match. Every text field is already sanitized.
type Row struct {
	Timestamp      string
	Domains        string
	Tooltip        string
	Rule           string
	Priority       string
	PriorityTone   Tone
	MatchedDomains string
	LookupURL      string
	// LookupLabel is the host of LookupURL, used as the link text.
	LookupLabel string
}

// RowBuilder turns matches into rows.
type RowBuilder struct {
	LookupBase string
	Location   *time.Location
}

// Build renders one match.
func (b RowBuilder) Build(m canary.Match) Row {
	row := Row{
		Timestamp:      Sanitize(FormatTimestamp(m, b.location())),
		Domains:        Sanitize(DomainSummary(m.DNSNames)),
		Tooltip:        Sanitize(strings.Join(m.DNSNames, ", ")),
		Rule:           Sanitize(m.MatchedRule),
		Priority:       Sanitize(string(m.Priority)),
		PriorityTone:   PriorityTone(m.Priority),
		MatchedDomains: Sanitize(m.MatchedDomains.String()),
	}
	row.LookupURL = LookupURL(b.LookupBase, m.TbsSha256)
	row.LookupLabel = Sanitize(LookupHost(row.LookupURL))
	return row
}

// BuildAll renders a page of matches.
func (b RowBuilder) BuildAll(matches []canary.Match) []Row {
	rows := make([]Row, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, b.Build(m))
	}
	return rows
}

func (b RowBuilder) location() *time.Location {
	if b.Location == nil {
		return time.Local
	}
	return b.Location
}

// FormatTimestamp renders detected_at in loc. The raw value is returned
// when it cannot be parsed.
func FormatTimestamp(m canary.Match, loc *time.Location) string {
	t := m.ParsedDetectedAt()
	if t.IsZero() {
		return m.DetectedAt
	}
	return t.In(loc).Format(timestampStyle)
}

// DomainSummary joins the first three names and notes how many were left out.
func DomainSummary(names []string) string {
	if len(names) <= summaryNames {
		return strings.Join(names, ", ")
	}
	return fmt.Sprintf("%s (+%d more)", strings.Join(names[:summaryNames], ", "), len(names)-summaryNames)
}

// PriorityTone maps a priority to its badge treatment. Unknown priorities
// get the secondary treatment.
func PriorityTone(p canary.Priority) Tone {
	switch p {
	case canary.PriorityCritical:
		return ToneDanger
	case canary.PriorityHigh:
		return ToneWarning
	case canary.PriorityMedium:
		return ToneInfo
	default:
		return ToneSecondary
	}
}

// LookupURL builds the external lookup link for a certificate fingerprint.
func LookupURL(base, fingerprint string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		base = DefaultLookupURL
	}
	u, err := url.Parse(base)
	if err != nil {
		u, _ = url.Parse(DefaultLookupURL)
	}
	if u.Path == "" {
		u.Path = "/"
	}
	u.RawQuery = "q=" + strings.ReplaceAll(url.QueryEscape(fingerprint), "+", "%20")
	u.Fragment = ""
	return u.String()
}

// LookupHost returns the host name of a lookup link, or "link" when the
// link has none.
func LookupHost(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Hostname() == "" {
		return "link"
	}
	return u.Hostname()
}
