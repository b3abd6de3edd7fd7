package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/canaryct/canarywatch/internal/dashboard"
	"github.com/canaryct/canarywatch/internal/prefs"
)

// Theme defines colors and styles for the UI.
type Theme struct {
	Name prefs.Theme

	// Base colors
	Background string // Outermost background
	Surface    string // Header and footer bars
	SurfaceAlt string // Table pane
	FocusBg    string // Modal panels

	SelectionBg   string
	SelectionText string

	Border      string
	BorderFocus string

	// Text colors
	Text      string
	Muted     string
	Faint     string
	Accent    string
	Success   string
	Warning   string
	Danger    string
	Info      string
	Secondary string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Surface: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		tones: map[dashboard.Tone]string{
			dashboard.ToneDanger:    t.Danger,
			dashboard.ToneWarning:   t.Warning,
			dashboard.ToneInfo:      t.Info,
			dashboard.ToneSecondary: t.Secondary,
		},
		background: t.Background,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Surface lipgloss.Style

	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	Header   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style

	tones      map[dashboard.Tone]string
	background string
}

// Badge returns the filled style for a priority badge of the given tone.
func (s Styles) Badge(tone dashboard.Tone) lipgloss.Style {
	color := s.tones[tone]
	if color == "" {
		color = s.tones[dashboard.ToneSecondary]
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// ToneColor returns the foreground color used for tone.
func (s Styles) ToneColor(tone dashboard.Tone) string {
	if color, ok := s.tones[tone]; ok {
		return color
	}
	return s.tones[dashboard.ToneSecondary]
}

// WithBackground returns a copy of Styles with all text styles having the
// specified background, so styled segments don't punch holes in a bar.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	out.Surface = s.Surface.Background(bg)
	out.Text = s.Text.Background(bg)
	out.MutedText = s.MutedText.Background(bg)
	out.FaintText = s.FaintText.Background(bg)
	out.AccentText = s.AccentText.Background(bg)
	out.SuccessText = s.SuccessText.Background(bg)
	out.WarningText = s.WarningText.Background(bg)
	out.DangerText = s.DangerText.Background(bg)
	out.Header = s.Header.Background(bg)
	out.Logo = s.Logo.Background(bg)
	return out
}

// ThemeFor returns the palette for a persisted theme. Unknown values get
// the light palette.
func ThemeFor(name prefs.Theme) Theme {
	if name == prefs.ThemeDark {
		return darkTheme()
	}
	return lightTheme()
}

func lightTheme() Theme {
	// Tailwind CSS Slate palette, light variant
	return Theme{
		Name: prefs.ThemeLight,

		Background: "#f8fafc", // slate-50
		Surface:    "#e2e8f0", // slate-200
		SurfaceAlt: "#ffffff",
		FocusBg:    "#f1f5f9", // slate-100

		SelectionBg:   "#bae6fd", // sky-200
		SelectionText: "#0f172a", // slate-900

		Border:      "#cbd5e1", // slate-300
		BorderFocus: "#0284c7", // sky-600

		Text:      "#0f172a", // slate-900
		Muted:     "#475569", // slate-600
		Faint:     "#64748b", // slate-500
		Accent:    "#0369a1", // sky-700
		Success:   "#15803d", // green-700
		Warning:   "#b45309", // amber-700
		Danger:    "#b91c1c", // red-700
		Info:      "#0e7490", // cyan-700
		Secondary: "#64748b", // slate-500
	}
}

func darkTheme() Theme {
	// Tailwind CSS Slate/Sky palette
	return Theme{
		Name: prefs.ThemeDark,

		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		SurfaceAlt: "#1e293b", // slate-800
		FocusBg:    "#283548",

		SelectionBg:   "#0284c7", // sky-600
		SelectionText: "#f8fafc", // slate-50

		Border:      "#334155", // slate-700
		BorderFocus: "#38bdf8", // sky-400

		Text:      "#f1f5f9", // slate-100
		Muted:     "#94a3b8", // slate-400
		Faint:     "#64748b", // slate-500
		Accent:    "#38bdf8", // sky-400
		Success:   "#22c55e", // green-500
		Warning:   "#f59e0b", // amber-500
		Danger:    "#ef4444", // red-500
		Info:      "#06b6d4", // cyan-500
		Secondary: "#94a3b8", // slate-400
	}
}
