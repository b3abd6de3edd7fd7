// Package prefs persists the operator's display preferences in
// ~/.config/canarywatch/prefs.toml.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/canaryct/canarywatch/internal/config"
)

// Theme is the colour scheme of the dashboard.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is light or dark.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggle returns the other theme. Anything but dark toggles to dark.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Icon is the glyph shown on the theme toggle: a moon while light, a sun
// while dark.
func (t Theme) Icon() string {
	if t == ThemeDark {
		return "☀"
	}
	return "☾"
}

// Prefs holds user preferences.
type Prefs struct {
	Theme Theme `toml:"theme"`
}

const (
	defaultPrefsPath = "~/.config/canarywatch/prefs.toml"
	defaultTheme     = ThemeLight
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from path. A missing, unreadable or malformed
// file, or an unknown theme, yields the light theme; Load never fails.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Prefs{Theme: defaultTheme}, nil
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return Prefs{Theme: defaultTheme}, nil
	}
	return Prefs{Theme: decodeTheme(data)}, nil
}

func decodeTheme(data []byte) Theme {
	var raw struct {
		Theme string `toml:"theme"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return defaultTheme
	}
	theme := Theme(strings.ToLower(strings.TrimSpace(raw.Theme)))
	if !theme.Valid() {
		return defaultTheme
	}
	return theme
}

// Save writes preferences to path, creating directories as needed. The
// file is replaced atomically so a crash never leaves a partial write.
func Save(path string, p Prefs) error {
	if !p.Theme.Valid() {
		return fmt.Errorf("invalid theme %q", p.Theme)
	}
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".prefs-*.toml")
	if err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp.Name(), resolved); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	return config.ExpandPath(path)
}
