// Package theme provides color themes for the tee sheet.
package theme

import (
	"embed"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
)

// DefaultName is the theme used when none is configured.
const DefaultName = "fairway"

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// Theme holds all colors for a TUI theme.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`
	BgHighlight string `toml:"bg_highlight"` // Booked rows, header
	BgSelection string `toml:"bg_selection"` // Cursor row
	Fg          string `toml:"fg"`
	FgMuted     string `toml:"fg_muted"` // Open positions, past days
	Accent      string `toml:"accent"`   // Title, borders
	Member      string `toml:"member"`
	Guest       string `toml:"guest"`
	CheckedIn   string `toml:"checked_in"`
	Warning     string `toml:"warning"`

	// Placement row colors
	Valid   string `toml:"valid"`
	Partial string `toml:"partial"`
	Invalid string `toml:"invalid"`
	Source  string `toml:"source"`

	// Modal palette (can override base theme values)
	ModalBg     string `toml:"modal_bg"`
	ModalBorder string `toml:"modal_border"`
	TextMuted   string `toml:"text_muted"`
}

// Color returns a lipgloss.Color for the given hex string.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Load loads a theme by name from embedded files.
// Unknown names fall back to the default theme.
func Load(name string) (*Theme, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultName
	}

	data, err := embeddedThemes.ReadFile("embedded/" + name + ".toml")
	if err != nil {
		if name != DefaultName {
			return Load(DefaultName)
		}
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	t.applyDefaults()
	return &t, nil
}

func (t *Theme) applyDefaults() {
	t.ModalBg = coalesce(t.ModalBg, t.BgHighlight, t.Bg)
	t.ModalBorder = coalesce(t.ModalBorder, t.Accent)
	t.TextMuted = coalesce(t.TextMuted, t.FgMuted)
	t.Source = coalesce(t.Source, t.Accent)
	t.CheckedIn = coalesce(t.CheckedIn, t.Valid)
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available returns the names of the bundled themes.
func Available() []string {
	return []string{"fairway", "links", "night"}
}

// IsAvailable reports whether a theme name is bundled.
func IsAvailable(name string) bool {
	return slices.Contains(Available(), strings.ToLower(name))
}
