package theme

import (
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Member      lipgloss.Color
	Guest       lipgloss.Color
	CheckedIn   lipgloss.Color
	Warning     lipgloss.Color

	// Row backgrounds during placement, and their cursor variants.
	ValidBg      lipgloss.Color
	PartialBg    lipgloss.Color
	InvalidBg    lipgloss.Color
	SourceBg     lipgloss.Color
	ValidBgAlt   lipgloss.Color
	PartialBgAlt lipgloss.Color
	InvalidBgAlt lipgloss.Color
	SourceBgAlt  lipgloss.Color

	TextOnAccent  lipgloss.Color
	TextOnWarning lipgloss.Color

	Modal ModalColors
}

// ModalColors holds modal-specific colors derived from a Theme.
type ModalColors struct {
	Bg       lipgloss.Color
	Border   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Panel    lipgloss.Color
	Backdrop lipgloss.Color
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(DefaultName)
	}

	light := isLightTheme(t.Bg)
	rowBg := func(accent string) string { return tintBg(accent, t.Bg, light) }
	alt := func(accent string) string { return alternateShade(rowBg(accent), light) }

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Member:      lipgloss.Color(t.Member),
		Guest:       lipgloss.Color(t.Guest),
		CheckedIn:   lipgloss.Color(t.CheckedIn),
		Warning:     lipgloss.Color(t.Warning),

		ValidBg:      lipgloss.Color(rowBg(t.Valid)),
		PartialBg:    lipgloss.Color(rowBg(t.Partial)),
		InvalidBg:    lipgloss.Color(rowBg(t.Invalid)),
		SourceBg:     lipgloss.Color(rowBg(t.Source)),
		ValidBgAlt:   lipgloss.Color(alt(t.Valid)),
		PartialBgAlt: lipgloss.Color(alt(t.Partial)),
		InvalidBgAlt: lipgloss.Color(alt(t.Invalid)),
		SourceBgAlt:  lipgloss.Color(alt(t.Source)),

		TextOnAccent:  lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),
		TextOnWarning: lipgloss.Color(chooseTextColor(t.Warning, t.Bg, t.Fg)),

		Modal: ModalColors{
			Bg:       lipgloss.Color(t.ModalBg),
			Border:   lipgloss.Color(t.ModalBorder),
			Text:     lipgloss.Color(t.Fg),
			Muted:    lipgloss.Color(t.TextMuted),
			Panel:    lipgloss.Color(coalesce(t.BgSelection, t.BgHighlight, t.Bg)),
			Backdrop: lipgloss.Color(coalesce(t.BgHighlight, t.Bg)),
		},
	}
}

func isLightTheme(bg string) bool {
	return relativeLuminance(bg) > 0.55
}

// tintBg mixes a status color into the background so row text stays legible.
func tintBg(accent, bg string, light bool) string {
	if light {
		return blendColors(accent, bg, 0.70)
	}
	return blendColors(accent, bg, 0.60)
}

// alternateShade returns the cursor variant of a row background.
func alternateShade(hex string, light bool) string {
	if light {
		return blendColors(hex, "#000000", 0.12)
	}
	return blendColors(hex, "#ffffff", 0.20)
}

// parseRGB splits "#rrggbb" into its channels.
func parseRGB(hex string) (r, g, b int, ok bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}

func formatHexColor(r, g, b int) string {
	clamp := func(v int) int { return min(255, max(0, v)) }
	return "#" + hex2(clamp(r)) + hex2(clamp(g)) + hex2(clamp(b))
}

func hex2(v int) string {
	s := strconv.FormatInt(int64(v), 16)
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

func chooseTextColor(bg, lightText, darkText string) string {
	if contrastRatio(bg, lightText) >= contrastRatio(bg, darkText) {
		return lightText
	}
	return darkText
}

func contrastRatio(a, b string) float64 {
	l1 := relativeLuminance(a)
	l2 := relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func relativeLuminance(hex string) float64 {
	r, g, b, ok := parseRGB(hex)
	if !ok {
		return 0
	}
	return 0.2126*srgbToLinear(r) + 0.7152*srgbToLinear(g) + 0.0722*srgbToLinear(b)
}

func srgbToLinear(c int) float64 {
	v := float64(c) / 255.0
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// blendColors moves a towards b by ratio (0 keeps a, 1 returns b).
func blendColors(a, b string, ratio float64) string {
	ar, ag, ab, okA := parseRGB(a)
	br, bg, bb, okB := parseRGB(b)
	if !okA || !okB {
		return a
	}
	ratio = math.Min(1, math.Max(0, ratio))
	mix := func(x, y int) int { return int(float64(x)*(1-ratio) + float64(y)*ratio) }
	return formatHexColor(mix(ar, br), mix(ag, bg), mix(ab, bb))
}
