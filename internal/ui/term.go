package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/javiermolinar/caddie/internal/teesheet"
)

// Color definitions for consistent styling across the CLI.
var (
	// Members: bold green, the club's own
	colorMember = color.New(color.FgGreen, color.Bold)

	// Guests: cyan
	colorGuest = color.New(color.FgCyan)

	// Walk-ups: plain italic
	colorWalkUp = color.New(color.Italic)

	colorCheckedIn = color.New(color.FgYellow, color.Bold)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Full tee times and refusals
	colorWarning = color.New(color.FgRed, color.Bold)

	// Muted: open positions and secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output, in the CLI and the TUI.
func DisableColor() {
	color.NoColor = true
	lipgloss.SetColorProfile(termenv.Ascii)
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
	lipgloss.SetColorProfile(termenv.EnvColorProfile())
}

func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatWarning(s string) string {
	return colorWarning.Sprint(s)
}

func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}

// formatPlayer colors a player label by kind.
func formatPlayer(p teesheet.Player, label string) string {
	switch p.Kind {
	case teesheet.KindMember:
		label = colorMember.Sprint(label)
	case teesheet.KindWalkUp:
		label = colorWalkUp.Sprint(label)
	default:
		label = colorGuest.Sprint(label)
	}
	if p.CheckedIn {
		label = colorCheckedIn.Sprint("✓") + label
	}
	return label
}
