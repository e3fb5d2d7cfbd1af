package view

import (
	"github.com/charmbracelet/lipgloss"
)

// HeaderModel holds the title line shown above the sheet.
type HeaderModel struct {
	InnerW int
	Course string
	Date   string // e.g. "Sat 14 Jun 2025"
	Badge  string // mode badge such as "MOVE", empty in normal mode
	Today  bool
}

// HeaderStyles groups styles for the title line.
type HeaderStyles struct {
	Title lipgloss.Style
	Date  lipgloss.Style
	Badge lipgloss.Style
	Bg    lipgloss.Color
}

// RenderHeader renders "Course  Date [today]  BADGE" padded to InnerW.
func RenderHeader(model HeaderModel, styles HeaderStyles) string {
	sep := lipgloss.NewStyle().Background(styles.Bg).Render("  ")
	line := styles.Title.Render(model.Course) + sep + styles.Date.Render(model.Date)
	if model.Today {
		line += styles.Date.Render(" (today)")
	}
	if model.Badge != "" {
		line += sep + styles.Badge.Render(" "+model.Badge+" ")
	}
	return PadLinesWithBackground(line, model.InnerW, 1, styles.Bg)
}
