package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DraftModel contains the fields needed to render an assistant draft.
type DraftModel struct {
	DateLabel string
	TeeTime   string
	Players   []string // "Ana (member)"
	Warnings  []string
	Errors    []string
	Attempts  int
}

// DraftStyles groups styles for the draft body.
type DraftStyles struct {
	MetaStyle         lipgloss.Style
	SectionTitleStyle lipgloss.Style
	BodyStyle         lipgloss.Style
	ErrorStyle        lipgloss.Style
}

// RenderDraftBody renders the modal body for an assistant draft.
func RenderDraftBody(model DraftModel, styles DraftStyles) string {
	var body strings.Builder

	section := func(title string, style lipgloss.Style, lines []string) {
		if len(lines) == 0 {
			return
		}
		body.WriteString(styles.SectionTitleStyle.Render(title) + "\n")
		for _, line := range lines {
			body.WriteString(style.Render("- "+line) + "\n")
		}
		body.WriteString("\n")
	}

	section("ISSUES", styles.ErrorStyle, model.Errors)
	section("WARNINGS", styles.BodyStyle, model.Warnings)

	body.WriteString(styles.SectionTitleStyle.Render("DRAFT") + "\n")
	body.WriteString(styles.BodyStyle.Render(fmt.Sprintf(" %s at %s", model.DateLabel, model.TeeTime)) + "\n")
	for _, p := range model.Players {
		body.WriteString(styles.BodyStyle.Render("   "+p) + "\n")
	}
	body.WriteString("\n")

	attempts := "1 attempt"
	if model.Attempts != 1 {
		attempts = fmt.Sprintf("%d attempts", model.Attempts)
	}
	body.WriteString(styles.MetaStyle.Render(attempts+". Press m to tell the assistant what to change."))
	return body.String()
}
