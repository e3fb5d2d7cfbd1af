package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ResolverCandidate is one player offered by the resolver.
type ResolverCandidate struct {
	Name     string
	ID       string
	Selected bool
}

// ResolverModel contains the fields needed to render the partial fit resolver.
type ResolverModel struct {
	Action     string // "move" or "copy"
	TeeTime    string
	Label      string // "n/m selected"
	Candidates []ResolverCandidate
	Focus      int
}

// ResolverStyles groups styles for the resolver body.
type ResolverStyles struct {
	BodyStyle     lipgloss.Style
	MetaStyle     lipgloss.Style
	TagStyle      lipgloss.Style
	SelectedStyle lipgloss.Style
}

// RenderResolverBody renders the player checklist for a partial fit.
func RenderResolverBody(model ResolverModel, styles ResolverStyles) string {
	var body strings.Builder

	body.WriteString(styles.MetaStyle.Render(fmt.Sprintf(" %s has room for part of the group. Choose who to %s.",
		model.TeeTime, model.Action)) + "\n\n")

	for i, c := range model.Candidates {
		box := "[ ]"
		if c.Selected {
			box = "[x]"
		}
		line := fmt.Sprintf(" %s %s", box, c.Name)
		if c.ID != "" {
			line += " (" + c.ID + ")"
		}
		style := styles.BodyStyle
		if i == model.Focus {
			style = styles.SelectedStyle
		}
		body.WriteString(style.Render(line) + "\n")
	}

	body.WriteString("\n" + styles.TagStyle.Render(model.Label))
	return body.String()
}
