package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// InitModel contains the fields needed to render the first run modal.
type InitModel struct {
	ConfigPath    string
	DBPath        string
	ConfigMissing bool
	DBMissing     bool
	Course        string
	FirstTee      string
	LastTee       string
	TeeTimes      int
	Error         string
}

// RenderInitBody lists the files caddie is about to create.
func RenderInitBody(model InitModel, body, meta, errStyle lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(body.Render("caddie needs to create:") + "\n\n")
	if model.ConfigMissing {
		b.WriteString(body.Render(" config  ") + meta.Render(model.ConfigPath) + "\n")
	}
	if model.DBMissing {
		b.WriteString(body.Render(" sheet   ") + meta.Render(model.DBPath) + "\n")
	}
	if model.TeeTimes > 0 {
		course := model.Course
		if course == "" {
			course = "Course"
		}
		b.WriteString("\n" + meta.Render(fmt.Sprintf("%s: %d tee times, %s to %s",
			course, model.TeeTimes, model.FirstTee, model.LastTee)) + "\n")
	}
	if model.Error != "" {
		b.WriteString("\n" + errStyle.Render(model.Error))
	}
	return strings.TrimRight(b.String(), "\n")
}
