package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// FooterModel contains content and styles for rendering the footer.
// The full footer shows stats, legend, prompt, status and help; the compact
// one only status and help.
type FooterModel struct {
	InnerW     int
	FooterH    int
	FullFooter bool

	StatsLine  string // pre-rendered
	LegendText string // pre-rendered
	StatusText string
	HelpText   string

	PromptLines []string
	PromptMax   int
	PromptFocus bool
	ShowPrompt  bool

	FooterStyle      lipgloss.Style
	StatusStyle      lipgloss.Style
	HelpStyle        lipgloss.Style
	PromptStyle      lipgloss.Style
	PromptFocusStyle lipgloss.Style
	Bg               lipgloss.Color
}

// RenderFooterModel builds footer lines and renders the footer.
func RenderFooterModel(model FooterModel) string {
	if model.FooterH <= 0 {
		return ""
	}

	statusLine := footerLine(model.InnerW, model.StatusStyle, model.StatusText)
	helpLine := footerLine(model.InnerW, model.HelpStyle, model.HelpText)

	lines := make([]string, 0, 5)
	if model.FullFooter {
		promptStyle := model.PromptStyle
		if model.PromptFocus {
			promptStyle = model.PromptFocusStyle
		}
		promptLine := RenderPrompt(model.InnerW, promptStyle, model.PromptLines)
		if !model.ShowPrompt {
			promptLine = RenderPromptPlaceholder(model.InnerW, model.PromptStyle, model.PromptMax)
		}
		lines = append(lines,
			model.StatsLine,
			footerLine(model.InnerW, model.FooterStyle, model.LegendText),
			promptLine,
		)
	}
	lines = append(lines, statusLine, helpLine)

	return PlaceBox(model.InnerW, model.FooterH, lipgloss.Bottom, strings.Join(lines, "\n"), model.Bg)
}

func footerLine(width int, style lipgloss.Style, content string) string {
	frameW, _ := style.GetFrameSize()
	contentWidth := max(0, width-frameW)
	if contentWidth > 0 {
		content = ansi.Truncate(content, contentWidth, "")
	}
	return style.Width(contentWidth).Render(content)
}
