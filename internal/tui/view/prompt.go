package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/javiermolinar/caddie/internal/tui/input"
)

// PromptState captures prompt input state for rendering.
type PromptState struct {
	Value      string
	Cursor     string
	ModePrompt bool
	Label      string // prefix shown before the input, "> " when empty
}

// PromptLines builds prompt input and suggestion lines for the given width.
// Suggestions are shown only while the prompt has focus.
func PromptLines(state PromptState, contentWidth int, commands []input.PromptCommand) []string {
	label := state.Label
	if label == "" {
		label = "> "
	}
	lines := wrapTextWithPrefix(state.Value+state.Cursor, label, strings.Repeat(" ", runewidth.StringWidth(label)), contentWidth)
	if !state.ModePrompt {
		return lines
	}
	for _, cmd := range input.PromptMatchingCommands(state.Value, commands) {
		lines = append(lines, wrapTextWithPrefix(cmd.Name+" "+cmd.Description, "  ", "  ", contentWidth)...)
	}
	return lines
}

// ClampPromptLines clamps prompt lines to maxLines, marking the cut with an
// ellipsis.
func ClampPromptLines(lines []string, maxLines, width int) []string {
	if maxLines <= 0 {
		return nil
	}
	if len(lines) <= maxLines {
		return lines
	}
	clamped := append([]string(nil), lines[:maxLines]...)
	last := clamped[maxLines-1]
	if runewidth.StringWidth(last)+3 > width {
		last = runewidth.Truncate(last, max(0, width-3), "")
	}
	clamped[maxLines-1] = last + "..."
	return clamped
}

// WrapTextToWidths wraps text at spaces, using firstWidth for the first line
// and otherWidth for the rest. Words longer than a line are split.
func WrapTextToWidths(s string, firstWidth, otherWidth int) []string {
	if firstWidth <= 0 || otherWidth <= 0 {
		return []string{""}
	}
	runes := []rune(s)
	if len(runes) == 0 {
		return []string{""}
	}

	var lines []string
	width := firstWidth
	start, lastSpace, lineWidth := 0, -1, 0
	for i := 0; i < len(runes); i++ {
		if runes[i] == ' ' {
			lastSpace = i
		}
		rw := runewidth.RuneWidth(runes[i])
		if lineWidth+rw <= width {
			lineWidth += rw
			continue
		}
		if lastSpace >= start {
			lines = append(lines, string(runes[start:lastSpace]))
			i = lastSpace
			start = lastSpace + 1
		} else {
			lines = append(lines, string(runes[start:i]))
			start = i
			i--
		}
		width = otherWidth
		lastSpace = -1
		lineWidth = 0
	}
	return append(lines, string(runes[start:]))
}

// RenderPrompt renders the prompt box with the provided lines.
func RenderPrompt(width int, style lipgloss.Style, lines []string) string {
	frameW, _ := style.GetFrameSize()
	if len(lines) == 0 {
		lines = []string{""}
	}
	return style.Width(max(0, width-frameW)).Render(strings.Join(lines, "\n"))
}

// RenderPromptPlaceholder renders an empty prompt box with matching height.
func RenderPromptPlaceholder(width int, style lipgloss.Style, maxContentLines int) string {
	frameW, _ := style.GetFrameSize()
	content := strings.Repeat("\n", max(1, maxContentLines)-1)
	return style.Width(max(0, width-frameW)).Render(content)
}

func wrapTextWithPrefix(s, prefix, continuation string, width int) []string {
	if width <= 0 {
		return []string{""}
	}
	firstWidth := max(0, width-runewidth.StringWidth(prefix))
	otherWidth := max(0, width-runewidth.StringWidth(continuation))

	lines := WrapTextToWidths(s, firstWidth, otherWidth)
	for i := range lines {
		if i == 0 {
			lines[i] = prefix + lines[i]
		} else {
			lines[i] = continuation + lines[i]
		}
	}
	return lines
}
