package tui

import (
	"github.com/javiermolinar/caddie/internal/tui/input"
	"github.com/javiermolinar/caddie/internal/tui/view"
)

var promptCommands = []input.PromptCommand{
	{
		Name:        "/book",
		Description: "Draft a booking from plain text with the assistant",
	},
	{
		Name:        "/date",
		Description: "Jump to a day (YYYY-MM-DD, today, tomorrow, weekday)",
	},
	{
		Name:        "/help",
		Description: "Show available commands",
	},
}

func (m Model) fullFooterHeight(innerH, promptWidth int) int {
	promptLines := max(promptMinContentLines, len(m.promptLines(promptWidth)))
	desired := footerBaseLines + promptLines + promptBorderLines

	maxFooter := innerH - headerLines - 6
	if maxFooter < footerMinHeight {
		return footerCompact
	}
	return min(max(desired, footerMinHeight), maxFooter)
}

func (m Model) promptMaxContentLines() int {
	return max(promptMinContentLines, m.layoutCache.FooterH-footerBaseLines-promptBorderLines)
}

func (m Model) promptLines(contentWidth int) []string {
	state := view.PromptState{
		Value:      m.prompt.Value(),
		Cursor:     m.promptCursor(),
		ModePrompt: m.mode == ModePrompt && !m.amending,
	}
	if m.amending {
		state.Label = "amend> "
	}
	return view.PromptLines(state, contentWidth, promptCommands)
}

// promptCursor returns the cursor character if in prompt mode.
func (m Model) promptCursor() string {
	if m.mode == ModePrompt {
		return "_"
	}
	return ""
}
