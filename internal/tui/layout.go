package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/caddie/internal/tui/view"
)

// Layout constants for boxed rendering.
const (
	headerLines   = 2 // title + spacer
	footerCompact = 2

	footerBaseLines       = 4 // Stats(1) + Legend(1) + Status(1) + Help(1)
	promptBorderLines     = 2
	promptMinContentLines = 1

	footerMinHeight     = footerBaseLines + promptBorderLines + promptMinContentLines
	footerFullMinHeight = 18
)

// LayoutCache stores layout dimensions and styles derived from the window size.
type LayoutCache struct {
	InnerW int
	InnerH int

	FooterH int
	GridH   int
	Rows    int // tee time rows that fit in the table

	FooterAuxStyle lipgloss.Style
	StatusAuxStyle lipgloss.Style
	HelpAuxStyle   lipgloss.Style

	StatsBarStyle      lipgloss.Style
	PromptStyle        lipgloss.Style
	PromptFocusedStyle lipgloss.Style
	PromptContentWidth int
}

func promptContentWidth(styles *Styles, innerW int) int {
	promptFrameW, _ := styles.PromptStyle.GetFrameSize()
	promptWidth := max(0, innerW-promptFrameW)
	if promptWidth < 20 && innerW >= promptFrameW+20 {
		promptWidth = 20
	}
	return promptWidth
}

func (m Model) buildLayoutCache(width, height int) LayoutCache {
	styles := m.styles
	appH, appV := styles.AppStyle.GetFrameSize()
	innerW := max(0, width-appH)
	innerH := max(0, height-appV)

	footerH := footerCompact
	if innerH >= footerFullMinHeight {
		footerH = m.fullFooterHeight(innerH, promptContentWidth(styles, innerW))
	}

	gridH := max(2, innerH-headerLines-footerH)

	footerAuxStyle := lipgloss.NewStyle().
		Width(innerW).
		Background(styles.colorBg)
	helpAuxStyle := styles.HelpStyle.Inherit(lipgloss.NewStyle().
		Padding(0, 1).
		Width(max(0, innerW-2)).
		Background(styles.colorBg))

	promptWidth := promptContentWidth(styles, innerW)

	return LayoutCache{
		InnerW:             innerW,
		InnerH:             innerH,
		FooterH:            footerH,
		GridH:              gridH,
		Rows:               max(0, gridH-view.TableChromeLines),
		FooterAuxStyle:     footerAuxStyle,
		StatusAuxStyle:     styles.StatusStyle.Inherit(footerAuxStyle),
		HelpAuxStyle:       helpAuxStyle,
		StatsBarStyle:      styles.StatsBarStyle.Width(innerW),
		PromptStyle:        styles.PromptStyle.Width(promptWidth),
		PromptFocusedStyle: styles.PromptFocusedStyle.Width(promptWidth),
		PromptContentWidth: promptWidth,
	}
}

// refreshLayout recomputes the layout after a size or prompt change and
// keeps the cursor row on screen.
func (m *Model) refreshLayout() {
	m.layoutCache = m.buildLayoutCache(m.width, m.height)
	m.ensureCursorVisible()
}

func (m *Model) ensureCursorVisible() {
	start, _ := view.VisibleRange(len(m.rows()), m.layoutCache.Rows, m.cursor, m.offset)
	m.offset = start
}
