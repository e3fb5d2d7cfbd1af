package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/caddie/internal/dateutil"
	"github.com/javiermolinar/caddie/internal/tui/view"
)

// View renders the TUI using a boxed, parent-controlled layout.
func (m Model) View() string {
	return view.Render(m.viewState())
}

func (m Model) viewState() view.ViewState {
	showModal := m.mode == ModeModal && m.modalType != ModalNone
	modal := ""
	if showModal {
		modal = m.renderModal()
	}

	return view.ViewState{
		Width:            m.width,
		Height:           m.height,
		BaseContent:      m.renderAppContent(),
		ModalContent:     modal,
		ShowModal:        showModal,
		ModalBg:          m.styles.ModalBgColor,
		EmptyPlaceholder: "Loading...",
	}
}

func (m Model) renderAppContent() string {
	layout := m.layoutCache
	if layout.InnerW <= 0 || layout.InnerH <= 0 {
		return "Terminal too small"
	}

	header := view.RenderHeader(m.headerModel(layout), view.HeaderStyles{
		Title: m.styles.TitleStyle,
		Date:  m.styles.HeaderStyle.Bold(false).Foreground(m.styles.colorFg),
		Badge: m.styles.ModalSelectedStyle,
		Bg:    m.styles.colorBg,
	})
	spacer := view.PadLinesWithBackground("", layout.InnerW, headerLines-1, m.styles.colorBg)
	gridBox := view.RenderTable(m.tableViewState(layout))
	footerBox := view.RenderFooterModel(m.footerViewState(layout))

	content := lipgloss.JoinVertical(lipgloss.Left, header, spacer, gridBox, footerBox)
	app := m.styles.AppStyle.Render(content)
	return view.PadLinesWithBackground(app, m.width, m.height, m.styles.colorBg)
}

func (m Model) headerModel(layout LayoutCache) view.HeaderModel {
	badge := ""
	if ctrl := m.bindings.Controller(); ctrl.Active() {
		badge = strings.ToUpper(string(ctrl.Action()))
	}
	return view.HeaderModel{
		InnerW: layout.InnerW,
		Course: m.config.Course.Name,
		Date:   m.date.Format("Mon 02 Jan 2006"),
		Badge:  badge,
		Today:  dateutil.SameDay(m.date, m.nowFunc()),
	}
}

func (m Model) tableViewState(layout LayoutCache) view.TableViewState {
	if layout.GridH <= view.TableChromeLines || len(m.rows()) == 0 {
		return view.TableViewState{Render: false}
	}

	start, end := view.VisibleRange(len(m.rows()), layout.Rows, m.cursor, m.offset)
	rows, cellStyles := m.buildSheetRows(start, end)

	headerStyle := m.styles.HeaderStyle.Padding(0, 1)
	headerStyles := make([]lipgloss.Style, len(sheetHeaders))
	for i := range headerStyles {
		headerStyles[i] = headerStyle
	}
	headerStyles[0] = m.styles.HeaderStyle.Width(teeColumnWidth)

	return view.TableViewState{
		InnerW:       layout.InnerW,
		GridH:        layout.GridH,
		Headers:      sheetHeaders,
		HeaderStyles: headerStyles,
		Content: view.TableContent{
			Rows:       rows,
			CellStyles: cellStyles,
		},
		BorderStyle: lipgloss.NewStyle().
			Foreground(m.styles.colorAccent).
			Background(m.styles.colorBg),
		Bg:     m.styles.colorBg,
		Render: true,
	}
}

func (m Model) footerViewState(layout LayoutCache) view.FooterModel {
	contentWidth := layout.PromptContentWidth
	lines := view.ClampPromptLines(m.promptLines(contentWidth), m.promptMaxContentLines(), contentWidth)

	showPrompt := m.mode == ModePrompt || m.mode == ModeNormal

	return view.FooterModel{
		InnerW:           layout.InnerW,
		FooterH:          layout.FooterH,
		FullFooter:       layout.FooterH >= footerMinHeight,
		StatsLine:        m.renderStatsBar(layout.InnerW),
		LegendText:       m.renderLegend(),
		StatusText:       m.statusMsgOrDefault(),
		HelpText:         m.renderHelp(),
		PromptLines:      lines,
		PromptMax:        m.promptMaxContentLines(),
		PromptFocus:      m.mode == ModePrompt,
		ShowPrompt:       showPrompt,
		FooterStyle:      layout.FooterAuxStyle,
		StatusStyle:      layout.StatusAuxStyle,
		HelpStyle:        layout.HelpAuxStyle,
		PromptStyle:      layout.PromptStyle,
		PromptFocusStyle: layout.PromptFocusedStyle,
		Bg:               m.styles.colorBg,
	}
}
