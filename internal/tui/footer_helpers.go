package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/caddie/internal/placement"
)

// statusMsgOrDefault returns the status message or a space to preserve layout.
// While placing, the line describes the placement and the cursor tee time.
func (m Model) statusMsgOrDefault() string {
	if m.statusMsg != "" {
		return m.statusMsg
	}
	if m.bindings.Controller().Active() {
		return m.placementStatus()
	}
	return " "
}

// placementStatus reads e.g. "MOVE #12 (3 players) from 08:00 | 08:16: 2 of 3 fit".
func (m Model) placementStatus() string {
	ctrl := m.bindings.Controller()
	src, ok := ctrl.Source()
	if !ok {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s #%d (%d players) from %s", strings.ToUpper(string(ctrl.Action())), src.ID, src.PlayerCount(), src.SourceTeeTime)

	tt := m.cursorTeeTime()
	if tt == "" {
		return b.String()
	}
	result := ctrl.SlotValidation(tt)
	switch result.Status {
	case placement.StatusValid:
		fmt.Fprintf(&b, " | %s: all players fit", tt)
	case placement.StatusPartial:
		fmt.Fprintf(&b, " | %s: %d of %d fit, choose players", tt, result.CanFit, src.PlayerCount())
	case placement.StatusInvalid:
		fmt.Fprintf(&b, " | %s: full", tt)
	case placement.StatusSource:
		fmt.Fprintf(&b, " | %s: current tee time", tt)
	}
	return b.String()
}

// renderStatsBar renders the statistics bar.
func (m Model) renderStatsBar(width int) string {
	if m.sheet == nil {
		return ""
	}
	stats := m.sheet.Stats()

	barStyle := lipgloss.NewStyle().
		Foreground(m.styles.colorFg).
		Background(m.styles.colorBg)
	keyStyle := m.styles.StatsKeyStyle

	var bar strings.Builder
	bar.WriteString(keyStyle.Render(fmt.Sprintf("%d", stats.Bookings)))
	bar.WriteString(barStyle.Render(" bookings | "))
	bar.WriteString(keyStyle.Render(fmt.Sprintf("%d", stats.Players)))
	bar.WriteString(barStyle.Render(fmt.Sprintf(" players, %d checked in | ", stats.CheckedIn)))
	bar.WriteString(keyStyle.Render(fmt.Sprintf("%d", stats.OpenPositions)))
	bar.WriteString(barStyle.Render(fmt.Sprintf(" open positions | %d/%d tee times full", stats.FullTeeTimes, stats.TeeTimes)))
	if m.loading {
		bar.WriteString(barStyle.Render(" [Loading...]"))
	}
	if m.drafting {
		bar.WriteString(barStyle.Render(" [Drafting...]"))
	}

	statsStyle := m.layoutCache.StatsBarStyle
	frameW, _ := statsStyle.GetFrameSize()
	contentWidth := max(0, width-frameW)
	content := bar.String()
	if contentWidth > 0 {
		content = ansi.Truncate(content, contentWidth, "")
	}
	return statsStyle.Width(contentWidth).Render(content)
}

// renderLegend renders the player legend, or the placement colors while
// moving or copying.
func (m Model) renderLegend() string {
	base := lipgloss.NewStyle().
		Foreground(m.styles.colorFg).
		Background(m.styles.colorBg)
	sep := base.Render("  ")

	if m.bindings.Controller().Active() {
		swatch := func(class placement.Class, label string) string {
			return lipgloss.NewStyle().
				Foreground(m.styles.colorFg).
				Background(m.styles.RowBackground(class, false, false)).
				Render(" " + label + " ")
		}
		return base.Render("Legend: ") +
			swatch(placement.ClassValid, "fits") + sep +
			swatch(placement.ClassPartial, "partial") + sep +
			swatch(placement.ClassInvalid, "full") + sep +
			swatch(placement.ClassSource, "source")
	}

	return base.Render("Legend: ") +
		m.styles.MemberStyle.Background(m.styles.colorBg).Render("Member") + sep +
		m.styles.GuestStyle.Background(m.styles.colorBg).Render("Guest (G)") + sep +
		m.styles.WalkUpStyle.Background(m.styles.colorBg).Render("Walk-up (W)") + sep +
		m.styles.CheckedInStyle.Background(m.styles.colorBg).Render("✓ checked in")
}

// renderHelp renders the help bar.
func (m Model) renderHelp() string {
	var help string
	switch m.mode {
	case ModePlacement:
		help = "j/k: tee time | Enter: place here | Esc: cancel"
	case ModePrompt:
		help = "Enter: submit | Tab: complete | Esc: cancel"
	case ModeModal:
		switch m.modalType {
		case ModalBookingForm:
			help = "Tab: next field | Enter: book | Esc: cancel"
		case ModalBookingDetail:
			help = "j/k: player | Space: check in | m: move | c: copy | x: cancel booking | Esc: close"
		case ModalResolver:
			help = "j/k: player | Space: select | Enter: confirm | Esc: back to sheet"
		case ModalConfirmCancel:
			help = "y/Enter: confirm | n/Esc: keep"
		case ModalDraft:
			help = "a/Enter: book | m: amend | c/Esc: discard"
		case ModalInit:
			help = "Enter: create files | Esc: quit"
		default:
			help = "Esc: close"
		}
	default:
		help = "j/k: tee time | h/l: day | t: today | n: new | Enter: open | m/c: move/copy | x: cancel | /: commands | q: quit"
	}
	return m.styles.HelpStyle.Render(help)
}
