package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/caddie/internal/placement"
	"github.com/javiermolinar/caddie/internal/teesheet"
)

const teeColumnWidth = 7

var sheetHeaders = []string{"Tee", "Player 1", "Player 2", "Player 3", "Player 4", "Status"}

// rows returns the tee times shown as table rows.
func (m Model) rows() []string {
	if m.sheet == nil {
		return nil
	}
	return m.sheet.TeeTimes()
}

func (m Model) cursorTeeTime() string {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return ""
	}
	return rows[m.cursor]
}

// selectedBooking returns the booking under the cursor. A tee time holding
// several bookings cycles through them with tab.
func (m Model) selectedBooking() *teesheet.Booking {
	if m.sheet == nil {
		return nil
	}
	bookings := m.sheet.BookingsAt(m.cursorTeeTime())
	if len(bookings) == 0 {
		return nil
	}
	return bookings[min(max(m.bookIdx, 0), len(bookings)-1)]
}

func (m Model) slotClass(teeTime string) placement.Class {
	ctrl := m.bindings.Controller()
	if !ctrl.Active() {
		return placement.ClassNone
	}
	return ctrl.SlotClass(teeTime)
}

func (m Model) buildSheetRows(start, end int) ([][]string, [][]lipgloss.Style) {
	teeTimes := m.rows()
	if start < 0 || end > len(teeTimes) || start >= end {
		return nil, nil
	}

	selected := m.selectedBooking()
	rows := make([][]string, 0, end-start)
	cellStyles := make([][]lipgloss.Style, 0, end-start)

	for i := start; i < end; i++ {
		tt := teeTimes[i]
		isCursor := i == m.cursor
		players := m.sheet.PlayersAt(tt)
		bg := m.styles.RowBackground(m.slotClass(tt), isCursor, len(players) > 0)

		row := make([]string, 0, len(sheetHeaders))
		styles := make([]lipgloss.Style, 0, len(sheetHeaders))

		cursorMark := " "
		if isCursor {
			cursorMark = ">"
		}
		row = append(row, cursorMark+tt)
		styles = append(styles, m.styles.TeeTimeStyle.Width(teeColumnWidth).Background(bg))

		owners := m.positionOwners(tt)
		for pos := 0; pos < teesheet.MaxPlayers; pos++ {
			if pos >= len(players) {
				row = append(row, "-")
				styles = append(styles, m.styles.OpenStyle.Background(bg))
				continue
			}
			p := players[pos]
			row = append(row, playerLabel(p))
			style := m.playerStyle(p).Background(bg)
			if isCursor && selected != nil && owners[pos] == selected.ID {
				style = style.Underline(true)
			}
			styles = append(styles, style)
		}

		status, statusStyle := m.statusCell(tt, len(players))
		row = append(row, status)
		styles = append(styles, statusStyle.Background(bg))

		rows = append(rows, row)
		cellStyles = append(cellStyles, styles)
	}
	return rows, cellStyles
}

// positionOwners maps each occupied position of teeTime to its booking id,
// in the order PlayersAt lists them.
func (m Model) positionOwners(teeTime string) []int64 {
	var owners []int64
	for _, b := range m.sheet.BookingsAt(teeTime) {
		for range b.Players {
			owners = append(owners, b.ID)
		}
	}
	return owners
}

func playerLabel(p teesheet.Player) string {
	label := p.Name
	switch p.Kind {
	case teesheet.KindGuest:
		label += " (G)"
	case teesheet.KindWalkUp:
		label += " (W)"
	}
	if p.CheckedIn {
		label = "✓ " + label
	}
	return label
}

func (m Model) playerStyle(p teesheet.Player) lipgloss.Style {
	switch p.Kind {
	case teesheet.KindMember:
		return m.styles.MemberStyle
	case teesheet.KindWalkUp:
		return m.styles.WalkUpStyle
	default:
		return m.styles.GuestStyle
	}
}

// statusCell describes a tee time: open positions normally, the placement
// verdict while moving or copying.
func (m Model) statusCell(teeTime string, occupied int) (string, lipgloss.Style) {
	ctrl := m.bindings.Controller()
	if ctrl.Active() {
		result := ctrl.SlotValidation(teeTime)
		switch result.Status {
		case placement.StatusValid:
			return "fits", m.styles.CellStyle
		case placement.StatusPartial:
			src, _ := ctrl.Source()
			return fmt.Sprintf("%d of %d fit", result.CanFit, src.PlayerCount()), m.styles.CellStyle
		case placement.StatusInvalid:
			return "full", m.styles.FullStyle
		case placement.StatusSource:
			return "source", m.styles.CellStyle
		}
	}

	open := teesheet.MaxPlayers - occupied
	if open <= 0 {
		return "full", m.styles.FullStyle
	}
	return fmt.Sprintf("%d open", open), m.styles.OpenStyle
}
