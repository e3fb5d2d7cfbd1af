package tui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/caddie/internal/placement"
	"github.com/javiermolinar/caddie/internal/teesheet"
	"github.com/javiermolinar/caddie/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.refreshLayout()
		return m, nil

	case commands.SheetLoadedMsg:
		m.setSheet(msg.Sheet)
		m.loading = false
		return m, nil

	case commands.ErrMsg:
		LogError("command", msg.Err)
		m.err = msg.Err
		m.loading = false
		m.drafting = false
		m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
		m.statusTime = time.Now().Add(5 * time.Second)
		return m, nil

	case commands.StatusMsgCmd:
		m.statusMsg = msg.Msg
		m.statusTime = time.Now().Add(3 * time.Second)
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return commands.ClearStatusMsg{}
		})

	case commands.ClearStatusMsg:
		if time.Now().After(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil

	case commands.RelocatedMsg:
		return m.handleRelocated(msg)

	case commands.DraftStartedMsg:
		m.drafting = true
		m.statusMsg = "Drafting..."
		return m, nil

	case commands.DraftResultMsg:
		m.drafting = false
		m.drafter = msg.Drafter
		m.draftResult = msg.Result
		m.mode = ModeModal
		m.modalType = ModalDraft
		m.statusMsg = ""
		return m, nil

	case commands.DraftSavedMsg:
		if msg.Booking != nil {
			m.statusMsg = fmt.Sprintf("Booked %s at %s", msg.Booking.Lead(), msg.Booking.TeeTime)
		}
		m.drafter = nil
		m.draftResult = nil
		m.closeModal()
		return m, m.loadSheet()
	}

	if m.mode == ModePrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		m.refreshLayout()
		return m, cmd
	}
	return m, nil
}

// handleRelocated applies the outcome of a background relocation. A result
// from an earlier placement session only refreshes the sheet.
func (m Model) handleRelocated(msg commands.RelocatedMsg) (tea.Model, tea.Cmd) {
	LogRelocation(msg.Seq, m.placementSeq, msg.Err)
	if msg.Seq != m.placementSeq {
		return m, m.loadSheet()
	}

	if msg.Err != nil {
		switch {
		case errors.Is(msg.Err, teesheet.ErrSlotFull):
			m.statusMsg = fmt.Sprintf("%s filled up, nothing changed", msg.Request.TeeTime)
		default:
			m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
		}
		m.statusTime = time.Now().Add(5 * time.Second)
		return m, m.loadSheet()
	}

	verb := "Moved"
	if msg.Request.Action == placement.ActionCopy {
		verb = "Copied"
	}
	if msg.Booking != nil {
		m.statusMsg = fmt.Sprintf("%s %d players to %s", verb, msg.Booking.PlayerCount(), msg.Booking.TeeTime)
		if idx := m.sheet.Index(msg.Booking.TeeTime); idx >= 0 {
			m.cursor = idx
			m.bookIdx = 0
			m.ensureCursorVisible()
		}
	}
	return m, m.loadSheet()
}

// setSheet installs a freshly loaded sheet and keeps the cursor in range.
func (m *Model) setSheet(sheet *teesheet.Sheet) {
	if sheet == nil {
		return
	}
	m.sheet = sheet
	m.bindings.Controller().SetOccupancy(sheet)

	rows := len(sheet.TeeTimes())
	switch {
	case rows == 0:
		m.cursor = 0
	case m.cursor >= rows:
		m.cursor = rows - 1
	}
	if n := len(sheet.BookingsAt(m.cursorTeeTime())); m.bookIdx >= n {
		m.bookIdx = 0
	}
	if m.modalType == ModalBookingDetail && sheet.BookingByID(m.detailID) == nil {
		m.closeModal()
	}
	m.ensureCursorVisible()
}
