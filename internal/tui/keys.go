package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/caddie/internal/booking"
	"github.com/javiermolinar/caddie/internal/dateutil"
	"github.com/javiermolinar/caddie/internal/placement"
	"github.com/javiermolinar/caddie/internal/tui/commands"
	"github.com/javiermolinar/caddie/internal/tui/input"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg, m.mode)

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.mode {
	case ModePrompt:
		return m.handlePromptKeys(msg)
	case ModePlacement:
		return m.handlePlacementKeys(msg)
	case ModeModal:
		return m.handleModalKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "pgdown", "ctrl+d":
		m.moveCursor(max(1, m.layoutCache.Rows/2))
	case "pgup", "ctrl+u":
		m.moveCursor(-max(1, m.layoutCache.Rows/2))
	case "g", "home":
		m.moveCursor(-len(m.rows()))
	case "G", "end":
		m.moveCursor(len(m.rows()))

	case "h", "left":
		return m.gotoDay(m.date.AddDate(0, 0, -1))
	case "l", "right":
		return m.gotoDay(m.date.AddDate(0, 0, 1))
	case "t":
		return m.gotoDay(m.nowFunc())

	case "tab":
		if n := len(m.sheet.BookingsAt(m.cursorTeeTime())); n > 1 {
			m.bookIdx = (m.bookIdx + 1) % n
		}

	case "n":
		return m.openBookingForm()

	case "enter":
		if b := m.selectedBooking(); b != nil {
			m.openDetail(b.ID)
			return m, nil
		}
		return m.openBookingForm()

	case "m":
		return m.startPlacement(placement.ActionMove, "normal")
	case "c":
		return m.startPlacement(placement.ActionCopy, "normal")

	case "x":
		b := m.selectedBooking()
		if b == nil {
			m.statusMsg = "No booking at this tee time"
			return m, nil
		}
		m.detailID = b.ID
		m.mode = ModeModal
		m.modalType = ModalConfirmCancel

	case "/":
		m.mode = ModePrompt
		m.prompt.SetValue("/")
		m.prompt.CursorEnd()
		m.prompt.Focus()
		m.refreshLayout()
		return m, textinput.Blink

	case "Y":
		if err := clipboard.WriteAll(m.sheet.Text(m.config.Course.Name)); err != nil {
			m.statusMsg = fmt.Sprintf("Copy failed: %v", err)
			return m, nil
		}
		m.statusMsg = "Copied tee sheet"
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	n := len(m.rows())
	if n == 0 {
		return
	}
	next := min(max(m.cursor+delta, 0), n-1)
	if next != m.cursor {
		m.bookIdx = 0
	}
	m.cursor = next
	m.ensureCursorVisible()
}

func (m Model) gotoDay(day time.Time) (tea.Model, tea.Cmd) {
	m.date = dateutil.TruncateToDay(day)
	m.bookIdx = 0
	m.statusMsg = ""
	return m, m.loadSheet()
}

func (m Model) openBookingForm() (tea.Model, tea.Cmd) {
	if m.isPastDay() {
		m.statusMsg = "Cannot book a past day"
		return m, nil
	}
	tt := m.cursorTeeTime()
	if tt == "" {
		return m, nil
	}
	if m.sheet.OpenPositions(tt) == 0 {
		m.statusMsg = fmt.Sprintf("%s is full", tt)
		return m, nil
	}
	m.formPlayers.SetValue("")
	m.formNote.SetValue("")
	m.formNote.Blur()
	m.formFocus = 0
	m.formError = ""
	m.mode = ModeModal
	m.modalType = ModalBookingForm
	return m, m.formPlayers.Focus()
}

func (m *Model) openDetail(id int64) {
	m.detailID = id
	m.detailFocus = 0
	m.mode = ModeModal
	m.modalType = ModalBookingDetail
}

// startPlacement enters placement mode for the selected booking.
func (m Model) startPlacement(action placement.Action, from string) (tea.Model, tea.Cmd) {
	b := m.selectedBooking()
	if from == "detail" {
		b = m.sheet.BookingByID(m.detailID)
	}
	if b == nil {
		m.statusMsg = "No booking at this tee time"
		return m, nil
	}
	if m.isPastDay() {
		m.statusMsg = fmt.Sprintf("Cannot %s bookings of a past day", action)
		return m, nil
	}
	if m.relocator == nil {
		m.statusMsg = "No storage configured"
		return m, nil
	}

	m.placementSeq++
	m.bindings.Controller().Start(action, b.Snapshot())
	prev := m.mode
	m.mode = ModePlacement
	m.modalType = ModalNone
	m.statusMsg = ""
	LogModeChange(prev, m.mode, string(action))
	LogPlacement(m.bindings.Controller(), m.cursorTeeTime(), "start")
	return m, nil
}

// handlePlacementKeys handles keys while a booking is being moved or copied.
func (m Model) handlePlacementKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "pgdown", "ctrl+d":
		m.moveCursor(max(1, m.layoutCache.Rows/2))
	case "pgup", "ctrl+u":
		m.moveCursor(-max(1, m.layoutCache.Rows/2))

	case "enter":
		tt := m.cursorTeeTime()
		LogPlacement(m.bindings.Controller(), tt, "click")
		outcome, err := m.bindings.Click(tt)
		if err != nil {
			LogError("placement click", err)
			m.statusMsg = fmt.Sprintf("Error: %v", err)
			return m, nil
		}
		switch outcome {
		case placement.ClickConfirmed:
			return m.dispatchRelocation()
		case placement.ClickResolverOpened:
			m.resolverFocus = 0
			m.mode = ModeModal
			m.modalType = ModalResolver
			LogModeChange(ModePlacement, ModeModal, "resolver")
		default:
			switch m.bindings.Controller().SlotValidation(tt).Status {
			case placement.StatusSource:
				m.statusMsg = "Booking is already at this tee time"
			case placement.StatusInvalid:
				m.statusMsg = fmt.Sprintf("%s is full", tt)
			}
		}

	case "esc", "q":
		m.bindings.Cancel()
		m.mode = ModeNormal
		m.statusMsg = "Placement cancelled"
		LogModeChange(ModePlacement, ModeNormal, "cancel")
	}
	return m, nil
}

// dispatchRelocation hands the confirmed request to the relocator. The
// controller has already left placement mode.
func (m Model) dispatchRelocation() (tea.Model, tea.Cmd) {
	req, ok := m.pending.take()
	m.mode = ModeNormal
	m.modalType = ModalNone
	if !ok {
		return m, nil
	}
	LogModeChange(ModePlacement, ModeNormal, "confirmed")
	n := len(req.PlayerIDs)
	if req.All() {
		n = req.Source.PlayerCount()
	}
	m.statusMsg = fmt.Sprintf("%s %d players to %s...", capitalize(string(req.Action)), n, req.TeeTime)
	return m, commands.Relocate(m.relocator, m.placementSeq, req)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// handleModalKeys handles keys in modal mode.
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modalType {
	case ModalBookingForm:
		return m.handleBookingFormKeys(msg)
	case ModalBookingDetail:
		return m.handleBookingDetailKeys(msg)
	case ModalResolver:
		return m.handleResolverKeys(msg)
	case ModalConfirmCancel:
		return m.handleConfirmCancelKeys(msg)
	case ModalDraft:
		return m.handleDraftKeys(msg)
	case ModalInit:
		return m.handleInitKeys(msg)
	default:
		if msg.String() == "esc" {
			m.closeModal()
		}
	}
	return m, nil
}

func (m *Model) closeModal() {
	m.mode = ModeNormal
	m.modalType = ModalNone
}

// handleResolverKeys handles the partial fit player selection.
func (m Model) handleResolverKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sel, _, ok := m.bindings.Resolver()
	if !ok {
		m.mode = ModePlacement
		m.modalType = ModalNone
		return m, nil
	}
	candidates := sel.Candidates()

	switch msg.String() {
	case "j", "down":
		if m.resolverFocus < len(candidates)-1 {
			m.resolverFocus++
		}
	case "k", "up":
		if m.resolverFocus > 0 {
			m.resolverFocus--
		}
	case " ", "space", "x":
		if m.resolverFocus >= 0 && m.resolverFocus < len(candidates) {
			m.bindings.Toggle(candidates[m.resolverFocus].Key())
		}
	case "enter":
		err := m.bindings.ConfirmSelection()
		if errors.Is(err, placement.ErrEmptySelection) {
			m.statusMsg = "Select at least one player"
			return m, nil
		}
		if err != nil {
			LogError("resolver confirm", err)
			m.statusMsg = fmt.Sprintf("Error: %v", err)
			return m, nil
		}
		return m.dispatchRelocation()
	case "esc":
		m.bindings.DismissResolver()
		m.mode = ModePlacement
		m.modalType = ModalNone
		LogModeChange(ModeModal, ModePlacement, "resolver dismissed")
	}
	return m, nil
}

// handleBookingFormKeys handles keys in the new booking form.
func (m Model) handleBookingFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.formPlayers.Blur()
		m.formNote.Blur()
		m.formError = ""
		m.closeModal()
		return m, nil

	case "tab", "shift+tab":
		m.formFocus = (m.formFocus + 1) % 2
		if m.formFocus == 0 {
			m.formNote.Blur()
			return m, m.formPlayers.Focus()
		}
		m.formPlayers.Blur()
		return m, m.formNote.Focus()

	case "enter":
		return m.saveBookingFromForm()
	}

	var cmd tea.Cmd
	if m.formFocus == 0 {
		m.formPlayers, cmd = m.formPlayers.Update(msg)
	} else {
		m.formNote, cmd = m.formNote.Update(msg)
	}
	return m, cmd
}

func (m Model) saveBookingFromForm() (tea.Model, tea.Cmd) {
	if m.service == nil {
		m.formError = "No storage configured"
		return m, nil
	}
	players := booking.ParsePlayers(m.formPlayers.Value())
	if len(players) == 0 {
		m.formError = "At least one player is required"
		return m, nil
	}

	in := booking.Input{
		Date:    m.date.Format(dateutil.Layout),
		TeeTime: m.cursorTeeTime(),
		Players: players,
		Note:    strings.TrimSpace(m.formNote.Value()),
	}
	b, err := m.service.Book(context.Background(), in)
	if err != nil {
		LogError("book", err)
		m.formError = err.Error()
		return m, nil
	}

	m.formPlayers.SetValue("")
	m.formPlayers.Blur()
	m.formNote.SetValue("")
	m.formNote.Blur()
	m.formFocus = 0
	m.formError = ""
	m.closeModal()
	m.statusMsg = fmt.Sprintf("Booked %s at %s", b.Lead(), b.TeeTime)
	return m, m.loadSheet()
}

// handleBookingDetailKeys handles keys in the booking detail modal.
func (m Model) handleBookingDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := m.sheet.BookingByID(m.detailID)
	if b == nil {
		m.closeModal()
		return m, nil
	}

	switch msg.String() {
	case "esc", "q":
		m.closeModal()
	case "j", "down":
		if m.detailFocus < len(b.Players)-1 {
			m.detailFocus++
		}
	case "k", "up":
		if m.detailFocus > 0 {
			m.detailFocus--
		}
	case " ", "space", "i":
		if m.detailFocus < 0 || m.detailFocus >= len(b.Players) {
			return m, nil
		}
		p := b.Players[m.detailFocus]
		if err := m.repo.SetCheckedIn(context.Background(), b.ID, p.Key(), !p.CheckedIn); err != nil {
			LogError("check in", err)
			m.statusMsg = fmt.Sprintf("Error: %v", err)
			return m, nil
		}
		if p.CheckedIn {
			m.statusMsg = fmt.Sprintf("%s not checked in", p.Name)
		} else {
			m.statusMsg = fmt.Sprintf("%s checked in", p.Name)
		}
		return m, m.loadSheet()
	case "m":
		return m.startPlacement(placement.ActionMove, "detail")
	case "c":
		return m.startPlacement(placement.ActionCopy, "detail")
	case "x":
		if m.isPastDay() {
			m.statusMsg = "Cannot cancel bookings of a past day"
			return m, nil
		}
		m.modalType = ModalConfirmCancel
	}
	return m, nil
}

// handleConfirmCancelKeys handles the cancel booking confirmation.
func (m Model) handleConfirmCancelKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "n":
		m.closeModal()
		return m, nil

	case "enter", "y":
		b := m.sheet.BookingByID(m.detailID)
		m.closeModal()
		if b == nil {
			return m, nil
		}
		if err := m.repo.CancelBooking(context.Background(), b.ID); err != nil {
			LogError("cancel booking", err)
			m.statusMsg = fmt.Sprintf("Error: %v", err)
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Cancelled %s at %s", b.Lead(), b.TeeTime)
		return m, m.loadSheet()
	}
	return m, nil
}

// handleDraftKeys handles keys in the assistant draft modal.
func (m Model) handleDraftKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "c":
		if m.drafter != nil {
			m.drafter.Reset()
		}
		m.drafter = nil
		m.draftResult = nil
		m.amending = false
		m.closeModal()
		m.statusMsg = "Draft discarded"
		return m, nil

	case "enter", "a":
		if m.draftResult == nil {
			return m, nil
		}
		if m.draftResult.HasValidationErrors() {
			m.statusMsg = "Cannot book: validation errors present"
			return m, nil
		}
		return m, commands.SaveDraft(m.drafter, m.draftResult)

	case "m":
		m.amending = true
		m.mode = ModePrompt
		m.modalType = ModalNone
		m.prompt.SetValue("")
		m.prompt.Focus()
		m.statusMsg = "What would you like to change?"
		m.refreshLayout()
		return m, textinput.Blink
	}
	return m, nil
}

// handleInitKeys handles the first run modal.
func (m Model) handleInitKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return m, tea.Quit
	case "enter", "y":
		updated, err := m.initializeStorage()
		if err != nil {
			LogError("init storage", err)
			m.initError = err.Error()
			return m, nil
		}
		m = updated
		m.initError = ""
		m.closeModal()
		LogModeChange(ModeModal, m.mode, "storage initialized")
		m.statusMsg = fmt.Sprintf("Tee sheet ready: %d tee times", len(m.teeTimes))
		return m, m.loadSheet()
	}
	return m, nil
}

// handlePromptKeys handles keys in prompt mode.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.prompt.Blur()
		m.prompt.SetValue("")
		if m.amending && m.draftResult != nil {
			m.mode = ModeModal
			m.modalType = ModalDraft
		}
		m.amending = false
		m.refreshLayout()
		return m, nil

	case "enter":
		value := strings.TrimSpace(m.prompt.Value())
		m.mode = ModeNormal
		m.prompt.Blur()
		m.prompt.SetValue("")
		m.refreshLayout()
		return m.handlePromptSubmit(value)

	case "tab":
		if completion, ok := input.PromptAutocomplete(m.prompt.Value(), promptCommands); ok {
			m.prompt.SetValue(completion)
			m.prompt.CursorEnd()
			m.refreshLayout()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	m.refreshLayout()
	return m, cmd
}

// handlePromptSubmit runs a prompt command. Plain text drafts a booking,
// or amends the open draft.
func (m Model) handlePromptSubmit(value string) (tea.Model, tea.Cmd) {
	if m.amending {
		m.amending = false
		if value == "" {
			if m.draftResult != nil {
				m.mode = ModeModal
				m.modalType = ModalDraft
			}
			return m, nil
		}
		m.drafting = true
		m.statusMsg = "Refining draft..."
		return m, commands.RefineDraft(m.drafter, value)
	}
	if value == "" {
		return m, nil
	}

	name, args := input.ParsePromptCommand(value)
	switch name {
	case "":
		return m.startDraft(value)
	case "/book":
		if args == "" {
			m.statusMsg = "Book requires a description"
			return m, nil
		}
		return m.startDraft(args)
	case "/date":
		day, err := dateutil.ParseDay(args, m.nowFunc())
		if err != nil {
			m.statusMsg = fmt.Sprintf("Error: %v", err)
			return m, nil
		}
		return m.gotoDay(day)
	case "/help":
		m.statusMsg = "Commands: /book <text>, /date <day>, /help"
		return m, nil
	default:
		m.statusMsg = fmt.Sprintf("Unknown command: %s", name)
		return m, nil
	}
}

func (m Model) startDraft(text string) (tea.Model, tea.Cmd) {
	if m.repo == nil || m.service == nil {
		m.statusMsg = "No storage configured"
		return m, nil
	}
	m.drafting = true
	m.statusMsg = "Drafting..."
	return m, commands.Draft(text, m.date, m.config, m.repo, m.service)
}
