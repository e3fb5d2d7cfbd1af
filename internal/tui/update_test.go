package tui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/caddie/internal/assistant"
	"github.com/javiermolinar/caddie/internal/booking"
	"github.com/javiermolinar/caddie/internal/placement"
	"github.com/javiermolinar/caddie/internal/teesheet"
	"github.com/javiermolinar/caddie/internal/tui/commands"
)

func draftResult(errs []string) *assistant.Result {
	r := &assistant.Result{
		Date:    "2099-06-14",
		TeeTime: "08:30",
		Players: []booking.PlayerInput{
			{Name: "Zed", Kind: "guest"},
			{Name: "Ana", Kind: "member", ID: "m1"},
		},
		Attempts: 1,
	}
	for _, e := range errs {
		r.ValidationErrors = append(r.ValidationErrors, assistant.ValidationError{Field: "tee_time", Message: e})
	}
	return r
}

func TestStaleRelocationOnlyReloads(t *testing.T) {
	m, _ := newTestModel(t)
	m.placementSeq = 2

	updated, cmd := m.Update(commands.RelocatedMsg{
		Seq:     1,
		Request: placement.Request{Action: placement.ActionMove, TeeTime: "08:30"},
		Booking: &teesheet.Booking{ID: 99, TeeTime: "08:30", Players: []teesheet.Player{{Name: "Ana"}}},
	})
	model := updated.(Model)

	if model.cursor != 0 {
		t.Errorf("cursor = %d, want 0", model.cursor)
	}
	if model.statusMsg != "" {
		t.Errorf("statusMsg = %q, want empty", model.statusMsg)
	}
	if cmd == nil {
		t.Error("stale result should still reload the sheet")
	}
}

func TestRelocationErrorReportsFilledTeeTime(t *testing.T) {
	m, _ := newTestModel(t)
	m.placementSeq = 3

	updated, cmd := m.Update(commands.RelocatedMsg{
		Seq:     3,
		Request: placement.Request{Action: placement.ActionMove, TeeTime: "08:10"},
		Err:     fmt.Errorf("move booking #1 to 08:10: %w", teesheet.ErrSlotFull),
	})
	model := updated.(Model)

	if model.statusMsg != "08:10 filled up, nothing changed" {
		t.Errorf("statusMsg = %q", model.statusMsg)
	}
	if cmd == nil {
		t.Error("expected a sheet reload")
	}
}

func TestSheetLoadedClampsCursorAndRefreshesOccupancy(t *testing.T) {
	m, _ := newTestModel(t)
	m.cursor = 3
	m.bookIdx = 2

	short := teesheet.NewSheet(testDay, []string{"08:00", "08:10"}, nil)
	updated, _ := m.Update(commands.SheetLoadedMsg{Sheet: short})
	model := updated.(Model)

	if model.cursor != 1 {
		t.Errorf("cursor = %d, want 1", model.cursor)
	}
	if model.bookIdx != 0 {
		t.Errorf("bookIdx = %d, want 0", model.bookIdx)
	}

	model, _ = press(t, model, "k")
	src := placement.Booking{ID: 1, PlayerIDs: []string{"a", "b", "c", "d"}, SourceTeeTime: "07:00"}
	model.bindings.Controller().Start(placement.ActionMove, src)
	if got := model.bindings.Controller().SlotValidation("08:10").Status; got != placement.StatusValid {
		t.Errorf("status on empty sheet = %v, want valid", got)
	}
}

func TestErrMsgSetsStatus(t *testing.T) {
	m, _ := newTestModel(t)
	m.drafting = true

	updated, _ := m.Update(commands.ErrMsg{Err: errors.New("boom")})
	model := updated.(Model)

	if model.statusMsg != "Error: boom" {
		t.Errorf("statusMsg = %q", model.statusMsg)
	}
	if model.drafting {
		t.Error("drafting should be cleared")
	}
}

func TestStatusMsgSchedulesClear(t *testing.T) {
	m, _ := newTestModel(t)

	updated, cmd := m.Update(commands.StatusMsgCmd{Msg: "saved"})
	model := updated.(Model)
	if model.statusMsg != "saved" {
		t.Errorf("statusMsg = %q", model.statusMsg)
	}
	if cmd == nil {
		t.Error("expected clear tick")
	}
}

func TestDraftResultOpensModal(t *testing.T) {
	m, _ := newTestModel(t)
	m.drafting = true

	updated, _ := m.Update(commands.DraftResultMsg{Result: draftResult(nil)})
	model := updated.(Model)

	if model.mode != ModeModal || model.modalType != ModalDraft {
		t.Fatalf("mode/modal = %v/%v, want draft modal", model.mode, model.modalType)
	}
	if model.drafting {
		t.Error("drafting should be cleared")
	}
	if !strings.Contains(model.renderModal(), "Zed (guest)") {
		t.Error("draft modal should list players")
	}
}

func TestDraftSavedClosesModal(t *testing.T) {
	m, _ := newTestModel(t)
	m.draftResult = draftResult(nil)
	m.mode = ModeModal
	m.modalType = ModalDraft

	updated, cmd := m.Update(commands.DraftSavedMsg{Booking: &teesheet.Booking{
		TeeTime: "08:30",
		Players: []teesheet.Player{{Name: "Zed"}},
	}})
	model := updated.(Model)

	if model.mode != ModeNormal || model.draftResult != nil {
		t.Error("saved draft should close the modal")
	}
	if model.statusMsg != "Booked Zed at 08:30" {
		t.Errorf("statusMsg = %q", model.statusMsg)
	}
	if cmd == nil {
		t.Error("expected a sheet reload")
	}
}

func TestWindowSizeKeepsCursorVisible(t *testing.T) {
	m, _ := newTestModel(t)
	m.cursor = 3

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 12})
	model := updated.(Model)

	if model.layoutCache.InnerW == 0 {
		t.Fatal("layout not computed")
	}
	if model.layoutCache.Rows != 2 || model.offset != 2 {
		t.Errorf("cursor %d outside visible window offset=%d rows=%d", model.cursor, model.offset, model.layoutCache.Rows)
	}
}
