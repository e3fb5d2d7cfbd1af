package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/javiermolinar/caddie/internal/dateutil"
	"github.com/javiermolinar/caddie/internal/tui/view"
)

func (m Model) bookingFormViewModel() view.BookingFormModel {
	tt := m.cursorTeeTime()
	return view.BookingFormModel{
		DateLabel:      m.date.Format("Mon 02 Jan"),
		TeeTime:        tt,
		Open:           m.sheet.OpenPositions(tt),
		PlayersView:    m.styledInput(m.formPlayers, m.formFocus == 0),
		NoteView:       m.styledInput(m.formNote, m.formFocus == 1),
		FocusedPlayers: m.formFocus == 0,
		FocusedNote:    m.formFocus == 1,
		Error:          m.formError,
	}
}

// styledInput renders a form input with the focused field background.
func (m Model) styledInput(input textinput.Model, focused bool) string {
	textStyle := m.styles.ModalInputTextStyle
	cursorStyle := textStyle
	if focused {
		focusedBg := m.styles.ModalInputFocusedStyle.GetBackground()
		textStyle = textStyle.Background(focusedBg)
		input.PlaceholderStyle = m.styles.ModalPlaceholderStyle.Background(focusedBg)
		cursorStyle = m.styles.ModalInputCursorStyle
	}
	input.TextStyle = textStyle
	input.PromptStyle = textStyle
	input.Cursor.TextStyle = textStyle
	input.Cursor.Style = cursorStyle
	return input.View()
}

func (m Model) bookingDetailViewModel() (view.BookingDetailModel, bool) {
	b := m.sheet.BookingByID(m.detailID)
	if b == nil {
		return view.BookingDetailModel{}, false
	}
	players := make([]view.DetailPlayer, 0, len(b.Players))
	for _, p := range b.Players {
		players = append(players, view.DetailPlayer{
			Name:      p.Name,
			Kind:      string(p.Kind),
			ID:        p.ID,
			CheckedIn: p.CheckedIn,
			Cart:      p.Cart,
			Caddie:    p.Caddie,
		})
	}
	return view.BookingDetailModel{
		ID:        b.ID,
		DateLabel: b.Date.Format("Mon 02 Jan"),
		TeeTime:   b.TeeTime,
		Note:      b.Note,
		Players:   players,
		Focus:     m.detailFocus,
	}, true
}

func (m Model) resolverViewModel() (view.ResolverModel, bool, bool) {
	sel, tt, ok := m.bindings.Resolver()
	if !ok {
		return view.ResolverModel{}, false, false
	}
	candidates := make([]view.ResolverCandidate, 0, sel.Len())
	for _, c := range sel.Candidates() {
		candidates = append(candidates, view.ResolverCandidate{
			Name:     c.Name,
			ID:       c.ID,
			Selected: sel.IsSelected(c.Key()),
		})
	}
	return view.ResolverModel{
		Action:     string(m.bindings.Controller().Action()),
		TeeTime:    tt,
		Label:      sel.Label(),
		Candidates: candidates,
		Focus:      m.resolverFocus,
	}, sel.CanConfirm(), true
}

func (m Model) draftViewModel() view.DraftModel {
	r := m.draftResult
	players := make([]string, 0, len(r.Players))
	for _, p := range r.Players {
		kind := p.Kind
		if kind == "" {
			kind = "guest"
		}
		label := fmt.Sprintf("%s (%s)", p.Name, kind)
		if p.ID != "" {
			label += " " + p.ID
		}
		players = append(players, label)
	}

	dateLabel := r.Date
	if d, err := dateutil.ParseDate(r.Date); err == nil {
		dateLabel = d.Format("Mon 02 Jan 2006")
	}

	errs := make([]string, 0, len(r.ValidationErrors))
	for _, e := range r.ValidationErrors {
		errs = append(errs, e.String())
	}

	return view.DraftModel{
		DateLabel: dateLabel,
		TeeTime:   r.TeeTime,
		Players:   players,
		Warnings:  r.Warnings,
		Errors:    errs,
		Attempts:  r.Attempts,
	}
}
