package tui

import (
	"fmt"

	"github.com/javiermolinar/caddie/internal/tui/view"
)

// renderModal renders the current modal.
func (m Model) renderModal() string {
	switch m.modalType {
	case ModalBookingForm:
		return m.renderBookingFormModal()
	case ModalBookingDetail:
		return m.renderBookingDetailModal()
	case ModalResolver:
		return m.renderResolverModal()
	case ModalConfirmCancel:
		return m.renderConfirmCancelModal()
	case ModalDraft:
		return m.renderDraftModal()
	case ModalInit:
		return m.renderInitModal()
	default:
		return ""
	}
}

func (m Model) modalStyles() view.ModalStyles {
	return view.ModalStyles{
		ModalHeaderStyle:       m.styles.ModalHeaderStyle,
		ModalTitleStyle:        m.styles.ModalTitleStyle,
		ModalFooterStyle:       m.styles.ModalFooterStyle,
		ModalStyle:             m.styles.ModalStyle,
		ModalButtonStyle:       m.styles.ModalButtonStyle,
		ModalButtonActiveStyle: m.styles.ModalButtonActiveStyle,
		ModalBodyStyle:         m.styles.ModalBodyStyle,
	}
}

func (m Model) renderBookingFormModal() string {
	body := view.RenderBookingFormBody(m.bookingFormViewModel(), view.BookingFormStyles{
		TagStyle:          m.styles.ModalTagStyle,
		BodyStyle:         m.styles.ModalBodyStyle,
		LabelStyle:        m.styles.ModalLabelStyle,
		InputStyle:        m.styles.ModalInputStyle,
		InputFocusedStyle: m.styles.ModalInputFocusedStyle,
		HintStyle:         m.styles.ModalHintStyle,
		ErrorStyle:        m.styles.ModalErrorStyle,
	})
	footer := view.BookingFormFooter(m.modalStyles())
	return view.RenderModalFrame("New Booking", body, footer, m.modalStyles())
}

func (m Model) renderBookingDetailModal() string {
	vm, ok := m.bookingDetailViewModel()
	if !ok {
		return ""
	}
	body := view.RenderBookingDetailBody(vm, view.BookingDetailStyles{
		TagStyle:       m.styles.ModalTagStyle,
		BodyStyle:      m.styles.ModalBodyStyle,
		MetaStyle:      m.styles.ModalMetaStyle,
		SelectedStyle:  m.styles.ModalSelectedStyle,
		CheckedInStyle: m.styles.CheckedInStyle.Background(m.styles.ModalBgColor),
	})
	footer := view.BookingDetailFooter(m.isPastDay(), m.modalStyles())
	return view.RenderModalFrame("Booking", body, footer, m.modalStyles())
}

func (m Model) renderResolverModal() string {
	vm, canConfirm, ok := m.resolverViewModel()
	if !ok {
		return ""
	}
	body := view.RenderResolverBody(vm, view.ResolverStyles{
		BodyStyle:     m.styles.ModalBodyStyle,
		MetaStyle:     m.styles.ModalMetaStyle,
		TagStyle:      m.styles.ModalTagStyle,
		SelectedStyle: m.styles.ModalSelectedStyle,
	})
	footer := view.ResolverFooter(canConfirm, m.modalStyles())
	title := fmt.Sprintf("Partial fit at %s", vm.TeeTime)
	return view.RenderModalFrame(title, body, footer, m.modalStyles())
}

func (m Model) renderConfirmCancelModal() string {
	b := m.sheet.BookingByID(m.detailID)
	if b == nil {
		return ""
	}
	body := view.RenderConfirmCancelBody(view.ConfirmCancelModel{
		Lead:      b.Lead(),
		Players:   b.PlayerCount(),
		TeeTime:   b.TeeTime,
		DateLabel: b.Date.Format("Mon 02 Jan"),
	}, m.styles.ModalBodyStyle)
	footer := view.ConfirmCancelFooter(m.modalStyles())
	return view.RenderModalFrame("Cancel Booking", body, footer, m.modalStyles())
}

func (m Model) renderDraftModal() string {
	if m.draftResult == nil {
		return ""
	}
	body := view.RenderDraftBody(m.draftViewModel(), view.DraftStyles{
		MetaStyle:         m.styles.ModalMetaStyle,
		SectionTitleStyle: m.styles.ModalTitleStyle,
		BodyStyle:         m.styles.ModalBodyStyle,
		ErrorStyle:        m.styles.ModalErrorStyle,
	})
	footer := view.DraftFooter(m.draftResult.HasValidationErrors(), m.modalStyles())
	return view.RenderModalFrame("Assistant Draft", body, footer, m.modalStyles())
}

func (m Model) renderInitModal() string {
	body := view.RenderInitBody(view.InitModel{
		ConfigPath:    m.initState.ConfigPath,
		DBPath:        m.initState.DBPath,
		ConfigMissing: m.initState.ConfigMissing,
		DBMissing:     m.initState.DBMissing,
		Course:        m.initState.Course,
		FirstTee:      m.initState.FirstTee,
		LastTee:       m.initState.LastTee,
		TeeTimes:      m.initState.TeeTimes,
		Error:         m.initError,
	}, m.styles.ModalBodyStyle, m.styles.ModalMetaStyle, m.styles.ModalErrorStyle)
	footer := view.InitFooter(m.modalStyles())
	return view.RenderModalFrame("Welcome to caddie", body, footer, m.modalStyles())
}
