package view

// BookingFormFooter renders the footer for the new booking modal.
func BookingFormFooter(styles ModalStyles) string {
	return RenderModalButtons(styles, "[Enter] Book", "[Tab] Next", "[Esc] Cancel")
}

// BookingDetailFooter renders the footer for the booking detail modal.
// Past days only allow check-in changes.
func BookingDetailFooter(isPast bool, styles ModalStyles) string {
	if isPast {
		return RenderModalButtons(styles, "[Space] Check in", "[Esc] Close")
	}
	return RenderModalButtonsCompact(styles, "[Space] Check in", "[m] Move", "[c] Copy", "[x] Cancel", "[Esc] Close")
}

// ResolverFooter renders the footer for the partial fit resolver.
func ResolverFooter(canConfirm bool, styles ModalStyles) string {
	if !canConfirm {
		return RenderModalButtons(styles, "[Space] Select", "[Esc] Back")
	}
	return RenderModalButtons(styles, "[Enter] Confirm", "[Space] Select", "[Esc] Back")
}

// ConfirmCancelFooter renders the footer for the cancel booking confirmation.
func ConfirmCancelFooter(styles ModalStyles) string {
	return RenderModalButtons(styles, "[y/Enter] Confirm", "[n/Esc] Keep")
}

// DraftFooter renders the footer for the assistant draft modal.
func DraftFooter(hasValidationErrors bool, styles ModalStyles) string {
	if hasValidationErrors {
		return RenderModalButtons(styles, "[m] Amend", "[Esc/c] Discard")
	}
	return RenderModalButtons(styles, "[Enter/a] Book", "[m] Amend", "[Esc/c] Discard")
}

// InitFooter renders the footer for the init modal.
func InitFooter(styles ModalStyles) string {
	return RenderModalButtons(styles, "[Enter] Allow", "[Esc] Quit")
}
