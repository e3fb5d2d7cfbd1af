package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ModalStyles groups the styles needed to render modal frames and buttons.
type ModalStyles struct {
	ModalHeaderStyle       lipgloss.Style
	ModalTitleStyle        lipgloss.Style
	ModalFooterStyle       lipgloss.Style
	ModalStyle             lipgloss.Style
	ModalButtonStyle       lipgloss.Style
	ModalButtonActiveStyle lipgloss.Style
	ModalBodyStyle         lipgloss.Style
}

// RenderModalFrame renders a modal with the provided title, body, and footer.
func RenderModalFrame(title, body, footer string, styles ModalStyles) string {
	var b strings.Builder

	b.WriteString(styles.ModalHeaderStyle.Render(styles.ModalTitleStyle.Render(title)))
	if body != "" {
		b.WriteString("\n\n")
		b.WriteString(body)
	}
	if footer != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.ModalFooterStyle.Render(footer))
	}

	return styles.ModalStyle.Render(b.String())
}

// RenderModalButtons renders a row of modal buttons with the first one active.
func RenderModalButtons(styles ModalStyles, labels ...string) string {
	return renderButtons(styles.ModalButtonStyle, styles.ModalButtonActiveStyle, styles.ModalBodyStyle, labels)
}

// RenderModalButtonsCompact renders buttons with narrow padding, for footers
// with many actions.
func RenderModalButtonsCompact(styles ModalStyles, labels ...string) string {
	return renderButtons(
		styles.ModalButtonStyle.Padding(0, 1),
		styles.ModalButtonActiveStyle.Padding(0, 1),
		styles.ModalBodyStyle,
		labels,
	)
}

func renderButtons(button, active, sepStyle lipgloss.Style, labels []string) string {
	parts := make([]string, 0, len(labels))
	for i, label := range labels {
		style := button
		if i == 0 {
			style = active
		}
		parts = append(parts, style.Render(label))
	}
	return strings.Join(parts, sepStyle.Render(" "))
}
