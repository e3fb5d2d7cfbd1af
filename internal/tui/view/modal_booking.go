package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BookingFormModel contains the fields needed to render the new booking body.
type BookingFormModel struct {
	DateLabel      string
	TeeTime        string
	Open           int
	PlayersView    string // rendered text input
	NoteView       string
	FocusedPlayers bool
	FocusedNote    bool
	Error          string
}

// BookingFormStyles groups styles for the booking form body.
type BookingFormStyles struct {
	TagStyle          lipgloss.Style
	BodyStyle         lipgloss.Style
	LabelStyle        lipgloss.Style
	InputStyle        lipgloss.Style
	InputFocusedStyle lipgloss.Style
	HintStyle         lipgloss.Style
	ErrorStyle        lipgloss.Style
}

// RenderBookingFormBody renders the modal body for a new booking.
func RenderBookingFormBody(model BookingFormModel, styles BookingFormStyles) string {
	var body strings.Builder
	sep := styles.BodyStyle.Render(" ")

	body.WriteString(styles.TagStyle.Render(model.DateLabel) + sep +
		styles.TagStyle.Render(model.TeeTime) + sep +
		styles.TagStyle.Render(fmt.Sprintf("%d open", model.Open)) + "\n\n")

	field := func(label, view string, focused bool) {
		style := styles.InputStyle
		if focused {
			style = styles.InputFocusedStyle
		}
		body.WriteString(styles.LabelStyle.Render(label) + "\n")
		body.WriteString(style.Render(view) + "\n")
	}
	field("PLAYERS", model.PlayersView, model.FocusedPlayers)
	body.WriteString(styles.HintStyle.Render("name[:member|guest|walkup[:id]], comma separated") + "\n\n")
	field("NOTE", model.NoteView, model.FocusedNote)

	if model.Error != "" {
		body.WriteString("\n" + styles.ErrorStyle.Render(model.Error))
	}
	return body.String()
}

// DetailPlayer is one row of the booking detail body.
type DetailPlayer struct {
	Name      string
	Kind      string
	ID        string
	CheckedIn bool
	Cart      string
	Caddie    string
}

// BookingDetailModel contains the fields needed to render a booking.
type BookingDetailModel struct {
	ID        int64
	DateLabel string
	TeeTime   string
	Note      string
	Players   []DetailPlayer
	Focus     int
}

// BookingDetailStyles groups styles for the booking detail body.
type BookingDetailStyles struct {
	TagStyle       lipgloss.Style
	BodyStyle      lipgloss.Style
	MetaStyle      lipgloss.Style
	SelectedStyle  lipgloss.Style
	CheckedInStyle lipgloss.Style
}

// RenderBookingDetailBody renders the players of a booking, one per line,
// with the focused player highlighted.
func RenderBookingDetailBody(model BookingDetailModel, styles BookingDetailStyles) string {
	var body strings.Builder
	sep := styles.BodyStyle.Render(" ")

	body.WriteString(styles.TagStyle.Render(fmt.Sprintf("#%d", model.ID)) + sep +
		styles.TagStyle.Render(model.DateLabel) + sep +
		styles.TagStyle.Render(model.TeeTime) + "\n\n")

	for i, p := range model.Players {
		mark := "[ ]"
		markStyle := styles.BodyStyle
		if p.CheckedIn {
			mark = "[x]"
			markStyle = styles.CheckedInStyle
		}
		line := fmt.Sprintf(" %s (%s)", p.Name, p.Kind)
		if p.ID != "" {
			line += " " + p.ID
		}
		style := styles.BodyStyle
		if i == model.Focus {
			style = styles.SelectedStyle
		}
		body.WriteString(markStyle.Render(" "+mark) + style.Render(line))

		var extras []string
		if p.Cart != "" {
			extras = append(extras, "cart "+p.Cart)
		}
		if p.Caddie != "" {
			extras = append(extras, "caddie "+p.Caddie)
		}
		if len(extras) > 0 {
			body.WriteString(styles.MetaStyle.Render("  " + strings.Join(extras, ", ")))
		}
		body.WriteString("\n")
	}

	if model.Note != "" {
		body.WriteString("\n" + styles.MetaStyle.Render(" "+model.Note))
	}
	return strings.TrimRight(body.String(), "\n")
}

// ConfirmCancelModel contains the fields needed to render the cancel confirmation.
type ConfirmCancelModel struct {
	Lead      string
	Players   int
	TeeTime   string
	DateLabel string
}

// RenderConfirmCancelBody renders the modal body for the cancel confirmation.
func RenderConfirmCancelBody(model ConfirmCancelModel, bodyStyle lipgloss.Style) string {
	var body strings.Builder
	body.WriteString(bodyStyle.Render(fmt.Sprintf("%s, %d player(s)", model.Lead, model.Players)) + "\n")
	body.WriteString(bodyStyle.Render(model.TeeTime+" on "+model.DateLabel) + "\n\n")
	body.WriteString(bodyStyle.Render("This frees the positions on the tee sheet.\nAre you sure?"))
	return body.String()
}
