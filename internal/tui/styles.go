package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/caddie/internal/placement"
	"github.com/javiermolinar/caddie/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	colorBg          lipgloss.Color
	colorBgHighlight lipgloss.Color
	colorBgSelection lipgloss.Color
	colorFg          lipgloss.Color
	colorFgMuted     lipgloss.Color
	colorAccent      lipgloss.Color
	colorWarning     lipgloss.Color

	TitleStyle  lipgloss.Style
	HeaderStyle lipgloss.Style

	// Sheet cells
	TeeTimeStyle   lipgloss.Style
	CellStyle      lipgloss.Style
	MemberStyle    lipgloss.Style
	GuestStyle     lipgloss.Style
	WalkUpStyle    lipgloss.Style
	CheckedInStyle lipgloss.Style
	OpenStyle      lipgloss.Style
	FullStyle      lipgloss.Style
	CursorRowBg    lipgloss.Color
	BookedRowBg    lipgloss.Color

	// Placement row backgrounds, indexed by class; the cursor row uses rowAlt.
	row    map[placement.Class]lipgloss.Color
	rowAlt map[placement.Class]lipgloss.Color

	StatsBarStyle lipgloss.Style
	StatsKeyStyle lipgloss.Style

	PromptStyle        lipgloss.Style
	PromptFocusedStyle lipgloss.Style
	StatusStyle        lipgloss.Style
	HelpStyle          lipgloss.Style

	// Modal styles
	ModalStyle             lipgloss.Style
	ModalBgColor           lipgloss.Color
	ModalBackdropColor     lipgloss.Color
	ModalHeaderStyle       lipgloss.Style
	ModalFooterStyle       lipgloss.Style
	ModalTitleStyle        lipgloss.Style
	ModalBodyStyle         lipgloss.Style
	ModalMetaStyle         lipgloss.Style
	ModalTagStyle          lipgloss.Style
	ModalLabelStyle        lipgloss.Style
	ModalInputStyle        lipgloss.Style
	ModalInputFocusedStyle lipgloss.Style
	ModalInputTextStyle    lipgloss.Style
	ModalInputCursorStyle  lipgloss.Style
	ModalPlaceholderStyle  lipgloss.Style
	ModalButtonStyle       lipgloss.Style
	ModalButtonActiveStyle lipgloss.Style
	ModalHintStyle         lipgloss.Style
	ModalErrorStyle        lipgloss.Style
	ModalSelectedStyle     lipgloss.Style

	TableStyle lipgloss.Style
	AppStyle   lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	s := &Styles{}
	palette := theme.NewPalette(t)

	s.colorBg = palette.Bg
	s.colorBgHighlight = palette.BgHighlight
	s.colorBgSelection = palette.BgSelection
	s.colorFg = palette.Fg
	s.colorFgMuted = palette.FgMuted
	s.colorAccent = palette.Accent
	s.colorWarning = palette.Warning

	s.row = map[placement.Class]lipgloss.Color{
		placement.ClassValid:   palette.ValidBg,
		placement.ClassPartial: palette.PartialBg,
		placement.ClassInvalid: palette.InvalidBg,
		placement.ClassSource:  palette.SourceBg,
	}
	s.rowAlt = map[placement.Class]lipgloss.Color{
		placement.ClassValid:   palette.ValidBgAlt,
		placement.ClassPartial: palette.PartialBgAlt,
		placement.ClassInvalid: palette.InvalidBgAlt,
		placement.ClassSource:  palette.SourceBgAlt,
	}

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent).
		Background(s.colorBg)

	s.HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent).
		Background(s.colorBg)

	s.TeeTimeStyle = lipgloss.NewStyle().
		Foreground(s.colorAccent).
		Bold(true)

	s.CellStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Padding(0, 1)

	s.MemberStyle = s.CellStyle.Foreground(palette.Member).Bold(true)
	s.GuestStyle = s.CellStyle.Foreground(palette.Guest)
	s.WalkUpStyle = s.CellStyle.Foreground(s.colorFg).Italic(true)
	s.CheckedInStyle = lipgloss.NewStyle().Foreground(palette.CheckedIn).Bold(true)

	s.OpenStyle = s.CellStyle.Foreground(s.colorFgMuted)
	s.FullStyle = s.CellStyle.Foreground(s.colorWarning).Bold(true)

	s.CursorRowBg = s.colorBgSelection
	s.BookedRowBg = s.colorBgHighlight

	s.StatsBarStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBg).
		Padding(0, 0)

	s.StatsKeyStyle = lipgloss.NewStyle().
		Foreground(s.colorAccent).
		Background(s.colorBg).
		Bold(true)

	s.PromptStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.colorFgMuted).
		BorderBackground(s.colorBg).
		Background(s.colorBgHighlight).
		Foreground(s.colorFg).
		Padding(0, 1)

	s.PromptFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.colorAccent).
		BorderBackground(s.colorBg).
		Background(s.colorBgSelection).
		Foreground(s.colorFg).
		Bold(true).
		Padding(0, 1)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.colorWarning).
		Background(s.colorBg).
		Bold(true)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBg)

	modal := palette.Modal
	s.ModalBackdropColor = modal.Backdrop
	s.ModalBgColor = modal.Bg

	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(modal.Border).
		Background(modal.Bg).
		Foreground(modal.Text).
		Padding(1, 1).
		Width(64).
		Align(lipgloss.Left)

	s.ModalHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.Text).
		Background(modal.Bg).
		Padding(0, 1).
		Align(lipgloss.Center)

	s.ModalFooterStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(modal.Bg)

	s.ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.Text).
		Background(modal.Bg)

	s.ModalBodyStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modal.Bg)

	s.ModalMetaStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modal.Bg)

	s.ModalTagStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modal.Panel).
		Bold(true).
		Padding(0, 1)

	s.ModalLabelStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Bold(true).
		Width(10).
		Background(modal.Bg)

	s.ModalInputStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(modal.Border).
		Background(modal.Bg).
		Foreground(modal.Text).
		Padding(0, 1).
		Width(48)

	s.ModalInputFocusedStyle = s.ModalInputStyle.
		BorderForeground(s.colorAccent).
		Background(modal.Panel)

	s.ModalInputTextStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modal.Bg)

	s.ModalInputCursorStyle = lipgloss.NewStyle().
		Foreground(palette.TextOnAccent).
		Background(s.colorAccent)

	s.ModalPlaceholderStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modal.Bg)

	s.ModalButtonStyle = lipgloss.NewStyle().
		Background(modal.Panel).
		Foreground(modal.Text).
		Padding(0, 3)

	s.ModalButtonActiveStyle = lipgloss.NewStyle().
		Background(s.colorAccent).
		Foreground(palette.TextOnAccent).
		Padding(0, 3).
		Underline(true)

	s.ModalHintStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modal.Bg)

	s.ModalErrorStyle = lipgloss.NewStyle().
		Foreground(s.colorWarning).
		Background(modal.Bg).
		Bold(true)

	s.ModalSelectedStyle = lipgloss.NewStyle().
		Foreground(palette.TextOnAccent).
		Background(s.colorAccent).
		Bold(true)

	// Table container - border and internal padding only
	s.TableStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.colorAccent).
		Background(s.colorBg).
		Padding(0, 1)

	s.AppStyle = lipgloss.NewStyle().
		Background(s.colorBg).
		PaddingTop(1).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingBottom(1)

	return s
}

// RowBackground returns the background of a sheet row. During placement the
// row is tinted by its class; otherwise booked rows are highlighted.
func (s *Styles) RowBackground(class placement.Class, cursor, booked bool) lipgloss.Color {
	if class != placement.ClassNone {
		if cursor {
			return s.rowAlt[class]
		}
		return s.row[class]
	}
	switch {
	case cursor:
		return s.CursorRowBg
	case booked:
		return s.BookedRowBg
	default:
		return s.colorBg
	}
}
