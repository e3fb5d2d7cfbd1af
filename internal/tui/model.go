// Package tui provides the terminal user interface for caddie.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/caddie/internal/assistant"
	"github.com/javiermolinar/caddie/internal/booking"
	"github.com/javiermolinar/caddie/internal/config"
	"github.com/javiermolinar/caddie/internal/dateutil"
	"github.com/javiermolinar/caddie/internal/db"
	"github.com/javiermolinar/caddie/internal/placement"
	"github.com/javiermolinar/caddie/internal/teesheet"
	"github.com/javiermolinar/caddie/internal/tui/commands"
	"github.com/javiermolinar/caddie/internal/tui/theme"
)

type Mode int

const (
	ModeNormal    Mode = iota
	ModePlacement      // Moving or copying a booking
	ModePrompt
	ModeModal
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModePlacement:
		return "PLACEMENT"
	case ModePrompt:
		return "PROMPT"
	case ModeModal:
		return "MODAL"
	default:
		return "UNKNOWN"
	}
}

type ModalType int

const (
	ModalNone          ModalType = iota
	ModalBookingForm             // New booking on the cursor tee time
	ModalBookingDetail           // Players of an existing booking
	ModalResolver                // Partial fit player selection
	ModalConfirmCancel
	ModalDraft // Assistant draft review
	ModalInit
)

// pendingPlacement receives the request confirmed by the placement
// controller. It is shared by every copy of the Model so the selector,
// which is installed once, can hand the request back to Update.
type pendingPlacement struct {
	req *placement.Request
}

func (p *pendingPlacement) PlacementSelect(req placement.Request) error {
	p.req = &req
	return nil
}

func (p *pendingPlacement) take() (placement.Request, bool) {
	if p.req == nil {
		return placement.Request{}, false
	}
	req := *p.req
	p.req = nil
	return req, true
}

type Model struct {
	repo      teesheet.Repository
	config    *config.Config
	service   *booking.Service
	relocator *booking.Relocator

	theme  *theme.Theme
	styles *Styles

	teeTimes []string
	date     time.Time
	sheet    *teesheet.Sheet
	cursor   int // tee time row
	bookIdx  int // booking within the cursor row
	offset   int // first visible row
	loading  bool

	// Placement
	bindings      *placement.Bindings
	pending       *pendingPlacement
	placementSeq  int
	resolverFocus int

	mode      Mode
	modalType ModalType

	// Booking form
	formPlayers textinput.Model
	formNote    textinput.Model
	formFocus   int // 0=players, 1=note
	formError   string

	// Booking detail
	detailID    int64
	detailFocus int

	// Assistant
	drafter     *assistant.Drafter
	draftResult *assistant.Result
	amending    bool
	drafting    bool

	prompt textinput.Model

	width       int
	height      int
	layoutCache LayoutCache

	statusMsg  string
	statusTime time.Time
	err        error

	initState InitState
	initError string

	nowFunc func() time.Time
}

// ModelOption configures a Model at construction.
type ModelOption func(*Model)

// WithInitState sets the startup initialization state.
func WithInitState(state InitState) ModelOption {
	return func(m *Model) {
		m.initState = state
		if state.NeedsInit {
			m.mode = ModeModal
			m.modalType = ModalInit
		}
	}
}

// WithDate opens the sheet on a given day instead of today.
func WithDate(day time.Time) ModelOption {
	return func(m *Model) {
		m.date = dateutil.TruncateToDay(day)
	}
}

// WithNow overrides the clock.
func WithNow(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.nowFunc = now
	}
}

// New creates a new TUI model.
func New(repo teesheet.Repository, cfg *config.Config, opts ...ModelOption) *Model {
	ti := textinput.New()
	ti.Placeholder = "/book 4 players tomorrow at 9 ..."

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load(theme.DefaultName)
	}
	styles := NewStyles(t)

	formPlayers := newFormInput(styles, "Ana:member:M100, Ben:guest", 200)
	formNote := newFormInput(styles, "Note (optional)", 120)

	pending := &pendingPlacement{}
	teeTimes := cfg.TeeTimes()

	m := &Model{
		repo:        repo,
		config:      cfg,
		theme:       t,
		styles:      styles,
		teeTimes:    teeTimes,
		date:        dateutil.TruncateToDay(time.Now()),
		bindings:    placement.NewBindings(placement.NewController(pending)),
		pending:     pending,
		mode:        ModeNormal,
		prompt:      ti,
		formPlayers: formPlayers,
		formNote:    formNote,
		nowFunc:     time.Now,
	}
	m.setRepo(repo)

	for _, opt := range opts {
		opt(m)
	}
	m.sheet = teesheet.NewSheet(m.date, teeTimes, nil)
	m.bindings.Controller().SetOccupancy(m.sheet)
	m.layoutCache = m.buildLayoutCache(0, 0)

	return m
}

func newFormInput(styles *Styles, placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 44
	in.PlaceholderStyle = styles.ModalPlaceholderStyle
	in.TextStyle = styles.ModalInputTextStyle
	in.PromptStyle = styles.ModalInputTextStyle
	in.Cursor.Style = styles.ModalInputCursorStyle
	in.Cursor.TextStyle = styles.ModalInputTextStyle
	return in
}

// setRepo wires the booking service and the relocator to repo.
func (m *Model) setRepo(repo teesheet.Repository) {
	m.repo = repo
	if repo == nil {
		m.service = nil
		m.relocator = nil
		return
	}
	m.service = booking.NewService(repo, m.teeTimes)
	m.relocator = booking.NewRelocator(context.Background(), repo)
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.initState.NeedsInit || m.repo == nil {
		return nil
	}
	return m.loadSheet()
}

// isPastDay reports whether the open sheet is before today.
func (m Model) isPastDay() bool {
	return m.date.Before(dateutil.TruncateToDay(m.nowFunc()))
}

func (m *Model) loadSheet() tea.Cmd {
	if m.repo == nil {
		return nil
	}
	m.loading = true
	return commands.LoadSheet(m.repo, m.date, m.teeTimes)
}

// Run starts the TUI.
func Run(repo teesheet.Repository, cfg *config.Config) error {
	return RunWithDebug(repo, cfg, false)
}

// RunWithDebug starts the TUI with optional debug logging.
// A nil repo is opened from the configured path, after the init modal when
// the config or database do not exist yet.
func RunWithDebug(repo teesheet.Repository, cfg *config.Config, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	initialRepo := repo
	var initState InitState

	if repo == nil {
		state, err := DetectInitState(cfg)
		if err != nil {
			return err
		}
		initState = state
		if !state.NeedsInit {
			repo, err = db.Open(state.DBPath)
			if err != nil {
				return err
			}
		}
	}

	model := New(repo, cfg, WithInitState(initState))
	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if initialRepo == nil {
		if m, ok := finalModel.(Model); ok && m.repo != nil {
			_ = m.repo.Close()
		}
	}
	return err
}
