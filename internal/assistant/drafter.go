// Package assistant drafts bookings from natural language with an LLM.
// Drafts are validated against the tee sheet and retried with feedback
// before they are offered for saving. Both CLI and TUI use this package.
package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/javiermolinar/caddie/internal/booking"
	"github.com/javiermolinar/caddie/internal/dateutil"
	"github.com/javiermolinar/caddie/internal/llm"
	"github.com/javiermolinar/caddie/internal/placement"
	"github.com/javiermolinar/caddie/internal/teesheet"
)

var (
	// ErrDraftInvalid is returned when saving a draft that still has validation errors.
	ErrDraftInvalid = errors.New("draft has unresolved validation errors")
	// ErrNoSession is returned by Refine before any Draft.
	ErrNoSession = errors.New("no active draft session")
)

// Options configures a Drafter.
type Options struct {
	Course     string
	Compact    bool // shorter prompt for local models
	MaxRetries int
}

// Drafter coordinates the LLM, the tee sheet and the booking service.
type Drafter struct {
	llm      *llm.Drafter
	repo     teesheet.Repository
	service  *booking.Service
	opts     Options
	now      func() time.Time
	messages []llm.Message
}

// Result is a drafted booking ready for review.
type Result struct {
	Date     string
	TeeTime  string
	Players  []booking.PlayerInput
	Warnings []string

	// ValidationErrors is set when retries were exhausted.
	ValidationErrors []ValidationError
	Attempts         int
}

// HasValidationErrors reports whether the draft can not be saved.
func (r *Result) HasValidationErrors() bool {
	return len(r.ValidationErrors) > 0
}

// Input converts the draft to a booking input.
func (r *Result) Input() booking.Input {
	return booking.Input{
		Date:    r.Date,
		TeeTime: r.TeeTime,
		Players: append([]booking.PlayerInput(nil), r.Players...),
	}
}

// New creates a Drafter.
func New(client llm.Client, repo teesheet.Repository, service *booking.Service, opts Options) *Drafter {
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	return &Drafter{
		llm:     llm.NewDrafter(client),
		repo:    repo,
		service: service,
		opts:    opts,
		now:     time.Now,
	}
}

// Draft turns input into a booking on today's sheet context.
func (d *Drafter) Draft(ctx context.Context, input string) (*Result, error) {
	return d.DraftOn(ctx, d.now(), input)
}

// DraftOn drafts a booking, giving the model the sheet of day as context.
func (d *Drafter) DraftOn(ctx context.Context, day time.Time, input string) (*Result, error) {
	now := d.now()
	day = dateutil.TruncateToDay(day)

	sheet, err := d.loadSheet(ctx, day)
	if err != nil {
		return nil, err
	}

	d.messages = llm.BuildInitialMessages(llm.DraftRequest{
		Input:            input,
		Now:              now,
		Course:           d.opts.Course,
		Date:             day.Format(dateutil.Layout),
		Slots:            sheetSlots(sheet),
		Capacity:         placement.SlotCapacity,
		UseCompactPrompt: d.opts.Compact,
	})
	return d.run(ctx, now)
}

// Refine adds the user's correction to the conversation and drafts again.
func (d *Drafter) Refine(ctx context.Context, feedback string) (*Result, error) {
	if len(d.messages) == 0 {
		return nil, ErrNoSession
	}
	d.messages = append(d.messages, llm.Message{Role: "user", Content: feedback})
	return d.run(ctx, d.now())
}

func (d *Drafter) run(ctx context.Context, now time.Time) (*Result, error) {
	validator := NewValidator(now, d.service.TeeTimes())

	var (
		resp       *llm.DraftResponse
		validation ValidationResult
		attempt    int
	)
	for attempt = 0; attempt <= d.opts.MaxRetries; attempt++ {
		var err error
		resp, err = d.llm.DraftWithMessages(ctx, d.messages)
		if err != nil {
			return nil, fmt.Errorf("LLM draft (attempt %d): %w", attempt+1, err)
		}

		var sheet *teesheet.Sheet
		if date, err := dateutil.ParseDate(resp.Date); err == nil {
			sheet, err = d.loadSheet(ctx, date)
			if err != nil {
				return nil, err
			}
		}

		validation = validator.Validate(resp, sheet)
		d.appendAssistant(resp)
		if validation.Valid {
			return buildResult(resp, nil, attempt+1), nil
		}
		if attempt < d.opts.MaxRetries {
			d.messages = append(d.messages, llm.Message{Role: "user", Content: validation.FormatErrors()})
		}
	}

	return buildResult(resp, validation.Errors, attempt), nil
}

// Save books a validated draft.
func (d *Drafter) Save(ctx context.Context, r *Result) (*teesheet.Booking, error) {
	if r == nil || r.HasValidationErrors() {
		return nil, ErrDraftInvalid
	}
	b, err := d.service.Book(ctx, r.Input())
	if err != nil {
		return nil, fmt.Errorf("saving draft: %w", err)
	}
	d.messages = nil
	return b, nil
}

// Reset drops the conversation.
func (d *Drafter) Reset() {
	d.messages = nil
}

func (d *Drafter) appendAssistant(resp *llm.DraftResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	d.messages = append(d.messages, llm.Message{Role: "assistant", Content: string(data)})
}

func (d *Drafter) loadSheet(ctx context.Context, day time.Time) (*teesheet.Sheet, error) {
	bookings, err := d.repo.ListBookingsByDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("loading tee sheet: %w", err)
	}
	return teesheet.NewSheet(day, d.service.TeeTimes(), bookings), nil
}

func sheetSlots(sheet *teesheet.Sheet) []llm.SheetSlot {
	teeTimes := sheet.TeeTimes()
	slots := make([]llm.SheetSlot, 0, len(teeTimes))
	for _, tt := range teeTimes {
		slot := llm.SheetSlot{TeeTime: tt, Open: sheet.OpenPositions(tt)}
		for _, p := range sheet.PlayersAt(tt) {
			slot.Players = append(slot.Players, p.Name)
		}
		slots = append(slots, slot)
	}
	return slots
}

func buildResult(resp *llm.DraftResponse, errs []ValidationError, attempts int) *Result {
	r := &Result{
		Date:             resp.Date,
		TeeTime:          resp.TeeTime,
		Warnings:         append([]string(nil), resp.Warnings...),
		ValidationErrors: errs,
		Attempts:         attempts,
	}
	for _, p := range resp.Players {
		r.Players = append(r.Players, booking.PlayerInput{ID: p.ID, Name: p.Name, Kind: p.Kind})
	}
	return r
}
