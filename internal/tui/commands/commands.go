// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/caddie/internal/assistant"
	"github.com/javiermolinar/caddie/internal/booking"
	"github.com/javiermolinar/caddie/internal/config"
	"github.com/javiermolinar/caddie/internal/llm"
	"github.com/javiermolinar/caddie/internal/placement"
	"github.com/javiermolinar/caddie/internal/teesheet"
)

// SheetLoadedMsg is sent when a day's tee sheet is loaded.
type SheetLoadedMsg struct {
	Sheet *teesheet.Sheet
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// RelocatedMsg is sent when a confirmed placement has been applied.
// Seq identifies the placement session that produced it.
type RelocatedMsg struct {
	Seq     int
	Request placement.Request
	Booking *teesheet.Booking
	Err     error
}

// DraftStartedMsg is sent when the assistant starts drafting.
type DraftStartedMsg struct{}

// DraftResultMsg is sent when the assistant returns a draft.
type DraftResultMsg struct {
	Result  *assistant.Result
	Drafter *assistant.Drafter
}

// DraftSavedMsg is sent when a draft is booked.
type DraftSavedMsg struct {
	Booking *teesheet.Booking
}

// LoadSheet loads the bookings of date laid over teeTimes.
func LoadSheet(repo teesheet.Repository, date time.Time, teeTimes []string) tea.Cmd {
	return func() tea.Msg {
		bookings, err := repo.ListBookingsByDate(context.Background(), date)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading tee sheet: %w", err)}
		}
		return SheetLoadedMsg{Sheet: teesheet.NewSheet(date, teeTimes, bookings)}
	}
}

// Relocate applies a confirmed placement in the background.
func Relocate(relocator *booking.Relocator, seq int, req placement.Request) tea.Cmd {
	return func() tea.Msg {
		b, err := relocator.Apply(context.Background(), req)
		return RelocatedMsg{Seq: seq, Request: req, Booking: b, Err: err}
	}
}

// Draft creates a command that asks the assistant for a booking draft on day.
func Draft(input string, day time.Time, cfg *config.Config, repo teesheet.Repository, service *booking.Service) tea.Cmd {
	return func() tea.Msg {
		client, err := llm.NewClient(cfg.Assistant.Provider, cfg.Assistant.Model, cfg.Assistant.BaseURL)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("creating LLM client: %w", err)}
		}

		drafter := assistant.New(client, repo, service, assistant.Options{
			Course:     cfg.Course.Name,
			Compact:    llm.IsLocal(cfg.Assistant.Provider),
			MaxRetries: cfg.Assistant.MaxRetries,
		})

		result, err := drafter.DraftOn(context.Background(), day, input)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("drafting: %w", err)}
		}
		return DraftResultMsg{Result: result, Drafter: drafter}
	}
}

// RefineDraft sends the user's correction to an existing draft session.
func RefineDraft(drafter *assistant.Drafter, feedback string) tea.Cmd {
	return func() tea.Msg {
		if drafter == nil {
			return ErrMsg{Err: assistant.ErrNoSession}
		}
		result, err := drafter.Refine(context.Background(), feedback)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("refining draft: %w", err)}
		}
		return DraftResultMsg{Result: result, Drafter: drafter}
	}
}

// SaveDraft creates a command to book the current draft.
func SaveDraft(drafter *assistant.Drafter, result *assistant.Result) tea.Cmd {
	return func() tea.Msg {
		if drafter == nil || result == nil {
			return ErrMsg{Err: errors.New("no draft to save")}
		}
		b, err := drafter.Save(context.Background(), result)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return DraftSavedMsg{Booking: b}
	}
}
