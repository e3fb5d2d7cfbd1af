// Package booking implements the booking operations behind the tee sheet:
// validated booking creation and move/copy relocation for placement mode.
package booking

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/javiermolinar/caddie/internal/dateutil"
	"github.com/javiermolinar/caddie/internal/teesheet"
)

// Service errors.
var (
	ErrInvalidInput   = errors.New("invalid booking")
	ErrUnknownTeeTime = errors.New("tee time is not on the sheet")
)

// Input is an unvalidated booking request from a form, the CLI or the assistant.
type Input struct {
	Date    string        `validate:"omitempty,datetime=2006-01-02"`
	TeeTime string        `validate:"required,tee_time"`
	Players []PlayerInput `validate:"required,min=1,max=4,dive"`
	Note    string        `validate:"max=200"`
}

// PlayerInput is one player of an Input.
type PlayerInput struct {
	ID   string `validate:"max=32"`
	Name string `validate:"required,max=60"`
	Kind string `validate:"omitempty,player_kind"`
}

// Service creates bookings on the configured sheet.
type Service struct {
	repo     teesheet.Repository
	teeTimes []string
	now      func() time.Time
	newID    func(teesheet.PlayerKind) string
}

// NewService creates a service that accepts bookings on teeTimes.
func NewService(repo teesheet.Repository, teeTimes []string) *Service {
	return &Service{
		repo:     repo,
		teeTimes: append([]string(nil), teeTimes...),
		now:      time.Now,
		newID:    playerID,
	}
}

// idPrefixes marks generated ids with the kind of player they were made for.
var idPrefixes = map[teesheet.PlayerKind]string{
	teesheet.KindMember: "P-",
	teesheet.KindGuest:  "G-",
	teesheet.KindWalkUp: "W-",
}

// playerID returns a short generated id for players without a member number.
func playerID(kind teesheet.PlayerKind) string {
	return idPrefixes[kind] + strings.ToUpper(uuid.NewString()[:8])
}

// TeeTimes returns the tee times the service accepts.
func (s *Service) TeeTimes() []string {
	return append([]string(nil), s.teeTimes...)
}

// Book validates in and persists it as a new booking.
// Players without an id get a generated one so every player in the booking
// can be addressed on its own.
func (s *Service) Book(ctx context.Context, in Input) (*teesheet.Booking, error) {
	in = normalize(in)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	date, err := dateutil.ParseDay(in.Date, s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := dateutil.NotPast(date, s.now()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if !slices.Contains(s.teeTimes, in.TeeTime) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTeeTime, in.TeeTime)
	}

	players := make([]teesheet.Player, 0, len(in.Players))
	for _, p := range in.Players {
		kind, err := teesheet.ParseKind(p.Kind)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		player := teesheet.Player{ID: p.ID, Name: p.Name, Kind: kind}
		if player.ID == "" {
			player.ID = s.newID(kind)
		}
		players = append(players, player)
	}

	b, err := teesheet.NewBooking(date.Format(dateutil.Layout), in.TeeTime, players)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	b.Note = in.Note

	if err := s.repo.CreateBooking(ctx, b); err != nil {
		return nil, fmt.Errorf("creating booking: %w", err)
	}
	return b, nil
}

func normalize(in Input) Input {
	out := Input{
		Date:    sanitize(in.Date),
		TeeTime: sanitize(in.TeeTime),
		Note:    sanitize(in.Note),
	}
	for _, p := range in.Players {
		out.Players = append(out.Players, PlayerInput{
			ID:   sanitize(p.ID),
			Name: sanitize(p.Name),
			Kind: strings.ToLower(sanitize(p.Kind)),
		})
	}
	return out
}

// ParsePlayers parses "Name", "Name:kind" or "Name:kind:id" entries
// separated by commas, as typed on the command line and in the booking form.
func ParsePlayers(s string) []PlayerInput {
	var result []PlayerInput
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 3)
		p := PlayerInput{Name: strings.TrimSpace(parts[0])}
		if len(parts) > 1 {
			p.Kind = strings.TrimSpace(parts[1])
		}
		if len(parts) > 2 {
			p.ID = strings.TrimSpace(parts[2])
		}
		result = append(result, p)
	}
	return result
}
