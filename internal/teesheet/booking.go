// Package teesheet defines the core domain types for caddie.
package teesheet

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/caddie/internal/dateutil"
	"github.com/javiermolinar/caddie/internal/placement"
)

// MaxPlayers is the number of player positions on a single tee time.
const MaxPlayers = placement.SlotCapacity

// Validation errors.
var (
	ErrNoPlayers       = errors.New("booking needs at least one player")
	ErrTooManyPlayers  = errors.New("a tee time holds at most 4 players")
	ErrEmptyName       = errors.New("player name cannot be empty")
	ErrInvalidTeeTime  = errors.New("tee time must be in HH:MM format")
	ErrInvalidKind     = errors.New("player kind must be 'member', 'guest' or 'walkup'")
	ErrDuplicatePlayer = errors.New("player appears twice in booking")
)

// Domain errors.
var (
	ErrSlotFull        = errors.New("tee time is full")
	ErrBookingNotFound = errors.New("booking not found")
	ErrPlayerNotFound  = errors.New("player not found in booking")
	ErrSameTeeTime     = errors.New("destination is the booking's own tee time")
	ErrBookingClosed   = errors.New("booking is cancelled")
)

// Status represents the state of a booking.
type Status string

const (
	StatusBooked    Status = "booked"
	StatusCancelled Status = "cancelled"
)

// PlayerKind distinguishes club members from visitors.
type PlayerKind string

const (
	KindMember PlayerKind = "member"
	KindGuest  PlayerKind = "guest"
	KindWalkUp PlayerKind = "walkup"
)

// ParseKind parses a player kind. Empty defaults to guest.
func ParseKind(s string) (PlayerKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "member":
		return KindMember, nil
	case "", "guest":
		return KindGuest, nil
	case "walkup", "walk-up":
		return KindWalkUp, nil
	default:
		return "", ErrInvalidKind
	}
}

// Player is one position on a tee time.
type Player struct {
	ID        string // member number or generated id
	Name      string
	Kind      PlayerKind
	CheckedIn bool
	Cart      string
	Caddie    string
}

// Key identifies the player inside its booking. Players stored without an
// id fall back to their name, which must then be unique in the booking.
func (p Player) Key() string {
	if p.ID != "" {
		return p.ID
	}
	return p.Name
}

// Booking is a group of players holding positions on one tee time.
type Booking struct {
	ID        int64
	Date      time.Time
	TeeTime   string // "HH:MM" format
	Players   []Player
	Status    Status
	Note      string
	CreatedAt time.Time
}

// NewBooking creates a booked group with validation.
// date can be empty (defaults to today) or in YYYY-MM-DD format.
func NewBooking(date, teeTime string, players []Player) (*Booking, error) {
	d, err := dateutil.ParseDate(date)
	if err != nil {
		return nil, err
	}
	if err := ValidateTeeTime(teeTime); err != nil {
		return nil, err
	}
	if err := ValidatePlayers(players); err != nil {
		return nil, err
	}

	return &Booking{
		Date:      d,
		TeeTime:   teeTime,
		Players:   append([]Player(nil), players...),
		Status:    StatusBooked,
		CreatedAt: time.Now(),
	}, nil
}

// ValidatePlayers checks the size of a group and that every player has a
// name and a key no other player in the group shares.
func ValidatePlayers(players []Player) error {
	if len(players) == 0 {
		return ErrNoPlayers
	}
	if len(players) > MaxPlayers {
		return ErrTooManyPlayers
	}
	seen := make(map[string]bool, len(players))
	for i, p := range players {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("player %d: %w", i+1, ErrEmptyName)
		}
		if seen[p.Key()] {
			return fmt.Errorf("%w: %q", ErrDuplicatePlayer, p.Key())
		}
		seen[p.Key()] = true
	}
	return nil
}

// IsBooked returns true if the booking still holds its tee time.
func (b *Booking) IsBooked() bool {
	return b.Status == StatusBooked
}

// IsCancelled returns true if the booking was cancelled.
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// PlayerCount returns the number of players in the booking.
func (b *Booking) PlayerCount() int {
	return len(b.Players)
}

// Lead returns the first player's name, used as the booking label.
func (b *Booking) Lead() string {
	if len(b.Players) == 0 {
		return ""
	}
	return b.Players[0].Name
}

// PlayerIndex returns the index of the player with key, or -1.
func (b *Booking) PlayerIndex(key string) int {
	for i, p := range b.Players {
		if p.Key() == key {
			return i
		}
	}
	return -1
}

// SelectPlayers returns the players matching keys in booking order.
// A nil keys slice selects every player. Unknown keys return ErrPlayerNotFound.
func (b *Booking) SelectPlayers(keys []string) ([]Player, error) {
	if keys == nil {
		return append([]Player(nil), b.Players...), nil
	}
	if len(keys) == 0 {
		return nil, ErrNoPlayers
	}

	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		if b.PlayerIndex(k) < 0 {
			return nil, fmt.Errorf("%w: %q", ErrPlayerNotFound, k)
		}
		want[k] = true
	}

	result := make([]Player, 0, len(want))
	for _, p := range b.Players {
		if want[p.Key()] {
			result = append(result, p)
		}
	}
	return result, nil
}

// Snapshot returns the immutable view used by placement mode.
func (b *Booking) Snapshot() placement.Booking {
	names := make([]string, len(b.Players))
	ids := make([]string, len(b.Players))
	for i, p := range b.Players {
		names[i] = p.Name
		ids[i] = p.ID
	}
	return placement.Booking{
		ID:            b.ID,
		PlayerNames:   names,
		PlayerIDs:     ids,
		SourceTeeTime: b.TeeTime,
	}
}
