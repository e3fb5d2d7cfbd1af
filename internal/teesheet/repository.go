package teesheet

import (
	"context"
	"time"
)

// Repository defines the storage interface for bookings.
//
// Every write that adds players to a tee time must refuse to exceed
// MaxPlayers with ErrSlotFull, checked atomically with the write.
type Repository interface {
	// CreateBooking adds a new booking and sets its ID.
	CreateBooking(ctx context.Context, b *Booking) error

	// GetBooking retrieves a booking by ID.
	GetBooking(ctx context.Context, id int64) (*Booking, error)

	// ListBookingsByDate returns all bookings for a single day.
	ListBookingsByDate(ctx context.Context, date time.Time) ([]*Booking, error)

	// ListBookingsByDateRange returns all bookings within the date range (inclusive).
	ListBookingsByDateRange(ctx context.Context, start, end time.Time) ([]*Booking, error)

	// CancelBooking marks a booking as cancelled, freeing its positions.
	CancelBooking(ctx context.Context, id int64) error

	// MovePlayers moves the players matching keys (nil means all) to a new
	// booking on teeTime of the same day. A source left empty is cancelled.
	// Returns the new booking.
	MovePlayers(ctx context.Context, bookingID int64, teeTime string, keys []string) (*Booking, error)

	// CopyPlayers books the players matching keys (nil means all) again on
	// teeTime of the same day. The source booking is untouched.
	CopyPlayers(ctx context.Context, bookingID int64, teeTime string, keys []string) (*Booking, error)

	// SetCheckedIn records a player's arrival.
	SetCheckedIn(ctx context.Context, bookingID int64, playerKey string, checkedIn bool) error

	// AssignCart assigns a cart number to a player. Empty clears it.
	AssignCart(ctx context.Context, bookingID int64, playerKey, cart string) error

	// AssignCaddie assigns a caddie to a player. Empty clears it.
	AssignCaddie(ctx context.Context, bookingID int64, playerKey, caddie string) error

	// Close releases any resources held by the repository.
	Close() error
}
