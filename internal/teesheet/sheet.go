package teesheet

import (
	"slices"
	"strings"
	"time"

	"github.com/javiermolinar/caddie/internal/dateutil"
)

// Sheet holds one day's bookings laid out over its tee times.
type Sheet struct {
	Date     time.Time
	teeTimes []string
	bookings map[string][]*Booking // booked only, keyed by tee time
	all      []*Booking
}

// Stats summarizes a sheet.
type Stats struct {
	TeeTimes      int
	Bookings      int
	Players       int
	CheckedIn     int
	OpenPositions int
	FullTeeTimes  int
}

// NewSheet builds a sheet for date. Cancelled bookings are kept for lookup
// by id but never occupy a tee time. Bookings on tee times outside teeTimes
// are added as extra rows so nothing disappears from view.
func NewSheet(date time.Time, teeTimes []string, bookings []*Booking) *Sheet {
	s := &Sheet{
		Date:     dateutil.TruncateToDay(date),
		teeTimes: append([]string(nil), teeTimes...),
		bookings: make(map[string][]*Booking),
	}

	for _, b := range bookings {
		if b == nil {
			continue
		}
		s.all = append(s.all, b)
		if !b.IsBooked() {
			continue
		}
		s.bookings[b.TeeTime] = append(s.bookings[b.TeeTime], b)
		if !slices.Contains(s.teeTimes, b.TeeTime) {
			s.teeTimes = append(s.teeTimes, b.TeeTime)
		}
	}
	slices.Sort(s.teeTimes)

	for _, list := range s.bookings {
		slices.SortFunc(list, func(a, b *Booking) int {
			if a.ID < b.ID {
				return -1
			}
			if a.ID > b.ID {
				return 1
			}
			return 0
		})
	}
	return s
}

// TeeTimes returns a copy of the sheet rows in order.
func (s *Sheet) TeeTimes() []string {
	result := make([]string, len(s.teeTimes))
	copy(result, s.teeTimes)
	return result
}

// Index returns the row index of teeTime, or -1.
func (s *Sheet) Index(teeTime string) int {
	return slices.Index(s.teeTimes, teeTime)
}

// HasTeeTime reports whether teeTime is a row of the sheet.
func (s *Sheet) HasTeeTime(teeTime string) bool {
	return s.Index(teeTime) >= 0
}

// Occupancy returns the number of booked players on teeTime.
func (s *Sheet) Occupancy(teeTime string) int {
	n := 0
	for _, b := range s.bookings[teeTime] {
		n += b.PlayerCount()
	}
	return n
}

// OpenPositions returns the free positions on teeTime.
func (s *Sheet) OpenPositions(teeTime string) int {
	return max(0, MaxPlayers-s.Occupancy(teeTime))
}

// BookingsAt returns the booked groups on teeTime.
func (s *Sheet) BookingsAt(teeTime string) []*Booking {
	list := s.bookings[teeTime]
	result := make([]*Booking, len(list))
	copy(result, list)
	return result
}

// BookingByID returns the booking with id, cancelled or not.
func (s *Sheet) BookingByID(id int64) *Booking {
	for _, b := range s.all {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// PlayersAt returns every booked player on teeTime in booking order.
func (s *Sheet) PlayersAt(teeTime string) []Player {
	var result []Player
	for _, b := range s.bookings[teeTime] {
		result = append(result, b.Players...)
	}
	return result
}

// Bookings returns every booking of the day, including cancelled ones.
func (s *Sheet) Bookings() []*Booking {
	result := make([]*Booking, len(s.all))
	copy(result, s.all)
	return result
}

// Stats computes the day's totals.
func (s *Sheet) Stats() Stats {
	st := Stats{TeeTimes: len(s.teeTimes)}
	for _, tt := range s.teeTimes {
		occ := s.Occupancy(tt)
		st.Players += occ
		st.OpenPositions += max(0, MaxPlayers-occ)
		if occ >= MaxPlayers {
			st.FullTeeTimes++
		}
		for _, b := range s.bookings[tt] {
			st.Bookings++
			for _, p := range b.Players {
				if p.CheckedIn {
					st.CheckedIn++
				}
			}
		}
	}
	return st
}

// Text renders the sheet as plain text, one tee time per line.
func (s *Sheet) Text(course string) string {
	var sb strings.Builder
	if course != "" {
		sb.WriteString(course)
		sb.WriteString(" - ")
	}
	sb.WriteString(s.Date.Format("Monday 2006-01-02"))
	sb.WriteString("\n")

	for _, tt := range s.teeTimes {
		players := s.PlayersAt(tt)
		names := make([]string, 0, MaxPlayers)
		for _, p := range players {
			names = append(names, p.Name)
		}
		for len(names) < MaxPlayers {
			names = append(names, "-")
		}
		sb.WriteString(tt)
		sb.WriteString("  ")
		sb.WriteString(strings.Join(names, " | "))
		sb.WriteString("\n")
	}
	return sb.String()
}
