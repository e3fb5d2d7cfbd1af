// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/caddie/internal/teesheet"
)

// SQLite implements teesheet.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

var _ teesheet.Repository = (*SQLite)(nil)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New creates a new SQLite repository and runs migrations.
// Transactions take the write lock up front so the capacity check and the
// write that depends on it cannot interleave with another writer.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Open creates the database directory if needed and opens the repository.
func Open(path string) (*SQLite, error) {
	if path == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return New(path)
}

func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_txlock=immediate&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// CreateBooking adds a new booking and sets its ID.
// Returns teesheet.ErrSlotFull if the tee time cannot take every player.
func (s *SQLite) CreateBooking(ctx context.Context, b *teesheet.Booking) error {
	if err := validateBooking(b); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := checkCapacity(ctx, tx, b.Date, b.TeeTime, len(b.Players)); err != nil {
		return err
	}

	if b.Status == "" {
		b.Status = teesheet.StatusBooked
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}

	id, err := insertBooking(ctx, tx, b)
	if err != nil {
		return err
	}
	if err := insertPlayers(ctx, tx, id, b.Players); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	b.ID = id
	return nil
}

// GetBooking retrieves a booking by ID.
// Returns teesheet.ErrBookingNotFound if it does not exist.
func (s *SQLite) GetBooking(ctx context.Context, id int64) (*teesheet.Booking, error) {
	return getBooking(ctx, s.db, id)
}

// ListBookingsByDate returns all bookings for a single day ordered by tee time.
func (s *SQLite) ListBookingsByDate(ctx context.Context, date time.Time) ([]*teesheet.Booking, error) {
	return s.ListBookingsByDateRange(ctx, date, date)
}

// ListBookingsByDateRange returns all bookings within the date range (inclusive).
func (s *SQLite) ListBookingsByDateRange(ctx context.Context, start, end time.Time) ([]*teesheet.Booking, error) {
	query := `
		SELECT id, date, tee_time, status, note, created_at
		FROM bookings
		WHERE date >= ? AND date <= ?
		ORDER BY date, tee_time, id
	`

	rows, err := s.db.QueryContext(ctx, query, formatDate(start), formatDate(end))
	if err != nil {
		return nil, fmt.Errorf("querying bookings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var (
		bookings []*teesheet.Booking
		byID     = make(map[int64]*teesheet.Booking)
	)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
		byID[b.ID] = b
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bookings: %w", err)
	}
	if len(bookings) == 0 {
		return bookings, nil
	}

	playerQuery := `
		SELECT p.booking_id, p.player_id, p.name, p.kind, p.checked_in, p.cart, p.caddie
		FROM players p
		JOIN bookings b ON b.id = p.booking_id
		WHERE b.date >= ? AND b.date <= ?
		ORDER BY p.booking_id, p.position
	`
	prows, err := s.db.QueryContext(ctx, playerQuery, formatDate(start), formatDate(end))
	if err != nil {
		return nil, fmt.Errorf("querying players: %w", err)
	}
	defer func() { _ = prows.Close() }()

	for prows.Next() {
		var (
			bookingID int64
			p         teesheet.Player
		)
		if err := prows.Scan(&bookingID, &p.ID, &p.Name, &p.Kind, &p.CheckedIn, &p.Cart, &p.Caddie); err != nil {
			return nil, fmt.Errorf("scanning player: %w", err)
		}
		if b, ok := byID[bookingID]; ok {
			b.Players = append(b.Players, p)
		}
	}
	if err := prows.Err(); err != nil {
		return nil, fmt.Errorf("iterating players: %w", err)
	}

	return bookings, nil
}

// CancelBooking marks a booking as cancelled, freeing its positions.
func (s *SQLite) CancelBooking(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `UPDATE bookings SET status = ? WHERE id = ?`, teesheet.StatusCancelled, id)
	if err != nil {
		return fmt.Errorf("cancelling booking: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: #%d", teesheet.ErrBookingNotFound, id)
	}
	return nil
}

// MovePlayers moves the selected players to a new booking on teeTime.
// The moved players keep their check-in, cart and caddie. A source booking
// left without players is cancelled and keeps its player rows as history.
func (s *SQLite) MovePlayers(ctx context.Context, bookingID int64, teeTime string, keys []string) (*teesheet.Booking, error) {
	return s.relocate(ctx, bookingID, teeTime, keys, true)
}

// CopyPlayers books the selected players again on teeTime. The copies start
// unchecked with no cart or caddie. The source booking is untouched.
func (s *SQLite) CopyPlayers(ctx context.Context, bookingID int64, teeTime string, keys []string) (*teesheet.Booking, error) {
	return s.relocate(ctx, bookingID, teeTime, keys, false)
}

func (s *SQLite) relocate(ctx context.Context, bookingID int64, teeTime string, keys []string, move bool) (*teesheet.Booking, error) {
	if err := teesheet.ValidateTeeTime(teeTime); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	src, err := getBooking(ctx, tx, bookingID)
	if err != nil {
		return nil, err
	}
	if !src.IsBooked() {
		return nil, fmt.Errorf("%w: #%d", teesheet.ErrBookingClosed, bookingID)
	}
	if src.TeeTime == teeTime {
		return nil, teesheet.ErrSameTeeTime
	}

	selected, err := src.SelectPlayers(keys)
	if err != nil {
		return nil, err
	}
	if err := checkCapacity(ctx, tx, src.Date, teeTime, len(selected)); err != nil {
		return nil, err
	}

	if !move {
		for i := range selected {
			selected[i].CheckedIn = false
			selected[i].Cart = ""
			selected[i].Caddie = ""
		}
	}

	dest := &teesheet.Booking{
		Date:      src.Date,
		TeeTime:   teeTime,
		Players:   selected,
		Status:    teesheet.StatusBooked,
		Note:      src.Note,
		CreatedAt: time.Now(),
	}
	id, err := insertBooking(ctx, tx, dest)
	if err != nil {
		return nil, err
	}
	if err := insertPlayers(ctx, tx, id, selected); err != nil {
		return nil, err
	}
	dest.ID = id

	if move {
		if err := removeMoved(ctx, tx, src, selected); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return dest, nil
}

// removeMoved drops the moved players from src, cancelling it when empty.
func removeMoved(ctx context.Context, tx *sql.Tx, src *teesheet.Booking, moved []teesheet.Player) error {
	if len(moved) == len(src.Players) {
		_, err := tx.ExecContext(ctx, `UPDATE bookings SET status = ? WHERE id = ?`, teesheet.StatusCancelled, src.ID)
		if err != nil {
			return fmt.Errorf("cancelling emptied booking: %w", err)
		}
		return nil
	}

	gone := make(map[string]bool, len(moved))
	for _, p := range moved {
		gone[p.Key()] = true
	}
	remaining := make([]teesheet.Player, 0, len(src.Players)-len(moved))
	for _, p := range src.Players {
		if !gone[p.Key()] {
			remaining = append(remaining, p)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM players WHERE booking_id = ?`, src.ID); err != nil {
		return fmt.Errorf("removing moved players: %w", err)
	}
	return insertPlayers(ctx, tx, src.ID, remaining)
}

// SetCheckedIn records a player's arrival.
func (s *SQLite) SetCheckedIn(ctx context.Context, bookingID int64, playerKey string, checkedIn bool) error {
	return s.updatePlayer(ctx, bookingID, playerKey, "checked_in", checkedIn)
}

// AssignCart assigns a cart number to a player. Empty clears it.
func (s *SQLite) AssignCart(ctx context.Context, bookingID int64, playerKey, cart string) error {
	return s.updatePlayer(ctx, bookingID, playerKey, "cart", strings.TrimSpace(cart))
}

// AssignCaddie assigns a caddie to a player. Empty clears it.
func (s *SQLite) AssignCaddie(ctx context.Context, bookingID int64, playerKey, caddie string) error {
	return s.updatePlayer(ctx, bookingID, playerKey, "caddie", strings.TrimSpace(caddie))
}

// updatePlayer sets column on the first player of the booking matching key.
// column is always one of the fixed names above.
func (s *SQLite) updatePlayer(ctx context.Context, bookingID int64, key, column string, value any) error {
	query := `
		UPDATE players SET ` + column + ` = ?
		WHERE id = (
			SELECT id FROM players
			WHERE booking_id = ?
			  AND (player_id = ? OR (player_id = '' AND name = ?))
			ORDER BY position
			LIMIT 1
		)
	`
	result, err := s.db.ExecContext(ctx, query, value, bookingID, key, key)
	if err != nil {
		return fmt.Errorf("updating player %s: %w", column, err)
	}

	rows, _ := result.RowsAffected()
	if rows > 0 {
		return nil
	}
	if _, err := s.GetBooking(ctx, bookingID); err != nil {
		return err
	}
	return fmt.Errorf("%w: %q", teesheet.ErrPlayerNotFound, key)
}

// Occupancy returns the number of booked players on a tee time.
func (s *SQLite) Occupancy(ctx context.Context, date time.Time, teeTime string) (int, error) {
	return occupancy(ctx, s.db, date, teeTime)
}

func validateBooking(b *teesheet.Booking) error {
	if err := teesheet.ValidateTeeTime(b.TeeTime); err != nil {
		return err
	}
	return teesheet.ValidatePlayers(b.Players)
}

func occupancy(ctx context.Context, q querier, date time.Time, teeTime string) (int, error) {
	query := `
		SELECT COUNT(p.id)
		FROM players p
		JOIN bookings b ON b.id = p.booking_id
		WHERE b.date = ? AND b.tee_time = ? AND b.status = ?
	`
	var n int
	if err := q.QueryRowContext(ctx, query, formatDate(date), teeTime, teesheet.StatusBooked).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting players: %w", err)
	}
	return n, nil
}

// checkCapacity refuses adding players to a tee time beyond MaxPlayers.
func checkCapacity(ctx context.Context, q querier, date time.Time, teeTime string, adding int) error {
	taken, err := occupancy(ctx, q, date, teeTime)
	if err != nil {
		return err
	}
	if taken+adding > teesheet.MaxPlayers {
		return fmt.Errorf("%w: %s %s has %d of %d positions taken, cannot add %d",
			teesheet.ErrSlotFull, formatDate(date), teeTime, taken, teesheet.MaxPlayers, adding)
	}
	return nil
}

func insertBooking(ctx context.Context, q querier, b *teesheet.Booking) (int64, error) {
	query := `INSERT INTO bookings (date, tee_time, status, note, created_at) VALUES (?, ?, ?, ?, ?)`

	result, err := q.ExecContext(ctx, query,
		formatDate(b.Date),
		b.TeeTime,
		b.Status,
		b.Note,
		b.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}
	return id, nil
}

func insertPlayers(ctx context.Context, q querier, bookingID int64, players []teesheet.Player) error {
	query := `
		INSERT INTO players (booking_id, position, player_id, name, kind, checked_in, cart, caddie)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	for i, p := range players {
		kind := p.Kind
		if kind == "" {
			kind = teesheet.KindGuest
		}
		_, err := q.ExecContext(ctx, query, bookingID, i, p.ID, strings.TrimSpace(p.Name), kind, p.CheckedIn, p.Cart, p.Caddie)
		if err != nil {
			return fmt.Errorf("inserting player %q: %w", p.Name, err)
		}
	}
	return nil
}

func getBooking(ctx context.Context, q querier, id int64) (*teesheet.Booking, error) {
	query := `SELECT id, date, tee_time, status, note, created_at FROM bookings WHERE id = ?`

	rows, err := q.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("querying booking: %w", err)
	}
	var b *teesheet.Booking
	if rows.Next() {
		b, err = scanBooking(rows)
	}
	if err == nil {
		err = rows.Err()
	}
	_ = rows.Close()
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("%w: #%d", teesheet.ErrBookingNotFound, id)
	}

	players, err := loadPlayers(ctx, q, id)
	if err != nil {
		return nil, err
	}
	b.Players = players
	return b, nil
}

func loadPlayers(ctx context.Context, q querier, bookingID int64) ([]teesheet.Player, error) {
	query := `
		SELECT player_id, name, kind, checked_in, cart, caddie
		FROM players
		WHERE booking_id = ?
		ORDER BY position
	`
	rows, err := q.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("querying players: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var players []teesheet.Player
	for rows.Next() {
		var p teesheet.Player
		if err := rows.Scan(&p.ID, &p.Name, &p.Kind, &p.CheckedIn, &p.Cart, &p.Caddie); err != nil {
			return nil, fmt.Errorf("scanning player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating players: %w", err)
	}
	return players, nil
}

func scanBooking(rows *sql.Rows) (*teesheet.Booking, error) {
	var (
		b         teesheet.Booking
		date      string
		createdAt string
	)
	if err := rows.Scan(&b.ID, &date, &b.TeeTime, &b.Status, &b.Note, &createdAt); err != nil {
		return nil, fmt.Errorf("scanning booking: %w", err)
	}

	var err error
	b.Date, err = parseDate(date)
	if err != nil {
		return nil, fmt.Errorf("parsing booking date: %w", err)
	}
	b.CreatedAt, err = parseDate(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}
	return &b, nil
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// parseDate parses a date string in the formats SQLite might return.
// Date-only values are parsed as local midnight to match time.Now() based dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}

	// SQLite returns DATE columns as "2006-01-02T00:00:00Z".
	if len(s) == 20 && s[10] == 'T' && strings.HasSuffix(s, "T00:00:00Z") {
		if t, err := time.ParseInLocation("2006-01-02", s[:10], time.Local); err == nil {
			return t, nil
		}
	}

	formats := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognized date format: " + s)
}
