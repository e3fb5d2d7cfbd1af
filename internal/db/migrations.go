package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS bookings (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			date        DATE NOT NULL,
			tee_time    TEXT NOT NULL,
			status      TEXT DEFAULT 'booked' CHECK(status IN ('booked', 'cancelled')),
			note        TEXT NOT NULL DEFAULT '',
			created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_bookings_slot ON bookings(date, tee_time);
		CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(status);

		CREATE TABLE IF NOT EXISTS players (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			booking_id  INTEGER NOT NULL REFERENCES bookings(id),
			position    INTEGER NOT NULL,
			player_id   TEXT NOT NULL DEFAULT '',
			name        TEXT NOT NULL,
			kind        TEXT DEFAULT 'guest' CHECK(kind IN ('member', 'guest', 'walkup')),
			checked_in  INTEGER NOT NULL DEFAULT 0,
			cart        TEXT NOT NULL DEFAULT '',
			caddie      TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_players_booking ON players(booking_id, position);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
