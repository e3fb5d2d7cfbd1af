package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/caddie/internal/dateutil"
	"github.com/javiermolinar/caddie/internal/teesheet"
)

const statusColumnWidth = 8

func (a *App) sheetCmd() *cobra.Command {
	var (
		date       string
		from       string
		to         string
		bookedOnly bool
	)

	cmd := &cobra.Command{
		Use:   "sheet",
		Short: "Show the tee sheet",
		Long: `Print the tee sheet of a day, or of every day in a range.

Each tee time lists its bookings with their ids, which the move, copy,
cancel, checkin and assign commands take.`,
		Example: `  caddie sheet
  caddie sheet --date tomorrow
  caddie sheet --from 2025-06-14 --to 2025-06-15 --booked`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			if date != "" && (from != "" || to != "") {
				return errors.New("--date cannot be combined with --from/--to")
			}
			if date != "" {
				day, err := dateutil.ParseDay(date, time.Now())
				if err != nil {
					return err
				}
				from = day.Format(dateutil.Layout)
			}

			dateRange, err := dateutil.NewDateRange(from, to)
			if err != nil {
				return err
			}

			bookings, err := a.repo.ListBookingsByDateRange(context.Background(), dateRange.Start, dateRange.End)
			if err != nil {
				return fmt.Errorf("listing bookings: %w", err)
			}
			byDay := make(map[string][]*teesheet.Booking)
			for _, b := range bookings {
				key := b.Date.Format(dateutil.Layout)
				byDay[key] = append(byDay[key], b)
			}

			out := cmd.OutOrStdout()
			for i, day := range dateRange.Days() {
				if i > 0 {
					fmt.Fprintln(out)
				}
				sheet := teesheet.NewSheet(day, a.config.TeeTimes(), byDay[day.Format(dateutil.Layout)])
				writeSheet(out, sheet, a.config.Course.Name, termWidth(), bookedOnly)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to show (YYYY-MM-DD, today, tomorrow, weekday)")
	cmd.Flags().StringVar(&from, "from", "", "First day of a range (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&to, "to", "", "Last day of a range (YYYY-MM-DD, defaults to --from)")
	cmd.Flags().BoolVar(&bookedOnly, "booked", false, "Only show tee times with players")

	return cmd
}

// writeSheet prints one day. Player columns are padded so the status column
// lines up within width.
func writeSheet(w io.Writer, sheet *teesheet.Sheet, course string, width int, bookedOnly bool) {
	title := sheet.Date.Format("Monday 2 January 2006")
	if course != "" {
		title = course + " - " + title
	}
	fmt.Fprintf(w, "=== %s ===\n", formatHeader(title))

	playersWidth := max(20, min(width, 100)-len("08:00  ")-statusColumnWidth-1)
	for _, tt := range sheet.TeeTimes() {
		bookings := sheet.BookingsAt(tt)
		if bookedOnly && len(bookings) == 0 {
			continue
		}

		cell := formatMuted("-")
		if len(bookings) > 0 {
			groups := make([]string, 0, len(bookings))
			for _, b := range bookings {
				groups = append(groups, formatGroup(b))
			}
			cell = strings.Join(groups, formatMuted(" | "))
		}
		cell = ansi.Truncate(cell, playersWidth, "…")
		pad := strings.Repeat(" ", max(0, playersWidth-ansi.StringWidth(cell)))

		fmt.Fprintf(w, "%s  %s%s %s\n", tt, cell, pad, formatOpen(sheet.OpenPositions(tt)))
	}

	st := sheet.Stats()
	fmt.Fprintln(w, formatMuted(strings.Repeat("-", min(width, 100))))
	fmt.Fprintf(w, "%d bookings, %d players (%d checked in), %d open positions, %d/%d tee times full\n",
		st.Bookings, st.Players, st.CheckedIn, st.OpenPositions, st.FullTeeTimes, st.TeeTimes)
}

func formatGroup(b *teesheet.Booking) string {
	names := make([]string, 0, len(b.Players))
	for _, p := range b.Players {
		names = append(names, formatPlayer(p, playerLabel(p)))
	}
	return formatMuted(fmt.Sprintf("#%d ", b.ID)) + strings.Join(names, ", ")
}

func playerLabel(p teesheet.Player) string {
	switch p.Kind {
	case teesheet.KindGuest:
		return p.Name + " (G)"
	case teesheet.KindWalkUp:
		return p.Name + " (W)"
	default:
		return p.Name
	}
}

func formatOpen(open int) string {
	if open <= 0 {
		return formatWarning("full")
	}
	return formatMuted(fmt.Sprintf("%d open", open))
}
