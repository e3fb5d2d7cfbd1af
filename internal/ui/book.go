package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/caddie/internal/booking"
	"github.com/javiermolinar/caddie/internal/dateutil"
)

func (a *App) bookCmd() *cobra.Command {
	var (
		date    string
		teeTime string
		players string
		note    string
	)

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book a group on a tee time",
		Long: `Book up to four players on one tee time.

Players are comma separated, each as "Name", "Name:kind" or
"Name:kind:id" where kind is member, guest or walkup. Walk-ups
without an id get a generated one.`,
		Example: `  caddie book --time 08:16 --players "Ana:member:M100, Ben:guest"
  caddie book --date tomorrow --time 09:04 --players "Lee:walkup" --note "rental clubs"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			day, err := dateutil.ParseDay(date, time.Now())
			if err != nil {
				return err
			}

			service := booking.NewService(a.repo, a.config.TeeTimes())
			b, err := service.Book(context.Background(), booking.Input{
				Date:    day.Format(dateutil.Layout),
				TeeTime: teeTime,
				Players: booking.ParsePlayers(players),
				Note:    note,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Booked #%d: %s on %s at %s\n",
				b.ID, formatGroup(b), b.Date.Format(dateutil.Layout), b.TeeTime)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD, today, tomorrow, weekday; default today)")
	cmd.Flags().StringVar(&teeTime, "time", "", "Tee time (HH:MM, required)")
	cmd.Flags().StringVar(&players, "players", "", "Players, comma separated (required)")
	cmd.Flags().StringVar(&note, "note", "", "Free text note")

	_ = cmd.MarkFlagRequired("time")
	_ = cmd.MarkFlagRequired("players")

	return cmd
}
