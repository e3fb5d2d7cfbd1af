package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/caddie/internal/teesheet"
)

func (a *App) cancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel [booking-id]",
		Short: "Cancel a booking",
		Long: `Cancel a booking by its ID, freeing its positions.

Example:
  caddie cancel 42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			id, err := parseBookingID(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()
			if err := a.repo.CancelBooking(ctx, id); err != nil {
				return fmt.Errorf("cancelling booking: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Cancelled booking #%d\n", id)
			return nil
		},
	}
}

func parseBookingID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid booking ID %q", s)
	}
	return id, nil
}

// findPlayer resolves a player of b by key (id, or name without id),
// falling back to a case-insensitive name match.
func findPlayer(b *teesheet.Booking, ref string) (teesheet.Player, error) {
	if i := b.PlayerIndex(ref); i >= 0 {
		return b.Players[i], nil
	}
	var match []teesheet.Player
	for _, p := range b.Players {
		if strings.EqualFold(p.Name, ref) {
			match = append(match, p)
		}
	}
	switch len(match) {
	case 1:
		return match[0], nil
	case 0:
		return teesheet.Player{}, fmt.Errorf("booking #%d: %w: %s", b.ID, teesheet.ErrPlayerNotFound, ref)
	default:
		return teesheet.Player{}, fmt.Errorf("booking #%d has %d players named %q, use the player id", b.ID, len(match), ref)
	}
}
