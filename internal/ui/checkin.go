package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) checkinCmd() *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "checkin [booking-id] [player]",
		Short: "Check a player in at the starter",
		Long: `Mark a player of a booking as arrived.

The player is given by id, or by name when unambiguous.`,
		Example: `  caddie checkin 12 M100
  caddie checkin 12 Ben --undo`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			id, err := parseBookingID(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()
			b, err := a.repo.GetBooking(ctx, id)
			if err != nil {
				return err
			}
			p, err := findPlayer(b, args[1])
			if err != nil {
				return err
			}
			if err := a.repo.SetCheckedIn(ctx, id, p.Key(), !undo); err != nil {
				return fmt.Errorf("checking in: %w", err)
			}

			if undo {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is no longer checked in (#%d %s)\n", p.Name, b.ID, b.TeeTime)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Checked in %s (#%d %s)\n", p.Name, b.ID, b.TeeTime)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Clear the check-in instead")
	return cmd
}
