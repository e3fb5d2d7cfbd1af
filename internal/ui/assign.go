package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) assignCmd() *cobra.Command {
	var (
		cart   string
		caddie string
	)

	cmd := &cobra.Command{
		Use:   "assign [booking-id] [player]",
		Short: "Assign a cart or caddie to a player",
		Long: `Assign a cart number and/or a caddie to a player of a booking.

Pass an empty value to clear an assignment.`,
		Example: `  caddie assign 12 M100 --cart 7
  caddie assign 12 Ben --caddie "Sam" --cart ""`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cartSet := cmd.Flags().Changed("cart")
			caddieSet := cmd.Flags().Changed("caddie")
			if !cartSet && !caddieSet {
				return errors.New("nothing to assign, use --cart or --caddie")
			}
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

			out := cmd.OutOrStdout()
			if cartSet {
				if err := a.repo.AssignCart(ctx, id, p.Key(), cart); err != nil {
					return fmt.Errorf("assigning cart: %w", err)
				}
				fmt.Fprintf(out, "%s: cart %s\n", p.Name, orNone(cart))
			}
			if caddieSet {
				if err := a.repo.AssignCaddie(ctx, id, p.Key(), caddie); err != nil {
					return fmt.Errorf("assigning caddie: %w", err)
				}
				fmt.Fprintf(out, "%s: caddie %s\n", p.Name, orNone(caddie))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cart, "cart", "", "Cart number")
	cmd.Flags().StringVar(&caddie, "caddie", "", "Caddie name")
	return cmd
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
