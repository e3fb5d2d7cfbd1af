package ui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/caddie/internal/booking"
	"github.com/javiermolinar/caddie/internal/dateutil"
	"github.com/javiermolinar/caddie/internal/placement"
	"github.com/javiermolinar/caddie/internal/teesheet"
)

// placementCmd builds the move or copy command. Both run the same placement
// session the TUI runs, with --players standing in for the resolver.
func (a *App) placementCmd(action placement.Action) *cobra.Command {
	var players []string

	verb := string(action)
	cmd := &cobra.Command{
		Use:   verb + " [booking-id] [tee-time]",
		Short: capitalizeFirst(verb) + " a booked group to another tee time",
		Long: fmt.Sprintf(`%s the players of a booking to another tee time of the same day.

When the destination only has room for part of the group, choose who
goes with --players, using player ids (or names for players without one).`,
			capitalizeFirst(verb)),
		Example: fmt.Sprintf(`  caddie %[1]s 12 09:20
  caddie %[1]s 12 09:30 --players M100,M101`, verb),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			id, err := parseBookingID(args[0])
			if err != nil {
				return err
			}
			b, err := a.runPlacement(context.Background(), action, id, args[1], players)
			if err != nil {
				return err
			}

			past := "Moved"
			if action == placement.ActionCopy {
				past = "Copied"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s to %s as booking #%d\n",
				past, formatGroup(b), b.TeeTime, b.ID)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&players, "players", nil, "Players to relocate by id or unique name (comma separated, default all)")
	return cmd
}

// runPlacement loads the booking's day and drives a placement session to
// teeTime. It returns the booking created at the destination.
func (a *App) runPlacement(ctx context.Context, action placement.Action, id int64, teeTime string, keys []string) (*teesheet.Booking, error) {
	src, err := a.repo.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if src.IsCancelled() {
		return nil, fmt.Errorf("booking #%d: %w", id, teesheet.ErrBookingClosed)
	}
	if err := dateutil.NotPast(src.Date, time.Now()); err != nil {
		return nil, fmt.Errorf("booking #%d: %w", id, err)
	}

	bookings, err := a.repo.ListBookingsByDate(ctx, src.Date)
	if err != nil {
		return nil, fmt.Errorf("loading tee sheet: %w", err)
	}
	sheet := teesheet.NewSheet(src.Date, a.config.TeeTimes(), bookings)
	if !sheet.HasTeeTime(teeTime) {
		return nil, fmt.Errorf("%s is not a tee time on %s", teeTime, src.Date.Format(dateutil.Layout))
	}

	relocator := booking.NewRelocator(ctx, a.repo)
	bindings := placement.NewBindings(placement.NewController(relocator))
	ctrl := bindings.Controller()
	ctrl.SetOccupancy(sheet)
	ctrl.Start(action, src.Snapshot())
	defer bindings.Cancel()

	if len(keys) > 0 {
		err = confirmPlayers(bindings, src, teeTime, keys)
	} else {
		err = confirmWholeGroup(bindings, src, teeTime)
	}
	if err != nil {
		return nil, err
	}
	return relocator.Last(), nil
}

func confirmWholeGroup(bindings *placement.Bindings, src *teesheet.Booking, teeTime string) error {
	outcome, err := bindings.Click(teeTime)
	if err != nil {
		return err
	}
	switch outcome {
	case placement.ClickConfirmed:
		return nil
	case placement.ClickResolverOpened:
		sel, _, _ := bindings.Resolver()
		return fmt.Errorf("only %d of %d players fit at %s; choose with --players from: %s",
			sel.Capacity(), src.PlayerCount(), teeTime, candidateList(sel.Candidates()))
	default:
		return ignoredError(bindings.Controller(), teeTime)
	}
}

// confirmPlayers relocates the players named by refs. On a partial tee time
// the selection goes through the resolver so its capacity is enforced.
func confirmPlayers(bindings *placement.Bindings, src *teesheet.Booking, teeTime string, refs []string) error {
	keys, err := playerKeys(src, refs)
	if err != nil {
		return err
	}

	ctrl := bindings.Controller()
	result := ctrl.SlotValidation(teeTime)
	switch result.Status {
	case placement.StatusValid:
		return ctrl.Confirm(teeTime, keys)
	case placement.StatusPartial:
		if len(keys) > result.CanFit {
			return fmt.Errorf("only %d players fit at %s, %d given", result.CanFit, teeTime, len(keys))
		}
		if _, err := bindings.Click(teeTime); err != nil {
			return err
		}
		sel, _, _ := bindings.Resolver()
		for _, k := range sel.IDs() {
			sel.Toggle(k)
		}
		for _, k := range keys {
			sel.Toggle(k)
		}
		return bindings.ConfirmSelection()
	default:
		return ignoredError(ctrl, teeTime)
	}
}

func ignoredError(ctrl *placement.Controller, teeTime string) error {
	if ctrl.SlotValidation(teeTime).Status == placement.StatusSource {
		return errors.New("booking is already at " + teeTime)
	}
	return fmt.Errorf("%s: %w", teeTime, teesheet.ErrSlotFull)
}

// playerKeys resolves ids or names to player keys, dropping repeats.
func playerKeys(b *teesheet.Booking, refs []string) ([]string, error) {
	keys := make([]string, 0, len(refs))
	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}
		p, err := findPlayer(b, ref)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(keys, p.Key()) {
			keys = append(keys, p.Key())
		}
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("booking #%d: %w", b.ID, teesheet.ErrNoPlayers)
	}
	return keys, nil
}

func candidateList(candidates []placement.Candidate) string {
	parts := make([]string, len(candidates))
	for i, c := range candidates {
		if c.Name != "" && c.Name != c.Key() {
			parts[i] = fmt.Sprintf("%s (%s)", c.Key(), c.Name)
		} else {
			parts[i] = c.Key()
		}
	}
	return strings.Join(parts, ", ")
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
