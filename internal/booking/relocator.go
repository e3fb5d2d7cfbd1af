package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/javiermolinar/caddie/internal/placement"
	"github.com/javiermolinar/caddie/internal/teesheet"
)

// ErrUnknownAction is returned for a placement request that is neither move nor copy.
var ErrUnknownAction = errors.New("unknown placement action")

// Relocator performs confirmed placements against the repository.
type Relocator struct {
	repo teesheet.Repository
	ctx  context.Context
	last *teesheet.Booking
}

var _ placement.Selector = (*Relocator)(nil)

// NewRelocator creates a relocator. ctx is used by PlacementSelect.
func NewRelocator(ctx context.Context, repo teesheet.Repository) *Relocator {
	return &Relocator{repo: repo, ctx: ctx}
}

// Apply moves or copies the requested players and returns the new booking.
// A request without player ids relocates the whole group.
func (r *Relocator) Apply(ctx context.Context, req placement.Request) (*teesheet.Booking, error) {
	var (
		b   *teesheet.Booking
		err error
	)
	switch req.Action {
	case placement.ActionMove:
		b, err = r.repo.MovePlayers(ctx, req.Source.ID, req.TeeTime, req.PlayerIDs)
	case placement.ActionCopy:
		b, err = r.repo.CopyPlayers(ctx, req.Source.ID, req.TeeTime, req.PlayerIDs)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, req.Action)
	}
	if err != nil {
		return nil, fmt.Errorf("%s booking #%d to %s: %w", req.Action, req.Source.ID, req.TeeTime, err)
	}
	return b, nil
}

// PlacementSelect applies req synchronously. The resulting booking is
// available from Last.
func (r *Relocator) PlacementSelect(req placement.Request) error {
	b, err := r.Apply(r.ctx, req)
	if err != nil {
		return err
	}
	r.last = b
	return nil
}

// Last returns the booking created by the most recent successful placement.
func (r *Relocator) Last() *teesheet.Booking {
	return r.last
}
