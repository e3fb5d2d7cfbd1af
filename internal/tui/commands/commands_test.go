package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/javiermolinar/caddie/internal/assistant"
	"github.com/javiermolinar/caddie/internal/booking"
	"github.com/javiermolinar/caddie/internal/placement"
	"github.com/javiermolinar/caddie/internal/teesheet"
)

type fakeRepo struct {
	byDate func(date time.Time) ([]*teesheet.Booking, error)
	move   func(id int64, teeTime string, keys []string) (*teesheet.Booking, error)
}

func (f fakeRepo) CreateBooking(ctx context.Context, b *teesheet.Booking) error {
	return errors.New("not implemented")
}

func (f fakeRepo) GetBooking(ctx context.Context, id int64) (*teesheet.Booking, error) {
	return nil, errors.New("not implemented")
}

func (f fakeRepo) ListBookingsByDate(ctx context.Context, date time.Time) ([]*teesheet.Booking, error) {
	if f.byDate == nil {
		return nil, errors.New("not implemented")
	}
	return f.byDate(date)
}

func (f fakeRepo) ListBookingsByDateRange(ctx context.Context, start, end time.Time) ([]*teesheet.Booking, error) {
	return nil, errors.New("not implemented")
}

func (f fakeRepo) CancelBooking(ctx context.Context, id int64) error {
	return errors.New("not implemented")
}

func (f fakeRepo) MovePlayers(ctx context.Context, id int64, teeTime string, keys []string) (*teesheet.Booking, error) {
	if f.move == nil {
		return nil, errors.New("not implemented")
	}
	return f.move(id, teeTime, keys)
}

func (f fakeRepo) CopyPlayers(ctx context.Context, id int64, teeTime string, keys []string) (*teesheet.Booking, error) {
	return nil, errors.New("not implemented")
}

func (f fakeRepo) SetCheckedIn(ctx context.Context, id int64, key string, checkedIn bool) error {
	return errors.New("not implemented")
}

func (f fakeRepo) AssignCart(ctx context.Context, id int64, key, cart string) error {
	return errors.New("not implemented")
}

func (f fakeRepo) AssignCaddie(ctx context.Context, id int64, key, caddie string) error {
	return errors.New("not implemented")
}

func (f fakeRepo) Close() error {
	return nil
}

func TestLoadSheetReturnsSheetLoadedMsg(t *testing.T) {
	day := time.Date(2025, 6, 14, 0, 0, 0, 0, time.Local)
	repo := fakeRepo{
		byDate: func(date time.Time) ([]*teesheet.Booking, error) {
			return []*teesheet.Booking{{
				ID:      1,
				Date:    date,
				TeeTime: "08:08",
				Status:  teesheet.StatusBooked,
				Players: []teesheet.Player{{Name: "Ana", Kind: teesheet.KindMember}},
			}}, nil
		},
	}

	msg := LoadSheet(repo, day, []string{"08:00", "08:08"})()
	loaded, ok := msg.(SheetLoadedMsg)
	if !ok {
		t.Fatalf("msg type = %T, want SheetLoadedMsg", msg)
	}
	if got := loaded.Sheet.Occupancy("08:08"); got != 1 {
		t.Errorf("Occupancy(08:08) = %d, want 1", got)
	}
	if got := len(loaded.Sheet.TeeTimes()); got != 2 {
		t.Errorf("tee times = %d, want 2", got)
	}
}

func TestLoadSheetError(t *testing.T) {
	repo := fakeRepo{
		byDate: func(time.Time) ([]*teesheet.Booking, error) {
			return nil, errors.New("disk on fire")
		},
	}

	msg := LoadSheet(repo, time.Now(), nil)()
	if _, ok := msg.(ErrMsg); !ok {
		t.Fatalf("msg type = %T, want ErrMsg", msg)
	}
}

func TestRelocateCarriesSequence(t *testing.T) {
	var gotKeys []string
	repo := fakeRepo{
		move: func(id int64, teeTime string, keys []string) (*teesheet.Booking, error) {
			gotKeys = keys
			return &teesheet.Booking{ID: 9, TeeTime: teeTime}, nil
		},
	}
	req := placement.Request{
		Action:    placement.ActionMove,
		Source:    placement.Booking{ID: 3, SourceTeeTime: "08:00"},
		TeeTime:   "08:16",
		PlayerIDs: []string{"m1"},
	}

	msg := Relocate(booking.NewRelocator(context.Background(), repo), 7, req)()
	got, ok := msg.(RelocatedMsg)
	if !ok {
		t.Fatalf("msg type = %T, want RelocatedMsg", msg)
	}
	if got.Seq != 7 {
		t.Errorf("Seq = %d, want 7", got.Seq)
	}
	if got.Err != nil {
		t.Fatalf("Err = %v", got.Err)
	}
	if got.Booking == nil || got.Booking.ID != 9 {
		t.Errorf("Booking = %+v, want id 9", got.Booking)
	}
	if len(gotKeys) != 1 || gotKeys[0] != "m1" {
		t.Errorf("keys = %v, want [m1]", gotKeys)
	}
}

func TestRelocateError(t *testing.T) {
	repo := fakeRepo{
		move: func(int64, string, []string) (*teesheet.Booking, error) {
			return nil, teesheet.ErrSlotFull
		},
	}
	req := placement.Request{Action: placement.ActionMove, TeeTime: "08:16"}

	msg := Relocate(booking.NewRelocator(context.Background(), repo), 1, req)().(RelocatedMsg)
	if !errors.Is(msg.Err, teesheet.ErrSlotFull) {
		t.Errorf("Err = %v, want ErrSlotFull", msg.Err)
	}
}

func TestRefineDraftWithoutSession(t *testing.T) {
	msg := RefineDraft(nil, "make it 9am")()
	errMsg, ok := msg.(ErrMsg)
	if !ok {
		t.Fatalf("msg type = %T, want ErrMsg", msg)
	}
	if !errors.Is(errMsg.Err, assistant.ErrNoSession) {
		t.Errorf("Err = %v, want ErrNoSession", errMsg.Err)
	}
}

func TestSaveDraftWithoutDraft(t *testing.T) {
	if _, ok := SaveDraft(nil, nil)().(ErrMsg); !ok {
		t.Fatal("expected ErrMsg")
	}
}
