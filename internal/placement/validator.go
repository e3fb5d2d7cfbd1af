// Package placement implements the move/copy workflow for relocating a group
// of players from one tee time to another.
package placement

// SlotCapacity is the number of player positions on a tee time.
const SlotCapacity = 4

// Booking is an immutable snapshot of the group being relocated.
// PlayerIDs is index-aligned with PlayerNames and may contain empty entries.
type Booking struct {
	ID            int64
	PlayerNames   []string
	PlayerIDs     []string
	SourceTeeTime string
}

// PlayerCount returns the number of players in the booking.
func (b Booking) PlayerCount() int {
	return len(b.PlayerNames)
}

// Candidates returns the booking players in source order.
func (b Booking) Candidates() []Candidate {
	result := make([]Candidate, 0, len(b.PlayerNames))
	for i, name := range b.PlayerNames {
		id := ""
		if i < len(b.PlayerIDs) {
			id = b.PlayerIDs[i]
		}
		result = append(result, Candidate{ID: id, Name: name})
	}
	return result
}

// Status is the outcome of validating a destination tee time.
type Status int

const (
	StatusNone Status = iota
	StatusValid
	StatusPartial
	StatusInvalid
	StatusSource
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusPartial:
		return "partial"
	case StatusInvalid:
		return "invalid"
	case StatusSource:
		return "source"
	default:
		return "none"
	}
}

// Result is the validation of one destination tee time.
// CanFit is only meaningful when Status is StatusPartial.
type Result struct {
	Status Status
	CanFit int
}

// Validate computes whether the players of src fit on destTeeTime given the
// number of players already there.
func Validate(src Booking, destTeeTime string, occupancy int) Result {
	if destTeeTime == src.SourceTeeTime {
		return Result{Status: StatusSource}
	}

	available := availableCapacity(occupancy)
	needed := src.PlayerCount()

	if needed == 0 {
		return Result{Status: StatusValid}
	}
	if available <= 0 {
		return Result{Status: StatusInvalid}
	}
	if available >= needed {
		return Result{Status: StatusValid}
	}
	return Result{Status: StatusPartial, CanFit: available}
}

// availableCapacity returns the open positions for an occupancy count.
// Out-of-range occupancy leaves no room.
func availableCapacity(occupancy int) int {
	if occupancy < 0 || occupancy > SlotCapacity {
		return 0
	}
	return SlotCapacity - occupancy
}
