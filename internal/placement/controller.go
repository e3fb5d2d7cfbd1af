package placement

import "errors"

// Controller errors.
var (
	ErrInactive       = errors.New("placement mode is not active")
	ErrNoSelector     = errors.New("no placement selector configured")
	ErrEmptySelection = errors.New("select at least one player")
)

// Action is the kind of placement in progress.
type Action string

const (
	ActionMove Action = "move"
	ActionCopy Action = "copy"
)

// Valid returns true if the action is move or copy.
func (a Action) Valid() bool {
	return a == ActionMove || a == ActionCopy
}

// Class is the presentation class of a tee time during placement.
type Class string

const (
	ClassNone    Class = ""
	ClassValid   Class = "valid"
	ClassPartial Class = "partial"
	ClassInvalid Class = "invalid"
	ClassSource  Class = "source"
)

// ClassFor maps a validation status to its presentation class.
func ClassFor(s Status) Class {
	switch s {
	case StatusValid:
		return ClassValid
	case StatusPartial:
		return ClassPartial
	case StatusInvalid:
		return ClassInvalid
	case StatusSource:
		return ClassSource
	default:
		return ClassNone
	}
}

// Request describes a confirmed placement handed to the Selector.
// A nil PlayerIDs means every player of the source booking.
type Request struct {
	Action    Action
	Source    Booking
	TeeTime   string
	PlayerIDs []string
}

// All reports whether the request relocates the whole group.
func (r Request) All() bool {
	return r.PlayerIDs == nil
}

// Selector performs the actual relocation once the user confirms a tee time.
type Selector interface {
	PlacementSelect(req Request) error
}

// SelectorFunc adapts a function to the Selector interface.
type SelectorFunc func(req Request) error

// PlacementSelect calls f(req).
func (f SelectorFunc) PlacementSelect(req Request) error {
	return f(req)
}

// OccupancySource reports how many players already hold a tee time.
type OccupancySource interface {
	Occupancy(teeTime string) int
}

// OccupancyFunc adapts a function to the OccupancySource interface.
type OccupancyFunc func(teeTime string) int

// Occupancy calls f(teeTime).
func (f OccupancyFunc) Occupancy(teeTime string) int {
	return f(teeTime)
}

// Controller holds placement mode state. It is owned by a single UI loop and
// is not safe for concurrent use.
type Controller struct {
	selector  Selector
	occupancy OccupancySource

	active bool
	action Action
	source Booking
}

// NewController creates an inactive controller that confirms through selector.
func NewController(selector Selector) *Controller {
	return &Controller{selector: selector}
}

// SetOccupancy installs the occupancy source used by slot queries.
// Callers refresh it whenever the underlying sheet changes.
func (c *Controller) SetOccupancy(src OccupancySource) {
	c.occupancy = src
}

// SetSelector replaces the collaborator that performs relocations.
func (c *Controller) SetSelector(s Selector) {
	c.selector = s
}

// Start activates placement mode. A second Start replaces the previous state.
func (c *Controller) Start(action Action, src Booking) {
	c.active = true
	c.action = action
	c.source = src
}

// Cancel returns to inactive, discarding the source booking.
func (c *Controller) Cancel() {
	c.active = false
	c.action = ""
	c.source = Booking{}
}

// Active returns true while placement mode is on.
func (c *Controller) Active() bool {
	return c.active
}

// Action returns the current action, or "" when inactive.
func (c *Controller) Action() Action {
	return c.action
}

// Source returns the booking being relocated.
func (c *Controller) Source() (Booking, bool) {
	if !c.active {
		return Booking{}, false
	}
	return c.source, true
}

// Confirm hands the placement to the selector and returns to inactive,
// whatever the selector's outcome. The selector's error is returned as is.
func (c *Controller) Confirm(teeTime string, playerIDs []string) error {
	if !c.active {
		return ErrInactive
	}

	req := Request{
		Action:    c.action,
		Source:    c.source,
		TeeTime:   teeTime,
		PlayerIDs: playerIDs,
	}
	c.Cancel()

	if c.selector == nil {
		return ErrNoSelector
	}
	return c.selector.PlacementSelect(req)
}

// SlotValidation validates teeTime against the current source booking.
// Returns the zero Result while inactive.
func (c *Controller) SlotValidation(teeTime string) Result {
	if !c.active {
		return Result{}
	}
	occupancy := 0
	if c.occupancy != nil {
		occupancy = c.occupancy.Occupancy(teeTime)
	}
	return Validate(c.source, teeTime, occupancy)
}

// SlotClass returns the presentation class for teeTime.
func (c *Controller) SlotClass(teeTime string) Class {
	return ClassFor(c.SlotValidation(teeTime).Status)
}
