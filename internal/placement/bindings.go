package placement

// Clickable reports whether a tee time with status s accepts a click.
func Clickable(s Status) bool {
	return s == StatusValid || s == StatusPartial
}

// ClickOutcome describes what a click on a tee time did.
type ClickOutcome int

const (
	ClickIgnored ClickOutcome = iota
	ClickConfirmed
	ClickResolverOpened
)

// Bindings wires grid clicks to the controller and the partial-fit resolver.
type Bindings struct {
	ctrl *Controller

	resolver        *Selection
	resolverTeeTime string
}

// NewBindings creates bindings over ctrl.
func NewBindings(ctrl *Controller) *Bindings {
	return &Bindings{ctrl: ctrl}
}

// Controller returns the underlying controller.
func (b *Bindings) Controller() *Controller {
	return b.ctrl
}

// Click handles a click on teeTime. A valid tee time confirms the whole group
// immediately; a partial one opens the resolver; anything else is ignored.
// The returned error comes from the selector on confirmation.
func (b *Bindings) Click(teeTime string) (ClickOutcome, error) {
	result := b.ctrl.SlotValidation(teeTime)
	switch result.Status {
	case StatusValid:
		b.DismissResolver()
		return ClickConfirmed, b.ctrl.Confirm(teeTime, nil)
	case StatusPartial:
		src, _ := b.ctrl.Source()
		b.resolver = NewSelection(src.Candidates(), result.CanFit)
		b.resolverTeeTime = teeTime
		return ClickResolverOpened, nil
	default:
		return ClickIgnored, nil
	}
}

// Resolver returns the open selection and its tee time.
func (b *Bindings) Resolver() (*Selection, string, bool) {
	if b.resolver == nil {
		return nil, "", false
	}
	return b.resolver, b.resolverTeeTime, true
}

// Toggle flips key in the open resolver. It is a no-op without one.
func (b *Bindings) Toggle(key string) {
	if b.resolver != nil {
		b.resolver.Toggle(key)
	}
}

// ConfirmSelection relocates the selected players to the resolver's tee time.
// An empty selection is refused and leaves the resolver open.
func (b *Bindings) ConfirmSelection() error {
	if b.resolver == nil {
		return ErrInactive
	}
	if !b.resolver.CanConfirm() {
		return ErrEmptySelection
	}
	ids := b.resolver.IDs()
	teeTime := b.resolverTeeTime
	b.DismissResolver()
	return b.ctrl.Confirm(teeTime, ids)
}

// DismissResolver closes the resolver without confirming.
// Placement mode stays active.
func (b *Bindings) DismissResolver() {
	b.resolver = nil
	b.resolverTeeTime = ""
}

// Cancel closes the resolver and leaves placement mode.
func (b *Bindings) Cancel() {
	b.DismissResolver()
	b.ctrl.Cancel()
}
