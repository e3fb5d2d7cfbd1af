package assistant

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/javiermolinar/caddie/internal/dateutil"
	"github.com/javiermolinar/caddie/internal/llm"
	"github.com/javiermolinar/caddie/internal/placement"
	"github.com/javiermolinar/caddie/internal/teesheet"
)

// ValidationError is a single problem found in a drafted booking.
type ValidationError struct {
	Field   string // "date", "tee_time", "players" or "players[i]"
	Message string
}

// String returns a formatted error message.
func (e ValidationError) String() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult contains the result of validating a draft.
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// FormatErrors returns the errors as feedback for the model.
func (r ValidationResult) FormatErrors() string {
	if len(r.Errors) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Your response had these errors:\n")
	for _, e := range r.Errors {
		fmt.Fprintf(&sb, "- %s\n", e.String())
	}
	sb.WriteString("\nPlease correct these issues and respond again with valid JSON.")
	return sb.String()
}

func (r *ValidationResult) add(field, format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Validator checks a drafted booking against the tee sheet.
type Validator struct {
	now      time.Time
	teeTimes []string
}

// NewValidator creates a validator for the configured tee times.
func NewValidator(now time.Time, teeTimes []string) *Validator {
	return &Validator{now: now, teeTimes: teeTimes}
}

// Validate checks the draft. sheet is the sheet of the drafted date and may
// be nil when the date could not be parsed; capacity is then not checked.
func (v *Validator) Validate(resp *llm.DraftResponse, sheet *teesheet.Sheet) ValidationResult {
	result := ValidationResult{Valid: true}
	if resp == nil {
		result.add("response", "empty response")
		return result
	}

	date, err := dateutil.ParseDate(resp.Date)
	switch {
	case err != nil:
		result.add("date", "'%s' is invalid (must be YYYY-MM-DD format)", resp.Date)
	case dateutil.NotPast(date, v.now) != nil:
		result.add("date", "%s is in the past (today is %s)", resp.Date, v.now.Format(dateutil.Layout))
	}

	teeTimeOK := slices.Contains(v.teeTimes, resp.TeeTime)
	if !teeTimeOK {
		result.add("tee_time", "'%s' is not a tee time on the sheet", resp.TeeTime)
	}

	switch n := len(resp.Players); {
	case n == 0:
		result.add("players", "at least one player is required")
	case n > placement.SlotCapacity:
		result.add("players", "%d players requested, a tee time holds at most %d", n, placement.SlotCapacity)
	}

	names := make([]string, 0, len(resp.Players))
	for i, p := range resp.Players {
		field := fmt.Sprintf("players[%d]", i)
		if strings.TrimSpace(p.Name) == "" {
			result.add(field, "name is required")
		}
		if _, err := teesheet.ParseKind(p.Kind); err != nil {
			result.add(field, "kind '%s' is invalid (must be member, guest or walkup)", p.Kind)
		}
		names = append(names, p.Name)
	}

	if sheet != nil && teeTimeOK && len(names) > 0 && len(names) <= placement.SlotCapacity {
		group := placement.Booking{PlayerNames: names}
		check := placement.Validate(group, resp.TeeTime, sheet.Occupancy(resp.TeeTime))
		switch check.Status {
		case placement.StatusPartial:
			result.add("tee_time", "%s has only %d open positions for %d players", resp.TeeTime, check.CanFit, len(names))
		case placement.StatusInvalid:
			result.add("tee_time", "%s is full", resp.TeeTime)
		}
	}

	return result
}
