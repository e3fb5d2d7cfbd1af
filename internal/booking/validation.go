package booking

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/javiermolinar/caddie/internal/teesheet"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	tags := map[string]validator.Func{
		"tee_time":    validateTeeTime,
		"player_kind": validatePlayerKind,
	}
	for tag, fn := range tags {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("registering %s validation: %v", tag, err))
		}
	}
}

func validateTeeTime(fl validator.FieldLevel) bool {
	return teesheet.ValidateTeeTime(fl.Field().String()) == nil
}

func validatePlayerKind(fl validator.FieldLevel) bool {
	_, err := teesheet.ParseKind(fl.Field().String())
	return err == nil
}

// ValidationError lists every field problem of an input.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

// Unwrap lets callers match ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func validateInput(in Input) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, formatFieldError(fe))
	}
	return &ValidationError{Problems: problems}
}

func formatFieldError(fe validator.FieldError) string {
	field := fieldName(fe.Namespace())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if fe.Kind().String() == "slice" {
			return fmt.Sprintf("%s needs at least %s entries", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		if fe.Kind().String() == "slice" {
			return fmt.Sprintf("%s allows at most %s entries", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must be in YYYY-MM-DD format", field)
	case "tee_time":
		return fmt.Sprintf("%s must be in HH:MM format", field)
	case "player_kind":
		return fmt.Sprintf("%s must be member, guest or walkup", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// fieldName turns "Input.Players[1].Name" into "players[1].name".
func fieldName(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	var sb strings.Builder
	upperRun := false
	for i, r := range ns {
		if unicode.IsUpper(r) {
			if i > 0 && !upperRun && ns[i-1] != '.' && ns[i-1] != '[' {
				sb.WriteByte('_')
			}
			sb.WriteRune(unicode.ToLower(r))
			upperRun = true
			continue
		}
		upperRun = false
		sb.WriteRune(r)
	}
	return sb.String()
}

// sanitize trims whitespace and drops control characters.
func sanitize(s string) string {
	s = strings.TrimSpace(s)
	var sb strings.Builder
	for _, r := range s {
		if unicode.IsPrint(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
