package core

import (
	"errors"
	"fmt"
	"strings"
)

const (
	Income  Kind = "Income"
	Expense Kind = "Expense"
	Contra  Kind = "Contra"
)

type (
	// Kind is the closed category of a ledger entry. Only Income, Expense
	// and Contra are valid; anything else fails validation.
	Kind string

	Money struct {
		Cents int64
	}

	// Entry is a single posted ledger transaction. Entries are immutable
	// once stored: there is no update or delete path.
	Entry struct {
		ID          int64
		Date        string // canonical YYYY-MM-DD
		Description string
		Amount      Money
		Kind        Kind
	}

	// EntryDraft is an entry before the store has assigned an id.
	// Drafts are only constructed through validating paths.
	EntryDraft struct {
		Date        string // canonical YYYY-MM-DD
		Description string
		Amount      Money
		Kind        Kind
	}

	// RecurringRule is a template that materializes into an Entry on the
	// matching day of each month.
	RecurringRule struct {
		ID          int64
		Description string
		Amount      Money
		Kind        Kind
		Day         int // 1-31
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidKind      = errors.New("invalid entry kind")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidDay       = errors.New("invalid day of month")
)

// ValidationError is the recoverable failure returned for bad user input.
// It always wraps one of the sentinel errors above.
type ValidationError struct {
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("validation: %s: %s", e.Reason, e.Err)
	}
	return "validation: " + e.Reason
}

func (e *ValidationError) Unwrap() error { return e.Err }

func validationErr(reason string, err error) error {
	return &ValidationError{Reason: reason, Err: err}
}

// ParseKind converts user input into a Kind, rejecting anything outside
// the closed set.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.TrimSpace(s)) {
	case Income:
		return Income, nil
	case Expense:
		return Expense, nil
	case Contra:
		return Contra, nil
	default:
		return "", validationErr("kind must be Income, Expense or Contra", ErrInvalidKind)
	}
}

func (k Kind) Validate() error {
	switch k {
	case Income, Expense, Contra:
		return nil
	default:
		return validationErr("kind must be Income, Expense or Contra", ErrInvalidKind)
	}
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return validationErr("amount must be greater than zero", ErrInvalidAmount)
	}
	return nil
}

func (d EntryDraft) Validate() error {
	if !IsCanonicalDate(d.Date) {
		return validationErr("date is not in canonical YYYY-MM-DD form", ErrInvalidDate)
	}
	if len(strings.TrimSpace(d.Description)) == 0 {
		return validationErr("description is required", ErrEmptyDescription)
	}
	if err := d.Amount.Validate(); err != nil {
		return err
	}
	return d.Kind.Validate()
}

func (r RecurringRule) Validate() error {
	if len(strings.TrimSpace(r.Description)) == 0 {
		return validationErr("description is required", ErrEmptyDescription)
	}
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	if err := r.Kind.Validate(); err != nil {
		return err
	}
	if r.Day < 1 || r.Day > 31 {
		return validationErr("day must be between 1 and 31", ErrInvalidDay)
	}
	return nil
}
