package core

import (
	"errors"
	"testing"
)

func TestParseKind(t *testing.T) {
	for _, s := range []string{"Income", "Expense", "Contra", " Income "} {
		if _, err := ParseKind(s); err != nil {
			t.Errorf("ParseKind(%q) unexpected error: %v", s, err)
		}
	}
	for _, s := range []string{"", "income", "Transfer", "EXPENSE"} {
		if _, err := ParseKind(s); !errors.Is(err, ErrInvalidKind) {
			t.Errorf("ParseKind(%q) expected ErrInvalidKind, got %v", s, err)
		}
	}
}

func TestEntryDraftValidate(t *testing.T) {
	valid := EntryDraft{
		Date:        "2024-01-05",
		Description: "Salary",
		Amount:      Money{Cents: 5000000},
		Kind:        Income,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid draft rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*EntryDraft)
		want   error
	}{
		{"empty description", func(d *EntryDraft) { d.Description = "   " }, ErrEmptyDescription},
		{"zero amount", func(d *EntryDraft) { d.Amount = Money{} }, ErrInvalidAmount},
		{"negative amount", func(d *EntryDraft) { d.Amount = Money{Cents: -100} }, ErrInvalidAmount},
		{"bad kind", func(d *EntryDraft) { d.Kind = "Transfer" }, ErrInvalidKind},
		{"non-canonical date", func(d *EntryDraft) { d.Date = "05/01/2024" }, ErrInvalidDate},
		{"impossible date", func(d *EntryDraft) { d.Date = "2024-02-30" }, ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			err := d.Validate()
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("Validate() error %v is not a ValidationError", err)
			}
		})
	}
}

func TestRecurringRuleValidate(t *testing.T) {
	valid := RecurringRule{
		Description: "Rent",
		Amount:      Money{Cents: 1200000},
		Kind:        Expense,
		Day:         1,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid rule rejected: %v", err)
	}
	for _, day := range []int{0, -1, 32} {
		r := valid
		r.Day = day
		if err := r.Validate(); !errors.Is(err, ErrInvalidDay) {
			t.Errorf("day %d expected ErrInvalidDay, got %v", day, err)
		}
	}
}
