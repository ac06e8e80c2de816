// Package backend selects and constructs the persistence backend behind
// the ledger engine. Two interchangeable shapes exist: the embedded
// SQLite store and the flat CSV file.
package backend

import (
	"context"

	"daybook/internal/core"
)

// Store is everything the ledger engine needs from persistence. Both
// backends satisfy it; the engine never learns which one it got.
type Store interface {
	// AppendEntry validates, persists and returns the stored entry.
	AppendEntry(ctx context.Context, draft core.EntryDraft) (core.Entry, error)
	// ListEntries returns all entries, date descending, ties by most
	// recent insertion first.
	ListEntries(ctx context.Context) ([]core.Entry, error)
	// ExistsMatching reports an exact (date, description, amount) match.
	ExistsMatching(ctx context.Context, date, description string, amount core.Money) (bool, error)
	// ListRules returns the recurring rule templates, read-only.
	ListRules(ctx context.Context) ([]core.RecurringRule, error)
	Close() error
}

// Type identifies a backend shape.
type Type string

const (
	SQLiteBackend Type = "sqlite"
	CSVBackend    Type = "csv"
)

func (t Type) String() string { return string(t) }

// IsValid returns true if the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, CSVBackend:
		return true
	default:
		return false
	}
}
