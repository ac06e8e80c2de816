// Package csvfile implements the flat-file ledger backend: one text file
// with a fixed header row, one entry per line. It keeps field-level
// parity with prior daybook exports so existing files load unchanged.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"daybook/internal/core"
)

// Header is the exact first line of the ledger file. A file created by
// this store or by prior versions of the application always starts with
// it.
const Header = "Date,Description,Amount,Type"

var headerFields = []string{"Date", "Description", "Amount", "Type"}

// Store is the flat-file entry store. Entries live in memory after load;
// every append rewrites nothing, it only adds one line and flushes.
// Ids are positional and therefore process-transient, which is fine:
// they are opaque and monotonic in insertion order.
type Store struct {
	ledgerPath string
	rulesPath  string

	mu      sync.Mutex
	entries []core.Entry
	nextID  int64
}

// Open loads the ledger file at ledgerPath, creating it with the header
// row if missing. rulesPath names the read-only recurring rules file and
// may point at a file that does not exist.
func Open(ledgerPath, rulesPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(ledgerPath), 0755); err != nil {
		return nil, fmt.Errorf("create ledger directory: %w", err)
	}

	s := &Store{ledgerPath: ledgerPath, rulesPath: rulesPath, nextID: 1}

	if _, err := os.Stat(ledgerPath); os.IsNotExist(err) {
		if err := os.WriteFile(ledgerPath, []byte(Header+"\n"), 0644); err != nil {
			return nil, fmt.Errorf("create ledger file: %w", err)
		}
		return s, nil
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	f, err := os.Open(s.ledgerPath)
	if err != nil {
		return fmt.Errorf("open ledger file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("read ledger file: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("ledger file %s is missing its header row", s.ledgerPath)
	}
	if !equalFields(records[0], headerFields) {
		return fmt.Errorf("ledger file %s has unexpected header %v", s.ledgerPath, records[0])
	}

	for i, rec := range records[1:] {
		entry, err := parseEntryRecord(rec, s.nextID)
		if err != nil {
			return fmt.Errorf("ledger file %s line %d: %w", s.ledgerPath, i+2, err)
		}
		s.entries = append(s.entries, entry)
		s.nextID++
	}
	return nil
}

func parseEntryRecord(rec []string, id int64) (core.Entry, error) {
	if len(rec) != 4 {
		return core.Entry{}, fmt.Errorf("expected 4 fields, got %d", len(rec))
	}
	cents, err := core.ParseDecimalToCents(rec[2])
	if err != nil {
		return core.Entry{}, fmt.Errorf("amount %q: %w", rec[2], err)
	}
	kind, err := core.ParseKind(rec[3])
	if err != nil {
		return core.Entry{}, fmt.Errorf("type %q: %w", rec[3], err)
	}
	if !core.IsCanonicalDate(rec[0]) {
		return core.Entry{}, fmt.Errorf("date %q is not canonical", rec[0])
	}
	return core.Entry{
		ID:          id,
		Date:        rec[0],
		Description: rec[1],
		Amount:      core.Money{Cents: cents},
		Kind:        kind,
	}, nil
}

// AppendEntry validates the draft, writes one line to the ledger file and
// commits it before returning.
func (s *Store) AppendEntry(ctx context.Context, draft core.EntryDraft) (core.Entry, error) {
	if err := draft.Validate(); err != nil {
		return core.Entry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.ledgerPath, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return core.Entry{}, fmt.Errorf("open ledger file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	record := []string{draft.Date, draft.Description, draft.Amount.Format(), string(draft.Kind)}
	if err := w.Write(record); err != nil {
		return core.Entry{}, fmt.Errorf("write entry: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return core.Entry{}, fmt.Errorf("flush entry: %w", err)
	}
	if err := f.Sync(); err != nil {
		return core.Entry{}, fmt.Errorf("sync ledger file: %w", err)
	}

	entry := core.Entry{
		ID:          s.nextID,
		Date:        draft.Date,
		Description: draft.Description,
		Amount:      draft.Amount,
		Kind:        draft.Kind,
	}
	s.entries = append(s.entries, entry)
	s.nextID++

	slog.InfoContext(ctx, "Entry saved",
		"id", entry.ID,
		"date", entry.Date,
		"description", entry.Description,
		"amount_cents", entry.Amount.Cents,
		"kind", entry.Kind)

	return entry, nil
}

// ListEntries returns the full entry set ordered by date descending, ties
// broken by insertion order, most recent first.
func (s *Store) ListEntries(ctx context.Context) ([]core.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.Entry, len(s.entries))
	copy(out, s.entries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// ExistsMatching reports whether an entry with exactly this date,
// description and amount is already stored.
func (s *Store) ExistsMatching(ctx context.Context, date, description string, amount core.Money) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.Date == date && e.Description == description && e.Amount.Cents == amount.Cents {
			return true, nil
		}
	}
	return false, nil
}

// ListRules reads the recurring rules file. A missing file simply means
// no rules; a present but malformed file is an error.
func (s *Store) ListRules(ctx context.Context) ([]core.RecurringRule, error) {
	f, err := os.Open(s.rulesPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open rules file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	if !equalFields(records[0], []string{"Description", "Amount", "Type", "Day"}) {
		return nil, fmt.Errorf("rules file %s has unexpected header %v", s.rulesPath, records[0])
	}

	var rules []core.RecurringRule
	for i, rec := range records[1:] {
		if len(rec) != 4 {
			return nil, fmt.Errorf("rules file %s line %d: expected 4 fields, got %d", s.rulesPath, i+2, len(rec))
		}
		cents, err := core.ParseDecimalToCents(rec[1])
		if err != nil {
			return nil, fmt.Errorf("rules file %s line %d: amount %q: %w", s.rulesPath, i+2, rec[1], err)
		}
		kind, err := core.ParseKind(rec[2])
		if err != nil {
			return nil, fmt.Errorf("rules file %s line %d: type %q: %w", s.rulesPath, i+2, rec[2], err)
		}
		day, err := strconv.Atoi(rec[3])
		if err != nil {
			return nil, fmt.Errorf("rules file %s line %d: day %q: %w", s.rulesPath, i+2, rec[3], err)
		}
		rule := core.RecurringRule{
			ID:          int64(i + 1),
			Description: rec[0],
			Amount:      core.Money{Cents: cents},
			Kind:        kind,
			Day:         day,
		}
		if err := rule.Validate(); err != nil {
			return nil, fmt.Errorf("rules file %s line %d: %w", s.rulesPath, i+2, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func (s *Store) Close() error { return nil }

func equalFields(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
