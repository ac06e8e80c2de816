// Package services holds the ledger engine: the composition of store,
// settings and recurring materialization that the presentation layer
// talks to. The presentation layer never touches a store directly.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"daybook/internal/backend"
	"daybook/internal/config"
	"daybook/internal/core"
)

// Ledger is the engine facade. Every call is synchronous request/response;
// there is no pending state visible to callers.
type Ledger struct {
	store    backend.Store
	settings config.Settings

	mu   sync.RWMutex
	view []core.Entry // last-loaded entries, drives UI refresh only
}

func NewLedger(store backend.Store, settings config.Settings) *Ledger {
	return &Ledger{store: store, settings: settings}
}

// Settings returns the read-only settings the engine was built with.
func (l *Ledger) Settings() config.Settings { return l.settings }

// AddEntry parses and validates raw user input, then appends the entry.
// Date input is parsed under the configured date format and normalized to
// canonical form before storage. Bad input returns a
// core.ValidationError and leaves the store untouched.
func (l *Ledger) AddEntry(ctx context.Context, date, description, amount, kind string) (core.Entry, error) {
	canonical, err := core.ParseDate(date, l.settings.DateFormat)
	if err != nil {
		return core.Entry{}, err
	}
	cents, err := core.ParseDecimalToCents(amount)
	if err != nil {
		return core.Entry{}, err
	}
	k, err := core.ParseKind(kind)
	if err != nil {
		return core.Entry{}, err
	}

	// Stored trimmed, not merely validated trimmed: padding would break
	// the materializer's (date, description, amount) duplicate match.
	entry, err := l.store.AppendEntry(ctx, core.EntryDraft{
		Date:        canonical,
		Description: strings.TrimSpace(description),
		Amount:      core.Money{Cents: cents},
		Kind:        k,
	})
	if err != nil {
		return core.Entry{}, err
	}

	// The append committed; a failed view refresh must not look like a
	// failed append to the caller.
	if _, err := l.ListEntries(ctx); err != nil {
		slog.WarnContext(ctx, "Failed to refresh entry view after append", "error", err)
	}
	return entry, nil
}

// ListEntries reads the full entry set from the store, date descending,
// and refreshes the transient view.
func (l *Ledger) ListEntries(ctx context.Context) ([]core.Entry, error) {
	entries, err := l.store.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	l.mu.Lock()
	l.view = entries
	l.mu.Unlock()
	return entries, nil
}

// ListEntriesFiltered narrows the full entry set by kind and/or an
// inclusive date range. Bounds arrive in the configured date format,
// like all user date input. Empty parameters mean no constraint; bad
// ones return a core.ValidationError.
func (l *Ledger) ListEntriesFiltered(ctx context.Context, kind, from, to string) ([]core.Entry, error) {
	var filter core.EntryFilter

	if strings.TrimSpace(kind) != "" {
		k, err := core.ParseKind(kind)
		if err != nil {
			return nil, err
		}
		filter.Kind = k
	}
	if strings.TrimSpace(from) != "" {
		canonical, err := core.ParseDate(from, l.settings.DateFormat)
		if err != nil {
			return nil, err
		}
		filter.From = canonical
	}
	if strings.TrimSpace(to) != "" {
		canonical, err := core.ParseDate(to, l.settings.DateFormat)
		if err != nil {
			return nil, err
		}
		filter.To = canonical
	}

	entries, err := l.ListEntries(ctx)
	if err != nil {
		return nil, err
	}
	return core.FilterEntries(entries, filter), nil
}

// CachedEntries returns the last-loaded view without touching storage.
// Never the source of truth; it exists so a UI can re-render totals when
// storage is temporarily unavailable.
func (l *Ledger) CachedEntries() []core.Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]core.Entry, len(l.view))
	copy(out, l.view)
	return out
}

// Totals recomputes the Income/Expense headline totals over the full
// entry set on every call.
func (l *Ledger) Totals(ctx context.Context) (core.Totals, error) {
	entries, err := l.ListEntries(ctx)
	if err != nil {
		return core.Totals{}, err
	}
	return core.SumTotals(entries), nil
}

// CategoryBreakdown returns the non-zero per-kind sums in fixed order.
func (l *Ledger) CategoryBreakdown(ctx context.Context) ([]core.KindAmount, error) {
	entries, err := l.ListEntries(ctx)
	if err != nil {
		return nil, err
	}
	return core.CategoryBreakdown(entries), nil
}

// ChartData returns the labeled, colored slices the external pie chart
// renderer consumes.
func (l *Ledger) ChartData(ctx context.Context) ([]core.ChartSlice, error) {
	entries, err := l.ListEntries(ctx)
	if err != nil {
		return nil, err
	}
	return core.ChartSlices(entries, l.settings.Currency), nil
}
