package services

import (
	"context"
	"testing"
	"time"

	"daybook/internal/core"
)

func rentRule(id int64, day int) core.RecurringRule {
	return core.RecurringRule{
		ID:          id,
		Description: "Rent",
		Amount:      core.Money{Cents: 1200000},
		Kind:        core.Expense,
		Day:         day,
	}
}

func TestRunRecurringCheckMaterializesDueRule(t *testing.T) {
	store := newFakeStore()
	store.rules = []core.RecurringRule{rentRule(1, 1)}
	ledger := NewLedger(store, testSettings())
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	n, err := ledger.RunRecurringCheck(ctx, now)
	if err != nil {
		t.Fatalf("RunRecurringCheck() error: %v", err)
	}
	if n != 1 {
		t.Fatalf("materialized %d, want 1", n)
	}

	entries, err := ledger.ListEntries(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Date != "2024-01-01" || e.Description != "Rent" || e.Amount.Cents != 1200000 || e.Kind != core.Expense {
		t.Errorf("materialized entry = %+v", e)
	}
}

func TestRunRecurringCheckIdempotent(t *testing.T) {
	store := newFakeStore()
	store.rules = []core.RecurringRule{rentRule(1, 1)}
	ledger := NewLedger(store, testSettings())
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	if _, err := ledger.RunRecurringCheck(ctx, now); err != nil {
		t.Fatal(err)
	}
	n, err := ledger.RunRecurringCheck(ctx, now.Add(2*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("second run materialized %d, want 0", n)
	}
	if len(store.entries) != 1 {
		t.Errorf("store has %d entries after two runs, want 1", len(store.entries))
	}
}

func TestRunRecurringCheckSkipsNonMatchingDay(t *testing.T) {
	store := newFakeStore()
	store.rules = []core.RecurringRule{rentRule(1, 15)}
	ledger := NewLedger(store, testSettings())

	n, err := ledger.RunRecurringCheck(context.Background(), time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 || len(store.entries) != 0 {
		t.Errorf("rule for day 15 fired on the 1st: n=%d entries=%d", n, len(store.entries))
	}
}

func TestRunRecurringCheckMatchesTrimmedManualEntry(t *testing.T) {
	// A manual entry typed with stray padding normalizes to the same
	// description a rule carries, so the duplicate check must catch it.
	store := newFakeStore()
	store.rules = []core.RecurringRule{rentRule(1, 1)}
	ledger := NewLedger(store, testSettings())
	ctx := context.Background()

	if _, err := ledger.AddEntry(ctx, "2024-01-01", "  Rent  ", "12000", "Expense"); err != nil {
		t.Fatal(err)
	}

	n, err := ledger.RunRecurringCheck(ctx, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 || len(store.entries) != 1 {
		t.Errorf("rule duplicated a manual entry: n=%d entries=%d", n, len(store.entries))
	}
}

func TestRunRecurringCheckCollidingRules(t *testing.T) {
	// Two distinct rules with the same description and amount on the same
	// day collide on the (date, description, amount) key: only one entry
	// is ever created. Legacy parity, kept on purpose.
	store := newFakeStore()
	store.rules = []core.RecurringRule{rentRule(1, 1), rentRule(2, 1)}
	ledger := NewLedger(store, testSettings())

	n, err := ledger.RunRecurringCheck(context.Background(), time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 || len(store.entries) != 1 {
		t.Errorf("colliding rules produced n=%d entries=%d, want 1 and 1", n, len(store.entries))
	}
}

func TestRunRecurringCheckContinuesAfterFailure(t *testing.T) {
	store := newFakeStore()
	store.rules = []core.RecurringRule{
		{ID: 1, Description: "Broken", Amount: core.Money{Cents: 100}, Kind: core.Expense, Day: 1},
		rentRule(2, 1),
	}
	store.failAppendFor = "Broken"
	ledger := NewLedger(store, testSettings())

	n, err := ledger.RunRecurringCheck(context.Background(), time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("scan should not fail outright: %v", err)
	}
	if n != 1 {
		t.Errorf("materialized %d, want 1 (the healthy rule)", n)
	}
	if len(store.entries) != 1 || store.entries[0].Description != "Rent" {
		t.Errorf("entries = %+v", store.entries)
	}
}

func TestRunRecurringCheckRefreshesViewWithoutInsertions(t *testing.T) {
	store := newFakeStore()
	ledger := NewLedger(store, testSettings())
	ctx := context.Background()

	if _, err := store.AppendEntry(ctx, core.EntryDraft{
		Date: "2024-01-01", Description: "Seeded", Amount: core.Money{Cents: 100}, Kind: core.Income,
	}); err != nil {
		t.Fatal(err)
	}

	if _, err := ledger.RunRecurringCheck(ctx, time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}
	if cached := ledger.CachedEntries(); len(cached) != 1 {
		t.Errorf("view not refreshed after no-op scan: %+v", cached)
	}
}
