package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"daybook/internal/core"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	ledger := filepath.Join(dir, "daybook.csv")
	rules := filepath.Join(dir, "recurring.csv")
	s, err := Open(ledger, rules)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	return s, dir
}

func TestOpenCreatesFileWithHeader(t *testing.T) {
	_, dir := newTestStore(t)

	data, err := os.ReadFile(filepath.Join(dir, "daybook.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != Header+"\n" {
		t.Errorf("new ledger file = %q, want header only", string(data))
	}
}

func TestAppendAndReload(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	_, err := s.AppendEntry(ctx, core.EntryDraft{
		Date:        "2024-01-05",
		Description: "Salary",
		Amount:      core.Money{Cents: 5000000},
		Kind:        core.Income,
	})
	if err != nil {
		t.Fatalf("AppendEntry() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "daybook.csv"))
	if err != nil {
		t.Fatal(err)
	}
	want := Header + "\n2024-01-05,Salary,50000.00,Income\n"
	if string(data) != want {
		t.Errorf("ledger file = %q, want %q", string(data), want)
	}

	// Simulated restart: a fresh store must reproduce the entry exactly
	reopened, err := Open(filepath.Join(dir, "daybook.csv"), filepath.Join(dir, "recurring.csv"))
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	entries, err := reopened.ListEntries(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries after reload, want 1", len(entries))
	}
	e := entries[0]
	if e.Date != "2024-01-05" || e.Description != "Salary" || e.Amount.Cents != 5000000 || e.Kind != core.Income {
		t.Errorf("reloaded entry = %+v", e)
	}
}

func TestListOrder(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	for _, d := range []core.EntryDraft{
		{Date: "2024-01-06", Description: "middle", Amount: core.Money{Cents: 100}, Kind: core.Expense},
		{Date: "2024-01-10", Description: "newest", Amount: core.Money{Cents: 100}, Kind: core.Expense},
		{Date: "2024-01-10", Description: "newest-later", Amount: core.Money{Cents: 100}, Kind: core.Expense},
		{Date: "2024-01-02", Description: "oldest", Amount: core.Money{Cents: 100}, Kind: core.Expense},
	} {
		if _, err := s.AppendEntry(ctx, d); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := s.ListEntries(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"newest-later", "newest", "middle", "oldest"}
	for i, desc := range want {
		if entries[i].Description != desc {
			t.Errorf("entries[%d] = %q, want %q", i, entries[i].Description, desc)
		}
	}
}

func TestExistsMatching(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := s.AppendEntry(ctx, core.EntryDraft{
		Date: "2024-01-01", Description: "Rent", Amount: core.Money{Cents: 1200000}, Kind: core.Expense,
	}); err != nil {
		t.Fatal(err)
	}

	got, err := s.ExistsMatching(ctx, "2024-01-01", "Rent", core.Money{Cents: 1200000})
	if err != nil || !got {
		t.Errorf("ExistsMatching exact = %v, %v; want true", got, err)
	}
	got, err = s.ExistsMatching(ctx, "2024-01-01", "Rent", core.Money{Cents: 1200001})
	if err != nil || got {
		t.Errorf("ExistsMatching off-by-one-cent = %v, %v; want false", got, err)
	}
}

func TestListRules(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	// No rules file yet: no rules, no error
	rules, err := s.ListRules(ctx)
	if err != nil {
		t.Fatalf("ListRules() with missing file: %v", err)
	}
	if len(rules) != 0 {
		t.Fatalf("got %d rules, want 0", len(rules))
	}

	content := "Description,Amount,Type,Day\nRent,12000,Expense,1\nSalary,50000.00,Income,28\n"
	if err := os.WriteFile(filepath.Join(dir, "recurring.csv"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	rules, err = s.ListRules(ctx)
	if err != nil {
		t.Fatalf("ListRules() error: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("got %d rules, want 2", len(rules))
	}
	if rules[0].Description != "Rent" || rules[0].Amount.Cents != 1200000 || rules[0].Kind != core.Expense || rules[0].Day != 1 {
		t.Errorf("rules[0] = %+v", rules[0])
	}
	if rules[1].Day != 28 || rules[1].Kind != core.Income {
		t.Errorf("rules[1] = %+v", rules[1])
	}
}

func TestOpenRejectsBadHeader(t *testing.T) {
	dir := t.TempDir()
	ledger := filepath.Join(dir, "daybook.csv")
	if err := os.WriteFile(ledger, []byte("When,What,HowMuch,Why\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(ledger, filepath.Join(dir, "recurring.csv")); err == nil {
		t.Fatal("expected error for unexpected header")
	} else if !strings.Contains(err.Error(), "header") {
		t.Errorf("error %q does not mention the header", err)
	}
}

func TestOpenRejectsBadLine(t *testing.T) {
	dir := t.TempDir()
	ledger := filepath.Join(dir, "daybook.csv")
	content := Header + "\n2024-01-05,Salary,-50,Income\n"
	if err := os.WriteFile(ledger, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(ledger, filepath.Join(dir, "recurring.csv")); err == nil {
		t.Fatal("expected error for negative amount")
	}
}
