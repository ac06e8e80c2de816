// Package storage provides the SQLite-backed entry and recurring rule
// stores. Every append commits immediately; the data volumes are small
// enough that durability wins over batching.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"daybook/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// AppendEntry validates the draft, persists it and returns the stored
// entry with its assigned id. The store never accepts an entry that was
// not built through a validating path.
func (r *SQLiteRepository) AppendEntry(ctx context.Context, draft core.EntryDraft) (core.Entry, error) {
	if err := draft.Validate(); err != nil {
		return core.Entry{}, err
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO entries (date, description, amount, type) VALUES (?, ?, ?, ?)`,
		draft.Date, draft.Description, draft.Amount.Units(), string(draft.Kind))
	if err != nil {
		return core.Entry{}, fmt.Errorf("insert entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Entry{}, fmt.Errorf("read inserted id: %w", err)
	}

	entry := core.Entry{
		ID:          id,
		Date:        draft.Date,
		Description: draft.Description,
		Amount:      draft.Amount,
		Kind:        draft.Kind,
	}

	slog.InfoContext(ctx, "Entry saved",
		"id", entry.ID,
		"date", entry.Date,
		"description", entry.Description,
		"amount_cents", entry.Amount.Cents,
		"kind", entry.Kind)

	return entry, nil
}

// ListEntries returns every entry ordered by date descending; entries on
// the same date come back most recently inserted first.
func (r *SQLiteRepository) ListEntries(ctx context.Context) ([]core.Entry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, description, amount, type FROM entries ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []core.Entry
	for rows.Next() {
		var (
			e     core.Entry
			units float64
			kind  string
		)
		if err := rows.Scan(&e.ID, &e.Date, &e.Description, &units, &kind); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Amount = core.MoneyFromUnits(units)
		e.Kind = core.Kind(kind)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// ExistsMatching reports whether an entry with exactly this date,
// description and amount is already stored. This is the recurring
// materializer's only duplicate guard.
func (r *SQLiteRepository) ExistsMatching(ctx context.Context, date, description string, amount core.Money) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM entries WHERE date = ? AND description = ? AND amount = ?`,
		date, description, amount.Units()).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("count matching entries: %w", err)
	}
	return count > 0, nil
}

// ListRules returns every recurring rule. The engine only reads rules;
// creation is an administrative path.
func (r *SQLiteRepository) ListRules(ctx context.Context) ([]core.RecurringRule, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, description, amount, type, day FROM recurring ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query recurring rules: %w", err)
	}
	defer rows.Close()

	var rules []core.RecurringRule
	for rows.Next() {
		var (
			rule  core.RecurringRule
			units float64
			kind  string
		)
		if err := rows.Scan(&rule.ID, &rule.Description, &units, &kind, &rule.Day); err != nil {
			return nil, fmt.Errorf("scan recurring rule: %w", err)
		}
		rule.Amount = core.MoneyFromUnits(units)
		rule.Kind = core.Kind(kind)
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recurring rules: %w", err)
	}
	return rules, nil
}

// AddRule inserts a recurring rule template. Out-of-band administrative
// path; the engine itself never mutates rules.
func (r *SQLiteRepository) AddRule(ctx context.Context, rule core.RecurringRule) (core.RecurringRule, error) {
	if err := rule.Validate(); err != nil {
		return core.RecurringRule{}, err
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO recurring (description, amount, type, day) VALUES (?, ?, ?, ?)`,
		rule.Description, rule.Amount.Units(), string(rule.Kind), rule.Day)
	if err != nil {
		return core.RecurringRule{}, fmt.Errorf("insert recurring rule: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.RecurringRule{}, fmt.Errorf("read inserted id: %w", err)
	}
	rule.ID = id

	slog.InfoContext(ctx, "Recurring rule saved",
		"id", rule.ID,
		"description", rule.Description,
		"amount_cents", rule.Amount.Cents,
		"day", rule.Day)

	return rule, nil
}
