package services

import (
	"context"
	"log/slog"
	"time"

	"daybook/internal/core"
)

// RunRecurringCheck materializes due recurring rules into concrete
// entries, once per application start. A rule is due when its day of
// month equals today's; a due rule is skipped when an entry with the same
// date, description and amount already exists.
//
// The duplicate guard is keyed on (date, description, amount), not on the
// rule id, for parity with existing ledgers: two rules sharing description
// and amount on the same day materialize only once. Stores carry no rule
// provenance column, so there is nothing stronger to match against.
//
// The scan is not transactional across rules. A rule that fails to
// persist is logged and skipped; entries materialized for earlier rules
// stay. The entry view is refreshed after the scan either way.
func (l *Ledger) RunRecurringCheck(ctx context.Context, now time.Time) (int, error) {
	rules, err := l.store.ListRules(ctx)
	if err != nil {
		return 0, err
	}

	today := core.CanonicalDate(now)
	slog.InfoContext(ctx, "Checking recurring rules",
		"total_rules", len(rules),
		"date", today)

	materialized := 0
	for _, rule := range rules {
		if rule.Day != now.Day() {
			continue
		}

		exists, err := l.store.ExistsMatching(ctx, today, rule.Description, rule.Amount)
		if err != nil {
			slog.ErrorContext(ctx, "Failed duplicate check for recurring rule",
				"rule_id", rule.ID,
				"description", rule.Description,
				"error", err)
			continue
		}
		if exists {
			continue
		}

		_, err = l.store.AppendEntry(ctx, core.EntryDraft{
			Date:        today,
			Description: rule.Description,
			Amount:      rule.Amount,
			Kind:        rule.Kind,
		})
		if err != nil {
			slog.ErrorContext(ctx, "Failed to materialize recurring rule",
				"rule_id", rule.ID,
				"description", rule.Description,
				"error", err)
			continue
		}

		materialized++
		slog.InfoContext(ctx, "Materialized recurring entry",
			"rule_id", rule.ID,
			"description", rule.Description,
			"amount_cents", rule.Amount.Cents,
			"kind", rule.Kind)
	}

	// Refresh the view whether or not anything was inserted.
	if _, err := l.ListEntries(ctx); err != nil {
		return materialized, err
	}

	slog.InfoContext(ctx, "Recurring check complete",
		"materialized", materialized,
		"total_rules", len(rules))

	return materialized, nil
}
