package core

// Totals is the headline summary shown under the entry table. Contra
// postings are internal transfers and are excluded by convention.
type Totals struct {
	Income  Money
	Expense Money
}

// KindAmount is an amount aggregated per entry kind.
type KindAmount struct {
	Kind   Kind
	Amount Money
}

// ChartSlice is one wedge of the category pie chart, ready for an
// external renderer: label text, value in currency units and a fixed
// per-kind color.
type ChartSlice struct {
	Label string
	Value float64
	Color string
}

// kindOrder fixes the presentation order of the breakdown.
var kindOrder = []Kind{Income, Expense, Contra}

var kindColors = map[Kind]string{
	Income:  "green",
	Expense: "red",
	Contra:  "blue",
}

// SumTotals recomputes the Income and Expense totals over the full entry
// set. Entry volumes are small, so there is no incremental aggregate to
// keep consistent.
func SumTotals(entries []Entry) Totals {
	var t Totals
	for _, e := range entries {
		switch e.Kind {
		case Income:
			t.Income = t.Income.Add(e.Amount)
		case Expense:
			t.Expense = t.Expense.Add(e.Amount)
		}
	}
	return t
}

// CategoryBreakdown sums amounts per kind in the fixed order Income,
// Expense, Contra, omitting kinds whose sum is zero.
func CategoryBreakdown(entries []Entry) []KindAmount {
	sums := make(map[Kind]Money, len(kindOrder))
	for _, e := range entries {
		sums[e.Kind] = sums[e.Kind].Add(e.Amount)
	}
	out := make([]KindAmount, 0, len(kindOrder))
	for _, k := range kindOrder {
		if sums[k].Cents == 0 {
			continue
		}
		out = append(out, KindAmount{Kind: k, Amount: sums[k]})
	}
	return out
}

// ChartSlices builds the pie chart input from the non-zero category
// breakdown. Labels embed the formatted amount and currency code, e.g.
// "Income (50000.00 INR)".
func ChartSlices(entries []Entry, currency string) []ChartSlice {
	breakdown := CategoryBreakdown(entries)
	slices := make([]ChartSlice, 0, len(breakdown))
	for _, ka := range breakdown {
		slices = append(slices, ChartSlice{
			Label: string(ka.Kind) + " (" + ka.Amount.Format() + " " + currency + ")",
			Value: ka.Amount.Units(),
			Color: kindColors[ka.Kind],
		})
	}
	return slices
}
