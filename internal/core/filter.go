package core

// EntryFilter selects a subset of entries for reporting. Zero-valued
// fields mean no constraint. Dates are canonical YYYY-MM-DD and compare
// lexicographically.
type EntryFilter struct {
	Kind Kind
	From string // inclusive lower bound
	To   string // inclusive upper bound
}

// IsZero reports whether the filter constrains nothing.
func (f EntryFilter) IsZero() bool {
	return f.Kind == "" && f.From == "" && f.To == ""
}

// Matches reports whether the entry passes every set constraint.
func (f EntryFilter) Matches(e Entry) bool {
	if f.Kind != "" && e.Kind != f.Kind {
		return false
	}
	if f.From != "" && e.Date < f.From {
		return false
	}
	if f.To != "" && e.Date > f.To {
		return false
	}
	return true
}

// FilterEntries returns the entries matching the filter, preserving
// order.
func FilterEntries(entries []Entry, f EntryFilter) []Entry {
	if f.IsZero() {
		return entries
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}
