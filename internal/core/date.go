package core

import (
	"strings"
	"time"
)

// CanonicalDateLayout is the storage form for entry dates. User input may
// arrive in any configured format but is normalized to this before it
// touches a store.
const CanonicalDateLayout = "2006-01-02"

// strftime verbs supported by the configurable date_format setting.
// Patterns carried over from legacy configuration files use strftime
// notation, so they are translated to Go reference layouts here.
var strftimeVerbs = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'd': "02",
}

// LayoutFromStrftime translates an strftime-style pattern such as
// "%Y-%m-%d" or "%d/%m/%Y" into a Go time layout. Unsupported verbs
// return ErrInvalidDate since a format the engine cannot honor would
// silently corrupt every parsed date.
func LayoutFromStrftime(pattern string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(pattern) {
			return "", validationErr("date format ends with a bare %", ErrInvalidDate)
		}
		if pattern[i] == '%' {
			b.WriteByte('%')
			continue
		}
		layout, ok := strftimeVerbs[pattern[i]]
		if !ok {
			return "", validationErr("unsupported date format verb %"+string(pattern[i]), ErrInvalidDate)
		}
		b.WriteString(layout)
	}
	return b.String(), nil
}

// ParseDate parses user input under the configured strftime pattern and
// returns the canonical YYYY-MM-DD form.
func ParseDate(input, pattern string) (string, error) {
	layout, err := LayoutFromStrftime(pattern)
	if err != nil {
		return "", err
	}
	t, err := time.Parse(layout, strings.TrimSpace(input))
	if err != nil {
		return "", validationErr("date does not match format "+pattern, ErrInvalidDate)
	}
	return t.Format(CanonicalDateLayout), nil
}

// IsCanonicalDate reports whether s is a valid YYYY-MM-DD calendar date.
func IsCanonicalDate(s string) bool {
	t, err := time.Parse(CanonicalDateLayout, s)
	return err == nil && t.Format(CanonicalDateLayout) == s
}

// CanonicalDate renders a time as the canonical stored date.
func CanonicalDate(t time.Time) string {
	return t.Format(CanonicalDateLayout)
}
