// Package core holds the ledger domain: entries, recurring rules, money
// and date parsing, and the aggregation used by reporting surfaces.
package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseDecimalToCents converts a decimal amount string to cents.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and
// performs half-up rounding on the third decimal place. Only positive
// amounts are accepted; zero, negatives and malformed input return a
// ValidationError wrapping ErrInvalidAmount.
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, validationErr("amount is required", ErrInvalidAmount)
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		// Only unsigned positive values allowed
		return 0, validationErr("amount must be a positive number", ErrInvalidAmount)
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, validationErr("amount has too many decimal separators", ErrInvalidAmount)
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, validationErr("amount must be a number", ErrInvalidAmount)
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, validationErr("amount must be a number", ErrInvalidAmount)
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, validationErr("amount out of range", ErrInvalidAmount)
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, validationErr("amount out of range", ErrInvalidAmount)
	}
	// First two fractional digits, half-up rounding on the third
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	cents := iv*100 + fracCents
	if cents <= 0 {
		return 0, validationErr("amount must be greater than zero", ErrInvalidAmount)
	}
	return cents, nil
}

// MoneyFromUnits converts a currency-unit amount (as persisted in the
// REAL column of legacy stores) into cents with half-up rounding.
func MoneyFromUnits(units float64) Money {
	return Money{Cents: int64(math.Round(units * 100))}
}

// Units returns the currency-unit value for persistence in stores that
// keep amounts as decimal units rather than cents.
func (m Money) Units() float64 {
	return float64(m.Cents) / 100.0
}

// Format renders the amount with two decimal places. Display-only; all
// arithmetic stays in cents.
func (m Money) Format() string {
	return fmt.Sprintf("%d.%02d", m.Cents/100, m.Cents%100)
}

func (m Money) Add(other Money) Money {
	return Money{Cents: m.Cents + other.Cents}
}
