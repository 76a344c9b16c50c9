// Package core provides the domain records, validators, and derived
// calculators of the finance tracker. Everything in this package is pure:
// no storage access, no side effects.
package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount converts a user-entered decimal string into an exact amount.
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Negative values are rejected; zero is allowed (callers enforce positivity
// per field via the validators).
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// MustAmount is like ParseAmount but panics on error. Intended for seed data and tests.
func MustAmount(s string) decimal.Decimal {
	d, err := ParseAmount(s)
	if err != nil {
		panic(err.Error())
	}
	return d
}
