// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single bank or invoice line produced by the
// upstream extraction step. It is immutable once created; classification
// results are attached alongside, never written back into it.
type Transaction struct {
	Date         time.Time
	ID           string          // optional stable identifier for idempotent lookups
	Description  string          // raw free text, user controlled
	Counterparty string          // optional counterparty / merchant name
	Amount       decimal.Decimal // signed, negative = outflow
}

// IsCredit reports whether the transaction moves money in.
func (t *Transaction) IsCredit() bool {
	return t.Amount.Sign() > 0
}

// Merchant returns the best available merchant string for matching:
// the counterparty when present, otherwise the description.
func (t *Transaction) Merchant() string {
	if t.Counterparty != "" {
		return t.Counterparty
	}
	return t.Description
}

// StatementHeader is the small header context every export carries.
type StatementHeader struct {
	BankName      string
	AccountNumber string
	OwnerName     string
}

// ParseStatementDate parses a statement date in either of the two
// accepted wire formats, DD-MM-YYYY or YYYY-MM-DD. The formats are
// disambiguated by which positional segment has four digits.
func ParseStatementDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("invalid date %q: expected DD-MM-YYYY or YYYY-MM-DD", s)
	}

	layout := "02-01-2006"
	if len(parts[0]) == 4 {
		layout = "2006-01-02"
	}

	d, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// FormatDate8 renders a date in the 8-digit YYYYMMDD form used by the
// SGML bank-transaction format.
func FormatDate8(d time.Time) string {
	return d.Format("20060102")
}
