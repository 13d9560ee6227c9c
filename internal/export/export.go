// Package export serializes classified transaction statements into the
// external financial file formats consumed by bookkeeping systems.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/florijnhq/florijn/internal/common"
	"github.com/florijnhq/florijn/internal/model"
)

// Document is the sole output of an exporter: a byte stream plus the
// metadata needed to serve it as a download.
type Document struct {
	ContentType string
	Filename    string
	Bytes       []byte
}

// Statement is the shared exporter input: one ordered list of
// classified transactions plus the header context.
type Statement struct {
	Header model.StatementHeader
	Rows   []model.ClassifiedTransaction
}

// Validate checks the exporter preconditions. An empty statement fails
// fast; an empty export is never useful to the consuming system.
func (s *Statement) Validate() error {
	if len(s.Rows) == 0 {
		return fmt.Errorf("cannot export statement: %w", common.ErrNoTransactions)
	}
	return nil
}

// TotalAmount folds all transaction amounts in input order.
func (s *Statement) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for i := range s.Rows {
		total = total.Add(s.Rows[i].Transaction.Amount)
	}
	return total
}

// Exporter produces one output format from a statement.
type Exporter interface {
	Export(stmt *Statement) (*Document, error)
}

// defaultClock returns a clock function, falling back to time.Now.
// Exporters take an injectable clock so artifacts are reproducible in
// tests.
func defaultClock(now func() time.Time) func() time.Time {
	if now != nil {
		return now
	}
	return time.Now
}

// pathUnsafe matches every character that may not appear in a download
// filename.
const pathUnsafe = `/\:*?"<>|`

// SanitizeFilename makes a bank name or label safe for use inside a
// suggested filename: path-unsafe characters and whitespace runs become
// single underscores.
func SanitizeFilename(name string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range name {
		switch {
		case strings.ContainsRune(pathUnsafe, r) || r < 0x20 || r == ' ' || r == '\t':
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		default:
			b.WriteRune(r)
			lastUnderscore = false
		}
	}
	cleaned := strings.Trim(b.String(), "_")
	if cleaned == "" {
		return "Bank"
	}
	return cleaned
}

// formatAmount renders a decimal with exactly two fraction digits and a
// dot separator.
func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// formatAmountComma renders a decimal with two fraction digits and a
// comma separator, as the fixed-field statement format requires.
func formatAmountComma(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}
