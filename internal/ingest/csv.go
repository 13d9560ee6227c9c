// Package ingest reads bank transaction files into the domain model.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/florijnhq/florijn/internal/common"
	"github.com/florijnhq/florijn/internal/model"
)

const (
	numFields       = 4
	colDate         = 0
	colDescription  = 1
	colCounterparty = 2
	colAmount       = 3
)

// Header is the CSV header for a transaction file.
const Header = "datum,omschrijving,tegenpartij,bedrag"

// RowError describes a single unparseable row. The line number is
// 1-based and counts the header.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// Result is the outcome of a (possibly partial) read.
type Result struct {
	Transactions []model.Transaction
	Skipped      []RowError
}

// Reader reads transaction CSV files. In strict mode the first bad row
// aborts the read; in lenient mode bad rows are collected in
// Result.Skipped and the good rows still come back.
type Reader struct {
	Strict bool
}

// NewReader creates a strict CSV reader.
func NewReader() *Reader {
	return &Reader{Strict: true}
}

// Read parses all transactions from r.
func (rd *Reader) Read(r io.Reader) (*Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transaction CSV: %w: %v", common.ErrMalformedInput, err)
	}

	if len(records) == 0 {
		return &Result{}, nil
	}

	start := 0
	if isHeaderRow(records[0]) {
		start = 1
	}

	result := &Result{}
	for i, rec := range records[start:] {
		line := start + i + 1
		txn, rowErr := unmarshalTransaction(rec)
		if rowErr != nil {
			if rd.Strict {
				return nil, &RowError{Line: line, Err: rowErr}
			}
			result.Skipped = append(result.Skipped, RowError{Line: line, Err: rowErr})
			continue
		}
		result.Transactions = append(result.Transactions, txn)
	}

	return result, nil
}

// isHeaderRow detects a header by a non-numeric amount column, so files
// both with and without a header line parse.
func isHeaderRow(rec []string) bool {
	if len(rec) == 0 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(rec[0]))
	if first == "datum" || first == "date" {
		return true
	}
	if len(rec) < numFields {
		return false
	}
	_, err := ParseAmount(rec[colAmount])
	return err != nil
}

func unmarshalTransaction(rec []string) (model.Transaction, error) {
	if len(rec) < numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(rec))
	}

	date, err := model.ParseStatementDate(rec[colDate])
	if err != nil {
		return model.Transaction{}, err
	}

	amount, err := ParseAmount(rec[colAmount])
	if err != nil {
		return model.Transaction{}, err
	}

	description := strings.TrimSpace(rec[colDescription])
	if description == "" {
		return model.Transaction{}, fmt.Errorf("empty description")
	}

	return model.Transaction{
		Date:         date,
		Description:  description,
		Counterparty: strings.TrimSpace(rec[colCounterparty]),
		Amount:       amount,
	}, nil
}

// ParseAmount parses a signed amount that may use either a comma or a
// dot as the decimal separator. Thousands separators are not supported;
// a value with both characters is rejected rather than guessed at.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("empty amount")
	}
	if strings.Contains(s, ",") && strings.Contains(s, ".") {
		return decimal.Decimal{}, fmt.Errorf("ambiguous amount %q", s)
	}

	normalized := strings.Replace(s, ",", ".", 1)
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return d, nil
}
