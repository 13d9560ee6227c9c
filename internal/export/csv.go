package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/shopspring/decimal"
)

// CSVExporter writes a semicolon-separated CSV with a running balance.
// Dutch spreadsheet tools expect the semicolon delimiter and the UTF-8
// BOM, so both are deliberate.
type CSVExporter struct{}

// NewCSVExporter creates a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Export serializes the statement as semicolon-delimited CSV.
func (e *CSVExporter) Export(stmt *Statement) (*Document, error) {
	if err := stmt.Validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("\uFEFF")

	w := csv.NewWriter(&buf)
	w.Comma = ';'

	header := []string{"Datum", "Omschrijving", "Categorie", "Grootboek", "BTW", "Bedrag", "Saldo", "IBAN"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	balance := decimal.Zero
	for i := range stmt.Rows {
		c := &stmt.Rows[i]
		txn := &c.Transaction
		balance = balance.Add(txn.Amount)

		record := []string{
			txn.Date.Format("02-01-2006"),
			txn.Description,
			c.CategoryLabel(),
			c.LedgerCode(),
			c.EffectiveRate().String(),
			formatAmountComma(txn.Amount),
			formatAmountComma(balance),
			stmt.Header.AccountNumber,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	filename := fmt.Sprintf("%s-Export.csv", SanitizeFilename(stmt.Header.BankName))

	return &Document{
		Bytes:       buf.Bytes(),
		ContentType: "text/csv; charset=utf-8",
		Filename:    filename,
	}, nil
}
