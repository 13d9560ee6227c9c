package export

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/florijnhq/florijn/internal/model"
)

const (
	transactionSheet = "Transacties"
	vatSheet         = "BTW Overzicht"

	currencyFormat = "€#,##0.00"
)

// WorkbookExporter writes the spreadsheet workbook with a transaction
// sheet and a VAT summary sheet.
type WorkbookExporter struct {
	// Now is the clock used for the generated-at line; defaults to time.Now.
	Now func() time.Time
}

// NewWorkbookExporter creates a workbook exporter.
func NewWorkbookExporter() *WorkbookExporter {
	return &WorkbookExporter{}
}

// vatGroup accumulates one (tax rate, ledger code, category) bucket.
type vatGroup struct {
	rate     model.TaxRate
	ledger   string
	category string
	gross    decimal.Decimal
	count    int
}

// groupKey is the composite grouping key for the VAT summary.
type groupKey struct {
	rate     string
	ledger   string
	category string
}

// Export serializes the statement into an xlsx workbook.
func (e *WorkbookExporter) Export(stmt *Statement) (*Document, error) {
	if err := stmt.Validate(); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", transactionSheet); err != nil {
		return nil, fmt.Errorf("failed to name transaction sheet: %w", err)
	}
	if _, err := f.NewSheet(vatSheet); err != nil {
		return nil, fmt.Errorf("failed to create VAT sheet: %w", err)
	}

	if err := e.writeTransactionSheet(f, stmt); err != nil {
		return nil, err
	}
	if err := e.writeVATSheet(f, stmt); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	filename := fmt.Sprintf("%s-Export.xlsx", SanitizeFilename(stmt.Header.BankName))

	return &Document{
		Bytes:       buf.Bytes(),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Filename:    filename,
	}, nil
}

func (e *WorkbookExporter) writeTransactionSheet(f *excelize.File, stmt *Statement) error {
	now := defaultClock(e.Now)()

	owner := stmt.Header.OwnerName
	if owner == "" {
		owner = "Bedrijf"
	}

	currencyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(currencyFormat)})
	if err != nil {
		return fmt.Errorf("failed to create currency style: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	boldCurrencyStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		CustomNumFmt: strPtr(currencyFormat),
	})
	if err != nil {
		return fmt.Errorf("failed to create total style: %w", err)
	}

	setRow := func(row int, values []any) error {
		cell, cellErr := excelize.CoordinatesToCellName(1, row)
		if cellErr != nil {
			return fmt.Errorf("invalid cell coordinates: %w", cellErr)
		}
		return f.SetSheetRow(transactionSheet, cell, &values)
	}

	if err := setRow(1, []any{fmt.Sprintf("%s - Bankafschrift Export", owner)}); err != nil {
		return fmt.Errorf("failed to write title: %w", err)
	}
	if err := setRow(2, []any{fmt.Sprintf("Gegenereerd %s", now.Format("02-01-2006"))}); err != nil {
		return fmt.Errorf("failed to write subtitle: %w", err)
	}

	headers := []any{"Datum", "Omschrijving", "Categorie", "Grootboek", "BTW", "Bedrag", "Saldo", "IBAN"}
	if err := setRow(4, headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	if err := f.SetCellStyle(transactionSheet, "A4", "H4", boldStyle); err != nil {
		return fmt.Errorf("failed to style headers: %w", err)
	}

	// Running balance folds amounts in input order, starting at zero
	// for a single-page export.
	balance := decimal.Zero
	row := 5
	for i := range stmt.Rows {
		c := &stmt.Rows[i]
		txn := &c.Transaction
		balance = balance.Add(txn.Amount)

		values := []any{
			txn.Date.Format("02-01-2006"),
			txn.Description,
			c.CategoryLabel(),
			c.LedgerCode(),
			c.EffectiveRate().String(),
			txn.Amount.InexactFloat64(),
			balance.InexactFloat64(),
			stmt.Header.AccountNumber,
		}
		if err := setRow(row, values); err != nil {
			return fmt.Errorf("failed to write transaction row %d: %w", i, err)
		}

		start, _ := excelize.CoordinatesToCellName(6, row)
		end, _ := excelize.CoordinatesToCellName(7, row)
		if err := f.SetCellStyle(transactionSheet, start, end, currencyStyle); err != nil {
			return fmt.Errorf("failed to style amounts: %w", err)
		}
		row++
	}

	income := decimal.Zero
	expense := decimal.Zero
	for i := range stmt.Rows {
		amount := stmt.Rows[i].Transaction.Amount
		if amount.Sign() > 0 {
			income = income.Add(amount)
		} else {
			expense = expense.Add(amount)
		}
	}

	totals := []struct {
		label string
		value decimal.Decimal
	}{
		{"Totaal Inkomsten:", income},
		{"Totaal Uitgaven:", expense},
		{"Saldo:", income.Add(expense)},
	}
	row++
	for _, total := range totals {
		if err := setRow(row, []any{"", "", "", "", total.label, total.value.InexactFloat64()}); err != nil {
			return fmt.Errorf("failed to write total row: %w", err)
		}
		cell, _ := excelize.CoordinatesToCellName(6, row)
		if err := f.SetCellStyle(transactionSheet, cell, cell, boldCurrencyStyle); err != nil {
			return fmt.Errorf("failed to style total: %w", err)
		}
		row++
	}

	widths := map[string]float64{"A": 12, "B": 40, "C": 20, "D": 12, "E": 12, "F": 15, "G": 15, "H": 25}
	for col, width := range widths {
		if err := f.SetColWidth(transactionSheet, col, col, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	return nil
}

func (e *WorkbookExporter) writeVATSheet(f *excelize.File, stmt *Statement) error {
	groups := groupByVAT(stmt.Rows)

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	currencyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(currencyFormat)})
	if err != nil {
		return fmt.Errorf("failed to create currency style: %w", err)
	}

	headers := []any{"BTW", "Grootboek", "Categorie", "Aantal", "Subtotaal ex BTW", "BTW Bedrag", "Totaal incl BTW"}
	if err := f.SetSheetRow(vatSheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write VAT headers: %w", err)
	}
	if err := f.SetCellStyle(vatSheet, "A1", "G1", boldStyle); err != nil {
		return fmt.Errorf("failed to style VAT headers: %w", err)
	}

	row := 2
	for _, group := range groups {
		net, vat := splitVAT(group.gross, group.rate)

		values := []any{
			group.rate.String(),
			group.ledger,
			group.category,
			group.count,
			net.InexactFloat64(),
			vat.InexactFloat64(),
			group.gross.InexactFloat64(),
		}
		cell, cellErr := excelize.CoordinatesToCellName(1, row)
		if cellErr != nil {
			return fmt.Errorf("invalid cell coordinates: %w", cellErr)
		}
		if err := f.SetSheetRow(vatSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write VAT group row: %w", err)
		}

		start, _ := excelize.CoordinatesToCellName(5, row)
		end, _ := excelize.CoordinatesToCellName(7, row)
		if err := f.SetCellStyle(vatSheet, start, end, currencyStyle); err != nil {
			return fmt.Errorf("failed to style VAT amounts: %w", err)
		}
		row++
	}

	widths := map[string]float64{"A": 12, "B": 12, "C": 25, "D": 10, "E": 18, "F": 15, "G": 18}
	for col, width := range widths {
		if err := f.SetColWidth(vatSheet, col, col, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	return nil
}

// groupByVAT aggregates rows by the composite (tax rate, ledger code,
// category) key. Exempt and unknown rates form their own buckets; no
// transaction is ever silently excluded. The group-by reduction is a
// single-threaded fold over a shared map and must stay that way even
// when classification itself ran in parallel.
func groupByVAT(rows []model.ClassifiedTransaction) []vatGroup {
	buckets := make(map[groupKey]*vatGroup)
	for i := range rows {
		c := &rows[i]
		rate := c.EffectiveRate()
		key := groupKey{
			rate:     rate.String(),
			ledger:   c.LedgerCode(),
			category: c.CategoryLabel(),
		}

		group, ok := buckets[key]
		if !ok {
			group = &vatGroup{rate: rate, ledger: key.ledger, category: key.category}
			buckets[key] = group
		}
		group.count++
		group.gross = group.gross.Add(c.Transaction.Amount.Abs())
	}

	groups := make([]vatGroup, 0, len(buckets))
	for _, group := range buckets {
		groups = append(groups, *group)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].rate.String() != groups[j].rate.String() {
			return groups[i].rate.String() < groups[j].rate.String()
		}
		if groups[i].ledger != groups[j].ledger {
			return groups[i].ledger < groups[j].ledger
		}
		return groups[i].category < groups[j].category
	})

	return groups
}

// splitVAT splits a gross (VAT-inclusive) amount into the net part and
// the imputed VAT: vat = gross / (1 + rate/100) * rate/100. Exempt and
// unknown rates carry no VAT.
func splitVAT(gross decimal.Decimal, rate model.TaxRate) (net, vat decimal.Decimal) {
	pct, ok := rate.Percent()
	if !ok || pct == 0 {
		return gross, decimal.Zero
	}

	divisor := decimal.NewFromInt(100 + int64(pct)).Div(decimal.NewFromInt(100))
	net = gross.DivRound(divisor, 2)
	vat = gross.Sub(net)
	return net, vat
}

func strPtr(s string) *string { return &s }
