package export

import (
	"fmt"
	"strings"
	"time"
)

// MT940Exporter writes the legacy fixed-field bank statement format.
type MT940Exporter struct {
	// Now is the clock used for the statement reference; defaults to
	// time.Now.
	Now func() time.Time
	// ReferencePrefix starts the :20: transaction reference.
	ReferencePrefix string
}

// NewMT940Exporter creates an exporter with the default reference prefix.
func NewMT940Exporter() *MT940Exporter {
	return &MT940Exporter{ReferencePrefix: "FLORIJN"}
}

// Export serializes the statement. Line endings are CRLF and amounts
// use a comma decimal separator, both fixed by the format.
func (e *MT940Exporter) Export(stmt *Statement) (*Document, error) {
	if err := stmt.Validate(); err != nil {
		return nil, err
	}

	now := defaultClock(e.Now)()
	dateStr := now.Format("20060102")
	timeStr := now.Format("150405")

	account := stmt.Header.AccountNumber
	if account == "" {
		account = "NL00XXXX0000000000"
	}

	var b strings.Builder
	fmt.Fprintf(&b, ":20:%s%s%s\r\n", e.ReferencePrefix, dateStr, timeStr)
	fmt.Fprintf(&b, ":25:%s\r\n", account)
	b.WriteString(":28C:00001/1\r\n")
	fmt.Fprintf(&b, ":60F:C%sEUR0,00\r\n", dateStr)

	for i := range stmt.Rows {
		txn := &stmt.Rows[i].Transaction

		side := "D"
		if txn.IsCredit() {
			side = "C"
		}

		fmt.Fprintf(&b, ":61:%s%s%sNTRF%04d\r\n",
			txn.Date.Format("060102"), side,
			formatAmountComma(txn.Amount.Abs()), i+1)
		fmt.Fprintf(&b, ":86:%s\r\n", SanitizeStatementText(txn.Description))
	}

	total := stmt.TotalAmount()
	side := "D"
	if total.Sign() >= 0 {
		side = "C"
	}
	fmt.Fprintf(&b, ":62F:%s%sEUR%s\r\n", side, dateStr, formatAmountComma(total.Abs()))
	b.WriteString("-")

	filename := fmt.Sprintf("%s-MT940.sta", SanitizeFilename(stmt.Header.BankName))

	return &Document{
		Bytes:       []byte(b.String()),
		ContentType: "text/plain",
		Filename:    filename,
	}, nil
}
