package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CAMTExporter writes the camt.053.001.02 XML bank statement format.
type CAMTExporter struct {
	// Now is the clock used for message identifiers; defaults to time.Now.
	Now func() time.Time
}

// NewCAMTExporter creates a CAMT exporter.
func NewCAMTExporter() *CAMTExporter {
	return &CAMTExporter{}
}

// Export serializes the statement. Every free-text field passes through
// EscapeMarkup exactly once, here at the boundary.
func (e *CAMTExporter) Export(stmt *Statement) (*Document, error) {
	if err := stmt.Validate(); err != nil {
		return nil, err
	}

	now := defaultClock(e.Now)().UTC()
	dateTime := now.Format(time.RFC3339)
	date := now.Format("2006-01-02")
	msgID := fmt.Sprintf("FLORIJN%d", now.UnixMilli())

	total := stmt.TotalAmount()
	openingBalance := decimal.Max(decimal.Zero, total)

	owner := EscapeMarkup(stmt.Header.OwnerName)
	if owner == "" {
		owner = "Bedrijf"
	}
	iban := EscapeMarkup(stmt.Header.AccountNumber)
	if iban == "" {
		iban = "NL00XXXX0000000000"
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<Document xmlns="urn:iso:std:iso:20022:tech:xsd:camt.053.001.02">` + "\n")
	b.WriteString("  <BkToCstmrStmt>\n")
	b.WriteString("    <GrpHdr>\n")
	fmt.Fprintf(&b, "      <MsgId>%s</MsgId>\n", msgID)
	fmt.Fprintf(&b, "      <CreDtTm>%s</CreDtTm>\n", dateTime)
	b.WriteString("    </GrpHdr>\n")
	b.WriteString("    <Stmt>\n")
	fmt.Fprintf(&b, "      <Id>STMT%s</Id>\n", now.Format("20060102"))
	fmt.Fprintf(&b, "      <CreDtTm>%s</CreDtTm>\n", dateTime)
	b.WriteString("      <Acct>\n")
	b.WriteString("        <Id>\n")
	fmt.Fprintf(&b, "          <IBAN>%s</IBAN>\n", iban)
	b.WriteString("        </Id>\n")
	b.WriteString("        <Ccy>EUR</Ccy>\n")
	b.WriteString("        <Ownr>\n")
	fmt.Fprintf(&b, "          <Nm>%s</Nm>\n", owner)
	b.WriteString("        </Ownr>\n")
	b.WriteString("      </Acct>\n")

	e.writeBalance(&b, "OPBD", openingBalance, date)

	for i := range stmt.Rows {
		row := &stmt.Rows[i]
		txn := &row.Transaction

		indicator := "DBIT"
		if txn.IsCredit() {
			indicator = "CRDT"
		}

		description := EscapeMarkup(txn.Description)
		if description == "" {
			description = "Transactie"
		}
		counterparty := EscapeMarkup(txn.Counterparty)
		bookingDate := txn.Date.Format("2006-01-02")

		b.WriteString("      <Ntry>\n")
		fmt.Fprintf(&b, "        <Amt Ccy=\"EUR\">%s</Amt>\n", formatAmount(txn.Amount.Abs()))
		fmt.Fprintf(&b, "        <CdtDbtInd>%s</CdtDbtInd>\n", indicator)
		b.WriteString("        <Sts>BOOK</Sts>\n")
		fmt.Fprintf(&b, "        <BookgDt><Dt>%s</Dt></BookgDt>\n", bookingDate)
		fmt.Fprintf(&b, "        <ValDt><Dt>%s</Dt></ValDt>\n", bookingDate)
		b.WriteString("        <NtryDtls>\n")
		b.WriteString("          <TxDtls>\n")
		b.WriteString("            <RmtInf>\n")
		fmt.Fprintf(&b, "              <Ustrd>%s</Ustrd>\n", description)
		b.WriteString("            </RmtInf>\n")
		if counterparty != "" {
			b.WriteString("            <RltdPties>\n")
			b.WriteString("              <Cdtr>\n")
			fmt.Fprintf(&b, "                <Nm>%s</Nm>\n", counterparty)
			b.WriteString("              </Cdtr>\n")
			b.WriteString("            </RltdPties>\n")
		}
		b.WriteString("          </TxDtls>\n")
		b.WriteString("        </NtryDtls>\n")
		b.WriteString("      </Ntry>\n")
	}

	e.writeBalance(&b, "CLBD", total, date)

	b.WriteString("    </Stmt>\n")
	b.WriteString("  </BkToCstmrStmt>\n")
	b.WriteString("</Document>")

	filename := fmt.Sprintf("%s_%s.xml", SanitizeFilename(iban), date)

	return &Document{
		Bytes:       []byte(b.String()),
		ContentType: "application/xml",
		Filename:    filename,
	}, nil
}

func (e *CAMTExporter) writeBalance(b *strings.Builder, code string, amount decimal.Decimal, date string) {
	indicator := "DBIT"
	if amount.Sign() >= 0 {
		indicator = "CRDT"
	}

	b.WriteString("      <Bal>\n")
	fmt.Fprintf(b, "        <Tp><CdOrPrtry><Cd>%s</Cd></CdOrPrtry></Tp>\n", code)
	fmt.Fprintf(b, "        <Amt Ccy=\"EUR\">%s</Amt>\n", formatAmount(amount.Abs()))
	fmt.Fprintf(b, "        <CdtDbtInd>%s</CdtDbtInd>\n", indicator)
	fmt.Fprintf(b, "        <Dt><Dt>%s</Dt></Dt>\n", date)
	b.WriteString("      </Bal>\n")
}
